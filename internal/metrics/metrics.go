// Package metrics provides interfaces and implementations for collecting
// authorization-flow and send metrics. The Collector interface records
// events; implementations decide how they are exposed.
package metrics

// Callback results recorded by AuthCallbackCompleted.
const (
	CallbackSuccess        = "success"
	CallbackCSRFMismatch   = "csrf_mismatch"
	CallbackProviderError  = "provider_error"
	CallbackExchangeFailed = "exchange_failed"
)

// Revocation results recorded by RevocationCompleted.
const (
	RevocationSuccess          = "success"
	RevocationNoop             = "noop"
	RevocationTransportFailure = "transport_failure"
)

// Send results recorded by EmailSendCompleted.
const (
	SendSuccess         = "success"
	SendFailure         = "failure"
	SendUnauthenticated = "unauthenticated"
)

// Collector defines the interface for recording service metrics.
type Collector interface {
	// Authorization flow metrics
	AuthFlowStarted()
	AuthCallbackCompleted(result string)
	RevocationCompleted(result string)

	// Send metrics
	EmailSendCompleted(result string)
	RateLimitRejected()
}
