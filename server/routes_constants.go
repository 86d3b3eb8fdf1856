package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Entry point (login page)
	RouteIndex = "/"

	// OAuth2 flow routes
	RouteGoogleLogin   = "/auth/google"
	RouteOAuthCallback = "/redirect"
	RouteRevoke        = "/revoke"

	// Mail routes
	RouteEmailForm = "/email-form"
	RouteSendEmail = "/send-email"

	// Observability
	RouteMetrics = "/metrics"
)
