package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusCollector implements the Collector interface using Prometheus metrics.
type PrometheusCollector struct {
	registry *prometheus.Registry

	authFlowsTotal   prometheus.Counter
	callbacksTotal   *prometheus.CounterVec
	revocationsTotal *prometheus.CounterVec
	sendsTotal       *prometheus.CounterVec
	rateLimitedTotal prometheus.Counter
}

// NewPrometheusCollector creates a new PrometheusCollector with all metrics registered.
func NewPrometheusCollector(registry *prometheus.Registry) *PrometheusCollector {
	c := &PrometheusCollector{
		registry: registry,

		authFlowsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gmailsender_auth_flows_started_total",
			Help: "Total number of authorization flows started.",
		}),
		callbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gmailsender_auth_callbacks_total",
			Help: "Total number of authorization callbacks processed.",
		}, []string{"result"}),
		revocationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gmailsender_revocations_total",
			Help: "Total number of credential revocation attempts.",
		}, []string{"result"}),
		sendsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gmailsender_email_sends_total",
			Help: "Total number of email send attempts.",
		}, []string{"result"}),
		rateLimitedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gmailsender_rate_limited_total",
			Help: "Total number of send requests rejected by the rate limiter.",
		}),
	}

	registry.MustRegister(
		c.authFlowsTotal,
		c.callbacksTotal,
		c.revocationsTotal,
		c.sendsTotal,
		c.rateLimitedTotal,
	)

	return c
}

var _ Collector = (*PrometheusCollector)(nil)

func (c *PrometheusCollector) AuthFlowStarted() {
	c.authFlowsTotal.Inc()
}

func (c *PrometheusCollector) AuthCallbackCompleted(result string) {
	c.callbacksTotal.WithLabelValues(result).Inc()
}

func (c *PrometheusCollector) RevocationCompleted(result string) {
	c.revocationsTotal.WithLabelValues(result).Inc()
}

func (c *PrometheusCollector) EmailSendCompleted(result string) {
	c.sendsTotal.WithLabelValues(result).Inc()
}

func (c *PrometheusCollector) RateLimitRejected() {
	c.rateLimitedTotal.Inc()
}

// Handler returns an HTTP handler exposing the collector's registry.
func (c *PrometheusCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
