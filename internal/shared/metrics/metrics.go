package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application metrics.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Gateway metrics
	GatewayRequestsTotal   *prometheus.CounterVec
	GatewayRequestDuration *prometheus.HistogramVec

	// Marketplace metrics
	SplitPaymentsTotal *prometheus.CounterVec
	FeesRetainedTotal  prometheus.Counter
	OnboardingTotal    *prometheus.CounterVec
	WebhooksTotal      *prometheus.CounterVec
}

// New creates a Metrics instance on its own registry, so several instances
// can coexist in one process.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "splitpay"
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),

		GatewayRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "requests_total",
				Help:      "Total number of payment gateway calls",
			},
			[]string{"operation", "outcome"}, // outcome: ok, rejected, timeout, error, open
		),
		GatewayRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "request_duration_seconds",
				Help:      "Payment gateway call duration in seconds",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15},
			},
			[]string{"operation"},
		),

		SplitPaymentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "payment",
				Name:      "split_total",
				Help:      "Total number of split payment attempts",
			},
			[]string{"result"}, // created, invalid, seller_not_found, gateway_failed, storage_failed
		),
		FeesRetainedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "payment",
				Name:      "fees_retained_total",
				Help:      "Sum of marketplace fees requested on created payments",
			},
		),
		OnboardingTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "onboarding",
				Name:      "callbacks_total",
				Help:      "Total number of OAuth callbacks",
			},
			[]string{"result"}, // connected, missing_code, exchange_failed, storage_failed
		),
		WebhooksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "webhook",
				Name:      "notifications_total",
				Help:      "Total number of webhook notifications by outcome",
			},
			[]string{"outcome"}, // reconciled, ignored, dropped, invalid_signature, fetch_failed, store_failed
		),
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the exposition handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// --- Convenience methods ---

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCodeToString(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordGatewayCall records one gateway round-trip.
func (m *Metrics) RecordGatewayCall(operation, outcome string, duration time.Duration) {
	m.GatewayRequestsTotal.WithLabelValues(operation, outcome).Inc()
	m.GatewayRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordSplitPayment records a split attempt. fee is only added for created payments.
func (m *Metrics) RecordSplitPayment(result string, fee float64) {
	m.SplitPaymentsTotal.WithLabelValues(result).Inc()
	if result == "created" && fee > 0 {
		m.FeesRetainedTotal.Add(fee)
	}
}

// RecordOnboarding records an OAuth callback outcome.
func (m *Metrics) RecordOnboarding(result string) {
	m.OnboardingTotal.WithLabelValues(result).Inc()
}

// RecordWebhook records a webhook outcome.
func (m *Metrics) RecordWebhook(outcome string) {
	m.WebhooksTotal.WithLabelValues(outcome).Inc()
}

// statusCodeToString converts an HTTP status code to a string category.
func statusCodeToString(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
