package nhttp

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics the adapter
// publishes.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default "nroute").
	Namespace string

	// Subsystem is the metrics subsystem (default "http").
	Subsystem string

	// ConstLabels are added to every metric.
	ConstLabels prometheus.Labels

	// Buckets are the request duration histogram buckets (default
	// prometheus.DefBuckets).
	Buckets []float64

	// Registry receives the metrics (default
	// prometheus.DefaultRegisterer).
	Registry prometheus.Registerer
}

// Metrics instruments request handling.  Build one with NewMetrics
// and attach it with WithMetrics.  Metrics are labeled by method and
// status code, never by path: dynamic segments would make the label
// cardinality unbounded.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics registers and returns adapter metrics.  Registering the
// same config twice on one registry panics, which is the usual
// Prometheus behavior; share one Metrics value across handlers
// instead.
func NewMetrics(cfg MetricsConfig) *Metrics {
	if cfg.Namespace == "" {
		cfg.Namespace = "nroute"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "http"
	}
	if cfg.Buckets == nil {
		cfg.Buckets = prometheus.DefBuckets
	}
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)
	labels := []string{"method", "status"}
	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "requests_total",
			Help:        "Requests served, by method and status code.",
			ConstLabels: cfg.ConstLabels,
		}, labels),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "request_duration_seconds",
			Help:        "Request service time, by method and status code.",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}, labels),
	}
}

// WithMetrics attaches metrics to a handler.
func WithMetrics(m *Metrics) HandlerOpt {
	return func(c *config) {
		c.metrics = m
	}
}

func (m *Metrics) observe(method string, status int, elapsed time.Duration) {
	labels := prometheus.Labels{"method": method, "status": strconv.Itoa(status)}
	m.requestsTotal.With(labels).Inc()
	m.requestDuration.With(labels).Observe(elapsed.Seconds())
}
