package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "hxtime").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are added to every metric.
	ConstLabels prometheus.Labels

	// Buckets are the request duration buckets.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry receives the collectors.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registerer.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "hxtime",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "component_requests_total",
			Help:        "Total number of component requests",
			ConstLabels: config.ConstLabels,
		}, []string{"component", "action", "code"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "component_request_duration_seconds",
			Help:        "Component request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"component", "action"}),
	}
}

// Metrics returns middleware that records request counts and durations.
//
// Collectors are registered when Metrics is called; calling it twice with
// the same registerer panics, as promauto does.
//
// Metrics collected:
//   - hxtime_component_requests_total{component,action,code}
//   - hxtime_component_request_duration_seconds{component,action}
func Metrics(opts ...MetricsOption) func(http.Handler) http.Handler {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	m := newMetrics(config)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := ParseRoute(r.URL.Path)
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			m.duration.WithLabelValues(route.Component, route.Action).Observe(time.Since(start).Seconds())
			m.requests.WithLabelValues(route.Component, route.Action, strconv.Itoa(rec.Status())).Inc()
		})
	}
}
