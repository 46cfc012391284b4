package secrets

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics for secret store operations.
type Metrics struct {
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "helloservice"
	}

	m := &Metrics{}

	m.requestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "secrets",
			Name:      "requests_total",
			Help:      "Total number of secret store requests",
		},
		[]string{"operation", "status"},
	)

	m.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "secrets",
			Name:      "request_duration_seconds",
			Help:      "Secret store request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"operation", "status"},
	)

	return m
}

// RecordRequest records a secret store request.
func (m *Metrics) RecordRequest(operation, status string, duration time.Duration) {
	m.requestTotal.WithLabelValues(operation, status).Inc()
	m.requestDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// Register registers the metrics with the given registry. Duplicate
// registration is ignored so providers can be recreated safely.
func (m *Metrics) Register(registry *prometheus.Registry) {
	for _, c := range []prometheus.Collector{
		m.requestTotal,
		m.requestDuration,
	} {
		if err := registry.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}
}
