package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics for authorization attempts.
type Metrics struct {
	authorizationTotal    *prometheus.CounterVec
	authorizationDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "helloservice"
	}

	m := &Metrics{}

	m.authorizationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "authorization_total",
			Help:      "Total number of API key authorization attempts",
		},
		[]string{"outcome"},
	)

	m.authorizationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "authorization_duration_seconds",
			Help:      "API key authorization duration in seconds",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"outcome"},
	)

	return m
}

// Init pre-initializes the outcome label values with zero counts so the
// series appear in /metrics output immediately after startup.
func (m *Metrics) Init() {
	for _, outcome := range []string{"success", "missing", "invalid", "config_error"} {
		m.authorizationTotal.WithLabelValues(outcome)
		m.authorizationDuration.WithLabelValues(outcome)
	}
}

// RecordAuthorization records an authorization attempt.
func (m *Metrics) RecordAuthorization(outcome string, duration time.Duration) {
	m.authorizationTotal.WithLabelValues(outcome).Inc()
	m.authorizationDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// Register registers the metrics with the given registry. Duplicate
// registration is ignored so providers can be recreated safely.
func (m *Metrics) Register(registry *prometheus.Registry) {
	for _, c := range []prometheus.Collector{
		m.authorizationTotal,
		m.authorizationDuration,
	} {
		if err := registry.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}
}
