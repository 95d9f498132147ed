package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the server's Prometheus collectors.
type Metrics struct {
	Registry    *prometheus.Registry
	comparisons *prometheus.CounterVec
	duration    prometheus.Histogram
	cells       prometheus.Histogram
}

// NewMetrics registers the comparison collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "exdiff",
			Name:      "comparisons_total",
			Help:      "Comparisons handled, by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "exdiff",
			Name:      "comparison_duration_seconds",
			Help:      "Time spent loading and diffing a pair of files.",
			Buckets:   prometheus.DefBuckets,
		}),
		cells: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "exdiff",
			Name:      "changed_cells",
			Help:      "Changed cells per successful comparison.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
	m.Registry.MustRegister(m.comparisons, m.duration, m.cells)
	return m
}

// observe records one comparison attempt.
func (m *Metrics) observe(endpoint string, start time.Time, changedCells int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = toAPIError(err).ErrorCode
	}
	m.comparisons.WithLabelValues(endpoint, outcome).Inc()
	m.duration.Observe(time.Since(start).Seconds())
	if err == nil {
		m.cells.Observe(float64(changedCells))
	}
}
