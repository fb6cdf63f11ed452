package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "medi_elevation"

// Metrics holds the collectors for elevation lookups and edit batches.
type Metrics struct {
	LookupsTotal   *prometheus.CounterVec
	LookupDuration *prometheus.HistogramVec
	BatchesTotal   *prometheus.CounterVec
	BatchEdits     prometheus.Histogram
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lookup",
			Name:      "requests_total",
			Help:      "Elevation lookups by provider and outcome",
		}, []string{"provider", "outcome"}),
		LookupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "lookup",
			Name:      "duration_seconds",
			Help:      "Elevation lookup latency in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		BatchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "batch",
			Name:      "total",
			Help:      "Edit batches by outcome (built or empty)",
		}, []string{"outcome"}),
		BatchEdits: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "batch",
			Name:      "edits",
			Help:      "Number of property edits per built batch",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
		}),
	}
	reg.MustRegister(m.LookupsTotal, m.LookupDuration, m.BatchesTotal, m.BatchEdits)
	return m
}

// NewUnregistered returns collectors that are not exposed anywhere, for
// callers that do not serve /metrics.
func NewUnregistered() *Metrics {
	return New(prometheus.NewRegistry())
}
