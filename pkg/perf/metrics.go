// Package perf records how store operations behave: prometheus counters and
// latency histograms, plus an optional timing log enabled with TABDECK_PERF=1.
package perf

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeApplied = "applied"
	OutcomeNoop    = "noop"
)

// Metrics implements tabs.Recorder on a private prometheus registry.
type Metrics struct {
	registry *prometheus.Registry
	ops      *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tabdeck",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Tab store operations by outcome.",
		}, []string{"op", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tabdeck",
			Subsystem: "store",
			Name:      "operation_seconds",
			Help:      "Time spent inside tab store operations.",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		}, []string{"op"}),
	}
	m.registry.MustRegister(m.ops, m.latency)
	return m
}

// ObserveOp records one store operation.
func (m *Metrics) ObserveOp(op string, applied bool, elapsed time.Duration) {
	outcome := OutcomeNoop
	if applied {
		outcome = OutcomeApplied
	}
	m.ops.WithLabelValues(op, outcome).Inc()
	m.latency.WithLabelValues(op).Observe(elapsed.Seconds())
	Log("store %s %s: %v", op, outcome, elapsed)
}

// Registry exposes the registry for exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
