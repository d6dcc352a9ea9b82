package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/warpmining/procopt/internal/optimization"
)

// Metrics instruments completed optimization runs.
type Metrics struct {
	runs        *prometheus.CounterVec
	improvement prometheus.Histogram
}

// NewMetrics registers the server's collectors on the given
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "procopt",
			Name:      "optimization_runs_total",
			Help:      "Completed optimization runs by objective and algorithm.",
		}, []string{"objective", "algorithm"}),
		improvement: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "procopt",
			Name:      "optimization_improvement_pct",
			Help:      "Reported improvement percentage per run.",
			Buckets:   prometheus.LinearBuckets(0, 5, 11), // 0..50 in 5pt steps
		}),
	}
}

// ObserveRun records a completed single-objective run.
func (m *Metrics) ObserveRun(result *optimization.OptimizationResult) {
	m.runs.WithLabelValues(string(result.Objective), string(result.Algorithm)).Inc()
	m.improvement.Observe(result.ImprovementPct)
}

// ObserveMultiObjectiveRun records a completed multi-objective run.
func (m *Metrics) ObserveMultiObjectiveRun(result *optimization.MultiObjectiveResult) {
	m.runs.WithLabelValues(string(optimization.MultiObjective), string(result.Algorithm)).Inc()
}
