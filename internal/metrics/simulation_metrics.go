// Package metrics defines simulation-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Simulation counter vectors
var (
	SimulationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulations_total",
		Help:      "Total number of simulation runs by status",
	}, []string{"status"})
	SimulationTrialsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulation_trials_total",
		Help:      "Total number of simulated games drawn",
	})
	FactorTagsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "factor_tags_total",
		Help:      "Total factor tags produced by category and tag",
	}, []string{"category", "tag"})
)

// Simulation histograms
var (
	SimulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "simulation_duration_seconds",
		Help:      "Duration of simulation runs in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})
	HomeWinProbability = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "home_win_probability",
		Help:      "Distribution of simulated home win probabilities",
		Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
	})
)

// RecordSimulation records a completed simulation run.
func RecordSimulation(trials int, homeWinProb, durationSeconds float64) {
	SimulationsTotal.WithLabelValues("success").Inc()
	SimulationTrialsTotal.Add(float64(trials))
	SimulationDuration.Observe(durationSeconds)
	HomeWinProbability.Observe(homeWinProb)
}

// RecordSimulationFailure records a failed simulation run.
// reason should be one of: "invalid_argument", "not_found", "internal", "cancelled"
func RecordSimulationFailure(reason string) {
	SimulationsTotal.WithLabelValues(reason).Inc()
}

// RecordFactorTags records every tag in a category-to-tag map.
func RecordFactorTags(tags map[string]string) {
	for category, tag := range tags {
		FactorTagsTotal.WithLabelValues(category, tag).Inc()
	}
}
