// Package metrics defines the Prometheus instrumentation of the TAIGA
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	RunsStarted   *prometheus.CounterVec
	RunsCompleted *prometheus.CounterVec
	RunsFailed    *prometheus.CounterVec
	Evaluations   prometheus.Counter
	RunDuration   *prometheus.HistogramVec
	Generations   *prometheus.HistogramVec
}

// New registers the service collectors with the given registerer. Passing
// nil registers with the default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RunsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taiga_runs_started_total",
			Help: "Optimization runs started, by method.",
		}, []string{"method"}),
		RunsCompleted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taiga_runs_completed_total",
			Help: "Optimization runs completed successfully, by method.",
		}, []string{"method"}),
		RunsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taiga_runs_failed_total",
			Help: "Optimization runs that ended in an error, by method.",
		}, []string{"method"}),
		Evaluations: factory.NewCounter(prometheus.CounterOpts{
			Name: "taiga_objective_evaluations_total",
			Help: "Objective function evaluations across all runs.",
		}),
		RunDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taiga_run_duration_seconds",
			Help:    "Wall-clock duration of optimization runs, by method.",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"method"}),
		Generations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taiga_run_generations",
			Help:    "Completed generations per run, by method.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"method"}),
	}
}
