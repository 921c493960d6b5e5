// Package metrics provides Prometheus instrumentation for seqflow
// components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for seqflow components.
type Registry struct {
	// Pipeline metrics
	PipelineElements *prometheus.CounterVec
	PipelineErrors   *prometheus.CounterVec
	PipelineCloses   *prometheus.CounterVec
	CloseFailures    *prometheus.CounterVec

	// Runner metrics
	JobsSubmitted *prometheus.CounterVec
	JobsCompleted *prometheus.CounterVec
	JobsFailed    *prometheus.CounterVec
	JobDuration   *prometheus.HistogramVec
	QueueDepth    *prometheus.GaugeVec

	// Scheduler metrics
	ScheduledRuns *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by seqflow components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a metrics registry with the default configuration on
// the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	cfg := DefaultConfig()
	cfg.Registry = reg
	return NewRegistryWith(cfg)
}

// NewRegistryWith creates a metrics registry with the given configuration.
func NewRegistryWith(cfg Config) *Registry {
	factory := promauto.With(cfg.Registry)
	ns := cfg.Namespace

	return &Registry{
		PipelineElements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "pipeline",
				Name:      "elements_total",
				Help:      "Total number of elements pulled through pipelines",
			},
			[]string{"pipeline_name"},
		),

		PipelineErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "pipeline",
				Name:      "errors_total",
				Help:      "Total number of pipeline evaluation failures",
			},
			[]string{"pipeline_name"},
		),

		PipelineCloses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "pipeline",
				Name:      "closes_total",
				Help:      "Total number of pipeline shutdowns",
			},
			[]string{"pipeline_name"},
		),

		CloseFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "pipeline",
				Name:      "close_failures_total",
				Help:      "Total number of failed shutdown actions",
			},
			[]string{"pipeline_name"},
		),

		JobsSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "runner",
				Name:      "jobs_submitted_total",
				Help:      "Total number of jobs submitted to runners",
			},
			[]string{"runner_name"},
		),

		JobsCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "runner",
				Name:      "jobs_completed_total",
				Help:      "Total number of jobs completed successfully",
			},
			[]string{"runner_name"},
		),

		JobsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "runner",
				Name:      "jobs_failed_total",
				Help:      "Total number of jobs that failed",
			},
			[]string{"runner_name"},
		),

		JobDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Subsystem: "runner",
				Name:      "job_duration_seconds",
				Help:      "Time spent running jobs",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"runner_name"},
		),

		QueueDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ns,
				Subsystem: "runner",
				Name:      "queue_depth",
				Help:      "Number of jobs waiting in runner queues",
			},
			[]string{"runner_name"},
		),

		ScheduledRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "scheduler",
				Name:      "runs_total",
				Help:      "Total number of scheduled job runs",
			},
			[]string{"schedule_name"},
		),
	}
}
