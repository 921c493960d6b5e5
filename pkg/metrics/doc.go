// Package metrics provides Prometheus instrumentation for seqflow components.
//
// This package enables monitoring for pipeline consumption and background job
// execution through Prometheus metrics.
//
// # Quick Start
//
// The runner records into the default registry automatically; expose it via
// HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	reg := prometheus.NewRegistry()
//	registry := metrics.NewRegistry(reg)
//
// # Available Metrics
//
// ## Pipeline Metrics
//
//   - seqflow_pipeline_elements_total: Total number of elements pulled through pipelines
//   - seqflow_pipeline_errors_total: Total number of pipeline evaluation failures
//   - seqflow_pipeline_closes_total: Total number of pipeline shutdowns
//   - seqflow_pipeline_close_failures_total: Total number of failed shutdown actions
//
// ## Runner Metrics
//
//   - seqflow_runner_jobs_submitted_total: Total number of jobs submitted to runners
//   - seqflow_runner_jobs_completed_total: Total number of jobs completed successfully
//   - seqflow_runner_jobs_failed_total: Total number of jobs that failed
//   - seqflow_runner_job_duration_seconds: Time spent running jobs
//   - seqflow_runner_queue_depth: Number of jobs waiting in runner queues
//
// ## Scheduler Metrics
//
//   - seqflow_scheduler_runs_total: Total number of scheduled job runs
//
// # Labels
//
//   - pipeline_name: User-provided name for the pipeline
//   - runner_name: User-provided name for the runner instance
//   - schedule_name: User-provided name for the recurring job
//
// Metrics are updated only when operations occur; the package starts no
// background goroutines or timers.
package metrics
