/*
Package runner executes whole pipeline consumptions as background jobs.

A pipeline is single-threaded by design; the runner is the escape hatch for
running its one terminal operation off the caller's goroutine. Each job is an
opaque consume-then-close unit submitted to a fixed worker pool:

	r := runner.New(4, 64)
	defer r.Shutdown()

	p := pipeline.FromSlice(records).
		Filter(valid).
		OnClose(releaseSource)

	id, err := r.Submit("ingest", runner.Consume(p, store))

Job outcomes arrive on Results with the submission id, duration, and error.
Recurring jobs run on cron schedules through Scheduler:

	s := runner.NewScheduler(r)
	s.Schedule("@every 1h", "compact", compactJob)
	s.Start()

The runner logs per-job events with zerolog and records Prometheus metrics
into the configured registry.
*/
package runner
