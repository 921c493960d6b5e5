package runner

import (
	"context"

	"github.com/robfig/cron/v3"
)

// Scheduler submits recurring jobs to a runner on cron schedules.
type Scheduler struct {
	runner *Runner
	cron   *cron.Cron
}

// NewScheduler creates a scheduler feeding the given runner. Schedules use
// the standard five-field cron syntax plus descriptors such as "@every 5m".
func NewScheduler(r *Runner) *Scheduler {
	return &Scheduler{runner: r, cron: cron.New()}
}

// NewSecondScheduler creates a scheduler with second-level granularity
// (six-field cron syntax).
func NewSecondScheduler(r *Runner) *Scheduler {
	return &Scheduler{runner: r, cron: cron.New(cron.WithSeconds())}
}

// Schedule registers a job to be submitted on every tick of spec. The
// returned entry id can be passed to Remove.
func (s *Scheduler) Schedule(spec, name string, job Job) (cron.EntryID, error) {
	return s.cron.AddFunc(spec, func() {
		s.runner.cfg.Metrics.ScheduledRuns.WithLabelValues(name).Inc()
		if _, err := s.runner.Submit(name, job); err != nil {
			s.runner.cfg.Logger.Error().
				Err(err).
				Str("job", name).
				Msg("scheduled submission failed")
		}
	})
}

// Remove unregisters a scheduled job.
func (s *Scheduler) Remove(id cron.EntryID) {
	s.cron.Remove(id)
}

// Start begins firing schedules in a background goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops firing schedules. The returned context is done when all
// in-flight scheduled submissions have returned.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
