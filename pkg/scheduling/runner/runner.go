package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vnykmshr/seqflow/pkg/metrics"
)

// ErrRunnerShutdown is returned by Submit after Shutdown has been called.
var ErrRunnerShutdown = errors.New("runner: shut down")

// Job is one opaque unit of work. A pipeline job consumes its pipeline to a
// terminal operation and closes it within a single Run call; the runner
// never looks inside.
type Job interface {
	// Run executes the job. It should respect context cancellation and
	// return any error encountered.
	Run(ctx context.Context) error
}

// JobFunc is a function type that implements the Job interface.
type JobFunc func(ctx context.Context) error

// Run implements the Job interface for JobFunc.
func (f JobFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Result is the outcome of one job execution.
type Result struct {
	// ID is the submission id returned by Submit.
	ID uuid.UUID

	// Name is the name the job was submitted under.
	Name string

	// Err is any error the job returned, including recovered panics.
	Err error

	// Duration is how long the job took to run.
	Duration time.Duration

	// WorkerID identifies which worker ran the job.
	WorkerID int
}

// Config holds configuration options for creating a runner.
type Config struct {
	// Name labels the runner in logs and metrics. Defaults to "default".
	Name string

	// Workers is the number of concurrent workers. Defaults to 4.
	Workers int

	// QueueSize is the capacity of the job queue. Defaults to 64.
	QueueSize int

	// JobTimeout bounds each job's execution. Zero means no timeout.
	JobTimeout time.Duration

	// Logger receives per-job structured logs. Defaults to a no-op logger.
	Logger zerolog.Logger

	// Metrics receives runner instrumentation. Defaults to
	// metrics.DefaultRegistry.
	Metrics *metrics.Registry
}

type submission struct {
	id   uuid.UUID
	name string
	job  Job
	ctx  context.Context
}

// Runner executes submitted jobs on a fixed pool of workers. Each job is one
// atomic unit; the runner provides no intra-job parallelism.
type Runner struct {
	cfg     Config
	queue   chan submission
	results chan Result

	shutdownCh   chan struct{}
	shutdownOnce sync.Once

	mu         sync.RWMutex
	isShutdown bool

	wg sync.WaitGroup
}

// New creates a runner with the given worker count and queue size.
func New(workers, queueSize int) *Runner {
	return NewWithConfig(Config{Workers: workers, QueueSize: queueSize})
}

// NewWithConfig creates a runner with the given configuration, applying
// defaults for zero fields.
func NewWithConfig(cfg Config) *Runner {
	if cfg.Name == "" {
		cfg.Name = "default"
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.DefaultRegistry
	}

	r := &Runner{
		cfg:        cfg,
		queue:      make(chan submission, cfg.QueueSize),
		results:    make(chan Result, cfg.QueueSize+cfg.Workers),
		shutdownCh: make(chan struct{}),
	}

	for i := 0; i < cfg.Workers; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
	return r
}

// Submit queues a job for execution under context.Background().
func (r *Runner) Submit(name string, job Job) (uuid.UUID, error) {
	return r.SubmitWithContext(context.Background(), name, job)
}

// SubmitWithContext queues a job for execution. The context is passed to the
// job's Run method and also bounds the queuing itself.
func (r *Runner) SubmitWithContext(ctx context.Context, name string, job Job) (uuid.UUID, error) {
	if job == nil {
		return uuid.Nil, errors.New("runner: nil job")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	r.mu.RLock()
	isShutdown := r.isShutdown
	r.mu.RUnlock()
	if isShutdown {
		return uuid.Nil, ErrRunnerShutdown
	}

	if err := ctx.Err(); err != nil {
		return uuid.Nil, fmt.Errorf("runner: submit canceled: %w", err)
	}

	sub := submission{id: uuid.New(), name: name, job: job, ctx: ctx}
	select {
	case r.queue <- sub:
	case <-r.shutdownCh:
		return uuid.Nil, ErrRunnerShutdown
	case <-ctx.Done():
		return uuid.Nil, fmt.Errorf("runner: submit canceled: %w", ctx.Err())
	}

	r.cfg.Metrics.JobsSubmitted.WithLabelValues(r.cfg.Name).Inc()
	r.cfg.Metrics.QueueDepth.WithLabelValues(r.cfg.Name).Set(float64(len(r.queue)))
	r.cfg.Logger.Debug().
		Str("runner", r.cfg.Name).
		Str("job_id", sub.id.String()).
		Str("job", name).
		Msg("job submitted")
	return sub.id, nil
}

// Results returns the channel of job results. It is closed when Shutdown
// completes.
func (r *Runner) Results() <-chan Result {
	return r.results
}

// Shutdown stops accepting new jobs, runs the already-queued ones, and
// returns a channel that closes when every worker has finished.
func (r *Runner) Shutdown() <-chan struct{} {
	done := make(chan struct{})

	r.shutdownOnce.Do(func() {
		r.mu.Lock()
		r.isShutdown = true
		r.mu.Unlock()
		close(r.shutdownCh)

		go func() {
			r.wg.Wait()
			close(r.results)
			close(done)
		}()
	})

	return done
}

// Size returns the number of workers.
func (r *Runner) Size() int {
	return r.cfg.Workers
}

// QueueDepth returns the number of jobs waiting for a worker.
func (r *Runner) QueueDepth() int {
	return len(r.queue)
}

func (r *Runner) worker(id int) {
	defer r.wg.Done()

	for {
		select {
		case sub := <-r.queue:
			r.execute(id, sub)
		case <-r.shutdownCh:
			// run out the queue before stopping
			for {
				select {
				case sub := <-r.queue:
					r.execute(id, sub)
				default:
					return
				}
			}
		}
	}
}

func (r *Runner) execute(workerID int, sub submission) {
	start := time.Now()
	var err error

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("runner: job panicked: %v\n%s", rec, debug.Stack())
		}
		duration := time.Since(start)
		r.record(sub, workerID, duration, err)
		r.sendResult(Result{
			ID:       sub.id,
			Name:     sub.name,
			Err:      err,
			Duration: duration,
			WorkerID: workerID,
		})
	}()

	ctx := sub.ctx
	if r.cfg.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.JobTimeout)
		defer cancel()
	}
	err = sub.job.Run(ctx)
}

func (r *Runner) record(sub submission, workerID int, duration time.Duration, err error) {
	reg := r.cfg.Metrics
	reg.JobDuration.WithLabelValues(r.cfg.Name).Observe(duration.Seconds())
	reg.QueueDepth.WithLabelValues(r.cfg.Name).Set(float64(len(r.queue)))

	event := r.cfg.Logger.Debug()
	if err != nil {
		reg.JobsFailed.WithLabelValues(r.cfg.Name).Inc()
		event = r.cfg.Logger.Error().Err(err)
	} else {
		reg.JobsCompleted.WithLabelValues(r.cfg.Name).Inc()
	}
	event.
		Str("runner", r.cfg.Name).
		Str("job_id", sub.id.String()).
		Str("job", sub.name).
		Int("worker", workerID).
		Dur("duration", duration).
		Msg("job finished")
}

// sendResult delivers a result without blocking shutdown indefinitely.
func (r *Runner) sendResult(result Result) {
	select {
	case r.results <- result:
	case <-time.After(100 * time.Millisecond):
		// nobody is reading results; dropping is acceptable
	}
}
