package runner

import (
	"context"

	"github.com/vnykmshr/seqflow/pkg/streaming/pipeline"
)

// Jobs built from pipelines are whole consume-then-close units: the terminal
// operation inside Run drains the pipeline and runs its shutdown chain, so a
// submitted pipeline needs no further cleanup from the caller.

// Consume returns a job that drains p through action.
func Consume[T any](p *pipeline.Pipeline[T], action func(T) error) Job {
	return JobFunc(func(ctx context.Context) error {
		return p.ForEach(ctx, action)
	})
}

// Drain returns a job that consumes p for its side effects alone.
func Drain[T any](p *pipeline.Pipeline[T]) Job {
	return Consume(p, func(T) error { return nil })
}

// CollectInto returns a job that sends every element of p to out, closing
// out when the pipeline is exhausted or fails.
func CollectInto[T any](p *pipeline.Pipeline[T], out chan<- T) Job {
	return JobFunc(func(ctx context.Context) error {
		defer close(out)
		return p.ForEach(ctx, func(v T) error {
			select {
			case out <- v:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	})
}
