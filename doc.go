/*
Package seqflow provides lazy, pull-based, fallible sequence pipelines for Go.

Streaming (pkg/streaming):
  - cursor: the minimal pull contract (has-next / take-next) and composable
    cursor transformations, including windowing state machines
  - pipeline: the user-facing stream type with sort metadata, a shutdown
    chain, combinators and terminal evaluators
  - source: adapters for line-oriented readers, tabular row cursors and Redis

Scheduling (pkg/scheduling):
  - runner: submits whole consume-then-close pipeline jobs to a worker pool,
    one-shot or on a cron schedule

Example usage:

	import (
		"github.com/vnykmshr/seqflow/pkg/streaming/pipeline"
	)

	p := pipeline.FromSlice([]int{1, 2, 3, 4, 5, 6, 7})
	chunks, err := p.Split(3).ToSlice(context.Background())
	// chunks: [[1 2 3] [4 5 6] [7]]
*/
package seqflow
