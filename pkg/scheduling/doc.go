/*
Package scheduling provides background execution for pipeline consumption.

  - runner: fixed worker pool running whole consume-then-close pipeline jobs,
    with cron-style recurring submissions

A pipeline itself is strictly single-threaded; the runner moves its one
terminal operation off the caller's goroutine as an opaque unit:

	r := runner.New(4, 100) // 4 workers, queue size 100
	defer r.Shutdown()

	r.Submit("ingest", runner.Consume(p, handle))
	result := <-r.Results()

All scheduling components are thread-safe and integrate with context for
cancellation and timeout handling.
*/
package scheduling
