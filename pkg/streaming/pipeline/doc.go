/*
Package pipeline provides the user-facing lazy stream type: a cursor plus
sort metadata and a shutdown chain.

Pipelines are:
  - Lazy: building a pipeline evaluates nothing; callbacks first fire on the
    first pull of a terminal operation
  - Fallible end to end: every callback returns an error, and any failure
    from a source or callback propagates unchanged through every combinator
  - Single-pass: one terminal operation per pipeline; a second attempt fails
    with ErrPipelineClosed
  - Resource-safe: every terminal operation runs the shutdown chain before
    returning, even when the drain failed

Basic usage:

	p := pipeline.FromSlice([]int{1, 2, 3, 4, 5, 6})
	result, err := p.
		Filter(func(v int) (bool, error) { return v%2 == 0, nil }).
		Map(func(v int) (int, error) { return v * 10, nil }).
		ToSlice(context.Background())
	// result: [20 40 60]

Type-changing transforms are package functions because Go methods cannot
introduce type parameters:

	lengths, err := pipeline.Map(words, func(w string) (int, error) {
		return len(w), nil
	}).ToSlice(ctx)

Windowing (Split and Sliding are package functions for the same reason,
their element type is a slice of the input's):

	pipeline.Split(p, 3)       // chunks: [1 2 3] [4 5 6] [7]
	pipeline.Sliding(p, 3, 1)  // overlapping windows: [1 2 3] [2 3 4] [3 4 5]
	p.Collapse(adjacent, merge)  // one element per maximal run
	p.Scan(op)       // running fold

Shutdown:

Close actions registered with OnClose run at most once each, newest first.
Concat and FlatMap merge the shutdown chains of their inputs: every input is
closed exactly once, as soon as it is exhausted or at outer close, whichever
comes first. A pipeline that never reaches a terminal operation must be
closed explicitly by its owner.

Sorting:

Sorted buffers the whole sequence, then marks the result known-sorted: a
second Sorted call with the identical comparator is a no-op, Min returns the
first element and Max the last without comparator calls.
*/
package pipeline
