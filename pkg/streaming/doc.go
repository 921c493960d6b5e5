/*
Package streaming provides lazy, pull-based, fallible sequence processing.

This package provides three components:

  - cursor: the minimal pull contract and its composable implementations
  - pipeline: the user-facing stream type with combinators, windowing,
    terminal operations, and deterministic shutdown
  - source: adapters exposing readers, tabular rows, and Redis scans as
    cursors

Basic usage:

	p := pipeline.FromSlice(records).
		Filter(valid).
		Map(normalize)
	result, err := p.ToSlice(ctx)

Every callback in the pipeline is fallible, failures propagate unchanged to
the terminal operation, and the pipeline's shutdown chain runs exactly once
no matter how consumption ends.
*/
package streaming
