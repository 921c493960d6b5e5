package pipeline

import (
	"errors"
	"fmt"

	"github.com/vnykmshr/seqflow/pkg/streaming/cursor"
)

// Map returns a pipeline applying fn to each element of p, changing the
// element type. The result takes over p's shutdown chain.
func Map[T, U any](p *Pipeline[T], fn func(T) (U, error)) *Pipeline[U] {
	if p.err != nil {
		return failDerived[U](p.chain, p.err)
	}
	return &Pipeline[U]{cur: cursor.Map(p.cur, fn), chain: p.chain}
}

// FlatMap substitutes each element of p with the contents of the
// sub-pipeline produced by fn, changing the element type. Sub-pipelines are
// drained in order and each one's shutdown chain runs as soon as it is
// exhausted.
func FlatMap[T, U any](p *Pipeline[T], fn func(T) (*Pipeline[U], error)) *Pipeline[U] {
	if p.err != nil {
		return failDerived[U](p.chain, p.err)
	}
	fm := cursor.FlatMap(p.cur, func(v T) (cursor.Cursor[U], error) {
		sub, err := fn(v)
		if err != nil {
			return nil, err
		}
		if sub.err != nil {
			return nil, sub.err
		}
		return &pipeCursor[U]{p: sub}, nil
	})
	return &Pipeline[U]{cur: fm, chain: p.chain}
}

// Concat returns a pipeline over the elements of ps in order. Each input is
// closed as soon as it is exhausted; the merged shutdown chain guarantees
// every not-yet-closed input is closed exactly once even when consumption is
// abandoned mid-sequence.
func Concat[T any](ps ...*Pipeline[T]) *Pipeline[T] {
	chain := newCloseChain()
	for _, p := range ps {
		chain.concat(p.chain)
	}
	for _, p := range ps {
		if p.err != nil {
			// the merged pipeline never wraps the healthy inputs' cursors,
			// so they must be closed here, not left to the merged close
			err := p.err
			for _, q := range ps {
				if q.err == nil {
					if cerr := q.Close(); cerr != nil {
						err = errors.Join(err, cerr)
					}
				}
			}
			return &Pipeline[T]{cur: cursor.Empty[T](), chain: chain, err: err}
		}
	}
	curs := make([]cursor.Cursor[T], len(ps))
	for i, p := range ps {
		curs[i] = &pipeCursor[T]{p: p}
	}
	return &Pipeline[T]{cur: cursor.Concat(curs...), chain: chain}
}

// Split returns a pipeline grouping consecutive elements of p into chunks
// of size elements; the last chunk may be shorter. size must be positive.
// The result takes over p's shutdown chain.
func Split[T any](p *Pipeline[T], size int64) *Pipeline[[]T] {
	if p.err != nil {
		return failDerived[[]T](p.chain, p.err)
	}
	if size <= 0 {
		return closeDerived[[]T](p, fmt.Errorf("%w: non-positive chunk size %d", ErrInvalidArgument, size))
	}
	return &Pipeline[[]T]{cur: cursor.Split(p.cur, size), chain: p.chain}
}

// Sliding returns a pipeline of windows of up to window elements of p, each
// starting increment elements after the previous one. Both arguments must be
// positive. The final window may be shorter when fewer elements remain.
func Sliding[T any](p *Pipeline[T], window, increment int64) *Pipeline[[]T] {
	if p.err != nil {
		return failDerived[[]T](p.chain, p.err)
	}
	if window <= 0 || increment <= 0 {
		return closeDerived[[]T](p, fmt.Errorf(
			"%w: non-positive window %d or increment %d", ErrInvalidArgument, window, increment))
	}
	return &Pipeline[[]T]{cur: cursor.Sliding(p.cur, window, increment), chain: p.chain}
}

// TailMode selects how sliding tuple transforms treat a trailing incomplete
// tuple.
type TailMode int

const (
	// PadTail passes the incomplete tuple with zero values in the missing
	// slots.
	PadTail TailMode = iota
	// DropTail ignores the incomplete tuple.
	DropTail
)

// MapPairs transforms two-element sliding windows of p with fn. increment
// follows Sliding semantics; tail selects the treatment of a trailing
// single-element window.
func MapPairs[T, U any](p *Pipeline[T], increment int64, tail TailMode, fn func(a, b T) (U, error)) *Pipeline[U] {
	if p.err != nil {
		return failDerived[U](p.chain, p.err)
	}
	if increment <= 0 {
		return closeDerived[U](p, fmt.Errorf("%w: non-positive increment %d", ErrInvalidArgument, increment))
	}
	win := cursor.Sliding(p.cur, 2, increment)
	if tail == DropTail {
		win = cursor.Filter(win, func(w []T) (bool, error) { return len(w) == 2, nil })
	}
	mapped := cursor.Map(win, func(w []T) (U, error) {
		var a, b T
		a = w[0]
		if len(w) > 1 {
			b = w[1]
		}
		return fn(a, b)
	})
	return &Pipeline[U]{cur: mapped, chain: p.chain}
}

// MapTriples transforms three-element sliding windows of p with fn, with the
// same increment and tail semantics as MapPairs.
func MapTriples[T, U any](p *Pipeline[T], increment int64, tail TailMode, fn func(a, b, c T) (U, error)) *Pipeline[U] {
	if p.err != nil {
		return failDerived[U](p.chain, p.err)
	}
	if increment <= 0 {
		return closeDerived[U](p, fmt.Errorf("%w: non-positive increment %d", ErrInvalidArgument, increment))
	}
	win := cursor.Sliding(p.cur, 3, increment)
	if tail == DropTail {
		win = cursor.Filter(win, func(w []T) (bool, error) { return len(w) == 3, nil })
	}
	mapped := cursor.Map(win, func(w []T) (U, error) {
		var a, b, c T
		a = w[0]
		if len(w) > 1 {
			b = w[1]
		}
		if len(w) > 2 {
			c = w[2]
		}
		return fn(a, b, c)
	})
	return &Pipeline[U]{cur: mapped, chain: p.chain}
}

// CollapseToSlices merges each maximal run of adjacent elements into a
// slice.
func CollapseToSlices[T any](p *Pipeline[T], adjacent func(a, b T) (bool, error)) *Pipeline[[]T] {
	if p.err != nil {
		return failDerived[[]T](p.chain, p.err)
	}
	c := cursor.Collapse(p.cur, adjacent,
		func(first T) ([]T, error) { return []T{first}, nil },
		func(acc []T, next T) ([]T, error) { return append(acc, next), nil },
	)
	return &Pipeline[[]T]{cur: c, chain: p.chain}
}

// CollapseFold merges each run by seeding an accumulator from the run's
// first element and folding in the rest.
func CollapseFold[T, R any](
	p *Pipeline[T],
	adjacent func(a, b T) (bool, error),
	seed func(first T) (R, error),
	fold func(acc R, next T) (R, error),
) *Pipeline[R] {
	if p.err != nil {
		return failDerived[R](p.chain, p.err)
	}
	return &Pipeline[R]{cur: cursor.Collapse(p.cur, adjacent, seed, fold), chain: p.chain}
}

// CollapseSeeded merges each run by folding its elements onto initial with
// combine.
func CollapseSeeded[T any](
	p *Pipeline[T],
	adjacent func(a, b T) (bool, error),
	initial T,
	combine func(acc, next T) (T, error),
) *Pipeline[T] {
	return CollapseFold(p, adjacent,
		func(first T) (T, error) { return combine(initial, first) },
		combine,
	)
}

// CollapseCollect merges each run through a generic collector.
func CollapseCollect[T, A, R any](
	p *Pipeline[T],
	adjacent func(a, b T) (bool, error),
	col Collector[T, A, R],
) *Pipeline[R] {
	if p.err != nil {
		return failDerived[R](p.chain, p.err)
	}
	runs := cursor.Collapse(p.cur, adjacent,
		func(first T) (A, error) { return col.Accumulate(col.Supply(), first) },
		col.Accumulate,
	)
	return &Pipeline[R]{cur: cursor.Map(runs, col.Finish), chain: p.chain}
}
