package pipeline

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/vnykmshr/seqflow/pkg/streaming/cursor"
)

// ErrPipelineClosed is returned when a terminal operation runs on a pipeline
// that already completed one, or that was closed explicitly.
var ErrPipelineClosed = errors.New("pipeline is closed")

// ErrDuplicateResult is returned by OnlyOne when a second element exists.
var ErrDuplicateResult = errors.New("pipeline: more than one element")

// ErrInvalidArgument wraps argument-contract violations such as non-positive
// window sizes or negative skip counts. The pipeline is closed before the
// violation surfaces, so invalid input never leaks resources.
var ErrInvalidArgument = errors.New("pipeline: invalid argument")

// Pipeline is a lazy, single-pass, fallible sequence. It owns exactly one
// cursor, sort metadata used to fast-path Min/Max/Sorted, and a shutdown
// chain of at-most-once close actions.
//
// Pipelines are lazy: building one evaluates nothing; elements are pulled
// only by a terminal operation, which always runs the shutdown chain before
// returning, even on failure. A pipeline supports at most one terminal
// operation; a second attempt fails with ErrPipelineClosed.
//
// A pipeline that never reaches a terminal operation is not closed
// automatically; abandoning one mid-build or mid-consumption requires an
// explicit Close.
type Pipeline[T any] struct {
	cur    cursor.Cursor[T]
	chain  *closeChain
	sorted bool
	cmp    func(a, b T) int
	err    error
}

// New wraps a cursor in a pipeline. The pipeline takes exclusive ownership;
// the cursor's resources are released when the pipeline closes.
func New[T any](c cursor.Cursor[T]) *Pipeline[T] {
	return &Pipeline[T]{cur: c, chain: newCloseChain()}
}

// FromSlice returns a pipeline over the elements of slice.
func FromSlice[T any](slice []T) *Pipeline[T] {
	return New(cursor.FromSlice(slice))
}

// Of returns a pipeline over the given values.
func Of[T any](values ...T) *Pipeline[T] {
	return New(cursor.Of(values...))
}

// Empty returns a pipeline with no elements.
func Empty[T any]() *Pipeline[T] {
	return New(cursor.Empty[T]())
}

// FromChannel returns a pipeline receiving from ch until it is closed.
func FromChannel[T any](ch <-chan T) *Pipeline[T] {
	return New(cursor.FromChannel(ch))
}

// FromFunc returns a pipeline pulling elements from a fallible generator.
func FromFunc[T any](next func() (T, bool, error)) *Pipeline[T] {
	return New(cursor.FromFunc(next))
}

// Generate returns an infinite pipeline; bound it with Limit or TakeWhile.
func Generate[T any](generator func() T) *Pipeline[T] {
	return New(cursor.Generate(generator))
}

// Iterate returns an infinite pipeline of repeated applications of fn:
// seed, fn(seed), fn(fn(seed)), ...
func Iterate[T any](seed T, fn func(T) T) *Pipeline[T] {
	return New(cursor.Iterate(seed, fn))
}

// derive wraps a new cursor around the same shutdown chain. Sort metadata
// survives only through order-preserving element-keeping transforms.
func (p *Pipeline[T]) derive(c cursor.Cursor[T], keepSorted bool) *Pipeline[T] {
	np := &Pipeline[T]{cur: c, chain: p.chain, err: p.err}
	if keepSorted {
		np.sorted = p.sorted
		np.cmp = p.cmp
	}
	return np
}

// fail closes the pipeline and returns one that surfaces err from its next
// terminal operation.
func (p *Pipeline[T]) fail(err error) *Pipeline[T] {
	if cerr := p.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	return &Pipeline[T]{cur: cursor.Empty[T](), chain: p.chain, err: err}
}

// begin guards a terminal operation.
func (p *Pipeline[T]) begin() error {
	if p.err != nil {
		return p.err
	}
	if p.chain.isClosed() {
		return ErrPipelineClosed
	}
	return nil
}

// Close tears down the cursor stack and runs the shutdown chain front to
// back. Closing is idempotent; all failures surface, the first as primary
// with later ones attached.
func (p *Pipeline[T]) Close() error {
	if p.chain.isClosed() {
		return nil
	}
	var errs []error
	if p.cur != nil {
		if err := cursor.Close(p.cur); err != nil {
			errs = append(errs, err)
		}
	}
	if err := p.chain.close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// IsClosed reports whether the pipeline has been closed.
func (p *Pipeline[T]) IsClosed() bool {
	return p.chain.isClosed()
}

// OnClose registers a cleanup action to run when the pipeline closes. Actions
// run at most once each, newest first, ahead of previously registered ones.
func (p *Pipeline[T]) OnClose(fn CloseFunc) *Pipeline[T] {
	p.chain.push(fn)
	return p
}

// Filter returns a pipeline of the elements matching pred.
func (p *Pipeline[T]) Filter(pred func(T) (bool, error)) *Pipeline[T] {
	if p.err != nil {
		return p
	}
	return p.derive(cursor.Filter(p.cur, pred), true)
}

// Map returns a pipeline applying fn to each element. For a different
// element type use the package-level Map.
func (p *Pipeline[T]) Map(fn func(T) (T, error)) *Pipeline[T] {
	if p.err != nil {
		return p
	}
	return p.derive(cursor.Map(p.cur, fn), false)
}

// Peek returns a pipeline forwarding elements unchanged, running action on
// each one as it is consumed.
func (p *Pipeline[T]) Peek(action func(T) error) *Pipeline[T] {
	if p.err != nil {
		return p
	}
	return p.derive(cursor.Peek(p.cur, action), true)
}

// TakeWhile returns a pipeline of the longest matching prefix.
func (p *Pipeline[T]) TakeWhile(pred func(T) (bool, error)) *Pipeline[T] {
	if p.err != nil {
		return p
	}
	return p.derive(cursor.TakeWhile(p.cur, pred), true)
}

// DropWhile returns a pipeline without the longest matching prefix.
func (p *Pipeline[T]) DropWhile(pred func(T) (bool, error)) *Pipeline[T] {
	if p.err != nil {
		return p
	}
	return p.derive(cursor.DropWhile(p.cur, pred), true)
}

// Distinct returns a pipeline keeping the first occurrence of each element.
// Elements must be comparable; memory grows with the number of distinct
// elements seen.
func (p *Pipeline[T]) Distinct() *Pipeline[T] {
	if p.err != nil {
		return p
	}
	return p.derive(cursor.Distinct(p.cur), true)
}

// DistinctBy returns a pipeline keeping the first element seen per key.
func (p *Pipeline[T]) DistinctBy(key func(T) (any, error)) *Pipeline[T] {
	if p.err != nil {
		return p
	}
	return p.derive(cursor.DistinctBy(p.cur, key), true)
}

// Skip returns a pipeline without the first n elements. n must not be
// negative.
func (p *Pipeline[T]) Skip(n int64) *Pipeline[T] {
	if p.err != nil {
		return p
	}
	if n < 0 {
		return p.fail(fmt.Errorf("%w: negative skip count %d", ErrInvalidArgument, n))
	}
	return p.derive(cursor.SkipFirst(p.cur, n), true)
}

// Limit returns a pipeline of at most n elements. n must not be negative.
func (p *Pipeline[T]) Limit(n int64) *Pipeline[T] {
	if p.err != nil {
		return p
	}
	if n < 0 {
		return p.fail(fmt.Errorf("%w: negative limit %d", ErrInvalidArgument, n))
	}
	return p.derive(cursor.Limit(p.cur, n), true)
}

// FlatMap substitutes each element with the contents of the sub-pipeline
// produced by fn, draining each sub-pipeline to exhaustion before advancing.
// Every exhausted sub-pipeline's shutdown chain runs as soon as it is
// exhausted; a pending sub-pipeline is closed by the outer close. For a
// different element type use the package-level FlatMap.
func (p *Pipeline[T]) FlatMap(fn func(T) (*Pipeline[T], error)) *Pipeline[T] {
	if p.err != nil {
		return p
	}
	fm := cursor.FlatMap(p.cur, func(v T) (cursor.Cursor[T], error) {
		sub, err := fn(v)
		if err != nil {
			return nil, err
		}
		if sub.err != nil {
			return nil, sub.err
		}
		return &pipeCursor[T]{p: sub}, nil
	})
	return p.derive(fm, false)
}

// Append returns a pipeline of this pipeline's elements followed by the
// others'. Shutdown chains merge; every input is closed exactly once even
// when consumption stops early.
func (p *Pipeline[T]) Append(others ...*Pipeline[T]) *Pipeline[T] {
	return Concat(append([]*Pipeline[T]{p}, others...)...)
}

// Collapse merges each maximal run of elements related by adjacent into one
// element via merge. The adjacency predicate compares only the immediately
// preceding element to the next, strictly left to right.
func (p *Pipeline[T]) Collapse(adjacent func(a, b T) (bool, error), merge func(a, b T) (T, error)) *Pipeline[T] {
	if p.err != nil {
		return p
	}
	c := cursor.Collapse(p.cur, adjacent,
		func(first T) (T, error) { return first, nil },
		merge,
	)
	return p.derive(c, false)
}

// Scan returns the running fold of the pipeline under op; the first element
// passes through and seeds the accumulation.
func (p *Pipeline[T]) Scan(op func(acc, next T) (T, error)) *Pipeline[T] {
	if p.err != nil {
		return p
	}
	return p.derive(cursor.Scan(p.cur, op), false)
}

// ScanFrom returns the running fold of the pipeline under op starting from
// seed, one output per input.
func (p *Pipeline[T]) ScanFrom(seed T, op func(acc, next T) (T, error)) *Pipeline[T] {
	if p.err != nil {
		return p
	}
	return p.derive(cursor.ScanFrom(p.cur, seed, op), false)
}

// ScanFromInclusive is ScanFrom with the seed emitted as an extra leading
// element.
func (p *Pipeline[T]) ScanFromInclusive(seed T, op func(acc, next T) (T, error)) *Pipeline[T] {
	if p.err != nil {
		return p
	}
	return p.derive(cursor.ScanFromInclusive(p.cur, seed, op), false)
}

// pipeCursor exposes a sub-pipeline as a cursor whose Close runs the
// sub-pipeline's whole shutdown, so flatMap and concat close exhausted
// inputs eagerly.
type pipeCursor[T any] struct {
	p *Pipeline[T]
}

func (c *pipeCursor[T]) HasNext() (bool, error) { return c.p.cur.HasNext() }

func (c *pipeCursor[T]) Next() (T, error) { return c.p.cur.Next() }

func (c *pipeCursor[T]) Skip(n int64) (int64, error) { return cursor.Skip(c.p.cur, n) }

func (c *pipeCursor[T]) Count() (int64, error) { return cursor.Count(c.p.cur) }

func (c *pipeCursor[T]) Close() error { return c.p.Close() }

// failDerived builds an errored pipeline of a different element type over an
// already-closed chain.
func failDerived[U any](chain *closeChain, err error) *Pipeline[U] {
	return &Pipeline[U]{cur: cursor.Empty[U](), chain: chain, err: err}
}

// closeDerived closes p for an argument violation and carries the error
// into a pipeline of a different element type.
func closeDerived[U, T any](p *Pipeline[T], err error) *Pipeline[U] {
	if cerr := p.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	return &Pipeline[U]{cur: cursor.Empty[U](), chain: p.chain, err: err}
}

// sameComparator reports whether two comparators are the same function.
func sameComparator[T any](a, b func(x, y T) int) bool {
	if a == nil || b == nil {
		return false
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
