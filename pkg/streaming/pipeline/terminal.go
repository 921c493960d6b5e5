package pipeline

import (
	"context"
	"errors"

	"github.com/vnykmshr/seqflow/pkg/streaming/cursor"
)

// Every terminal operation follows the same shape: guard against reuse,
// drain the cursor, and close the pipeline in a deferred step that runs even
// when the drain failed. A failure from the drain stays primary; close
// failures are attached to it.

// closeInto merges the shutdown outcome into the terminal operation's error.
func (p *Pipeline[T]) closeInto(errp *error) {
	cerr := p.Close()
	if cerr == nil {
		return
	}
	if *errp == nil {
		*errp = cerr
	} else {
		*errp = errors.Join(*errp, cerr)
	}
}

// ForEach performs action on every element, in source order.
func (p *Pipeline[T]) ForEach(ctx context.Context, action func(T) error) (err error) {
	if err = p.begin(); err != nil {
		return err
	}
	defer p.closeInto(&err)

	for {
		ok, herr := p.cur.HasNext()
		if herr != nil {
			return herr
		}
		if !ok {
			return nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		v, nerr := p.cur.Next()
		if nerr != nil {
			return nerr
		}
		if aerr := action(v); aerr != nil {
			return aerr
		}
	}
}

// ToSlice drains the pipeline into a slice.
func (p *Pipeline[T]) ToSlice(ctx context.Context) (result []T, err error) {
	err = p.ForEach(ctx, func(v T) error {
		result = append(result, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Count returns the number of elements, using bulk counting when the cursor
// supports it.
func (p *Pipeline[T]) Count(ctx context.Context) (n int64, err error) {
	if err = p.begin(); err != nil {
		return 0, err
	}
	defer p.closeInto(&err)

	if cerr := ctx.Err(); cerr != nil {
		return 0, cerr
	}
	return cursor.Count(p.cur)
}

// Reduce combines all elements with op. The second result is false when the
// pipeline was empty.
func (p *Pipeline[T]) Reduce(ctx context.Context, op func(a, b T) (T, error)) (T, bool, error) {
	var acc T
	found := false
	err := p.ForEach(ctx, func(v T) error {
		if !found {
			acc = v
			found = true
			return nil
		}
		var aerr error
		acc, aerr = op(acc, v)
		return aerr
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return acc, found, nil
}

// Fold folds all elements onto seed with op.
func (p *Pipeline[T]) Fold(ctx context.Context, seed T, op func(acc, next T) (T, error)) (T, error) {
	acc := seed
	err := p.ForEach(ctx, func(v T) error {
		var aerr error
		acc, aerr = op(acc, v)
		return aerr
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return acc, nil
}

// First returns the first element, if any, closing the pipeline without
// draining the rest.
func (p *Pipeline[T]) First(ctx context.Context) (v T, found bool, err error) {
	if err = p.begin(); err != nil {
		return v, false, err
	}
	defer p.closeInto(&err)

	if cerr := ctx.Err(); cerr != nil {
		return v, false, cerr
	}
	ok, herr := p.cur.HasNext()
	if herr != nil || !ok {
		return v, false, herr
	}
	v, err = p.cur.Next()
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v, true, nil
}

// Last drains the pipeline and returns its final element, if any.
func (p *Pipeline[T]) Last(ctx context.Context) (T, bool, error) {
	var last T
	found := false
	err := p.ForEach(ctx, func(v T) error {
		last = v
		found = true
		return nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return last, found, nil
}

// OnlyOne returns the sole element of the pipeline. It fails with
// ErrDuplicateResult when a second element exists and returns found=false
// when the pipeline is empty; either way the pipeline is closed.
func (p *Pipeline[T]) OnlyOne(ctx context.Context) (v T, found bool, err error) {
	if err = p.begin(); err != nil {
		return v, false, err
	}
	defer p.closeInto(&err)

	if cerr := ctx.Err(); cerr != nil {
		return v, false, cerr
	}
	ok, herr := p.cur.HasNext()
	if herr != nil || !ok {
		return v, false, herr
	}
	v, err = p.cur.Next()
	if err != nil {
		var zero T
		return zero, false, err
	}
	ok, herr = p.cur.HasNext()
	if herr != nil {
		var zero T
		return zero, false, herr
	}
	if ok {
		var zero T
		return zero, false, ErrDuplicateResult
	}
	return v, true, nil
}

// Min returns the minimum element according to cmp. When the pipeline is
// known sorted by the same comparator this is its first element.
func (p *Pipeline[T]) Min(ctx context.Context, cmp func(a, b T) int) (T, bool, error) {
	if p.err == nil && p.sorted && sameComparator(p.cmp, cmp) {
		return p.First(ctx)
	}
	var best T
	found := false
	err := p.ForEach(ctx, func(v T) error {
		if !found || cmp(v, best) < 0 {
			best = v
			found = true
		}
		return nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return best, found, nil
}

// Max returns the maximum element according to cmp. When the pipeline is
// known sorted by the same comparator this is its last element, found
// without any comparator calls.
func (p *Pipeline[T]) Max(ctx context.Context, cmp func(a, b T) int) (T, bool, error) {
	if p.err == nil && p.sorted && sameComparator(p.cmp, cmp) {
		return p.Last(ctx)
	}
	var best T
	found := false
	err := p.ForEach(ctx, func(v T) error {
		if !found || cmp(v, best) > 0 {
			best = v
			found = true
		}
		return nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return best, found, nil
}

// AnyMatch reports whether any element matches pred, short-circuiting on the
// first match.
func (p *Pipeline[T]) AnyMatch(ctx context.Context, pred func(T) (bool, error)) (matched bool, err error) {
	if err = p.begin(); err != nil {
		return false, err
	}
	defer p.closeInto(&err)

	for {
		ok, herr := p.cur.HasNext()
		if herr != nil {
			return false, herr
		}
		if !ok {
			return false, nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return false, cerr
		}
		v, nerr := p.cur.Next()
		if nerr != nil {
			return false, nerr
		}
		m, perr := pred(v)
		if perr != nil {
			return false, perr
		}
		if m {
			return true, nil
		}
	}
}

// AllMatch reports whether every element matches pred, short-circuiting on
// the first mismatch.
func (p *Pipeline[T]) AllMatch(ctx context.Context, pred func(T) (bool, error)) (bool, error) {
	matched, err := p.AnyMatch(ctx, func(v T) (bool, error) {
		m, perr := pred(v)
		return !m, perr
	})
	if err != nil {
		return false, err
	}
	return !matched, nil
}

// NoneMatch reports whether no element matches pred.
func (p *Pipeline[T]) NoneMatch(ctx context.Context, pred func(T) (bool, error)) (bool, error) {
	matched, err := p.AnyMatch(ctx, pred)
	if err != nil {
		return false, err
	}
	return !matched, nil
}

// ToSet drains p into a set.
func ToSet[T comparable](ctx context.Context, p *Pipeline[T]) (map[T]struct{}, error) {
	set := make(map[T]struct{})
	err := p.ForEach(ctx, func(v T) error {
		set[v] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Fold folds all elements of p onto seed with op, changing the result type.
func Fold[T, R any](ctx context.Context, p *Pipeline[T], seed R, op func(acc R, next T) (R, error)) (R, error) {
	acc := seed
	err := p.ForEach(ctx, func(v T) error {
		var aerr error
		acc, aerr = op(acc, v)
		return aerr
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return acc, nil
}
