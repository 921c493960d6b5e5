package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/vnykmshr/seqflow/pkg/streaming/cursor"
)

// ErrDuplicateKey is returned by ToMap when two elements map to the same key
// and no duplicate policy allows it.
var ErrDuplicateKey = errors.New("pipeline: duplicate key")

// Group is one key with every element that mapped to it, in encounter
// order.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// lazyGroups defers the full-drain grouping until the first pull, then
// replays from the materialized groups. Grouping is necessarily eager
// internally even though the returned pipeline is lazy: there is a single
// materialization point, not per-key laziness.
type lazyGroups[K comparable, T any] struct {
	src     cursor.Cursor[T]
	key     func(T) (K, error)
	groups  []Group[K, T]
	index   int
	loaded  bool
	loadErr error
}

// load latches its first failure so a retried pull never serves the
// partially built groups.
func (g *lazyGroups[K, T]) load() error {
	if g.loaded {
		return g.loadErr
	}
	g.loaded = true
	seen := make(map[K]int)
	for {
		ok, err := g.src.HasNext()
		if err != nil {
			g.loadErr = err
			return err
		}
		if !ok {
			return nil
		}
		v, err := g.src.Next()
		if err != nil {
			g.loadErr = err
			return err
		}
		k, err := g.key(v)
		if err != nil {
			g.loadErr = err
			return err
		}
		if i, dup := seen[k]; dup {
			g.groups[i].Items = append(g.groups[i].Items, v)
			continue
		}
		seen[k] = len(g.groups)
		g.groups = append(g.groups, Group[K, T]{Key: k, Items: []T{v}})
	}
}

func (g *lazyGroups[K, T]) HasNext() (bool, error) {
	if err := g.load(); err != nil {
		return false, err
	}
	return g.index < len(g.groups), nil
}

func (g *lazyGroups[K, T]) Next() (Group[K, T], error) {
	if err := g.load(); err != nil {
		return Group[K, T]{}, err
	}
	if g.index >= len(g.groups) {
		return Group[K, T]{}, cursor.ErrNoSuchElement
	}
	v := g.groups[g.index]
	g.index++
	return v, nil
}

func (g *lazyGroups[K, T]) Close() error { return cursor.Close(g.src) }

// GroupBy returns a pipeline of groups keyed by key, in first-seen key
// order. The grouping drains the whole upstream on the first pull of the
// result.
func GroupBy[T any, K comparable](p *Pipeline[T], key func(T) (K, error)) *Pipeline[Group[K, T]] {
	if p.err != nil {
		return failDerived[Group[K, T]](p.chain, p.err)
	}
	return &Pipeline[Group[K, T]]{
		cur:   &lazyGroups[K, T]{src: p.cur, key: key},
		chain: p.chain,
	}
}

// GroupTo drains p into a map from key to the elements that mapped to it.
func GroupTo[T any, K comparable](ctx context.Context, p *Pipeline[T], key func(T) (K, error)) (map[K][]T, error) {
	out := make(map[K][]T)
	err := p.ForEach(ctx, func(v T) error {
		k, kerr := key(v)
		if kerr != nil {
			return kerr
		}
		out[k] = append(out[k], v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GroupToCollect drains p into a map from key to the result of folding that
// key's elements through col.
func GroupToCollect[T any, K comparable, A, R any](
	ctx context.Context,
	p *Pipeline[T],
	key func(T) (K, error),
	col Collector[T, A, R],
) (map[K]R, error) {
	accs := make(map[K]A)
	var order []K
	err := p.ForEach(ctx, func(v T) error {
		k, kerr := key(v)
		if kerr != nil {
			return kerr
		}
		acc, ok := accs[k]
		if !ok {
			acc = col.Supply()
			order = append(order, k)
		}
		acc, aerr := col.Accumulate(acc, v)
		if aerr != nil {
			return aerr
		}
		accs[k] = acc
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make(map[K]R, len(accs))
	for _, k := range order {
		r, ferr := col.Finish(accs[k])
		if ferr != nil {
			return nil, ferr
		}
		out[k] = r
	}
	return out, nil
}

// DuplicatePolicy selects what ToMapWith does when two elements map to the
// same key.
type DuplicatePolicy int

const (
	// DuplicateError fails with ErrDuplicateKey on a collision.
	DuplicateError DuplicatePolicy = iota
	// DuplicateOverwrite keeps the latest value.
	DuplicateOverwrite
	// DuplicateIgnore keeps the first value.
	DuplicateIgnore
)

// ToMap drains p into a map, failing with ErrDuplicateKey on key
// collisions.
func ToMap[T any, K comparable, V any](
	ctx context.Context,
	p *Pipeline[T],
	key func(T) (K, error),
	value func(T) (V, error),
) (map[K]V, error) {
	return ToMapWith(ctx, p, key, value, DuplicateError)
}

// ToMapWith drains p into a map with the given duplicate-key policy.
func ToMapWith[T any, K comparable, V any](
	ctx context.Context,
	p *Pipeline[T],
	key func(T) (K, error),
	value func(T) (V, error),
	policy DuplicatePolicy,
) (map[K]V, error) {
	out := make(map[K]V)
	err := p.ForEach(ctx, func(v T) error {
		k, kerr := key(v)
		if kerr != nil {
			return kerr
		}
		if _, dup := out[k]; dup {
			switch policy {
			case DuplicateIgnore:
				return nil
			case DuplicateOverwrite:
			default:
				return fmt.Errorf("%w: %v", ErrDuplicateKey, k)
			}
		}
		val, verr := value(v)
		if verr != nil {
			return verr
		}
		out[k] = val
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToMapMerge drains p into a map, combining colliding values with merge.
func ToMapMerge[T any, K comparable, V any](
	ctx context.Context,
	p *Pipeline[T],
	key func(T) (K, error),
	value func(T) (V, error),
	merge func(old, next V) (V, error),
) (map[K]V, error) {
	out := make(map[K]V)
	err := p.ForEach(ctx, func(v T) error {
		k, kerr := key(v)
		if kerr != nil {
			return kerr
		}
		val, verr := value(v)
		if verr != nil {
			return verr
		}
		if old, dup := out[k]; dup {
			merged, merr := merge(old, val)
			if merr != nil {
				return merr
			}
			out[k] = merged
			return nil
		}
		out[k] = val
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
