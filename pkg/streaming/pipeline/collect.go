package pipeline

import (
	"context"
	"strings"
)

// Collector is a generic fold/finish pair: Supply creates a fresh
// accumulator, Accumulate absorbs one element, Finish converts the
// accumulator to the result. Collectors are reusable; every use calls
// Supply for its own accumulator.
type Collector[T, A, R any] struct {
	Supply     func() A
	Accumulate func(acc A, v T) (A, error)
	Finish     func(acc A) (R, error)
}

// SliceCollector collects elements into a slice in encounter order.
func SliceCollector[T any]() Collector[T, []T, []T] {
	return Collector[T, []T, []T]{
		Supply:     func() []T { return nil },
		Accumulate: func(acc []T, v T) ([]T, error) { return append(acc, v), nil },
		Finish:     func(acc []T) ([]T, error) { return acc, nil },
	}
}

// SetCollector collects elements into a set, dropping duplicates.
func SetCollector[T comparable]() Collector[T, map[T]struct{}, map[T]struct{}] {
	return Collector[T, map[T]struct{}, map[T]struct{}]{
		Supply: func() map[T]struct{} { return make(map[T]struct{}) },
		Accumulate: func(acc map[T]struct{}, v T) (map[T]struct{}, error) {
			acc[v] = struct{}{}
			return acc, nil
		},
		Finish: func(acc map[T]struct{}) (map[T]struct{}, error) { return acc, nil },
	}
}

// CountingCollector counts elements.
func CountingCollector[T any]() Collector[T, int64, int64] {
	return Collector[T, int64, int64]{
		Supply:     func() int64 { return 0 },
		Accumulate: func(acc int64, _ T) (int64, error) { return acc + 1, nil },
		Finish:     func(acc int64) (int64, error) { return acc, nil },
	}
}

// JoiningCollector concatenates strings with sep between elements.
func JoiningCollector(sep string) Collector[string, []string, string] {
	return Collector[string, []string, string]{
		Supply:     func() []string { return nil },
		Accumulate: func(acc []string, v string) ([]string, error) { return append(acc, v), nil },
		Finish:     func(acc []string) (string, error) { return strings.Join(acc, sep), nil },
	}
}

// FoldCollector folds elements onto seed with op.
func FoldCollector[T, R any](seed R, op func(acc R, v T) (R, error)) Collector[T, R, R] {
	return Collector[T, R, R]{
		Supply:     func() R { return seed },
		Accumulate: op,
		Finish:     func(acc R) (R, error) { return acc, nil },
	}
}

// Collect drains p through col and returns the finished result.
func Collect[T, A, R any](ctx context.Context, p *Pipeline[T], col Collector[T, A, R]) (R, error) {
	acc := col.Supply()
	err := p.ForEach(ctx, func(v T) error {
		var aerr error
		acc, aerr = col.Accumulate(acc, v)
		return aerr
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return col.Finish(acc)
}
