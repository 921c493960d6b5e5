package cursor

// sliceCursor serves elements from a slice with O(1) skip and count.
type sliceCursor[T any] struct {
	slice []T
	index int
}

// FromSlice returns a cursor over the elements of slice. The slice is not
// copied; callers must not mutate it while the cursor is live.
func FromSlice[T any](slice []T) Cursor[T] {
	return &sliceCursor[T]{slice: slice}
}

// Of returns a cursor over the given values.
func Of[T any](values ...T) Cursor[T] {
	return &sliceCursor[T]{slice: values}
}

func (s *sliceCursor[T]) HasNext() (bool, error) {
	return s.index < len(s.slice), nil
}

func (s *sliceCursor[T]) Next() (T, error) {
	if s.index >= len(s.slice) {
		var zero T
		return zero, ErrNoSuchElement
	}
	v := s.slice[s.index]
	s.index++
	return v, nil
}

func (s *sliceCursor[T]) Skip(n int64) (int64, error) {
	remaining := int64(len(s.slice) - s.index)
	if n > remaining {
		n = remaining
	}
	s.index += int(n)
	return n, nil
}

func (s *sliceCursor[T]) Count() (int64, error) {
	remaining := int64(len(s.slice) - s.index)
	s.index = len(s.slice)
	return remaining, nil
}

// emptyCursor has no elements.
type emptyCursor[T any] struct{}

// Empty returns a cursor with no elements.
func Empty[T any]() Cursor[T] {
	return emptyCursor[T]{}
}

func (emptyCursor[T]) HasNext() (bool, error) { return false, nil }

func (emptyCursor[T]) Next() (T, error) {
	var zero T
	return zero, ErrNoSuchElement
}

func (emptyCursor[T]) Skip(int64) (int64, error) { return 0, nil }

func (emptyCursor[T]) Count() (int64, error) { return 0, nil }

// funcCursor pulls elements from a fallible generator until it reports done.
type funcCursor[T any] struct {
	next    func() (T, bool, error)
	pending T
	peeked  bool
	done    bool
}

// FromFunc returns a cursor pulling elements from next. The generator
// returns the next element and true, or false when the sequence ends.
func FromFunc[T any](next func() (T, bool, error)) Cursor[T] {
	return &funcCursor[T]{next: next}
}

func (f *funcCursor[T]) HasNext() (bool, error) {
	if f.peeked {
		return true, nil
	}
	if f.done {
		return false, nil
	}
	v, ok, err := f.next()
	if err != nil {
		return false, err
	}
	if !ok {
		f.done = true
		return false, nil
	}
	f.pending = v
	f.peeked = true
	return true, nil
}

func (f *funcCursor[T]) Next() (T, error) {
	ok, err := f.HasNext()
	if err != nil {
		var zero T
		return zero, err
	}
	if !ok {
		var zero T
		return zero, ErrNoSuchElement
	}
	v := f.pending
	var zero T
	f.pending = zero
	f.peeked = false
	return v, nil
}

// generatorCursor produces an infinite sequence from a generator function.
type generatorCursor[T any] struct {
	generator func() T
}

// Generate returns an infinite cursor producing elements from generator.
// Bound it with a limiting combinator before draining.
func Generate[T any](generator func() T) Cursor[T] {
	return &generatorCursor[T]{generator: generator}
}

func (g *generatorCursor[T]) HasNext() (bool, error) { return true, nil }

func (g *generatorCursor[T]) Next() (T, error) { return g.generator(), nil }

// iterateCursor produces seed, fn(seed), fn(fn(seed)), ...
type iterateCursor[T any] struct {
	value T
	fn    func(T) T
}

// Iterate returns an infinite cursor of repeated applications of fn to seed:
// seed, fn(seed), fn(fn(seed)), ...
func Iterate[T any](seed T, fn func(T) T) Cursor[T] {
	return &iterateCursor[T]{value: seed, fn: fn}
}

func (i *iterateCursor[T]) HasNext() (bool, error) { return true, nil }

func (i *iterateCursor[T]) Next() (T, error) {
	v := i.value
	i.value = i.fn(v)
	return v, nil
}

// channelCursor serves elements received from a channel.
type channelCursor[T any] struct {
	ch      <-chan T
	pending T
	peeked  bool
}

// FromChannel returns a cursor receiving from ch until it is closed.
func FromChannel[T any](ch <-chan T) Cursor[T] {
	return &channelCursor[T]{ch: ch}
}

func (c *channelCursor[T]) HasNext() (bool, error) {
	if c.peeked {
		return true, nil
	}
	v, ok := <-c.ch
	if !ok {
		return false, nil
	}
	c.pending = v
	c.peeked = true
	return true, nil
}

func (c *channelCursor[T]) Next() (T, error) {
	ok, err := c.HasNext()
	if err != nil {
		var zero T
		return zero, err
	}
	if !ok {
		var zero T
		return zero, ErrNoSuchElement
	}
	v := c.pending
	var zero T
	c.pending = zero
	c.peeked = false
	return v, nil
}

// rangeCursor serves the integers [from, to) with O(1) skip and count.
type rangeCursor struct {
	from int64
	to   int64
}

// Range returns a cursor over the integers from (inclusive) to to
// (exclusive).
func Range(from, to int64) Cursor[int64] {
	if to < from {
		to = from
	}
	return &rangeCursor{from: from, to: to}
}

func (r *rangeCursor) HasNext() (bool, error) { return r.from < r.to, nil }

func (r *rangeCursor) Next() (int64, error) {
	if r.from >= r.to {
		return 0, ErrNoSuchElement
	}
	v := r.from
	r.from++
	return v, nil
}

func (r *rangeCursor) Skip(n int64) (int64, error) {
	remaining := r.to - r.from
	if n > remaining {
		n = remaining
	}
	r.from += n
	return n, nil
}

func (r *rangeCursor) Count() (int64, error) {
	remaining := r.to - r.from
	r.from = r.to
	return remaining, nil
}
