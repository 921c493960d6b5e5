package cursor

import "errors"

// Composition cursors wrap an upstream cursor they exclusively own. Each
// keeps a lookahead of at most one element: the peeked flag distinguishes
// "nothing buffered" from a buffered zero value, so zero is a legal element.
// Errors from upstream or from user callbacks abort evaluation immediately
// and surface unchanged.

// filterCursor yields upstream elements matching a predicate.
type filterCursor[T any] struct {
	src     Cursor[T]
	pred    func(T) (bool, error)
	pending T
	peeked  bool
}

// Filter returns a cursor of the elements of src matching pred.
func Filter[T any](src Cursor[T], pred func(T) (bool, error)) Cursor[T] {
	return &filterCursor[T]{src: src, pred: pred}
}

func (f *filterCursor[T]) HasNext() (bool, error) {
	if f.peeked {
		return true, nil
	}
	for {
		ok, err := f.src.HasNext()
		if err != nil || !ok {
			return false, err
		}
		v, err := f.src.Next()
		if err != nil {
			return false, err
		}
		keep, err := f.pred(v)
		if err != nil {
			return false, err
		}
		if keep {
			f.pending = v
			f.peeked = true
			return true, nil
		}
	}
}

func (f *filterCursor[T]) Next() (T, error) {
	return takePending(f, &f.pending, &f.peeked)
}

func (f *filterCursor[T]) Close() error { return Close(f.src) }

// takePending consumes the single-slot lookahead after a HasNext check.
func takePending[T any](c Cursor[T], pending *T, peeked *bool) (T, error) {
	ok, err := c.HasNext()
	if err != nil {
		var zero T
		return zero, err
	}
	if !ok {
		var zero T
		return zero, ErrNoSuchElement
	}
	v := *pending
	var zero T
	*pending = zero
	*peeked = false
	return v, nil
}

// mapCursor transforms each upstream element.
type mapCursor[T, U any] struct {
	src Cursor[T]
	fn  func(T) (U, error)
}

// Map returns a cursor applying fn to each element of src.
func Map[T, U any](src Cursor[T], fn func(T) (U, error)) Cursor[U] {
	return &mapCursor[T, U]{src: src, fn: fn}
}

func (m *mapCursor[T, U]) HasNext() (bool, error) { return m.src.HasNext() }

func (m *mapCursor[T, U]) Next() (U, error) {
	v, err := m.src.Next()
	if err != nil {
		var zero U
		return zero, err
	}
	return m.fn(v)
}

// Skip bypasses the mapper for skipped elements; mapping is lazy so the
// skipped transformations are simply never observed.
func (m *mapCursor[T, U]) Skip(n int64) (int64, error) { return Skip(m.src, n) }

func (m *mapCursor[T, U]) Count() (int64, error) { return Count(m.src) }

func (m *mapCursor[T, U]) Close() error { return Close(m.src) }

// peekCursor runs an action on each element as it passes through.
type peekCursor[T any] struct {
	src    Cursor[T]
	action func(T) error
}

// Peek returns a cursor forwarding src unchanged, running action on each
// element as it is consumed.
func Peek[T any](src Cursor[T], action func(T) error) Cursor[T] {
	return &peekCursor[T]{src: src, action: action}
}

func (p *peekCursor[T]) HasNext() (bool, error) { return p.src.HasNext() }

func (p *peekCursor[T]) Next() (T, error) {
	v, err := p.src.Next()
	if err != nil {
		var zero T
		return zero, err
	}
	if err := p.action(v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func (p *peekCursor[T]) Close() error { return Close(p.src) }

// takeWhileCursor yields elements until the predicate first fails.
type takeWhileCursor[T any] struct {
	src     Cursor[T]
	pred    func(T) (bool, error)
	pending T
	peeked  bool
	done    bool
}

// TakeWhile returns a cursor of the longest prefix of src whose elements
// match pred. The first non-matching element is consumed from src but never
// yielded.
func TakeWhile[T any](src Cursor[T], pred func(T) (bool, error)) Cursor[T] {
	return &takeWhileCursor[T]{src: src, pred: pred}
}

func (t *takeWhileCursor[T]) HasNext() (bool, error) {
	if t.peeked {
		return true, nil
	}
	if t.done {
		return false, nil
	}
	ok, err := t.src.HasNext()
	if err != nil || !ok {
		return false, err
	}
	v, err := t.src.Next()
	if err != nil {
		return false, err
	}
	keep, err := t.pred(v)
	if err != nil {
		return false, err
	}
	if !keep {
		t.done = true
		return false, nil
	}
	t.pending = v
	t.peeked = true
	return true, nil
}

func (t *takeWhileCursor[T]) Next() (T, error) {
	return takePending(t, &t.pending, &t.peeked)
}

func (t *takeWhileCursor[T]) Close() error { return Close(t.src) }

// dropWhileCursor discards the matching prefix, then passes through.
type dropWhileCursor[T any] struct {
	src      Cursor[T]
	pred     func(T) (bool, error)
	pending  T
	peeked   bool
	dropping bool
}

// DropWhile returns a cursor of src without the longest prefix of elements
// matching pred.
func DropWhile[T any](src Cursor[T], pred func(T) (bool, error)) Cursor[T] {
	return &dropWhileCursor[T]{src: src, pred: pred, dropping: true}
}

func (d *dropWhileCursor[T]) HasNext() (bool, error) {
	if d.peeked {
		return true, nil
	}
	if !d.dropping {
		return d.src.HasNext()
	}
	for {
		ok, err := d.src.HasNext()
		if err != nil || !ok {
			return false, err
		}
		v, err := d.src.Next()
		if err != nil {
			return false, err
		}
		drop, err := d.pred(v)
		if err != nil {
			return false, err
		}
		if !drop {
			d.dropping = false
			d.pending = v
			d.peeked = true
			return true, nil
		}
	}
}

func (d *dropWhileCursor[T]) Next() (T, error) {
	if d.peeked || d.dropping {
		return takePending(d, &d.pending, &d.peeked)
	}
	return d.src.Next()
}

func (d *dropWhileCursor[T]) Close() error { return Close(d.src) }

// distinctCursor suppresses elements whose key was already seen. Memory
// grows with the number of distinct keys for the cursor's whole lifetime.
type distinctCursor[T any] struct {
	src     Cursor[T]
	key     func(T) (any, error)
	seen    map[any]struct{}
	pending T
	peeked  bool
}

// Distinct returns a cursor of the distinct elements of src, keeping the
// first occurrence of each. Elements must be comparable.
func Distinct[T any](src Cursor[T]) Cursor[T] {
	return DistinctBy(src, func(v T) (any, error) { return v, nil })
}

// DistinctBy returns a cursor of the elements of src with distinct keys,
// keeping the first element seen for each key.
func DistinctBy[T any](src Cursor[T], key func(T) (any, error)) Cursor[T] {
	return &distinctCursor[T]{src: src, key: key, seen: make(map[any]struct{})}
}

func (d *distinctCursor[T]) HasNext() (bool, error) {
	if d.peeked {
		return true, nil
	}
	for {
		ok, err := d.src.HasNext()
		if err != nil || !ok {
			return false, err
		}
		v, err := d.src.Next()
		if err != nil {
			return false, err
		}
		k, err := d.key(v)
		if err != nil {
			return false, err
		}
		if _, dup := d.seen[k]; dup {
			continue
		}
		d.seen[k] = struct{}{}
		d.pending = v
		d.peeked = true
		return true, nil
	}
}

func (d *distinctCursor[T]) Next() (T, error) {
	return takePending(d, &d.pending, &d.peeked)
}

func (d *distinctCursor[T]) Close() error { return Close(d.src) }

// skipCursor lazily discards the first n upstream elements.
type skipCursor[T any] struct {
	src     Cursor[T]
	n       int64
	applied bool
}

// SkipFirst returns a cursor of src without its first n elements. The skip
// happens lazily on the first pull.
func SkipFirst[T any](src Cursor[T], n int64) Cursor[T] {
	return &skipCursor[T]{src: src, n: n}
}

func (s *skipCursor[T]) apply() error {
	if s.applied {
		return nil
	}
	s.applied = true
	_, err := Skip(s.src, s.n)
	return err
}

func (s *skipCursor[T]) HasNext() (bool, error) {
	if err := s.apply(); err != nil {
		return false, err
	}
	return s.src.HasNext()
}

func (s *skipCursor[T]) Next() (T, error) {
	if err := s.apply(); err != nil {
		var zero T
		return zero, err
	}
	return s.src.Next()
}

func (s *skipCursor[T]) Skip(n int64) (int64, error) {
	if err := s.apply(); err != nil {
		return 0, err
	}
	return Skip(s.src, n)
}

func (s *skipCursor[T]) Count() (int64, error) {
	if err := s.apply(); err != nil {
		return 0, err
	}
	return Count(s.src)
}

func (s *skipCursor[T]) Close() error { return Close(s.src) }

// limitCursor truncates upstream after n elements.
type limitCursor[T any] struct {
	src       Cursor[T]
	remaining int64
}

// Limit returns a cursor of at most n elements of src.
func Limit[T any](src Cursor[T], n int64) Cursor[T] {
	return &limitCursor[T]{src: src, remaining: n}
}

func (l *limitCursor[T]) HasNext() (bool, error) {
	if l.remaining <= 0 {
		return false, nil
	}
	return l.src.HasNext()
}

func (l *limitCursor[T]) Next() (T, error) {
	if l.remaining <= 0 {
		var zero T
		return zero, ErrNoSuchElement
	}
	v, err := l.src.Next()
	if err != nil {
		var zero T
		return zero, err
	}
	l.remaining--
	return v, nil
}

func (l *limitCursor[T]) Skip(n int64) (int64, error) {
	if n > l.remaining {
		n = l.remaining
	}
	skipped, err := Skip(l.src, n)
	l.remaining -= skipped
	return skipped, err
}

func (l *limitCursor[T]) Count() (int64, error) {
	// skipping up to the cap consumes exactly the elements this cursor
	// would have produced, and reports how many there were
	counted, err := Skip(l.src, l.remaining)
	l.remaining = 0
	return counted, err
}

func (l *limitCursor[T]) Close() error { return Close(l.src) }

// flatMapCursor substitutes each upstream element with a sub-cursor and
// drains it before advancing. Each exhausted sub-cursor is closed as soon as
// it is exhausted, not deferred to the outer close.
type flatMapCursor[T, U any] struct {
	src Cursor[T]
	fn  func(T) (Cursor[U], error)
	cur Cursor[U]
}

// FlatMap returns a cursor of the concatenated elements of the sub-cursors
// produced by fn for each element of src.
func FlatMap[T, U any](src Cursor[T], fn func(T) (Cursor[U], error)) Cursor[U] {
	return &flatMapCursor[T, U]{src: src, fn: fn}
}

func (f *flatMapCursor[T, U]) HasNext() (bool, error) {
	for {
		if f.cur != nil {
			ok, err := f.cur.HasNext()
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
			closed := f.cur
			f.cur = nil
			if err := Close(closed); err != nil {
				return false, err
			}
		}
		ok, err := f.src.HasNext()
		if err != nil || !ok {
			return false, err
		}
		v, err := f.src.Next()
		if err != nil {
			return false, err
		}
		sub, err := f.fn(v)
		if err != nil {
			return false, err
		}
		f.cur = sub
	}
}

func (f *flatMapCursor[T, U]) Next() (U, error) {
	ok, err := f.HasNext()
	if err != nil {
		var zero U
		return zero, err
	}
	if !ok {
		var zero U
		return zero, ErrNoSuchElement
	}
	return f.cur.Next()
}

func (f *flatMapCursor[T, U]) Close() error {
	var errs []error
	if f.cur != nil {
		if err := Close(f.cur); err != nil {
			errs = append(errs, err)
		}
		f.cur = nil
	}
	if err := Close(f.src); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// concatCursor chains a fixed sequence of cursors, closing each as soon as
// it is exhausted.
type concatCursor[T any] struct {
	srcs  []Cursor[T]
	index int
}

// Concat returns a cursor over the elements of srcs in order. Each source is
// closed immediately when exhausted; Close closes every source not yet
// closed, even when consumption was abandoned mid-sequence.
func Concat[T any](srcs ...Cursor[T]) Cursor[T] {
	return &concatCursor[T]{srcs: srcs}
}

func (c *concatCursor[T]) HasNext() (bool, error) {
	for c.index < len(c.srcs) {
		ok, err := c.srcs[c.index].HasNext()
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		exhausted := c.srcs[c.index]
		c.index++
		if err := Close(exhausted); err != nil {
			return false, err
		}
	}
	return false, nil
}

func (c *concatCursor[T]) Next() (T, error) {
	ok, err := c.HasNext()
	if err != nil {
		var zero T
		return zero, err
	}
	if !ok {
		var zero T
		return zero, ErrNoSuchElement
	}
	return c.srcs[c.index].Next()
}

func (c *concatCursor[T]) Close() error {
	var errs []error
	for ; c.index < len(c.srcs); c.index++ {
		if err := Close(c.srcs[c.index]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
