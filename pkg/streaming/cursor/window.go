package cursor

import "math"

// Windowing cursors buffer only the lookback their semantics require and
// expose Count/Skip fast paths derived analytically from window size and
// increment, never by materializing windows. The logical window sequence is
// identical whether consumed element by element or via the fast paths.

// ceilDiv returns ceil(a / b) for a >= 0, b > 0.
func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

// mulSat returns a * b, saturating at math.MaxInt64 on overflow.
func mulSat(a, b int64) int64 {
	if a > 0 && b > 0 && a > math.MaxInt64/b {
		return math.MaxInt64
	}
	return a * b
}

// splitCursor groups consecutive elements into fixed-size chunks.
type splitCursor[T any] struct {
	src  Cursor[T]
	size int64
}

// Split returns a cursor grouping the elements of src into consecutive
// chunks of size elements; the last chunk may be shorter. size must be
// positive.
func Split[T any](src Cursor[T], size int64) Cursor[[]T] {
	return &splitCursor[T]{src: src, size: size}
}

func (s *splitCursor[T]) HasNext() (bool, error) { return s.src.HasNext() }

func (s *splitCursor[T]) Next() ([]T, error) {
	ok, err := s.src.HasNext()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSuchElement
	}
	chunk := make([]T, 0, s.size)
	for int64(len(chunk)) < s.size {
		ok, err := s.src.HasNext()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		v, err := s.src.Next()
		if err != nil {
			return nil, err
		}
		chunk = append(chunk, v)
	}
	return chunk, nil
}

func (s *splitCursor[T]) Count() (int64, error) {
	n, err := Count(s.src)
	if err != nil {
		return 0, err
	}
	return ceilDiv(n, s.size), nil
}

func (s *splitCursor[T]) Skip(n int64) (int64, error) {
	skipped, err := Skip(s.src, mulSat(n, s.size))
	if err != nil {
		return 0, err
	}
	return ceilDiv(skipped, s.size), nil
}

func (s *splitCursor[T]) Close() error { return Close(s.src) }

// slidingCursor emits windows of up to window elements, each starting
// increment elements after the previous one. The lookback buffer holds at
// most max(0, window-increment) elements; when increment exceeds window the
// gap is skipped from upstream instead.
type slidingCursor[T any] struct {
	src         Cursor[T]
	window      int64
	increment   int64
	buf         []T
	pendingSkip int64
}

// Sliding returns a cursor of sliding windows over src. window and increment
// must be positive. The final window may be shorter than window when fewer
// elements remain.
func Sliding[T any](src Cursor[T], window, increment int64) Cursor[[]T] {
	return &slidingCursor[T]{src: src, window: window, increment: increment}
}

func (s *slidingCursor[T]) settle() error {
	if s.pendingSkip > 0 {
		n := s.pendingSkip
		s.pendingSkip = 0
		if _, err := Skip(s.src, n); err != nil {
			return err
		}
	}
	return nil
}

// HasNext reports whether another window starts here. The lookback buffer
// alone never starts a window; fresh upstream input is required.
func (s *slidingCursor[T]) HasNext() (bool, error) {
	if err := s.settle(); err != nil {
		return false, err
	}
	return s.src.HasNext()
}

func (s *slidingCursor[T]) Next() ([]T, error) {
	ok, err := s.HasNext()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSuchElement
	}
	win := make([]T, 0, s.window)
	win = append(win, s.buf...)
	for int64(len(win)) < s.window {
		ok, err := s.src.HasNext()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		v, err := s.src.Next()
		if err != nil {
			return nil, err
		}
		win = append(win, v)
	}
	if s.increment < s.window {
		keep := s.window - s.increment
		start := int64(len(win)) - keep
		if start < 0 {
			start = 0
		}
		s.buf = append([]T(nil), win[start:]...)
	} else {
		s.buf = nil
		s.pendingSkip = s.increment - s.window
	}
	return win, nil
}

func (s *slidingCursor[T]) Count() (int64, error) {
	upstream, err := Count(s.src)
	if err != nil {
		return 0, err
	}
	effective := upstream - s.pendingSkip
	s.pendingSkip = 0
	if effective <= 0 {
		return 0, nil
	}
	total := int64(len(s.buf)) + effective
	// A later window only exists when it reaches fresh upstream input, so
	// the stride threshold is the larger of window and increment.
	threshold := s.window
	if s.increment > threshold {
		threshold = s.increment
	}
	extra := total - threshold
	if extra < 0 {
		extra = 0
	}
	return 1 + ceilDiv(extra, s.increment), nil
}

// Skip advances window starts without materializing windows: each skipped
// window moves the start by increment, consuming the lookback buffer first
// and bulk-skipping upstream for the rest.
func (s *slidingCursor[T]) Skip(n int64) (int64, error) {
	var skipped int64
	for skipped < n {
		ok, err := s.HasNext()
		if err != nil {
			return skipped, err
		}
		if !ok {
			return skipped, nil
		}
		if int64(len(s.buf)) >= s.increment {
			s.buf = s.buf[s.increment:]
		} else {
			need := s.increment - int64(len(s.buf))
			s.buf = nil
			if _, err := Skip(s.src, need); err != nil {
				return skipped, err
			}
		}
		skipped++
	}
	if skipped == 0 {
		return 0, nil
	}
	// Restore the lookback: element-by-element consumption would already
	// have pulled the next window's leading window-increment elements from
	// upstream, so HasNext must not mistake them for a fresh window.
	for int64(len(s.buf)) < s.window-s.increment {
		ok, err := s.src.HasNext()
		if err != nil {
			return skipped, err
		}
		if !ok {
			break
		}
		v, err := s.src.Next()
		if err != nil {
			return skipped, err
		}
		s.buf = append(s.buf, v)
	}
	return skipped, nil
}

func (s *slidingCursor[T]) Close() error { return Close(s.src) }

// collapseCursor merges maximal runs of adjacent elements into one output
// per run. The adjacency predicate only ever compares the immediately
// preceding element of the run to the next candidate, strictly left to
// right; it is never applied transitively across the run.
type collapseCursor[T, R any] struct {
	src      Cursor[T]
	adjacent func(a, b T) (bool, error)
	seed     func(first T) (R, error)
	fold     func(acc R, next T) (R, error)
	pending  T
	peeked   bool
}

// Collapse returns a cursor merging each maximal run of elements related by
// adjacent into a single output: seed starts the accumulation from the run's
// first element and fold absorbs each further element. This operator is
// inherently sequential.
func Collapse[T, R any](
	src Cursor[T],
	adjacent func(a, b T) (bool, error),
	seed func(first T) (R, error),
	fold func(acc R, next T) (R, error),
) Cursor[R] {
	return &collapseCursor[T, R]{src: src, adjacent: adjacent, seed: seed, fold: fold}
}

func (c *collapseCursor[T, R]) HasNext() (bool, error) {
	if c.peeked {
		return true, nil
	}
	return c.src.HasNext()
}

func (c *collapseCursor[T, R]) Next() (R, error) {
	var zero R
	var first T
	if c.peeked {
		first = c.pending
		var zeroT T
		c.pending = zeroT
		c.peeked = false
	} else {
		ok, err := c.src.HasNext()
		if err != nil {
			return zero, err
		}
		if !ok {
			return zero, ErrNoSuchElement
		}
		first, err = c.src.Next()
		if err != nil {
			return zero, err
		}
	}
	acc, err := c.seed(first)
	if err != nil {
		return zero, err
	}
	prev := first
	for {
		ok, err := c.src.HasNext()
		if err != nil {
			return zero, err
		}
		if !ok {
			return acc, nil
		}
		v, err := c.src.Next()
		if err != nil {
			return zero, err
		}
		adj, err := c.adjacent(prev, v)
		if err != nil {
			return zero, err
		}
		if !adj {
			c.pending = v
			c.peeked = true
			return acc, nil
		}
		acc, err = c.fold(acc, v)
		if err != nil {
			return zero, err
		}
		prev = v
	}
}

func (c *collapseCursor[T, R]) Close() error { return Close(c.src) }

// scanCursor emits a running fold, one output per input.
type scanCursor[T any] struct {
	src      Cursor[T]
	op       func(acc, next T) (T, error)
	acc      T
	seeded   bool
	emitSeed bool
}

// Scan returns a cursor of the running fold of src under op. The first
// element passes through unchanged and seeds the accumulation.
func Scan[T any](src Cursor[T], op func(acc, next T) (T, error)) Cursor[T] {
	return &scanCursor[T]{src: src, op: op}
}

// ScanFrom returns a cursor of the running fold of src under op starting
// from seed. One output is emitted per input; the seed itself is not
// emitted.
func ScanFrom[T any](src Cursor[T], seed T, op func(acc, next T) (T, error)) Cursor[T] {
	return &scanCursor[T]{src: src, op: op, acc: seed, seeded: true}
}

// ScanFromInclusive is ScanFrom with the seed emitted as an extra leading
// element before the first folded value.
func ScanFromInclusive[T any](src Cursor[T], seed T, op func(acc, next T) (T, error)) Cursor[T] {
	return &scanCursor[T]{src: src, op: op, acc: seed, seeded: true, emitSeed: true}
}

func (s *scanCursor[T]) HasNext() (bool, error) {
	if s.emitSeed {
		return true, nil
	}
	return s.src.HasNext()
}

func (s *scanCursor[T]) Next() (T, error) {
	if s.emitSeed {
		s.emitSeed = false
		return s.acc, nil
	}
	v, err := s.src.Next()
	if err != nil {
		var zero T
		return zero, err
	}
	if !s.seeded {
		s.acc = v
		s.seeded = true
		return v, nil
	}
	out, err := s.op(s.acc, v)
	if err != nil {
		var zero T
		return zero, err
	}
	s.acc = out
	return out, nil
}

func (s *scanCursor[T]) Count() (int64, error) {
	n, err := Count(s.src)
	if err != nil {
		return 0, err
	}
	if s.emitSeed {
		n++
	}
	return n, nil
}

func (s *scanCursor[T]) Close() error { return Close(s.src) }
