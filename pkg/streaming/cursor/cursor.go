package cursor

import "errors"

// ErrNoSuchElement is returned when Next is called on an exhausted cursor.
// Hitting it indicates a caller bug (pulling without a HasNext check), not a
// data-level failure.
var ErrNoSuchElement = errors.New("cursor: no next element")

// Cursor is the minimal pull contract for a sequence of elements. Every
// element-producing step may fail; errors from the underlying source or from
// user callbacks propagate unchanged through composed cursors.
//
// A cursor is exclusively owned by its consumer. It is not safe for
// concurrent use and is single-pass: once exhausted it stays exhausted.
type Cursor[T any] interface {
	// HasNext reports whether another element is available. It may pull
	// from upstream to find out, buffering at most one element.
	HasNext() (bool, error)

	// Next returns the next element. It fails with ErrNoSuchElement when
	// the cursor is exhausted.
	Next() (T, error)
}

// Skipper is an optional fast path for cursors that can advance past n
// elements cheaper than pulling them one by one (array-backed, counted, or
// index-seekable data).
type Skipper interface {
	// Skip advances past up to n elements and returns how many were
	// actually skipped (fewer when the cursor exhausts early).
	Skip(n int64) (int64, error)
}

// Counter is an optional fast path for cursors that know how many elements
// remain without pulling them individually. Counting consumes the cursor.
type Counter interface {
	// Count returns the number of remaining elements. The cursor is
	// exhausted afterwards.
	Count() (int64, error)
}

// Closer is implemented by cursors holding resources that must be released.
type Closer interface {
	Close() error
}

// Skip advances c past up to n elements, using the Skipper fast path when
// available and falling back to repeated pulls otherwise. It returns the
// number of elements actually skipped.
func Skip[T any](c Cursor[T], n int64) (int64, error) {
	if n <= 0 {
		return 0, nil
	}
	if s, ok := c.(Skipper); ok {
		return s.Skip(n)
	}
	var skipped int64
	for skipped < n {
		ok, err := c.HasNext()
		if err != nil {
			return skipped, err
		}
		if !ok {
			return skipped, nil
		}
		if _, err := c.Next(); err != nil {
			return skipped, err
		}
		skipped++
	}
	return skipped, nil
}

// Count drains c and returns the number of remaining elements, using the
// Counter fast path when available.
func Count[T any](c Cursor[T]) (int64, error) {
	if ctr, ok := c.(Counter); ok {
		return ctr.Count()
	}
	var count int64
	for {
		ok, err := c.HasNext()
		if err != nil {
			return count, err
		}
		if !ok {
			return count, nil
		}
		if _, err := c.Next(); err != nil {
			return count, err
		}
		count++
	}
}

// Close releases c's resources if it implements Closer; otherwise it is a
// no-op.
func Close[T any](c Cursor[T]) error {
	if cl, ok := c.(Closer); ok {
		return cl.Close()
	}
	return nil
}
