package pipeline

import (
	stdcmp "cmp"
	"sort"

	"github.com/vnykmshr/seqflow/pkg/streaming/cursor"
)

// sortCursor drains upstream into a buffer on first pull, sorts it, then
// serves from the buffer with O(1) skip and count.
type sortCursor[T any] struct {
	src     cursor.Cursor[T]
	cmp     func(a, b T) int
	buf     []T
	index   int
	loaded  bool
	loadErr error
}

// load latches its first failure: a retried pull must not serve the
// partially buffered, unsorted elements.
func (s *sortCursor[T]) load() error {
	if s.loaded {
		return s.loadErr
	}
	s.loaded = true
	for {
		ok, err := s.src.HasNext()
		if err != nil {
			s.loadErr = err
			return err
		}
		if !ok {
			break
		}
		v, err := s.src.Next()
		if err != nil {
			s.loadErr = err
			return err
		}
		s.buf = append(s.buf, v)
	}
	sort.SliceStable(s.buf, func(i, j int) bool {
		return s.cmp(s.buf[i], s.buf[j]) < 0
	})
	return nil
}

func (s *sortCursor[T]) HasNext() (bool, error) {
	if err := s.load(); err != nil {
		return false, err
	}
	return s.index < len(s.buf), nil
}

func (s *sortCursor[T]) Next() (T, error) {
	if err := s.load(); err != nil {
		var zero T
		return zero, err
	}
	if s.index >= len(s.buf) {
		var zero T
		return zero, cursor.ErrNoSuchElement
	}
	v := s.buf[s.index]
	s.index++
	return v, nil
}

func (s *sortCursor[T]) Skip(n int64) (int64, error) {
	if err := s.load(); err != nil {
		return 0, err
	}
	remaining := int64(len(s.buf) - s.index)
	if n > remaining {
		n = remaining
	}
	s.index += int(n)
	return n, nil
}

func (s *sortCursor[T]) Count() (int64, error) {
	if err := s.load(); err != nil {
		return 0, err
	}
	remaining := int64(len(s.buf) - s.index)
	s.index = len(s.buf)
	return remaining, nil
}

func (s *sortCursor[T]) Close() error { return cursor.Close(s.src) }

// Sorted returns a pipeline serving the elements sorted by cmp. The full
// sequence is buffered on first pull. The result is marked known-sorted by
// cmp: a later Sorted call with the identical comparator is a no-op, Min
// becomes its first element and Max its last.
func (p *Pipeline[T]) Sorted(cmp func(a, b T) int) *Pipeline[T] {
	if p.err != nil {
		return p
	}
	if p.sorted && sameComparator(p.cmp, cmp) {
		return p
	}
	np := p.derive(&sortCursor[T]{src: p.cur, cmp: cmp}, false)
	np.sorted = true
	np.cmp = cmp
	return np
}

// ReverseSorted returns a pipeline sorted by the reverse of cmp.
func (p *Pipeline[T]) ReverseSorted(cmp func(a, b T) int) *Pipeline[T] {
	if p.err != nil {
		return p
	}
	reversed := func(a, b T) int { return cmp(b, a) }
	np := p.derive(&sortCursor[T]{src: p.cur, cmp: reversed}, false)
	np.sorted = true
	np.cmp = reversed
	return np
}

// SortedBy returns a pipeline sorted by the natural order of the derived
// key.
func SortedBy[T any, K stdcmp.Ordered](p *Pipeline[T], key func(T) K) *Pipeline[T] {
	return p.Sorted(func(a, b T) int {
		return stdcmp.Compare(key(a), key(b))
	})
}
