package pipeline

import (
	"iter"

	"github.com/vnykmshr/seqflow/pkg/streaming/cursor"
)

// FromSeq returns a pipeline over a range-over-func sequence. The
// sequence's stop function is tied to the pipeline's shutdown chain.
func FromSeq[T any](seq iter.Seq[T]) *Pipeline[T] {
	next, stop := iter.Pull(seq)
	p := New(cursor.FromFunc(func() (T, bool, error) {
		v, ok := next()
		return v, ok, nil
	}))
	return p.OnClose(func() error {
		stop()
		return nil
	})
}

// FromSeq2 returns a pipeline over a fallible range-over-func sequence; an
// error element aborts the pipeline with that error.
func FromSeq2[T any](seq iter.Seq2[T, error]) *Pipeline[T] {
	next, stop := iter.Pull2(seq)
	p := New(cursor.FromFunc(func() (T, bool, error) {
		v, err, ok := next()
		if !ok {
			var zero T
			return zero, false, nil
		}
		if err != nil {
			var zero T
			return zero, false, err
		}
		return v, true, nil
	}))
	return p.OnClose(func() error {
		stop()
		return nil
	})
}

// Seq converts the pipeline to a fallible range-over-func sequence. Ranging
// over it is the pipeline's terminal operation: the shutdown chain runs when
// the range ends, including on early break. A failure is yielded as the
// final element's error.
func (p *Pipeline[T]) Seq() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		if err := p.begin(); err != nil {
			yield(zero, err)
			return
		}
		// early-break safety net; Close is idempotent
		defer func() { _ = p.Close() }()
		for {
			ok, err := p.cur.HasNext()
			if err != nil {
				yield(zero, err)
				return
			}
			if !ok {
				if cerr := p.Close(); cerr != nil {
					yield(zero, cerr)
				}
				return
			}
			v, err := p.cur.Next()
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Unchecked converts the pipeline to a plain sequence for call sites that
// cannot carry an error channel. Any failure panics at this boundary; this
// is the only place the pipeline's error channel is ever converted.
func (p *Pipeline[T]) Unchecked() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v, err := range p.Seq() {
			if err != nil {
				panic(err)
			}
			if !yield(v) {
				return
			}
		}
	}
}
