package cursor

import (
	"errors"
	"testing"

	"github.com/vnykmshr/seqflow/internal/testutil"
)

// drain pulls c to exhaustion and returns everything it produced.
func drain[T any](t *testing.T, c Cursor[T]) []T {
	t.Helper()
	var out []T
	for {
		ok, err := c.HasNext()
		testutil.AssertNoError(t, err)
		if !ok {
			return out
		}
		v, err := c.Next()
		testutil.AssertNoError(t, err)
		out = append(out, v)
	}
}

func TestFromSlice(t *testing.T) {
	c := FromSlice([]int{1, 2, 3, 4, 5})
	testutil.AssertSliceEqual(t, drain(t, c), []int{1, 2, 3, 4, 5})

	// exhausted cursor stays exhausted
	ok, err := c.HasNext()
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, ok)

	_, err = c.Next()
	testutil.AssertErrorIs(t, err, ErrNoSuchElement)
}

func TestOf(t *testing.T) {
	testutil.AssertSliceEqual(t, drain(t, Of("a", "b")), []string{"a", "b"})
}

func TestEmpty(t *testing.T) {
	c := Empty[int]()
	testutil.AssertEqual(t, len(drain(t, c)), 0)

	_, err := c.Next()
	testutil.AssertErrorIs(t, err, ErrNoSuchElement)

	n, err := Count(Empty[int]())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, int64(0))
}

func TestSliceSkipCount(t *testing.T) {
	c := FromSlice([]int{1, 2, 3, 4, 5})

	skipped, err := Skip(c, 2)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, skipped, int64(2))

	n, err := Count(c)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, int64(3))

	// skipping past the end saturates
	c = FromSlice([]int{1, 2})
	skipped, err = Skip(c, 10)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, skipped, int64(2))
}

func TestRange(t *testing.T) {
	testutil.AssertSliceEqual(t, drain(t, Range(0, 4)), []int64{0, 1, 2, 3})

	c := Range(0, 100)
	skipped, err := Skip(c, 98)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, skipped, int64(98))
	testutil.AssertSliceEqual(t, drain(t, c), []int64{98, 99})

	n, err := Count(Range(5, 5))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, int64(0))
}

func TestFromFunc(t *testing.T) {
	i := 0
	c := FromFunc(func() (int, bool, error) {
		if i >= 3 {
			return 0, false, nil
		}
		i++
		return i, true, nil
	})
	testutil.AssertSliceEqual(t, drain(t, c), []int{1, 2, 3})
}

func TestFromFuncError(t *testing.T) {
	boom := errors.New("boom")
	c := FromFunc(func() (int, bool, error) { return 0, false, boom })

	_, err := c.HasNext()
	testutil.AssertErrorIs(t, err, boom)
}

func TestFromChannel(t *testing.T) {
	ch := make(chan string, 3)
	ch <- "hello"
	ch <- "world"
	close(ch)

	testutil.AssertSliceEqual(t, drain(t, FromChannel(ch)), []string{"hello", "world"})
}

func TestGenerate(t *testing.T) {
	i := 0
	c := Limit(Generate(func() int {
		i++
		return i
	}), 4)
	testutil.AssertSliceEqual(t, drain(t, c), []int{1, 2, 3, 4})
}

func TestIterate(t *testing.T) {
	c := Limit(Iterate(1, func(v int) int { return v * 2 }), 5)
	testutil.AssertSliceEqual(t, drain(t, c), []int{1, 2, 4, 8, 16})
}
