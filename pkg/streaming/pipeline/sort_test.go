package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/vnykmshr/seqflow/internal/testutil"
)

func intCompare(a, b int) int { return a - b }

func TestSorted(t *testing.T) {
	result, err := FromSlice([]int{3, 1, 4, 1, 5}).
		Sorted(intCompare).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 1, 3, 4, 5})
}

func TestSortedIsLazy(t *testing.T) {
	pulls := 0
	p := FromFunc(func() (int, bool, error) {
		pulls++
		return 4 - pulls, pulls <= 3, nil
	}).Sorted(intCompare)

	// buffering waits for the first pull of a terminal operation
	testutil.AssertEqual(t, pulls, 0)

	result, err := p.ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2, 3})
}

func TestSortedSameComparatorIsNoOp(t *testing.T) {
	p := FromSlice([]int{2, 1}).Sorted(intCompare)
	again := p.Sorted(intCompare)
	testutil.AssertTrue(t, p == again)
}

func TestSortedDifferentComparatorSortsAgain(t *testing.T) {
	reverse := func(a, b int) int { return b - a }
	result, err := FromSlice([]int{2, 1, 3}).
		Sorted(intCompare).
		Sorted(reverse).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{3, 2, 1})
}

func TestReverseSorted(t *testing.T) {
	result, err := FromSlice([]int{3, 1, 2}).
		ReverseSorted(intCompare).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{3, 2, 1})
}

func TestSortedBy(t *testing.T) {
	result, err := SortedBy(Of("ccc", "a", "bb"), func(s string) int {
		return len(s)
	}).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []string{"a", "bb", "ccc"})
}

func TestSortedStable(t *testing.T) {
	type pair struct {
		key int
		tag string
	}
	result, err := Of(
		pair{2, "a"}, pair{1, "b"}, pair{2, "c"}, pair{1, "d"},
	).Sorted(func(a, b pair) int { return a.key - b.key }).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, result[0], pair{1, "b"})
	testutil.AssertEqual(t, result[1], pair{1, "d"})
	testutil.AssertEqual(t, result[2], pair{2, "a"})
	testutil.AssertEqual(t, result[3], pair{2, "c"})
}

func TestMinOnSortedIsFirst(t *testing.T) {
	min, found, err := FromSlice([]int{5, 2, 9}).
		Sorted(intCompare).
		Min(context.Background(), intCompare)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, found)
	testutil.AssertEqual(t, min, 2)
}

func TestSortedCountAnalytic(t *testing.T) {
	n, err := FromSlice([]int{3, 1, 2}).
		Sorted(intCompare).
		Count(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, int64(3))
}

func TestSortedLoadErrorLatches(t *testing.T) {
	boom := errors.New("boom")
	pulls := 0
	p := FromFunc(func() (int, bool, error) {
		pulls++
		if pulls > 2 {
			return 0, false, boom
		}
		return 4 - pulls, true, nil
	}).Sorted(intCompare)

	_, err := p.cur.HasNext()
	testutil.AssertErrorIs(t, err, boom)

	// a retried pull reports the same failure instead of serving the
	// partially buffered, unsorted elements
	ok, err := p.cur.HasNext()
	testutil.AssertErrorIs(t, err, boom)
	testutil.AssertEqual(t, ok, false)
}
