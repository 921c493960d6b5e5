package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/vnykmshr/seqflow/internal/testutil"
)

func TestBuildIsLazy(t *testing.T) {
	calls := 0
	p := FromSlice([]int{1, 2, 3}).
		Peek(func(int) error { calls++; return nil }).
		Map(func(v int) (int, error) { calls++; return v * 2, nil }).
		Filter(func(int) (bool, error) { calls++; return true, nil })

	// building the pipeline alone never evaluates elements
	testutil.AssertEqual(t, calls, 0)

	result, err := p.ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{2, 4, 6})
	testutil.AssertEqual(t, calls, 9)
}

func TestSinglePass(t *testing.T) {
	p := FromSlice([]int{1, 2, 3})

	_, err := p.ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, p.IsClosed())

	_, err = p.Count(context.Background())
	testutil.AssertErrorIs(t, err, ErrPipelineClosed)
}

func TestChainedOperations(t *testing.T) {
	result, err := FromSlice([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}).
		Filter(func(v int) (bool, error) { return v%2 == 0, nil }). // 2, 4, 6, 8, 10
		Map(func(v int) (int, error) { return v * 3, nil }).        // 6, 12, 18, 24, 30
		Skip(1).                                                    // 12, 18, 24, 30
		Limit(2).                                                   // 12, 18
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{12, 18})
}

func TestMapTypeChange(t *testing.T) {
	result, err := Map(Of("a", "bb", "ccc"), func(s string) (int, error) {
		return len(s), nil
	}).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2, 3})
}

func TestCallbackErrorPropagatesUnchanged(t *testing.T) {
	boom := errors.New("boom")
	_, err := FromSlice([]int{1, 2, 3}).
		Map(func(v int) (int, error) {
			if v == 2 {
				return 0, boom
			}
			return v, nil
		}).
		ToSlice(context.Background())
	testutil.AssertEqual(t, err, boom)
}

func TestFailedTerminalStillCloses(t *testing.T) {
	boom := errors.New("boom")
	closes := 0
	p := FromSlice([]int{1}).
		OnClose(func() error { closes++; return nil }).
		Map(func(int) (int, error) { return 0, boom })

	_, err := p.ToSlice(context.Background())
	testutil.AssertErrorIs(t, err, boom)
	testutil.AssertEqual(t, closes, 1)
}

func TestFlatMapMethod(t *testing.T) {
	result, err := FromSlice([]int{1, 2, 3}).
		FlatMap(func(v int) (*Pipeline[int], error) {
			return Of(v, v*10), nil
		}).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 10, 2, 20, 3, 30})
}

func TestFlatMapClosesSubPipelinesEagerly(t *testing.T) {
	var order []int
	p := FromSlice([]int{1, 2}).
		FlatMap(func(v int) (*Pipeline[int], error) {
			sub := Of(v)
			sub.OnClose(func() error {
				order = append(order, v)
				return nil
			})
			return sub, nil
		})

	result, err := p.ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2})

	// each sub-pipeline closed as soon as exhausted, before the next one
	testutil.AssertSliceEqual(t, order, []int{1, 2})
}

func TestFlatMapOuterCloseClosesPendingSub(t *testing.T) {
	subClosed := 0
	p := FromSlice([]int{1}).
		FlatMap(func(v int) (*Pipeline[int], error) {
			sub := Of(1, 2, 3)
			sub.OnClose(func() error { subClosed++; return nil })
			return sub, nil
		})

	// stop mid-sub-pipeline; the outer close must reach the pending sub
	v, found, err := p.First(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, found)
	testutil.AssertEqual(t, v, 1)
	testutil.AssertEqual(t, subClosed, 1)
}

func TestFlatMapTypeChange(t *testing.T) {
	result, err := FlatMap(Of("go", "is"), func(s string) (*Pipeline[byte], error) {
		return FromSlice([]byte(s)), nil
	}).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []byte("gois"))
}

func TestConcat(t *testing.T) {
	result, err := Concat(Of(1, 2), Empty[int](), Of(3, 4)).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2, 3, 4})
}

func TestAppend(t *testing.T) {
	result, err := Of(1).Append(Of(2), Of(3)).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2, 3})
}

func TestSplit(t *testing.T) {
	chunks, err := Split(FromSlice([]int{1, 2, 3, 4, 5, 6, 7}), 3).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(chunks), 3)
	testutil.AssertSliceEqual(t, chunks[0], []int{1, 2, 3})
	testutil.AssertSliceEqual(t, chunks[1], []int{4, 5, 6})
	testutil.AssertSliceEqual(t, chunks[2], []int{7})
}

func TestSplitCountWithoutConsuming(t *testing.T) {
	n, err := Split(FromSlice([]int{1, 2, 3, 4, 5, 6, 7}), 3).
		Count(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, int64(3))
}

func TestSliding(t *testing.T) {
	windows, err := Sliding(FromSlice([]int{1, 2, 3, 4, 5}), 3, 2).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(windows), 2)
	testutil.AssertSliceEqual(t, windows[0], []int{1, 2, 3})
	testutil.AssertSliceEqual(t, windows[1], []int{3, 4, 5})
}

func TestCollapseMethod(t *testing.T) {
	result, err := FromSlice([]int{1, 2, 3, 3, 2, 1}).
		Collapse(
			func(a, b int) (bool, error) { return a < b, nil },
			func(a, b int) (int, error) { return a + b, nil },
		).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{6, 3, 2, 1})
}

func TestScanMethods(t *testing.T) {
	ctx := context.Background()

	result, err := FromSlice([]int{1, 2, 3, 4}).
		Scan(func(acc, next int) (int, error) { return acc + next, nil }).
		ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 3, 6, 10})

	result, err = FromSlice([]int{1, 2, 3}).
		ScanFromInclusive(10, func(acc, next int) (int, error) { return acc + next, nil }).
		ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{10, 11, 13, 16})
}

func TestMapPairs(t *testing.T) {
	ctx := context.Background()

	sums, err := MapPairs(FromSlice([]int{1, 2, 3, 4, 5}), 1, DropTail,
		func(a, b int) (int, error) { return a + b, nil }).
		ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, sums, []int{3, 5, 7, 9})

	// disjoint pairs with an unpaired tail
	sums, err = MapPairs(FromSlice([]int{1, 2, 3, 4, 5}), 2, DropTail,
		func(a, b int) (int, error) { return a + b, nil }).
		ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, sums, []int{3, 7})

	// padded tail passes the zero value for the missing slot
	sums, err = MapPairs(FromSlice([]int{1, 2, 3, 4, 5}), 2, PadTail,
		func(a, b int) (int, error) { return a + b, nil }).
		ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, sums, []int{3, 7, 5})
}

func TestMapTriples(t *testing.T) {
	sums, err := MapTriples(FromSlice([]int{1, 2, 3, 4, 5, 6, 7}), 3, DropTail,
		func(a, b, c int) (int, error) { return a + b + c, nil }).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, sums, []int{6, 15})
}

func TestCollapseToSlices(t *testing.T) {
	runs, err := CollapseToSlices(FromSlice([]int{1, 1, 2, 3, 3}),
		func(a, b int) (bool, error) { return a == b, nil }).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(runs), 3)
	testutil.AssertSliceEqual(t, runs[0], []int{1, 1})
	testutil.AssertSliceEqual(t, runs[1], []int{2})
	testutil.AssertSliceEqual(t, runs[2], []int{3, 3})
}

func TestCollapseCollect(t *testing.T) {
	joined, err := CollapseCollect(Of("a", "ab", "abc", "x"),
		func(a, b string) (bool, error) { return len(a) < len(b), nil },
		JoiningCollector("+"),
	).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, joined, []string{"a+ab+abc", "x"})
}

func TestInvalidChunkSizeClosesPipeline(t *testing.T) {
	closes := 0
	p := FromSlice([]int{1, 2, 3}).OnClose(func() error { closes++; return nil })

	bad := Split(p, 0)
	// the violation closed the pipeline immediately, before any terminal
	testutil.AssertEqual(t, closes, 1)
	testutil.AssertTrue(t, bad.IsClosed())

	_, err := bad.ToSlice(context.Background())
	testutil.AssertErrorIs(t, err, ErrInvalidArgument)
}

func TestInvalidSlidingArguments(t *testing.T) {
	_, err := Sliding(FromSlice([]int{1}), 0, 1).ToSlice(context.Background())
	testutil.AssertErrorIs(t, err, ErrInvalidArgument)

	_, err = Sliding(FromSlice([]int{1}), 2, -1).ToSlice(context.Background())
	testutil.AssertErrorIs(t, err, ErrInvalidArgument)
}

func TestNegativeSkipAndLimit(t *testing.T) {
	_, err := FromSlice([]int{1}).Skip(-1).ToSlice(context.Background())
	testutil.AssertErrorIs(t, err, ErrInvalidArgument)

	_, err = FromSlice([]int{1}).Limit(-1).ToSlice(context.Background())
	testutil.AssertErrorIs(t, err, ErrInvalidArgument)
}

func TestErroredPipelinePassesThroughCombinators(t *testing.T) {
	p := FromSlice([]int{1, 2, 3}).
		Skip(-1).
		Filter(func(int) (bool, error) { return true, nil }).
		Map(func(v int) (int, error) { return v, nil })

	_, err := p.Count(context.Background())
	testutil.AssertErrorIs(t, err, ErrInvalidArgument)
}

func TestDistinctMethod(t *testing.T) {
	result, err := FromSlice([]int{3, 1, 3, 2, 1}).
		Distinct().
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{3, 1, 2})
}

func TestTakeDropWhileMethods(t *testing.T) {
	ctx := context.Background()

	taken, err := FromSlice([]int{1, 2, 5, 1}).
		TakeWhile(func(v int) (bool, error) { return v < 3, nil }).
		ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, taken, []int{1, 2})

	dropped, err := FromSlice([]int{1, 2, 5, 1}).
		DropWhile(func(v int) (bool, error) { return v < 3, nil }).
		ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, dropped, []int{5, 1})
}

func TestGenerateWithLimit(t *testing.T) {
	n := 0
	result, err := Generate(func() int { n++; return n }).
		Limit(3).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2, 3})
}
