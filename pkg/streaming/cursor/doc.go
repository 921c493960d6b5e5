/*
Package cursor defines the minimal pull contract for fallible sequences and
the composable cursor transformations everything else is built from.

A Cursor produces elements one at a time through HasNext/Next. Every
producing step may fail; errors propagate unchanged through arbitrarily deep
composition with no wrapping and no downgrading. Cursors are strictly lazy: no
transformation consumes upstream until the composed cursor is pulled.

Optional fast paths:

Cursors backed by counted or index-seekable data implement Skipper and
Counter for O(1) bulk skip and count. The package-level Skip and Count
helpers use the fast path when present and fall back to repeated pulls.
Windowing cursors (Split, Sliding) derive their own Count/Skip analytically
from window size and increment, so the fast path always agrees with
element-by-element consumption.

Ownership:

A composed cursor exclusively owns its upstream. Close releases resources on
cursors that hold them (Closer); composition cursors forward Close upstream.
FlatMap and Concat close each exhausted sub-cursor immediately, before
pulling from the next.

Basic usage:

	c := cursor.Filter(
		cursor.FromSlice([]int{1, 2, 3, 4}),
		func(v int) (bool, error) { return v%2 == 0, nil },
	)
	for {
		ok, err := c.HasNext()
		if err != nil || !ok {
			break
		}
		v, _ := c.Next()
		fmt.Println(v)
	}

Most callers use pkg/streaming/pipeline instead, which adds sort metadata,
the shutdown chain and terminal evaluators on top of this package.
*/
package cursor
