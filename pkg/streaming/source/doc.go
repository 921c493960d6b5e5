/*
Package source adapts external element producers to the cursor pull
contract: line-oriented readers, tabular row cursors, and Redis key/list
scans.

Adapters own only what they are handed: Lines and FromRows close their
underlying reader or row source when closed, while the Redis sources borrow
a caller-owned client and hold no resources of their own.

	p := pipeline.New(source.Lines(file)).
		Filter(func(line string) (bool, error) { return line != "", nil })
	defer p.Close()
*/
package source
