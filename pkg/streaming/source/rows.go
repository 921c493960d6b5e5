package source

import (
	"fmt"

	"github.com/vnykmshr/seqflow/pkg/streaming/cursor"
)

// RowSource is the narrow tabular-cursor contract the row adapter consumes.
// *sql.Rows satisfies it.
type RowSource interface {
	Next() bool
	Columns() ([]string, error)
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Row is one fully scanned row, addressable by position or by column name.
type Row struct {
	byName map[string]int
	values []any
}

// Len returns the number of columns.
func (r Row) Len() int {
	return len(r.values)
}

// Value returns the value at the given column position.
func (r Row) Value(index int) (any, error) {
	if index < 0 || index >= len(r.values) {
		return nil, fmt.Errorf("source: column index %d out of range [0,%d)", index, len(r.values))
	}
	return r.values[index], nil
}

// Named returns the value of the named column.
func (r Row) Named(name string) (any, error) {
	i, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("source: no column named %q", name)
	}
	return r.values[i], nil
}

// rowCursor adapts advance-then-read row iteration to the pull contract.
// Advancing is idempotent until the pending row is consumed.
type rowCursor[T any] struct {
	src     RowSource
	mapRow  func(Row) (T, error)
	byName  map[string]int
	columns int
	pending T
	peeked  bool
	done    bool
}

// FromRows returns a cursor mapping each row of src through mapRow. Column
// names are resolved to positions once, on the first row. The cursor owns
// src; closing the cursor closes it.
func FromRows[T any](src RowSource, mapRow func(Row) (T, error)) cursor.Cursor[T] {
	return &rowCursor[T]{src: src, mapRow: mapRow}
}

func (c *rowCursor[T]) resolve() error {
	if c.byName != nil {
		return nil
	}
	cols, err := c.src.Columns()
	if err != nil {
		return err
	}
	c.byName = make(map[string]int, len(cols))
	for i, name := range cols {
		c.byName[name] = i
	}
	c.columns = len(cols)
	return nil
}

func (c *rowCursor[T]) HasNext() (bool, error) {
	if c.peeked {
		return true, nil
	}
	if c.done {
		return false, nil
	}
	if !c.src.Next() {
		c.done = true
		return false, c.src.Err()
	}
	if err := c.resolve(); err != nil {
		return false, err
	}

	values := make([]any, c.columns)
	dest := make([]any, c.columns)
	for i := range values {
		dest[i] = &values[i]
	}
	if err := c.src.Scan(dest...); err != nil {
		return false, err
	}

	v, err := c.mapRow(Row{byName: c.byName, values: values})
	if err != nil {
		return false, err
	}
	c.pending = v
	c.peeked = true
	return true, nil
}

func (c *rowCursor[T]) Next() (T, error) {
	var zero T
	ok, err := c.HasNext()
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, cursor.ErrNoSuchElement
	}
	v := c.pending
	c.pending = zero
	c.peeked = false
	return v, nil
}

func (c *rowCursor[T]) Close() error {
	c.done = true
	c.peeked = false
	return c.src.Close()
}
