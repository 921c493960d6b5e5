package source

import (
	"bufio"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/vnykmshr/seqflow/pkg/streaming/cursor"
)

// LineOption configures a line cursor.
type LineOption func(*lineConfig)

type lineConfig struct {
	enc     encoding.Encoding
	maxLine int
}

// WithEncoding decodes the reader from the given charset before splitting
// into lines. The default is UTF-8, read as-is.
func WithEncoding(enc encoding.Encoding) LineOption {
	return func(c *lineConfig) {
		c.enc = enc
	}
}

// WithMaxLineSize raises the maximum accepted line length in bytes.
func WithMaxLineSize(n int) LineOption {
	return func(c *lineConfig) {
		c.maxLine = n
	}
}

// lineCursor pulls lines one at a time with a single-slot lookahead.
type lineCursor struct {
	scanner *bufio.Scanner
	closer  io.Closer
	pending string
	peeked  bool
	done    bool
}

// Lines returns a cursor over the lines of r, without terminators. When r is
// an io.Closer, closing the cursor closes it.
func Lines(r io.Reader, opts ...LineOption) cursor.Cursor[string] {
	cfg := lineConfig{maxLine: bufio.MaxScanTokenSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	closer, _ := r.(io.Closer)
	if cfg.enc != nil {
		r = transform.NewReader(r, cfg.enc.NewDecoder())
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), cfg.maxLine)
	return &lineCursor{scanner: scanner, closer: closer}
}

func (c *lineCursor) HasNext() (bool, error) {
	if c.peeked {
		return true, nil
	}
	if c.done {
		return false, nil
	}
	if !c.scanner.Scan() {
		c.done = true
		return false, c.scanner.Err()
	}
	c.pending = c.scanner.Text()
	c.peeked = true
	return true, nil
}

func (c *lineCursor) Next() (string, error) {
	ok, err := c.HasNext()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", cursor.ErrNoSuchElement
	}
	v := c.pending
	c.pending = ""
	c.peeked = false
	return v, nil
}

func (c *lineCursor) Close() error {
	c.done = true
	c.peeked = false
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
