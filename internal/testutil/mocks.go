package testutil

import (
	"errors"
	"sync"
)

// CloseRecorder counts Close calls and can be configured to fail.
// Used by shutdown-chain tests to verify at-most-once execution.
type CloseRecorder struct {
	mu     sync.Mutex
	closes int
	err    error
}

// NewCloseRecorder creates a CloseRecorder that closes without error.
func NewCloseRecorder() *CloseRecorder {
	return &CloseRecorder{}
}

// Close records the call and returns the configured error, if any.
func (c *CloseRecorder) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closes++
	return c.err
}

// Closes returns how many times Close was called.
func (c *CloseRecorder) Closes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closes
}

// FailWith makes subsequent Close calls return err.
func (c *CloseRecorder) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// ErrReader is an io.Reader that yields its payload and then a fixed error
// instead of io.EOF.
type ErrReader struct {
	payload []byte
	err     error
	offset  int
}

// NewErrReader creates an ErrReader serving payload then failing with err.
// If err is nil a generic read error is used.
func NewErrReader(payload []byte, err error) *ErrReader {
	if err == nil {
		err = errors.New("simulated read error")
	}
	return &ErrReader{payload: payload, err: err}
}

// Read implements io.Reader.
func (r *ErrReader) Read(p []byte) (int, error) {
	if r.offset >= len(r.payload) {
		return 0, r.err
	}
	n := copy(p, r.payload[r.offset:])
	r.offset += n
	return n, nil
}
