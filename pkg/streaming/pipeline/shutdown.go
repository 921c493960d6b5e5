package pipeline

import (
	"errors"
	"sync"
)

// CloseFunc is a zero-argument fallible cleanup action.
type CloseFunc func() error

// closeHook wraps a cleanup action with its own run-at-most-once latch. The
// latch is attached when the hook is created, not when chains are merged, so
// a hook referenced from several merged chains still runs exactly once.
type closeHook struct {
	once sync.Once
	fn   CloseFunc
}

func newCloseHook(fn CloseFunc) *closeHook {
	return &closeHook{fn: fn}
}

func (h *closeHook) run() error {
	var err error
	h.once.Do(func() {
		err = h.fn()
	})
	return err
}

// closeChain is an ordered list of close hooks executed front to back
// exactly once. Merging chains is plain list concatenation; the at-most-once
// guarantee travels with each hook.
type closeChain struct {
	mu     sync.Mutex
	closed bool
	hooks  []*closeHook
}

func newCloseChain() *closeChain {
	return &closeChain{}
}

// push prepends a new action ahead of the existing chain.
func (c *closeChain) push(fn CloseFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append([]*closeHook{newCloseHook(fn)}, c.hooks...)
}

// concat appends another chain's hooks after this chain's own. The hooks are
// shared, not copied: their latches guard against double execution.
func (c *closeChain) concat(other *closeChain) {
	other.mu.Lock()
	hooks := other.hooks
	other.mu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, hooks...)
}

func (c *closeChain) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// close runs every hook front to back, best effort. All failures surface:
// the first failure is primary and every later one is attached to it. An
// empty chain just marks itself closed.
func (c *closeChain) close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	hooks := c.hooks
	c.hooks = nil
	c.mu.Unlock()

	var errs []error
	for _, h := range hooks {
		if err := h.run(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
