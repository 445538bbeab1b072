package groupkit

import "go.llib.dev/groupkit/pkg/errorkit"

// cursor is the single position within the source.
// Only GroupBy holds it, Groups reach it through their parent.
type cursor[T any] struct {
	next func() (T, bool)
	stop func() error
	err  func() error

	done     bool
	stopped  bool
	closeErr error
}

func (c *cursor[T]) pull() (T, bool) {
	if c.done {
		var zero T
		return zero, false
	}
	v, ok := c.next()
	if !ok {
		c.done = true
		_ = c.close()
		return v, false
	}
	return v, true
}

func (c *cursor[T]) close() error {
	c.done = true
	if c.stopped {
		return nil
	}
	c.stopped = true
	c.closeErr = c.stop()
	return c.closeErr
}

func (c *cursor[T]) Err() error {
	var errs []error
	if c.err != nil {
		errs = append(errs, c.err())
	}
	return errorkit.Merge(append(errs, c.closeErr)...)
}
