package scheduler

import (
	"context"
	"sync"
)

// Completion is a one-shot future. The first Resolve wins; every later call
// is a no-op. Waiters observe the resolved value through Done and Result.
type Completion[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// NewCompletion creates an unresolved completion.
func NewCompletion[T any]() *Completion[T] {
	return &Completion[T]{done: make(chan struct{})}
}

// Resolve sets the terminal value. Returns true if this call resolved the
// completion, false if it had already been resolved.
func (c *Completion[T]) Resolve(value T, err error) bool {
	resolved := false

	c.once.Do(func() {
		c.value = value
		c.err = err
		resolved = true
		close(c.done)
	})

	return resolved
}

// Done is closed once the completion has been resolved.
func (c *Completion[T]) Done() <-chan struct{} {
	return c.done
}

// Resolved reports whether the completion has been resolved.
func (c *Completion[T]) Resolved() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Result returns the terminal value. It must only be called after Done is
// closed; before that the zero value is returned.
func (c *Completion[T]) Result() (T, error) {
	select {
	case <-c.done:
		return c.value, c.err
	default:
		var zero T
		return zero, nil
	}
}

// Wait blocks until the completion resolves or the context is cancelled.
func (c *Completion[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-c.done:
		return c.value, c.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
