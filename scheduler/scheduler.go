// Package scheduler provides the small concurrency toolkit the menu engine
// runs on: cancellable tasks with panic capture, one-shot completion futures,
// and re-armable wall-clock deadline timers.
package scheduler

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"
)

// Scheduler spawns and tracks the goroutines owned by the menu engine. All
// tasks are cancelled together when the scheduler closes.
type Scheduler struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *zap.Logger

	mu     sync.Mutex
	closed bool
}

// New creates a scheduler rooted at the background context.
func New(logger *zap.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
		logger: logger.Named("scheduler"),
	}
}

// Spawn runs fn on its own goroutine and returns a cancellable handle. The
// task's context is cancelled when the handle is cancelled or the scheduler
// closes. Panics inside fn are captured and logged rather than taking the
// process down.
func (s *Scheduler) Spawn(name string, fn func(ctx context.Context)) *Task {
	ctx, cancel := context.WithCancel(s.ctx)
	task := &Task{
		name:   name,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		cancel()
		close(task.done)

		return task
	}

	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer close(task.done)
		defer cancel()

		if recovered := panics.Try(func() { fn(ctx) }); recovered != nil {
			s.logger.Error("Task panicked",
				zap.String("task", name),
				zap.Any("panic", recovered.Value),
				zap.String("stack", string(recovered.Stack)))
		}
	}()

	return task
}

// Close cancels every running task and waits for them to return.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

// Task is a handle to a spawned goroutine.
type Task struct {
	name   string
	cancel context.CancelFunc
	done   chan struct{}
}

// Name returns the name the task was spawned with.
func (t *Task) Name() string {
	return t.name
}

// Cancel requests the task to stop. Safe to call any number of times from
// any goroutine.
func (t *Task) Cancel() {
	t.cancel()
}

// Done is closed once the task's function has returned.
func (t *Task) Done() <-chan struct{} {
	return t.done
}
