// Package eventloop runs UI work on a single goroutine. Handlers posted to a
// Loop run to completion one at a time, and timers fire by posting their
// callback back onto the loop, so document state is never touched
// concurrently.
package eventloop

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const DefaultQueueSize = 64

// Loop is a cooperative single-threaded task queue.
type Loop struct {
	tasks   chan func()
	stopped chan struct{}
	once    sync.Once
}

// New creates a loop with room for queueSize pending tasks.
func New(queueSize int) *Loop {
	if queueSize < 1 {
		queueSize = DefaultQueueSize
	}
	return &Loop{
		tasks:   make(chan func(), queueSize),
		stopped: make(chan struct{}),
	}
}

// Run processes tasks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.stopped) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task := <-l.tasks:
			l.run(task)
		}
	}
}

func (l *Loop) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Event loop task panicked", "panic", r)
		}
	}()
	task()
}

// Post queues fn and reports whether it was accepted. It returns false once
// the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.stopped:
		return false
	default:
	}

	select {
	case l.tasks <- fn:
		return true
	case <-l.stopped:
		return false
	}
}

// Do runs fn on the loop and waits for it to finish. It must not be called
// from a task already running on the loop.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return ErrStopped
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopped:
		return ErrStopped
	}
}

// AfterFunc schedules fn to run on the loop once d has elapsed. There is no
// cancellation; callbacks must tolerate running after the state they were
// scheduled for has changed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		if !l.Post(fn) {
			slog.Debug("Dropped timer callback, event loop stopped", "delay", d)
		}
	})
}
