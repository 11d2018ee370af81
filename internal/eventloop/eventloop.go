// Package eventloop serializes daemon work onto a single goroutine.
//
// Hotkey callbacks, IPC and D-Bus handlers, the reconciler and timers all
// hand their work to the Loop, so the toggle controller never sees two
// callers at once.
package eventloop

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"
)

// ErrStopped is returned when work is submitted to a loop that has exited.
var ErrStopped = errors.New("event loop stopped")

// Loop runs queued funcs one at a time in submission order.
type Loop struct {
	queue  chan func()
	done   chan struct{}
	logger *slog.Logger

	running atomic.Bool
}

// New creates a loop with the given queue depth.
func New(depth int, logger *slog.Logger) *Loop {
	if depth <= 0 {
		depth = 64
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		queue:  make(chan func(), depth),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Run executes queued work until ctx is cancelled. It may be called once.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return errors.New("event loop already running")
	}
	defer close(l.done)

	l.logger.Debug("event loop started")
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("event loop stopped")
			return ctx.Err()
		case fn := <-l.queue:
			l.invoke(fn)
		}
	}
}

func (l *Loop) invoke(fn func()) {
	defer func() {
		if err := recover(); err != nil {
			l.logger.Error("event loop panic recovered", "error", err)
		}
	}()
	fn()
}

// Post queues fn without waiting for it to run. It blocks while the queue
// is full and returns ErrStopped once the loop has exited.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return ErrStopped
	default:
	}
	select {
	case l.queue <- fn:
		return nil
	case <-l.done:
		return ErrStopped
	}
}

// Do runs fn on the loop and waits for it to return. fn is skipped if ctx
// is done by the time the loop reaches it.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	err := l.Post(func() {
		defer close(finished)
		if ctx.Err() != nil {
			return
		}
		fn()
	})
	if err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrStopped
	}
}

// AfterFunc runs fn on the loop once d has elapsed. Calling the returned
// func from the loop guarantees fn will not run, even if its timer already
// fired and the call is sitting in the queue.
func (l *Loop) AfterFunc(d time.Duration, fn func()) func() {
	var cancelled atomic.Bool
	timer := time.AfterFunc(d, func() {
		if cancelled.Load() {
			return
		}
		_ = l.Post(func() {
			if cancelled.Load() {
				return
			}
			fn()
		})
	})
	return func() {
		cancelled.Store(true)
		timer.Stop()
	}
}
