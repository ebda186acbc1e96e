// Package mainloop provides a single-goroutine event loop and helpers for
// scheduling work onto it.
package mainloop

import (
	"context"
	"sync"
)

// Loop runs posted functions one at a time, in post order, on the
// goroutine that called Run.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	done    chan struct{}
	running bool
	stopped bool
}

// NewLoop creates a loop. Functions posted before Run are queued.
func NewLoop() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Post queues fn. It never blocks, may be called from any goroutine
// including the loop itself, and drops fn once the loop has stopped.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}

	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run drains the queue until ctx is done. Queued work left at that point
// is dropped. Run may only be called once.
func (l *Loop) Run(ctx context.Context) {
	l.mu.Lock()
	if l.running || l.stopped {
		l.mu.Unlock()
		return
	}
	l.running = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.stopped = true
		l.queue = nil
		l.mu.Unlock()
		close(l.done)
	}()

	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range batch {
			if ctx.Err() != nil {
				return
			}
			fn()
		}
		if len(batch) > 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-l.wake:
		}
	}
}

// Wakeup is signalled after Post. A foreign event loop waits on it and
// calls Drain instead of using Run.
func (l *Loop) Wakeup() <-chan struct{} {
	return l.wake
}

// Drain runs the work queued so far on the calling goroutine and returns
// how many functions ran. Work posted by those functions waits for the
// next Drain. Do not mix Drain with Run.
func (l *Loop) Drain() int {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return 0
	}
	batch := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Stop drops queued work and makes later Posts no-ops. Only needed when
// the loop is driven with Drain; Run stops on its own.
func (l *Loop) Stop() {
	l.mu.Lock()
	l.stopped = true
	l.queue = nil
	l.mu.Unlock()
}

// Done is closed when Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Inline runs fn immediately on the caller's goroutine. It is the post
// function for code that has no event loop.
func Inline(fn func()) {
	fn()
}
