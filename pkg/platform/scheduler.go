// Package platform is the seam between reactive collections and the host's
// UI thread. A host adapter registers a Dispatcher; collections deliver their
// scheduled streams through a Scheduler.
package platform

import (
	"sync"

	"github.com/go-drift/reactive/pkg/errors"
)

// Scheduler decides which execution context a callback runs in.
// Collections route their derived event streams through a Scheduler so a
// host adapter can marshal them onto its UI thread.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(fn func())

// Schedule calls f(fn).
func (f SchedulerFunc) Schedule(fn func()) {
	f(fn)
}

// Immediate runs every callback synchronously on the calling goroutine.
var Immediate Scheduler = SchedulerFunc(func(fn func()) { fn() })

// UIScheduler schedules callbacks through Dispatch. When no dispatch
// function is registered the callback runs immediately.
// Panics raised by dispatched callbacks are recovered and reported through
// the errors package so that one bad listener cannot take down the UI loop.
type UIScheduler struct{}

// Schedule implements Scheduler.
func (UIScheduler) Schedule(fn func()) {
	if fn == nil {
		return
	}
	wrapped := func() {
		defer errors.Recover("platform.UIScheduler")
		fn()
	}
	if !Dispatch(wrapped) {
		wrapped()
	}
}

// QueueScheduler collects callbacks until Drain is called. It is useful for
// hosts that pump a frame loop, and in tests that need to observe the gap
// between a mutation and delivery of its derived events.
// QueueScheduler is safe for concurrent use.
type QueueScheduler struct {
	mu      sync.Mutex
	pending []func()
}

// Schedule appends fn to the queue.
func (q *QueueScheduler) Schedule(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Len returns the number of queued callbacks.
func (q *QueueScheduler) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain runs queued callbacks in FIFO order, including callbacks scheduled
// while draining. Returns the number of callbacks run.
func (q *QueueScheduler) Drain() int {
	ran := 0
	for {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		q.mu.Unlock()
		if len(batch) == 0 {
			return ran
		}
		for _, fn := range batch {
			fn()
			ran++
		}
	}
}

// Or returns s, or Immediate when s is nil.
func Or(s Scheduler) Scheduler {
	if s == nil {
		return Immediate
	}
	return s
}
