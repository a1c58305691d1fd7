package testing

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sanity-io/litter"

	"github.com/go-drift/reactive/pkg/collections"
)

// Recorder captures the structural events a collection announces, in order,
// together with the items, counts and resets delivered on its scheduled
// streams. All methods are safe for concurrent use so a Recorder can watch a
// collection fed from another goroutine.
type Recorder[T any] struct {
	mu       sync.Mutex
	changing []collections.ChangeEvent[T]
	changed  []collections.ChangeEvent[T]
	added    []T
	removed  []T
	counts   []int
	resets   int
	unsubs   []func()
}

// Record subscribes a Recorder to c. Call Stop, or pass it to a test's
// Cleanup, to unsubscribe.
func Record[T any](c collections.Collection[T]) *Recorder[T] {
	r := &Recorder[T]{}
	r.unsubs = append(r.unsubs,
		c.Changing().Listen(func(ev collections.ChangeEvent[T]) {
			r.mu.Lock()
			r.changing = append(r.changing, ev)
			r.mu.Unlock()
		}),
		c.Changed().Listen(func(ev collections.ChangeEvent[T]) {
			r.mu.Lock()
			r.changed = append(r.changed, ev)
			r.mu.Unlock()
		}),
		c.ItemsAdded().Listen(func(item T) {
			r.mu.Lock()
			r.added = append(r.added, item)
			r.mu.Unlock()
		}),
		c.ItemsRemoved().Listen(func(item T) {
			r.mu.Lock()
			r.removed = append(r.removed, item)
			r.mu.Unlock()
		}),
		c.CountChanged().Listen(func(n int) {
			r.mu.Lock()
			r.counts = append(r.counts, n)
			r.mu.Unlock()
		}),
		c.ShouldReset().Listen(func(struct{}) {
			r.mu.Lock()
			r.resets++
			r.mu.Unlock()
		}),
	)
	return r
}

// Stop unsubscribes from the collection. Recorded events are kept.
func (r *Recorder[T]) Stop() {
	r.mu.Lock()
	unsubs := r.unsubs
	r.unsubs = nil
	r.mu.Unlock()
	for _, unsub := range unsubs {
		unsub()
	}
}

// Events returns the events delivered on Changed.
func (r *Recorder[T]) Events() []collections.ChangeEvent[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]collections.ChangeEvent[T](nil), r.changed...)
}

// Changing returns the events delivered on Changing.
func (r *Recorder[T]) Changing() []collections.ChangeEvent[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]collections.ChangeEvent[T](nil), r.changing...)
}

// Actions returns the action of every event delivered on Changed.
func (r *Recorder[T]) Actions() []collections.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]collections.Action, len(r.changed))
	for i, ev := range r.changed {
		actions[i] = ev.Action
	}
	return actions
}

// Added returns the items delivered on ItemsAdded.
func (r *Recorder[T]) Added() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.added...)
}

// Removed returns the items delivered on ItemsRemoved.
func (r *Recorder[T]) Removed() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.removed...)
}

// Counts returns the lengths delivered on CountChanged.
func (r *Recorder[T]) Counts() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.counts...)
}

// Resets returns how many times ShouldReset fired.
func (r *Recorder[T]) Resets() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resets
}

// Clear forgets everything recorded so far.
func (r *Recorder[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changing, r.changed = nil, nil
	r.added, r.removed = nil, nil
	r.counts = nil
	r.resets = 0
}

// Transcript renders the Changed events one per line, e.g.
//
//	add@3 [D]
//	remove@0 [A]
//	move 2->0 [C]
//	reset
func (r *Recorder[T]) Transcript() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var b strings.Builder
	for _, ev := range r.changed {
		b.WriteString(FormatEvent(ev))
		b.WriteByte('\n')
	}
	return b.String()
}

// Dump returns a litter dump of the recorded Changed events, handy in
// failure messages.
func (r *Recorder[T]) Dump() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return litter.Sdump(r.changed)
}

// FormatEvent renders one event the way Transcript does.
func FormatEvent[T any](ev collections.ChangeEvent[T]) string {
	switch ev.Action {
	case collections.ActionAdd:
		return fmt.Sprintf("add@%d %v", ev.NewIndex, ev.NewItems)
	case collections.ActionRemove:
		return fmt.Sprintf("remove@%d %v", ev.OldIndex, ev.OldItems)
	case collections.ActionReplace:
		return fmt.Sprintf("replace@%d %v->%v", ev.NewIndex, ev.OldItems, ev.NewItems)
	case collections.ActionMove:
		return fmt.Sprintf("move %d->%d %v", ev.OldIndex, ev.NewIndex, ev.NewItems)
	default:
		return ev.Action.String()
	}
}
