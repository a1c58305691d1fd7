package normalize

import "github.com/go-drift/reactive/pkg/collections"

// Recorder buffers the structural changes of a collection as updates until
// the host is ready to apply them in one batch.
//
//	rec := normalize.Record[Row](rows)
//	defer rec.Dispose()
//	// ... on the next frame:
//	updates, reset := rec.Flush()
//	if reset {
//	    view.ReloadData()
//	} else {
//	    deletes, adds := normalize.Split(updates)
//	    view.Apply(deletes, adds)
//	}
//
// Recorder is NOT thread-safe; use it on the goroutine that mutates the
// collection.
type Recorder[T any] struct {
	pending []Update
	reset   bool
	unsub   func()
}

// Record starts recording the changes source announces on Changed.
func Record[T any](source collections.ChangeNotifier[T]) *Recorder[T] {
	r := &Recorder[T]{}
	r.unsub = source.Changed().Listen(r.record)
	return r
}

func (r *Recorder[T]) record(ev collections.ChangeEvent[T]) {
	if r.reset {
		return
	}
	switch ev.Action {
	case collections.ActionAdd:
		for k := range ev.NewItems {
			r.pending = append(r.pending, Add(ev.NewIndex+k))
		}
	case collections.ActionRemove:
		for range ev.OldItems {
			r.pending = append(r.pending, Delete(ev.OldIndex))
		}
	case collections.ActionReplace:
		for k := range ev.NewItems {
			r.pending = append(r.pending, Delete(ev.NewIndex+k), Add(ev.NewIndex+k))
		}
	case collections.ActionMove:
		for range ev.NewItems {
			r.pending = append(r.pending, Delete(ev.OldIndex), Add(ev.NewIndex))
		}
	case collections.ActionReset:
		r.reset = true
		r.pending = nil
	}
}

// Pending returns the number of raw updates recorded since the last Flush.
func (r *Recorder[T]) Pending() int {
	return len(r.pending)
}

// Flush returns the recorded updates, normalized, and clears the buffer.
// When a Reset was recorded the updates are nil and reset is true: the host
// must reload everything.
func (r *Recorder[T]) Flush() (updates []Update, reset bool) {
	updates, reset = Normalize(r.pending), r.reset
	if reset {
		updates = nil
	}
	r.pending = nil
	r.reset = false
	return updates, reset
}

// Dispose stops recording. Updates already buffered can still be flushed.
func (r *Recorder[T]) Dispose() {
	if r.unsub != nil {
		r.unsub()
		r.unsub = nil
	}
}
