package collections

import "github.com/go-drift/reactive/pkg/core"

// refCount shares one subscription among every occurrence of an item.
// The subscription is released exactly when the count drops to zero.
type refCount struct {
	count   int
	release func()
}

func (r *refCount) addRef() {
	r.count++
}

// releaseRef drops one reference and reports whether it was the last one.
func (r *refCount) releaseRef() bool {
	r.count--
	if r.count > 0 {
		return false
	}
	if r.release != nil {
		r.release()
		r.release = nil
	}
	return true
}

// itemTracker subscribes to the property notifications of items that
// implement core.PropertyNotifier. Items that do not, or whose dynamic type
// cannot be a map key, are ignored.
type itemTracker[T any] struct {
	entries    map[any]*refCount
	onChanging func(item T, property string)
	onChanged  func(item T, property string)
}

func newItemTracker[T any](onChanging, onChanged func(item T, property string)) *itemTracker[T] {
	return &itemTracker[T]{
		entries:    make(map[any]*refCount),
		onChanging: onChanging,
		onChanged:  onChanged,
	}
}

func (t *itemTracker[T]) track(item T) {
	key := any(item)
	notifier, ok := key.(core.PropertyNotifier)
	if !ok || !core.Comparable(key) {
		return
	}
	if entry, ok := t.entries[key]; ok {
		entry.addRef()
		return
	}

	var unsubs []func()
	if t.onChanged != nil {
		unsubs = append(unsubs, notifier.OnPropertyChanged(func(c core.PropertyChange) {
			t.onChanged(item, c.Property)
		}))
	}
	if changing, ok := key.(core.PropertyChangingNotifier); ok && t.onChanging != nil {
		unsubs = append(unsubs, changing.OnPropertyChanging(func(c core.PropertyChange) {
			t.onChanging(item, c.Property)
		}))
	}
	t.entries[key] = &refCount{
		count: 1,
		release: func() {
			for _, unsub := range unsubs {
				unsub()
			}
		},
	}
}

func (t *itemTracker[T]) trackAll(items []T) {
	for _, item := range items {
		t.track(item)
	}
}

func (t *itemTracker[T]) untrack(item T) {
	key := any(item)
	if _, ok := key.(core.PropertyNotifier); !ok || !core.Comparable(key) {
		return
	}
	entry, ok := t.entries[key]
	if !ok {
		return
	}
	if entry.releaseRef() {
		delete(t.entries, key)
	}
}

func (t *itemTracker[T]) untrackAll(items []T) {
	for _, item := range items {
		t.untrack(item)
	}
}

// clear releases every subscription regardless of its count.
func (t *itemTracker[T]) clear() {
	for key, entry := range t.entries {
		entry.count = 1
		entry.releaseRef()
		delete(t.entries, key)
	}
}

// refs returns the reference count held for item, 0 if untracked.
func (t *itemTracker[T]) refs(item T) int {
	key := any(item)
	if !core.Comparable(key) {
		return 0
	}
	if entry, ok := t.entries[key]; ok {
		return entry.count
	}
	return 0
}
