package collections

import (
	"fmt"
	"iter"
	"slices"

	"github.com/go-drift/reactive/pkg/core"
	"github.com/go-drift/reactive/pkg/errors"
	"github.com/go-drift/reactive/pkg/platform"
)

const (
	// DefaultResetRatio is the share of the current length above which a
	// range operation is announced as a single Reset.
	DefaultResetRatio = 0.3
	// DefaultResetFloor is the batch size a range operation must exceed
	// before it can be announced as a Reset.
	DefaultResetFloor = 10
)

// ListOptions configures a List. The zero value is usable.
type ListOptions[T any] struct {
	// ResetRatio and ResetFloor control when a range operation is announced
	// as one Reset instead of per-item or range events: a batch of n items
	// resets when n > ResetRatio*Len() and n > ResetFloor.
	// Zero values select DefaultResetRatio and DefaultResetFloor. A negative
	// ResetRatio disables reset batching; a negative ResetFloor removes the
	// floor.
	ResetRatio float64
	ResetFloor int

	// RangeNotifications emits one aggregated event per range operation
	// instead of one event per item.
	RangeNotifications bool

	// ChangeTracking subscribes to items implementing core.PropertyNotifier
	// and rebroadcasts their changes on ItemChanging and ItemChanged.
	ChangeTracking bool

	// Scheduler delivers the per-item, count and reset streams.
	// Nil means platform.Immediate.
	Scheduler platform.Scheduler

	// Equal is used by IndexOf, Contains, Remove and RemoveAll.
	// Nil means core.Same.
	Equal func(a, b T) bool
}

// List is an ordered, indexable sequence that notifies observers before and
// after each structural change.
//
// Changing and Changed (and the item change streams) fire synchronously on
// the calling goroutine, Changing immediately before the mutation and Changed
// immediately after. The per-item, count and reset streams are delivered
// through the configured Scheduler.
//
// List is NOT thread-safe. Like the rest of the UI state it must only be
// mutated from one goroutine at a time, normally the UI thread.
type List[T any] struct {
	items     []T
	opts      ListOptions[T]
	scheduler platform.Scheduler
	equal     func(a, b T) bool

	suppressCount  int
	warnedNoReset  bool
	noResetWarning bool
	tracker        *itemTracker[T]
	lastCount      int

	changing       core.Stream[ChangeEvent[T]]
	changed        core.Stream[ChangeEvent[T]]
	beforeAdded    core.Stream[T]
	added          core.Stream[T]
	beforeRemoved  core.Stream[T]
	removed        core.Stream[T]
	beforeMoved    core.Stream[MoveEvent[T]]
	moved          core.Stream[MoveEvent[T]]
	itemChanging   core.Stream[ItemChange[T]]
	itemChanged    core.Stream[ItemChange[T]]
	countChanging  core.Stream[int]
	countChanged   core.Stream[int]
	isEmptyChanged core.Stream[bool]
	shouldReset    core.Stream[struct{}]
}

// NewList creates a List holding items with default options.
func NewList[T any](items ...T) *List[T] {
	return NewListWithOptions(ListOptions[T]{}, items...)
}

// NewListWithOptions creates a List holding items.
func NewListWithOptions[T any](opts ListOptions[T], items ...T) *List[T] {
	if opts.ResetRatio == 0 {
		opts.ResetRatio = DefaultResetRatio
	}
	if opts.ResetFloor == 0 {
		opts.ResetFloor = DefaultResetFloor
	}
	l := &List[T]{
		items:     slices.Clone(items),
		opts:      opts,
		scheduler: platform.Or(opts.Scheduler),
		equal:     opts.Equal,
	}
	if l.equal == nil {
		l.equal = core.Same[T]
	}
	l.lastCount = len(l.items)
	if opts.ChangeTracking {
		l.SetChangeTracking(true)
	}
	return l
}

// Len returns the number of items.
func (l *List[T]) Len() int { return len(l.items) }

// At returns the item at index. It panics if index is out of range, like a
// slice index expression; use Get for a checked read.
func (l *List[T]) At(index int) T { return l.items[index] }

// Get returns the item at index, or a KindRange error.
func (l *List[T]) Get(index int) (T, error) {
	if index < 0 || index >= len(l.items) {
		var zero T
		return zero, errors.OutOfRange("List.Get", index, l.bounds(false))
	}
	return l.items[index], nil
}

// Items returns a copy of the items.
func (l *List[T]) Items() []T { return slices.Clone(l.items) }

// All iterates over index/item pairs.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range l.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// IsEmpty reports whether the list has no items.
func (l *List[T]) IsEmpty() bool { return len(l.items) == 0 }

// IndexOf returns the index of the first item equal to item, or -1.
func (l *List[T]) IndexOf(item T) int {
	return slices.IndexFunc(l.items, func(v T) bool { return l.equal(v, item) })
}

// Contains reports whether item is in the list.
func (l *List[T]) Contains(item T) bool { return l.IndexOf(item) >= 0 }

// Add appends item.
func (l *List[T]) Add(item T) {
	l.insertItems(len(l.items), []T{item})
}

// Insert inserts item at index. Index must be in [0, Len()].
func (l *List[T]) Insert(index int, item T) error {
	if index < 0 || index > len(l.items) {
		return errors.OutOfRange("List.Insert", index, l.bounds(true))
	}
	l.insertItems(index, []T{item})
	return nil
}

// RemoveAt removes the item at index. Index must be in [0, Len()).
func (l *List[T]) RemoveAt(index int) error {
	if index < 0 || index >= len(l.items) {
		return errors.OutOfRange("List.RemoveAt", index, l.bounds(false))
	}
	l.removeItems(index, 1)
	return nil
}

// Remove removes the first item equal to item and reports whether one was found.
func (l *List[T]) Remove(item T) bool {
	i := l.IndexOf(item)
	if i < 0 {
		return false
	}
	l.removeItems(i, 1)
	return true
}

// Set replaces the item at index. Index must be in [0, Len()).
func (l *List[T]) Set(index int, item T) error {
	if index < 0 || index >= len(l.items) {
		return errors.OutOfRange("List.Set", index, l.bounds(false))
	}
	l.setItem(index, item)
	return nil
}

// Move moves the item at oldIndex so that it ends up at newIndex.
// Both indices must be in [0, Len()). Moving an item onto itself does nothing.
func (l *List[T]) Move(oldIndex, newIndex int) error {
	if oldIndex < 0 || oldIndex >= len(l.items) {
		return errors.OutOfRange("List.Move", oldIndex, l.bounds(false))
	}
	if newIndex < 0 || newIndex >= len(l.items) {
		return errors.OutOfRange("List.Move", newIndex, l.bounds(false))
	}
	l.moveItem(oldIndex, newIndex)
	return nil
}

// Clear removes every item and announces a Reset.
func (l *List[T]) Clear() {
	l.clearItems()
}

// Reset announces a Reset without changing the list, telling observers to
// enumerate it again.
func (l *List[T]) Reset() {
	if l.notifying() {
		l.publishReset()
	}
}

func (l *List[T]) bounds(inclusive bool) string {
	if inclusive {
		return fmt.Sprintf("[0, %d]", len(l.items))
	}
	return fmt.Sprintf("[0, %d)", len(l.items))
}

// insertItems is the single write path for insertions. Callers validate index.
func (l *List[T]) insertItems(index int, items []T) {
	if !l.notifying() {
		l.items = slices.Insert(l.items, index, items...)
		l.trackItems(items)
		return
	}

	ev := addEvent(index, items)
	l.changing.Emit(ev)
	l.announceCountChanging()
	l.postEach(&l.beforeAdded, items)

	l.items = slices.Insert(l.items, index, items...)

	l.changed.Emit(ev)
	l.postEach(&l.added, items)
	l.trackItems(items)
	l.publishCount()
}

func (l *List[T]) removeItems(index, count int) {
	old := slices.Clone(l.items[index : index+count])
	if !l.notifying() {
		l.items = slices.Delete(l.items, index, index+count)
		l.untrackItems(old)
		return
	}

	ev := removeEvent(index, old)
	l.changing.Emit(ev)
	l.announceCountChanging()
	l.postEach(&l.beforeRemoved, old)

	l.items = slices.Delete(l.items, index, index+count)

	l.changed.Emit(ev)
	l.postEach(&l.removed, old)
	l.untrackItems(old)
	l.publishCount()
}

func (l *List[T]) setItem(index int, item T) {
	old := l.items[index]
	if !l.notifying() {
		l.items[index] = item
		l.untrackItems([]T{old})
		l.trackItems([]T{item})
		return
	}

	ev := replaceEvent(index, old, item)
	l.changing.Emit(ev)
	l.postEach(&l.beforeRemoved, []T{old})
	l.postEach(&l.beforeAdded, []T{item})

	l.items[index] = item

	l.changed.Emit(ev)
	l.postEach(&l.removed, []T{old})
	l.postEach(&l.added, []T{item})
	l.untrackItems([]T{old})
	l.trackItems([]T{item})
}

func (l *List[T]) moveItem(oldIndex, newIndex int) {
	if oldIndex == newIndex {
		return
	}
	item := l.items[oldIndex]
	shift := func() {
		l.items = slices.Delete(l.items, oldIndex, oldIndex+1)
		l.items = slices.Insert(l.items, newIndex, item)
	}
	if !l.notifying() {
		shift()
		return
	}

	ev := moveEvent(oldIndex, newIndex, item)
	mv := MoveEvent[T]{Items: []T{item}, From: oldIndex, To: newIndex}
	l.changing.Emit(ev)
	post(l, &l.beforeMoved, mv)

	shift()

	l.changed.Emit(ev)
	post(l, &l.moved, mv)
}

func (l *List[T]) clearItems() {
	old := l.items
	if !l.notifying() {
		l.items = nil
		l.untrackItems(old)
		return
	}

	ev := resetEvent[T]()
	l.changing.Emit(ev)
	l.announceCountChanging()
	l.postEach(&l.beforeRemoved, old)

	l.items = nil

	l.emitChanged(ev)
	l.postEach(&l.removed, old)
	l.untrackItems(old)
	l.publishCount()
}

func (l *List[T]) emitChanged(ev ChangeEvent[T]) {
	l.changed.Emit(ev)
	if ev.Action == ActionReset {
		post(l, &l.shouldReset, struct{}{})
	}
}

// post delivers value on s through the scheduler. Streams without
// listeners are skipped.
func post[T, E any](l *List[T], s *core.Stream[E], value E) {
	if !s.HasListeners() {
		return
	}
	l.scheduler.Schedule(func() { s.Emit(value) })
}

func (l *List[T]) postEach(s *core.Stream[T], items []T) {
	if len(items) == 0 || !s.HasListeners() {
		return
	}
	items = slices.Clone(items)
	l.scheduler.Schedule(func() {
		for _, item := range items {
			s.Emit(item)
		}
	})
}

func (l *List[T]) announceCountChanging() {
	post(l, &l.countChanging, len(l.items))
}

// publishCount delivers CountChanged and IsEmptyChanged when the length
// differs from the last published one.
func (l *List[T]) publishCount() {
	count := len(l.items)
	if count == l.lastCount {
		return
	}
	wasEmpty := l.lastCount == 0
	l.lastCount = count
	post(l, &l.countChanged, count)
	if isEmpty := count == 0; isEmpty != wasEmpty {
		post(l, &l.isEmptyChanged, isEmpty)
	}
}
