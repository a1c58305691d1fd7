package collections

import (
	"fmt"

	"github.com/go-drift/reactive/pkg/core"
	"github.com/go-drift/reactive/pkg/errors"
)

// SuppressChangeNotifications silences every notification until the returned
// release function is called. Scopes nest: only the outermost release
// announces the accumulated changes, as one Reset pair on Changing and
// Changed. Calling release more than once has no further effect.
//
//	release := list.SuppressChangeNotifications()
//	for _, v := range values {
//	    list.Add(v)
//	}
//	release()
func (l *List[T]) SuppressChangeNotifications() (release func()) {
	if l.suppressCount == 0 && !l.noResetWarning && !l.warnedNoReset &&
		!l.shouldReset.HasListeners() && !l.changed.HasListeners() {
		l.warnedNoReset = true
		errors.Warn(&errors.Warning{
			Op:      "List.SuppressChangeNotifications",
			Kind:    errors.KindDegraded,
			Subject: fmt.Sprintf("%T", l),
			Message: "notifications suppressed but nothing listens to ShouldReset or Changed; the closing Reset will go unnoticed",
		})
	}
	l.suppressCount++

	released := false
	return func() {
		if released {
			return
		}
		released = true
		l.suppressCount--
		if l.suppressCount == 0 {
			l.publishReset()
		}
	}
}

// ChangeNotificationsEnabled reports whether notifications are currently
// delivered, i.e. no suppression scope is open.
func (l *List[T]) ChangeNotificationsEnabled() bool {
	return l.notifying()
}

func (l *List[T]) notifying() bool {
	return l.suppressCount == 0
}

func (l *List[T]) publishReset() {
	ev := resetEvent[T]()
	l.changing.Emit(ev)
	l.emitChanged(ev)
	l.publishCount()
}

// SetChangeTracking turns per-item change tracking on or off. Turning it on
// subscribes to every current item implementing core.PropertyNotifier, once
// per distinct item; turning it off releases every subscription.
func (l *List[T]) SetChangeTracking(enabled bool) {
	switch {
	case enabled && l.tracker == nil:
		l.tracker = newItemTracker(l.onItemChanging, l.onItemChanged)
		l.tracker.trackAll(l.items)
	case !enabled && l.tracker != nil:
		l.tracker.clear()
		l.tracker = nil
	}
	l.opts.ChangeTracking = enabled
}

// ChangeTrackingEnabled reports whether per-item change tracking is on.
func (l *List[T]) ChangeTrackingEnabled() bool {
	return l.tracker != nil
}

// Dispose releases every per-item subscription. The list stays usable;
// change tracking is simply off afterwards.
func (l *List[T]) Dispose() {
	l.SetChangeTracking(false)
}

func (l *List[T]) trackItems(items []T) {
	if l.tracker != nil {
		l.tracker.trackAll(items)
	}
}

func (l *List[T]) untrackItems(items []T) {
	if l.tracker != nil {
		l.tracker.untrackAll(items)
	}
}

func (l *List[T]) onItemChanging(item T, property string) {
	if l.notifying() {
		l.itemChanging.Emit(ItemChange[T]{Item: item, Property: property})
	}
}

func (l *List[T]) onItemChanged(item T, property string) {
	if l.notifying() {
		l.itemChanged.Emit(ItemChange[T]{Item: item, Property: property})
	}
}

// Changing fires immediately before each structural change.
func (l *List[T]) Changing() *core.Stream[ChangeEvent[T]] { return &l.changing }

// Changed fires immediately after each structural change.
func (l *List[T]) Changed() *core.Stream[ChangeEvent[T]] { return &l.changed }

// BeforeItemsAdded delivers each item about to be added.
func (l *List[T]) BeforeItemsAdded() *core.Stream[T] { return &l.beforeAdded }

// ItemsAdded delivers each added item.
func (l *List[T]) ItemsAdded() *core.Stream[T] { return &l.added }

// BeforeItemsRemoved delivers each item about to be removed.
func (l *List[T]) BeforeItemsRemoved() *core.Stream[T] { return &l.beforeRemoved }

// ItemsRemoved delivers each removed item.
func (l *List[T]) ItemsRemoved() *core.Stream[T] { return &l.removed }

// BeforeItemsMoved fires before an item moves.
func (l *List[T]) BeforeItemsMoved() *core.Stream[MoveEvent[T]] { return &l.beforeMoved }

// ItemsMoved fires after an item moved.
func (l *List[T]) ItemsMoved() *core.Stream[MoveEvent[T]] { return &l.moved }

// ItemChanging fires when a tracked item is about to change a property.
func (l *List[T]) ItemChanging() *core.Stream[ItemChange[T]] { return &l.itemChanging }

// ItemChanged fires when a tracked item changed a property.
func (l *List[T]) ItemChanged() *core.Stream[ItemChange[T]] { return &l.itemChanged }

// CountChanging delivers the current length before a change that alters it.
func (l *List[T]) CountChanging() *core.Stream[int] { return &l.countChanging }

// CountChanged delivers the new length whenever it changes.
func (l *List[T]) CountChanged() *core.Stream[int] { return &l.countChanged }

// IsEmptyChanged fires when the list becomes empty or stops being empty.
func (l *List[T]) IsEmptyChanged() *core.Stream[bool] { return &l.isEmptyChanged }

// ShouldReset fires whenever observers must enumerate the list again.
func (l *List[T]) ShouldReset() *core.Stream[struct{}] { return &l.shouldReset }
