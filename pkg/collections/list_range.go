package collections

import (
	"slices"

	"github.com/go-drift/reactive/pkg/errors"
)

// AddRange appends items.
//
// Large batches (see ListOptions.ResetRatio) are applied silently and
// announced as one Reset. Otherwise the batch is announced as one range
// event when RangeNotifications is set, or one event per item.
func (l *List[T]) AddRange(items []T) {
	l.insertRange(len(l.items), items)
}

// InsertRange inserts items starting at index, which must be in [0, Len()].
// Notifications follow the same policy as AddRange.
func (l *List[T]) InsertRange(index int, items []T) error {
	if index < 0 || index > len(l.items) {
		return errors.OutOfRange("List.InsertRange", index, l.bounds(true))
	}
	l.insertRange(index, items)
	return nil
}

// RemoveRange removes count items starting at index.
// Notifications follow the same policy as AddRange.
func (l *List[T]) RemoveRange(index, count int) error {
	if index < 0 || index > len(l.items) {
		return errors.OutOfRange("List.RemoveRange", index, l.bounds(true))
	}
	if count < 0 || index+count > len(l.items) {
		return errors.OutOfRange("List.RemoveRange", index+count, l.bounds(true))
	}
	if count == 0 {
		return nil
	}

	if l.aboveResetThreshold(count) {
		release := l.SuppressChangeNotifications()
		defer release()
	}
	if !l.notifying() || l.opts.RangeNotifications {
		l.removeItems(index, count)
		return nil
	}
	for range count {
		l.removeItems(index, 1)
	}
	return nil
}

// RemoveAll removes the first occurrence of each of items and returns how
// many were found.
func (l *List[T]) RemoveAll(items []T) int {
	if len(items) == 0 {
		return 0
	}
	if l.aboveResetThreshold(len(items)) {
		release := l.SuppressChangeNotifications()
		defer release()
	}
	removed := 0
	for _, item := range slices.Clone(items) {
		if l.Remove(item) {
			removed++
		}
	}
	return removed
}

// Sort orders the list with cmp, keeping equal items in their current order,
// and announces the result as a Reset.
func (l *List[T]) Sort(cmp func(a, b T) int) {
	release := l.SuppressChangeNotifications()
	defer release()
	slices.SortStableFunc(l.items, cmp)
}

func (l *List[T]) insertRange(index int, items []T) {
	if len(items) == 0 {
		return
	}
	items = slices.Clone(items)

	if l.aboveResetThreshold(len(items)) {
		release := l.SuppressChangeNotifications()
		defer release()
	}
	if !l.notifying() || l.opts.RangeNotifications {
		l.insertItems(index, items)
		return
	}
	for i, item := range items {
		l.insertItems(index+i, []T{item})
	}
}

// aboveResetThreshold reports whether a batch of n items should be announced
// as a Reset. An empty list counts as exceeded for any n above the floor.
func (l *List[T]) aboveResetThreshold(n int) bool {
	if l.opts.ResetRatio < 0 {
		return false
	}
	return float64(n) > l.opts.ResetRatio*float64(len(l.items)) && n > l.opts.ResetFloor
}
