package collections

import (
	"iter"

	"github.com/go-drift/reactive/pkg/core"
	"github.com/go-drift/reactive/pkg/errors"
)

// Len returns the number of projected values.
func (p *Projection[S, V]) Len() int { return p.list.Len() }

// At returns the value at index. It panics if index is out of range.
func (p *Projection[S, V]) At(index int) V { return p.list.At(index) }

// Get returns the value at index, or a KindRange error.
func (p *Projection[S, V]) Get(index int) (V, error) { return p.list.Get(index) }

// Items returns a copy of the projected values.
func (p *Projection[S, V]) Items() []V { return p.list.Items() }

// All iterates over index/value pairs.
func (p *Projection[S, V]) All() iter.Seq2[int, V] { return p.list.All() }

// IsEmpty reports whether the projection has no values.
func (p *Projection[S, V]) IsEmpty() bool { return p.list.IsEmpty() }

// IndexOf returns the index of the first value the Same function matches, or -1.
func (p *Projection[S, V]) IndexOf(value V) int { return p.list.IndexOf(value) }

// Contains reports whether value is in the projection.
func (p *Projection[S, V]) Contains(value V) bool { return p.list.Contains(value) }

// SuppressChangeNotifications silences the projection's own notifications.
// The projection keeps following its source while suppressed.
func (p *Projection[S, V]) SuppressChangeNotifications() (release func()) {
	return p.list.SuppressChangeNotifications()
}

// ChangeNotificationsEnabled reports whether no suppression scope is open.
func (p *Projection[S, V]) ChangeNotificationsEnabled() bool {
	return p.list.ChangeNotificationsEnabled()
}

// SetChangeTracking turns tracking of the projected values on or off.
func (p *Projection[S, V]) SetChangeTracking(enabled bool) { p.list.SetChangeTracking(enabled) }

// ChangeTrackingEnabled reports whether projected values are tracked.
func (p *Projection[S, V]) ChangeTrackingEnabled() bool { return p.list.ChangeTrackingEnabled() }

func (p *Projection[S, V]) Changing() *core.Stream[ChangeEvent[V]] { return p.list.Changing() }
func (p *Projection[S, V]) Changed() *core.Stream[ChangeEvent[V]] { return p.list.Changed() }
func (p *Projection[S, V]) BeforeItemsAdded() *core.Stream[V] { return p.list.BeforeItemsAdded() }
func (p *Projection[S, V]) ItemsAdded() *core.Stream[V] { return p.list.ItemsAdded() }
func (p *Projection[S, V]) BeforeItemsRemoved() *core.Stream[V] { return p.list.BeforeItemsRemoved() }
func (p *Projection[S, V]) ItemsRemoved() *core.Stream[V] { return p.list.ItemsRemoved() }
func (p *Projection[S, V]) BeforeItemsMoved() *core.Stream[MoveEvent[V]] {
	return p.list.BeforeItemsMoved()
}
func (p *Projection[S, V]) ItemsMoved() *core.Stream[MoveEvent[V]] { return p.list.ItemsMoved() }
func (p *Projection[S, V]) ItemChanging() *core.Stream[ItemChange[V]] { return p.list.ItemChanging() }
func (p *Projection[S, V]) ItemChanged() *core.Stream[ItemChange[V]] { return p.list.ItemChanged() }
func (p *Projection[S, V]) CountChanging() *core.Stream[int] { return p.list.CountChanging() }
func (p *Projection[S, V]) CountChanged() *core.Stream[int] { return p.list.CountChanged() }
func (p *Projection[S, V]) IsEmptyChanged() *core.Stream[bool] { return p.list.IsEmptyChanged() }
func (p *Projection[S, V]) ShouldReset() *core.Stream[struct{}] { return p.list.ShouldReset() }

// The mutators below exist so a Projection can stand in where a mutable
// list is expected. They always fail with ErrReadOnly.

func (p *Projection[S, V]) Add(V) error { return errors.ReadOnly("Projection.Add") }
func (p *Projection[S, V]) Insert(int, V) error { return errors.ReadOnly("Projection.Insert") }
func (p *Projection[S, V]) RemoveAt(int) error { return errors.ReadOnly("Projection.RemoveAt") }
func (p *Projection[S, V]) Remove(V) error { return errors.ReadOnly("Projection.Remove") }
func (p *Projection[S, V]) Set(int, V) error { return errors.ReadOnly("Projection.Set") }
func (p *Projection[S, V]) Move(int, int) error { return errors.ReadOnly("Projection.Move") }
func (p *Projection[S, V]) Clear() error { return errors.ReadOnly("Projection.Clear") }
func (p *Projection[S, V]) AddRange([]V) error { return errors.ReadOnly("Projection.AddRange") }
func (p *Projection[S, V]) InsertRange(int, []V) error { return errors.ReadOnly("Projection.InsertRange") }
func (p *Projection[S, V]) RemoveRange(int, int) error { return errors.ReadOnly("Projection.RemoveRange") }
func (p *Projection[S, V]) Sort(func(a, b V) int) error { return errors.ReadOnly("Projection.Sort") }

var (
	_ Collection[int] = (*List[int])(nil)
	_ Collection[int] = (*Projection[string, int])(nil)
	_ core.Disposable = (*List[int])(nil)
	_ core.Disposable = (*Projection[string, int])(nil)
)
