package collections

import (
	"iter"

	"github.com/go-drift/reactive/pkg/core"
)

// Source is the minimal read surface a projection can mirror.
// Plain sources are snapshotted; sources that also implement ChangeNotifier
// are followed incrementally.
type Source[T any] interface {
	Len() int
	At(index int) T
}

// ChangeNotifier is implemented by sources that announce structural changes
// after they happen.
type ChangeNotifier[T any] interface {
	Changed() *core.Stream[ChangeEvent[T]]
}

// ItemChangeNotifier is implemented by collections that rebroadcast
// property changes of their items.
type ItemChangeNotifier[T any] interface {
	ItemChanged() *core.Stream[ItemChange[T]]
	ChangeTrackingEnabled() bool
}

// Collection is the read-only, observable surface shared by List and
// Projection. View hosts bind to it.
type Collection[T any] interface {
	Source[T]
	ChangeNotifier[T]
	ItemChangeNotifier[T]

	Items() []T
	All() iter.Seq2[int, T]
	IsEmpty() bool

	Changing() *core.Stream[ChangeEvent[T]]
	BeforeItemsAdded() *core.Stream[T]
	ItemsAdded() *core.Stream[T]
	BeforeItemsRemoved() *core.Stream[T]
	ItemsRemoved() *core.Stream[T]
	BeforeItemsMoved() *core.Stream[MoveEvent[T]]
	ItemsMoved() *core.Stream[MoveEvent[T]]
	ItemChanging() *core.Stream[ItemChange[T]]
	CountChanging() *core.Stream[int]
	CountChanged() *core.Stream[int]
	IsEmptyChanged() *core.Stream[bool]
	ShouldReset() *core.Stream[struct{}]

	SuppressChangeNotifications() (release func())
	ChangeNotificationsEnabled() bool
}

// SliceSource adapts a plain slice to Source. It has no change
// notifications, so projections over it are static snapshots.
type SliceSource[T any] []T

// Len returns len(s).
func (s SliceSource[T]) Len() int { return len(s) }

// At returns s[index].
func (s SliceSource[T]) At(index int) T { return s[index] }
