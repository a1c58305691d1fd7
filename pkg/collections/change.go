package collections

// Action identifies the kind of structural change a ChangeEvent describes.
type Action int

const (
	// ActionAdd means NewItems were inserted starting at NewIndex.
	ActionAdd Action = iota
	// ActionRemove means OldItems were removed starting at OldIndex.
	ActionRemove
	// ActionReplace means OldItems at OldIndex were replaced by NewItems.
	ActionReplace
	// ActionMove means the items moved from OldIndex to NewIndex.
	ActionMove
	// ActionReset means cached state must be discarded and the collection
	// enumerated again. Reset events carry no items.
	ActionReset
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionReplace:
		return "replace"
	case ActionMove:
		return "move"
	case ActionReset:
		return "reset"
	default:
		return "unknown"
	}
}

// ChangeEvent describes one structural change to a collection.
// Indices that do not apply to the action are -1.
type ChangeEvent[T any] struct {
	Action   Action
	NewItems []T
	OldItems []T
	NewIndex int
	OldIndex int
}

// Count returns the number of items the event affects.
func (e ChangeEvent[T]) Count() int {
	switch e.Action {
	case ActionRemove:
		return len(e.OldItems)
	case ActionReset:
		return 0
	default:
		return len(e.NewItems)
	}
}

func addEvent[T any](index int, items []T) ChangeEvent[T] {
	return ChangeEvent[T]{Action: ActionAdd, NewItems: items, NewIndex: index, OldIndex: -1}
}

func removeEvent[T any](index int, items []T) ChangeEvent[T] {
	return ChangeEvent[T]{Action: ActionRemove, OldItems: items, NewIndex: -1, OldIndex: index}
}

func replaceEvent[T any](index int, oldItem, newItem T) ChangeEvent[T] {
	return ChangeEvent[T]{
		Action:   ActionReplace,
		NewItems: []T{newItem},
		OldItems: []T{oldItem},
		NewIndex: index,
		OldIndex: index,
	}
}

func moveEvent[T any](from, to int, item T) ChangeEvent[T] {
	return ChangeEvent[T]{
		Action:   ActionMove,
		NewItems: []T{item},
		OldItems: []T{item},
		NewIndex: to,
		OldIndex: from,
	}
}

func resetEvent[T any]() ChangeEvent[T] {
	return ChangeEvent[T]{Action: ActionReset, NewIndex: -1, OldIndex: -1}
}

// MoveEvent is delivered on the BeforeItemsMoved and ItemsMoved streams.
type MoveEvent[T any] struct {
	Items []T
	From  int
	To    int
}

// ItemChange is delivered on the ItemChanging and ItemChanged streams when
// a tracked item reports a property change.
type ItemChange[T any] struct {
	Item     T
	Property string
}
