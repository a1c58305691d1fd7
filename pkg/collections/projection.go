package collections

import (
	"fmt"
	"slices"

	"github.com/go-drift/reactive/pkg/core"
	"github.com/go-drift/reactive/pkg/errors"
	"github.com/go-drift/reactive/pkg/platform"
)

// DeriveOptions configures a Projection. Every field is optional.
type DeriveOptions[S, V any] struct {
	// Filter decides which source items appear in the projection.
	Filter func(S) bool

	// Order is a three-way comparator over projected values. Without it the
	// projection mirrors source order.
	Order func(a, b V) int

	// OnRemoved is called with every projected value that leaves the
	// projection, including the values still present at Dispose.
	OnRemoved func(V)

	// Same reports whether two projected values are the same object. A value
	// that is the same as the one it replaces is not announced again.
	// Nil means core.Same.
	Same func(a, b V) bool

	// Resync triggers a full rebuild every time it notifies. It is the only
	// way to refresh a projection over a source without change notifications.
	Resync core.Listenable

	// Scheduler delivers the projection's per-item, count and reset streams.
	Scheduler platform.Scheduler
}

// Projection is a read-only list that mirrors a source through a selector,
// an optional filter and an optional ordering:
//
//	derived = order(select(filter(source)))
//
// It follows the source incrementally: each source change touches only the
// affected entries. An index map records, for every projected position, the
// source position it came from. Without an Order the map is strictly
// increasing, which lets every lookup use binary search.
//
// Like List, a Projection is NOT thread-safe and must be used from the
// goroutine that mutates its source.
type Projection[S, V any] struct {
	source    Source[S]
	selector  func(S) V
	filter    func(S) bool
	order     func(a, b V) int
	onRemoved func(V)
	same      func(a, b V) bool

	list     *List[V]
	indexMap []int
	tracker  *itemTracker[S]
	unsubs   []func()
	disposed bool
}

// Derive creates a Projection of source through selector.
//
// If source implements ChangeNotifier the projection follows it
// incrementally. Otherwise it is a static snapshot, refreshed only by
// opts.Resync, and a warning is logged once per source type.
func Derive[S, V any](source Source[S], selector func(S) V, opts DeriveOptions[S, V]) (*Projection[S, V], error) {
	if source == nil {
		return nil, errors.NilArgument("collections.Derive", "source")
	}
	if selector == nil {
		return nil, errors.NilArgument("collections.Derive", "selector")
	}

	p := &Projection[S, V]{
		source:    source,
		selector:  selector,
		filter:    opts.Filter,
		order:     opts.Order,
		onRemoved: opts.OnRemoved,
		same:      opts.Same,
	}
	if p.filter == nil {
		p.filter = func(S) bool { return true }
	}
	if p.same == nil {
		p.same = core.Same[V]
	}
	p.list = NewListWithOptions(ListOptions[V]{Scheduler: opts.Scheduler, Equal: p.same})
	p.list.noResetWarning = true

	if notifier, ok := source.(ChangeNotifier[S]); ok {
		p.unsubs = append(p.unsubs, notifier.Changed().Listen(p.onSourceChanged))
	} else {
		subject := fmt.Sprintf("%T", source)
		errors.WarnOnce("collections.Derive/no-notifications/"+subject, &errors.Warning{
			Op:      "collections.Derive",
			Kind:    errors.KindDegraded,
			Subject: subject,
			Message: "source has no change notifications; the projection is a snapshot refreshed only by Resync",
		})
	}

	if items, ok := source.(ItemChangeNotifier[S]); ok && items.ChangeTrackingEnabled() {
		p.unsubs = append(p.unsubs, items.ItemChanged().Listen(func(c ItemChange[S]) {
			p.onItemChanged(c.Item)
		}))
	} else {
		p.tracker = newItemTracker(nil, func(item S, _ string) { p.onItemChanged(item) })
	}

	if opts.Resync != nil {
		p.unsubs = append(p.unsubs, opts.Resync.AddListener(p.Resync))
	}

	p.populate()
	return p, nil
}

// IndexMap returns a copy of the derived-to-source index map.
func (p *Projection[S, V]) IndexMap() []int {
	return slices.Clone(p.indexMap)
}

// SourceIndex returns the source position the value at index came from.
func (p *Projection[S, V]) SourceIndex(index int) (int, error) {
	if index < 0 || index >= len(p.indexMap) {
		return -1, errors.OutOfRange("Projection.SourceIndex", index, p.list.bounds(false))
	}
	return p.indexMap[index], nil
}

// Ordered reports whether the projection has an Order comparator.
func (p *Projection[S, V]) Ordered() bool {
	return p.order != nil
}

// Resync discards the projection and rebuilds it from the source, announcing
// one Reset. OnRemoved is called for the old values that are not part of
// the rebuilt projection.
func (p *Projection[S, V]) Resync() {
	if p.disposed {
		return
	}
	release := p.list.SuppressChangeNotifications()
	defer release()

	old := p.list.items
	p.indexMap = nil
	p.list.clearItems()
	if p.tracker != nil {
		p.tracker.clear()
	}
	p.populate()

	kept := make([]bool, len(p.list.items))
	for _, v := range old {
		if i := p.unmatched(v, kept); i >= 0 {
			kept[i] = true
			continue
		}
		p.removed(v)
	}
}

// unmatched returns the index of the first value in the projection that is
// the same as v and not yet marked in taken, or -1.
func (p *Projection[S, V]) unmatched(v V, taken []bool) int {
	for i, cur := range p.list.items {
		if !taken[i] && p.same(cur, v) {
			return i
		}
	}
	return -1
}

// Dispose stops following the source and calls OnRemoved for every value
// still in the projection. The values stay readable. Calling Dispose again
// does nothing.
func (p *Projection[S, V]) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	for _, unsub := range p.unsubs {
		unsub()
	}
	p.unsubs = nil
	if p.tracker != nil {
		p.tracker.clear()
	}
	p.list.Dispose()
	for _, v := range p.list.items {
		p.removed(v)
	}
}

// IsDisposed reports whether Dispose has been called.
func (p *Projection[S, V]) IsDisposed() bool {
	return p.disposed
}

func (p *Projection[S, V]) populate() {
	n := p.source.Len()
	for i := 0; i < n; i++ {
		item := p.source.At(i)
		p.track(item)
		if p.filter(item) {
			p.insertAndMap(i, p.selector(item))
		}
	}
}

func (p *Projection[S, V]) onSourceChanged(ev ChangeEvent[S]) {
	if p.disposed {
		return
	}
	switch ev.Action {
	case ActionAdd:
		p.onAdd(ev.NewIndex, ev.NewItems)
	case ActionRemove:
		p.onRemove(ev.OldIndex, ev.OldItems)
	case ActionMove:
		p.onMove(ev)
	case ActionReplace:
		p.onReplace(ev)
	case ActionReset:
		p.Resync()
	}
}

func (p *Projection[S, V]) onAdd(sourceIndex int, items []S) {
	p.shiftAtOrAbove(sourceIndex, len(items))
	for i, item := range items {
		p.track(item)
		if !p.filter(item) {
			continue
		}
		p.insertAndMap(sourceIndex+i, p.selector(item))
	}
}

func (p *Projection[S, V]) onRemove(sourceIndex int, items []S) {
	for i := range items {
		if d := p.derivedIndexOf(sourceIndex + i); d >= 0 {
			p.removeAt(d)
		}
	}
	p.shiftAtOrAbove(sourceIndex+len(items), -len(items))
	for _, item := range items {
		p.untrack(item)
	}
}

func (p *Projection[S, V]) onMove(ev ChangeEvent[S]) {
	if len(ev.OldItems) > 1 || len(ev.NewItems) > 1 {
		err := errors.Unsupported("Projection.onMove", "derived collections do not support multi-item moves")
		errors.Report(err)
		panic(err)
	}
	from, to := ev.OldIndex, ev.NewIndex
	if from == to {
		return
	}

	d := p.derivedIndexOf(from)
	p.moveSourceIndexInMap(from, to)
	if d < 0 {
		return
	}

	if p.order != nil {
		// Ordering changes are picked up by item change handling; a move
		// only updates where the value came from.
		p.indexMap[d] = to
		return
	}

	newD := p.unorderedPositionExcluding(d, to)
	if newD == d {
		p.indexMap[d] = to
		return
	}
	p.indexMap = slices.Delete(p.indexMap, d, d+1)
	p.indexMap = slices.Insert(p.indexMap, newD, to)
	p.list.moveItem(d, newD)
}

func (p *Projection[S, V]) onReplace(ev ChangeEvent[S]) {
	for i, item := range ev.NewItems {
		if i < len(ev.OldItems) {
			p.untrack(ev.OldItems[i])
		}
		p.track(item)
		p.reevaluate(ev.NewIndex+i, item)
	}
}

func (p *Projection[S, V]) onItemChanged(item S) {
	if p.disposed || p.sourceSuppressed() {
		return
	}
	boxed := any(item)
	for i, n := 0, p.source.Len(); i < n; i++ {
		if core.SameAny(any(p.source.At(i)), boxed) {
			p.reevaluate(i, item)
		}
	}
}

// sourceSuppressed reports whether the source is inside a suppression scope.
// Its structure may then differ from the index map; the closing Reset
// rebuilds the projection.
func (p *Projection[S, V]) sourceSuppressed() bool {
	s, ok := p.source.(interface{ ChangeNotificationsEnabled() bool })
	return ok && !s.ChangeNotificationsEnabled()
}

// reevaluate applies the filter, selector and ordering to the item at
// sourceIndex again and moves the projection to match.
func (p *Projection[S, V]) reevaluate(sourceIndex int, item S) {
	d := p.derivedIndexOf(sourceIndex)
	included := d >= 0
	include := p.filter(item)

	switch {
	case included && !include:
		p.removeAt(d)
	case !included && include:
		p.insertAndMap(sourceIndex, p.selector(item))
	case included && include:
		value := p.selector(item)
		current := p.list.items[d]
		if p.order == nil || p.canStayAt(value, d) {
			if !p.same(value, current) {
				p.replaceAt(d, value)
			}
			return
		}
		if p.same(value, current) {
			newD := p.orderedPositionExcluding(d, value)
			p.indexMap = slices.Delete(p.indexMap, d, d+1)
			p.indexMap = slices.Insert(p.indexMap, newD, sourceIndex)
			p.list.moveItem(d, newD)
			return
		}
		p.removeAt(d)
		p.insertAndMap(sourceIndex, value)
	}
}

func (p *Projection[S, V]) insertAndMap(sourceIndex int, value V) {
	d := p.positionForNew(sourceIndex, value)
	p.indexMap = slices.Insert(p.indexMap, d, sourceIndex)
	p.list.insertItems(d, []V{value})
}

func (p *Projection[S, V]) removeAt(d int) {
	value := p.list.items[d]
	p.indexMap = slices.Delete(p.indexMap, d, d+1)
	p.list.removeItems(d, 1)
	p.removed(value)
}

func (p *Projection[S, V]) replaceAt(d int, value V) {
	old := p.list.items[d]
	p.list.setItem(d, value)
	p.removed(old)
}

func (p *Projection[S, V]) removed(v V) {
	if p.onRemoved != nil {
		p.onRemoved(v)
	}
}

func (p *Projection[S, V]) track(item S) {
	if p.tracker != nil {
		p.tracker.track(item)
	}
}

func (p *Projection[S, V]) untrack(item S) {
	if p.tracker != nil {
		p.tracker.untrack(item)
	}
}
