package collections_test

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/reactive/pkg/collections"
	"github.com/go-drift/reactive/pkg/core"
	"github.com/go-drift/reactive/pkg/errors"
	reactivetest "github.com/go-drift/reactive/pkg/testing"
)

type entry struct {
	core.Properties
	name  string
	value int
}

func (e *entry) SetValue(v int) {
	core.SetProperty(&e.Properties, &e.value, v, "Value")
}

func (e *entry) String() string { return e.name }

func entries(values ...int) []*entry {
	out := make([]*entry, len(values))
	for i, v := range values {
		out[i] = &entry{name: string(rune('a' + i)), value: v}
	}
	return out
}

func names(items []*entry) []string {
	out := make([]string, len(items))
	for i, e := range items {
		out[i] = e.name
	}
	return out
}

func byValue(a, b *entry) int { return a.value - b.value }

func identity[T any](v T) T { return v }

type handler struct {
	errs     []*errors.CollectionError
	warnings []*errors.Warning
}

func (h *handler) HandleError(err *errors.CollectionError) { h.errs = append(h.errs, err) }
func (h *handler) HandlePanic(*errors.PanicError) {}
func (h *handler) HandleWarning(w *errors.Warning) { h.warnings = append(h.warnings, w) }

func captureErrors(t *testing.T) *handler {
	t.Helper()
	h := &handler{}
	errors.SetHandler(h)
	errors.ResetWarnings()
	t.Cleanup(func() {
		errors.SetHandler(nil)
		errors.ResetWarnings()
	})
	return h
}

func derive[S, V any](t *testing.T, source collections.Source[S], selector func(S) V, opts collections.DeriveOptions[S, V]) *collections.Projection[S, V] {
	t.Helper()
	p, err := collections.Derive(source, selector, opts)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	t.Cleanup(p.Dispose)
	return p
}

func TestProjection_AppendMirrorsSource(t *testing.T) {
	source := collections.NewList("A", "B", "C")
	p := derive(t, source, identity[string], collections.DeriveOptions[string, string]{})
	rec := reactivetest.Record[string](p)
	t.Cleanup(rec.Stop)

	source.Insert(3, "D")

	if diff := cmp.Diff([]string{"A", "B", "C", "D"}, p.Items()); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 3}, p.IndexMap()); diff != "" {
		t.Errorf("IndexMap mismatch (-want +got):\n%s", diff)
	}
	if got := rec.Transcript(); got != "add@3 [D]\n" {
		t.Errorf("Transcript = %q", got)
	}
}

func TestProjection_RemoveShiftsIndexMap(t *testing.T) {
	source := collections.NewList("A", "B", "C")
	p := derive(t, source, identity[string], collections.DeriveOptions[string, string]{
		Filter: func(s string) bool { return s != "B" },
	})

	if diff := cmp.Diff([]string{"A", "C"}, p.Items()); diff != "" {
		t.Errorf("initial Items mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 2}, p.IndexMap()); diff != "" {
		t.Errorf("initial IndexMap mismatch (-want +got):\n%s", diff)
	}

	source.RemoveAt(0)

	if diff := cmp.Diff([]string{"C"}, p.Items()); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
	// C now sits at source index 1.
	if diff := cmp.Diff([]int{1}, p.IndexMap()); diff != "" {
		t.Errorf("IndexMap mismatch (-want +got):\n%s", diff)
	}
	if si, err := p.SourceIndex(0); err != nil || si != 1 {
		t.Errorf("SourceIndex(0) = %d, %v; want 1", si, err)
	}
	if _, err := p.SourceIndex(1); !errors.Is(err, errors.ErrOutOfRange) {
		t.Errorf("SourceIndex(1) = %v, want ErrOutOfRange", err)
	}
}

func TestProjection_OrderedItemChangeMoves(t *testing.T) {
	items := entries(2, 4, 5, 6, 8)
	source := collections.NewList(items...)
	p := derive(t, source, identity[*entry], collections.DeriveOptions[*entry, *entry]{Order: byValue})
	rec := reactivetest.Record[*entry](p)
	t.Cleanup(rec.Stop)

	items[2].SetValue(100)

	events := rec.Events()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1:\n%s", len(events), rec.Transcript())
	}
	ev := events[0]
	if ev.Action != collections.ActionMove || ev.OldIndex != 2 || ev.NewIndex != 4 {
		t.Errorf("event = %s, want move 2->4", reactivetest.FormatEvent(ev))
	}
	if p.At(4) != items[2] {
		t.Errorf("At(4) = %v, want %v", p.At(4), items[2])
	}
	reactivetest.CheckProjection(t, source, p, reactivetest.Expect[*entry, *entry]{Selector: identity[*entry], Order: byValue})
}

func TestProjection_OrderedItemChangeInPlace(t *testing.T) {
	items := entries(2, 4, 6)
	source := collections.NewList(items...)
	p := derive(t, source, identity[*entry], collections.DeriveOptions[*entry, *entry]{Order: byValue})
	rec := reactivetest.Record[*entry](p)
	t.Cleanup(rec.Stop)

	items[1].SetValue(5)

	if len(rec.Events()) != 0 {
		t.Errorf("value still between its neighbours should not be announced, got:\n%s", rec.Transcript())
	}
}

func TestProjection_OrderedInsertAndMoveUp(t *testing.T) {
	items := entries(10, 20, 30)
	source := collections.NewList(items...)
	p := derive(t, source, identity[*entry], collections.DeriveOptions[*entry, *entry]{Order: byValue})

	source.Add(&entry{name: "x", value: 15})
	items[2].SetValue(1)

	got := make([]int, p.Len())
	for i, e := range p.All() {
		got[i] = e.value
	}
	if diff := cmp.Diff([]int{1, 10, 15, 20}, got); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	reactivetest.CheckProjection(t, source, p, reactivetest.Expect[*entry, *entry]{Selector: identity[*entry], Order: byValue})
}

func TestProjection_OrderedEqualKeysInsertLeftmost(t *testing.T) {
	items := entries(1, 2)
	source := collections.NewList(items...)
	p := derive(t, source, identity[*entry], collections.DeriveOptions[*entry, *entry]{Order: byValue})
	rec := reactivetest.Record[*entry](p)
	t.Cleanup(rec.Stop)

	source.Add(&entry{name: "c", value: 2})
	source.Add(&entry{name: "d", value: 2})
	items[0].SetValue(2)

	if diff := cmp.Diff([]string{"a", "d", "c", "b"}, names(p.Items())); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 3, 2, 1}, p.IndexMap()); diff != "" {
		t.Errorf("IndexMap mismatch (-want +got):\n%s", diff)
	}
	if got, want := rec.Transcript(), "add@1 [c]\nadd@1 [d]\n"; got != want {
		t.Errorf("events:\n%s\nwant:\n%s", got, want)
	}
	reactivetest.CheckProjection(t, source, p, reactivetest.Expect[*entry, *entry]{Selector: identity[*entry], Order: byValue})
}

func TestProjection_FilterReevaluatedOnItemChange(t *testing.T) {
	items := entries(1, 2, 3, 4)
	source := collections.NewList(items...)
	even := func(e *entry) bool { return e.value%2 == 0 }
	value := func(e *entry) int { return e.value }
	p := derive(t, source, value, collections.DeriveOptions[*entry, int]{Filter: even})

	if diff := cmp.Diff([]int{2, 4}, p.Items()); diff != "" {
		t.Errorf("initial Items mismatch (-want +got):\n%s", diff)
	}

	items[0].SetValue(10)
	items[1].SetValue(7)
	items[3].SetValue(8)

	if diff := cmp.Diff([]int{10, 8}, p.Items()); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 3}, p.IndexMap()); diff != "" {
		t.Errorf("IndexMap mismatch (-want +got):\n%s", diff)
	}
}

func TestProjection_UsesSourceItemChanges(t *testing.T) {
	items := entries(1, 2)
	source := collections.NewListWithOptions(collections.ListOptions[*entry]{ChangeTracking: true}, items...)
	p := derive(t, source, func(e *entry) int { return e.value }, collections.DeriveOptions[*entry, int]{})

	if got := items[0].PropertyListenerCount(); got != 1 {
		t.Errorf("item has %d listeners, want only the source's", got)
	}
	items[0].SetValue(9)
	if diff := cmp.Diff([]int{9, 2}, p.Items()); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
}

func TestProjection_ReplaceCallsOnRemoved(t *testing.T) {
	source := collections.NewList(1, 2, 3)
	var removed []string
	p := derive(t, source, func(n int) string { return string(rune('a' + n)) }, collections.DeriveOptions[int, string]{
		OnRemoved: func(s string) { removed = append(removed, s) },
	})
	rec := reactivetest.Record[string](p)
	t.Cleanup(rec.Stop)

	source.Set(1, 5)
	source.RemoveAt(0)

	if diff := cmp.Diff([]string{"f", "d"}, p.Items()); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"c", "b"}, removed); diff != "" {
		t.Errorf("OnRemoved mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]collections.Action{collections.ActionReplace, collections.ActionRemove}, rec.Actions()); diff != "" {
		t.Errorf("Actions mismatch (-want +got):\n%s", diff)
	}
}

func TestProjection_UnorderedMove(t *testing.T) {
	source := collections.NewList("a", "b", "c", "d")
	p := derive(t, source, identity[string], collections.DeriveOptions[string, string]{
		Filter: func(s string) bool { return s != "b" },
	})
	rec := reactivetest.Record[string](p)
	t.Cleanup(rec.Stop)

	source.Move(0, 3)

	if diff := cmp.Diff([]string{"c", "d", "a"}, p.Items()); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, p.IndexMap()); diff != "" {
		t.Errorf("IndexMap mismatch (-want +got):\n%s", diff)
	}
	if got := rec.Transcript(); got != "move 0->2 [a]\n" {
		t.Errorf("Transcript = %q", got)
	}

	rec.Clear()
	source.Move(0, 1) // b is filtered out
	if len(rec.Events()) != 0 {
		t.Errorf("moving a filtered item reordered the projection:\n%s", rec.Transcript())
	}
	if diff := cmp.Diff([]int{0, 2, 3}, p.IndexMap()); diff != "" {
		t.Errorf("IndexMap mismatch (-want +got):\n%s", diff)
	}
}

func TestProjection_OrderedMoveOnlyRemaps(t *testing.T) {
	source := collections.NewList(3, 1, 2)
	p := derive(t, source, identity[int], collections.DeriveOptions[int, int]{
		Order: func(a, b int) int { return a - b },
	})
	rec := reactivetest.Record[int](p)
	t.Cleanup(rec.Stop)

	source.Move(0, 2)

	if len(rec.Events()) != 0 {
		t.Errorf("ordered projection should not announce source moves:\n%s", rec.Transcript())
	}
	if diff := cmp.Diff([]int{1, 2, 3}, p.Items()); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, p.IndexMap()); diff != "" {
		t.Errorf("IndexMap mismatch (-want +got):\n%s", diff)
	}
}

type multiMoveSource struct {
	items   []string
	changed core.Stream[collections.ChangeEvent[string]]
}

func (s *multiMoveSource) Len() int { return len(s.items) }
func (s *multiMoveSource) At(i int) string { return s.items[i] }
func (s *multiMoveSource) Changed() *core.Stream[collections.ChangeEvent[string]] {
	return &s.changed
}

func TestProjection_MultiItemMovePanics(t *testing.T) {
	h := captureErrors(t)
	source := &multiMoveSource{items: []string{"a", "b", "c"}}
	derive(t, collections.Source[string](source), identity[string], collections.DeriveOptions[string, string]{})

	defer func() {
		r := recover()
		err, ok := r.(*errors.CollectionError)
		if !ok {
			t.Fatalf("recovered %v, want *errors.CollectionError", r)
		}
		if err.Kind != errors.KindUnsupported || !errors.Is(err, errors.ErrUnsupported) {
			t.Errorf("err = %v, want unsupported", err)
		}
		if len(h.errs) != 1 {
			t.Errorf("reported %d errors, want 1", len(h.errs))
		}
	}()
	source.changed.Emit(collections.ChangeEvent[string]{
		Action:   collections.ActionMove,
		NewItems: []string{"a", "b"},
		OldItems: []string{"a", "b"},
		OldIndex: 0,
		NewIndex: 1,
	})
	t.Fatal("multi-item move should panic")
}

func TestProjection_SourceResetRebuilds(t *testing.T) {
	source := collections.NewList(1, 2, 3)
	var removed []int
	p := derive(t, source, identity[int], collections.DeriveOptions[int, int]{
		OnRemoved: func(n int) { removed = append(removed, n) },
	})
	rec := reactivetest.Record[int](p)
	t.Cleanup(rec.Stop)

	source.Clear()
	if !p.IsEmpty() {
		t.Errorf("Items = %v, want empty", p.Items())
	}
	if diff := cmp.Diff([]int{1, 2, 3}, removed); diff != "" {
		t.Errorf("OnRemoved mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]collections.Action{collections.ActionReset}, rec.Actions()); diff != "" {
		t.Errorf("Actions mismatch (-want +got):\n%s", diff)
	}

	release := source.SuppressChangeNotifications()
	source.Add(7)
	source.Add(8)
	release()
	if diff := cmp.Diff([]int{7, 8}, p.Items()); diff != "" {
		t.Errorf("Items after suppressed adds mismatch (-want +got):\n%s", diff)
	}
}

func TestProjection_ItemChangesWaitForSuppressedSource(t *testing.T) {
	items := entries(1, 2)
	source := collections.NewList(items...)
	var removed []string
	p := derive(t, source, identity[*entry], collections.DeriveOptions[*entry, *entry]{
		OnRemoved: func(e *entry) { removed = append(removed, e.name) },
	})

	release := source.SuppressChangeNotifications()
	source.RemoveAt(0)
	items[1].SetValue(5)

	if diff := cmp.Diff([]string{"a", "b"}, names(p.Items())); diff != "" {
		t.Errorf("Items while suppressed mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1}, p.IndexMap()); diff != "" {
		t.Errorf("IndexMap while suppressed mismatch (-want +got):\n%s", diff)
	}
	if len(removed) != 0 {
		t.Errorf("OnRemoved called while suppressed: %v", removed)
	}

	release()

	if diff := cmp.Diff([]string{"b"}, names(p.Items())); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0}, p.IndexMap()); diff != "" {
		t.Errorf("IndexMap mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a"}, removed); diff != "" {
		t.Errorf("OnRemoved mismatch (-want +got):\n%s", diff)
	}
	reactivetest.CheckProjection(t, source, p, reactivetest.Expect[*entry, *entry]{Selector: identity[*entry]})
}

func TestProjection_SnapshotSource(t *testing.T) {
	h := captureErrors(t)
	data := collections.SliceSource[int]{1, 2, 3}
	resync := core.NewNotifier()

	p := derive(t, collections.Source[int](data), func(n int) int { return n * 2 }, collections.DeriveOptions[int, int]{Resync: resync})
	derive(t, collections.Source[int](data), identity[int], collections.DeriveOptions[int, int]{})

	if len(h.warnings) != 1 {
		t.Errorf("got %d warnings, want one per source type", len(h.warnings))
	} else if h.warnings[0].Kind != errors.KindDegraded {
		t.Errorf("warning kind = %v, want degraded", h.warnings[0].Kind)
	}

	data[0] = 10
	if p.At(0) != 2 {
		t.Errorf("snapshot changed before resync: %v", p.Items())
	}
	resync.Notify()
	if diff := cmp.Diff([]int{20, 4, 6}, p.Items()); diff != "" {
		t.Errorf("Items after resync mismatch (-want +got):\n%s", diff)
	}
}

func TestProjection_ReadOnly(t *testing.T) {
	p := derive(t, collections.NewList(1), identity[int], collections.DeriveOptions[int, int]{})
	for name, err := range map[string]error{
		"Add":         p.Add(2),
		"Insert":      p.Insert(0, 2),
		"RemoveAt":    p.RemoveAt(0),
		"Remove":      p.Remove(1),
		"Set":         p.Set(0, 2),
		"Move":        p.Move(0, 0),
		"Clear":       p.Clear(),
		"AddRange":    p.AddRange([]int{2}),
		"InsertRange": p.InsertRange(0, []int{2}),
		"RemoveRange": p.RemoveRange(0, 1),
		"Sort":        p.Sort(func(a, b int) int { return a - b }),
	} {
		if !errors.Is(err, errors.ErrReadOnly) {
			t.Errorf("%s: err = %v, want ErrReadOnly", name, err)
		}
	}
	if diff := cmp.Diff([]int{1}, p.Items()); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
}

func TestProjection_NilArguments(t *testing.T) {
	if _, err := collections.Derive[int, int](nil, identity[int], collections.DeriveOptions[int, int]{}); !errors.Is(err, errors.ErrNilArgument) {
		t.Errorf("nil source: err = %v", err)
	}
	_, err := collections.Derive[int, int](collections.NewList[int](), nil, collections.DeriveOptions[int, int]{})
	var ce *errors.CollectionError
	if !errors.As(err, &ce) || ce.Kind != errors.KindArgument {
		t.Errorf("nil selector: err = %v, want KindArgument", err)
	}
}

func TestProjection_Dispose(t *testing.T) {
	source := collections.NewList(1, 2)
	var removed []int
	p, err := collections.Derive(source, identity[int], collections.DeriveOptions[int, int]{
		OnRemoved: func(n int) { removed = append(removed, n) },
	})
	if err != nil {
		t.Fatal(err)
	}

	p.Dispose()
	p.Dispose()
	source.Add(3)

	if diff := cmp.Diff([]int{1, 2}, removed); diff != "" {
		t.Errorf("OnRemoved mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2}, p.Items()); diff != "" {
		t.Errorf("disposed projection should stop following its source (-want +got):\n%s", diff)
	}
	if !p.IsDisposed() {
		t.Error("IsDisposed() = false")
	}
	if source.Changed().ListenerCount() != 0 {
		t.Errorf("source still has %d Changed listeners", source.Changed().ListenerCount())
	}
}

func TestProjection_Chained(t *testing.T) {
	source := collections.NewList(5, 3, 8, 1)
	odd := derive(t, source, identity[int], collections.DeriveOptions[int, int]{
		Filter: func(n int) bool { return n%2 == 1 },
	})
	sorted := derive(t, collections.Source[int](odd), func(n int) int { return n * 100 }, collections.DeriveOptions[int, int]{
		Order: func(a, b int) int { return a - b },
	})

	source.Add(7)
	source.Remove(3)
	source.Add(4)

	if diff := cmp.Diff([]int{100, 500, 700}, sorted.Items()); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
}

// Random source operations must always leave the projection consistent.
func TestProjection_RandomOperationsKeepInvariants(t *testing.T) {
	for _, ordered := range []bool{false, true} {
		rng := rand.New(rand.NewPCG(42, 7))
		items := entries(5, 3, 9, 1, 7, 2)
		source := collections.NewList(items...)
		keep := func(e *entry) bool { return e.value%3 != 0 }

		opts := collections.DeriveOptions[*entry, *entry]{Filter: keep}
		want := reactivetest.Expect[*entry, *entry]{Selector: identity[*entry], Filter: keep}
		if ordered {
			opts.Order, want.Order = byValue, byValue
		}
		p := derive(t, source, identity[*entry], opts)

		for step := 0; step < 300; step++ {
			n := source.Len()
			switch op := rng.IntN(6); {
			case op == 0 || n == 0:
				source.Insert(rng.IntN(n+1), &entry{name: "n", value: rng.IntN(30)})
			case op == 1:
				source.RemoveAt(rng.IntN(n))
			case op == 2:
				source.Move(rng.IntN(n), rng.IntN(n))
			case op == 3:
				source.Set(rng.IntN(n), &entry{name: "s", value: rng.IntN(30)})
			default:
				source.At(rng.IntN(n)).SetValue(rng.IntN(30))
			}
			if !reactivetest.CheckProjection(t, source, p, want) {
				t.Fatalf("ordered=%v: inconsistent after step %d", ordered, step)
			}
		}
	}
}
