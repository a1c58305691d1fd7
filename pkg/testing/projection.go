package testing

import (
	"github.com/go-drift/reactive/pkg/collections"
	"github.com/go-drift/reactive/pkg/core"
)

// TestingT is the subset of *testing.T the checks use, allowing test
// doubles to intercept failures.
type TestingT interface {
	Helper()
	Errorf(format string, args ...any)
}

// Expect describes what a projection should contain. Nil fields mean no
// filter, source order and core.Same.
type Expect[S, V any] struct {
	Selector func(S) V
	Filter   func(S) bool
	Order    func(a, b V) int
	Same     func(a, b V) bool
}

// CheckProjection verifies p against source and reports every violation
// through t:
//
//   - the index map has one entry per value, each a distinct valid source index
//   - every value is the selector applied to the source item it maps to
//   - exactly the source items passing the filter are present
//   - without an Order the index map is strictly increasing; with one the
//     values are sorted
//
// It returns true when p is consistent.
func CheckProjection[S, V any](t TestingT, source collections.Source[S], p *collections.Projection[S, V], want Expect[S, V]) bool {
	t.Helper()
	filter := want.Filter
	if filter == nil {
		filter = func(S) bool { return true }
	}
	same := want.Same
	if same == nil {
		same = core.Same[V]
	}

	ok := true
	fail := func(format string, args ...any) {
		t.Helper()
		t.Errorf(format, args...)
		ok = false
	}

	indexMap := p.IndexMap()
	if len(indexMap) != p.Len() {
		fail("index map has %d entries for %d values", len(indexMap), p.Len())
		return false
	}

	seen := make(map[int]bool, len(indexMap))
	for i, si := range indexMap {
		if si < 0 || si >= source.Len() {
			fail("index map[%d] = %d, source has %d items", i, si, source.Len())
			continue
		}
		if seen[si] {
			fail("index map[%d] = %d is mapped twice", i, si)
		}
		seen[si] = true

		item := source.At(si)
		if !filter(item) {
			fail("value %d comes from source item %d, which the filter rejects", i, si)
		}
		if want.Selector != nil && !same(p.At(i), want.Selector(item)) {
			fail("value %d = %v, want %v (selector of source item %d)", i, p.At(i), want.Selector(item), si)
		}
	}

	included := 0
	for i := 0; i < source.Len(); i++ {
		if filter(source.At(i)) {
			included++
			if !seen[i] {
				fail("source item %d passes the filter but is missing", i)
			}
		}
	}
	if included != p.Len() {
		fail("projection has %d values, %d source items pass the filter", p.Len(), included)
	}

	if want.Order == nil {
		for i := 1; i < len(indexMap); i++ {
			if indexMap[i-1] >= indexMap[i] {
				fail("index map not increasing at %d: %v", i, indexMap)
				break
			}
		}
	} else {
		for i := 1; i < p.Len(); i++ {
			if want.Order(p.At(i-1), p.At(i)) > 0 {
				fail("values out of order at %d: %v > %v", i, p.At(i-1), p.At(i))
			}
		}
	}
	return ok
}
