package collections

import "slices"

// derivedIndexOf returns the projected position of the value that came from
// sourceIndex, or -1 when that source item is filtered out.
//
// Unordered projections keep the index map sorted, so the lookup is a binary
// search. Ordered projections fall back to a linear scan.
func (p *Projection[S, V]) derivedIndexOf(sourceIndex int) int {
	if p.order != nil {
		return slices.Index(p.indexMap, sourceIndex)
	}
	i, found := slices.BinarySearch(p.indexMap, sourceIndex)
	if !found {
		return -1
	}
	return i
}

// positionForNew returns where a value not yet in the projection belongs:
// by source position when unordered, otherwise at the leftmost slot the
// comparator allows.
func (p *Projection[S, V]) positionForNew(sourceIndex int, value V) int {
	if p.order == nil {
		i, _ := slices.BinarySearch(p.indexMap, sourceIndex)
		return i
	}
	i, _ := slices.BinarySearchFunc(p.list.items, value, p.order)
	return i
}

// unorderedPositionExcluding returns where sourceIndex belongs in the index
// map once entry d is taken out. Every other entry is still sorted.
func (p *Projection[S, V]) unorderedPositionExcluding(d, sourceIndex int) int {
	if i, _ := slices.BinarySearch(p.indexMap[:d], sourceIndex); i < d {
		return i
	}
	i, _ := slices.BinarySearch(p.indexMap[d+1:], sourceIndex)
	return d + i
}

// orderedPositionExcluding returns where value belongs once the value at d
// is taken out of the projection.
func (p *Projection[S, V]) orderedPositionExcluding(d int, value V) int {
	items := p.list.items
	if d > 0 && p.order(value, items[d-1]) < 0 {
		i, _ := slices.BinarySearchFunc(items[:d], value, p.order)
		return i
	}
	i, _ := slices.BinarySearchFunc(items[d+1:], value, p.order)
	return d + i
}

// canStayAt reports whether value may replace the value at d without
// breaking the ordering against its neighbours.
func (p *Projection[S, V]) canStayAt(value V, d int) bool {
	items := p.list.items
	if d > 0 && p.order(value, items[d-1]) < 0 {
		return false
	}
	if d < len(items)-1 && p.order(value, items[d+1]) > 0 {
		return false
	}
	return true
}

// shiftAtOrAbove adds delta to every map entry >= threshold.
func (p *Projection[S, V]) shiftAtOrAbove(threshold, delta int) {
	start := 0
	if p.order == nil {
		start, _ = slices.BinarySearch(p.indexMap, threshold)
	}
	for i := start; i < len(p.indexMap); i++ {
		if p.indexMap[i] >= threshold {
			p.indexMap[i] += delta
		}
	}
}

// moveSourceIndexInMap renumbers the entries between from and to as if the
// source item at from had moved to to. The entry for from itself is left
// for the caller.
func (p *Projection[S, V]) moveSourceIndexInMap(from, to int) {
	lo, hi, delta := from+1, to, -1
	if to < from {
		lo, hi, delta = to, from-1, 1
	}
	for i, v := range p.indexMap {
		if v >= lo && v <= hi {
			p.indexMap[i] = v + delta
		}
	}
}
