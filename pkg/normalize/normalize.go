package normalize

import "fmt"

// UpdateKind is the kind of a batched update.
type UpdateKind int

const (
	// KindAdd inserts one row.
	KindAdd UpdateKind = iota
	// KindDelete removes one row.
	KindDelete
)

func (k UpdateKind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Update is one row insertion or deletion.
//
// In a batch passed to Normalize, Index is expressed in the index space at
// the moment the update was issued, i.e. after every earlier update in the
// batch was applied. In the result, adds are in the final space and deletes
// in the initial space.
type Update struct {
	Kind      UpdateKind
	Index     int
	Duplicate bool
}

// Add returns an add update at index.
func Add(index int) Update { return Update{Kind: KindAdd, Index: index} }

// Delete returns a delete update at index.
func Delete(index int) Update { return Update{Kind: KindDelete, Index: index} }

func (u Update) String() string {
	if u.Duplicate {
		return fmt.Sprintf("%s(%d)*", u.Kind, u.Index)
	}
	return fmt.Sprintf("%s(%d)", u.Kind, u.Index)
}

// Normalize rewrites a batch of sequentially issued updates for a host that
// applies all deletes first, using pre-batch indices, and then all adds,
// using post-batch indices.
//
// An add whose row is deleted later in the same batch cancels against that
// delete and neither is reported. The remaining updates keep their relative
// order. Normalize never modifies updates.
//
// A delete is mapped to the pre-batch space by undoing the earlier updates,
// latest first. Two deletes at the same issued index therefore name two
// different initial rows: [Delete(0), Delete(0)] normalizes to
// [Delete(0), Delete(1)].
//
//	Normalize([]Update{Add(0), Add(0), Delete(1)}) // [add(0)]
func Normalize(updates []Update) []Update {
	if len(updates) == 0 {
		return nil
	}
	batch := make([]Update, len(updates))
	copy(batch, updates)
	for i := range batch {
		batch[i].Duplicate = false
	}
	markDuplicates(batch)

	out := make([]Update, 0, len(batch))
	for i, u := range batch {
		if u.Duplicate {
			continue
		}
		switch u.Kind {
		case KindAdd:
			out = append(out, Update{Kind: KindAdd, Index: additionIndex(batch, i, len(batch))})
		case KindDelete:
			out = append(out, Update{Kind: KindDelete, Index: deletionIndex(batch, i)})
		}
	}
	return out
}

// Split separates a normalized batch into its deletes and its adds, the
// order in which a host applies them.
func Split(updates []Update) (deletes, adds []Update) {
	for _, u := range updates {
		if u.Kind == KindDelete {
			deletes = append(deletes, u)
		} else {
			adds = append(adds, u)
		}
	}
	return deletes, adds
}

// markDuplicates pairs every delete with the earliest unpaired add whose row
// it removes. First match wins.
func markDuplicates(batch []Update) {
	for j := 1; j < len(batch); j++ {
		if batch[j].Kind != KindDelete {
			continue
		}
		for i := 0; i < j; i++ {
			if batch[i].Kind != KindAdd || batch[i].Duplicate {
				continue
			}
			if pos, alive := trackAdd(batch, i, j); alive && pos == batch[j].Index {
				batch[i].Duplicate = true
				batch[j].Duplicate = true
				break
			}
		}
	}
}

// trackAdd follows the row added by batch[i] through the updates before end
// and returns where it sits. alive is false if one of them deleted it.
func trackAdd(batch []Update, i, end int) (pos int, alive bool) {
	pos = batch[i].Index
	for k := i + 1; k < end; k++ {
		u := batch[k]
		switch {
		case u.Kind == KindAdd && u.Index <= pos:
			pos++
		case u.Kind == KindDelete && u.Index == pos:
			return -1, false
		case u.Kind == KindDelete && u.Index < pos:
			pos--
		}
	}
	return pos, true
}

// additionIndex moves the index of the add at batch[i] forward through the
// updates after it, into the post-batch space.
func additionIndex(batch []Update, i, end int) int {
	pos := batch[i].Index
	for k := i + 1; k < end; k++ {
		u := batch[k]
		switch {
		case u.Kind == KindAdd && u.Index <= pos:
			pos++
		case u.Kind == KindDelete && u.Index < pos:
			pos--
		}
	}
	return pos
}

// deletionIndex moves the index of the delete at batch[j] back through the
// updates before it, latest first, into the pre-batch space.
func deletionIndex(batch []Update, j int) int {
	pos := batch[j].Index
	for k := j - 1; k >= 0; k-- {
		u := batch[k]
		switch {
		case u.Kind == KindDelete && u.Index <= pos:
			pos++
		case u.Kind == KindAdd && u.Index <= pos:
			pos--
		}
	}
	return pos
}
