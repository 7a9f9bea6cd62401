package tensor

// RestrictedIterator walks every cell of a Tensor in row-major order whose
// axis-0 coordinate lies in [0, edmans]. In HMM execution this is exactly
// the set of cells that can hold nonzero mass at a given point in the
// pipeline (completed-Edman-cycles counts can't exceed edmans), so
// operators that touch "every live cell" (Detach, Emission) use this
// instead of walking the whole tensor.
type RestrictedIterator struct {
	t       *Tensor
	edmans  int
	loc     []int
	started bool
	done    bool
}

// NewRestrictedIterator builds an iterator over t restricted to axis-0 in
// [0, edmans]. edmans is snapshotted at construction time; operators that
// mutate edmans mid-pass build a fresh iterator per phase.
func NewRestrictedIterator(t *Tensor, edmans int) *RestrictedIterator {
	it := &RestrictedIterator{t: t, edmans: edmans, loc: make([]int, t.Order())}
	if t.Shape[0] == 0 || edmans < 0 {
		it.done = true
	}
	return it
}

// Next advances the iterator and reports whether a cell is available. Call
// Loc/Index to read it.
func (it *RestrictedIterator) Next() bool {
	if it.done {
		return false
	}
	if !it.started {
		it.started = true
		return true
	}
	// Odometer increment over the non-axis-0 axes first (row-major: the
	// last axis varies fastest), then axis 0, bounded by edmans rather
	// than the full axis-0 extent.
	for axis := len(it.loc) - 1; axis >= 0; axis-- {
		limit := it.t.Shape[axis]
		if axis == 0 {
			limit = it.edmans + 1
		}
		it.loc[axis]++
		if it.loc[axis] < limit {
			return true
		}
		it.loc[axis] = 0
	}
	it.done = true
	return false
}

// Loc returns the current coordinate tuple. The returned slice is owned by
// the iterator and is overwritten by the next call to Next.
func (it *RestrictedIterator) Loc() []int {
	return it.loc
}

// Index returns the flat storage index of the current cell.
func (it *RestrictedIterator) Index() int {
	off := 0
	for i, l := range it.loc {
		off += l * it.t.Stride[i]
	}
	return off
}

// Value returns the current cell's value.
func (it *RestrictedIterator) Value() float64 {
	return it.t.Values[it.Index()]
}

// SetValue writes the current cell's value.
func (it *RestrictedIterator) SetValue(v float64) {
	it.t.Values[it.Index()] = v
}
