package transition

import (
	"github.com/fluoroseq-project/fluoroseq/fitstat"
	"github.com/fluoroseq-project/fluoroseq/model"
	"github.com/fluoroseq-project/fluoroseq/tensor"
)

// Edman models one cycle of Edman degradation: with probability PFail
// nothing is cleaved (mass stays on plane e); with probability 1-PFail the
// N-terminal residue (position e of Seq) is cleaved, moving mass from
// plane e to plane e+1 and, if that residue was dye-labeled, decrementing
// one dye count on the moved mass's channel. Track is the deterministic,
// error-free dye track derived from Seq (model.FromDyeSeq), which gives
// the pre-cleavage dye count D needed to split the moved mass between
// "decremented" and "unaffected" fractions.
//
// Edman is the one operator that is never safe to apply in place across
// the axis-0 direction: it both reads and writes plane e while writing a
// freshly computed plane e+1, so Forward/Backward require a distinct
// scratch tensor as out.
type Edman struct {
	PFail float64
	Seq   model.DyeSeq
	Track model.DyeTrack
}

func NewEdman(pFail float64, seq model.DyeSeq, track model.DyeTrack) *Edman {
	return &Edman{PFail: pFail, Seq: seq, Track: track}
}

// iteratePlane calls fn once per coordinate tuple of t with axis-0 fixed
// at axis0Val and every other axis ranging over its full extent.
func iteratePlane(t *tensor.Tensor, axis0Val int, fn func(loc []int)) {
	order := t.Order()
	loc := make([]int, order)
	loc[0] = axis0Val
	var rec func(a int)
	rec = func(a int) {
		if a == order {
			fn(loc)
			return
		}
		for i := 0; i < t.Shape[a]; i++ {
			loc[a] = i
			rec(a + 1)
		}
	}
	rec(1)
}

// Forward moves mass from plane t (= *edmans) to plane t+1 in out, and
// scales plane t in place (in out) by PFail. out must not alias in.
// *edmans is advanced to t+1.
func (e *Edman) Forward(in *tensor.Tensor, edmans *int, out *tensor.Tensor) {
	t := *edmans
	ch := e.Seq.At(t)

	// Plane t stays behind with probability PFail, regardless of branch.
	iteratePlane(in, t, func(loc []int) {
		out.Set(loc, in.At(loc)*e.PFail)
	})

	if ch < 0 {
		// Unlabeled (or past the end of the sequence): the cleaved
		// residue carried no dye, so the surviving-cleavage fraction
		// advances to plane t+1 unchanged.
		iteratePlane(in, t, func(loc []int) {
			dst := append([]int(nil), loc...)
			dst[0] = t + 1
			out.Set(dst, (1-e.PFail)*in.At(loc))
		})
		*edmans = t + 1
		return
	}

	// Labeled: split each source count i along axis 1+ch between i-1
	// (the dye was on the cleaved residue) and i (it wasn't).
	axis := 1 + ch
	d := e.Track.At(t, ch)

	// Zero plane t+1 first since two source indices can deposit into the
	// same destination index.
	iteratePlane(out, t+1, func(loc []int) {
		out.Set(loc, 0)
	})

	forEachAxisCombo(in, axis, func(fixed []int) {
		fixed[0] = t
		srcVec := tensor.Slice(in, axis, fixed)
		dstFixed := append([]int(nil), fixed...)
		dstFixed[0] = t + 1
		dstVec := tensor.Slice(out, axis, dstFixed)
		n := srcVec.Len()
		for i := 0; i < n; i++ {
			mass := srcVec.At(i)
			if mass == 0 {
				continue
			}
			mass *= 1 - e.PFail
			if d > 0 {
				if i > 0 {
					dstVec.Set(i-1, dstVec.At(i-1)+mass*float64(i)/float64(d))
				}
				dstVec.Set(i, dstVec.At(i)+mass*float64(d-i)/float64(d))
			} else {
				dstVec.Set(i, dstVec.At(i)+mass)
			}
		}
	})
	*edmans = t + 1
}

// Backward is the transpose of Forward: for a labeled residue, backward
// mass at plane t+1 index i-1 (the "dye was cleaved" branch) and index i
// (the "dye stayed" branch) both feed back into plane t index i, weighted
// the same way Forward split them; for an unlabeled residue plane t+1
// feeds straight back. Plane t's own backward contribution (the PFail
// "nothing happened" branch) is added on top. edmans is read, not
// advanced (the backward sweep walks *edmans down elsewhere). out must
// not alias in.
func (e *Edman) Backward(in *tensor.Tensor, edmans *int, out *tensor.Tensor) {
	t := *edmans
	ch := e.Seq.At(t)

	iteratePlane(out, t, func(loc []int) {
		out.Set(loc, e.PFail*in.At(loc))
	})

	if ch < 0 {
		iteratePlane(in, t+1, func(loc []int) {
			dst := append([]int(nil), loc...)
			dst[0] = t
			out.Set(dst, out.At(dst)+(1-e.PFail)*in.At(loc))
		})
		return
	}

	axis := 1 + ch
	d := e.Track.At(t, ch)
	forEachAxisCombo(in, axis, func(fixed []int) {
		nextFixed := append([]int(nil), fixed...)
		nextFixed[0] = t + 1
		nextVec := tensor.Slice(in, axis, nextFixed)
		outFixed := append([]int(nil), fixed...)
		outFixed[0] = t
		outVec := tensor.Slice(out, axis, outFixed)
		n := outVec.Len()
		for i := 0; i < n; i++ {
			var contrib float64
			if d > 0 {
				if i > 0 {
					contrib += nextVec.At(i-1) * float64(i) / float64(d)
				}
				contrib += nextVec.At(i) * float64(d-i) / float64(d)
			} else {
				contrib += nextVec.At(i)
			}
			outVec.Set(i, outVec.At(i)+(1-e.PFail)*contrib)
		}
	})
}

// AccumulateFit adds the expected number of "Edman failed" events and
// opportunities (one per live cell per cycle) to acc.EdmanFailure. bNext
// is the backward tensor keyed to the coordinate space just after this
// Edman step (plane t holds the failure-branch continuation, plane t+1
// the success branch); scratch receives the "before this step" backward
// values via Backward so Opportunity can be read off directly.
func (e *Edman) AccumulateFit(forward, bNext *tensor.Tensor, edmans int, probability float64, acc *fitstat.Accumulator) {
	if probability == 0 {
		return
	}
	t := edmans
	scratch := bNext.Clone()
	tCopy := t
	e.Backward(bNext, &tCopy, scratch)
	iteratePlane(forward, t, func(loc []int) {
		f := forward.At(loc)
		if f == 0 {
			return
		}
		bNextSame := bNext.At(loc)
		bBefore := scratch.At(loc)
		acc.EdmanFailure.Event += f * e.PFail * bNextSame / probability
		acc.EdmanFailure.Opportunity += f * bBefore / probability
	})
}

// forEachAxisCombo calls fn once per coordinate tuple of t with position
// axis left at the caller-supplied placeholder (tensor.Slice ignores that
// position) and axis 0 left at whatever the caller sets it to, varying
// every other axis over its full extent.
func forEachAxisCombo(t *tensor.Tensor, axis int, fn func(fixed []int)) {
	order := t.Order()
	fixed := make([]int, order)
	var rec func(a int)
	rec = func(a int) {
		if a == order {
			fn(fixed)
			return
		}
		if a == axis || a == 0 {
			rec(a + 1)
			return
		}
		for i := 0; i < t.Shape[a]; i++ {
			fixed[a] = i
			rec(a + 1)
		}
	}
	rec(0)
}
