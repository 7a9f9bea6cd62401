package transition

import (
	"github.com/fluoroseq-project/fluoroseq/fitstat"
	"github.com/fluoroseq-project/fluoroseq/tensor"
)

// Detach models whole-peptide loss from the substrate: at each cycle, the
// peptide detaches (independently of any per-dye chemistry) with
// probability PDetach, after which it emits zero intensity forever. A
// detached peptide is indistinguishable, from this point on, from one that
// simply has zero dye molecules remaining in every channel -- so Detach
// reuses that state's cell, the corner [e, 0, ..., 0] at the current
// Edman-cycle count e, as the sink for detached mass, rather than adding a
// dedicated axis.
type Detach struct {
	PDetach float64
}

func NewDetach(pDetach float64) *Detach {
	return &Detach{PDetach: pDetach}
}

func cornerIndex(t *tensor.Tensor, e int) int {
	return e * t.Stride[0]
}

// Forward multiplies every live cell by (1-PDetach) and routes the
// PDetach-weighted total live mass into the corner sink. in and out may be
// the same tensor.
func (d *Detach) Forward(in *tensor.Tensor, edmans *int, out *tensor.Tensor) {
	e := *edmans
	var total float64
	forEachCell(in, e, func(loc []int, idx int) {
		total += in.Values[idx]
	})
	forEachCell(in, e, func(loc []int, idx int) {
		out.Values[idx] = in.Values[idx] * (1 - d.PDetach)
	})
	out.Values[cornerIndex(out, e)] += d.PDetach * total
}

// Backward mixes every cell's backward value with PDetach times the
// backward value at the sink -- the adjoint of Forward's "every cell feeds
// the sink" broadcast. in and out may be the same tensor.
func (d *Detach) Backward(in *tensor.Tensor, edmans *int, out *tensor.Tensor) {
	e := *edmans
	sinkB := in.Values[cornerIndex(in, e)]
	forEachCell(in, e, func(loc []int, idx int) {
		out.Values[idx] = in.Values[idx]*(1-d.PDetach) + d.PDetach*sinkB
	})
}

// AccumulateFit adds the expected number of detachment events (weighted by
// forward mass, PDetach, and the backward value at the sink) and the
// expected number of opportunities (every live cell had a chance to
// detach this cycle) to acc.Detach.
func (d *Detach) AccumulateFit(forward, bNext *tensor.Tensor, edmans int, probability float64, acc *fitstat.Accumulator) {
	if probability == 0 {
		return
	}
	bSink := bNext.Values[cornerIndex(bNext, edmans)]
	forEachCell(forward, edmans, func(loc []int, idx int) {
		f := forward.Values[idx]
		if f == 0 {
			return
		}
		bBefore := (1-d.PDetach)*bNext.Values[idx] + d.PDetach*bSink
		acc.Detach.Opportunity += f * bBefore / probability
		acc.Detach.Event += f * d.PDetach * bSink / probability
	})
}
