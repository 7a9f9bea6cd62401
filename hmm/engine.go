/*
Package hmm assembles the transition operators built by package transition
(bound to a sequencing model, a candidate dye sequence, and an observed
radiometry by package precompute) into the full forward/backward sweep:
Start, Dud (once per channel), Emission, then for every remaining cycle
Detach, Bleach (once per channel), Edman, Emission.

Engine runs this fixed pipeline without ever branching on a step's
concrete type -- every stage is a transition.Step, dispatched uniformly.
*/
package hmm

import (
	"github.com/fluoroseq-project/fluoroseq/fitstat"
	"github.com/fluoroseq-project/fluoroseq/precompute"
	"github.com/fluoroseq-project/fluoroseq/tensor"
	"github.com/fluoroseq-project/fluoroseq/transition"
)

// Engine evaluates one (dye sequence, radiometry) pair against a shared
// sequencing model.
type Engine struct {
	Universal  *precompute.Universal
	DyeSeq     *precompute.DyeSeqPrecomputations
	Radiometry *precompute.RadiometryPrecomputations
}

// New builds an Engine from precomputed shared state, candidate, and
// observation. d and r must have been built against the same u.
func New(u *precompute.Universal, d *precompute.DyeSeqPrecomputations, r *precompute.RadiometryPrecomputations) *Engine {
	return &Engine{Universal: u, DyeSeq: d, Radiometry: r}
}

// forwardSweep runs the full pipeline, returning every stage's step, the
// tensor fed into that step, and the edmans value the step saw, alongside
// the final tensor and its total (the radiometry's probability under the
// model).
func (e *Engine) forwardSweep() (steps []transition.Step, preStates []*tensor.Tensor, preEdmans []int, final *tensor.Tensor, probability float64) {
	shape := e.DyeSeq.Shape
	numChannels := len(e.Universal.Model.Channels)
	numTimesteps := shape[0]

	cur := transition.Start(shape, e.DyeSeq.Track)
	edmans := 0

	apply := func(step transition.Step) {
		steps = append(steps, step)
		preStates = append(preStates, cur)
		preEdmans = append(preEdmans, edmans)
		out := tensor.New(shape)
		step.Forward(cur, &edmans, out)
		cur = out
	}

	for c := 0; c < numChannels; c++ {
		apply(e.Universal.Dud[c])
	}
	apply(e.Radiometry.Emission)

	for t := 1; t < numTimesteps; t++ {
		apply(e.Universal.Detach)
		for c := 0; c < numChannels; c++ {
			apply(e.Universal.Bleach[c])
		}
		apply(e.DyeSeq.Edman)
		apply(e.Radiometry.Emission)
	}

	final = cur
	probability = cur.Sum()
	return
}

// Probability returns the total probability of the bound radiometry under
// the bound dye sequence and sequencing model, marginalized over every
// hidden state.
func (e *Engine) Probability() float64 {
	_, _, _, _, probability := e.forwardSweep()
	return probability
}

// ImproveFit runs the full forward/backward sweep and adds this
// (dye sequence, radiometry) pair's contribution to acc's sufficient
// statistics, weighted by the posterior implied by the current model. It
// returns the pair's probability (0 if the sequence cannot explain the
// radiometry at all, in which case no statistics are accumulated).
func (e *Engine) ImproveFit(acc *fitstat.Accumulator) float64 {
	steps, preStates, preEdmans, _, probability := e.forwardSweep()
	if probability == 0 {
		return 0
	}

	shape := e.DyeSeq.Shape
	backward := transition.Finish(shape)
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		edmansBefore := preEdmans[i]
		step.AccumulateFit(preStates[i], backward, edmansBefore, probability, acc)

		next := tensor.New(shape)
		eb := edmansBefore
		step.Backward(backward, &eb, next)
		backward = next
	}
	return probability
}
