/*
Package precompute builds the pieces of an HMM evaluation that can be
shared across many (dye sequence, radiometry) pairs, so that classifying a
batch of radiometries against a candidate set doesn't redo the same
binomial-table growth or dye-track derivation for every pair.

Universal holds everything that depends only on the sequencing model:
the bleach/dud binomial tables (grown once to the batch's maximum dye
count) and the detach operator. DyeSeqPrecomputations holds everything
that depends only on a candidate dye sequence: its derived, error-free
dye track and the Edman operator bound to it. RadiometryPrecomputations
holds everything that depends only on an observed radiometry: the
emission operator bound to its observed intensities.
*/
package precompute

import (
	"github.com/fluoroseq-project/fluoroseq/model"
	"github.com/fluoroseq-project/fluoroseq/transition"
)

// Universal is shared across every dye sequence and radiometry evaluated
// against the same sequencing model.
type Universal struct {
	Model    model.SequencingModel
	Settings model.Settings
	Dud      []*transition.Binomial // one per channel
	Bleach   []*transition.Binomial // one per channel
	Detach   *transition.Detach
}

// NewUniversal builds the shared operators for m. Callers that will run
// many evaluations concurrently must call Reserve to the batch's maximum
// per-channel dye count before launching workers.
func NewUniversal(m model.SequencingModel, settings model.Settings) *Universal {
	u := &Universal{
		Model:    m,
		Settings: settings,
		Dud:      make([]*transition.Binomial, len(m.Channels)),
		Bleach:   make([]*transition.Binomial, len(m.Channels)),
		Detach:   transition.NewDetach(m.PDetach),
	}
	for c, ch := range m.Channels {
		u.Dud[c] = transition.NewBinomial(c, transition.Dud, ch.PDud)
		u.Bleach[c] = transition.NewBinomial(c, transition.Bleach, ch.PBleach)
	}
	return u
}

// Reserve grows every channel's Dud and Bleach tables to maxDyes. Must be
// called before any concurrent worker starts calling Forward/Backward,
// since Binomial.Reserve is not safe for concurrent use with readers.
func (u *Universal) Reserve(maxDyes int) {
	for c := range u.Model.Channels {
		u.Dud[c].Reserve(maxDyes)
		u.Bleach[c].Reserve(maxDyes)
	}
}

// DyeSeqPrecomputations holds the tensor shape and Edman operator derived
// from a single candidate dye sequence, reusable across every radiometry
// it is scored against.
type DyeSeqPrecomputations struct {
	Seq   model.DyeSeq
	Track model.DyeTrack
	Shape []int // [numTimesteps, 1+maxDyes[0], 1+maxDyes[1], ...]
	Edman *transition.Edman
}

// NewDyeSeqPrecomputations derives seq's dye track over numTimesteps
// cycles against u's channel count and builds the Edman operator and
// tensor shape every evaluation of seq will use. The per-channel dye-count
// axis size is fixed at the cycle-0 count plus one, since dye counts never
// increase after cycle 0 under the model's chemistry.
func NewDyeSeqPrecomputations(seq model.DyeSeq, numTimesteps int, u *Universal) *DyeSeqPrecomputations {
	numChannels := len(u.Model.Channels)
	track := model.FromDyeSeq(seq, numTimesteps, numChannels)
	shape := make([]int, 1+numChannels)
	shape[0] = numTimesteps
	for c := 0; c < numChannels; c++ {
		shape[1+c] = track.At(0, c) + 1
	}
	return &DyeSeqPrecomputations{
		Seq:   seq,
		Track: track,
		Shape: shape,
		Edman: transition.NewEdman(u.Model.PEdmanFailure, seq, track),
	}
}

// MaxDye returns the largest per-channel axis size (exclusive of the +1),
// used by callers that need a single Reserve bound across a whole batch of
// dye sequences.
func (p *DyeSeqPrecomputations) MaxDye() int {
	max := 0
	for _, s := range p.Shape[1:] {
		if s-1 > max {
			max = s - 1
		}
	}
	return max
}

// RadiometryPrecomputations holds the emission operator bound to a single
// observed radiometry, reusable across every candidate dye sequence it is
// scored against.
type RadiometryPrecomputations struct {
	Radiometry model.Radiometry
	Emission   *transition.Emission
}

// NewRadiometryPrecomputations builds the emission operator for r against
// u's channel models and dist-cutoff setting.
func NewRadiometryPrecomputations(r model.Radiometry, u *Universal) *RadiometryPrecomputations {
	return &RadiometryPrecomputations{
		Radiometry: r,
		Emission:   transition.NewEmission(u.Model.Channels, r, u.Settings.DistCutoff),
	}
}
