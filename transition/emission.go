package transition

import (
	"math"

	"github.com/fluoroseq-project/fluoroseq/fitstat"
	"github.com/fluoroseq-project/fluoroseq/model"
	"github.com/fluoroseq-project/fluoroseq/tensor"
)

// Emission scales every state's mass at a single Edman-cycle plane by the
// probability density of the observed intensities at that cycle given that
// state's per-channel dye counts. Unlike Binomial/Detach/Edman, Emission is
// diagonal in the state basis -- it never moves mass between cells -- so
// Forward and Backward are the same elementwise scaling, which also makes
// Emission trivially self-adjoint.
type Emission struct {
	Channels   []model.ChannelModel
	Radiometry model.Radiometry
	Cutoff     float64
}

func NewEmission(channels []model.ChannelModel, r model.Radiometry, cutoff float64) *Emission {
	return &Emission{Channels: channels, Radiometry: r, Cutoff: cutoff}
}

// density returns the joint density of the observed intensities at cycle t
// given the per-channel dye counts in loc (loc[0] is always t; loc[1+c] is
// the channel-c dye count).
func (e *Emission) density(t int, loc []int) float64 {
	d := 1.0
	for c := range e.Channels {
		n := loc[1+c]
		x := e.Radiometry.At(t, c)
		d *= e.Channels[c].Density(n, x, e.Cutoff)
		if d == 0 {
			return 0
		}
	}
	return d
}

// Forward multiplies plane t = *edmans of in by the emission density,
// writing into out. in and out may be the same tensor.
func (e *Emission) Forward(in *tensor.Tensor, edmans *int, out *tensor.Tensor) {
	t := *edmans
	iteratePlane(in, t, func(loc []int) {
		out.Set(loc, in.At(loc)*e.density(t, loc))
	})
}

// Backward is identical to Forward: Emission is diagonal, hence
// self-adjoint.
func (e *Emission) Backward(in *tensor.Tensor, edmans *int, out *tensor.Tensor) {
	t := *edmans
	iteratePlane(in, t, func(loc []int) {
		out.Set(loc, in.At(loc)*e.density(t, loc))
	})
}

// AccumulateFit adds this cycle's weighted-observation sufficient statistics
// to each channel's emission moment accumulator: every live state
// contributes its dye count's expected occupancy (forward * backward,
// normalized by probability) as a weight on the observed intensity. States
// with n == 0 contribute nothing -- the emission fit only describes
// channels with at least one dye present. Which moment accumulator
// receives the sample is selected per channel by model.ChannelModel.Kind,
// the same field model.ChannelModel.Density already branches on: Gaussian
// channels fit linear-space moments of x/n (NormalMoments), LogNormal
// channels fit moments of log(x/n) (LogNormalMoments) -- the two upstream
// estimators differ in more than a log transform (see NormalMoments'
// SumX2OverN vs LogNormalMoments' SumWX2), so each needs its own
// accumulator rather than a shared one fed a transformed x.
func (e *Emission) AccumulateFit(forward, bNext *tensor.Tensor, edmans int, probability float64, acc *fitstat.Accumulator) {
	if probability == 0 {
		return
	}
	t := edmans
	iteratePlane(forward, t, func(loc []int) {
		f := forward.At(loc)
		if f == 0 {
			return
		}
		weight := f * e.density(t, loc) * bNext.At(loc) / probability
		if weight == 0 {
			return
		}
		for c := range e.Channels {
			n := loc[1+c]
			if n == 0 {
				continue
			}
			x := e.Radiometry.At(t, c)
			ch := &acc.Channels[c]
			if e.Channels[c].Kind == model.Gaussian {
				ch.Normal.Add(x, n, weight)
				continue
			}
			if x <= 0 {
				continue
			}
			logX := math.Log(x) - math.Log(float64(n))
			ch.LogNormal.Add(logX, weight)
		}
	})
}
