package fit

import (
	"math/rand"
	"sort"

	"github.com/fluoroseq-project/fluoroseq/model"
)

// Supplemented from original_source's cc_code/src/fitters/bootstrap-fit.*:
// spec.md names bootstrap confidence intervals but doesn't shape the
// result type, so BootstrapResult restores the upstream's per-parameter
// percentile-interval report.

// Interval is a [low, high] percentile-bound pair.
type Interval struct {
	Low, High float64
}

// ChannelBootstrapResult holds one channel's bootstrap intervals.
type ChannelBootstrapResult struct {
	PBleach Interval
	PDud    Interval
}

// BootstrapResult holds the fitted point estimate (fitting the full,
// unresampled radiometry set) alongside percentile confidence intervals
// for the error rates: p_edman_failure, p_detach, and each channel's
// p_bleach and p_dud. Mu and Sig get no interval, even when FitEmission
// re-estimates them.
type BootstrapResult struct {
	PointEstimate model.SequencingModel
	PEdmanFailure Interval
	PDetach       Interval
	Channels      []ChannelBootstrapResult
}

// Bootstrap runs Run b times, each on a resample-with-replacement of
// radiometries, and reports the lowPercentile/highPercentile bounds (e.g.
// 2.5/97.5 for a 95% interval) of each error rate in BootstrapResult across the
// b fits, alongside the point estimate fit on the full (unresampled) set.
func Bootstrap(f Fitter, prior model.SequencingModel, seq model.DyeSeq, radiometries []model.Radiometry, b int, lowPercentile, highPercentile float64, rng *rand.Rand) BootstrapResult {
	point := Run(f, prior, seq, radiometries)

	numChannels := len(prior.Channels)
	edmanFailure := make([]float64, b)
	detach := make([]float64, b)
	bleach := make([][]float64, numChannels)
	dud := make([][]float64, numChannels)
	for c := range bleach {
		bleach[c] = make([]float64, b)
		dud[c] = make([]float64, b)
	}

	for i := 0; i < b; i++ {
		resample := resampleWithReplacement(radiometries, rng)
		fitted := Run(f, prior, seq, resample)
		edmanFailure[i] = fitted.PEdmanFailure
		detach[i] = fitted.PDetach
		for c := range fitted.Channels {
			bleach[c][i] = fitted.Channels[c].PBleach
			dud[c][i] = fitted.Channels[c].PDud
		}
	}

	result := BootstrapResult{
		PointEstimate: point,
		PEdmanFailure: percentileInterval(edmanFailure, lowPercentile, highPercentile),
		PDetach:       percentileInterval(detach, lowPercentile, highPercentile),
		Channels:      make([]ChannelBootstrapResult, numChannels),
	}
	for c := 0; c < numChannels; c++ {
		result.Channels[c] = ChannelBootstrapResult{
			PBleach: percentileInterval(bleach[c], lowPercentile, highPercentile),
			PDud:    percentileInterval(dud[c], lowPercentile, highPercentile),
		}
	}
	return result
}

func resampleWithReplacement(radiometries []model.Radiometry, rng *rand.Rand) []model.Radiometry {
	out := make([]model.Radiometry, len(radiometries))
	for i := range out {
		out[i] = radiometries[rng.Intn(len(radiometries))]
	}
	return out
}

// percentileInterval returns the [low, high] percentile bounds of values,
// using linear interpolation between the two bracketing sorted
// samples. values is sorted in place.
func percentileInterval(values []float64, lowPercentile, highPercentile float64) Interval {
	sort.Float64s(values)
	return Interval{
		Low:  percentile(values, lowPercentile),
		High: percentile(values, highPercentile),
	}
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
