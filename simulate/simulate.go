/*
Package simulate generates synthetic dye tracks and radiometries from a
sequencing model, the forward direction of the same chemistry the hmm and
fit packages run inference over. Grounded on generate-dye-track.cc,
generate-dye-tracks.cc, generate-radiometry.cc, and
generate-radiometries.cc.
*/
package simulate

import (
	"math/rand"

	"github.com/fluoroseq-project/fluoroseq/model"
)

// DyeTrack draws one stochastic realization of seq's dye track under sm
// over numTimesteps Edman cycles. Duds are resolved once, up front; each
// cycle then records the surviving counts, may detach the whole peptide,
// may fail to cleave the next residue, and bleaches any surviving dye
// still attached, grounded on generate-dye-track.cc.
func DyeTrack(sm model.SequencingModel, seq model.DyeSeq, numTimesteps int, rng *rand.Rand) model.DyeTrack {
	numChannels := len(sm.Channels)
	track := model.NewDyeTrack(numTimesteps, numChannels)

	labels := make([]int, seq.Len())
	counts := make([]int, numChannels)
	for i := 0; i < seq.Len(); i++ {
		ch := seq.At(i)
		if ch >= 0 && rng.Float64() < sm.Channels[ch].PDud {
			ch = -1
		}
		labels[i] = ch
		if ch >= 0 {
			counts[ch]++
		}
	}

	e := 0
	for t := 0; t < numTimesteps; t++ {
		if e >= len(labels) {
			continue // track already zeroed for t by NewDyeTrack
		}
		for c := 0; c < numChannels; c++ {
			track.Set(t, c, counts[c])
		}
		if rng.Float64() < sm.PDetach {
			e = len(labels)
			continue
		}
		if rng.Float64() >= sm.PEdmanFailure {
			if labels[e] >= 0 {
				counts[labels[e]]--
			}
			e++
		}
		for i := e; i < len(labels); i++ {
			ch := labels[i]
			if ch >= 0 && rng.Float64() < sm.Channels[ch].PBleach {
				counts[ch]--
				labels[i] = -1
			}
		}
	}
	return track
}

// Radiometry draws one stochastic dye track for seq and then samples each
// nonzero cell's observed intensity from that channel's Gaussian emission
// density, grounded on generate-radiometry.cc. Cells where the dye track
// is zero stay at zero: an absent dye emits nothing to sample.
func Radiometry(sm model.SequencingModel, seq model.DyeSeq, numTimesteps int, rng *rand.Rand) model.Radiometry {
	track := DyeTrack(sm, seq, numTimesteps, rng)
	numChannels := len(sm.Channels)
	r := model.NewRadiometry(numTimesteps, numChannels)
	for t := 0; t < numTimesteps; t++ {
		for c := 0; c < numChannels; c++ {
			n := track.At(t, c)
			if n == 0 {
				continue
			}
			ch := sm.Channels[c]
			mean := ch.Mu * float64(n)
			sigma := ch.Sigma(n)
			r.Set(t, c, mean+sigma*rng.NormFloat64())
		}
	}
	return r
}
