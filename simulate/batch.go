package simulate

import (
	"math/rand"

	"github.com/fluoroseq-project/fluoroseq/model"
)

// DyeTracks generates dyeTracksPerPeptide dye tracks for every peptide
// instance behind every dye sequence in seqs (a sequence with multiplicity
// n contributes n times as many draws as one with multiplicity 1),
// discarding any track with all-zero counts at timestep 0 since it would
// never be detected, grounded on generate-dye-tracks.cc.
func DyeTracks(sm model.SequencingModel, seqs []model.SourcedData[model.DyeSeq, model.SourceCount], numTimesteps, dyeTracksPerPeptide int, rng *rand.Rand) []model.SourcedData[model.DyeTrack, model.SourceCount] {
	out := make([]model.SourcedData[model.DyeTrack, model.SourceCount], 0, len(seqs)*dyeTracksPerPeptide)
	for _, ds := range seqs {
		for i := 0; i < ds.Source.Count; i++ {
			for j := 0; j < dyeTracksPerPeptide; j++ {
				track := DyeTrack(sm, ds.Value, numTimesteps, rng)
				if firstTimestepAllZero(track) {
					continue
				}
				out = append(out, model.SourcedData[model.DyeTrack, model.SourceCount]{Value: track, Source: ds.Source})
			}
		}
	}
	return out
}

func firstTimestepAllZero(t model.DyeTrack) bool {
	for c := 0; c < t.C; c++ {
		if t.At(0, c) != 0 {
			return false
		}
	}
	return true
}

// Radiometries draws numToGenerate radiometries, picking the source dye
// sequence for each draw with a Sampler weighted by peptide multiplicity
// and discarding (without replacement draw) any undetectable result,
// grounded on generate-radiometries.cc -- the attempted count, not the
// returned count, matches num_to_generate there.
func Radiometries(sm model.SequencingModel, seqs []model.SourcedData[model.DyeSeq, model.SourceCount], numTimesteps, numToGenerate int, rng *rand.Rand) []model.SourcedData[model.Radiometry, model.SourceCount] {
	weights := make([]float64, len(seqs))
	for i, ds := range seqs {
		weights[i] = float64(ds.Source.Count)
	}
	sampler := NewSampler(weights)

	out := make([]model.SourcedData[model.Radiometry, model.SourceCount], 0, numToGenerate)
	for i := 0; i < numToGenerate; i++ {
		ds := seqs[sampler.Sample(rng)]
		r := Radiometry(sm, ds.Value, numTimesteps, rng)
		if r.FirstTimestepAllZero() {
			continue
		}
		out = append(out, model.SourcedData[model.Radiometry, model.SourceCount]{Value: r, Source: ds.Source})
	}
	return out
}
