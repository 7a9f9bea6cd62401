package classify

import "github.com/fluoroseq-project/fluoroseq/model"

// Hybrid narrows the candidate set with NN before scoring the shortlist
// with the full HMM, trading a little accuracy for a large speedup over
// HMM alone on big candidate sets, grounded on hybrid-classifier.cc.
type Hybrid struct {
	hmm     *HMM
	nn      *NN
	h       int
	idIndex map[int]int
	idCount map[int]int
}

// NewHybrid builds a Hybrid classifier: nn and hmm candidate sets must
// describe the same peptides (dyeSeqs' SourceCount.ID values index into
// dyeTracks' SourceCountHitsList entries).
func NewHybrid(numTimesteps int, sm model.SequencingModel, settings model.Settings, k int, sig float64, dyeTracks []model.SourcedData[model.DyeTrack, model.SourceCountHitsList], h int, dyeSeqs []model.SourcedData[model.DyeSeq, model.SourceCount], workers int) *Hybrid {
	idIndex := make(map[int]int, len(dyeSeqs))
	idCount := make(map[int]int, len(dyeSeqs))
	for i, ds := range dyeSeqs {
		idIndex[ds.Source.ID] = i
		idCount[ds.Source.ID] = ds.Source.Count
	}
	return &Hybrid{
		hmm:     NewHMM(numTimesteps, sm, settings, dyeSeqs, workers),
		nn:      NewNN(sm, k, sig, dyeTracks, workers),
		h:       h,
		idIndex: idIndex,
		idCount: idCount,
	}
}

// ClassifyOne shortlists h candidates via NN, then runs the full HMM
// restricted to that shortlist; the winning score is scaled by the
// shortlist's total adjusted NN mass (subfraction), matching the upstream
// two-stage weighting.
func (c *Hybrid) ClassifyOne(r model.Radiometry) model.ScoredClassification {
	candidates := c.nn.ClassifyShortlist(r, c.h)
	if len(candidates) == 0 {
		return model.NewScoredClassificationSafe(-1, 0, 1)
	}

	var subfraction float64
	indices := make([]int, 0, len(candidates))
	for _, cand := range candidates {
		subfraction += cand.AdjustedScore() * float64(c.idCount[cand.ID])
		if idx, ok := c.idIndex[cand.ID]; ok {
			indices = append(indices, idx)
		}
	}

	result := c.hmm.ClassifyCandidates(r, indices)
	if result.ID == -1 {
		return candidates[len(candidates)-1]
	}
	return model.NewScoredClassificationSafe(result.ID, result.Score*subfraction, result.Total)
}

// Classify scores every radiometry, preserving input order.
func (c *Hybrid) Classify(radiometries []model.Radiometry) []model.ScoredClassification {
	return runOrdered(len(radiometries), c.hmm.workers, func(i int) model.ScoredClassification {
		return c.ClassifyOne(radiometries[i])
	})
}
