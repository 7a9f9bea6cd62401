package classify

import (
	"github.com/fluoroseq-project/fluoroseq/hmm"
	"github.com/fluoroseq-project/fluoroseq/model"
	"github.com/fluoroseq-project/fluoroseq/precompute"
)

// HMM classifies a radiometry by running the full forward algorithm
// against every candidate dye sequence and picking the highest-probability
// one, grounded on hmm-classifier.cc.
type HMM struct {
	universal    *precompute.Universal
	dyeSeqs      []model.SourcedData[model.DyeSeq, model.SourceCount]
	dyeSeqPre    []*precompute.DyeSeqPrecomputations
	numTimesteps int
	workers      int
}

// NewHMM builds an HMM classifier over dyeSeqs, growing every channel's
// binomial tables to the batch's maximum dye count up front so that
// concurrent Classify calls never race Binomial.Reserve.
func NewHMM(numTimesteps int, sm model.SequencingModel, settings model.Settings, dyeSeqs []model.SourcedData[model.DyeSeq, model.SourceCount], workers int) *HMM {
	universal := precompute.NewUniversal(sm, settings)
	pre := make([]*precompute.DyeSeqPrecomputations, len(dyeSeqs))
	maxDyes := 0
	for i, ds := range dyeSeqs {
		p := precompute.NewDyeSeqPrecomputations(ds.Value, numTimesteps, universal)
		pre[i] = p
		if m := p.MaxDye(); m > maxDyes {
			maxDyes = m
		}
	}
	universal.Reserve(maxDyes)
	return &HMM{
		universal:    universal,
		dyeSeqs:      dyeSeqs,
		dyeSeqPre:    pre,
		numTimesteps: numTimesteps,
		workers:      workers,
	}
}

// ClassifyOne scores radiometry against every candidate.
func (c *HMM) ClassifyOne(r model.Radiometry) model.ScoredClassification {
	return c.classifyIndices(r, allIndices(len(c.dyeSeqs)))
}

// ClassifyCandidates scores radiometry against only the candidates named
// by indices (into the slice passed to NewHMM), the restricted evaluation
// Hybrid uses after its NN shortlist.
func (c *HMM) ClassifyCandidates(r model.Radiometry, indices []int) model.ScoredClassification {
	return c.classifyIndices(r, indices)
}

func (c *HMM) classifyIndices(r model.Radiometry, indices []int) model.ScoredClassification {
	radiometryPre := precompute.NewRadiometryPrecomputations(r, c.universal)
	bestID := -1
	bestScore := -1.0
	var total float64
	for _, i := range indices {
		engine := hmm.New(c.universal, c.dyeSeqPre[i], radiometryPre)
		score := engine.Probability()
		total += score * float64(c.dyeSeqs[i].Source.Count)
		if score > bestScore {
			bestScore = score
			bestID = c.dyeSeqs[i].Source.ID
		}
	}
	if bestID == -1 {
		return model.NewScoredClassificationSafe(-1, 0, total)
	}
	return model.NewScoredClassificationSafe(bestID, bestScore, total)
}

// Classify scores every radiometry, preserving input order in the result
// slice regardless of completion order across c.workers goroutines.
func (c *HMM) Classify(radiometries []model.Radiometry) []model.ScoredClassification {
	return runOrdered(len(radiometries), c.workers, func(i int) model.ScoredClassification {
		return c.ClassifyOne(radiometries[i])
	})
}
