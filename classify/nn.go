package classify

import (
	"math"
	"sort"

	"github.com/fluoroseq-project/fluoroseq/kdtree"
	"github.com/fluoroseq-project/fluoroseq/model"
)

// NN pre-classifies a radiometry by k-nearest-neighbor lookup against a
// training set of dye tracks, weighting each neighbor by a Gaussian kernel
// of its distance and each neighbor's contributing peptides by their
// simulation hit count, grounded on nn-classifier.cc.
type NN struct {
	tree      *kdtree.Tree
	dyeTracks []model.SourcedData[model.DyeTrack, model.SourceCountHitsList]
	twoSigSq  float64
	k         int
	workers   int
}

// NewNN builds an NN classifier over dyeTracks. sig is the Gaussian
// kernel's bandwidth in intensity units; k is the number of nearest
// neighbors consulted per query.
func NewNN(sm model.SequencingModel, k int, sig float64, dyeTracks []model.SourcedData[model.DyeTrack, model.SourceCountHitsList], workers int) *NN {
	points := make([][]float64, len(dyeTracks))
	for i, dt := range dyeTracks {
		points[i] = expectedIntensities(sm, dt.Value)
	}
	return &NN{
		tree:      kdtree.New(points),
		dyeTracks: dyeTracks,
		twoSigSq:  2 * sig * sig,
		k:         k,
		workers:   workers,
	}
}

// expectedIntensities is a dye track's feature vector: the expected
// intensity contribution of channel c's own dye count at each timestep,
// channel.Mu * count. This omits cross-channel bleed-through, which the
// sequencing model doesn't represent.
func expectedIntensities(sm model.SequencingModel, dt model.DyeTrack) []float64 {
	out := make([]float64, dt.T*dt.C)
	for t := 0; t < dt.T; t++ {
		for c := 0; c < dt.C; c++ {
			out[t*dt.C+c] = sm.Channels[c].Mu * float64(dt.At(t, c))
		}
	}
	return out
}

func (c *NN) scoreMap(r model.Radiometry) (map[int]float64, float64) {
	neighbors := c.tree.Query(append([]float64(nil), r.Intensities...), c.k)
	idScore := make(map[int]float64)
	var total float64
	for _, nb := range neighbors {
		weight := math.Exp(-nb.Dist / c.twoSigSq)
		for _, src := range c.dyeTracks[nb.Index].Source {
			total += weight * float64(src.Hits)
			idScore[src.ID] += weight * float64(src.Hits) / float64(src.Count)
		}
	}
	return idScore, total
}

// ClassifyOne returns the single best-scoring peptide id.
func (c *NN) ClassifyOne(r model.Radiometry) model.ScoredClassification {
	idScore, total := c.scoreMap(r)
	bestID := -1
	bestScore := -1.0
	for id, score := range idScore {
		if score > bestScore {
			bestScore = score
			bestID = id
		}
	}
	if bestID == -1 {
		return model.NewScoredClassificationSafe(-1, 0, total)
	}
	return model.NewScoredClassificationSafe(bestID, bestScore, total)
}

// ClassifyShortlist returns the top h scoring peptide ids, sorted by
// descending score -- the Shortlist that classify.Hybrid consumes.
func (c *NN) ClassifyShortlist(r model.Radiometry, h int) []model.ScoredClassification {
	idScore, total := c.scoreMap(r)
	list := make([]model.ScoredClassification, 0, len(idScore))
	for id, score := range idScore {
		list = append(list, model.NewScoredClassificationSafe(id, score, total))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Score > list[j].Score })
	if len(list) > h {
		list = list[:h]
	}
	return list
}

// Classify scores every radiometry, preserving input order.
func (c *NN) Classify(radiometries []model.Radiometry) []model.ScoredClassification {
	return runOrdered(len(radiometries), c.workers, func(i int) model.ScoredClassification {
		return c.ClassifyOne(radiometries[i])
	})
}
