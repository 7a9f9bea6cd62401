package simulate

import (
	"math/rand"

	"github.com/fluoroseq-project/fluoroseq/model"
)

// Weighted pairs a value with its relative sampling weight.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// Sampler draws indices from a fixed weighted distribution in O(1) per
// draw after an O(n) setup, via Vose's alias method. Nothing in the
// corpus ships a weighted sampler (bebop-poly/random only samples
// uniformly over an alphabet), so this is a from-scratch implementation
// of the same family of algorithm transform/codon-style weighted pickers
// belong to.
type Sampler struct {
	prob  []float64
	alias []int
}

// NewSampler builds a Sampler over weights, which must be non-negative
// and sum to a positive total.
func NewSampler(weights []float64) *Sampler {
	n := len(weights)
	s := &Sampler{prob: make([]float64, n), alias: make([]int, n)}
	if n == 0 {
		return s
	}
	var total float64
	for _, w := range weights {
		total += w
	}
	scaled := make([]float64, n)
	var small, large []int
	for i, w := range weights {
		scaled[i] = w * float64(n) / total
		if scaled[i] < 1 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}
	for len(small) > 0 && len(large) > 0 {
		l := small[len(small)-1]
		small = small[:len(small)-1]
		g := large[len(large)-1]
		large = large[:len(large)-1]
		s.prob[l] = scaled[l]
		s.alias[l] = g
		scaled[g] = scaled[g] + scaled[l] - 1
		if scaled[g] < 1 {
			small = append(small, g)
		} else {
			large = append(large, g)
		}
	}
	for _, g := range large {
		s.prob[g] = 1
	}
	for _, l := range small {
		s.prob[l] = 1
	}
	return s
}

// Sample draws one index in [0, n) according to the sampler's weights.
func (s *Sampler) Sample(rng *rand.Rand) int {
	n := len(s.prob)
	i := rng.Intn(n)
	if rng.Float64() < s.prob[i] {
		return i
	}
	return s.alias[i]
}

// SampleSeq draws one DyeSeq from seqs, weighted by each entry's Weight
// (typically its peptide multiplicity). Supplemented from
// cc_code/src/main/simulate/{dt,rad}-main.cc, which drive the simulator
// from a weighted dye-sequence set rather than a single sequence.
func SampleSeq(seqs []Weighted[model.DyeSeq], rng *rand.Rand) model.DyeSeq {
	weights := make([]float64, len(seqs))
	for i, s := range seqs {
		weights[i] = s.Weight
	}
	idx := NewSampler(weights).Sample(rng)
	return seqs[idx].Value
}
