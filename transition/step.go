package transition

import (
	"github.com/fluoroseq-project/fluoroseq/fitstat"
	"github.com/fluoroseq-project/fluoroseq/tensor"
)

// Step is the common interface every structured transition operator
// satisfies, letting package hmm walk a fixed pipeline of heterogeneous
// operators without a type switch. edmans is always the number of
// completed Edman cycles *before* the step runs; only Edman itself
// advances it.
type Step interface {
	Forward(in *tensor.Tensor, edmans *int, out *tensor.Tensor)
	Backward(in *tensor.Tensor, edmans *int, out *tensor.Tensor)
	AccumulateFit(forward, bNext *tensor.Tensor, edmans int, probability float64, acc *fitstat.Accumulator)
}

var (
	_ Step = (*Binomial)(nil)
	_ Step = (*Detach)(nil)
	_ Step = (*Edman)(nil)
	_ Step = (*Emission)(nil)
)
