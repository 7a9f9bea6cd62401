package transition

import (
	"github.com/fluoroseq-project/fluoroseq/fitstat"
	"github.com/fluoroseq-project/fluoroseq/tensor"
)

// BinomialKind distinguishes the two uses of the binomial transition: Dud
// thins the initial dye count once before the first emission; Bleach thins
// it once per subsequent cycle. They share the same math, differing only
// in which accumulator slot AccumulateFit writes into.
type BinomialKind int

const (
	Dud BinomialKind = iota
	Bleach
)

// Binomial models independent per-dye-molecule loss on channel Channel:
// each of the n dye molecules present survives with probability p = 1-Q,
// is lost with probability Q. The [n][k] table of C(n,k)*p^k*Q^(n-k)
// entries is grown lazily via Reserve as larger n are seen.
type Binomial struct {
	Channel int
	Kind    BinomialKind
	Q       float64
	p       float64
	table   [][]float64 // table[n][k], k <= n
}

// NewBinomial constructs a Binomial transition for the given channel and
// failure (loss) probability q.
func NewBinomial(channel int, kind BinomialKind, q float64) *Binomial {
	b := &Binomial{Channel: channel, Kind: kind, Q: q, p: 1 - q}
	b.table = [][]float64{{1}} // B[0][0] = 1
	return b
}

// Reserve grows the triangular table so that table[n] is valid for all
// n <= maxN. Must be called to the global maximum dye count across every
// candidate sequence before concurrent classification workers start
// (package classify does this); it must never be called concurrently.
func (b *Binomial) Reserve(maxN int) {
	for n := len(b.table); n <= maxN; n++ {
		row := make([]float64, n+1)
		prev := b.table[n-1]
		row[0] = prev[0] * b.Q
		for k := 1; k < n; k++ {
			row[k] = prev[k-1]*b.p + prev[k]*b.Q
		}
		row[n] = prev[n-1] * b.p
		b.table = append(b.table, row)
	}
}

func (b *Binomial) maxN() int {
	return len(b.table) - 1
}

// forwardVector maps mass from "before" counts n to "after" counts k:
// out[k] = sum_{n=k}^{N-1} table[n][k] * in[n]. Safe to call with in and
// out sharing storage: ascending k only overwrites positions whose old
// value has already been consumed by every k' <= k that needed it.
func (b *Binomial) forwardVector(in, out tensor.Vector) {
	n := in.Len()
	if n-1 > b.maxN() {
		b.Reserve(n - 1)
	}
	for k := 0; k < n; k++ {
		var s float64
		for nn := k; nn < n; nn++ {
			s += b.table[nn][k] * in.At(nn)
		}
		out.Set(k, s)
	}
}

// backwardVector is the transpose: out[n] = sum_{k=0}^{n} table[n][k] *
// in[k]. Safe in-place when iterated with n descending, for the same
// reason forwardVector is safe ascending.
func (b *Binomial) backwardVector(in, out tensor.Vector) {
	n := in.Len()
	if n-1 > b.maxN() {
		b.Reserve(n - 1)
	}
	for nn := n - 1; nn >= 0; nn-- {
		var s float64
		for k := 0; k <= nn; k++ {
			s += b.table[nn][k] * in.At(k)
		}
		out.Set(nn, s)
	}
}

// Forward applies the binomial thinning independently to every vector
// slice along axis 1+Channel, restricted to axis-0 in [0, *edmans].
// *edmans is read only -- this operator doesn't advance the Edman clock.
// in and out may be the same tensor.
func (b *Binomial) Forward(in *tensor.Tensor, edmans *int, out *tensor.Tensor) {
	axis := 1 + b.Channel
	forEachSlicePair(in, out, axis, *edmans, func(inV, outV tensor.Vector) {
		b.forwardVector(inV, outV)
	})
}

// Backward applies the transpose independently to every slice. in and out
// may be the same tensor.
func (b *Binomial) Backward(in *tensor.Tensor, edmans *int, out *tensor.Tensor) {
	axis := 1 + b.Channel
	forEachSlicePair(in, out, axis, *edmans, func(inV, outV tensor.Vector) {
		b.backwardVector(inV, outV)
	})
}

// AccumulateFit adds this operator's contribution to the sufficient
// statistics for its q parameter, given the forward tensor at this step and
// the backward tensor at the following step. For every cell-slice, the
// pairwise products f[n]*table[n][k]*bNext[k] give the joint probability
// of n dyes before thinning and k dyes after; weighting by n (opportunity)
// and n-k (event, i.e. dyes actually lost) and normalizing by probability
// (the forward/backward duality constant) yields the sufficient statistics
// for q.
func (b *Binomial) AccumulateFit(forward, bNext *tensor.Tensor, edmans int, probability float64, acc *fitstat.Accumulator) {
	if probability == 0 {
		return
	}
	axis := 1 + b.Channel
	var slot *fitstat.EventOpportunity
	switch b.Kind {
	case Dud:
		slot = &acc.Channels[b.Channel].Dud
	default:
		slot = &acc.Channels[b.Channel].Bleach
	}
	forEachSlicePair(forward, bNext, axis, edmans, func(f, bv tensor.Vector) {
		n := f.Len()
		if n-1 > b.maxN() {
			b.Reserve(n - 1)
		}
		for nn := 0; nn < n; nn++ {
			fn := f.At(nn)
			if fn == 0 {
				continue
			}
			for k := 0; k <= nn; k++ {
				joint := fn * b.table[nn][k] * bv.At(k) / probability
				// Every one of the nn dyes present before this step had
				// the opportunity to bleach/dud; nn-k of them actually
				// did.
				slot.Opportunity += joint * float64(nn)
				slot.Event += joint * float64(nn-k)
			}
		}
	})
}
