/*
Package transition implements the structured linear operators the HMM
forward/backward sweep is built from: per-channel binomial thinning
(bleach, dud), global detachment, per-timestep Edman shift with stochastic
failure, and per-timestep Gaussian/log-normal emission. Every operator
works one tensor.Vector at a time, restricted to the cells that can hold
mass given the number of completed Edman cycles.
*/
package transition

import "github.com/fluoroseq-project/fluoroseq/tensor"

// forEachSlicePair calls fn once per pair of tensor.Vector obtained by
// fixing the same coordinates on in and out (which must share shape) along
// every axis except axis. When axis != 0, axis-0 is restricted to
// [0, edmans] -- the only coordinates that can hold mass.
func forEachSlicePair(in, out *tensor.Tensor, axis, edmans int, fn func(inV, outV tensor.Vector)) {
	order := in.Order()
	fixed := make([]int, order)
	var rec func(a int)
	rec = func(a int) {
		if a == order {
			fn(tensor.Slice(in, axis, fixed), tensor.Slice(out, axis, fixed))
			return
		}
		if a == axis {
			rec(a + 1)
			return
		}
		limit := in.Shape[a]
		if a == 0 {
			limit = edmans + 1
		}
		for i := 0; i < limit; i++ {
			fixed[a] = i
			rec(a + 1)
		}
	}
	rec(0)
}

// forEachCell calls fn once per coordinate tuple of t restricted to axis-0
// in [0, edmans], passing the flat storage index of that cell. This is the
// "every live cell" walk used by Detach and Emission.
func forEachCell(t *tensor.Tensor, edmans int, fn func(loc []int, idx int)) {
	it := tensor.NewRestrictedIterator(t, edmans)
	for it.Next() {
		fn(it.Loc(), it.Index())
	}
}
