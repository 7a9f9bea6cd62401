package transition

import (
	"github.com/fluoroseq-project/fluoroseq/model"
	"github.com/fluoroseq-project/fluoroseq/tensor"
)

// Start builds the forward tensor's initial condition: all probability
// mass at cycle 0, concentrated on the single state whose per-channel dye
// counts match the error-free track's cycle-0 counts (every dye molecule
// present, before any Dud thinning is applied).
func Start(shape []int, track model.DyeTrack) *tensor.Tensor {
	t := tensor.New(shape)
	loc := make([]int, len(shape))
	for c := 0; c < track.C; c++ {
		loc[1+c] = track.At(0, c)
	}
	t.Set(loc, 1)
	return t
}

// Finish builds the backward tensor's initial condition: every state at the
// final Edman-cycle plane (axis 0 == shape[0]-1) has backward value 1,
// since the backward recursion terminates once every cycle has been
// accounted for and there is nothing left to condition on.
func Finish(shape []int) *tensor.Tensor {
	t := tensor.New(shape)
	last := shape[0] - 1
	iteratePlane(t, last, func(loc []int) {
		t.Set(loc, 1)
	})
	return t
}
