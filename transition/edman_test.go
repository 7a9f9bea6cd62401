package transition

import (
	"math"
	"testing"

	"github.com/fluoroseq-project/fluoroseq/model"
	"github.com/fluoroseq-project/fluoroseq/tensor"
)

func mustDyeSeq(t *testing.T, s string, numChannels int) model.DyeSeq {
	t.Helper()
	seq, err := model.ParseDyeSeq(s, numChannels)
	if err != nil {
		t.Fatalf("ParseDyeSeq(%q): %v", s, err)
	}
	return seq
}

func TestEdmanForwardConservesMassUnlabeled(t *testing.T) {
	seq := mustDyeSeq(t, "..", 1)
	track := model.FromDyeSeq(seq, 2, 1)
	e := NewEdman(0.1, seq, track)

	shape := []int{2, 1}
	in := tensor.New(shape)
	in.Values = []float64{1, 0}
	edmans := 0
	out := tensor.New(shape)
	e.Forward(in, &edmans, out)

	if edmans != 1 {
		t.Fatalf("edmans = %d, want 1", edmans)
	}
	if math.Abs(out.Sum()-1) > 1e-9 {
		t.Fatalf("Forward changed total mass: %v", out.Sum())
	}
}

func TestEdmanForwardConservesMassLabeled(t *testing.T) {
	seq := mustDyeSeq(t, "0.", 1)
	track := model.FromDyeSeq(seq, 2, 1)
	e := NewEdman(0.2, seq, track)

	// shape: 2 timesteps (T=2, so axis0 size 2), channel 0 dye counts 0..1.
	shape := []int{2, 2}
	in := tensor.New(shape)
	in.Set([]int{0, 1}, 1) // cycle 0, 1 dye present
	edmans := 0
	out := tensor.New(shape)
	e.Forward(in, &edmans, out)

	if math.Abs(out.Sum()-1) > 1e-9 {
		t.Fatalf("Forward changed total mass: %v", out.Sum())
	}
	// Failure branch: stays at cycle 0 with 1 dye, weight PFail.
	if got, want := out.At([]int{0, 1}), e.PFail; math.Abs(got-want) > 1e-9 {
		t.Fatalf("failure branch = %v, want %v", got, want)
	}
	// Success branch: the single dye is cleaved with certainty (d=1), so all
	// surviving mass moves to cycle 1 with 0 dyes left.
	if got, want := out.At([]int{1, 0}), 1-e.PFail; math.Abs(got-want) > 1e-9 {
		t.Fatalf("success branch (0 left) = %v, want %v", got, want)
	}
	if got := out.At([]int{1, 1}); math.Abs(got) > 1e-9 {
		t.Fatalf("success branch (1 left) = %v, want 0", got)
	}
}

func TestEdmanForwardBackwardDuality(t *testing.T) {
	seq := mustDyeSeq(t, "00", 1)
	track := model.FromDyeSeq(seq, 3, 1)
	e := NewEdman(0.15, seq, track)

	shape := []int{3, 3} // T=3 timesteps' worth of planes, up to 2 dyes per channel
	in := tensor.New(shape)
	in.Set([]int{0, 2}, 1)
	edmans := 0

	fwd := tensor.New(shape)
	e.Forward(in, &edmans, fwd)

	ones := tensor.New(shape)
	ones.Fill(1)
	edmansBack := 0
	back := tensor.New(shape)
	e.Backward(ones, &edmansBack, back)

	lhs := fwd.Sum()
	var rhs float64
	for i, v := range in.Values {
		rhs += v * back.Values[i]
	}
	if math.Abs(lhs-rhs) > 1e-9 {
		t.Fatalf("duality broken: sum(forward(in)) = %v, <in, backward(1)> = %v", lhs, rhs)
	}
}
