package transition

import (
	"math"
	"testing"

	"github.com/fluoroseq-project/fluoroseq/model"
	"github.com/fluoroseq-project/fluoroseq/tensor"
)

func TestEmissionForwardScalesByDensity(t *testing.T) {
	channels := []model.ChannelModel{{Mu: 1, Sig: 0.1, BgSig: 0.05, Kind: model.Gaussian}}
	r := model.NewRadiometry(1, 1)
	r.Set(0, 0, 1.0)
	e := NewEmission(channels, r, 0)

	shape := []int{1, 2}
	in := tensor.New(shape)
	in.Set([]int{0, 0}, 0.5)
	in.Set([]int{0, 1}, 0.5)
	edmans := 0
	out := tensor.New(shape)
	e.Forward(in, &edmans, out)

	want0 := 0.5 * channels[0].Density(0, 1.0, 0)
	want1 := 0.5 * channels[0].Density(1, 1.0, 0)
	if math.Abs(out.At([]int{0, 0})-want0) > 1e-12 {
		t.Fatalf("cell 0 = %v, want %v", out.At([]int{0, 0}), want0)
	}
	if math.Abs(out.At([]int{0, 1})-want1) > 1e-12 {
		t.Fatalf("cell 1 = %v, want %v", out.At([]int{0, 1}), want1)
	}
	// A state with 1 dye should be far more likely to emit intensity 1.0
	// than a state with 0 dyes, given tight Sig/BgSig.
	if want1 <= want0 {
		t.Fatalf("expected 1-dye state denser than 0-dye state at x=1.0: %v vs %v", want1, want0)
	}
}

func TestEmissionForwardBackwardAgree(t *testing.T) {
	// Emission is diagonal and self-adjoint: Forward and Backward must
	// produce identical results on the same input.
	channels := []model.ChannelModel{{Mu: 1, Sig: 0.2, BgSig: 0.1, Kind: model.Gaussian}}
	r := model.NewRadiometry(1, 1)
	r.Set(0, 0, 0.8)
	e := NewEmission(channels, r, 0)

	shape := []int{1, 3}
	in := tensor.New(shape)
	in.Values = []float64{0.2, 0.3, 0.5}
	edmans := 0

	fwd := tensor.New(shape)
	e.Forward(in, &edmans, fwd)
	back := tensor.New(shape)
	e.Backward(in, &edmans, back)

	for i := range fwd.Values {
		if fwd.Values[i] != back.Values[i] {
			t.Fatalf("Forward/Backward disagree at %d: %v vs %v", i, fwd.Values[i], back.Values[i])
		}
	}
}

func TestEmissionCutoffPrunesFarStates(t *testing.T) {
	channels := []model.ChannelModel{{Mu: 1, Sig: 0.01, BgSig: 0.01, Kind: model.Gaussian}}
	if d := channels[0].Density(0, 100, 5); d != 0 {
		t.Fatalf("expected density pruned to 0 far from mean, got %v", d)
	}
}
