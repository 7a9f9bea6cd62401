package transition

import (
	"math"
	"testing"

	"github.com/fluoroseq-project/fluoroseq/fitstat"
	"github.com/fluoroseq-project/fluoroseq/tensor"
)

func TestDetachForwardConservesMass(t *testing.T) {
	d := NewDetach(0.25)
	shape := []int{2, 3}
	in := tensor.New(shape)
	in.Values = []float64{0.1, 0.2, 0.15, 0, 0, 0}
	edmans := 0
	out := tensor.New(shape)
	d.Forward(in, &edmans, out)
	if math.Abs(out.Sum()-in.Sum()) > 1e-9 {
		t.Fatalf("Forward changed total mass: %v -> %v", in.Sum(), out.Sum())
	}
}

func TestDetachForwardRoutesToCorner(t *testing.T) {
	d := NewDetach(0.5)
	shape := []int{1, 3}
	in := tensor.New(shape)
	in.Values = []float64{0.2, 0.3, 0.1}
	total := in.Sum()
	edmans := 0
	out := tensor.New(shape)
	d.Forward(in, &edmans, out)

	wantCorner := in.Values[0]*(1-d.PDetach) + d.PDetach*total
	if math.Abs(out.Values[0]-wantCorner) > 1e-9 {
		t.Fatalf("corner = %v, want %v", out.Values[0], wantCorner)
	}
	wantOther := in.Values[1] * (1 - d.PDetach)
	if math.Abs(out.Values[1]-wantOther) > 1e-9 {
		t.Fatalf("cell 1 = %v, want %v", out.Values[1], wantOther)
	}
}

func TestDetachAccumulateFitZeroProbabilityNoop(t *testing.T) {
	d := NewDetach(0.3)
	shape := []int{1, 2}
	forward := tensor.New(shape)
	bNext := tensor.New(shape)
	acc := fitstat.New(1)
	d.AccumulateFit(forward, bNext, 0, 0, acc)
	if acc.Detach.Event != 0 || acc.Detach.Opportunity != 0 {
		t.Fatalf("expected no accumulation when probability is 0, got %+v", acc.Detach)
	}
}
