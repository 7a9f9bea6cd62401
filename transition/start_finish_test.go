package transition

import (
	"testing"

	"github.com/fluoroseq-project/fluoroseq/model"
)

func TestStartPlacesMassAtInitialCounts(t *testing.T) {
	seq := mustDyeSeq(t, "01", 2)
	track := model.FromDyeSeq(seq, 3, 2)
	shape := []int{3, 2, 2} // T=3, up to 1 dye in each of 2 channels
	tn := Start(shape, track)

	if got, want := tn.Sum(), 1.0; got != want {
		t.Fatalf("Start tensor sums to %v, want %v", got, want)
	}
	loc := []int{0, track.At(0, 0), track.At(0, 1)}
	if got := tn.At(loc); got != 1 {
		t.Fatalf("Start tensor at initial counts = %v, want 1", got)
	}
}

func TestFinishFillsLastPlaneOnly(t *testing.T) {
	shape := []int{3, 2}
	tn := Finish(shape)
	for i := 0; i < shape[1]; i++ {
		if got := tn.At([]int{2, i}); got != 1 {
			t.Fatalf("Finish plane 2 cell %d = %v, want 1", i, got)
		}
	}
	for i := 0; i < shape[1]; i++ {
		if got := tn.At([]int{0, i}); got != 0 {
			t.Fatalf("Finish plane 0 cell %d = %v, want 0", i, got)
		}
	}
}
