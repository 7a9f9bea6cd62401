package simulate

import (
	"math/rand"
	"testing"

	"github.com/fluoroseq-project/fluoroseq/model"
)

func TestDyeTracksRespectsMultiplicityAndDropsTrivial(t *testing.T) {
	sm := model.NewSequencingModel(1)
	sm.Channels[0] = model.ChannelModel{Mu: 1000, Sig: 0.16, BgSig: 40}
	seq := mustSeq(t, "0000", 1)
	seqs := []model.SourcedData[model.DyeSeq, model.SourceCount]{
		{Value: seq, Source: model.SourceCount{ID: 1, Count: 3}},
	}
	rng := rand.New(rand.NewSource(9))
	out := DyeTracks(sm, seqs, 4, 2, rng)
	// zero error rates: every draw nontrivial, so count*perPeptide results.
	if len(out) != 6 {
		t.Fatalf("len(out) = %d, want 6", len(out))
	}
	for _, o := range out {
		if o.Source.ID != 1 || o.Source.Count != 3 {
			t.Fatalf("unexpected source %+v", o.Source)
		}
	}
}

func TestRadiometriesAttemptsExactlyNumToGenerate(t *testing.T) {
	sm := model.NewSequencingModel(1)
	sm.Channels[0] = model.ChannelModel{Mu: 1000, Sig: 0.16, BgSig: 40}
	seq := mustSeq(t, "000", 1)
	seqs := []model.SourcedData[model.DyeSeq, model.SourceCount]{
		{Value: seq, Source: model.SourceCount{ID: 1, Count: 1}},
	}
	rng := rand.New(rand.NewSource(11))
	out := Radiometries(sm, seqs, 3, 10, rng)
	if len(out) > 10 {
		t.Fatalf("len(out) = %d, want <= 10", len(out))
	}
	if len(out) == 0 {
		t.Fatalf("expected at least one nontrivial radiometry with zero error rates")
	}
}
