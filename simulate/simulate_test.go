package simulate

import (
	"math/rand"
	"testing"

	"github.com/fluoroseq-project/fluoroseq/model"
)

func testModel() model.SequencingModel {
	sm := model.NewSequencingModel(1)
	sm.PEdmanFailure = 0.1
	sm.PDetach = 0.05
	sm.Channels[0] = model.ChannelModel{PBleach: 0.05, PDud: 0.07, Mu: 1000, Sig: 0.16, BgSig: 40}
	return sm
}

func mustSeq(t *testing.T, s string, c int) model.DyeSeq {
	t.Helper()
	seq, err := model.ParseDyeSeq(s, c)
	if err != nil {
		t.Fatalf("ParseDyeSeq(%q): %v", s, err)
	}
	return seq
}

func TestDyeTrackNeverIncreases(t *testing.T) {
	sm := testModel()
	seq := mustSeq(t, "0000000000", 1)
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		track := DyeTrack(sm, seq, 8, rng)
		for c := 0; c < track.C; c++ {
			prev := track.At(0, c)
			for tt := 1; tt < track.T; tt++ {
				cur := track.At(tt, c)
				if cur > prev {
					t.Fatalf("dye count increased at t=%d: %d -> %d", tt, prev, cur)
				}
				prev = cur
			}
		}
	}
}

func TestDyeTrackZeroErrorRatesIsDeterministic(t *testing.T) {
	sm := model.NewSequencingModel(2)
	sm.Channels[0] = model.ChannelModel{Mu: 1000, Sig: 0.16, BgSig: 40}
	sm.Channels[1] = model.ChannelModel{Mu: 1000, Sig: 0.16, BgSig: 40}
	seq := mustSeq(t, "0011", 2)
	rng := rand.New(rand.NewSource(2))
	track := DyeTrack(sm, seq, 5, rng)
	want := model.FromDyeSeq(seq, 5, 2)
	if !track.Equal(want) {
		t.Fatalf("track = %+v, want %+v", track.Counts, want.Counts)
	}
}

func TestRadiometryZerosWhereTrackIsZero(t *testing.T) {
	sm := testModel()
	seq := mustSeq(t, "0", 1)
	rng := rand.New(rand.NewSource(3))
	// A sequence with one labeled residue must eventually detach or
	// exhaust; every post-exhaustion cell must read exactly 0.
	r := Radiometry(sm, seq, 40, rng)
	for tt := 30; tt < 40; tt++ {
		if r.At(tt, 0) != 0 {
			t.Fatalf("expected intensity at t=%d to settle to 0 well after the single cycle resolves, got %v", tt, r.At(tt, 0))
		}
	}
}
