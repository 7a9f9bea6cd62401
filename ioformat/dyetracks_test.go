package ioformat

import (
	"bytes"
	"testing"

	"github.com/fluoroseq-project/fluoroseq/model"
)

func TestWriteReadDyeTracksRoundTrip(t *testing.T) {
	dt := model.DyeTrack{Counts: []int{2, 0, 1, 0, 0, 0}, T: 3, C: 2}
	in := []model.SourcedData[model.DyeTrack, model.SourceCountHitsList]{
		{
			Value: dt,
			Source: model.SourceCountHitsList{
				{ID: 0, Count: 3, Hits: 5},
				{ID: 1, Count: 1, Hits: 2},
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteDyeTracks(&buf, 3, 2, in); err != nil {
		t.Fatalf("WriteDyeTracks: %v", err)
	}

	out, numTimesteps, numChannels, err := ReadDyeTracks(&buf)
	if err != nil {
		t.Fatalf("ReadDyeTracks: %v", err)
	}
	if numTimesteps != 3 || numChannels != 2 {
		t.Fatalf("shape = (%d, %d), want (3, 2)", numTimesteps, numChannels)
	}
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if !out[0].Value.Equal(dt) {
		t.Fatalf("track = %+v, want %+v", out[0].Value.Counts, dt.Counts)
	}
	if len(out[0].Source) != 2 || out[0].Source[1].Hits != 2 {
		t.Fatalf("sources = %+v", out[0].Source)
	}
}

func TestReadDyeTracksSourceCountMismatch(t *testing.T) {
	_, _, _, err := ReadDyeTracks(bytes.NewBufferString("1\n1\n1\n5\t2\t0\t3\t5\n"))
	if err == nil {
		t.Fatal("expected error: row declares 2 sources but only has 1")
	}
}
