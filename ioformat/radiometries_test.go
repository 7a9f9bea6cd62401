package ioformat

import (
	"bytes"
	"testing"

	"github.com/fluoroseq-project/fluoroseq/model"
)

func TestWriteReadRadiometriesRoundTrip(t *testing.T) {
	r1 := model.NewRadiometry(2, 2)
	r1.Set(0, 0, 1234.5678901234567)
	r1.Set(0, 1, 0)
	r1.Set(1, 0, 0)
	r1.Set(1, 1, 98.6)
	in := []model.Radiometry{r1}

	var buf bytes.Buffer
	if err := WriteRadiometries(&buf, 2, 2, in); err != nil {
		t.Fatalf("WriteRadiometries: %v", err)
	}

	out, numTimesteps, numChannels, err := ReadRadiometries(&buf)
	if err != nil {
		t.Fatalf("ReadRadiometries: %v", err)
	}
	if numTimesteps != 2 || numChannels != 2 {
		t.Fatalf("shape = (%d, %d), want (2, 2)", numTimesteps, numChannels)
	}
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0].At(0, 0) != 1234.5678901234567 {
		t.Fatalf("At(0,0) = %v, want exact round trip at 17 significant digits", out[0].At(0, 0))
	}
	if out[0].At(1, 1) != 98.6 {
		t.Fatalf("At(1,1) = %v, want 98.6", out[0].At(1, 1))
	}
}

func TestReadRadiometriesWrongFieldCount(t *testing.T) {
	_, _, _, err := ReadRadiometries(bytes.NewBufferString("2\n2\n1\n1.0\t2.0\t3.0\n"))
	if err == nil {
		t.Fatal("expected error: row has 3 fields, want 4")
	}
}
