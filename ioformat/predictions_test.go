package ioformat

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fluoroseq-project/fluoroseq/model"
)

func TestWritePredictionsHeaderAndRows(t *testing.T) {
	results := []model.ScoredClassification{
		model.NewScoredClassificationSafe(2, 0.5, 1.0),
		model.NewScoredClassificationSafe(-1, 0, 0),
	}
	var buf bytes.Buffer
	if err := WritePredictions(&buf, results); err != nil {
		t.Fatalf("WritePredictions: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "radmat_iz,best_pep_iz,best_pep_score" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "0,2,0.5" {
		t.Fatalf("row 0 = %q, want \"0,2,0.5\"", lines[1])
	}
	if lines[2] != "1,-1,0" {
		t.Fatalf("row 1 = %q, want \"1,-1,0\"", lines[2])
	}
}
