package ioformat

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/fluoroseq-project/fluoroseq/model"
)

// WritePredictions writes one CSV row per classification result --
// radiometry index, winning peptide id, and adjusted score -- under the
// header "radmat_iz,best_pep_iz,best_pep_score", grounded on
// scored-classifications-io.cc's write_scored_classifications_raw.
func WritePredictions(w io.Writer, results []model.ScoredClassification) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"radmat_iz", "best_pep_iz", "best_pep_score"}); err != nil {
		return err
	}
	for i, r := range results {
		row := []string{
			strconv.Itoa(i),
			strconv.Itoa(r.ID),
			strconv.FormatFloat(r.AdjustedScore(), 'g', 17, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
