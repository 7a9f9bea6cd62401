package fit

import (
	"bytes"

	"github.com/fluoroseq-project/fluoroseq/ioformat"
	"github.com/fluoroseq-project/fluoroseq/model"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// ReportDiff renders a human-readable diff between prior's and fitted's
// CSV parameter rows (the same rows ioformat.WriteSequencingModel would
// write), so an operator running `fluoroseq fit` can see at a glance which
// parameters moved and by how much.
func ReportDiff(prior, fitted model.SequencingModel) (string, error) {
	var priorBuf, fittedBuf bytes.Buffer
	if err := ioformat.WriteSequencingModel(&priorBuf, []model.SequencingModel{prior}); err != nil {
		return "", err
	}
	if err := ioformat.WriteSequencingModel(&fittedBuf, []model.SequencingModel{fitted}); err != nil {
		return "", err
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(priorBuf.String(), fittedBuf.String(), false)
	return dmp.DiffPrettyText(diffs), nil
}
