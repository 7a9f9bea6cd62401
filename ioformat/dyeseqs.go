package ioformat

import (
	"fmt"
	"io"

	"github.com/fluoroseq-project/fluoroseq/model"
)

// ReadDyeSeqs reads the dye-sequences file format: a header line
// "numChannels numDyeSeqs" followed by one line per sequence,
// "dyeString\tpeptideCount\tid", grounded on dye-seqs-io.cc's
// read_dye_seqs (num_channels, num_dye_seqs, then per-entry dye string,
// peptide count, and id).
func ReadDyeSeqs(r io.Reader) ([]model.SourcedData[model.DyeSeq, model.SourceCount], int, error) {
	s := newLineScanner(r)
	header, ok := s.next()
	if !ok {
		return nil, 0, s.errf("missing header")
	}
	if err := requireFields(s, header, 2); err != nil {
		return nil, 0, err
	}
	numChannels, err := parseInt(s, header[0])
	if err != nil {
		return nil, 0, err
	}
	numDyeSeqs, err := parseInt(s, header[1])
	if err != nil {
		return nil, 0, err
	}

	out := make([]model.SourcedData[model.DyeSeq, model.SourceCount], 0, numDyeSeqs)
	for i := 0; i < numDyeSeqs; i++ {
		fields, ok := s.next()
		if !ok {
			return nil, 0, s.errf("expected %d dye sequences, got %d", numDyeSeqs, i)
		}
		if err := requireFields(s, fields, 3); err != nil {
			return nil, 0, err
		}
		seq, err := model.ParseDyeSeq(fields[0], numChannels)
		if err != nil {
			return nil, 0, s.errf("%v", err)
		}
		count, err := parseInt(s, fields[1])
		if err != nil {
			return nil, 0, err
		}
		id, err := parseInt(s, fields[2])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, model.SourcedData[model.DyeSeq, model.SourceCount]{
			Value:  seq,
			Source: model.SourceCount{ID: id, Count: count},
		})
	}
	return out, numChannels, nil
}

// WriteDyeSeqs writes the format ReadDyeSeqs parses.
func WriteDyeSeqs(w io.Writer, numChannels int, dyeSeqs []model.SourcedData[model.DyeSeq, model.SourceCount]) error {
	if _, err := fmt.Fprintf(w, "%d\t%d\n", numChannels, len(dyeSeqs)); err != nil {
		return err
	}
	for _, ds := range dyeSeqs {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\n", ds.Value.String(), ds.Source.Count, ds.Source.ID); err != nil {
			return err
		}
	}
	return nil
}
