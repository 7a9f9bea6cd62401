package ioformat

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/fluoroseq-project/fluoroseq/model"
)

// channelFieldsPerChannel is the number of CSV columns each channel
// contributes: p_bleach, p_dud, mu, sig, bg_sig, kind.
const channelFieldsPerChannel = 6

// fixedFields is the number of CSV columns preceding the per-channel
// columns: p_edman_failure, p_detach.
const fixedFields = 2

// kindToString and kindFromString round-trip model.EmissionKind through
// the "kind" column -- without this column every channel read back from
// disk silently became model.Gaussian (the zero value), regardless of what
// was written.
func kindToString(k model.EmissionKind) string {
	if k == model.LogNormal {
		return "lognormal"
	}
	return "gaussian"
}

func kindFromString(s string) (model.EmissionKind, error) {
	switch s {
	case "gaussian", "":
		return model.Gaussian, nil
	case "lognormal":
		return model.LogNormal, nil
	default:
		return 0, fmt.Errorf("unknown emission kind %q", s)
	}
}

// ReadSequencingModel reads one or more fitted sequencing models from a
// CSV file with header "p_edman_failure,p_detach,ch0:p_bleach,..." --
// one row per model, one group of 6 columns per channel -- grounded on
// params-io.cc's write_params, generalized here into a reader since the
// original never needed one (it only ever wrote parameters out).
func ReadSequencingModel(r io.Reader) ([]model.SequencingModel, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, &FormatError{Line: 1, Msg: "missing header"}
	}
	if err != nil {
		return nil, err
	}
	if len(header) < fixedFields || (len(header)-fixedFields)%channelFieldsPerChannel != 0 {
		return nil, &FormatError{Line: 1, Msg: fmt.Sprintf("malformed header: %d columns", len(header))}
	}
	numChannels := (len(header) - fixedFields) / channelFieldsPerChannel

	var out []model.SequencingModel
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(row) != len(header) {
			return nil, &FormatError{Line: line, Msg: fmt.Sprintf("expected %d columns, got %d", len(header), len(row))}
		}
		sm := model.NewSequencingModel(numChannels)
		parseField := func(i int) (float64, error) {
			v, err := strconv.ParseFloat(row[i], 64)
			if err != nil {
				return 0, &FormatError{Line: line, Msg: fmt.Sprintf("expected float, got %q", row[i])}
			}
			return v, nil
		}
		sm.PEdmanFailure, err = parseField(0)
		if err != nil {
			return nil, err
		}
		sm.PDetach, err = parseField(1)
		if err != nil {
			return nil, err
		}
		for c := 0; c < numChannels; c++ {
			base := fixedFields + c*channelFieldsPerChannel
			pBleach, err := parseField(base)
			if err != nil {
				return nil, err
			}
			pDud, err := parseField(base + 1)
			if err != nil {
				return nil, err
			}
			mu, err := parseField(base + 2)
			if err != nil {
				return nil, err
			}
			sig, err := parseField(base + 3)
			if err != nil {
				return nil, err
			}
			bgSig, err := parseField(base + 4)
			if err != nil {
				return nil, err
			}
			kind, err := kindFromString(row[base+5])
			if err != nil {
				return nil, &FormatError{Line: line, Msg: err.Error()}
			}
			sm.Channels[c] = model.ChannelModel{
				PBleach: pBleach,
				PDud:    pDud,
				Mu:      mu,
				Sig:     sig,
				BgSig:   bgSig,
				Kind:    kind,
			}
		}
		out = append(out, sm)
	}
	return out, nil
}

// WriteSequencingModel writes the format ReadSequencingModel parses.
func WriteSequencingModel(w io.Writer, models []model.SequencingModel) error {
	cw := csv.NewWriter(w)
	if len(models) == 0 {
		return nil
	}
	numChannels := len(models[0].Channels)
	header := make([]string, 0, fixedFields+numChannels*channelFieldsPerChannel)
	header = append(header, "p_edman_failure", "p_detach")
	for c := 0; c < numChannels; c++ {
		header = append(header,
			fmt.Sprintf("ch%d:p_bleach", c),
			fmt.Sprintf("ch%d:p_dud", c),
			fmt.Sprintf("ch%d:mu", c),
			fmt.Sprintf("ch%d:sig", c),
			fmt.Sprintf("ch%d:bg_sig", c),
			fmt.Sprintf("ch%d:kind", c),
		)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, sm := range models {
		row := make([]string, 0, len(header))
		row = append(row,
			strconv.FormatFloat(sm.PEdmanFailure, 'g', 17, 64),
			strconv.FormatFloat(sm.PDetach, 'g', 17, 64),
		)
		for _, ch := range sm.Channels {
			row = append(row,
				strconv.FormatFloat(ch.PBleach, 'g', 17, 64),
				strconv.FormatFloat(ch.PDud, 'g', 17, 64),
				strconv.FormatFloat(ch.Mu, 'g', 17, 64),
				strconv.FormatFloat(ch.Sig, 'g', 17, 64),
				strconv.FormatFloat(ch.BgSig, 'g', 17, 64),
				kindToString(ch.Kind),
			)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
