package ioformat

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fluoroseq-project/fluoroseq/model"
)

// ReadRadiometries reads the radiometries file format: a three-line header
// "numTimesteps", "numChannels", "numRadiometries", then one
// tab-separated line of T*C intensities per radiometry, grounded on
// radiometries-io.cc's convert_radiometries_from_raw.
func ReadRadiometries(r io.Reader) ([]model.Radiometry, int, int, error) {
	s := newLineScanner(r)
	numTimesteps, err := readHeaderInt(s)
	if err != nil {
		return nil, 0, 0, err
	}
	numChannels, err := readHeaderInt(s)
	if err != nil {
		return nil, 0, 0, err
	}
	numRadiometries, err := readHeaderInt(s)
	if err != nil {
		return nil, 0, 0, err
	}

	cells := numTimesteps * numChannels
	out := make([]model.Radiometry, 0, numRadiometries)
	for i := 0; i < numRadiometries; i++ {
		fields, ok := s.next()
		if !ok {
			return nil, 0, 0, s.errf("expected %d radiometries, got %d", numRadiometries, i)
		}
		if err := requireFields(s, fields, cells); err != nil {
			return nil, 0, 0, err
		}
		rad := model.NewRadiometry(numTimesteps, numChannels)
		for j, field := range fields {
			v, err := parseFloat(s, field)
			if err != nil {
				return nil, 0, 0, err
			}
			rad.Intensities[j] = v
		}
		out = append(out, rad)
	}
	return out, numTimesteps, numChannels, nil
}

// WriteRadiometries writes the format ReadRadiometries parses, rendering
// every intensity with enough significant digits (17, via
// strconv.FormatFloat's 'g' verb) for an exact float64 round trip,
// matching radiometries-io.cc's std::setprecision(17).
func WriteRadiometries(w io.Writer, numTimesteps, numChannels int, radiometries []model.Radiometry) error {
	if _, err := fmt.Fprintf(w, "%d\n%d\n%d\n", numTimesteps, numChannels, len(radiometries)); err != nil {
		return err
	}
	for _, r := range radiometries {
		for j, v := range r.Intensities {
			if j > 0 {
				if _, err := io.WriteString(w, "\t"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, strconv.FormatFloat(v, 'g', 17, 64)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
