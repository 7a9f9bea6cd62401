package ioformat

import (
	"fmt"
	"io"
)

// ReadYFile reads the Y-file format: a header line with the count,
// followed by one source id per line, grounded on
// radiometries-io.cc's write_ys_raw.
func ReadYFile(r io.Reader) ([]int, error) {
	s := newLineScanner(r)
	n, err := readHeaderInt(s)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		fields, ok := s.next()
		if !ok {
			return nil, s.errf("expected %d ids, got %d", n, i)
		}
		if err := requireFields(s, fields, 1); err != nil {
			return nil, err
		}
		v, err := parseInt(s, fields[0])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// WriteYFile writes the format ReadYFile parses.
func WriteYFile(w io.Writer, ids []int) error {
	if _, err := fmt.Fprintf(w, "%d\n", len(ids)); err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := fmt.Fprintf(w, "%d\n", id); err != nil {
			return err
		}
	}
	return nil
}
