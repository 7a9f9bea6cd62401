/*
Package ioformat reads and writes the on-disk formats used by
cmd/fluoroseq: dye sequences, dye tracks, radiometries, the per-radiometry
source-id ("Y") file, classification predictions, and fitted sequencing
models. Each format gets its own file, one Read/Write pair of free
functions per format, the way the teacher's io/fasta, io/genbank, and
io/gff packages are organized.

spec.md only specifies the wire formats; original_source's
cc_code/src/io/*.cc shows the field order and grouping this package
follows, rendered here as whitespace/tab-delimited text (dye-seqs,
dye-tracks, radiometries, Y file) and encoding/csv (predictions,
sequencing model) instead of raw C++ stream operators.
*/
package ioformat

import "fmt"

// FormatError reports a malformed input file. Line is the 1-indexed line
// on which the problem was found.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("ioformat: line %d: %s", e.Line, e.Msg)
}
