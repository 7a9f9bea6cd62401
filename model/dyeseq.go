/*
Package model defines the domain types shared by every other package in
fluoroseq: dye sequences, dye tracks, radiometries, the sequencing model,
provenance-tagged ("sourced") data, and the final scored classification.

None of these types know how to read or write a file or how to run an HMM;
they are the plain data that the other packages operate on.
*/
package model

import (
	"fmt"
	"strings"
)

// DyeSeq is an immutable, ordered sequence of channel labels for a peptide.
// Each entry is either a channel index in [0, numChannels) or -1 for an
// unlabeled residue. DyeSeq is parsed from a string of digits and dots,
// with trailing dots trimmed, per the dye-sequence file format.
type DyeSeq struct {
	channels    []int
	numChannels int
}

// ParseDyeSeq parses a dye-sequence string such as "10.01111" into a DyeSeq.
// Each character must be a digit less than numChannels or a '.' (unlabeled).
// Trailing dots are trimmed, matching the on-disk representation: a dye
// sequence's length is its last labeled-or-unlabeled-but-meaningful residue.
func ParseDyeSeq(s string, numChannels int) (DyeSeq, error) {
	s = strings.TrimRight(s, ".")
	channels := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		r := s[i]
		if r == '.' {
			channels[i] = -1
			continue
		}
		if r < '0' || int(r-'0') >= numChannels {
			return DyeSeq{}, fmt.Errorf("model: invalid dye-seq character %q at position %d (numChannels=%d)", r, i, numChannels)
		}
		channels[i] = int(r - '0')
	}
	return DyeSeq{channels: channels, numChannels: numChannels}, nil
}

// Len returns the number of residues in the dye sequence.
func (d DyeSeq) Len() int {
	return len(d.channels)
}

// NumChannels returns the number of fluorescence channels this sequence was
// parsed against.
func (d DyeSeq) NumChannels() int {
	return d.numChannels
}

// At returns the channel label of residue i, or -1 if i is unlabeled or i is
// past the end of the sequence (both are "no dye here" for every downstream
// consumer).
func (d DyeSeq) At(i int) int {
	if i < 0 || i >= len(d.channels) {
		return -1
	}
	return d.channels[i]
}

// String renders the dye sequence back to its on-disk form. Trailing dots
// that ParseDyeSeq trimmed are not restored, so String returns the
// canonical (trimmed) form.
func (d DyeSeq) String() string {
	var b strings.Builder
	for _, c := range d.channels {
		if c < 0 {
			b.WriteByte('.')
		} else {
			b.WriteByte(byte('0' + c))
		}
	}
	return b.String()
}

// MaxDyeCount returns, for channel c, the number of residues labeled with
// that channel -- the maximum number of dye molecules of channel c that can
// ever be present on this peptide.
func (d DyeSeq) MaxDyeCount(c int) int {
	n := 0
	for _, ch := range d.channels {
		if ch == c {
			n++
		}
	}
	return n
}
