package model

import (
	"encoding/binary"

	"lukechampine.com/blake3"
)

// DyeTrack holds the expected dye counts of a peptide across T timesteps and
// C channels, row-major: entry (t, c) is at index t*C+c. Values are
// non-negative and, when all chemistry error rates are <= 1, never increase
// with t.
type DyeTrack struct {
	Counts []int
	T, C   int
}

// NewDyeTrack allocates a zeroed DyeTrack of the given shape.
func NewDyeTrack(t, c int) DyeTrack {
	return DyeTrack{Counts: make([]int, t*c), T: t, C: c}
}

// At returns the dye count at timestep t, channel c.
func (d DyeTrack) At(t, c int) int {
	return d.Counts[t*d.C+c]
}

// Set writes the dye count at timestep t, channel c.
func (d DyeTrack) Set(t, c, v int) {
	d.Counts[t*d.C+c] = v
}

// Equal reports whether two dye tracks have the same shape and counts.
func (d DyeTrack) Equal(o DyeTrack) bool {
	if d.T != o.T || d.C != o.C || len(d.Counts) != len(o.Counts) {
		return false
	}
	for i, v := range d.Counts {
		if o.Counts[i] != v {
			return false
		}
	}
	return true
}

// Hash returns a stable 64-bit hash of the dye track's shape and counts,
// used to bucket dye tracks for dedup. Blake3 is used the same way the
// teacher repo hashes sequences for identity: fast, non-cryptographic use,
// stable across runs and platforms (unlike Go's map seed-randomized
// hash/maphash).
func (d DyeTrack) Hash() uint64 {
	h := blake3.New(32, nil)
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(d.T))
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(d.C))
	h.Write(hdr[:])
	buf := make([]byte, 8*len(d.Counts))
	for i, v := range d.Counts {
		binary.LittleEndian.PutUint64(buf[i*8:i*8+8], uint64(v))
	}
	h.Write(buf)
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:8])
}

// FromDyeSeq deterministically derives the dye track of dyeSeq over t
// timesteps and c channels, assuming every Edman cycle succeeds and nothing
// bleaches, duds, or detaches. Timestep i holds the per-channel counts of
// residues at positions [i, len) of dyeSeq (i.e. after i successful
// cleavages).
func FromDyeSeq(seq DyeSeq, t, c int) DyeTrack {
	dt := NewDyeTrack(t, c)
	for timestep := 0; timestep < t; timestep++ {
		for pos := timestep; pos < seq.Len(); pos++ {
			ch := seq.At(pos)
			if ch >= 0 && ch < c {
				dt.Set(timestep, ch, dt.At(timestep, ch)+1)
			}
		}
	}
	return dt
}
