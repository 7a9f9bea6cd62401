package ioformat

import "golang.org/x/crypto/blake2b"

// Checksum returns the blake2b-256 digest of data, letting a caller verify
// a file it just wrote reads back byte for byte -- kept alongside blake3
// the way the teacher's hash.go keeps multiple hash backends behind one
// dispatch function, here used as the write-then-verify check cmd/fluoroseq's
// simulate subcommands run under -verify.
func Checksum(data []byte) [32]byte {
	return blake2b.Sum256(data)
}
