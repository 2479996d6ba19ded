package models

import (
	"encoding/hex"
)

// DigestSize is the digest length in bytes (256 bits).
const DigestSize = 32

// Digest is a fixed-size cryptographic fingerprint of a file's full
// byte content. Two files with equal digests are treated as identical
// content; this is a probabilistic guarantee, not an absolute one.
type Digest [DigestSize]byte

// String returns the lowercase hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// HashOutcome is the result of hashing one FileEntry. Exactly one
// outcome is produced per entry submitted to the worker pool: either a
// digest or an error, never both.
type HashOutcome struct {
	Entry  FileEntry
	Digest Digest
	Err    error
}

// Failed reports whether hashing the entry failed.
func (o HashOutcome) Failed() bool {
	return o.Err != nil
}
