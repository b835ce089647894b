package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Fingerprint is the deterministic digest of a complete lab run.
type Fingerprint Hash

func (f Fingerprint) String() string { return Hash(f).String() }

// NewFingerprint creates a fingerprint from data
func NewFingerprint(data []byte) Fingerprint { return Fingerprint(NewHash(data)) }

// DeriveSeedWords hashes the given parts together with a base seed and
// returns two 64-bit words suitable for seeding a PCG stream. The same
// parts and base seed always yield the same words, so every named stream
// replays identically across runs and is independent of any other stream.
func DeriveSeedWords(baseSeed int64, parts ...string) (uint64, uint64) {
	h := sha256.New()
	var seedBytes [8]byte
	binary.BigEndian.PutUint64(seedBytes[:], uint64(baseSeed))
	h.Write(seedBytes[:])
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0}) // separator so ("ab","c") != ("a","bc")
	}
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8]), binary.BigEndian.Uint64(sum[8:16])
}

// ComputeRunFingerprint folds the run identity and per-artifact digests
// into a single replayable fingerprint.
func ComputeRunFingerprint(runID RunID, seed int64, artifactDigests []string) Fingerprint {
	var data strings.Builder
	data.WriteString(runID.String())
	data.WriteString(fmt.Sprintf("|seed=%d", seed))
	for _, d := range artifactDigests {
		data.WriteString("|")
		data.WriteString(d)
	}
	return NewFingerprint([]byte(data.String()))
}
