package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
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

// InputFingerprint identifies one exact analysis input set. Two runs with
// equal fingerprints and equal seeds must produce identical outputs.
type InputFingerprint Hash

func (f InputFingerprint) String() string { return Hash(f).String() }

// ComputeInputFingerprint hashes a scores-by-intervention map, a weight
// vector and the run parameters into a stable fingerprint. Interventions
// are sorted so map iteration order cannot leak into the hash.
func ComputeInputFingerprint(scores map[string][]float64, weights []float64, params string) InputFingerprint {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)

	var data strings.Builder
	for _, name := range names {
		data.WriteString(name)
		for _, s := range scores[name] {
			data.WriteString(fmt.Sprintf("%.12g,", s))
		}
	}
	data.WriteString("|w:")
	for _, w := range weights {
		data.WriteString(fmt.Sprintf("%.12g,", w))
	}
	data.WriteString("|p:")
	data.WriteString(params)

	return InputFingerprint(NewHash([]byte(data.String())))
}
