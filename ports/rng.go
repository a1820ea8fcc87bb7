package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic
// operations. Every stochastic analysis draws from a stream obtained
// here; there is no process-wide random state.
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a
	// named operation. The same (name, seed) pair always yields a stream
	// producing the same sequence.
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// ValidateSeed ensures the seed produces expected deterministic results
	ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error
}
