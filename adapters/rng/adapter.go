package rng

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"strconv"

	"gerorank/domain/core"
)

// DeterministicAdapter implements ports.RNGPort with math/rand streams.
// Each named operation gets its own stream derived from the base seed
// and the operation name, so the score-jitter and weight-perturbation
// analyses never share random state even under the same seed.
type DeterministicAdapter struct{}

// NewDeterministicAdapter creates the adapter.
func NewDeterministicAdapter() *DeterministicAdapter {
	return &DeterministicAdapter{}
}

// SeededStream returns a fresh generator for (name, seed). The name is
// folded into the seed with FNV-1a so distinct operations diverge.
func (a *DeterministicAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	h := fnv.New64a()
	h.Write([]byte(name))
	mixed := seed ^ int64(h.Sum64())
	return rand.New(rand.NewSource(mixed)), nil
}

// ValidateSeed replays the first draws of a stream and compares them
// against an expected prefix.
func (a *DeterministicAdapter) ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error {
	stream, err := a.SeededStream(ctx, name, seed)
	if err != nil {
		return err
	}
	for i, want := range expected {
		got := stream.Float64()
		if math.Abs(got-want) > 1e-12 {
			return core.NewConfigurationError("seed", "stream "+name+" diverged at draw "+strconv.Itoa(i))
		}
	}
	return nil
}
