package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentileInterpolation(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{25, 2},
		{50, 3},
		{75, 4},
		{100, 5},
		{10, 1.4},  // h = 4*0.1 = 0.4 -> 1 + 0.4*(2-1)
		{62.5, 3.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Percentile(sorted, tt.p), 1e-12, "p=%g", tt.p)
	}
}

func TestPercentileEdgeCases(t *testing.T) {
	assert.True(t, math.IsNaN(Percentile(nil, 50)))
	assert.Equal(t, 7.0, Percentile([]float64{7}, 2.5))
	assert.Equal(t, 7.0, Percentile([]float64{7}, 97.5))

	// Out-of-range percentiles clip to the extremes
	sorted := []float64{1, 2, 3}
	assert.Equal(t, 1.0, Percentile(sorted, -5))
	assert.Equal(t, 3.0, Percentile(sorted, 105))
}

func TestPercentilePairDoesNotMutate(t *testing.T) {
	sample := []float64{5, 1, 3, 2, 4}
	lo, hi := PercentilePair(sample, 2.5, 97.5)
	assert.Less(t, lo, hi)
	assert.Equal(t, []float64{5, 1, 3, 2, 4}, sample)
}

func TestPercentileOrdering(t *testing.T) {
	sample := []float64{3.1, 4.5, 2.2, 3.9, 2.8, 4.1, 3.3}
	lo, hi := PercentilePair(sample, 2.5, 97.5)
	assert.LessOrEqual(t, lo, hi)
	assert.GreaterOrEqual(t, lo, 2.2)
	assert.LessOrEqual(t, hi, 4.5)
}
