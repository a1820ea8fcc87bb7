package analysis

import (
	"math"
	"sort"
)

// Percentile returns the p-th percentile (p in [0,100]) of sorted data
// using linear interpolation between order statistics: the index
// h = (n-1)*p/100 is split into its integer and fractional parts and
// the two surrounding order statistics interpolated. This matches the
// convention the published analysis protocol used, which neither the
// montanaflynn nearest-rank percentile nor the gonum empirical
// quantile reproduces.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[n-1]
	}
	h := float64(n-1) * p / 100
	lo := int(math.Floor(h))
	frac := h - float64(lo)
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// PercentilePair sorts a copy of the sample and returns its lower and
// upper percentiles in one pass over the data.
func PercentilePair(sample []float64, lo, hi float64) (float64, float64) {
	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)
	return Percentile(sorted, lo), Percentile(sorted, hi)
}
