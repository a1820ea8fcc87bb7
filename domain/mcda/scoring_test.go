package mcda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformVector(v float64) Vector {
	var out Vector
	for i := range out {
		out[i] = v
	}
	return out
}

func mustScheme(t *testing.T, name string, weights Vector) WeightScheme {
	t.Helper()
	s, err := NewWeightSchemeFromVector(name, weights)
	require.NoError(t, err)
	return s
}

func mustTable(t *testing.T, rows map[string]Vector, order []string) *ScoreTable {
	t.Helper()
	interventions := make([]Intervention, 0, len(order))
	for _, name := range order {
		scores := make(map[Domain]float64, NumDomains)
		for i, d := range AllDomains {
			scores[d] = rows[name][i]
		}
		iv, err := NewIntervention(name, scores)
		require.NoError(t, err)
		interventions = append(interventions, iv)
	}
	table, err := NewScoreTable(interventions)
	require.NoError(t, err)
	return table
}

func TestWeightedScoreExactness(t *testing.T) {
	weights := Vector{0.3, 0.1, 0.1, 0.2, 0.2, 0.1}
	scores := Vector{5, 4, 3, 2, 1, 5}

	want := 5*0.3 + 4*0.1 + 3*0.1 + 2*0.2 + 1*0.2 + 5*0.1
	assert.Equal(t, want, WeightedScore(scores, weights))

	// All-fives and all-ones hit the score bounds exactly under any
	// scheme whose weights sum to 1
	assert.InDelta(t, 5.0, WeightedScore(uniformVector(5), weights), 1e-12)
	assert.InDelta(t, 1.0, WeightedScore(uniformVector(1), weights), 1e-12)
}

func TestWeightedScoreIdempotent(t *testing.T) {
	weights := Vector{0.3, 0.1, 0.1, 0.2, 0.2, 0.1}
	scores := Vector{4.5, 3.5, 2, 3, 5, 1}
	first := WeightedScore(scores, weights)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, WeightedScore(scores, weights))
	}
}

func TestWeightedScoreMonotone(t *testing.T) {
	weights := Vector{0.3, 0.1, 0.1, 0.2, 0.2, 0.1}
	lower := Vector{2, 2, 3, 1, 4, 2}
	higher := lower
	for i := range higher {
		higher[i] += 0.5
	}
	assert.GreaterOrEqual(t, WeightedScore(higher, weights), WeightedScore(lower, weights))
}

func TestRankOrdersDescending(t *testing.T) {
	ranks := Rank([]float64{3.2, 4.8, 1.1, 4.0})
	assert.Equal(t, []int{3, 1, 4, 2}, ranks)
}

func TestRankTieBreakByInputOrder(t *testing.T) {
	// Equal scores: earlier input position wins the better rank
	ranks := Rank([]float64{2.5, 4.0, 2.5, 2.5})
	assert.Equal(t, []int{2, 1, 3, 4}, ranks)
}

func TestRankExactlyOneTop(t *testing.T) {
	scores := []float64{3, 3, 3, 3, 3}
	ranks := Rank(scores)
	top := 0
	for _, r := range ranks {
		if r == 1 {
			top++
		}
	}
	assert.Equal(t, 1, top)
}

func TestRankTableConcreteScenario(t *testing.T) {
	table := mustTable(t, map[string]Vector{
		"A": uniformVector(5),
		"B": uniformVector(1),
	}, []string{"A", "B"})
	scheme := mustScheme(t, "baseline", Vector{0.3, 0.1, 0.1, 0.2, 0.2, 0.1})

	rankings := RankTable(table, scheme)
	require.Len(t, rankings, 2)
	assert.Equal(t, "A", rankings[0].Intervention)
	assert.InDelta(t, 5.0, rankings[0].WeightedScore, 1e-12)
	assert.Equal(t, 1, rankings[0].Rank)
	assert.Equal(t, "B", rankings[1].Intervention)
	assert.InDelta(t, 1.0, rankings[1].WeightedScore, 1e-12)
	assert.Equal(t, 2, rankings[1].Rank)
}

func TestNormalizeWeights(t *testing.T) {
	normalized, ok := NormalizeWeights(Vector{3, 1, 1, 2, 2, 1})
	require.True(t, ok)
	sum := 0.0
	for _, w := range normalized {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-15)
	assert.InDelta(t, 0.3, normalized[0], 1e-12)

	_, ok = NormalizeWeights(Vector{})
	assert.False(t, ok)
}
