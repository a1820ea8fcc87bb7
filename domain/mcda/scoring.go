package mcda

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// WeightedScore computes the weighted score for one intervention under
// one scheme: the dot product of scores and weights over the canonical
// domain order. Pure function, no side effects.
func WeightedScore(scores Vector, weights Vector) float64 {
	return floats.Dot(scores[:], weights[:])
}

// ScoreAll computes weighted scores for every intervention in the table
// under one scheme, in input order.
func ScoreAll(table *ScoreTable, scheme WeightScheme) []float64 {
	out := make([]float64, table.Len())
	for i := 0; i < table.Len(); i++ {
		out[i] = WeightedScore(table.At(i).Scores, scheme.Weights)
	}
	return out
}

// Rank converts weighted scores into ordinal ranks, 1 = highest score.
// Ties are broken by input order: when two scores are exactly equal the
// intervention that appears first in the table gets the better rank.
// Every trial therefore has exactly one rank-1 intervention.
func Rank(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	ranks := make([]int, len(scores))
	for pos, idx := range order {
		ranks[idx] = pos + 1
	}
	return ranks
}

// Ranking pairs an intervention name with its baseline score and rank.
type Ranking struct {
	Intervention  string
	WeightedScore float64
	Rank          int
}

// RankTable computes the full baseline ranking of a score table under
// one scheme, sorted best rank first.
func RankTable(table *ScoreTable, scheme WeightScheme) []Ranking {
	scores := ScoreAll(table, scheme)
	ranks := Rank(scores)
	out := make([]Ranking, table.Len())
	for i := 0; i < table.Len(); i++ {
		out[i] = Ranking{
			Intervention:  table.At(i).Name,
			WeightedScore: scores[i],
			Rank:          ranks[i],
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Rank < out[b].Rank })
	return out
}

// NormalizeWeights scales a non-negative weight vector so it sums to
// exactly 1.0. Used when weights arrive as parsed header percents or as
// perturbed vectors. A zero-sum vector cannot be normalized.
func NormalizeWeights(v Vector) (Vector, bool) {
	sum := floats.Sum(v[:])
	if sum <= 0 {
		return Vector{}, false
	}
	var out Vector
	for i, w := range v {
		out[i] = w / sum
	}
	return out, true
}
