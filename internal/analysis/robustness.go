package analysis

import (
	"math/rand"

	"gerorank/domain/core"
	"gerorank/domain/mcda"
	"gerorank/domain/simulation"

	"github.com/montanaflynn/stats"
)

// AnalyzeRobustness runs the weight-perturbation rank-stability
// analysis: for each trial every baseline weight is scaled by an
// independent draw from U(1-P, 1+P), the vector renormalized to sum
// exactly 1, and the full ranking recomputed on the unperturbed
// scores. Ranks are ordinal with ties broken by input order, so each
// trial has exactly one rank-1 intervention and P_Top1 sums to 1
// across the table.
//
// Summaries are returned in the table's input order.
func AnalyzeRobustness(table *mcda.ScoreTable, scheme mcda.WeightScheme, params simulation.RobustnessParams, rng *rand.Rand) ([]simulation.RobustnessSummary, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	n := table.Len()
	baseScores := mcda.ScoreAll(table, scheme)

	rankSamples := make([][]float64, n)
	top1 := make([]int, n)
	top3 := make([]int, n)
	for i := range rankSamples {
		rankSamples[i] = make([]float64, 0, params.Trials)
	}

	trialScores := make([]float64, n)
	for trial := 0; trial < params.Trials; trial++ {
		var perturbed mcda.Vector
		for d := 0; d < mcda.NumDomains; d++ {
			factor := 1 + (2*rng.Float64()-1)*params.Perturbation
			perturbed[d] = scheme.Weights[d] * factor
		}
		weights, ok := mcda.NormalizeWeights(perturbed)
		if !ok {
			// Unreachable for P < 1 over a valid scheme; a zero-sum
			// perturbed vector means the inputs were never validated.
			return nil, core.NewConfigurationError("perturbation", "perturbed weights sum to zero")
		}

		for i := 0; i < n; i++ {
			trialScores[i] = mcda.WeightedScore(table.At(i).Scores, weights)
		}
		ranks := mcda.Rank(trialScores)
		for i, r := range ranks {
			rankSamples[i] = append(rankSamples[i], float64(r))
			if r == 1 {
				top1[i]++
			}
			if r <= 3 {
				top3[i]++
			}
		}
	}

	out := make([]simulation.RobustnessSummary, n)
	trials := float64(params.Trials)
	for i := 0; i < n; i++ {
		// Trials > 0 guarantees a non-empty sample.
		meanRank, err := stats.Mean(rankSamples[i])
		if err != nil {
			return nil, err
		}
		lo, hi := PercentilePair(rankSamples[i], 2.5, 97.5)
		out[i] = simulation.RobustnessSummary{
			Intervention:      table.At(i).Name,
			BaseWeightedScore: baseScores[i],
			MeanRank:          meanRank,
			RankP2_5:          lo,
			RankP97_5:         hi,
			PTop1:             float64(top1[i]) / trials,
			PTop3:             float64(top3[i]) / trials,
		}
	}
	return out, nil
}
