package simulation

import (
	"fmt"
	"time"

	"gerorank/domain/core"
	"gerorank/domain/mcda"
)

// Defaults for the stochastic analyses. These mirror the published
// analysis protocol: 10,000 trials, +-0.5 score jitter under seed 42,
// and +-5% weight perturbation under seed 123.
const (
	DefaultTrials       = 10000
	DefaultJitter       = 0.5
	DefaultScoreSeed    = 42
	DefaultPerturbation = 0.05
	DefaultWeightSeed   = 123
)

// IntervalParams configures the Monte Carlo score-interval estimator.
type IntervalParams struct {
	// Trials is the number of Monte Carlo resamples (N).
	Trials int
	// Jitter is the uniform half-width J: each sampled score is drawn
	// from U(score-J, score+J).
	Jitter float64
	// Seed feeds a single pseudo-random stream for the whole run.
	Seed int64
	// ClampScores keeps jittered scores inside [1,5]. Defaults to true,
	// matching the published protocol.
	ClampScores bool
}

// DefaultIntervalParams returns the protocol defaults.
func DefaultIntervalParams() IntervalParams {
	return IntervalParams{
		Trials:      DefaultTrials,
		Jitter:      DefaultJitter,
		Seed:        DefaultScoreSeed,
		ClampScores: true,
	}
}

// Validate rejects unusable parameters before any computation runs.
func (p IntervalParams) Validate() error {
	if p.Trials <= 0 {
		return core.NewConfigurationError("trials", fmt.Sprintf("must be positive, got %d", p.Trials))
	}
	if p.Jitter <= 0 {
		return core.NewConfigurationError("jitter", fmt.Sprintf("must be positive, got %g", p.Jitter))
	}
	return nil
}

// RobustnessParams configures the weight-perturbation rank-stability
// analyzer.
type RobustnessParams struct {
	// Trials is the number of perturbed weight vectors (M).
	Trials int
	// Perturbation is the fraction P: each weight is scaled by an
	// independent draw from U(1-P, 1+P) and the vector renormalized.
	Perturbation float64
	// Seed feeds a single pseudo-random stream, independent from the
	// score-jitter stream.
	Seed int64
}

// DefaultRobustnessParams returns the protocol defaults.
func DefaultRobustnessParams() RobustnessParams {
	return RobustnessParams{
		Trials:       DefaultTrials,
		Perturbation: DefaultPerturbation,
		Seed:         DefaultWeightSeed,
	}
}

// Validate rejects unusable parameters before any computation runs.
// Perturbation fractions at or above 1.0 would allow non-positive
// weight factors under the multiplicative policy, so they are invalid.
func (p RobustnessParams) Validate() error {
	if p.Trials <= 0 {
		return core.NewConfigurationError("trials", fmt.Sprintf("must be positive, got %d", p.Trials))
	}
	if p.Perturbation <= 0 || p.Perturbation >= 1 {
		return core.NewConfigurationError("perturbation", fmt.Sprintf("must be in (0,1), got %g", p.Perturbation))
	}
	return nil
}

// IntervalSummary is the per-intervention output of the Monte Carlo
// interval estimator: mean weighted score and the empirical 95%
// credible interval. Immutable once produced.
type IntervalSummary struct {
	Intervention string  `json:"intervention" db:"intervention"`
	Mean         float64 `json:"weighted_score_mean" db:"weighted_score_mean"`
	P2_5         float64 `json:"weighted_score_p2_5" db:"weighted_score_p2_5"`
	P97_5        float64 `json:"weighted_score_p97_5" db:"weighted_score_p97_5"`
}

// RobustnessSummary is the per-intervention output of the weight
// robustness analyzer. Immutable once produced.
type RobustnessSummary struct {
	Intervention      string  `json:"intervention" db:"intervention"`
	BaseWeightedScore float64 `json:"base_weighted_score" db:"base_weighted_score"`
	MeanRank          float64 `json:"mean_rank" db:"mean_rank"`
	RankP2_5          float64 `json:"rank_p2_5" db:"rank_p2_5"`
	RankP97_5         float64 `json:"rank_p97_5" db:"rank_p97_5"`
	PTop1             float64 `json:"p_top1" db:"p_top1"`
	PTop3             float64 `json:"p_top3" db:"p_top3"`
}

// AnalysisRun is one complete, reproducible analysis: baseline ranking
// plus both stochastic summaries under a named scheme.
type AnalysisRun struct {
	ID               core.RunID            `json:"id"`
	Scheme           string                `json:"scheme"`
	Fingerprint      core.InputFingerprint `json:"fingerprint"`
	IntervalParams   IntervalParams        `json:"interval_params"`
	RobustnessParams RobustnessParams      `json:"robustness_params"`
	Baseline         []mcda.Ranking        `json:"baseline"`
	Intervals        []IntervalSummary     `json:"intervals"`
	Robustness       []RobustnessSummary   `json:"robustness"`
	RuntimeMs        int64                 `json:"runtime_ms"`
	CreatedAt        time.Time             `json:"created_at"`
}
