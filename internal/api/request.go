package api

import (
	"net/http"

	"gerorank/app"
	"gerorank/domain/core"
	"gerorank/domain/mcda"
	"gerorank/internal/config"
	"gerorank/internal/report"

	"github.com/go-chi/chi/v5"
)

// analysisRequest is the wire format for POST /api/analysis. Omitted
// parameters fall back to the server's configured defaults.
type analysisRequest struct {
	Interventions []interventionInput `json:"interventions"`
	Scheme        string              `json:"scheme"`
	ExtraSchemes  []schemeInput       `json:"extra_schemes,omitempty"`

	// Trials sets both analyses at once; the per-analysis fields win
	// when given.
	Trials           *int     `json:"trials,omitempty"`
	IntervalTrials   *int     `json:"interval_trials,omitempty"`
	RobustnessTrials *int     `json:"robustness_trials,omitempty"`
	Jitter           *float64 `json:"jitter,omitempty"`
	ScoreSeed        *int64   `json:"score_seed,omitempty"`
	ClampScores      *bool    `json:"clamp_scores,omitempty"`
	Perturbation     *float64 `json:"perturbation,omitempty"`
	WeightSeed       *int64   `json:"weight_seed,omitempty"`
}

type interventionInput struct {
	Name   string             `json:"name"`
	Scores map[string]float64 `json:"scores"`
}

type schemeInput struct {
	Name    string             `json:"name"`
	Weights map[string]float64 `json:"weights"`
}

// toDomain validates the request into an engine request. All schema,
// range and weight-sum problems surface here, before any computation.
func (r analysisRequest) toDomain(defaults config.AnalysisConfig) (app.AnalysisRequest, error) {
	interventions := make([]mcda.Intervention, 0, len(r.Interventions))
	for _, in := range r.Interventions {
		scores := make(map[mcda.Domain]float64, len(in.Scores))
		for code, value := range in.Scores {
			d, err := mcda.ParseDomain(code)
			if err != nil {
				return app.AnalysisRequest{}, err
			}
			scores[d] = value
		}
		iv, err := mcda.NewIntervention(in.Name, scores)
		if err != nil {
			return app.AnalysisRequest{}, err
		}
		interventions = append(interventions, iv)
	}
	table, err := mcda.NewScoreTable(interventions)
	if err != nil {
		return app.AnalysisRequest{}, err
	}

	schemes := mcda.BuiltinSchemes()
	for _, in := range r.ExtraSchemes {
		weights := make(map[mcda.Domain]float64, len(in.Weights))
		for code, value := range in.Weights {
			d, err := mcda.ParseDomain(code)
			if err != nil {
				return app.AnalysisRequest{}, err
			}
			weights[d] = value
		}
		scheme, err := mcda.NewWeightScheme(in.Name, weights)
		if err != nil {
			return app.AnalysisRequest{}, err
		}
		if err := schemes.Add(scheme); err != nil {
			return app.AnalysisRequest{}, err
		}
	}

	intervalParams := defaults.IntervalParams
	robustnessParams := defaults.RobustnessParams
	if r.Trials != nil {
		intervalParams.Trials = *r.Trials
		robustnessParams.Trials = *r.Trials
	}
	if r.IntervalTrials != nil {
		intervalParams.Trials = *r.IntervalTrials
	}
	if r.RobustnessTrials != nil {
		robustnessParams.Trials = *r.RobustnessTrials
	}
	if r.Jitter != nil {
		intervalParams.Jitter = *r.Jitter
	}
	if r.ScoreSeed != nil {
		intervalParams.Seed = *r.ScoreSeed
	}
	if r.ClampScores != nil {
		intervalParams.ClampScores = *r.ClampScores
	}
	if r.Perturbation != nil {
		robustnessParams.Perturbation = *r.Perturbation
	}
	if r.WeightSeed != nil {
		robustnessParams.Seed = *r.WeightSeed
	}

	scheme := r.Scheme
	if scheme == "" {
		scheme = defaults.Scheme
	}

	return app.AnalysisRequest{
		Table:            table,
		Schemes:          schemes,
		Scheme:           scheme,
		IntervalParams:   intervalParams,
		RobustnessParams: robustnessParams,
	}, nil
}

func (s *Server) handleRunReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "runID")
	run, err := s.runRepo.GetByID(r.Context(), core.RunID(id))
	if err != nil {
		s.writeError(w, err)
		return
	}

	renderer := report.NewRenderer(5)
	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(renderer.HTML(run))
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(renderer.Markdown(run)))
}
