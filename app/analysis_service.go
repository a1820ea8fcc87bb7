package app

import (
	"context"
	"fmt"
	"time"

	"gerorank/domain/core"
	"gerorank/domain/mcda"
	"gerorank/domain/simulation"
	"gerorank/internal/analysis"
	"gerorank/internal/logging"
	"gerorank/ports"

	"golang.org/x/sync/errgroup"
)

// AnalysisService orchestrates one full MCDA analysis: baseline
// weighted scoring plus the two stochastic analyses. The score and
// scheme tables are read-only inputs; every output slice is freshly
// allocated and owned by the caller.
type AnalysisService struct {
	rngPort ports.RNGPort
	runRepo ports.RunRepository // optional, nil disables persistence
	logger  *logging.Logger
}

// AnalysisRequest defines the inputs for one deterministic run.
type AnalysisRequest struct {
	Table            *mcda.ScoreTable
	Schemes          *mcda.SchemeTable
	Scheme           string // target scheme name
	IntervalParams   simulation.IntervalParams
	RobustnessParams simulation.RobustnessParams
	RunID            core.RunID // optional, generated if empty
}

// NewAnalysisService creates an analysis service. runRepo may be nil
// when persistence is not configured.
func NewAnalysisService(rngPort ports.RNGPort, runRepo ports.RunRepository) *AnalysisService {
	return &AnalysisService{
		rngPort: rngPort,
		runRepo: runRepo,
		logger:  logging.New("AnalysisService"),
	}
}

// Run executes the full analysis for one scheme. Parameters and inputs
// are validated eagerly; no partial output is produced on failure. The
// interval and robustness analyses draw from independent seeded
// streams and run concurrently without affecting reproducibility.
func (s *AnalysisService) Run(ctx context.Context, req AnalysisRequest) (*simulation.AnalysisRun, error) {
	startTime := time.Now()

	if req.Table == nil || req.Table.Len() == 0 {
		return nil, core.NewSchemaError("analysis request", "empty score table")
	}
	if err := req.IntervalParams.Validate(); err != nil {
		return nil, err
	}
	if err := req.RobustnessParams.Validate(); err != nil {
		return nil, err
	}

	scheme, err := req.Schemes.Lookup(req.Scheme)
	if err != nil {
		return nil, fmt.Errorf("scheme %q: %w", req.Scheme, err)
	}

	runID := req.RunID
	if runID == "" {
		runID = core.RunID(core.NewID())
	}

	scoreRNG, err := s.rngPort.SeededStream(ctx, "score_jitter", req.IntervalParams.Seed)
	if err != nil {
		return nil, fmt.Errorf("score jitter stream: %w", err)
	}
	weightRNG, err := s.rngPort.SeededStream(ctx, "weight_perturbation", req.RobustnessParams.Seed)
	if err != nil {
		return nil, fmt.Errorf("weight perturbation stream: %w", err)
	}

	baseline := mcda.RankTable(req.Table, scheme)

	// The two analyses are independent: separate RNG streams, shared
	// read-only inputs, separate output tables.
	var intervals []simulation.IntervalSummary
	var robustness []simulation.RobustnessSummary
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		intervals, err = analysis.EstimateIntervals(req.Table, scheme, req.IntervalParams, scoreRNG)
		return err
	})
	g.Go(func() error {
		var err error
		robustness, err = analysis.AnalyzeRobustness(req.Table, scheme, req.RobustnessParams, weightRNG)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	run := &simulation.AnalysisRun{
		ID:               runID,
		Scheme:           scheme.Name,
		Fingerprint:      s.fingerprint(req.Table, scheme, req.IntervalParams, req.RobustnessParams),
		IntervalParams:   req.IntervalParams,
		RobustnessParams: req.RobustnessParams,
		Baseline:         baseline,
		Intervals:        intervals,
		Robustness:       robustness,
		RuntimeMs:        time.Since(startTime).Milliseconds(),
		CreatedAt:        time.Now().UTC(),
	}

	if s.runRepo != nil {
		if err := s.runRepo.Save(ctx, run); err != nil {
			return nil, fmt.Errorf("persist run %s: %w", runID, err)
		}
	}
	s.logger.Infof("run %s: scheme=%s interventions=%d trials=%d/%d (%d ms)",
		runID, scheme.Name, req.Table.Len(), req.IntervalParams.Trials, req.RobustnessParams.Trials, run.RuntimeMs)
	return run, nil
}

// RunAllSchemes executes the analysis once per scheme in the table, in
// registration order, reusing the same parameters and seeds per run so
// every scheme's result is independently reproducible.
func (s *AnalysisService) RunAllSchemes(ctx context.Context, req AnalysisRequest) ([]*simulation.AnalysisRun, error) {
	runs := make([]*simulation.AnalysisRun, 0, req.Schemes.Len())
	for _, name := range req.Schemes.Names() {
		perScheme := req
		perScheme.Scheme = name
		perScheme.RunID = ""
		run, err := s.Run(ctx, perScheme)
		if err != nil {
			return nil, fmt.Errorf("scheme %s: %w", name, err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (s *AnalysisService) fingerprint(table *mcda.ScoreTable, scheme mcda.WeightScheme, ip simulation.IntervalParams, rp simulation.RobustnessParams) core.InputFingerprint {
	scores := make(map[string][]float64, table.Len())
	for i := 0; i < table.Len(); i++ {
		iv := table.At(i)
		scores[iv.Name] = iv.Scores.Slice()
	}
	params := fmt.Sprintf("scheme=%s;n=%d;j=%g;s=%d;clamp=%t;m=%d;p=%g;s2=%d",
		scheme.Name, ip.Trials, ip.Jitter, ip.Seed, ip.ClampScores, rp.Trials, rp.Perturbation, rp.Seed)
	return core.ComputeInputFingerprint(scores, scheme.Weights.Slice(), params)
}
