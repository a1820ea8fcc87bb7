package testkit

import (
	"context"
	"sort"
	"sync"

	"gerorank/domain/core"
	"gerorank/domain/simulation"
)

// InMemoryRunRepository is a RunRepository backed by a map. It serves
// tests and API deployments that run without a database.
type InMemoryRunRepository struct {
	mu   sync.RWMutex
	runs map[core.RunID]*simulation.AnalysisRun
}

// NewInMemoryRunRepository creates an empty repository
func NewInMemoryRunRepository() *InMemoryRunRepository {
	return &InMemoryRunRepository{runs: make(map[core.RunID]*simulation.AnalysisRun)}
}

// Save stores a run, overwriting any run with the same ID
func (r *InMemoryRunRepository) Save(ctx context.Context, run *simulation.AnalysisRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = run
	return nil
}

// GetByID retrieves a run by its ID
func (r *InMemoryRunRepository) GetByID(ctx context.Context, id core.RunID) (*simulation.AnalysisRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, core.ErrRunNotFound
	}
	return run, nil
}

// List returns the most recent runs, newest first
func (r *InMemoryRunRepository) List(ctx context.Context, limit int) ([]*simulation.AnalysisRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	runs := make([]*simulation.AnalysisRun, 0, len(r.runs))
	for _, run := range r.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(a, b int) bool { return runs[a].CreatedAt.After(runs[b].CreatedAt) })
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
