package ports

import (
	"context"

	"gerorank/domain/core"
	"gerorank/domain/simulation"
)

// RunRepository persists completed analysis runs for later retrieval.
type RunRepository interface {
	Save(ctx context.Context, run *simulation.AnalysisRun) error
	GetByID(ctx context.Context, id core.RunID) (*simulation.AnalysisRun, error)
	List(ctx context.Context, limit int) ([]*simulation.AnalysisRun, error)
}
