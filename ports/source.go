package ports

import (
	"context"

	"gerorank/domain/mcda"
)

// ScoreSource resolves raw input data into a validated score table and
// the weight vector carried by the source's column headers. Adapters
// exist for Excel workbooks and CSV files; the engine itself never
// touches files.
type ScoreSource interface {
	// ResolveScores loads and validates the domain score table.
	ResolveScores(ctx context.Context) (*mcda.ScoreTable, error)

	// HeaderScheme returns the weighting scheme parsed from the source's
	// domain column headers (for example "Lifespan (30%)"), renormalized
	// to sum to 1.
	HeaderScheme(ctx context.Context) (mcda.WeightScheme, error)
}
