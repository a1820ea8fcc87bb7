package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"gerorank/domain/core"
	"gerorank/domain/simulation"
	"gerorank/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// runRepository implements the RunRepository interface
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new analysis run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &runRepository{db: db}
}

// Connect opens a postgres connection pool and verifies it.
func Connect(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Schema holds the analysis_runs table definition, applied by callers
// that own migrations.
const Schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id TEXT PRIMARY KEY,
	scheme TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	interval_params JSONB NOT NULL,
	robustness_params JSONB NOT NULL,
	baseline JSONB NOT NULL,
	intervals JSONB NOT NULL,
	robustness JSONB NOT NULL,
	runtime_ms BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

// Save inserts a completed analysis run
func (r *runRepository) Save(ctx context.Context, run *simulation.AnalysisRun) error {
	intervalParams, err := json.Marshal(run.IntervalParams)
	if err != nil {
		return fmt.Errorf("failed to marshal interval params: %w", err)
	}
	robustnessParams, err := json.Marshal(run.RobustnessParams)
	if err != nil {
		return fmt.Errorf("failed to marshal robustness params: %w", err)
	}
	baseline, err := json.Marshal(run.Baseline)
	if err != nil {
		return fmt.Errorf("failed to marshal baseline: %w", err)
	}
	intervals, err := json.Marshal(run.Intervals)
	if err != nil {
		return fmt.Errorf("failed to marshal intervals: %w", err)
	}
	robustness, err := json.Marshal(run.Robustness)
	if err != nil {
		return fmt.Errorf("failed to marshal robustness: %w", err)
	}

	query := `INSERT INTO analysis_runs (
		id, scheme, fingerprint, interval_params, robustness_params,
		baseline, intervals, robustness, runtime_ms, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = r.db.ExecContext(ctx, query,
		run.ID.String(), run.Scheme, run.Fingerprint.String(), intervalParams, robustnessParams,
		baseline, intervals, robustness, run.RuntimeMs, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis run: %w", err)
	}
	return nil
}

// runRow mirrors the analysis_runs table
type runRow struct {
	ID               string       `db:"id"`
	Scheme           string       `db:"scheme"`
	Fingerprint      string       `db:"fingerprint"`
	IntervalParams   []byte       `db:"interval_params"`
	RobustnessParams []byte       `db:"robustness_params"`
	Baseline         []byte       `db:"baseline"`
	Intervals        []byte       `db:"intervals"`
	Robustness       []byte       `db:"robustness"`
	RuntimeMs        int64        `db:"runtime_ms"`
	CreatedAt        sql.NullTime `db:"created_at"`
}

// GetByID retrieves an analysis run by its ID
func (r *runRepository) GetByID(ctx context.Context, id core.RunID) (*simulation.AnalysisRun, error) {
	query := `SELECT id, scheme, fingerprint, interval_params, robustness_params,
		baseline, intervals, robustness, runtime_ms, created_at
	FROM analysis_runs WHERE id = $1`

	var row runRow
	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}
	return row.toRun()
}

// List returns the most recent analysis runs
func (r *runRepository) List(ctx context.Context, limit int) ([]*simulation.AnalysisRun, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, scheme, fingerprint, interval_params, robustness_params,
		baseline, intervals, robustness, runtime_ms, created_at
	FROM analysis_runs ORDER BY created_at DESC LIMIT $1`

	var rows []runRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}

	runs := make([]*simulation.AnalysisRun, 0, len(rows))
	for _, row := range rows {
		run, err := row.toRun()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (row runRow) toRun() (*simulation.AnalysisRun, error) {
	run := &simulation.AnalysisRun{
		ID:          core.RunID(row.ID),
		Scheme:      row.Scheme,
		Fingerprint: core.InputFingerprint(row.Fingerprint),
		RuntimeMs:   row.RuntimeMs,
	}
	if row.CreatedAt.Valid {
		run.CreatedAt = row.CreatedAt.Time
	}
	if err := json.Unmarshal(row.IntervalParams, &run.IntervalParams); err != nil {
		return nil, fmt.Errorf("failed to unmarshal interval params: %w", err)
	}
	if err := json.Unmarshal(row.RobustnessParams, &run.RobustnessParams); err != nil {
		return nil, fmt.Errorf("failed to unmarshal robustness params: %w", err)
	}
	if err := json.Unmarshal(row.Baseline, &run.Baseline); err != nil {
		return nil, fmt.Errorf("failed to unmarshal baseline: %w", err)
	}
	if err := json.Unmarshal(row.Intervals, &run.Intervals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal intervals: %w", err)
	}
	if err := json.Unmarshal(row.Robustness, &run.Robustness); err != nil {
		return nil, fmt.Errorf("failed to unmarshal robustness: %w", err)
	}
	return run, nil
}
