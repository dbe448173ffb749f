package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lysyi3m/icon-lists/app/pipeline"
)

var _ RunRepository = (*RunRepo)(nil)
var _ pipeline.Recorder = (*RunRepo)(nil)

// RunRepo stores pipeline results. It is append-only; nothing in the
// pipeline reads it back.
type RunRepo struct {
	db *DB
}

func NewRunRepository(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

func (r *RunRepo) RecordRun(ctx context.Context, run Run) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (set_name, state, success, failed_at, error, warnings, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.Set, run.State, run.Success, run.FailedAt, run.Error, run.Warnings,
		run.StartedAt.UnixMilli(), run.Duration.Milliseconds())
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	for _, output := range run.Outputs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_outputs (run_id, name, icons, categories, tags)
			VALUES (?, ?, ?, ?, ?)
		`, id, output.Name, output.Icons, output.Categories, output.Tags)
		if err != nil {
			return 0, fmt.Errorf("failed to insert run output %s: %w", output.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return id, nil
}

// GetLatestRuns returns the most recent run of every set, ordered by set name.
func (r *RunRepo) GetLatestRuns(ctx context.Context) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, set_name, state, success, failed_at, error, warnings, started_at, duration_ms
		FROM runs r
		WHERE id = (SELECT MAX(id) FROM runs WHERE set_name = r.set_name)
		ORDER BY set_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt, durationMs int64
		if err := rows.Scan(&run.ID, &run.Set, &run.State, &run.Success, &run.FailedAt, &run.Error,
			&run.Warnings, &startedAt, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.StartedAt = time.UnixMilli(startedAt).UTC()
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	rows.Close()

	for i := range runs {
		outputs, err := r.getOutputs(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Outputs = outputs
	}

	return runs, nil
}

func (r *RunRepo) getOutputs(ctx context.Context, runID int64) ([]RunOutput, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, icons, categories, tags
		FROM run_outputs
		WHERE run_id = ?
		ORDER BY name
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run outputs: %w", err)
	}
	defer rows.Close()

	var outputs []RunOutput
	for rows.Next() {
		var output RunOutput
		if err := rows.Scan(&output.Name, &output.Icons, &output.Categories, &output.Tags); err != nil {
			return nil, fmt.Errorf("failed to scan run output: %w", err)
		}
		outputs = append(outputs, output)
	}
	return outputs, rows.Err()
}

func (r *RunRepo) GetRunCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&count)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}

// Record stores a pipeline result as a run.
func (r *RunRepo) Record(ctx context.Context, result pipeline.Result) error {
	_, err := r.RecordRun(ctx, RunFromResult(result))
	return err
}

func RunFromResult(result pipeline.Result) Run {
	run := Run{
		Set:       result.Set,
		State:     string(result.State),
		Success:   result.Success,
		FailedAt:  string(result.FailedAt),
		Warnings:  result.Warnings,
		StartedAt: result.StartedAt,
		Duration:  result.Duration,
	}
	if result.Err != nil {
		run.Error = result.Err.Error()
	}
	for _, output := range result.Outputs {
		run.Outputs = append(run.Outputs, RunOutput{
			Name:       output.Name,
			Icons:      output.Icons,
			Categories: output.Categories,
			Tags:       output.Tags,
		})
	}
	return run
}
