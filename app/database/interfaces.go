package database

import (
	"context"
)

type RunRepository interface {
	RecordRun(ctx context.Context, run Run) (int64, error)
	GetLatestRuns(ctx context.Context) ([]Run, error)
	GetRunCount(ctx context.Context) (int, error)
}
