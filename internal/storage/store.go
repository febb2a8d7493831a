package storage

import (
	"context"

	"chromatic/internal/model"
)

// Store defines persistence operations for the run archive.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error)
	SaveEnergyHistory(ctx context.Context, runID string, history []float64) error
	GetEnergyHistory(ctx context.Context, runID string) ([]float64, bool, error)
}
