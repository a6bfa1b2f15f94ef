// Package storage defines the persistence interface for scoring runs.
package storage

import (
	"context"

	"github.com/ateneolabs/concordia/internal/models"
)

// Storage persists scoring runs and their per-record results.
type Storage interface {
	// Run operations. CreateRun stores the run and its rows atomically.
	CreateRun(ctx context.Context, run *models.ScoringRun, rows []models.ScoredRow) error
	GetRun(ctx context.Context, id string) (*models.ScoringRun, error)
	GetRunRows(ctx context.Context, runID string) ([]models.ScoredRow, error)
	DeleteRun(ctx context.Context, id string) error
	ListRuns(ctx context.Context, offset, limit int) ([]*models.ScoringRun, error)

	// Stats
	CountRuns(ctx context.Context) (int64, error)
	CountRows(ctx context.Context) (int64, error)
	DiskUsageBytes() (int64, error)

	Close() error
}
