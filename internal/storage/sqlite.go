// Package storage provides SQLite implementation of the Storage interface.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ateneolabs/concordia/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and
// initializes the schema. Parent directories are created if they do not
// exist. Foreign keys are enabled on every pooled connection so run
// deletion cascades to its rows.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db, path: dbPath}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS scoring_runs (
		id TEXT PRIMARY KEY,
		strategy TEXT NOT NULL,
		row_count INTEGER NOT NULL,
		catalog_size INTEGER NOT NULL,
		catalog_misses INTEGER NOT NULL,
		mean_score REAL NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON scoring_runs(created_at);

	CREATE TABLE IF NOT EXISTS scored_rows (
		run_id TEXT NOT NULL,
		row_index INTEGER NOT NULL,
		record_id TEXT,
		year TEXT,
		objective_id TEXT NOT NULL,
		score REAL NOT NULL,
		level INTEGER NOT NULL,
		bucket TEXT NOT NULL,
		category TEXT,
		best_objective_id TEXT,
		similarity_chosen REAL NOT NULL,
		similarity_best REAL NOT NULL,
		rank_chosen INTEGER,
		catalog_miss INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (run_id, row_index),
		FOREIGN KEY (run_id) REFERENCES scoring_runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_rows_run_id ON scored_rows(run_id);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateRun inserts a run and all its rows in one transaction.
func (s *SQLiteStorage) CreateRun(ctx context.Context, run *models.ScoringRun, rows []models.ScoredRow) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO scoring_runs (id, strategy, row_count, catalog_size, catalog_misses, mean_score, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Strategy, run.RowCount, run.CatalogSize, run.CatalogMisses, run.MeanScore, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO scored_rows (run_id, row_index, record_id, year, objective_id, score, level, bucket,
		                          category, best_objective_id, similarity_chosen, similarity_best, rank_chosen, catalog_miss)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, row := range rows {
		var rank any
		if row.RankChosen != nil {
			rank = *row.RankChosen
		}
		if _, err := stmt.ExecContext(ctx,
			run.ID, i, row.RecordID, row.Year, row.ObjectiveID, row.Score, row.Level, row.Bucket,
			row.Category, row.BestObjectiveID, row.SimilarityChosen, row.SimilarityBest, rank, row.CatalogMiss,
		); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// GetRun returns a run by ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*models.ScoringRun, error) {
	var run models.ScoringRun

	err := s.db.QueryRowContext(ctx,
		`SELECT id, strategy, row_count, catalog_size, catalog_misses, mean_score, created_at
		 FROM scoring_runs WHERE id = ?`, id,
	).Scan(&run.ID, &run.Strategy, &run.RowCount, &run.CatalogSize, &run.CatalogMisses, &run.MeanScore, &run.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRunRows returns a run's rows in original input order.
func (s *SQLiteStorage) GetRunRows(ctx context.Context, runID string) ([]models.ScoredRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record_id, year, objective_id, score, level, bucket,
		        category, best_objective_id, similarity_chosen, similarity_best, rank_chosen, catalog_miss
		 FROM scored_rows WHERE run_id = ? ORDER BY row_index`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ScoredRow
	for rows.Next() {
		var row models.ScoredRow
		var rank sql.NullInt64
		if err := rows.Scan(&row.RecordID, &row.Year, &row.ObjectiveID, &row.Score, &row.Level, &row.Bucket,
			&row.Category, &row.BestObjectiveID, &row.SimilarityChosen, &row.SimilarityBest, &rank, &row.CatalogMiss,
		); err != nil {
			return nil, err
		}
		if rank.Valid {
			r := int(rank.Int64)
			row.RankChosen = &r
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// DeleteRun removes a run; its rows cascade.
func (s *SQLiteStorage) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM scoring_runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

// ListRuns returns runs newest first with offset and limit.
func (s *SQLiteStorage) ListRuns(ctx context.Context, offset, limit int) ([]*models.ScoringRun, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, strategy, row_count, catalog_size, catalog_misses, mean_score, created_at
		 FROM scoring_runs ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.ScoringRun
	for rows.Next() {
		var run models.ScoringRun
		if err := rows.Scan(&run.ID, &run.Strategy, &run.RowCount, &run.CatalogSize, &run.CatalogMisses,
			&run.MeanScore, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// CountRuns returns the total number of stored runs.
func (s *SQLiteStorage) CountRuns(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scoring_runs`).Scan(&count)
	return count, err
}

// CountRows returns the total number of stored scored rows.
func (s *SQLiteStorage) CountRows(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scored_rows`).Scan(&count)
	return count, err
}

// DiskUsageBytes returns the on-disk size of the database, including
// the WAL side files while they exist.
func (s *SQLiteStorage) DiskUsageBytes() (int64, error) {
	return diskUsageBytes(databaseFiles(s.path)...)
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
