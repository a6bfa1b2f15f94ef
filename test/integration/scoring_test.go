// Package integration provides full-stack tests (requires real storage).
package integration

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/ateneolabs/concordia/internal/config"
	"github.com/ateneolabs/concordia/internal/models"
	"github.com/ateneolabs/concordia/internal/resolve"
	"github.com/ateneolabs/concordia/internal/scoring"
	"github.com/ateneolabs/concordia/internal/storage"
)

func TestIntegration_ScoreAndPersist(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Storage: config.StorageConfig{DatabasePath: filepath.Join(dir, "runs.db")},
	}
	config.ApplyDefaults(cfg)

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	engine := scoring.NewEngine(&cfg.Scoring, zap.NewNop())
	resolver := resolve.NewResolver(&cfg.Resolve)
	ctx := context.Background()

	catalog := resolver.Catalog([]map[string]any{
		{"Código": "OE01", "Objetivo específico": "Fortalecer la capacitación docente"},
		{"Código": "OE02", "Objetivo específico": "Ampliar los convenios interinstitucionales"},
	})
	rows := resolver.Records([]map[string]any{
		{"Nro": float64(1), "Año": float64(2024), "Código": "OE01",
			"Objetivo específico": "Fortalecer la capacitación docente",
			"Actividad única":     "Fortalecer la capacitación docente"},
		{"Nro": float64(2), "Año": float64(2024), "Código": "OE05",
			"Objetivo específico": "Objetivo retirado del plan",
			"Actividad única":     "Dictado de seminario abierto"},
	})

	result, err := engine.Score(ctx, &models.ScoreRequest{Rows: rows, Catalog: catalog})
	if err != nil {
		t.Fatal(err)
	}
	if result.Rows[0].Score != 100 {
		t.Errorf("verbatim activity scored %.1f, want 100", result.Rows[0].Score)
	}
	if !result.Rows[1].CatalogMiss || result.Rows[1].Score != 0 {
		t.Errorf("off-catalog row: miss=%v score=%.1f, want true and 0",
			result.Rows[1].CatalogMiss, result.Rows[1].Score)
	}

	run := models.NewRunFromResult("integration-run", result)
	if err := store.CreateRun(ctx, run, result.Rows); err != nil {
		t.Fatal(err)
	}

	persisted, err := store.GetRunRows(ctx, "integration-run")
	if err != nil {
		t.Fatal(err)
	}
	if len(persisted) != 2 || persisted[0].Score != 100 {
		t.Errorf("got %d persisted rows back, first score %.1f", len(persisted), persisted[0].Score)
	}
	if n, err := store.CountRuns(ctx); err != nil || n != 1 {
		t.Errorf("stored run count = %d (err %v), want 1", n, err)
	}
}
