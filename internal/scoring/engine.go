// Package scoring implements the consistency scoring engine: a TF-IDF
// similarity ranking strategy and a rule-based keyword strategy over
// activity rows and an objective catalog.
package scoring

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ateneolabs/concordia/internal/models"
	"github.com/ateneolabs/concordia/pkg/utils"
)

// rowScorer is either strategy once any per-run fitting is done. Both
// implementations are safe for concurrent ScoreRow calls.
type rowScorer interface {
	ScoreRow(rec *models.TextRecord) models.ScoredRow
}

// Engine scores batches of rows. It is stateless between runs: every
// Score call fits its own model when the strategy needs one, so scores
// never depend on earlier runs.
type Engine struct {
	config *Config
	logger *zap.Logger
}

// NewEngine creates a scoring engine with the given configuration.
func NewEngine(cfg *Config, logger *zap.Logger) *Engine {
	cfg.ApplyDefaults()
	return &Engine{config: cfg, logger: logger}
}

// Score runs one scoring job: build the catalog, fit the strategy,
// score every row, aggregate. Row order is preserved.
func (e *Engine) Score(ctx context.Context, req *models.ScoreRequest) (*models.ScoreResult, error) {
	startTime := time.Now()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	catalog := NewCatalog(req.Catalog)
	if catalog.Len() == 0 {
		catalog = CatalogFromRows(req.Rows)
	}

	var scorer rowScorer
	switch models.Strategy(req.Strategy) {
	case models.StrategyKeyword:
		scorer = NewKeywordScorer(e.config)
	default:
		scorer = NewSimilarityScorer(e.config, catalog, req.Rows)
	}

	rows := make([]models.ScoredRow, len(req.Rows))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Workers)

	for i := range req.Rows {
		i := i
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			rows[i] = scorer.ScoreRow(&req.Rows[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &models.ScoreResult{
		Strategy:    req.Strategy,
		Rows:        rows,
		Summary:     Summarize(rows, catalog.Len()),
		ScoreTimeMS: time.Since(startTime).Milliseconds(),
	}

	e.logger.Info("scoring run complete",
		zap.String("strategy", req.Strategy),
		zap.Int("rows", len(rows)),
		zap.Int("catalog_size", catalog.Len()),
		zap.Int("catalog_misses", result.Summary.CatalogMisses),
		zap.Float64("mean_score", result.Summary.MeanScore),
		zap.Int64("score_time_ms", result.ScoreTimeMS))

	return result, nil
}

// Summarize aggregates scored rows for reporting. The mean is over the
// native scores, not the levels.
func Summarize(rows []models.ScoredRow, catalogSize int) models.Summary {
	summary := models.Summary{
		Rows:        len(rows),
		CatalogSize: catalogSize,
		Levels:      make(map[int]int),
		Buckets:     make(map[string]int),
	}

	scores := make([]float64, 0, len(rows))
	for i := range rows {
		scores = append(scores, rows[i].Score)
		summary.Levels[rows[i].Level]++
		summary.Buckets[rows[i].Bucket]++
		if rows[i].CatalogMiss {
			summary.CatalogMisses++
		}
	}
	summary.MeanScore = utils.Round2(utils.Mean(scores))
	return summary
}
