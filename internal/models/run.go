package models

import "time"

// ScoringRun is a persisted scoring job: its aggregates live on the run
// row, the per-record verdicts in the scored_rows table.
type ScoringRun struct {
	ID            string    `json:"id"`
	Strategy      string    `json:"strategy"`
	RowCount      int       `json:"row_count"`
	CatalogSize   int       `json:"catalog_size"`
	CatalogMisses int       `json:"catalog_misses"`
	MeanScore     float64   `json:"mean_score"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewRunFromResult builds the persisted record of one scoring result.
// CreatedAt is left zero; storage stamps it on insert.
func NewRunFromResult(id string, result *ScoreResult) *ScoringRun {
	return &ScoringRun{
		ID:            id,
		Strategy:      result.Strategy,
		RowCount:      result.Summary.Rows,
		CatalogSize:   result.Summary.CatalogSize,
		CatalogMisses: result.Summary.CatalogMisses,
		MeanScore:     result.Summary.MeanScore,
	}
}
