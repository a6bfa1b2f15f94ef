package models

import "fmt"

// Strategy selects how rows are scored.
type Strategy string

const (
	// StrategySimilarity ranks each activity against the whole catalog
	// with TF-IDF cosine similarity.
	StrategySimilarity Strategy = "similarity"
	// StrategyKeyword scores each activity against the keyword groups
	// of its objective's thematic category.
	StrategyKeyword Strategy = "keyword"
)

// ParseStrategy maps a user-supplied name to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategySimilarity, StrategyKeyword:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown strategy: %s", s)
	}
}

// Consistency buckets over the 0-100 score scale.
const (
	BucketLow    = "Low"
	BucketMedium = "Medium"
	BucketHigh   = "High"
)

// ScoredRow is the scoring verdict for a single input record. Score is
// the strategy's native value and Level is that value mapped onto the
// seven-notch scale {0, 10, 30, 50, 70, 90, 100}; for the similarity
// strategy the two coincide.
//
// BestObjectiveID, the similarity pair, and RankChosen are diagnostics
// of the similarity strategy; Category belongs to the keyword strategy.
// RankChosen is nil when the selected objective was not in the catalog.
type ScoredRow struct {
	RecordID      string `json:"record_id,omitempty"`
	Year          string `json:"year,omitempty"`
	ObjectiveID   string `json:"objective_id"`
	ObjectiveText string `json:"objective_text,omitempty"`

	Score  float64 `json:"score"`
	Level  int     `json:"level"`
	Bucket string  `json:"bucket"`

	Category         string  `json:"category,omitempty"`
	BestObjectiveID  string  `json:"best_objective_id,omitempty"`
	SimilarityChosen float64 `json:"similarity_chosen"`
	SimilarityBest   float64 `json:"similarity_best"`
	RankChosen       *int    `json:"rank_chosen"`
	CatalogMiss      bool    `json:"catalog_miss,omitempty"`
}

// ScoreRequest is a scoring job: the rows to score, the objective
// catalog to score them against, and the strategy to use. An empty
// catalog is derived from the rows' own objective pairs.
type ScoreRequest struct {
	Strategy string         `json:"strategy,omitempty"`
	Rows     []TextRecord   `json:"rows"`
	Catalog  []CatalogEntry `json:"catalog,omitempty"`
}

// Validate normalizes the request in place, defaulting the strategy to
// similarity. An empty row set is valid and scores to an empty result.
func (r *ScoreRequest) Validate() error {
	if r.Strategy == "" {
		r.Strategy = string(StrategySimilarity)
	}
	if _, err := ParseStrategy(r.Strategy); err != nil {
		return err
	}
	return nil
}

// Summary aggregates one scoring run.
type Summary struct {
	Rows          int            `json:"rows"`
	CatalogSize   int            `json:"catalog_size"`
	CatalogMisses int            `json:"catalog_misses"`
	MeanScore     float64        `json:"mean_score"`
	Levels        map[int]int    `json:"levels"`
	Buckets       map[string]int `json:"buckets"`
}

// ScoreResult is the full outcome of a scoring request.
type ScoreResult struct {
	Strategy    string      `json:"strategy"`
	Rows        []ScoredRow `json:"rows"`
	Summary     Summary     `json:"summary"`
	ScoreTimeMS int64       `json:"score_time_ms"`
}
