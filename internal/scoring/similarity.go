package scoring

import (
	"sort"

	"github.com/ateneolabs/concordia/internal/models"
	"github.com/ateneolabs/concordia/internal/tfidf"
)

// SimilarityScorer ranks each activity against every catalog objective
// with a TF-IDF model fitted for this run only. Models are never reused
// across runs.
type SimilarityScorer struct {
	catalog     *Catalog
	vectorizer  *tfidf.Vectorizer
	catalogVecs []tfidf.Vector
}

// NewSimilarityScorer fits the run's model on the catalog texts plus
// the rows' combined activity texts. Fitting is single-threaded; the
// returned scorer is safe for concurrent ScoreRow calls.
func NewSimilarityScorer(cfg *Config, catalog *Catalog, rows []models.TextRecord) *SimilarityScorer {
	corpus := make([]string, 0, catalog.Len()+len(rows))
	corpus = append(corpus, catalog.Texts()...)
	for i := range rows {
		corpus = append(corpus, rows[i].CombinedActivity())
	}

	v := tfidf.NewVectorizer(cfg.NgramMin, cfg.NgramMax, cfg.Stopwords)
	v.Fit(corpus)

	return &SimilarityScorer{
		catalog:     catalog,
		vectorizer:  v,
		catalogVecs: v.Transform(catalog.Texts()),
	}
}

// ScoreRow scores one record against the fitted catalog. A record whose
// objective id is missing from the catalog cannot be ranked and scores
// 0 with a nil rank.
func (s *SimilarityScorer) ScoreRow(rec *models.TextRecord) models.ScoredRow {
	row := models.ScoredRow{
		RecordID:      rec.ID,
		Year:          rec.Year,
		ObjectiveID:   rec.ObjectiveID,
		ObjectiveText: rec.ObjectiveText,
	}

	selected, ok := s.catalog.Lookup(rec.ObjectiveID)
	if !ok {
		row.CatalogMiss = true
		row.Bucket = BucketFromScore(0)
		return row
	}

	activityVec := s.vectorizer.Transform([]string{rec.CombinedActivity()})[0]
	sims := make([]float64, len(s.catalogVecs))
	for i := range s.catalogVecs {
		sims[i] = tfidf.Cosine(activityVec, s.catalogVecs[i])
	}

	// Descending similarity; ties keep catalog order so ranking is
	// deterministic.
	order := make([]int, len(sims))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sims[order[a]] > sims[order[b]]
	})

	rank := 1
	for pos, idx := range order {
		if idx == selected {
			rank = pos + 1
			break
		}
	}

	simSelected := sims[selected]
	simBest := sims[order[0]]
	score := notchFromRanking(rank, simSelected, simBest)

	row.Score = score
	row.Level = int(score)
	row.Bucket = BucketFromScore(score)
	row.BestObjectiveID = s.catalog.Entry(order[0]).ObjectiveID
	row.SimilarityChosen = simSelected
	row.SimilarityBest = simBest
	row.RankChosen = &rank
	return row
}
