package scoring

import (
	"strings"

	"github.com/ateneolabs/concordia/internal/models"
	"github.com/ateneolabs/concordia/internal/textnorm"
	"github.com/ateneolabs/concordia/pkg/utils"
)

// KeywordScorer is the rule-based strategy: no fitted model, each row
// scored on its own from the keyword groups of its objective's thematic
// category. Keywords, action verbs and input text all go through the
// same normalization, so accented configuration matches stripped text.
type KeywordScorer struct {
	categories        []Category
	defaultCategory   string
	actionVerbs       []string
	semanticWeight    float64
	thematicWeight    float64
	operationalWeight float64
}

// NewKeywordScorer builds a scorer with pre-normalized keyword lists.
func NewKeywordScorer(cfg *Config) *KeywordScorer {
	categories := make([]Category, len(cfg.Categories))
	for i, c := range cfg.Categories {
		keywords := make([]string, len(c.Keywords))
		for j, k := range c.Keywords {
			keywords[j] = textnorm.Normalize(k)
		}
		categories[i] = Category{Name: c.Name, Keywords: keywords}
	}

	verbs := make([]string, len(cfg.ActionVerbs))
	for i, v := range cfg.ActionVerbs {
		verbs[i] = textnorm.Normalize(v)
	}

	return &KeywordScorer{
		categories:        categories,
		defaultCategory:   cfg.DefaultCategory,
		actionVerbs:       verbs,
		semanticWeight:    cfg.SemanticWeight,
		thematicWeight:    cfg.ThematicWeight,
		operationalWeight: cfg.OperationalWeight,
	}
}

// ScoreRow scores one record. An empty activity is forced to 0 without
// consulting the rules.
func (s *KeywordScorer) ScoreRow(rec *models.TextRecord) models.ScoredRow {
	objective := textnorm.Normalize(rec.ObjectiveText)
	activity := textnorm.Normalize(rec.CombinedActivity())

	category, keywords := s.categorize(objective)

	row := models.ScoredRow{
		RecordID:      rec.ID,
		Year:          rec.Year,
		ObjectiveID:   rec.ObjectiveID,
		ObjectiveText: rec.ObjectiveText,
		Category:      category,
	}

	if activity == "" {
		row.Level = LevelFromScore(0)
		row.Bucket = BucketFromScore(0)
		return row
	}

	semantic := matchScore(activity, semanticKeywords(objective))
	thematic := matchScore(activity, keywords)
	operational := s.operationalScore(activity)

	score := utils.Round1((semantic*s.semanticWeight +
		thematic*s.thematicWeight +
		operational*s.operationalWeight) * 100)

	row.Score = score
	row.Level = LevelFromScore(score)
	row.Bucket = BucketFromScore(score)
	return row
}

// categorize returns the first category with a keyword present in the
// objective text, together with its keyword list.
func (s *KeywordScorer) categorize(objective string) (string, []string) {
	for _, c := range s.categories {
		for _, k := range c.Keywords {
			if k != "" && strings.Contains(objective, k) {
				return c.Name, c.Keywords
			}
		}
	}
	return s.defaultCategory, nil
}

// matchScore returns 1 / 0.5 / 0 depending on how many keywords appear
// in the activity text.
func matchScore(activity string, keywords []string) float64 {
	matches := 0
	for _, k := range keywords {
		if k != "" && strings.Contains(activity, k) {
			matches++
		}
	}
	switch {
	case matches >= 2:
		return 1.0
	case matches == 1:
		return 0.5
	default:
		return 0.0
	}
}

// semanticKeywords picks the objective's own words longer than three
// runes as a cheap stand-in for its content-bearing terms.
func semanticKeywords(objective string) []string {
	var words []string
	for _, w := range strings.Fields(objective) {
		if len([]rune(w)) > 3 {
			words = append(words, w)
		}
	}
	return words
}

func (s *KeywordScorer) operationalScore(activity string) float64 {
	for _, v := range s.actionVerbs {
		if v != "" && strings.Contains(activity, v) {
			return 1.0
		}
	}
	if len([]rune(strings.TrimSpace(activity))) > 3 {
		return 0.5
	}
	return 0.0
}
