package scoring

import (
	"testing"

	"github.com/ateneolabs/concordia/internal/models"
)

func TestKeywordScorer_Categorize(t *testing.T) {
	scorer := NewKeywordScorer(DefaultConfig())

	tests := []struct {
		name      string
		objective string
		want      string
	}{
		{"quality keyword", "Fortalecer el monitoreo institucional", "calidad"},
		{"accented keyword in upper case", "EVALUACIÓN de programas acreditados", "calidad"},
		{"first category wins", "Desarrollar proyectos de gestión", "investigación"},
		{"agreement keyword", "Firmar convenios con universidades", "convenios"},
		{"no keyword falls back", "Ampliar becas estudiantiles", "other"},
		{"empty objective falls back", "", "other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := scorer.ScoreRow(&models.TextRecord{
				ObjectiveID:   "1",
				ObjectiveText: tt.objective,
				ActivityText:  "Realizar tareas",
			})
			if row.Category != tt.want {
				t.Errorf("category = %q, want %q", row.Category, tt.want)
			}
		})
	}
}

func TestKeywordScorer_ScoreRow(t *testing.T) {
	scorer := NewKeywordScorer(DefaultConfig())

	tests := []struct {
		name       string
		objective  string
		activity   string
		wantScore  float64
		wantLevel  int
		wantBucket string
	}{
		{
			// Two objective words, three thematic keywords and an
			// action verb all hit.
			"full match",
			"Fortalecer el monitoreo y la evaluación institucional",
			"Realizar monitoreo de indicadores y evaluación continua",
			100.0, 100, "High",
		},
		{
			// One hit per group, no action verb, non-trivial length.
			"half match",
			"Fortalecer el monitoreo y la evaluación institucional",
			"Monitoreo continuo",
			50.0, 50, "Medium",
		},
		{
			// Accent-stripped verb and keyword still match.
			"accented verb",
			"EVALUACIÓN de programas",
			"Diseñar la evaluación",
			60.0, 70, "Medium",
		},
		{
			"unrelated activity",
			"Fortalecer el monitoreo y la evaluación institucional",
			"xy",
			0.0, 0, "Low",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := scorer.ScoreRow(&models.TextRecord{
				ObjectiveID:   "1",
				ObjectiveText: tt.objective,
				ActivityText:  tt.activity,
			})
			if row.Score != tt.wantScore {
				t.Errorf("score = %v, want %v", row.Score, tt.wantScore)
			}
			if row.Level != tt.wantLevel {
				t.Errorf("level = %d, want %d", row.Level, tt.wantLevel)
			}
			if row.Bucket != tt.wantBucket {
				t.Errorf("bucket = %q, want %q", row.Bucket, tt.wantBucket)
			}
		})
	}
}

func TestKeywordScorer_EmptyActivity(t *testing.T) {
	scorer := NewKeywordScorer(DefaultConfig())

	for _, activity := range []string{"", "   "} {
		row := scorer.ScoreRow(&models.TextRecord{
			ObjectiveID:   "1",
			ObjectiveText: "Fortalecer el monitoreo institucional",
			ActivityText:  activity,
		})
		if row.Score != 0 {
			t.Errorf("score for activity %q = %v, want 0", activity, row.Score)
		}
		if row.Level != 0 || row.Bucket != "Low" {
			t.Errorf("level/bucket for activity %q = %d/%q, want 0/Low",
				activity, row.Level, row.Bucket)
		}
		if row.Category != "calidad" {
			t.Errorf("category for activity %q = %q, want calidad", activity, row.Category)
		}
	}
}

func TestKeywordScorer_DetailTextCounts(t *testing.T) {
	scorer := NewKeywordScorer(DefaultConfig())

	without := scorer.ScoreRow(&models.TextRecord{
		ObjectiveID:   "1",
		ObjectiveText: "Fortalecer el monitoreo institucional",
		ActivityText:  "Tarea",
	})
	with := scorer.ScoreRow(&models.TextRecord{
		ObjectiveID:   "1",
		ObjectiveText: "Fortalecer el monitoreo institucional",
		ActivityText:  "Tarea",
		DetailText:    "realizar monitoreo de indicadores",
	})
	if with.Score <= without.Score {
		t.Errorf("detail text should raise the score: with %v, without %v",
			with.Score, without.Score)
	}
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name     string
		activity string
		keywords []string
		want     float64
	}{
		{"two hits", "realizar monitoreo y seguimiento", []string{"monitoreo", "seguimiento", "mejora"}, 1.0},
		{"one hit", "realizar monitoreo", []string{"monitoreo", "seguimiento"}, 0.5},
		{"substring hit", "revision de indicadores", []string{"indicador"}, 0.5},
		{"no hits", "tareas varias", []string{"monitoreo"}, 0.0},
		{"no keywords", "tareas varias", nil, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchScore(tt.activity, tt.keywords); got != tt.want {
				t.Errorf("matchScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSemanticKeywords(t *testing.T) {
	got := semanticKeywords("ampliar la red de becas estudiantiles")
	want := []string{"ampliar", "becas", "estudiantiles"}
	if len(got) != len(want) {
		t.Fatalf("semanticKeywords() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("semanticKeywords()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
