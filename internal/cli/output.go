// Package cli provides CLI output helpers for Concordia.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ateneolabs/concordia/internal/models"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteScoreResult writes a scoring result to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteScoreResult(w io.Writer, result *models.ScoreResult, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		writeScoreResultText(w, result)
		return nil
	}
}

func writeScoreResultText(w io.Writer, result *models.ScoreResult) {
	s := result.Summary
	fmt.Fprintf(w, "\nScored %d rows in %dms (strategy: %s, mean score: %.2f)\n",
		s.Rows, result.ScoreTimeMS, result.Strategy, s.MeanScore)
	fmt.Fprintf(w, "Catalog: %d objectives", s.CatalogSize)
	if s.CatalogMisses > 0 {
		fmt.Fprintf(w, ", %d misses", s.CatalogMisses)
	}
	fmt.Fprintf(w, "\n\n")
	for i := range result.Rows {
		writeOneRow(w, &result.Rows[i])
	}
}

func writeOneRow(w io.Writer, row *models.ScoredRow) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	id := row.RecordID
	if id == "" {
		id = "-"
	}
	fmt.Fprintf(w, "Row %s | Objective: %s | Score: %.1f | Level: %d (%s)\n",
		id, row.ObjectiveID, row.Score, row.Level, row.Bucket)
	if row.ObjectiveText != "" {
		fmt.Fprintf(w, "Objective: %s\n", Truncate(row.ObjectiveText, 100))
	}
	if row.CatalogMiss {
		fmt.Fprintln(w, "Objective not found in catalog")
	} else if row.RankChosen != nil {
		fmt.Fprintf(w, "Similarity: chosen %.4f, best %.4f (%s, rank %d)\n",
			row.SimilarityChosen, row.SimilarityBest, row.BestObjectiveID, *row.RankChosen)
	}
	if row.Category != "" {
		fmt.Fprintf(w, "Category: %s\n", row.Category)
	}
	fmt.Fprintln(w)
}

// WriteRunList writes stored runs to w in the given format.
func WriteRunList(w io.Writer, runs []*models.ScoringRun, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	default:
		fmt.Fprintf(w, "\nFound %d runs\n\n", len(runs))
		if len(runs) == 0 {
			return nil
		}
		fmt.Fprintf(w, "%-36s  %-10s  %5s  %6s  %s\n", "ID", "STRATEGY", "ROWS", "MEAN", "CREATED")
		for _, run := range runs {
			fmt.Fprintf(w, "%-36s  %-10s  %5d  %6.2f  %s\n",
				run.ID, run.Strategy, run.RowCount, run.MeanScore,
				run.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	}
}

// WriteRun writes one stored run with its scored rows.
func WriteRun(w io.Writer, run *models.ScoringRun, rows []models.ScoredRow, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"run": run, "rows": rows})
	default:
		fmt.Fprintf(w, "\nRun %s (strategy: %s)\n", run.ID, run.Strategy)
		fmt.Fprintf(w, "Created: %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "Rows: %d | Catalog: %d | Misses: %d | Mean score: %.2f\n\n",
			run.RowCount, run.CatalogSize, run.CatalogMisses, run.MeanScore)
		for i := range rows {
			writeOneRow(w, &rows[i])
		}
		return nil
	}
}

// PrintScoreResult prints a scoring result to stdout in text format.
func PrintScoreResult(result *models.ScoreResult) {
	_ = WriteScoreResult(os.Stdout, result, OutputText)
}

// Truncate truncates s to maxLen and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// TruncateWords returns up to maxWords from the space-separated string.
func TruncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
