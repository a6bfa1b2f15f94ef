// Package resolve maps loosely-named input fields onto the canonical
// record types. Header matching is exact equality of normalized names;
// there is no fuzzy or positional detection.
package resolve

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ateneolabs/concordia/internal/models"
	"github.com/ateneolabs/concordia/internal/textnorm"
)

// Candidates lists the accepted header names for each canonical field,
// tried in order. Names are compared after normalization, so case and
// accents never matter.
type Candidates struct {
	ID            []string `yaml:"id"`
	Year          []string `yaml:"year"`
	ObjectiveID   []string `yaml:"objective_id"`
	ObjectiveText []string `yaml:"objective_text"`
	ActivityText  []string `yaml:"activity_text"`
	DetailText    []string `yaml:"detail_text"`
}

// DefaultCandidates covers the canonical JSON names plus the headers of
// the institutional reporting spreadsheets.
func DefaultCandidates() *Candidates {
	return &Candidates{
		ID:            []string{"id", "record_id", "nro"},
		Year:          []string{"year", "año", "anio"},
		ObjectiveID:   []string{"objective_id", "código", "codigo objetivo", "cod objetivo"},
		ObjectiveText: []string{"objective_text", "objetivo específico", "objetivos específicos", "objetivo"},
		ActivityText:  []string{"activity_text", "actividad relacionada", "actividad única", "actividad"},
		DetailText:    []string{"detail_text", "detalle", "detalle actividad"},
	}
}

// ApplyDefaults fills nil candidate lists with defaults, so a config
// can override only the fields it needs.
func (c *Candidates) ApplyDefaults() {
	defaults := DefaultCandidates()

	if c.ID == nil {
		c.ID = defaults.ID
	}
	if c.Year == nil {
		c.Year = defaults.Year
	}
	if c.ObjectiveID == nil {
		c.ObjectiveID = defaults.ObjectiveID
	}
	if c.ObjectiveText == nil {
		c.ObjectiveText = defaults.ObjectiveText
	}
	if c.ActivityText == nil {
		c.ActivityText = defaults.ActivityText
	}
	if c.DetailText == nil {
		c.DetailText = defaults.DetailText
	}
}

// Resolver resolves loose row maps against a fixed candidate set.
type Resolver struct {
	id            []string
	year          []string
	objectiveID   []string
	objectiveText []string
	activityText  []string
	detailText    []string
}

// NewResolver builds a resolver with pre-normalized candidate names.
// A nil candidates value uses the defaults.
func NewResolver(candidates *Candidates) *Resolver {
	if candidates == nil {
		candidates = DefaultCandidates()
	}
	candidates.ApplyDefaults()

	return &Resolver{
		id:            normalizeAll(candidates.ID),
		year:          normalizeAll(candidates.Year),
		objectiveID:   normalizeAll(candidates.ObjectiveID),
		objectiveText: normalizeAll(candidates.ObjectiveText),
		activityText:  normalizeAll(candidates.ActivityText),
		detailText:    normalizeAll(candidates.DetailText),
	}
}

// Records resolves each row map to a TextRecord. Rows without an id
// field are numbered "1".."n" by position.
func (r *Resolver) Records(rows []map[string]any) []models.TextRecord {
	records := make([]models.TextRecord, len(rows))
	for i, row := range rows {
		fields := normalizeKeys(row)
		rec := models.TextRecord{
			ID:            first(fields, r.id),
			Year:          first(fields, r.year),
			ObjectiveID:   first(fields, r.objectiveID),
			ObjectiveText: first(fields, r.objectiveText),
			ActivityText:  first(fields, r.activityText),
			DetailText:    first(fields, r.detailText),
		}
		if rec.ID == "" {
			rec.ID = strconv.Itoa(i + 1)
		}
		records[i] = rec
	}
	return records
}

// Catalog resolves catalog row maps to entries.
func (r *Resolver) Catalog(rows []map[string]any) []models.CatalogEntry {
	entries := make([]models.CatalogEntry, len(rows))
	for i, row := range rows {
		fields := normalizeKeys(row)
		entries[i] = models.CatalogEntry{
			ObjectiveID:   first(fields, r.objectiveID),
			ObjectiveText: first(fields, r.objectiveText),
		}
	}
	return entries
}

// first returns the value of the first candidate present in the fields.
func first(fields map[string]string, candidates []string) string {
	for _, c := range candidates {
		if v, ok := fields[c]; ok {
			return v
		}
	}
	return ""
}

// normalizeKeys rebuilds a row with normalized keys and stringified
// values. Keys are visited in sorted order so colliding normalized
// names resolve the same way every run.
func normalizeKeys(row map[string]any) map[string]string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make(map[string]string, len(row))
	for _, k := range keys {
		nk := textnorm.Normalize(k)
		if _, ok := fields[nk]; ok {
			continue
		}
		fields[nk] = stringify(row[k])
	}
	return fields
}

// stringify coerces JSON scalar values to text. Null and nested values
// resolve to the empty string, which downstream scoring treats as
// missing text.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

func normalizeAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = textnorm.Normalize(n)
	}
	return out
}
