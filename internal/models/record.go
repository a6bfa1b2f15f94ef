// Package models defines the data contracts of the scoring engine:
// activity records and objective catalog entries on the way in, scored
// rows, summaries, and stored runs on the way out.
package models

// TextRecord is one reported activity row: the objective it was filed
// under and the free text describing the activity. Year is carried
// through for reporting and never used in scoring.
type TextRecord struct {
	ID            string `json:"id,omitempty"`
	Year          string `json:"year,omitempty"`
	ObjectiveID   string `json:"objective_id"`
	ObjectiveText string `json:"objective_text"`
	ActivityText  string `json:"activity_text"`
	DetailText    string `json:"detail_text,omitempty"`
}

// CombinedActivity returns the activity text enriched with the optional
// detail text. Detail is never scored alone.
func (r *TextRecord) CombinedActivity() string {
	if r.DetailText == "" {
		return r.ActivityText
	}
	return r.ActivityText + " " + r.DetailText
}

// CatalogEntry is one specific objective from the strategic plan.
// Within a scoring run an objective id uniquely determines its text.
type CatalogEntry struct {
	ObjectiveID   string `json:"objective_id"`
	ObjectiveText string `json:"objective_text"`
}
