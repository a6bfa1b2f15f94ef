package models

import (
	"testing"
)

func TestScoreRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     *ScoreRequest
		wantErr bool
	}{
		{"defaults strategy", &ScoreRequest{}, false},
		{"similarity", &ScoreRequest{Strategy: "similarity"}, false},
		{"keyword", &ScoreRequest{Strategy: "keyword"}, false},
		{"unknown strategy", &ScoreRequest{Strategy: "embedding"}, true},
		{"empty rows are valid", &ScoreRequest{Strategy: "keyword", Rows: nil}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && tt.req.Strategy == "" {
				t.Error("expected default strategy to be set")
			}
		})
	}
}

func TestParseStrategy(t *testing.T) {
	if s, err := ParseStrategy("similarity"); err != nil || s != StrategySimilarity {
		t.Errorf("ParseStrategy(similarity) = %v, %v", s, err)
	}
	if s, err := ParseStrategy("keyword"); err != nil || s != StrategyKeyword {
		t.Errorf("ParseStrategy(keyword) = %v, %v", s, err)
	}
	if _, err := ParseStrategy("tfidf"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestTextRecord_CombinedActivity(t *testing.T) {
	tests := []struct {
		name   string
		record TextRecord
		want   string
	}{
		{
			"activity only",
			TextRecord{ActivityText: "Realizar monitoreo"},
			"Realizar monitoreo",
		},
		{
			"activity with detail",
			TextRecord{ActivityText: "Realizar monitoreo", DetailText: "de indicadores"},
			"Realizar monitoreo de indicadores",
		},
		{
			"empty record",
			TextRecord{},
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.CombinedActivity(); got != tt.want {
				t.Errorf("CombinedActivity() = %q, want %q", got, tt.want)
			}
		})
	}
}
