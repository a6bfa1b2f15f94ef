package scoring

import "testing"

func TestNotchFromRanking(t *testing.T) {
	tests := []struct {
		name        string
		rank        int
		simSelected float64
		simBest     float64
		want        float64
	}{
		{"strong clear top match", 1, 0.50, 0.50, 100},
		{"high top match", 1, 0.35, 0.36, 90},
		{"good top match", 1, 0.25, 0.30, 70},
		{"weak top match", 1, 0.15, 0.15, 50},
		{"top match below good ratio", 1, 0.24, 0.30, 50},
		{"second close to best", 2, 0.28, 0.35, 30},
		{"third close to best", 3, 0.25, 0.35, 30},
		{"fourth place decent ratio", 4, 0.30, 0.35, 10},
		{"second far from best", 2, 0.10, 0.35, 0},
		{"vague text low rank", 5, 0.04, 0.09, 30},
		{"vague text top rank", 1, 0.05, 0.05, 30},
		{"best at threshold is not vague", 2, 0.02, 0.10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := notchFromRanking(tt.rank, tt.simSelected, tt.simBest)
			if got != tt.want {
				t.Errorf("notchFromRanking(%d, %v, %v) = %v, want %v",
					tt.rank, tt.simSelected, tt.simBest, got, tt.want)
			}
		})
	}
}

func TestLevelFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{0, 0},
		{4.9, 0},
		{5, 10},
		{19.9, 10},
		{20, 30},
		{39.9, 30},
		{40, 50},
		{56.7, 50},
		{60, 70},
		{79.9, 70},
		{80, 90},
		{94.9, 90},
		{95, 100},
		{100, 100},
	}
	for _, tt := range tests {
		if got := LevelFromScore(tt.score); got != tt.want {
			t.Errorf("LevelFromScore(%v) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestBucketFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, "Low"},
		{30.9, "Low"},
		{31, "Medium"},
		{70.9, "Medium"},
		{71, "High"},
		{100, "High"},
	}
	for _, tt := range tests {
		if got := BucketFromScore(tt.score); got != tt.want {
			t.Errorf("BucketFromScore(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
