package utils

import "testing"

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{56.6666, 56.7},
		{56.64, 56.6},
		{99.95, 100},
		{0.04, 0},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, want 0", got)
	}
	if got := Mean([]float64{10, 30, 50}); got != 30 {
		t.Errorf("Mean = %v, want 30", got)
	}
}
