package tfidf

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDot(t *testing.T) {
	a := Vector{Indices: []int{0, 2, 5}, Values: []float64{1, 2, 3}}
	b := Vector{Indices: []int{2, 3, 5}, Values: []float64{4, 9, 1}}
	if got := Dot(a, b); !almostEqual(got, 2*4+3*1) {
		t.Errorf("Dot = %v, want 11", got)
	}
	if got := Dot(a, Vector{}); got != 0 {
		t.Errorf("Dot with empty = %v, want 0", got)
	}
}

func TestCosine(t *testing.T) {
	a := Vector{Indices: []int{0, 1}, Values: []float64{3, 4}}
	t.Run("identical vectors", func(t *testing.T) {
		if got := Cosine(a, a); !almostEqual(got, 1) {
			t.Errorf("Cosine(a,a) = %v, want 1", got)
		}
	})
	t.Run("orthogonal vectors", func(t *testing.T) {
		b := Vector{Indices: []int{2}, Values: []float64{7}}
		if got := Cosine(a, b); got != 0 {
			t.Errorf("Cosine = %v, want 0", got)
		}
	})
	t.Run("empty vector yields zero", func(t *testing.T) {
		if got := Cosine(a, Vector{}); got != 0 {
			t.Errorf("Cosine with empty = %v, want 0", got)
		}
		if got := Cosine(Vector{}, Vector{}); got != 0 {
			t.Errorf("Cosine of two empties = %v, want 0", got)
		}
	})
}

func TestNormalizeL2(t *testing.T) {
	v := Vector{Indices: []int{0, 1}, Values: []float64{3, 4}}
	normalizeL2(v)
	if !almostEqual(Norm(v), 1) {
		t.Errorf("norm after normalize = %v, want 1", Norm(v))
	}
	empty := Vector{}
	normalizeL2(empty)
	if !empty.IsZero() {
		t.Error("empty vector should stay empty")
	}
}
