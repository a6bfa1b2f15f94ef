package tfidf

import "math"

// Vector is a sparse term-weight vector. Indices are vocabulary positions
// in strictly ascending order; Values holds the weight at each position.
// The zero value is the empty vector.
type Vector struct {
	Indices []int
	Values  []float64
}

// IsZero reports whether the vector has no non-zero components.
func (v Vector) IsZero() bool {
	return len(v.Indices) == 0
}

// Dot returns the dot product of two sparse vectors.
func Dot(a, b Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm returns the L2 norm of v.
func Norm(v Vector) float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// normalizeL2 scales v in place to unit L2 norm. Zero vectors are unchanged.
func normalizeL2(v Vector) {
	n := Norm(v)
	if n == 0 {
		return
	}
	for i := range v.Values {
		v.Values[i] /= n
	}
}

// Cosine returns the cosine similarity of a and b, clamped to [0, 1].
// Either vector being empty yields 0; weights are non-negative so the
// result never goes negative, and clamping guards float drift above 1.
func Cosine(a, b Vector) float64 {
	if a.IsZero() || b.IsZero() {
		return 0
	}
	na, nb := Norm(a), Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	sim := Dot(a, b) / (na * nb)
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}
