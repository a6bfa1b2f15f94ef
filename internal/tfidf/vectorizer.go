// Package tfidf builds the shared term-weighting model used by the
// similarity scorer: a TF-IDF vectorizer over unigrams and bigrams with a
// fixed stopword list, fit jointly on objective and activity texts so both
// sides share one vocabulary.
package tfidf

import (
	"math"
	"sort"
	"strings"

	"github.com/ateneolabs/concordia/internal/textnorm"
)

// Vectorizer converts normalized texts into sparse TF-IDF vectors.
// Fit builds the vocabulary and document frequencies; Transform weights
// raw term counts by smoothed IDF and L2-normalizes each vector.
// A Vectorizer is immutable after Fit and safe for concurrent Transform.
type Vectorizer struct {
	ngramMin  int
	ngramMax  int
	stopwords map[string]struct{}

	vocabulary map[string]int
	idf        []float64
	docs       int
}

// NewVectorizer returns a vectorizer for the given n-gram range and
// stopword list. Out-of-range n-gram bounds fall back to unigrams+bigrams.
// Stopwords are matched against normalized tokens, so the caller may pass
// them accented; they are removed before n-gram formation, meaning bigrams
// span removed stopwords.
func NewVectorizer(ngramMin, ngramMax int, stopwords []string) *Vectorizer {
	if ngramMin < 1 {
		ngramMin = 1
	}
	if ngramMax < ngramMin {
		ngramMax = ngramMin + 1
	}
	sw := make(map[string]struct{}, len(stopwords))
	for _, s := range stopwords {
		if n := textnorm.Normalize(s); n != "" {
			sw[n] = struct{}{}
		}
	}
	return &Vectorizer{ngramMin: ngramMin, ngramMax: ngramMax, stopwords: sw}
}

// Fit builds the vocabulary and IDF weights from corpus. Terms appearing
// in a single document are kept (minimum document frequency is 1). An
// empty corpus yields an empty vocabulary; Fit never fails.
func (v *Vectorizer) Fit(corpus []string) {
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, f := range v.features(text) {
			seen[f] = struct{}{}
		}
		for f := range seen {
			df[f]++
		}
	}

	// Deterministic vocabulary indices regardless of map iteration order.
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v.docs = len(corpus)
	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	for i, term := range terms {
		v.vocabulary[term] = i
		// Smoothed IDF: ln((1+n)/(1+df)) + 1. Never zero, never negative.
		v.idf[i] = math.Log(float64(1+v.docs)/float64(1+df[term])) + 1
	}
}

// Transform converts each text into an L2-normalized TF-IDF vector over
// the fitted vocabulary. Texts with no in-vocabulary terms produce the
// empty vector. Must be called after Fit.
func (v *Vectorizer) Transform(texts []string) []Vector {
	out := make([]Vector, len(texts))
	for i, text := range texts {
		out[i] = v.transformOne(text)
	}
	return out
}

// FitTransform fits on corpus and returns its vectors in input order.
func (v *Vectorizer) FitTransform(corpus []string) []Vector {
	v.Fit(corpus)
	return v.Transform(corpus)
}

// VocabularySize returns the number of fitted terms.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocabulary)
}

func (v *Vectorizer) transformOne(text string) Vector {
	counts := make(map[int]float64)
	for _, f := range v.features(text) {
		if idx, ok := v.vocabulary[f]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return Vector{}
	}
	vec := Vector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)
	for _, idx := range vec.Indices {
		vec.Values = append(vec.Values, counts[idx]*v.idf[idx])
	}
	normalizeL2(vec)
	return vec
}

// features normalizes and tokenizes text, drops stopwords, and emits
// n-grams of the configured sizes over the remaining token sequence.
func (v *Vectorizer) features(text string) []string {
	raw := textnorm.Tokenize(textnorm.Normalize(text))
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if _, stop := v.stopwords[tok]; !stop {
			tokens = append(tokens, tok)
		}
	}
	var feats []string
	for n := v.ngramMin; n <= v.ngramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			feats = append(feats, strings.Join(tokens[i:i+n], " "))
		}
	}
	return feats
}
