package tfidf

import (
	"math"
	"reflect"
	"testing"
)

func TestVectorizer_Features(t *testing.T) {
	v := NewVectorizer(1, 2, []string{"de", "la"})
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "stopwords removed before bigrams",
			in:   "monitoreo de indicadores",
			want: []string{"monitoreo", "indicadores", "monitoreo indicadores"},
		},
		{
			name: "single token has no bigram",
			in:   "capacitacion",
			want: []string{"capacitacion"},
		},
		{
			name: "empty text",
			in:   "",
			want: nil,
		},
		{
			name: "all stopwords",
			in:   "de la de",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.features(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("features(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVectorizer_FitTransform(t *testing.T) {
	v := NewVectorizer(1, 2, nil)
	corpus := []string{
		"mejora de la calidad educativa",
		"seguimiento de indicadores de calidad",
	}
	vecs := v.FitTransform(corpus)
	if len(vecs) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vecs))
	}
	for i, vec := range vecs {
		if vec.IsZero() {
			t.Errorf("vector %d is empty", i)
		}
		if n := Norm(vec); math.Abs(n-1) > 1e-9 {
			t.Errorf("vector %d norm = %v, want 1", i, n)
		}
	}
	// "calidad" is shared, so the documents overlap but are not identical.
	sim := Cosine(vecs[0], vecs[1])
	if sim <= 0 || sim >= 1 {
		t.Errorf("cross similarity = %v, want in (0,1)", sim)
	}
}

func TestVectorizer_IdenticalTextsFullSimilarity(t *testing.T) {
	v := NewVectorizer(1, 2, []string{"de"})
	text := "fortalecer la permanencia de estudiantes"
	vecs := v.FitTransform([]string{text, text})
	if got := Cosine(vecs[0], vecs[1]); math.Abs(got-1) > 1e-9 {
		t.Errorf("identical texts similarity = %v, want 1", got)
	}
}

func TestVectorizer_EmptyCorpus(t *testing.T) {
	v := NewVectorizer(1, 2, nil)
	vecs := v.FitTransform(nil)
	if len(vecs) != 0 {
		t.Errorf("expected no vectors, got %d", len(vecs))
	}
	if v.VocabularySize() != 0 {
		t.Errorf("vocabulary size = %d, want 0", v.VocabularySize())
	}
	// Transform after an empty fit still works and yields empty vectors.
	out := v.Transform([]string{"algo nuevo"})
	if len(out) != 1 || !out[0].IsZero() {
		t.Errorf("transform on empty vocabulary = %+v, want one empty vector", out)
	}
}

func TestVectorizer_OutOfVocabularyText(t *testing.T) {
	v := NewVectorizer(1, 2, nil)
	v.Fit([]string{"monitoreo permanente"})
	out := v.Transform([]string{"convenio marco"})
	if !out[0].IsZero() {
		t.Errorf("out-of-vocabulary text should produce empty vector, got %+v", out[0])
	}
}

func TestVectorizer_Deterministic(t *testing.T) {
	corpus := []string{
		"capacitacion docente continua",
		"proyecto de investigacion aplicada",
		"convenio con la comunidad",
	}
	a := NewVectorizer(1, 2, []string{"de", "con", "la"})
	b := NewVectorizer(1, 2, []string{"de", "con", "la"})
	va := a.FitTransform(corpus)
	vb := b.FitTransform(corpus)
	if !reflect.DeepEqual(va, vb) {
		t.Error("two fits over the same corpus should produce identical vectors")
	}
}

func TestVectorizer_AccentedStopwords(t *testing.T) {
	// Stopwords may arrive accented from config; matching happens after
	// normalization on both sides.
	v := NewVectorizer(1, 1, []string{"más"})
	feats := v.features("mas actividades")
	if !reflect.DeepEqual(feats, []string{"actividades"}) {
		t.Errorf("features = %v, want [actividades]", feats)
	}
}
