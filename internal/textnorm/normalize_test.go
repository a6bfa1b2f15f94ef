package textnorm

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"accents and double space", "Árbol  Único", "arbol unico"},
		{"empty", "", ""},
		{"whitespace only", "   \t\n ", ""},
		{"already normalized", "monitoreo de indicadores", "monitoreo de indicadores"},
		{"upper case with enye", "DISEÑAR", "disenar"},
		{"mixed interior whitespace", "a\tb\n c", "a b c"},
		{"accented keywords", "Evaluación y Articulación", "evaluacion y articulacion"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"drops single chars", "a de la y el plan", []string{"de", "la", "el", "plan"}},
		{"splits on punctuation", "mejora, seguimiento; evaluacion", []string{"mejora", "seguimiento", "evaluacion"}},
		{"digits and underscore", "obj_1 2024 plan", []string{"obj_1", "2024", "plan"}},
		{"empty", "", nil},
		{"only separators", "-- . ,", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Tokenize(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
