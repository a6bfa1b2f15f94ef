// Package textnorm normalizes and tokenizes free text before scoring.
// All comparisons in the scoring engine (vector features, keyword
// containment, field-name resolution) operate on normalized text so that
// accents and casing never make two equal words look different.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases s, strips diacritics, collapses whitespace runs to
// single spaces, and trims. Empty or whitespace-only input returns "".
// Callers pass possibly-missing fields directly; nil-ish input is the
// caller's empty string, never an error here.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = stripDiacritics(s)
	return strings.Join(strings.Fields(s), " ")
}

// stripDiacritics removes combining marks: NFD decomposition, drop the
// marks, recompose. "árbol" becomes "arbol", "ñ" becomes "n".
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Tokenize splits s into word tokens: maximal runs of letters, digits, or
// underscore, keeping only runs of two or more runes. Single-character
// tokens carry no signal in this corpus and are dropped, matching the
// reference vectorizer. The input is expected to be normalized already.
func Tokenize(s string) []string {
	var tokens []string
	start := -1
	runeCount := 0
	for i, r := range s {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			runeCount++
			continue
		}
		if start >= 0 && runeCount >= 2 {
			tokens = append(tokens, s[start:i])
		}
		start = -1
		runeCount = 0
	}
	if start >= 0 && runeCount >= 2 {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
