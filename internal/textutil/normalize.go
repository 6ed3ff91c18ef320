package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining marks left behind by NFD decomposition,
// turning "ç" into "c" and "ã" into "a".
var stripMarks = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize lowercases text and strips diacritics. Characters that do
// not decompose to an ASCII base are kept as-is; the transform never
// fails for valid UTF-8, and invalid bytes fall back to plain
// lowercasing.
func Normalize(text string) string {
	stripped, _, err := transform.String(stripMarks, text)
	if err != nil {
		return strings.ToLower(text)
	}
	return strings.ToLower(stripped)
}

// NormalizeAll returns a new slice with Normalize applied to every
// element.
func NormalizeAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Normalize(v)
	}
	return out
}

// CollapseWhitespace replaces runs of whitespace (including newlines
// from multi-line OCR blocks) with single spaces and trims the result.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
