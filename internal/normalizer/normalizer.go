// Package normalizer splits text into grapheme clusters and folds case for comparison.
package normalizer

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
)

// Graphemes splits s into user-perceived characters (extended grapheme clusters).
// Combining sequences, flags and ZWJ emoji each count as one element.
func Graphemes(s string) []string {
	if s == "" {
		return nil
	}

	chars := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		chars = append(chars, cluster)
	}
	return chars
}

// Length returns the number of grapheme clusters in s.
func Length(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Fold returns the case-folded form of s.
// A Caser carries state, so a fresh one is used per call.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// EqualFold reports whether a and b are equal under full Unicode case folding.
func EqualFold(a, b string) bool {
	if a == b {
		return true
	}
	return Fold(a) == Fold(b)
}

// EqualFoldChars reports whether the character sequences a and b spell the
// same text under case folding.
func EqualFoldChars(a, b []string) bool {
	return EqualFold(strings.Join(a, ""), strings.Join(b, ""))
}
