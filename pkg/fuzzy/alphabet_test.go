package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fuzzymatch/internal/normalizer"
)

func TestBuildAlphabet(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		expected alphabet
	}{
		{"single", "a", alphabet{"a": 0b1}},
		{"distinct", "abc", alphabet{"a": 0b100, "b": 0b010, "c": 0b001}},
		{"repeated", "abca", alphabet{"a": 0b1001, "b": 0b0100, "c": 0b0010}},
		{"graphemes", "ée", alphabet{"é": 0b10, "e": 0b01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildAlphabet(normalizer.Graphemes(tt.pattern)))
		})
	}
}

func TestAlphabetMaskMissing(t *testing.T) {
	s := buildAlphabet([]string{"a", "b"})
	assert.Zero(t, s.mask("z"))
	assert.Equal(t, uint64(0b10), s.mask("a"))
}

func TestBuildAlphabetFullWidth(t *testing.T) {
	pattern := make([]string, MaxPatternLength)
	for i := range pattern {
		pattern[i] = "x"
	}
	pattern[0] = "y"

	s := buildAlphabet(pattern)
	assert.Equal(t, uint64(1)<<63, s["y"])
	assert.Equal(t, uint64(1)<<63-1, s["x"])
}
