package fuzzy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfidence(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		pattern  string
		loc      int
		distance float64
		expected float64
		found    bool
	}{
		{"identical", "abcdef", "abcdef", 0, 1000, 0, true},
		{"exact at loc", "hello world", "world", 6, 1000, 0, true},
		{"exact away from loc", "hello world", "world", 0, 1000, 0.006, true},
		{"smaller distance", "hello world", "world", 0, 100, 0.06, true},
		{"nothing shared", "abc", "xyz", 0, 1000, 0, false},
		{"empty text", "", "abc", 0, 1000, 0, false},
		{"empty pattern", "abc", "", 0, 1000, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := Confidence(tt.text, tt.pattern, tt.loc, tt.distance)
			require.Equal(t, tt.found, ok)
			if tt.found {
				assert.InDelta(t, tt.expected, c, 1e-9)
			}
		})
	}
}

func TestConfidenceConsistency(t *testing.T) {
	cases := []struct {
		text, pattern string
		loc           int
	}{
		{"hello world", "wrld", 0},
		{"hello world", "world", 3},
		{"the quick brown fox", "quack", 0},
		{"apple", "aple", 0},
		{"grape", "aple", 0},
		{"banana", "aple", 0},
	}

	for _, c := range cases {
		conf, ok := Confidence(c.text, c.pattern, c.loc, DefaultDistance)
		require.True(t, ok, "%q in %q", c.pattern, c.text)

		_, ok = Match(c.text, c.pattern, c.loc, MatchOptions{Threshold: conf, Distance: DefaultDistance})
		assert.True(t, ok, "%q in %q should match at %.3f", c.pattern, c.text, conf)

		step := int(math.Round(conf * ConfidenceSteps))
		if step > 0 {
			below := float64(step-1) / ConfidenceSteps
			_, ok = Match(c.text, c.pattern, c.loc, MatchOptions{Threshold: below, Distance: DefaultDistance})
			assert.False(t, ok, "%q in %q should not match at %.3f", c.pattern, c.text, below)
		}
	}
}

func TestConfidenceOrdersCloseness(t *testing.T) {
	near, ok := Confidence("apple", "aple", 0, DefaultDistance)
	require.True(t, ok)
	far, ok := Confidence("banana", "aple", 0, DefaultDistance)
	require.True(t, ok)

	assert.Less(t, near, far)
}
