package fuzzy

import "math"

// seed is the outcome of the literal pre-filter.
type seed struct {
	best      int
	threshold float64
	found     bool
}

// seedBound looks for exact, case-sensitive occurrences of pattern to tighten
// the threshold before the bitap sweep. The forward search covers the whole
// text; the backward one only the prefix ending at loc+len(pattern), and
// prefers the rightmost occurrence there. An occurrence only becomes the
// best candidate when its score is within the running threshold.
func seedBound(text, pattern []string, loc int, threshold, distance float64) seed {
	s := seed{threshold: threshold}
	n := len(pattern)

	forward := indexChars(text, pattern)
	if forward < 0 {
		return s
	}
	s.consider(forward, loc, n, distance)

	window := min(loc+n, len(text))
	if backward := lastIndexChars(text[:window], pattern); backward >= 0 {
		s.consider(backward, loc, n, distance)
	}
	return s
}

func (s *seed) consider(x, loc, n int, distance float64) {
	sc := score(0, x, loc, n, distance)
	if sc <= s.threshold {
		s.best = x
		s.found = true
	}
	s.threshold = math.Min(s.threshold, sc)
}

// indexChars returns the first offset of pattern in text, or -1.
func indexChars(text, pattern []string) int {
	for i := 0; i+len(pattern) <= len(text); i++ {
		if hasCharsAt(text, pattern, i) {
			return i
		}
	}
	return -1
}

// lastIndexChars returns the last offset of pattern in text, or -1.
func lastIndexChars(text, pattern []string) int {
	for i := len(text) - len(pattern); i >= 0; i-- {
		if hasCharsAt(text, pattern, i) {
			return i
		}
	}
	return -1
}

func hasCharsAt(text, pattern []string, at int) bool {
	for k, c := range pattern {
		if text[at+k] != c {
			return false
		}
	}
	return true
}
