package fuzzy

import (
	"errors"
	"fmt"

	"fuzzymatch/internal/normalizer"
)

// MaxPatternLength is the longest pattern, in characters, the bitap sweep
// supports. Each pattern position owns one bit of a uint64 state word.
const MaxPatternLength = 64

// ErrPatternTooLong is the panic value raised when a pattern longer than
// MaxPatternLength reaches the bitap sweep.
var ErrPatternTooLong = errors.New("fuzzy: pattern exceeds the maximum supported length")

// CheckPattern reports whether pattern can be matched without hitting the
// MaxPatternLength contract.
func CheckPattern(pattern string) error {
	if n := normalizer.Length(pattern); n > MaxPatternLength {
		return fmt.Errorf("%w: %d characters, limit is %d", ErrPatternTooLong, n, MaxPatternLength)
	}
	return nil
}

// Match returns the offset of the best approximate occurrence of pattern in
// text near loc, and false when nothing scores within opts.Threshold.
//
// A case-insensitive match of the whole text returns 0, and a
// case-insensitive occurrence exactly at loc returns loc, without running
// the bitap sweep. Patterns longer than MaxPatternLength that get past these
// checks panic with ErrPatternTooLong.
func Match(text, pattern string, loc int, opts MatchOptions) (int, bool) {
	if text == "" {
		return 0, false
	}
	return newQuery(text, pattern).match(loc, opts)
}

// query holds the segmented and folded inputs of a text/pattern pair so
// repeated matching at different thresholds skips the preparation.
type query struct {
	text      []string
	pattern   []string
	identical bool
}

func newQuery(text, pattern string) query {
	return query{
		text:      normalizer.Graphemes(text),
		pattern:   normalizer.Graphemes(pattern),
		identical: normalizer.EqualFold(text, pattern),
	}
}

func (q query) match(loc int, opts MatchOptions) (int, bool) {
	if len(q.text) == 0 {
		return 0, false
	}
	loc = max(0, min(loc, len(q.text)))

	if q.identical {
		return 0, true
	}
	if len(q.pattern) == 0 {
		return 0, false
	}

	n := len(q.pattern)
	if loc+n <= len(q.text) && normalizer.EqualFoldChars(q.text[loc:loc+n], q.pattern) {
		return loc, true
	}

	return matchBitap(q.text, q.pattern, loc, opts)
}

// matchBitap runs the error-bounded bit-parallel sweep. Each outer iteration
// allows one more error; a binary search over the score function bounds how
// far from loc a match at that error level can still be admitted.
func matchBitap(text, pattern []string, loc int, opts MatchOptions) (int, bool) {
	n := len(pattern)
	if n > MaxPatternLength {
		panic(ErrPatternTooLong)
	}

	s := buildAlphabet(pattern)

	sd := seedBound(text, pattern, loc, opts.Threshold, opts.Distance)
	scoreThreshold := sd.threshold
	bestLoc, found := sd.best, sd.found

	matchMask := uint64(1) << uint(n-1)
	binMax := n + len(text)
	var lastRd []uint64

	for d := 0; d < n; d++ {
		binMin, binMid := 0, binMax
		for binMin < binMid {
			if score(d, loc+binMid, loc, n, opts.Distance) <= scoreThreshold {
				binMin = binMid
			} else {
				binMax = binMid
			}
			binMid = (binMax-binMin)/2 + binMin
		}
		// The bound only shrinks as errors grow.
		binMax = binMid

		start := max(1, loc-binMid+1)
		finish := min(loc+binMid, len(text)) + n

		rd := make([]uint64, finish+2)
		rd[finish+1] = (uint64(1) << uint(d)) - 1

		for j := finish; j >= start; j-- {
			var charMatch uint64
			if j-1 < len(text) {
				charMatch = s.mask(text[j-1])
			}

			if d == 0 {
				rd[j] = ((rd[j+1] << 1) | 1) & charMatch
			} else {
				rd[j] = (((rd[j+1] << 1) | 1) & charMatch) |
					(((lastRd[j+1] | lastRd[j]) << 1) | 1) |
					lastRd[j+1]
			}

			if rd[j]&matchMask == 0 {
				continue
			}
			sc := score(d, j-1, loc, n, opts.Distance)
			if sc > scoreThreshold {
				continue
			}
			scoreThreshold = sc
			bestLoc, found = j-1, true
			if bestLoc <= loc {
				// Already at or left of loc, nothing further left can score better.
				break
			}
			// Do not stray further left of loc than we now are right of it.
			start = max(1, 2*loc-bestLoc+1)
		}

		if score(d+1, loc, loc, n, opts.Distance) > scoreThreshold {
			break
		}
		lastRd = rd
	}

	return bestLoc, found
}
