package fuzzy

// ConfidenceSteps is the number of equal slices [0, 1] is cut into when
// probing for the lowest admitting threshold.
const ConfidenceSteps = 1000

// Confidence returns the lowest threshold, in steps of 1/ConfidenceSteps, at
// which pattern matches text near loc. Lower values mean closer matches.
// It returns false when no threshold up to 1.0 admits a match.
func Confidence(text, pattern string, loc int, distance float64) (float64, bool) {
	if text == "" {
		return 0, false
	}

	q := newQuery(text, pattern)
	for i := 0; i <= ConfidenceSteps; i++ {
		threshold := float64(i) / ConfidenceSteps
		if _, ok := q.match(loc, MatchOptions{Threshold: threshold, Distance: distance}); ok {
			return threshold, true
		}
	}
	return 0, false
}
