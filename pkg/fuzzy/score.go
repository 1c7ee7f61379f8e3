package fuzzy

import "math"

// score combines e errors in an n-character pattern with the drift of
// candidate offset x from the expected offset loc. Lower is better.
func score(e, x, loc, n int, distance float64) float64 {
	accuracy := float64(e) / float64(n)
	proximity := math.Abs(float64(loc - x))
	if distance == 0 {
		if proximity == 0 {
			return accuracy
		}
		return 1.0
	}
	return accuracy + proximity/distance
}
