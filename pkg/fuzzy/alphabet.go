package fuzzy

// alphabet maps each distinct pattern character to the bitmask of the
// positions it occupies. Position i of an n-character pattern owns bit
// n-i-1, so the first character sits in the highest bit and a full match
// lights up 1<<(n-1) after the sweep has shifted through the pattern.
type alphabet map[string]uint64

func buildAlphabet(pattern []string) alphabet {
	n := len(pattern)
	s := make(alphabet, n)
	for i, c := range pattern {
		s[c] |= uint64(1) << uint(n-i-1)
	}
	return s
}

// mask returns the bitmask for c, zero when c is not in the pattern.
func (s alphabet) mask(c string) uint64 {
	return s[c]
}
