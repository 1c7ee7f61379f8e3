package fuzzy

// Matcher binds a set of MatchOptions so the same tuning can be reused
// across calls. Confidence and Rank only use the configured Distance.
type Matcher struct {
	Options MatchOptions
}

// NewMatcher creates a Matcher from the defaults plus any overrides.
func NewMatcher(opts ...Option) *Matcher {
	return &Matcher{Options: NewOptions(opts...)}
}

// Match is Match with the matcher's options.
func (m *Matcher) Match(text, pattern string, loc int) (int, bool) {
	return Match(text, pattern, loc, m.Options)
}

// Confidence is Confidence with the matcher's distance.
func (m *Matcher) Confidence(text, pattern string, loc int) (float64, bool) {
	return Confidence(text, pattern, loc, m.Options.Distance)
}

// Rank is Rank with the matcher's distance.
func (m *Matcher) Rank(items []string, pattern string, loc int) []string {
	return Rank(items, pattern, loc, m.Options.Distance)
}
