// Package fuzzy locates approximate occurrences of a pattern inside a host
// text with the bitap algorithm, and derives confidence scores and
// collection rankings from it.
//
// All offsets are counted in grapheme clusters (user-perceived characters),
// not bytes. Every function is pure and safe for concurrent use.
package fuzzy

const (
	// DefaultThreshold is the default score cut-off. 0.0 only admits exact
	// matches at the expected location, 1.0 is very loose.
	DefaultThreshold = 0.5

	// DefaultDistance is the default proximity weight: a match this many
	// characters away from the expected location costs as much as a pattern
	// made entirely of errors.
	DefaultDistance = 1000.0
)

// MatchOptions tunes a single matching call.
type MatchOptions struct {
	Threshold float64 `json:"threshold" toml:"threshold"`
	Distance  float64 `json:"distance" toml:"distance"`
}

// DefaultOptions returns options set to DefaultThreshold and DefaultDistance.
func DefaultOptions() MatchOptions {
	return MatchOptions{
		Threshold: DefaultThreshold,
		Distance:  DefaultDistance,
	}
}

// Option overrides a single MatchOptions field.
type Option func(*MatchOptions)

// WithThreshold overrides the score cut-off.
func WithThreshold(threshold float64) Option {
	return func(o *MatchOptions) {
		o.Threshold = threshold
	}
}

// WithDistance overrides the proximity weight.
func WithDistance(distance float64) Option {
	return func(o *MatchOptions) {
		o.Distance = distance
	}
}

// NewOptions builds MatchOptions from the defaults plus any overrides.
// Values are not validated.
func NewOptions(opts ...Option) MatchOptions {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
