package fuzzy

// rankBuckets is the number of coarse thresholds (0.1 through 1.0) used to
// order a collection.
const rankBuckets = 10

// Ranked is one element of a ranked collection.
type Ranked struct {
	Text      string  `json:"text"`
	Index     int     `json:"index"`
	Threshold float64 `json:"threshold,omitempty"`
	Matched   bool    `json:"matched"`
}

func bucketThreshold(k int) float64 {
	return float64(k) / rankBuckets
}

// Rank orders items best-first by the coarse threshold at which each one
// matches pattern. Items in the same bucket keep their original relative
// order and items that never match come last. The result is a permutation
// of items.
func Rank(items []string, pattern string, loc int, distance float64) []string {
	ranked := RankScored(items, pattern, loc, distance)
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Text
	}
	return out
}

// RankScored is Rank with each element annotated by its admitting bucket.
func RankScored(items []string, pattern string, loc int, distance float64) []Ranked {
	ranked := make([]Ranked, 0, len(items))
	placed := make([]bool, len(items))

	queries := make([]query, len(items))
	for i, item := range items {
		queries[i] = newQuery(item, pattern)
	}

	for k := 1; k <= rankBuckets && len(ranked) < len(items); k++ {
		opts := MatchOptions{Threshold: bucketThreshold(k), Distance: distance}
		for i, item := range items {
			if placed[i] {
				continue
			}
			if _, ok := queries[i].match(loc, opts); ok {
				placed[i] = true
				ranked = append(ranked, Ranked{
					Text:      item,
					Index:     i,
					Threshold: opts.Threshold,
					Matched:   true,
				})
			}
		}
	}

	for i, item := range items {
		if !placed[i] {
			ranked = append(ranked, Ranked{Text: item, Index: i})
		}
	}
	return ranked
}

// minBucket returns the lowest bucket index (1..rankBuckets) at which q
// matches, or 0.
func minBucket(q query, loc int, distance float64) int {
	for k := 1; k <= rankBuckets; k++ {
		opts := MatchOptions{Threshold: bucketThreshold(k), Distance: distance}
		if _, ok := q.match(loc, opts); ok {
			return k
		}
	}
	return 0
}
