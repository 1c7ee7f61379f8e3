package fuzzy

import (
	"context"
	"sync"
)

// ParallelConfig configures ParallelRank.
type ParallelConfig struct {
	Workers int // Number of parallel workers (<= 1 = sequential)
}

// ProgressCallback is called after each item has been bucketed.
// Calls come from worker goroutines and may be concurrent.
type ProgressCallback func(index int, r Ranked)

// ParallelRank buckets items on a worker pool and returns exactly the order
// RankScored would. Workers <= 1 buckets items one by one on the calling
// goroutine. A context cancelled before or during the run, including from
// the callback, yields ctx.Err() and no results.
func ParallelRank(
	ctx context.Context,
	items []string,
	pattern string,
	loc int,
	distance float64,
	config ParallelConfig,
	callback ProgressCallback,
) ([]Ranked, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if config.Workers <= 1 {
		return rankSequential(ctx, items, pattern, loc, distance, callback)
	}

	// Each worker writes only its own slot, so no lock is needed.
	buckets := make([]int, len(items))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				k := minBucket(newQuery(items[i], pattern), loc, distance)
				buckets[i] = k
				if callback != nil {
					callback(i, rankedAt(items, i, k))
				}
			}
		}()
	}

	var err error
send:
	for i := range items {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break send
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return assemble(items, buckets), nil
}

func rankSequential(
	ctx context.Context,
	items []string,
	pattern string,
	loc int,
	distance float64,
	callback ProgressCallback,
) ([]Ranked, error) {
	buckets := make([]int, len(items))
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		buckets[i] = minBucket(newQuery(item, pattern), loc, distance)
		if callback != nil {
			callback(i, rankedAt(items, i, buckets[i]))
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return assemble(items, buckets), nil
}

// assemble orders items by bucket, keeping original order inside a bucket
// and putting unmatched items (bucket 0) last.
func assemble(items []string, buckets []int) []Ranked {
	ranked := make([]Ranked, 0, len(items))
	for k := 1; k <= rankBuckets; k++ {
		for i, b := range buckets {
			if b == k {
				ranked = append(ranked, rankedAt(items, i, k))
			}
		}
	}
	for i, b := range buckets {
		if b == 0 {
			ranked = append(ranked, rankedAt(items, i, 0))
		}
	}
	return ranked
}

func rankedAt(items []string, i, k int) Ranked {
	if k == 0 {
		return Ranked{Text: items[i], Index: i}
	}
	return Ranked{
		Text:      items[i],
		Index:     i,
		Threshold: bucketThreshold(k),
		Matched:   true,
	}
}
