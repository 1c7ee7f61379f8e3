package fuzzy

import (
	"context"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelRankMatchesSequential(t *testing.T) {
	items := generateItems(300)
	expected := RankScored(items, "helo", 0, DefaultDistance)

	for _, workers := range []int{0, 1, 2, 4, 8} {
		ranked, err := ParallelRank(context.Background(), items, "helo", 0, DefaultDistance, ParallelConfig{Workers: workers}, nil)
		require.NoError(t, err)
		assert.Equal(t, expected, ranked, "workers=%d", workers)
	}
}

func TestParallelRankCallback(t *testing.T) {
	items := generateItems(50)

	var calls atomic.Int64
	_, err := ParallelRank(context.Background(), items, "book", 0, DefaultDistance, ParallelConfig{Workers: 4}, func(index int, r Ranked) {
		calls.Add(1)
		assert.Equal(t, items[index], r.Text)
	})

	require.NoError(t, err)
	assert.Equal(t, int64(len(items)), calls.Load())
}

func TestParallelRankCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		ranked, err := ParallelRank(ctx, generateItems(10), "book", 0, DefaultDistance, ParallelConfig{Workers: workers}, nil)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, ranked)
	}
}

func TestParallelRankEmpty(t *testing.T) {
	ranked, err := ParallelRank(context.Background(), nil, "book", 0, DefaultDistance, ParallelConfig{Workers: 4}, nil)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestParallelRankCancelledDuringRun(t *testing.T) {
	for _, workers := range []int{1, 4} {
		t.Run("workers="+strconv.Itoa(workers), func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			items := generateItems(200)
			var calls atomic.Int64
			ranked, err := ParallelRank(ctx, items, "book", 0, DefaultDistance, ParallelConfig{Workers: workers}, func(int, Ranked) {
				if calls.Add(1) == 3 {
					cancel()
				}
			})

			assert.ErrorIs(t, err, context.Canceled)
			assert.Nil(t, ranked)
			assert.Less(t, calls.Load(), int64(len(items)))
		})
	}
}
