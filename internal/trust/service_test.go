// AngelaMos | 2026
// service_test.go

package trust

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/veritas-backend/internal/core"
)

func TestWeightedScore(t *testing.T) {
	t.Run("weighted mean of two criteria", func(t *testing.T) {
		// scores 4 and 2 with weights 1 and 3
		score := WeightedScore(4*1+2*3, 1+3)
		require.NotNil(t, score)
		assert.InDelta(t, 2.5, *score, 1e-9)
	})

	t.Run("nil when no ratings", func(t *testing.T) {
		assert.Nil(t, WeightedScore(0, 0))
	})

	t.Run("nil when only zero-weight criteria", func(t *testing.T) {
		assert.Nil(t, WeightedScore(0, 0))
		assert.Nil(t, WeightedScore(12, -1))
	})

	t.Run("order independent", func(t *testing.T) {
		type rating struct {
			score  float64
			weight float64
		}
		ratings := []rating{{4, 1}, {2, 3}, {5, 0.5}, {0, 2}}

		fold := func(order []int) *float64 {
			var sum, total float64
			for _, i := range order {
				sum += ratings[i].score * ratings[i].weight
				total += ratings[i].weight
			}
			return WeightedScore(sum, total)
		}

		a := fold([]int{0, 1, 2, 3})
		b := fold([]int{3, 2, 1, 0})
		c := fold([]int{2, 0, 3, 1})

		require.NotNil(t, a)
		assert.InDelta(t, *a, *b, 1e-9)
		assert.InDelta(t, *a, *c, 1e-9)
	})
}

type fakeTrustRepo struct {
	summary *Summary
	calls   int
}

func (f *fakeTrustRepo) Aggregate(
	ctx context.Context,
	poiID string,
) (*Summary, error) {
	f.calls++
	return f.summary, nil
}

type fakePOIChecker struct {
	ids map[string]bool
}

func (f *fakePOIChecker) Exists(ctx context.Context, id string) (bool, error) {
	return f.ids[id], nil
}

type memoryCache struct {
	entries map[string]*Summary
	setErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]*Summary)}
}

func (c *memoryCache) Get(ctx context.Context, poiID string) (*Summary, bool) {
	s, ok := c.entries[poiID]
	return s, ok
}

func (c *memoryCache) Set(ctx context.Context, summary *Summary) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[summary.POIID] = summary
	return nil
}

func (c *memoryCache) Invalidate(ctx context.Context, poiID string) error {
	delete(c.entries, poiID)
	return nil
}

func TestTrustServiceGet(t *testing.T) {
	const poiID = "poi-1"

	score := 2.5
	summary := &Summary{
		POIID:             poiID,
		Score:             &score,
		TotalInteractions: 2,
		Positive:          1,
		Neutral:           1,
	}

	t.Run("recomputes on miss then serves from cache", func(t *testing.T) {
		repo := &fakeTrustRepo{summary: summary}
		cache := newMemoryCache()
		svc := NewService(repo, &fakePOIChecker{ids: map[string]bool{poiID: true}}, cache)

		got, err := svc.Get(context.Background(), poiID)
		require.NoError(t, err)
		assert.Equal(t, summary, got)
		assert.Equal(t, 1, repo.calls)

		got, err = svc.Get(context.Background(), poiID)
		require.NoError(t, err)
		assert.Equal(t, summary, got)
		assert.Equal(t, 1, repo.calls)
	})

	t.Run("recomputes after invalidation", func(t *testing.T) {
		repo := &fakeTrustRepo{summary: summary}
		cache := newMemoryCache()
		svc := NewService(repo, &fakePOIChecker{ids: map[string]bool{poiID: true}}, cache)

		_, err := svc.Get(context.Background(), poiID)
		require.NoError(t, err)

		require.NoError(t, cache.Invalidate(context.Background(), poiID))

		_, err = svc.Get(context.Background(), poiID)
		require.NoError(t, err)
		assert.Equal(t, 2, repo.calls)
	})

	t.Run("cache write failure is tolerated", func(t *testing.T) {
		repo := &fakeTrustRepo{summary: summary}
		cache := newMemoryCache()
		cache.setErr = errors.New("redis down")
		svc := NewService(repo, &fakePOIChecker{ids: map[string]bool{poiID: true}}, cache)

		got, err := svc.Get(context.Background(), poiID)
		require.NoError(t, err)
		assert.Equal(t, summary, got)
	})

	t.Run("unknown poi is not found", func(t *testing.T) {
		svc := NewService(
			&fakeTrustRepo{summary: summary},
			&fakePOIChecker{ids: map[string]bool{}},
			newMemoryCache(),
		)

		_, err := svc.Get(context.Background(), "missing")
		require.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("empty ledger yields nil score not zero", func(t *testing.T) {
		empty := &Summary{POIID: poiID, Score: WeightedScore(0, 0)}
		repo := &fakeTrustRepo{summary: empty}
		svc := NewService(repo, &fakePOIChecker{ids: map[string]bool{poiID: true}}, newMemoryCache())

		got, err := svc.Get(context.Background(), poiID)
		require.NoError(t, err)
		assert.Nil(t, got.Score)
	})
}
