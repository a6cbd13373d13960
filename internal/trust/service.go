// AngelaMos | 2026
// service.go

package trust

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/carterperez-dev/veritas-backend/internal/core"
)

type POIChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Cacher is the memoization layer; a nil-safe no-op is not provided, the
// caller always wires a real cache.
type Cacher interface {
	Get(ctx context.Context, poiID string) (*Summary, bool)
	Set(ctx context.Context, summary *Summary) error
	Invalidate(ctx context.Context, poiID string) error
}

type Service struct {
	repo  Repository
	pois  POIChecker
	cache Cacher
}

func NewService(repo Repository, pois POIChecker, cache Cacher) *Service {
	return &Service{repo: repo, pois: pois, cache: cache}
}

// Get returns the aggregated trust summary for a POI, recomputing from
// the ledger on cache miss. The ledger invalidates after each committed
// write, so a read issued after a successful log sees the new entry.
func (s *Service) Get(ctx context.Context, poiID string) (*Summary, error) {
	exists, err := s.pois.Exists(ctx, poiID)
	if err != nil {
		return nil, fmt.Errorf("check poi: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("get trust score: poi: %w", core.ErrNotFound)
	}

	if summary, ok := s.cache.Get(ctx, poiID); ok {
		return summary, nil
	}

	summary, err := s.repo.Aggregate(ctx, poiID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, summary); err != nil {
		slog.Warn("trust summary cache write failed",
			"poi_id", poiID,
			"error", err,
		)
	}

	return summary, nil
}
