// AngelaMos | 2026
// service.go

package tag

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/veritas-backend/internal/core"
)

type POIChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo Repository
	pois POIChecker
}

func NewService(repo Repository, pois POIChecker) *Service {
	return &Service{repo: repo, pois: pois}
}

func (s *Service) ListTags(ctx context.Context) ([]Tag, error) {
	return s.repo.ListTags(ctx)
}

// Assign pins tagID on the POI for this user, replacing any existing
// assignment.
func (s *Service) Assign(
	ctx context.Context,
	userID, poiID, tagID string,
) (*Assignment, error) {
	exists, err := s.pois.Exists(ctx, poiID)
	if err != nil {
		return nil, fmt.Errorf("check poi: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("assign tag: poi: %w", core.ErrNotFound)
	}

	if _, err := s.repo.GetTagByID(ctx, tagID); err != nil {
		return nil, err
	}

	assignment := &Assignment{
		UserID: userID,
		POIID:  poiID,
		TagID:  tagID,
	}

	if err := s.repo.UpsertAssignment(ctx, assignment); err != nil {
		return nil, err
	}

	return assignment, nil
}

func (s *Service) Clear(ctx context.Context, userID, poiID string) error {
	return s.repo.DeleteAssignment(ctx, userID, poiID)
}

func (s *Service) Get(
	ctx context.Context,
	userID, poiID string,
) (*Assignment, error) {
	return s.repo.GetAssignment(ctx, userID, poiID)
}

func (s *Service) CountByPOI(
	ctx context.Context,
	poiID string,
) ([]POITagCount, error) {
	exists, err := s.pois.Exists(ctx, poiID)
	if err != nil {
		return nil, fmt.Errorf("check poi: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("count tags: poi: %w", core.ErrNotFound)
	}

	return s.repo.CountByPOI(ctx, poiID)
}
