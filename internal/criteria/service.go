// AngelaMos | 2026
// service.go

package criteria

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/carterperez-dev/veritas-backend/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(
	ctx context.Context,
	interactionType string,
) ([]RatingCriterion, error) {
	if interactionType != "" && !ValidInteractionType(interactionType) {
		return nil, fmt.Errorf(
			"list criteria: unknown interaction type %q: %w",
			interactionType,
			core.ErrInvalidInput,
		)
	}

	return s.repo.List(ctx, interactionType)
}

// ActiveByType returns the criteria eligible for new interactions of the
// given type, keyed by criterion id.
func (s *Service) ActiveByType(
	ctx context.Context,
	interactionType string,
) (map[string]RatingCriterion, error) {
	list, err := s.repo.ListActiveByType(ctx, interactionType)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]RatingCriterion, len(list))
	for _, c := range list {
		byID[c.ID] = c
	}

	return byID, nil
}

func (s *Service) Upsert(
	ctx context.Context,
	req UpsertCriterionRequest,
) (*RatingCriterion, error) {
	if !ValidInteractionType(req.InteractionType) {
		return nil, fmt.Errorf(
			"upsert criterion: unknown interaction type %q: %w",
			req.InteractionType,
			core.ErrInvalidInput,
		)
	}

	if req.Weight < 0 || math.IsNaN(req.Weight) || math.IsInf(req.Weight, 0) {
		return nil, fmt.Errorf(
			"upsert criterion: weight must be a non-negative finite number: %w",
			core.ErrInvalidInput,
		)
	}

	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}

	criterion := &RatingCriterion{
		ID:              id,
		InteractionType: req.InteractionType,
		Name:            req.Name,
		Weight:          req.Weight,
	}

	if err := s.repo.Upsert(ctx, criterion); err != nil {
		return nil, err
	}

	return criterion, nil
}

// Delete soft-deletes a criterion. Existing interaction ratings that
// reference it are untouched so historical trust scores stay stable.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}
