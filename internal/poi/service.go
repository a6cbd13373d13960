// AngelaMos | 2026
// service.go

package poi

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/veritas-backend/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	creatorID string,
	req CreatePOIRequest,
) (*PersonOfInterest, error) {
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	isShareable := true
	if req.IsShareable != nil {
		isShareable = *req.IsShareable
	}

	poi := &PersonOfInterest{
		ID:          uuid.New().String(),
		MainAlias:   req.MainAlias,
		Slug:        core.Slugify(req.MainAlias),
		City:        req.City,
		State:       req.State,
		AvatarKey:   req.AvatarKey,
		IsPublic:    isPublic,
		IsShareable: isShareable,
		CreatedBy:   creatorID,
	}

	if err := s.repo.Create(ctx, poi); err != nil {
		return nil, err
	}

	return poi, nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*PersonOfInterest, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetBySlug(
	ctx context.Context,
	slug string,
) (*PersonOfInterest, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// Update is restricted to the user who created the record.
func (s *Service) Update(
	ctx context.Context,
	actorID, id string,
	req UpdatePOIRequest,
) (*PersonOfInterest, error) {
	poi, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if poi.CreatedBy != actorID {
		return nil, fmt.Errorf("update poi: %w", core.ErrForbidden)
	}

	if req.MainAlias != nil {
		poi.MainAlias = *req.MainAlias
	}
	if req.City != nil {
		poi.City = *req.City
	}
	if req.State != nil {
		poi.State = *req.State
	}
	if req.AvatarKey != nil {
		poi.AvatarKey = *req.AvatarKey
	}
	if req.IsPublic != nil {
		poi.IsPublic = *req.IsPublic
	}
	if req.IsShareable != nil {
		poi.IsShareable = *req.IsShareable
	}

	if err := s.repo.Update(ctx, poi); err != nil {
		return nil, err
	}

	return poi, nil
}

func (s *Service) List(
	ctx context.Context,
	params ListPOIParams,
) ([]PersonOfInterest, int, error) {
	return s.repo.List(ctx, params)
}
