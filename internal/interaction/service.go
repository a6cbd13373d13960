// AngelaMos | 2026
// service.go

package interaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/carterperez-dev/veritas-backend/internal/core"
	"github.com/carterperez-dev/veritas-backend/internal/criteria"
)

// ExistsChecker reports whether an entity id is present. Satisfied by the
// poi and user services.
type ExistsChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// CriteriaProvider resolves the active criteria set for an interaction
// type, keyed by criterion id.
type CriteriaProvider interface {
	ActiveByType(
		ctx context.Context,
		interactionType string,
	) (map[string]criteria.RatingCriterion, error)
}

// TrustInvalidator drops any cached aggregate for a POI after the ledger
// gains a new entry.
type TrustInvalidator interface {
	Invalidate(ctx context.Context, poiID string) error
}

type Service struct {
	repo        Repository
	reporters   ExistsChecker
	pois        ExistsChecker
	criteria    CriteriaProvider
	invalidator TrustInvalidator
}

func NewService(
	repo Repository,
	reporters ExistsChecker,
	pois ExistsChecker,
	criteriaProvider CriteriaProvider,
	invalidator TrustInvalidator,
) *Service {
	return &Service{
		repo:        repo,
		reporters:   reporters,
		pois:        pois,
		criteria:    criteriaProvider,
		invalidator: invalidator,
	}
}

// Log validates and appends one ledger entry. Validation order: reporter,
// POI, interaction type, then each rating's criterion membership and score
// range. Nothing is written unless every check passes.
func (s *Service) Log(
	ctx context.Context,
	reporterID string,
	req LogInteractionRequest,
) (*Interaction, error) {
	reporterExists, err := s.reporters.Exists(ctx, reporterID)
	if err != nil {
		return nil, fmt.Errorf("check reporter: %w", err)
	}
	if !reporterExists {
		return nil, fmt.Errorf("log interaction: reporter: %w", core.ErrNotFound)
	}

	poiExists, err := s.pois.Exists(ctx, req.POIID)
	if err != nil {
		return nil, fmt.Errorf("check poi: %w", err)
	}
	if !poiExists {
		return nil, fmt.Errorf("log interaction: poi: %w", core.ErrNotFound)
	}

	if !criteria.ValidInteractionType(req.Type) {
		return nil, fmt.Errorf(
			"log interaction: unknown interaction type %q: %w",
			req.Type,
			core.ErrInvalidInput,
		)
	}

	if !ValidOutcome(req.Outcome) {
		return nil, fmt.Errorf(
			"log interaction: unknown outcome %q: %w",
			req.Outcome,
			core.ErrInvalidInput,
		)
	}

	ratings, err := s.validateRatings(ctx, req.Type, req.Ratings)
	if err != nil {
		return nil, err
	}

	interaction := &Interaction{
		ID:          uuid.New().String(),
		ReporterID:  reporterID,
		POIID:       req.POIID,
		Type:        req.Type,
		Platform:    req.Platform,
		OccurredAt:  req.OccurredAt,
		Description: req.Description,
		Outcome:     req.Outcome,
		City:        req.City,
		State:       req.State,
		Ratings:     ratings,
	}

	if err := s.repo.CreateWithRatings(ctx, interaction); err != nil {
		return nil, err
	}

	// The entry is committed; a stale cached score is the only thing at
	// stake here, and the TTL bounds how long it can survive.
	if err := s.invalidator.Invalidate(ctx, req.POIID); err != nil {
		slog.Warn("trust cache invalidation failed",
			"poi_id", req.POIID,
			"error", err,
		)
	}

	return interaction, nil
}

func (s *Service) validateRatings(
	ctx context.Context,
	interactionType string,
	inputs []RatingInput,
) ([]InteractionRating, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	allowed, err := s.criteria.ActiveByType(ctx, interactionType)
	if err != nil {
		return nil, fmt.Errorf("load criteria: %w", err)
	}

	ratings := make([]InteractionRating, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))

	for _, input := range inputs {
		if input.Score < MinScore || input.Score > MaxScore {
			return nil, fmt.Errorf(
				"log interaction: score %d out of range: %w",
				input.Score,
				core.ErrInvalidInput,
			)
		}

		if _, ok := allowed[input.CriteriaID]; !ok {
			return nil, fmt.Errorf(
				"log interaction: criterion %s does not belong to type %s: %w",
				input.CriteriaID,
				interactionType,
				core.ErrInvalidInput,
			)
		}

		if _, dup := seen[input.CriteriaID]; dup {
			return nil, fmt.Errorf(
				"log interaction: duplicate criterion %s: %w",
				input.CriteriaID,
				core.ErrInvalidInput,
			)
		}
		seen[input.CriteriaID] = struct{}{}

		ratings = append(ratings, InteractionRating{
			CriteriaID: input.CriteriaID,
			Score:      input.Score,
		})
	}

	return ratings, nil
}

func (s *Service) ListByPOI(
	ctx context.Context,
	poiID string,
	params ListParams,
) ([]Interaction, int, error) {
	poiExists, err := s.pois.Exists(ctx, poiID)
	if err != nil {
		return nil, 0, fmt.Errorf("check poi: %w", err)
	}
	if !poiExists {
		return nil, 0, fmt.Errorf("list interactions: poi: %w", core.ErrNotFound)
	}

	return s.repo.ListByPOI(ctx, poiID, params)
}
