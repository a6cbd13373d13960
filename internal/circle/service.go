// AngelaMos | 2026
// service.go

package circle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/veritas-backend/internal/core"
)

// Notifier delivers circle invitations out of band. Delivery is
// fire-and-forget; the invitation row is the source of truth.
type Notifier interface {
	SendCircleInvite(ctx context.Context, email, circleName, token string)
}

type Service struct {
	repo         Repository
	notifier     Notifier
	inviteExpiry time.Duration
}

func NewService(
	repo Repository,
	notifier Notifier,
	inviteExpiry time.Duration,
) *Service {
	return &Service{
		repo:         repo,
		notifier:     notifier,
		inviteExpiry: inviteExpiry,
	}
}

// Create makes a circle with the creator as an approved moderator.
func (s *Service) Create(
	ctx context.Context,
	creatorID string,
	req *CreateCircleRequest,
) (*Circle, error) {
	if !ValidCircleType(req.Type) {
		return nil, fmt.Errorf(
			"create circle: invalid type %q: %w",
			req.Type,
			core.ErrInvalidInput,
		)
	}

	circle := &Circle{
		Name:      req.Name,
		Slug:      core.Slugify(req.Name),
		City:      req.City,
		State:     req.State,
		Zip:       req.Zip,
		Type:      req.Type,
		Icon:      req.Icon,
		CreatedBy: creatorID,
	}

	if _, err := s.repo.Create(ctx, circle); err != nil {
		return nil, err
	}

	return circle, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Circle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListCirclesParams,
) ([]Circle, int, error) {
	params.Normalize()
	return s.repo.List(ctx, params)
}

// RequestJoin starts a membership epoch for the actor. Public circles
// approve immediately, request circles create a pending row, invite
// circles require a usable invitation token. A removed epoch does not
// block rejoining; an active pending or approved epoch does.
func (s *Service) RequestJoin(
	ctx context.Context,
	actorID, circleID, inviteToken string,
) (*Membership, error) {
	circle, err := s.repo.GetByID(ctx, circleID)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.GetCurrentMembership(ctx, circleID, actorID)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}
	if current != nil && current.Status != StatusRemoved {
		return nil, fmt.Errorf(
			"join circle: membership already %s: %w",
			current.Status,
			core.ErrConflict,
		)
	}

	var invitation *Invitation

	status := StatusPending
	switch circle.Type {
	case TypePublic:
		status = StatusApproved
	case TypeRequest:
		status = StatusPending
	case TypeInvite:
		invitation, err = s.consumeInvitation(ctx, circleID, inviteToken)
		if err != nil {
			return nil, err
		}
		status = StatusApproved
	}

	membership := &Membership{
		CircleID: circleID,
		UserID:   actorID,
		Status:   status,
		Role:     RoleMember,
	}

	if err := s.repo.CreateMembership(ctx, membership); err != nil {
		// The invitation stays usable so the caller can retry the join.
		return nil, err
	}

	if invitation != nil {
		//nolint:errcheck // acceptance is advisory once membership exists
		_ = s.repo.AcceptInvitation(ctx, invitation.ID)
	}

	return membership, nil
}

func (s *Service) consumeInvitation(
	ctx context.Context,
	circleID, token string,
) (*Invitation, error) {
	if token == "" {
		return nil, fmt.Errorf(
			"join circle: invitation required: %w",
			core.ErrForbidden,
		)
	}

	invitation, err := s.repo.GetInvitationByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if invitation.CircleID != circleID || !invitation.Usable(time.Now()) {
		return nil, fmt.Errorf(
			"join circle: invitation not usable: %w",
			core.ErrForbidden,
		)
	}

	return invitation, nil
}

// ManageMember transitions another member's status or role. Only an
// approved moderator or the circle creator may do this, and nobody may
// promote themselves. The target's current epoch is re-validated inside
// the repository transaction.
func (s *Service) ManageMember(
	ctx context.Context,
	actorID, circleID string,
	req *ManageMemberRequest,
) (*Membership, error) {
	circle, err := s.repo.GetByID(ctx, circleID)
	if err != nil {
		return nil, err
	}

	if err := s.requireModerator(ctx, circle, actorID); err != nil {
		return nil, err
	}

	if actorID == req.TargetUserID && req.Role == RoleModerator {
		return nil, fmt.Errorf(
			"manage member: self-promotion: %w",
			core.ErrForbidden,
		)
	}

	return s.repo.TransitionMembership(
		ctx,
		circleID,
		req.TargetUserID,
		req.Status,
		req.Role,
		func(current *Membership) error {
			if current.Status == StatusRemoved {
				return fmt.Errorf(
					"manage member: epoch already removed: %w",
					core.ErrForbidden,
				)
			}
			if req.Status == StatusApproved && current.Status != StatusPending &&
				current.Status != StatusApproved {
				return fmt.Errorf(
					"manage member: cannot approve from %s: %w",
					current.Status,
					core.ErrForbidden,
				)
			}
			return nil
		},
	)
}

func (s *Service) requireModerator(
	ctx context.Context,
	circle *Circle,
	actorID string,
) error {
	if circle.CreatedBy == actorID {
		return nil
	}

	membership, err := s.repo.GetCurrentMembership(ctx, circle.ID, actorID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("manage member: %w", core.ErrForbidden)
		}
		return err
	}

	if !membership.IsModerator() {
		return fmt.Errorf("manage member: %w", core.ErrForbidden)
	}

	return nil
}

// InviteByEmail records an invitation and hands delivery to the notifier.
// The inviter must hold an approved membership.
func (s *Service) InviteByEmail(
	ctx context.Context,
	actorID, circleID, email string,
) (*Invitation, error) {
	circle, err := s.repo.GetByID(ctx, circleID)
	if err != nil {
		return nil, err
	}

	if circle.CreatedBy != actorID {
		membership, err := s.repo.GetCurrentMembership(ctx, circleID, actorID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return nil, fmt.Errorf("invite: %w", core.ErrForbidden)
			}
			return nil, err
		}
		if !membership.IsApproved() {
			return nil, fmt.Errorf("invite: %w", core.ErrForbidden)
		}
	}

	invitation := &Invitation{
		CircleID:  circleID,
		InviterID: actorID,
		Email:     email,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.inviteExpiry),
	}

	if err := s.repo.CreateInvitation(ctx, invitation); err != nil {
		return nil, err
	}

	s.notifier.SendCircleInvite(ctx, email, circle.Name, invitation.Token)

	return invitation, nil
}

// ListMembers returns active epochs. Invite and request circles only show
// their roster to approved members or the creator.
func (s *Service) ListMembers(
	ctx context.Context,
	actorID, circleID string,
) ([]Membership, error) {
	circle, err := s.repo.GetByID(ctx, circleID)
	if err != nil {
		return nil, err
	}

	if circle.Type != TypePublic && circle.CreatedBy != actorID {
		membership, err := s.repo.GetCurrentMembership(ctx, circleID, actorID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return nil, fmt.Errorf("list members: %w", core.ErrForbidden)
			}
			return nil, err
		}
		if !membership.IsApproved() {
			return nil, fmt.Errorf("list members: %w", core.ErrForbidden)
		}
	}

	return s.repo.ListMembers(ctx, circleID)
}
