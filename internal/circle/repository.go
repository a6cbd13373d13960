// AngelaMos | 2026
// repository.go

package circle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/veritas-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, circle *Circle) (*Membership, error)
	GetByID(ctx context.Context, id string) (*Circle, error)
	List(ctx context.Context, params ListCirclesParams) ([]Circle, int, error)
	GetCurrentMembership(ctx context.Context, circleID, userID string) (*Membership, error)
	CreateMembership(ctx context.Context, membership *Membership) error
	TransitionMembership(ctx context.Context, circleID, targetUserID, newStatus, newRole string, validate func(current *Membership) error) (*Membership, error)
	ListMembers(ctx context.Context, circleID string) ([]Membership, error)
	CreateInvitation(ctx context.Context, invitation *Invitation) error
	GetInvitationByToken(ctx context.Context, token string) (*Invitation, error)
	AcceptInvitation(ctx context.Context, id string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts the circle and the creator's approved moderator
// membership in one transaction, so a circle never exists without a
// moderator.
func (r *repository) Create(
	ctx context.Context,
	circle *Circle,
) (*Membership, error) {
	membership := &Membership{}

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		insertCircle := `
			INSERT INTO circles (name, slug, city, state, zip, type, icon, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at, updated_at`

		err := tx.GetContext(ctx, circle, insertCircle,
			circle.Name,
			circle.Slug,
			circle.City,
			circle.State,
			circle.Zip,
			circle.Type,
			circle.Icon,
			circle.CreatedBy,
		)
		if err != nil {
			if isDuplicateError(err) {
				return fmt.Errorf("create circle: %w", core.ErrDuplicateKey)
			}
			return fmt.Errorf("create circle: %w", err)
		}

		insertMembership := `
			INSERT INTO circle_memberships (circle_id, user_id, status, role)
			VALUES ($1, $2, $3, $4)
			RETURNING id, circle_id, user_id, status, role, created_at, updated_at`

		err = tx.GetContext(ctx, membership, insertMembership,
			circle.ID,
			circle.CreatedBy,
			StatusApproved,
			RoleModerator,
		)
		if err != nil {
			return fmt.Errorf("create creator membership: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return membership, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Circle, error) {
	query := `
		SELECT id, name, slug, city, state, zip, type, icon, created_by,
		       created_at, updated_at
		FROM circles
		WHERE id = $1`

	var circle Circle
	err := r.db.GetContext(ctx, &circle, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get circle: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get circle: %w", err)
	}

	return &circle, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListCirclesParams,
) ([]Circle, int, error) {
	where := ` WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		AND ($2 = '' OR city = $2)
		AND ($3 = '' OR state = $3)`

	var total int
	countQuery := `SELECT COUNT(*) FROM circles` + where
	err := r.db.GetContext(ctx, &total, countQuery,
		params.Search, params.City, params.State)
	if err != nil {
		return nil, 0, fmt.Errorf("count circles: %w", err)
	}

	query := `
		SELECT id, name, slug, city, state, zip, type, icon, created_by,
		       created_at, updated_at
		FROM circles` + where + `
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`

	var circles []Circle
	err = r.db.SelectContext(ctx, &circles, query,
		params.Search, params.City, params.State,
		params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list circles: %w", err)
	}

	return circles, total, nil
}

// GetCurrentMembership returns the latest membership epoch for the pair,
// removed rows included so callers can see the terminal state.
func (r *repository) GetCurrentMembership(
	ctx context.Context,
	circleID, userID string,
) (*Membership, error) {
	query := `
		SELECT id, circle_id, user_id, status, role, created_at, updated_at
		FROM circle_memberships
		WHERE circle_id = $1 AND user_id = $2
		ORDER BY created_at DESC
		LIMIT 1`

	var membership Membership
	err := r.db.GetContext(ctx, &membership, query, circleID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get membership: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get membership: %w", err)
	}

	return &membership, nil
}

func (r *repository) CreateMembership(
	ctx context.Context,
	membership *Membership,
) error {
	query := `
		INSERT INTO circle_memberships (circle_id, user_id, status, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.GetContext(ctx, membership, query,
		membership.CircleID,
		membership.UserID,
		membership.Status,
		membership.Role,
	)
	if err != nil {
		if isDuplicateError(err) {
			return fmt.Errorf("create membership: %w", core.ErrConflict)
		}
		return fmt.Errorf("create membership: %w", err)
	}

	return nil
}

// TransitionMembership applies a status/role change to the target's
// current epoch. The row is re-read under FOR UPDATE and validated inside
// the transaction, so a transition that raced another writer is judged
// against the state that actually won.
func (r *repository) TransitionMembership(
	ctx context.Context,
	circleID, targetUserID, newStatus, newRole string,
	validate func(current *Membership) error,
) (*Membership, error) {
	var updated Membership

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		selectQuery := `
			SELECT id, circle_id, user_id, status, role, created_at, updated_at
			FROM circle_memberships
			WHERE circle_id = $1 AND user_id = $2
			ORDER BY created_at DESC
			LIMIT 1
			FOR UPDATE`

		var current Membership
		err := tx.GetContext(ctx, &current, selectQuery, circleID, targetUserID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("get membership: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("get membership: %w", err)
		}

		if err := validate(&current); err != nil {
			return err
		}

		role := current.Role
		if newRole != "" {
			role = newRole
		}

		updateQuery := `
			UPDATE circle_memberships
			SET status = $1, role = $2, updated_at = NOW()
			WHERE id = $3
			RETURNING id, circle_id, user_id, status, role, created_at, updated_at`

		err = tx.GetContext(ctx, &updated, updateQuery, newStatus, role, current.ID)
		if err != nil {
			return fmt.Errorf("update membership: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) ListMembers(
	ctx context.Context,
	circleID string,
) ([]Membership, error) {
	query := `
		SELECT id, circle_id, user_id, status, role, created_at, updated_at
		FROM circle_memberships
		WHERE circle_id = $1 AND status != $2
		ORDER BY created_at`

	var members []Membership
	err := r.db.SelectContext(ctx, &members, query, circleID, StatusRemoved)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	return members, nil
}

func (r *repository) CreateInvitation(
	ctx context.Context,
	invitation *Invitation,
) error {
	query := `
		INSERT INTO circle_invitations (circle_id, inviter_id, email, token, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.GetContext(ctx, invitation, query,
		invitation.CircleID,
		invitation.InviterID,
		invitation.Email,
		invitation.Token,
		invitation.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("create invitation: %w", err)
	}

	return nil
}

func (r *repository) GetInvitationByToken(
	ctx context.Context,
	token string,
) (*Invitation, error) {
	query := `
		SELECT id, circle_id, inviter_id, email, token, expires_at,
		       accepted_at, created_at
		FROM circle_invitations
		WHERE token = $1`

	var invitation Invitation
	err := r.db.GetContext(ctx, &invitation, query, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get invitation: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get invitation: %w", err)
	}

	return &invitation, nil
}

func (r *repository) AcceptInvitation(ctx context.Context, id string) error {
	query := `
		UPDATE circle_invitations
		SET accepted_at = NOW()
		WHERE id = $1 AND accepted_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("accept invitation: %w", err)
	}

	return nil
}

func isDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
