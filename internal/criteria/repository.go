// AngelaMos | 2026
// repository.go

package criteria

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/veritas-backend/internal/core"
)

type Repository interface {
	List(ctx context.Context, interactionType string) ([]RatingCriterion, error)
	GetByID(ctx context.Context, id string) (*RatingCriterion, error)
	ListActiveByType(
		ctx context.Context,
		interactionType string,
	) ([]RatingCriterion, error)
	Upsert(ctx context.Context, criterion *RatingCriterion) error
	SoftDelete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) List(
	ctx context.Context,
	interactionType string,
) ([]RatingCriterion, error) {
	query := `
		SELECT id, interaction_type, name, weight,
		       created_at, updated_at, deleted_at
		FROM rating_criteria
		WHERE deleted_at IS NULL`
	var args []any

	if interactionType != "" {
		query += ` AND interaction_type = $1`
		args = append(args, interactionType)
	}

	query += ` ORDER BY interaction_type, name`

	var list []RatingCriterion
	if err := r.db.SelectContext(ctx, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list criteria: %w", err)
	}

	return list, nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*RatingCriterion, error) {
	query := `
		SELECT id, interaction_type, name, weight,
		       created_at, updated_at, deleted_at
		FROM rating_criteria
		WHERE id = $1`

	var criterion RatingCriterion
	err := r.db.GetContext(ctx, &criterion, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get criterion: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get criterion: %w", err)
	}

	return &criterion, nil
}

func (r *repository) ListActiveByType(
	ctx context.Context,
	interactionType string,
) ([]RatingCriterion, error) {
	query := `
		SELECT id, interaction_type, name, weight,
		       created_at, updated_at, deleted_at
		FROM rating_criteria
		WHERE interaction_type = $1 AND deleted_at IS NULL`

	var list []RatingCriterion
	err := r.db.SelectContext(ctx, &list, query, interactionType)
	if err != nil {
		return nil, fmt.Errorf("list active criteria: %w", err)
	}

	return list, nil
}

func (r *repository) Upsert(
	ctx context.Context,
	criterion *RatingCriterion,
) error {
	query := `
		INSERT INTO rating_criteria (id, interaction_type, name, weight)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET interaction_type = EXCLUDED.interaction_type,
		    name = EXCLUDED.name,
		    weight = EXCLUDED.weight,
		    updated_at = NOW()
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, criterion, query,
		criterion.ID,
		criterion.InteractionType,
		criterion.Name,
		criterion.Weight,
	)
	if err != nil {
		return fmt.Errorf("upsert criterion: %w", err)
	}

	return nil
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE rating_criteria
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete criterion: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete criterion: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete criterion: %w", core.ErrNotFound)
	}

	return nil
}
