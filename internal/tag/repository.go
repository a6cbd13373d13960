// AngelaMos | 2026
// repository.go

package tag

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/veritas-backend/internal/core"
)

type Repository interface {
	ListTags(ctx context.Context) ([]Tag, error)
	GetTagByID(ctx context.Context, id string) (*Tag, error)
	UpsertAssignment(ctx context.Context, assignment *Assignment) error
	DeleteAssignment(ctx context.Context, userID, poiID string) error
	GetAssignment(ctx context.Context, userID, poiID string) (*Assignment, error)
	CountByPOI(ctx context.Context, poiID string) ([]POITagCount, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) ListTags(ctx context.Context) ([]Tag, error) {
	query := `
		SELECT id, name, category, emoji, trust_impact_score, created_at
		FROM tags
		ORDER BY category, name`

	var tags []Tag
	if err := r.db.SelectContext(ctx, &tags, query); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	return tags, nil
}

func (r *repository) GetTagByID(ctx context.Context, id string) (*Tag, error) {
	query := `
		SELECT id, name, category, emoji, trust_impact_score, created_at
		FROM tags
		WHERE id = $1`

	var tag Tag
	err := r.db.GetContext(ctx, &tag, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get tag: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}

	return &tag, nil
}

// UpsertAssignment relies on the (user_id, poi_id) unique constraint:
// concurrent assigns from the same user collapse to one surviving row,
// last commit wins.
func (r *repository) UpsertAssignment(
	ctx context.Context,
	assignment *Assignment,
) error {
	query := `
		INSERT INTO tag_assignments (user_id, poi_id, tag_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, poi_id) DO UPDATE
		SET tag_id = EXCLUDED.tag_id, updated_at = NOW()
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, assignment, query,
		assignment.UserID,
		assignment.POIID,
		assignment.TagID,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("assign tag: %w", core.ErrNotFound)
		}
		return fmt.Errorf("assign tag: %w", err)
	}

	return nil
}

func (r *repository) DeleteAssignment(
	ctx context.Context,
	userID, poiID string,
) error {
	query := `
		DELETE FROM tag_assignments
		WHERE user_id = $1 AND poi_id = $2`

	// Clearing an absent assignment is a no-op so retries stay idempotent.
	if _, err := r.db.ExecContext(ctx, query, userID, poiID); err != nil {
		return fmt.Errorf("clear tag: %w", err)
	}

	return nil
}

func (r *repository) GetAssignment(
	ctx context.Context,
	userID, poiID string,
) (*Assignment, error) {
	query := `
		SELECT user_id, poi_id, tag_id, created_at, updated_at
		FROM tag_assignments
		WHERE user_id = $1 AND poi_id = $2`

	var assignment Assignment
	err := r.db.GetContext(ctx, &assignment, query, userID, poiID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get tag assignment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get tag assignment: %w", err)
	}

	return &assignment, nil
}

func (r *repository) CountByPOI(
	ctx context.Context,
	poiID string,
) ([]POITagCount, error) {
	query := `
		SELECT tag_id, COUNT(*) AS count
		FROM tag_assignments
		WHERE poi_id = $1
		GROUP BY tag_id
		ORDER BY count DESC`

	var counts []POITagCount
	if err := r.db.SelectContext(ctx, &counts, query, poiID); err != nil {
		return nil, fmt.Errorf("count tags by poi: %w", err)
	}

	return counts, nil
}

func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
