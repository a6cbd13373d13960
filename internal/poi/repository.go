// AngelaMos | 2026
// repository.go

package poi

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/veritas-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, poi *PersonOfInterest) error
	GetByID(ctx context.Context, id string) (*PersonOfInterest, error)
	GetBySlug(ctx context.Context, slug string) (*PersonOfInterest, error)
	Update(ctx context.Context, poi *PersonOfInterest) error
	Exists(ctx context.Context, id string) (bool, error)
	List(
		ctx context.Context,
		params ListPOIParams,
	) ([]PersonOfInterest, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	poi *PersonOfInterest,
) error {
	query := `
		INSERT INTO persons_of_interest (
			id, main_alias, slug, city, state, avatar_key,
			is_public, is_shareable, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, poi, query,
		poi.ID,
		poi.MainAlias,
		poi.Slug,
		poi.City,
		poi.State,
		poi.AvatarKey,
		poi.IsPublic,
		poi.IsShareable,
		poi.CreatedBy,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create poi: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create poi: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*PersonOfInterest, error) {
	query := `
		SELECT id, main_alias, slug, city, state, avatar_key,
		       is_public, is_shareable, created_by, created_at, updated_at
		FROM persons_of_interest
		WHERE id = $1`

	var poi PersonOfInterest
	err := r.db.GetContext(ctx, &poi, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get poi: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get poi: %w", err)
	}

	return &poi, nil
}

func (r *repository) GetBySlug(
	ctx context.Context,
	slug string,
) (*PersonOfInterest, error) {
	query := `
		SELECT id, main_alias, slug, city, state, avatar_key,
		       is_public, is_shareable, created_by, created_at, updated_at
		FROM persons_of_interest
		WHERE slug = $1`

	var poi PersonOfInterest
	err := r.db.GetContext(ctx, &poi, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get poi by slug: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get poi by slug: %w", err)
	}

	return &poi, nil
}

func (r *repository) Update(
	ctx context.Context,
	poi *PersonOfInterest,
) error {
	query := `
		UPDATE persons_of_interest
		SET main_alias = $2, city = $3, state = $4, avatar_key = $5,
		    is_public = $6, is_shareable = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &poi.UpdatedAt, query,
		poi.ID,
		poi.MainAlias,
		poi.City,
		poi.State,
		poi.AvatarKey,
		poi.IsPublic,
		poi.IsShareable,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update poi: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update poi: %w", err)
	}

	return nil
}

func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM persons_of_interest WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("check poi exists: %w", err)
	}

	return exists, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListPOIParams,
) ([]PersonOfInterest, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "is_public = true")

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(main_alias ILIKE $%d OR slug ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.City != "" {
		conditions = append(conditions, fmt.Sprintf("city = $%d", argIdx))
		args = append(args, params.City)
		argIdx++
	}

	if params.State != "" {
		conditions = append(conditions, fmt.Sprintf("state = $%d", argIdx))
		args = append(args, params.State)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM persons_of_interest WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count pois: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, main_alias, slug, city, state, avatar_key,
		       is_public, is_shareable, created_by, created_at, updated_at
		FROM persons_of_interest
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var pois []PersonOfInterest
	if err := r.db.SelectContext(ctx, &pois, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list pois: %w", err)
	}

	return pois, total, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
