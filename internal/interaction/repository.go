// AngelaMos | 2026
// repository.go

package interaction

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/veritas-backend/internal/core"
)

type Repository interface {
	CreateWithRatings(ctx context.Context, interaction *Interaction) error
	ListByPOI(
		ctx context.Context,
		poiID string,
		params ListParams,
	) ([]Interaction, int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// CreateWithRatings inserts the interaction and all of its rating rows in
// one transaction. Either everything commits or nothing does; a partial
// ledger entry is never observable.
func (r *repository) CreateWithRatings(
	ctx context.Context,
	interaction *Interaction,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO interactions (
				id, reporter_id, poi_id, interaction_type, platform,
				occurred_at, description, outcome_rating, city, state
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING created_at`

		err := tx.GetContext(ctx, &interaction.CreatedAt, query,
			interaction.ID,
			interaction.ReporterID,
			interaction.POIID,
			interaction.Type,
			interaction.Platform,
			interaction.OccurredAt,
			interaction.Description,
			interaction.Outcome,
			interaction.City,
			interaction.State,
		)
		if err != nil {
			return fmt.Errorf("create interaction: %w", err)
		}

		for i := range interaction.Ratings {
			interaction.Ratings[i].InteractionID = interaction.ID
		}

		if len(interaction.Ratings) > 0 {
			ratingQuery := `
				INSERT INTO interaction_ratings (interaction_id, criteria_id, score)
				VALUES (:interaction_id, :criteria_id, :score)`

			if _, err := tx.NamedExecContext(
				ctx,
				ratingQuery,
				interaction.Ratings,
			); err != nil {
				return fmt.Errorf("create interaction ratings: %w", err)
			}
		}

		return nil
	})
}

func (r *repository) ListByPOI(
	ctx context.Context,
	poiID string,
	params ListParams,
) ([]Interaction, int, error) {
	params.Normalize()

	countQuery := `SELECT COUNT(*) FROM interactions WHERE poi_id = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, poiID); err != nil {
		return nil, 0, fmt.Errorf("count interactions: %w", err)
	}

	query := `
		SELECT id, reporter_id, poi_id, interaction_type, platform,
		       occurred_at, description, outcome_rating, city, state, created_at
		FROM interactions
		WHERE poi_id = $1
		ORDER BY occurred_at DESC, created_at DESC
		LIMIT $2 OFFSET $3`

	var interactions []Interaction
	err := r.db.SelectContext(
		ctx,
		&interactions,
		query,
		poiID,
		params.PageSize,
		params.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list interactions: %w", err)
	}

	if len(interactions) == 0 {
		return interactions, total, nil
	}

	ids := make([]string, 0, len(interactions))
	byID := make(map[string]*Interaction, len(interactions))
	for i := range interactions {
		ids = append(ids, interactions[i].ID)
		byID[interactions[i].ID] = &interactions[i]
	}

	ratingQuery, args, err := sqlx.In(`
		SELECT interaction_id, criteria_id, score
		FROM interaction_ratings
		WHERE interaction_id IN (?)`, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("build ratings query: %w", err)
	}

	var ratings []InteractionRating
	err = r.db.SelectContext(ctx, &ratings, r.db.Rebind(ratingQuery), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list interaction ratings: %w", err)
	}

	for _, rating := range ratings {
		if parent, ok := byID[rating.InteractionID]; ok {
			parent.Ratings = append(parent.Ratings, rating)
		}
	}

	return interactions, total, nil
}
