// AngelaMos | 2026
// repository.go

package trust

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/veritas-backend/internal/core"
)

type Repository interface {
	Aggregate(ctx context.Context, poiID string) (*Summary, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

type ratingAggregate struct {
	WeightedSum float64 `db:"weighted_sum"`
	WeightTotal float64 `db:"weight_total"`
	RatingCount int     `db:"rating_count"`
}

type outcomeAggregate struct {
	Total    int `db:"total"`
	Positive int `db:"positive"`
	Neutral  int `db:"neutral"`
	Negative int `db:"negative"`
}

type distributionRow struct {
	Key   string `db:"key"`
	Count int    `db:"count"`
}

// Aggregate recomputes the full summary from the ledger. Soft-deleted
// criteria intentionally still contribute their weight: deleting a
// criterion must not shift historical scores.
func (r *repository) Aggregate(
	ctx context.Context,
	poiID string,
) (*Summary, error) {
	summary := &Summary{
		POIID:                poiID,
		PlatformDistribution: map[string]int{},
		LocationDistribution: map[string]int{},
	}

	ratingQuery := `
		SELECT
			COALESCE(SUM(ir.score * rc.weight), 0) AS weighted_sum,
			COALESCE(SUM(rc.weight), 0)            AS weight_total,
			COUNT(ir.criteria_id)                  AS rating_count
		FROM interaction_ratings ir
		JOIN interactions i ON i.id = ir.interaction_id
		JOIN rating_criteria rc ON rc.id = ir.criteria_id
		WHERE i.poi_id = $1`

	var ratings ratingAggregate
	if err := r.db.GetContext(ctx, &ratings, ratingQuery, poiID); err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}

	summary.Score = WeightedScore(ratings.WeightedSum, ratings.WeightTotal)

	outcomeQuery := `
		SELECT
			COUNT(*)                                                  AS total,
			COUNT(*) FILTER (WHERE outcome_rating = 'positive')       AS positive,
			COUNT(*) FILTER (WHERE outcome_rating = 'neutral')        AS neutral,
			COUNT(*) FILTER (WHERE outcome_rating = 'negative')       AS negative
		FROM interactions
		WHERE poi_id = $1`

	var outcomes outcomeAggregate
	if err := r.db.GetContext(ctx, &outcomes, outcomeQuery, poiID); err != nil {
		return nil, fmt.Errorf("aggregate outcomes: %w", err)
	}

	summary.TotalInteractions = outcomes.Total
	summary.Positive = outcomes.Positive
	summary.Neutral = outcomes.Neutral
	summary.Negative = outcomes.Negative

	platformQuery := `
		SELECT platform AS key, COUNT(*) AS count
		FROM interactions
		WHERE poi_id = $1 AND platform <> ''
		GROUP BY platform`

	var platforms []distributionRow
	if err := r.db.SelectContext(ctx, &platforms, platformQuery, poiID); err != nil {
		return nil, fmt.Errorf("aggregate platforms: %w", err)
	}

	for _, row := range platforms {
		summary.PlatformDistribution[row.Key] = row.Count
	}

	locationQuery := `
		SELECT TRIM(BOTH ', ' FROM city || ', ' || state) AS key, COUNT(*) AS count
		FROM interactions
		WHERE poi_id = $1 AND (city <> '' OR state <> '')
		GROUP BY city, state`

	var locations []distributionRow
	if err := r.db.SelectContext(ctx, &locations, locationQuery, poiID); err != nil {
		return nil, fmt.Errorf("aggregate locations: %w", err)
	}

	for _, row := range locations {
		summary.LocationDistribution[row.Key] = row.Count
	}

	return summary, nil
}
