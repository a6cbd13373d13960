// AngelaMos | 2026
// entity.go

package interaction

import (
	"time"
)

const (
	OutcomePositive = "positive"
	OutcomeNeutral  = "neutral"
	OutcomeNegative = "negative"
)

func ValidOutcome(o string) bool {
	return o == OutcomePositive || o == OutcomeNeutral || o == OutcomeNegative
}

const (
	MinScore = 0
	MaxScore = 5
)

// Interaction is one append-only ledger entry: a reporter's account of a
// single encounter with a POI. Rows are never updated or deleted;
// corrections are logged as new entries.
type Interaction struct {
	ID          string    `db:"id"`
	ReporterID  string    `db:"reporter_id"`
	POIID       string    `db:"poi_id"`
	Type        string    `db:"interaction_type"`
	Platform    string    `db:"platform"`
	OccurredAt  time.Time `db:"occurred_at"`
	Description string    `db:"description"`
	Outcome     string    `db:"outcome_rating"`
	City        string    `db:"city"`
	State       string    `db:"state"`
	CreatedAt   time.Time `db:"created_at"`

	Ratings []InteractionRating `db:"-"`
}

// InteractionRating scores one criterion of its parent interaction.
// Unique per (interaction, criterion); the criterion must belong to the
// parent's interaction type.
type InteractionRating struct {
	InteractionID string `db:"interaction_id"`
	CriteriaID    string `db:"criteria_id"`
	Score         int    `db:"score"`
}
