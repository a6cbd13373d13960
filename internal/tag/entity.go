// AngelaMos | 2026
// entity.go

package tag

import (
	"time"
)

const (
	CategoryPositive = "positive"
	CategoryNeutral  = "neutral"
	CategoryNegative = "negative"
)

// Tag is a catalog entry users can pin on a POI: a category-grouped label
// with an emoji and an advisory trust impact, independent of the numeric
// rating pipeline.
type Tag struct {
	ID               string    `db:"id"`
	Name             string    `db:"name"`
	Category         string    `db:"category"`
	Emoji            string    `db:"emoji"`
	TrustImpactScore float64   `db:"trust_impact_score"`
	CreatedAt        time.Time `db:"created_at"`
}

// Assignment is the single tag a user currently has on a POI. The
// (user_id, poi_id) pair is unique; re-assigning replaces in place.
type Assignment struct {
	UserID    string    `db:"user_id"`
	POIID     string    `db:"poi_id"`
	TagID     string    `db:"tag_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
