// AngelaMos | 2026
// entity.go

package poi

import (
	"time"
)

// PersonOfInterest is the subject of logged interactions. It may or may
// not correspond to a platform user; once any interaction references it,
// the row is never hard-deleted.
type PersonOfInterest struct {
	ID          string    `db:"id"`
	MainAlias   string    `db:"main_alias"`
	Slug        string    `db:"slug"`
	City        string    `db:"city"`
	State       string    `db:"state"`
	AvatarKey   string    `db:"avatar_key"`
	IsPublic    bool      `db:"is_public"`
	IsShareable bool      `db:"is_shareable"`
	CreatedBy   string    `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
