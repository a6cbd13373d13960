// AngelaMos | 2026
// entity.go

package criteria

import (
	"time"
)

// Interaction types are a closed set; criteria weights only apply within
// their own type.
const (
	TypeDate        = "date"
	TypePhoneCall   = "phone_call"
	TypeTextMessage = "text_message"
	TypeEmail       = "email"
	TypeVideoCall   = "video_call"
	TypeInPerson    = "in_person"
	TypeOther       = "other"
)

var interactionTypes = map[string]struct{}{
	TypeDate:        {},
	TypePhoneCall:   {},
	TypeTextMessage: {},
	TypeEmail:       {},
	TypeVideoCall:   {},
	TypeInPerson:    {},
	TypeOther:       {},
}

func ValidInteractionType(t string) bool {
	_, ok := interactionTypes[t]
	return ok
}

// RatingCriterion is an admin-managed, weighted axis for scoring an
// interaction of a given type. Deleted criteria stay in the table so
// historical ratings keep their weights; they are excluded from listings
// and from new-interaction validation.
type RatingCriterion struct {
	ID              string     `db:"id"`
	InteractionType string     `db:"interaction_type"`
	Name            string     `db:"name"`
	Weight          float64    `db:"weight"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
	DeletedAt       *time.Time `db:"deleted_at"`
}
