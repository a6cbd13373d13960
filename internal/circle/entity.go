// AngelaMos | 2026
// entity.go

package circle

import (
	"time"
)

const (
	TypePublic  = "public"
	TypeRequest = "request"
	TypeInvite  = "invite"
)

func ValidCircleType(t string) bool {
	switch t {
	case TypePublic, TypeRequest, TypeInvite:
		return true
	}
	return false
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRemoved  = "removed"
)

const (
	RoleMember    = "member"
	RoleModerator = "moderator"
)

type Circle struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	City      string    `db:"city"`
	State     string    `db:"state"`
	Zip       string    `db:"zip"`
	Type      string    `db:"type"`
	Icon      string    `db:"icon"`
	CreatedBy string    `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Membership is one epoch of a user's relationship with a circle. Removed
// rows stay behind as history; a rejoin inserts a fresh row rather than
// reviving the removed one.
type Membership struct {
	ID        string    `db:"id"`
	CircleID  string    `db:"circle_id"`
	UserID    string    `db:"user_id"`
	Status    string    `db:"status"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m *Membership) IsApproved() bool {
	return m.Status == StatusApproved
}

func (m *Membership) IsModerator() bool {
	return m.Status == StatusApproved && m.Role == RoleModerator
}

type Invitation struct {
	ID         string     `db:"id"`
	CircleID   string     `db:"circle_id"`
	InviterID  string     `db:"inviter_id"`
	Email      string     `db:"email"`
	Token      string     `db:"token"`
	ExpiresAt  time.Time  `db:"expires_at"`
	AcceptedAt *time.Time `db:"accepted_at"`
	CreatedAt  time.Time  `db:"created_at"`
}

func (i *Invitation) Usable(now time.Time) bool {
	return i.AcceptedAt == nil && now.Before(i.ExpiresAt)
}
