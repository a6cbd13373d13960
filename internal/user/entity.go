// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID           string     `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Name         string     `db:"name"`
	Role         string     `db:"role"`
	TokenVersion int        `db:"token_version"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile is the member-facing page for a User. Exactly one per user,
// created alongside the account. Owner-only mutation is enforced at the
// service layer.
type Profile struct {
	UserID     string    `db:"user_id"`
	Slug       string    `db:"slug"`
	City       string    `db:"city"`
	State      string    `db:"state"`
	Zip        string    `db:"zip"`
	Bio        string    `db:"bio"`
	AvatarKey  string    `db:"avatar_key"`
	TrustScore *float64  `db:"trust_score"`
	IsVisible  bool      `db:"is_visible"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
