// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type UpdateUserRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type UpdateProfileRequest struct {
	City      *string `json:"city,omitempty"       validate:"omitempty,max=100"`
	State     *string `json:"state,omitempty"      validate:"omitempty,max=50"`
	Zip       *string `json:"zip,omitempty"        validate:"omitempty,max=16"`
	Bio       *string `json:"bio,omitempty"        validate:"omitempty,max=2000"`
	AvatarKey *string `json:"avatar_key,omitempty" validate:"omitempty,max=512"`
	IsVisible *bool   `json:"is_visible,omitempty"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProfileResponse struct {
	UserID     string    `json:"user_id"`
	Slug       string    `json:"slug"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	Zip        string    `json:"zip,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	AvatarKey  string    `json:"avatar_key,omitempty"`
	TrustScore *float64  `json:"trust_score"`
	IsVisible  bool      `json:"is_visible"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ListUsersParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
	Role     string `json:"role"`
}

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}

func ToProfileResponse(p *Profile) ProfileResponse {
	return ProfileResponse{
		UserID:     p.UserID,
		Slug:       p.Slug,
		City:       p.City,
		State:      p.State,
		Zip:        p.Zip,
		Bio:        p.Bio,
		AvatarKey:  p.AvatarKey,
		TrustScore: p.TrustScore,
		IsVisible:  p.IsVisible,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
