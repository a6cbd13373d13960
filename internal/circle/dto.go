// AngelaMos | 2026
// dto.go

package circle

import (
	"time"
)

type CreateCircleRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	City  string `json:"city" validate:"max=100"`
	State string `json:"state" validate:"max=50"`
	Zip   string `json:"zip" validate:"max=10"`
	Type  string `json:"type" validate:"required,oneof=public request invite"`
	Icon  string `json:"icon" validate:"max=50"`
}

type JoinCircleRequest struct {
	InviteToken string `json:"invite_token" validate:"omitempty,uuid"`
}

type ManageMemberRequest struct {
	TargetUserID string `json:"target_user_id" validate:"required,uuid"`
	Status       string `json:"status" validate:"required,oneof=approved removed"`
	Role         string `json:"role" validate:"omitempty,oneof=member moderator"`
}

type InviteByEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ListCirclesParams struct {
	Search   string
	City     string
	State    string
	Page     int
	PageSize int
}

func (p *ListCirclesParams) Normalize() {
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

func (p *ListCirclesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type CircleResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Zip       string    `json:"zip"`
	Type      string    `json:"type"`
	Icon      string    `json:"icon"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type MembershipResponse struct {
	ID        string    `json:"id"`
	CircleID  string    `json:"circle_id"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type InvitationResponse struct {
	ID        string    `json:"id"`
	CircleID  string    `json:"circle_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func ToCircleResponse(c *Circle) CircleResponse {
	return CircleResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		City:      c.City,
		State:     c.State,
		Zip:       c.Zip,
		Type:      c.Type,
		Icon:      c.Icon,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
	}
}

func ToCircleResponseList(circles []Circle) []CircleResponse {
	responses := make([]CircleResponse, 0, len(circles))
	for i := range circles {
		responses = append(responses, ToCircleResponse(&circles[i]))
	}
	return responses
}

func ToMembershipResponse(m *Membership) MembershipResponse {
	return MembershipResponse{
		ID:        m.ID,
		CircleID:  m.CircleID,
		UserID:    m.UserID,
		Status:    m.Status,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToMembershipResponseList(memberships []Membership) []MembershipResponse {
	responses := make([]MembershipResponse, 0, len(memberships))
	for i := range memberships {
		responses = append(responses, ToMembershipResponse(&memberships[i]))
	}
	return responses
}

func ToInvitationResponse(i *Invitation) InvitationResponse {
	return InvitationResponse{
		ID:        i.ID,
		CircleID:  i.CircleID,
		Email:     i.Email,
		ExpiresAt: i.ExpiresAt,
		CreatedAt: i.CreatedAt,
	}
}
