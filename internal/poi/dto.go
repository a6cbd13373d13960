// AngelaMos | 2026
// dto.go

package poi

import (
	"time"
)

type CreatePOIRequest struct {
	MainAlias   string `json:"main_alias"  validate:"required,min=1,max=100"`
	City        string `json:"city"        validate:"omitempty,max=100"`
	State       string `json:"state"       validate:"omitempty,max=50"`
	AvatarKey   string `json:"avatar_key"  validate:"omitempty,max=512"`
	IsPublic    *bool  `json:"is_public,omitempty"`
	IsShareable *bool  `json:"is_shareable,omitempty"`
}

type UpdatePOIRequest struct {
	MainAlias   *string `json:"main_alias,omitempty"  validate:"omitempty,min=1,max=100"`
	City        *string `json:"city,omitempty"        validate:"omitempty,max=100"`
	State       *string `json:"state,omitempty"       validate:"omitempty,max=50"`
	AvatarKey   *string `json:"avatar_key,omitempty"  validate:"omitempty,max=512"`
	IsPublic    *bool   `json:"is_public,omitempty"`
	IsShareable *bool   `json:"is_shareable,omitempty"`
}

type POIResponse struct {
	ID          string    `json:"id"`
	MainAlias   string    `json:"main_alias"`
	Slug        string    `json:"slug"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	AvatarKey   string    `json:"avatar_key,omitempty"`
	IsPublic    bool      `json:"is_public"`
	IsShareable bool      `json:"is_shareable"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListPOIParams struct {
	Page     int
	PageSize int
	Search   string
	City     string
	State    string
}

func (p *ListPOIParams) Normalize() {
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

func (p *ListPOIParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToPOIResponse(p *PersonOfInterest) POIResponse {
	return POIResponse{
		ID:          p.ID,
		MainAlias:   p.MainAlias,
		Slug:        p.Slug,
		City:        p.City,
		State:       p.State,
		AvatarKey:   p.AvatarKey,
		IsPublic:    p.IsPublic,
		IsShareable: p.IsShareable,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToPOIResponseList(pois []PersonOfInterest) []POIResponse {
	responses := make([]POIResponse, 0, len(pois))
	for i := range pois {
		responses = append(responses, ToPOIResponse(&pois[i]))
	}
	return responses
}
