// AngelaMos | 2026
// dto.go

package interaction

import (
	"time"
)

type RatingInput struct {
	CriteriaID string `json:"criteria_id" validate:"required,uuid"`
	Score      int    `json:"score"       validate:"gte=0,lte=5"`
}

type LogInteractionRequest struct {
	POIID       string        `json:"poi_id"         validate:"required,uuid"`
	Type        string        `json:"type"           validate:"required,oneof=date phone_call text_message email video_call in_person other"`
	Platform    string        `json:"platform"       validate:"omitempty,max=100"`
	OccurredAt  time.Time     `json:"occurred_at"    validate:"required"`
	Description string        `json:"description"    validate:"omitempty,max=5000"`
	Outcome     string        `json:"outcome_rating" validate:"required,oneof=positive neutral negative"`
	City        string        `json:"city"           validate:"omitempty,max=100"`
	State       string        `json:"state"          validate:"omitempty,max=50"`
	Ratings     []RatingInput `json:"ratings"        validate:"dive"`
}

type RatingResponse struct {
	CriteriaID string `json:"criteria_id"`
	Score      int    `json:"score"`
}

type InteractionResponse struct {
	ID          string           `json:"id"`
	ReporterID  string           `json:"reporter_id"`
	POIID       string           `json:"poi_id"`
	Type        string           `json:"type"`
	Platform    string           `json:"platform,omitempty"`
	OccurredAt  time.Time        `json:"occurred_at"`
	Description string           `json:"description,omitempty"`
	Outcome     string           `json:"outcome_rating"`
	City        string           `json:"city,omitempty"`
	State       string           `json:"state,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	Ratings     []RatingResponse `json:"ratings"`
}

type ListParams struct {
	Page     int
	PageSize int
}

func (p *ListParams) Normalize() {
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

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToInteractionResponse(i *Interaction) InteractionResponse {
	ratings := make([]RatingResponse, 0, len(i.Ratings))
	for _, r := range i.Ratings {
		ratings = append(ratings, RatingResponse{
			CriteriaID: r.CriteriaID,
			Score:      r.Score,
		})
	}

	return InteractionResponse{
		ID:          i.ID,
		ReporterID:  i.ReporterID,
		POIID:       i.POIID,
		Type:        i.Type,
		Platform:    i.Platform,
		OccurredAt:  i.OccurredAt,
		Description: i.Description,
		Outcome:     i.Outcome,
		City:        i.City,
		State:       i.State,
		CreatedAt:   i.CreatedAt,
		Ratings:     ratings,
	}
}

func ToInteractionResponseList(list []Interaction) []InteractionResponse {
	responses := make([]InteractionResponse, 0, len(list))
	for i := range list {
		responses = append(responses, ToInteractionResponse(&list[i]))
	}
	return responses
}
