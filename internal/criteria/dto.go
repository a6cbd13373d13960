// AngelaMos | 2026
// dto.go

package criteria

import (
	"time"
)

type UpsertCriterionRequest struct {
	ID              string  `json:"id,omitempty"      validate:"omitempty,uuid"`
	InteractionType string  `json:"interaction_type"  validate:"required,oneof=date phone_call text_message email video_call in_person other"`
	Name            string  `json:"name"              validate:"required,min=1,max=100"`
	Weight          float64 `json:"weight"            validate:"gte=0"`
}

type CriterionResponse struct {
	ID              string    `json:"id"`
	InteractionType string    `json:"interaction_type"`
	Name            string    `json:"name"`
	Weight          float64   `json:"weight"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToCriterionResponse(c *RatingCriterion) CriterionResponse {
	return CriterionResponse{
		ID:              c.ID,
		InteractionType: c.InteractionType,
		Name:            c.Name,
		Weight:          c.Weight,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func ToCriterionResponseList(list []RatingCriterion) []CriterionResponse {
	responses := make([]CriterionResponse, 0, len(list))
	for i := range list {
		responses = append(responses, ToCriterionResponse(&list[i]))
	}
	return responses
}
