// AngelaMos | 2026
// dto.go

package tag

import (
	"time"
)

type AssignTagRequest struct {
	TagID string `json:"tag_id" validate:"required,uuid"`
}

type TagResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Emoji            string  `json:"emoji,omitempty"`
	TrustImpactScore float64 `json:"trust_impact_score"`
}

type AssignmentResponse struct {
	UserID    string    `json:"user_id"`
	POIID     string    `json:"poi_id"`
	TagID     string    `json:"tag_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

type POITagCount struct {
	TagID string `db:"tag_id" json:"tag_id"`
	Count int    `db:"count"  json:"count"`
}

func ToTagResponse(t *Tag) TagResponse {
	return TagResponse{
		ID:               t.ID,
		Name:             t.Name,
		Category:         t.Category,
		Emoji:            t.Emoji,
		TrustImpactScore: t.TrustImpactScore,
	}
}

func ToTagResponseList(tags []Tag) []TagResponse {
	responses := make([]TagResponse, 0, len(tags))
	for i := range tags {
		responses = append(responses, ToTagResponse(&tags[i]))
	}
	return responses
}

func ToAssignmentResponse(a *Assignment) AssignmentResponse {
	return AssignmentResponse{
		UserID:    a.UserID,
		POIID:     a.POIID,
		TagID:     a.TagID,
		UpdatedAt: a.UpdatedAt,
	}
}
