// AngelaMos | 2026
// entity.go

package trust

// Summary is the aggregated view of a POI's ledger. Score is nil when the
// POI has no ratings at all (or only zero-weight criteria); consumers
// render that as "N/A", never as zero.
type Summary struct {
	POIID                string         `json:"poi_id"`
	Score                *float64       `json:"score"`
	TotalInteractions    int            `json:"total_interactions"`
	Positive             int            `json:"positive"`
	Neutral              int            `json:"neutral"`
	Negative             int            `json:"negative"`
	PlatformDistribution map[string]int `json:"platform_distribution"`
	LocationDistribution map[string]int `json:"location_distribution"`
}

// WeightedScore computes the 0-5 weighted mean from the accumulated
// weighted sum and weight total. The mean is a pure fold over the rating
// set, so submission order never changes the result.
func WeightedScore(weightedSum, weightTotal float64) *float64 {
	if weightTotal <= 0 {
		return nil
	}

	score := weightedSum / weightTotal
	return &score
}
