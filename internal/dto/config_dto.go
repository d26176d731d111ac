package dto

import "github.com/ursa-team/ursa-go-api/internal/scoring"

// AchievementConfigResponse supplies everything the submission form needs:
// the category/sub-type structure with its requirement flags plus the flat
// choice lists. Placeholder sentinel values are already filtered out.
type AchievementConfigResponse struct {
	Structure map[string]scoring.CategorySchema `json:"structure"`
	Levels    []scoring.Choice                  `json:"levels"`
	Results   []scoring.Choice                  `json:"results"`
	DocTypes  []scoring.Choice                  `json:"doc_types"`
}
