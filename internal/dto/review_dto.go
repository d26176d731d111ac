package dto

import "encoding/json"

// ReasonList accepts either a JSON array of strings or a single string, the
// two shapes moderation clients send for rejection reasons.
type ReasonList []string

// UnmarshalJSON implements the lenient decoding.
func (r *ReasonList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*r = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}

	*r = ReasonList{single}
	return nil
}

// ReviewRequest carries a moderation action for a document.
type ReviewRequest struct {
	Action  string     `json:"action" validate:"required"`
	Reasons ReasonList `json:"reasons" validate:"omitempty,dive,min=1"`
}
