package dto

import (
	"time"

	"github.com/ursa-team/ursa-go-api/internal/models"
)

// AchievementCreateRequest describes the multipart payload for an
// achievement submission. Level and result fall back to the internal
// sentinels when the sub-type does not use them.
type AchievementCreateRequest struct {
	RecordBook  string `form:"record_book" validate:"required,min=1,max=30"`
	Category    string `form:"category" validate:"required"`
	SubType     string `form:"sub_type" validate:"required"`
	Level       string `form:"level" validate:"omitempty,max=64"`
	Result      string `form:"result" validate:"omitempty,max=64"`
	Achievement string `form:"achievement" validate:"required,max=255"`
	DocType     string `form:"doc_type" validate:"omitempty,max=64"`
}

// DocumentFilter describes query string filters for listing documents.
type DocumentFilter struct {
	StudentID *uint   `query:"student_id"`
	Status    *string `query:"status" validate:"omitempty,oneof=pending approved rejected"`
}

// DocumentResponse is returned to API clients when viewing submissions.
type DocumentResponse struct {
	ID               uint        `json:"id"`
	StudentID        uint        `json:"student_id"`
	Category         string      `json:"category"`
	SubType          string      `json:"sub_type"`
	Level            string      `json:"level"`
	Result           string      `json:"result"`
	Achievement      string      `json:"achievement"`
	DocType          string      `json:"doc_type"`
	Score            int         `json:"score"`
	Status           string      `json:"status"`
	RejectionReason  string      `json:"rejection_reason,omitempty"`
	OriginalFileName string      `json:"original_file_name,omitempty"`
	FileURL          string      `json:"file_url,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	Student          StudentLite `json:"student"`
}

// StudentLite summarizes a student without exposing full profile data.
type StudentLite struct {
	ID         uint   `json:"id"`
	FullName   string `json:"full_name"`
	RecordBook string `json:"record_book"`
}

// NewDocumentResponse converts a Document model into a DTO.
func NewDocumentResponse(model models.Document) DocumentResponse {
	response := DocumentResponse{
		ID:               model.ID,
		StudentID:        model.StudentID,
		Category:         model.Category,
		SubType:          model.SubType,
		Level:            model.Level,
		Result:           model.Result,
		Achievement:      model.Achievement,
		DocType:          model.DocType,
		Score:            model.Score,
		Status:           model.Status,
		RejectionReason:  model.RejectionReason,
		OriginalFileName: model.OriginalFileName,
		FileURL:          model.FileURL,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}

	if model.Student.ID != 0 {
		response.Student = StudentLite{
			ID:         model.Student.ID,
			FullName:   model.Student.FullName,
			RecordBook: model.Student.RecordBook,
		}
	}

	return response
}

// NewDocumentResponseSlice converts document models into DTOs.
func NewDocumentResponseSlice(documents []models.Document) []DocumentResponse {
	responses := make([]DocumentResponse, 0, len(documents))
	for _, document := range documents {
		responses = append(responses, NewDocumentResponse(document))
	}

	return responses
}
