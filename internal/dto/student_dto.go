package dto

import (
	"time"

	"github.com/ursa-team/ursa-go-api/internal/models"
)

// RadarStats feeds the radar chart on the student profile: one label and one
// value per rating category.
type RadarStats struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// StudentProfileResponse is the full profile view of a student.
type StudentProfileResponse struct {
	ID            uint       `json:"id"`
	FullName      string     `json:"full_name"`
	RecordBook    string     `json:"record_book"`
	GroupName     string     `json:"group_name,omitempty"`
	Faculty       string     `json:"faculty,omitempty"`
	AcademicScore int        `json:"academic_score"`
	ResearchScore int        `json:"research_score"`
	SportScore    int        `json:"sport_score"`
	SocialScore   int        `json:"social_score"`
	CulturalScore int        `json:"cultural_score"`
	TotalScore    int        `json:"total_score"`
	RadarStats    RadarStats `json:"radar_stats"`
	CreatedAt     time.Time  `json:"created_at"`
}

// NewStudentProfileResponse converts a Student model into a profile DTO.
// Radar data is attached separately since it depends on the rule table.
func NewStudentProfileResponse(model models.Student) StudentProfileResponse {
	return StudentProfileResponse{
		ID:            model.ID,
		FullName:      model.FullName,
		RecordBook:    model.RecordBook,
		GroupName:     model.GroupName,
		Faculty:       model.Faculty,
		AcademicScore: model.AcademicScore,
		ResearchScore: model.ResearchScore,
		SportScore:    model.SportScore,
		SocialScore:   model.SocialScore,
		CulturalScore: model.CulturalScore,
		TotalScore:    model.TotalScore(),
		CreatedAt:     model.CreatedAt,
	}
}

// RatingEntry is one row of the rating leaderboard.
type RatingEntry struct {
	Rank       int    `json:"rank"`
	StudentID  uint   `json:"student_id"`
	FullName   string `json:"full_name"`
	GroupName  string `json:"group_name,omitempty"`
	TotalScore int    `json:"total_score"`
}
