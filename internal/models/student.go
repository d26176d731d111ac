package models

import "time"

// Category codes recognised by the rating. Each maps to one counter column
// on the Student row.
const (
	CategoryAcademic = "academic"
	CategoryResearch = "research"
	CategorySport    = "sport"
	CategorySocial   = "social"
	CategoryCultural = "cultural"
)

// scoreColumns maps a category code to the counter column it credits.
// Unknown categories deliberately have no entry so a typo can never
// silently credit the wrong counter.
var scoreColumns = map[string]string{
	CategoryAcademic: "academic_score",
	CategoryResearch: "research_score",
	CategorySport:    "sport_score",
	CategorySocial:   "social_score",
	CategoryCultural: "cultural_score",
}

// ScoreColumn resolves the rating column for a category code.
func ScoreColumn(category string) (string, bool) {
	column, ok := scoreColumns[category]
	return column, ok
}

// Student represents a learner profile accumulating rating points across the
// five activity directions.
type Student struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FullName      string    `gorm:"size:150;not null" json:"full_name"`
	Email         string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	RecordBook    string    `gorm:"size:30;uniqueIndex;not null" json:"record_book"`
	GroupName     string    `gorm:"size:64" json:"group_name"`
	Faculty       string    `gorm:"size:128" json:"faculty"`
	Phone         string    `gorm:"size:20" json:"phone"`
	AcademicScore int       `gorm:"not null;default:0" json:"academic_score"`
	ResearchScore int       `gorm:"not null;default:0" json:"research_score"`
	SportScore    int       `gorm:"not null;default:0" json:"sport_score"`
	SocialScore   int       `gorm:"not null;default:0" json:"social_score"`
	CulturalScore int       `gorm:"not null;default:0" json:"cultural_score"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TotalScore is always derived from the five counters so it can never drift
// from their sum. It is intentionally not a stored column.
func (s Student) TotalScore() int {
	return s.AcademicScore + s.ResearchScore + s.SportScore + s.SocialScore + s.CulturalScore
}

// CategoryScore returns the counter value for a category code, zero for
// unknown codes.
func (s Student) CategoryScore(category string) int {
	switch category {
	case CategoryAcademic:
		return s.AcademicScore
	case CategoryResearch:
		return s.ResearchScore
	case CategorySport:
		return s.SportScore
	case CategorySocial:
		return s.SocialScore
	case CategoryCultural:
		return s.CulturalScore
	default:
		return 0
	}
}
