package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ursa-team/ursa-go-api/internal/dto"
	"github.com/ursa-team/ursa-go-api/internal/repository"
	"github.com/ursa-team/ursa-go-api/internal/scoring"
)

// StudentProfileService assembles profile views including radar chart data.
type StudentProfileService interface {
	Profile(ctx context.Context, id uint) (dto.StudentProfileResponse, error)
}

type studentProfileService struct {
	students repository.StudentRepository
	rules    scoring.Provider
	logger   zerolog.Logger
}

// NewStudentProfileService constructs the profile service.
func NewStudentProfileService(students repository.StudentRepository, rules scoring.Provider, logger zerolog.Logger) StudentProfileService {
	return &studentProfileService{
		students: students,
		rules:    rules,
		logger:   logger.With().Str("component", "student_profile_service").Logger(),
	}
}

// Profile returns the student's counters, derived total and radar data. The
// radar axes come from the rule table's category list, so a new category in
// the configuration shows up without code changes.
func (s *studentProfileService) Profile(ctx context.Context, id uint) (dto.StudentProfileResponse, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentProfileResponse{}, ErrStudentNotFound
		}
		return dto.StudentProfileResponse{}, err
	}

	response := dto.NewStudentProfileResponse(student)

	categories := scoring.Categories(s.rules.Rules())
	radar := dto.RadarStats{
		Labels: make([]string, 0, len(categories)),
		Data:   make([]int, 0, len(categories)),
	}
	for _, category := range categories {
		radar.Labels = append(radar.Labels, category.Label)
		radar.Data = append(radar.Data, student.CategoryScore(category.Value))
	}
	response.RadarStats = radar

	return response, nil
}
