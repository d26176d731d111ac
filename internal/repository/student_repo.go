package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ursa-team/ursa-go-api/internal/models"
)

// totalScoreExpr orders students by the derived total without storing it.
const totalScoreExpr = "academic_score + research_score + sport_score + social_score + cultural_score"

// StudentRepository provides access to student records.
type StudentRepository interface {
	GetByID(ctx context.Context, id uint) (models.Student, error)
	GetByRecordBook(ctx context.Context, recordBook string) (models.Student, error)
	ListByTotalScore(ctx context.Context, limit int) ([]models.Student, error)
	Create(ctx context.Context, student *models.Student) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) GetByRecordBook(ctx context.Context, recordBook string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).
		Where("LOWER(record_book) = LOWER(?)", recordBook).
		First(&student).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) ListByTotalScore(ctx context.Context, limit int) ([]models.Student, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{}).
		Order(totalScoreExpr + " DESC").
		Order("full_name ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var students []models.Student
	if err := query.Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}
