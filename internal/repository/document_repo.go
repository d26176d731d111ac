package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ursa-team/ursa-go-api/internal/models"
)

// DocumentFilter allows narrowing document queries.
type DocumentFilter struct {
	StudentID *uint
	Status    *string
}

// DocumentRepository defines data operations for achievement documents.
type DocumentRepository interface {
	List(ctx context.Context, filter DocumentFilter) ([]models.Document, error)
	GetByID(ctx context.Context, id uint) (models.Document, error)
	Create(ctx context.Context, document *models.Document) error
	// Approve commits the approval transition atomically. The returned bool
	// reports whether the student was credited by this call; it is false
	// when the document was already approved.
	Approve(ctx context.Context, id uint) (models.Document, bool, error)
	Reject(ctx context.Context, id uint, reason string) (models.Document, error)
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository instantiates the repository.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Document{}).
		Preload("Student")
}

func (r *documentRepository) List(ctx context.Context, filter DocumentFilter) ([]models.Document, error) {
	query := r.baseQuery(ctx)

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var documents []models.Document
	if err := query.Order("created_at DESC").Find(&documents).Error; err != nil {
		return nil, err
	}

	return documents, nil
}

func (r *documentRepository) GetByID(ctx context.Context, id uint) (models.Document, error) {
	var document models.Document
	if err := r.baseQuery(ctx).First(&document, id).Error; err != nil {
		return models.Document{}, err
	}

	return document, nil
}

func (r *documentRepository) Create(ctx context.Context, document *models.Document) error {
	return r.db.WithContext(ctx).Create(document).Error
}

// Approve flips the document to approved and credits the owning student's
// category counter in a single transaction. The status flip is a
// compare-and-swap on status, so of two concurrent approvals only one
// crosses into the credit; the loser reloads the already-approved row and
// returns without touching the student. The counter increment runs as
// "column = column + score" inside the same transaction, which serializes
// concurrent credits to the same student.
func (r *documentRepository) Approve(ctx context.Context, id uint) (models.Document, bool, error) {
	var document models.Document
	credited := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&document, id).Error; err != nil {
			return err
		}

		if document.IsApproved() {
			return nil
		}

		column, ok := models.ScoreColumn(document.Category)
		if !ok {
			return fmt.Errorf("no rating column for category %q", document.Category)
		}

		swap := tx.Model(&models.Document{}).
			Where("id = ?", id).
			Where("status <> ?", models.DocumentStatusApproved).
			Update("status", models.DocumentStatusApproved)
		if swap.Error != nil {
			return swap.Error
		}

		if swap.RowsAffected == 0 {
			// Lost the race: someone else approved between the read and the
			// swap. Re-read and take the no-op path.
			return tx.First(&document, id).Error
		}

		update := tx.Model(&models.Student{}).
			Where("id = ?", document.StudentID).
			Update(column, gorm.Expr(column+" + ?", document.Score))
		if update.Error != nil {
			return update.Error
		}

		if update.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		document.Status = models.DocumentStatusApproved
		credited = true
		return nil
	})
	if err != nil {
		return models.Document{}, false, err
	}

	reloaded, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Document{}, false, err
	}

	return reloaded, credited, nil
}

// Reject stores the joined reasons and flips the status. It never touches
// the student's counters, including for a previously approved document.
func (r *documentRepository) Reject(ctx context.Context, id uint, reason string) (models.Document, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var document models.Document
		if err := tx.First(&document, id).Error; err != nil {
			return err
		}

		return tx.Model(&models.Document{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"status":           models.DocumentStatusRejected,
				"rejection_reason": reason,
			}).Error
	})
	if err != nil {
		return models.Document{}, err
	}

	return r.GetByID(ctx, id)
}
