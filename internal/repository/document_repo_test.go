package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ursa-team/ursa-go-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Student{}, &models.Document{}))
	return db
}

func createStudent(t *testing.T, db *gorm.DB) models.Student {
	t.Helper()
	student := models.Student{
		FullName:   "Ivan Petrov",
		Email:      "ivan@example.com",
		RecordBook: "RB-1001",
	}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func createPendingDocument(t *testing.T, db *gorm.DB, studentID uint, category string, score int) models.Document {
	t.Helper()
	document := models.Document{
		StudentID:   studentID,
		Category:    category,
		SubType:     "competition",
		Level:       "university",
		Result:      "1",
		Achievement: "Regional chess tournament",
		Score:       score,
		Status:      models.DocumentStatusPending,
	}
	require.NoError(t, db.Create(&document).Error)
	return document
}

func TestApproveCreditsMatchingCounterOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDocumentRepository(db)
	student := createStudent(t, db)
	document := createPendingDocument(t, db, student.ID, models.CategorySport, 4)

	approved, credited, err := repo.Approve(context.Background(), document.ID)
	require.NoError(t, err)
	assert.True(t, credited)
	assert.Equal(t, models.DocumentStatusApproved, approved.Status)

	var reloaded models.Student
	require.NoError(t, db.First(&reloaded, student.ID).Error)
	assert.Equal(t, 4, reloaded.SportScore)
	assert.Equal(t, 4, reloaded.TotalScore())

	// Second approval is a no-op: same status, no second credit.
	again, credited, err := repo.Approve(context.Background(), document.ID)
	require.NoError(t, err)
	assert.False(t, credited)
	assert.Equal(t, models.DocumentStatusApproved, again.Status)

	require.NoError(t, db.First(&reloaded, student.ID).Error)
	assert.Equal(t, 4, reloaded.SportScore)
	assert.Equal(t, 4, reloaded.TotalScore())
}

func TestApproveUnknownCategoryRollsBack(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDocumentRepository(db)
	student := createStudent(t, db)
	document := createPendingDocument(t, db, student.ID, "bogus", 7)

	_, _, err := repo.Approve(context.Background(), document.ID)
	require.Error(t, err)

	// The whole transition rolled back: still pending, nothing credited.
	var reloadedDoc models.Document
	require.NoError(t, db.First(&reloadedDoc, document.ID).Error)
	assert.Equal(t, models.DocumentStatusPending, reloadedDoc.Status)

	var reloaded models.Student
	require.NoError(t, db.First(&reloaded, student.ID).Error)
	assert.Equal(t, 0, reloaded.TotalScore())
}

func TestApproveMissingDocument(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDocumentRepository(db)

	_, _, err := repo.Approve(context.Background(), 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRejectStoresReasonWithoutCredit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDocumentRepository(db)
	student := createStudent(t, db)
	document := createPendingDocument(t, db, student.ID, models.CategoryAcademic, 2)

	rejected, err := repo.Reject(context.Background(), document.ID, "unreadable scan; wrong level")
	require.NoError(t, err)
	assert.Equal(t, models.DocumentStatusRejected, rejected.Status)
	assert.Equal(t, "unreadable scan; wrong level", rejected.RejectionReason)

	var reloaded models.Student
	require.NoError(t, db.First(&reloaded, student.ID).Error)
	assert.Equal(t, 0, reloaded.TotalScore())
}

func TestRejectAfterApproveDoesNotDebit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDocumentRepository(db)
	student := createStudent(t, db)
	document := createPendingDocument(t, db, student.ID, models.CategoryCultural, 3)

	_, credited, err := repo.Approve(context.Background(), document.ID)
	require.NoError(t, err)
	require.True(t, credited)

	rejected, err := repo.Reject(context.Background(), document.ID, "revoked by committee")
	require.NoError(t, err)
	assert.Equal(t, models.DocumentStatusRejected, rejected.Status)

	// The earlier credit stays: rejecting an approved document never debits.
	var reloaded models.Student
	require.NoError(t, db.First(&reloaded, student.ID).Error)
	assert.Equal(t, 3, reloaded.CulturalScore)
	assert.Equal(t, 3, reloaded.TotalScore())
}

func TestListFiltersByStudentAndStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDocumentRepository(db)
	student := createStudent(t, db)
	other := models.Student{FullName: "Anna Sidorova", Email: "anna@example.com", RecordBook: "RB-1002"}
	require.NoError(t, db.Create(&other).Error)

	createPendingDocument(t, db, student.ID, models.CategorySport, 4)
	doc := createPendingDocument(t, db, other.ID, models.CategorySocial, 1)
	_, _, err := repo.Approve(context.Background(), doc.ID)
	require.NoError(t, err)

	pending := models.DocumentStatusPending
	documents, err := repo.List(context.Background(), DocumentFilter{Status: &pending})
	require.NoError(t, err)
	require.Len(t, documents, 1)
	assert.Equal(t, student.ID, documents[0].StudentID)

	documents, err = repo.List(context.Background(), DocumentFilter{StudentID: &other.ID})
	require.NoError(t, err)
	require.Len(t, documents, 1)
	assert.Equal(t, models.DocumentStatusApproved, documents[0].Status)
	assert.Equal(t, "Anna Sidorova", documents[0].Student.FullName)
}
