package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ursa-team/ursa-go-api/internal/models"
)

func TestGetByRecordBookIsCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	student := models.Student{FullName: "Ivan Petrov", Email: "ivan@example.com", RecordBook: "RB-2001"}
	require.NoError(t, db.Create(&student).Error)

	found, err := repo.GetByRecordBook(context.Background(), "rb-2001")
	require.NoError(t, err)
	assert.Equal(t, student.ID, found.ID)
}

func TestListByTotalScoreOrdersByDerivedSum(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	low := models.Student{FullName: "Low", Email: "low@example.com", RecordBook: "RB-1", AcademicScore: 1}
	high := models.Student{FullName: "High", Email: "high@example.com", RecordBook: "RB-2", SportScore: 3, SocialScore: 2}
	require.NoError(t, db.Create(&low).Error)
	require.NoError(t, db.Create(&high).Error)

	students, err := repo.ListByTotalScore(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "High", students[0].FullName)
	assert.Equal(t, 5, students[0].TotalScore())

	students, err = repo.ListByTotalScore(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, students, 1)
}
