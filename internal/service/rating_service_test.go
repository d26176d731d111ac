package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ursa-team/ursa-go-api/internal/models"
	"github.com/ursa-team/ursa-go-api/internal/repository"
)

func seedScoredStudent(t *testing.T, db *gorm.DB, name, recordBook string, sportScore int) models.Student {
	t.Helper()
	student := models.Student{
		FullName:   name,
		Email:      recordBook + "@example.com",
		RecordBook: recordBook,
		SportScore: sportScore,
	}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func TestLeaderboardOrdersByTotalScore(t *testing.T) {
	db := setupTestDB(t)
	seedScoredStudent(t, db, "Anna Sidorova", "RB-2001", 12)
	seedScoredStudent(t, db, "Ivan Petrov", "RB-2002", 30)
	seedScoredStudent(t, db, "Maria Ivanova", "RB-2003", 12)

	svc := NewRatingService(repository.NewStudentRepository(db), nil, time.Minute, zerolog.Nop())

	entries, err := svc.Leaderboard(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Ivan Petrov", entries[0].FullName)
	assert.Equal(t, 1, entries[0].Rank)
	// Ties break alphabetically by name.
	assert.Equal(t, "Anna Sidorova", entries[1].FullName)
	assert.Equal(t, "Maria Ivanova", entries[2].FullName)
}

func TestLeaderboardServesFromCache(t *testing.T) {
	db := setupTestDB(t)
	seedScoredStudent(t, db, "Ivan Petrov", "RB-2002", 30)

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := NewRatingService(repository.NewStudentRepository(db), cache, time.Minute, zerolog.Nop())

	entries, err := svc.Leaderboard(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// New rows do not show up until the cache expires or is invalidated.
	seedScoredStudent(t, db, "Anna Sidorova", "RB-2001", 99)

	entries, err = svc.Leaderboard(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	svc.Invalidate(context.Background())

	entries, err = svc.Leaderboard(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Anna Sidorova", entries[0].FullName)
}

func TestLeaderboardClampsLimit(t *testing.T) {
	db := setupTestDB(t)
	seedScoredStudent(t, db, "Anna Sidorova", "RB-2001", 12)
	seedScoredStudent(t, db, "Ivan Petrov", "RB-2002", 30)

	svc := NewRatingService(repository.NewStudentRepository(db), nil, time.Minute, zerolog.Nop())

	entries, err := svc.Leaderboard(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ivan Petrov", entries[0].FullName)
}
