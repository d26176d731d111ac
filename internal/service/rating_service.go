package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ursa-team/ursa-go-api/internal/dto"
	"github.com/ursa-team/ursa-go-api/internal/repository"
)

const (
	ratingCacheKey  = "rating:leaderboard"
	leaderboardSize = 100
)

// RatingService produces the student rating leaderboard.
type RatingService interface {
	Leaderboard(ctx context.Context, limit int) ([]dto.RatingEntry, error)
	Invalidate(ctx context.Context)
}

type ratingService struct {
	students repository.StudentRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewRatingService builds the leaderboard aggregator. The cache client may
// be nil, in which case every call hits the database.
func NewRatingService(students repository.StudentRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) RatingService {
	return &ratingService{
		students: students,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "rating_service").Logger(),
	}
}

func (s *ratingService) Leaderboard(ctx context.Context, limit int) ([]dto.RatingEntry, error) {
	if limit <= 0 || limit > leaderboardSize {
		limit = leaderboardSize
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, ratingCacheKey).Result(); err == nil {
			var entries []dto.RatingEntry
			if unmarshalErr := json.Unmarshal([]byte(cached), &entries); unmarshalErr == nil {
				s.logger.Debug().Msg("rating cache hit")
				return clampEntries(entries, limit), nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read rating cache")
		}
	}

	students, err := s.students.ListByTotalScore(ctx, leaderboardSize)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.RatingEntry, 0, len(students))
	for i, student := range students {
		entries = append(entries, dto.RatingEntry{
			Rank:       i + 1,
			StudentID:  student.ID,
			FullName:   student.FullName,
			GroupName:  student.GroupName,
			TotalScore: student.TotalScore(),
		})
	}

	if s.cache != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(ctx, ratingCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store rating cache")
			}
		}
	}

	return clampEntries(entries, limit), nil
}

// Invalidate drops the cached leaderboard. Called after an approval credits
// a student so the rating reflects the new totals promptly.
func (s *ratingService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, ratingCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate rating cache")
	}
}

func clampEntries(entries []dto.RatingEntry, limit int) []dto.RatingEntry {
	if len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
