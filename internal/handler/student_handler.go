package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ursa-team/ursa-go-api/internal/service"
	"github.com/ursa-team/ursa-go-api/internal/utils"
)

// StudentHandler exposes student profile and rating endpoints.
type StudentHandler struct {
	profiles service.StudentProfileService
	ratings  service.RatingService
	logger   zerolog.Logger
}

// NewStudentHandler builds a student handler instance.
func NewStudentHandler(profiles service.StudentProfileService, ratings service.RatingService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		profiles: profiles,
		ratings:  ratings,
		logger:   logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("/rating", h.rating)
	router.Get("/:id", h.profile)
}

func (h *StudentHandler) profile(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	profile, err := h.profiles.Profile(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "profile retrieved", profile)
}

func (h *StudentHandler) rating(c *fiber.Ctx) error {
	limit := parseQueryInt(c, "limit", 0)

	entries, err := h.ratings.Leaderboard(c.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "rating retrieved", entries)
}
