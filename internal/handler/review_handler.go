package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ursa-team/ursa-go-api/internal/dto"
	"github.com/ursa-team/ursa-go-api/internal/middleware"
	"github.com/ursa-team/ursa-go-api/internal/models"
	"github.com/ursa-team/ursa-go-api/internal/service"
	"github.com/ursa-team/ursa-go-api/internal/utils"
)

// ReviewHandler exposes document moderation endpoints.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler builds a review handler instance.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("component", "review_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ReviewHandler) Register(router fiber.Router) {
	router.Post("/:id/review", h.review)
}

func (h *ReviewHandler) review(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ReviewRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	document, err := h.service.Review(c.Context(), id, payload, middleware.ActorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	message := "document approved"
	if document.Status == models.DocumentStatusRejected {
		message = "document rejected"
	}

	return utils.SendSuccess(c, message, document)
}

func (h *ReviewHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrDocumentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "document not found")
	case errors.Is(err, service.ErrPermissionDenied):
		return utils.SendError(c, fiber.StatusForbidden, "moderation not permitted")
	case errors.Is(err, service.ErrInvalidAction):
		return utils.SendError(c, fiber.StatusBadRequest, "unknown moderation action")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
