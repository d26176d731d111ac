package handler

import (
	"errors"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ursa-team/ursa-go-api/internal/dto"
	"github.com/ursa-team/ursa-go-api/internal/service"
	"github.com/ursa-team/ursa-go-api/internal/utils"
)

// AchievementHandler manages achievement submission endpoints.
type AchievementHandler struct {
	service service.AchievementService
	logger  zerolog.Logger
}

// NewAchievementHandler builds an achievement handler instance.
func NewAchievementHandler(service service.AchievementService, logger zerolog.Logger) *AchievementHandler {
	return &AchievementHandler{
		service: service,
		logger:  logger.With().Str("component", "achievement_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group. The submit
// route takes an extra rate limiter from the caller.
func (h *AchievementHandler) Register(router fiber.Router, submitLimiter fiber.Handler) {
	router.Get("/config", h.config)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	if submitLimiter != nil {
		router.Post("", submitLimiter, h.submit)
	} else {
		router.Post("", h.submit)
	}
}

func (h *AchievementHandler) submit(c *fiber.Ctx) error {
	payload := dto.AchievementCreateRequest{
		RecordBook:  c.FormValue("record_book"),
		Category:    c.FormValue("category"),
		SubType:     c.FormValue("sub_type"),
		Level:       c.FormValue("level"),
		Result:      c.FormValue("result"),
		Achievement: c.FormValue("achievement"),
		DocType:     c.FormValue("doc_type"),
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["files"]
	}

	documents, err := h.service.Submit(c.Context(), payload, files)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "achievement submitted", documents)
}

func (h *AchievementHandler) list(c *fiber.Ctx) error {
	filter := dto.DocumentFilter{}
	if studentID, err := parseQueryUint(c, "student_id"); err == nil && studentID != nil {
		filter.StudentID = studentID
	}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}

	documents, err := h.service.List(c.Context(), filter)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "documents retrieved", documents)
}

func (h *AchievementHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	document, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "document retrieved", document)
}

func (h *AchievementHandler) config(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "achievement config retrieved", h.service.Config())
}

func (h *AchievementHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	case errors.Is(err, service.ErrDocumentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "document not found")
	case errors.Is(err, service.ErrInvalidClassification):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
