package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ursa-team/ursa-go-api/internal/dto"
	"github.com/ursa-team/ursa-go-api/internal/models"
	"github.com/ursa-team/ursa-go-api/internal/observability"
	"github.com/ursa-team/ursa-go-api/internal/repository"
	"github.com/ursa-team/ursa-go-api/internal/scoring"
)

// ErrStudentNotFound indicates the referenced student does not exist.
var ErrStudentNotFound = errors.New("student not found")

// ErrInvalidClassification indicates a classification value outside the
// current rule table enumerations.
var ErrInvalidClassification = errors.New("invalid classification")

// FileUploader pushes a submission attachment to external storage and
// returns its public URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// AchievementService orchestrates achievement submission workflows.
type AchievementService interface {
	Submit(ctx context.Context, payload dto.AchievementCreateRequest, files []*multipart.FileHeader) ([]dto.DocumentResponse, error)
	List(ctx context.Context, filter dto.DocumentFilter) ([]dto.DocumentResponse, error)
	Get(ctx context.Context, id uint) (dto.DocumentResponse, error)
	Config() dto.AchievementConfigResponse
}

type achievementService struct {
	documents repository.DocumentRepository
	students  repository.StudentRepository
	rules     scoring.Provider
	validator *validator.Validate
	uploader  FileUploader
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAchievementService constructs an AchievementService instance.
func NewAchievementService(documents repository.DocumentRepository, students repository.StudentRepository, rules scoring.Provider, validate *validator.Validate, uploader FileUploader, logger zerolog.Logger) AchievementService {
	return &achievementService{
		documents: documents,
		students:  students,
		rules:     rules,
		validator: validate,
		uploader:  uploader,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "achievement_service").Logger(),
		now:       time.Now,
	}
}

// Submit validates the classification against the current rule table,
// resolves the score once, uploads the attachments and persists one pending
// document per attachment (or a single one without a file). The score is
// frozen here: later rule edits never change it.
func (s *achievementService) Submit(ctx context.Context, payload dto.AchievementCreateRequest, files []*multipart.FileHeader) ([]dto.DocumentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	if payload.Level == "" {
		payload.Level = scoring.LevelNone
	}
	if payload.Result == "" {
		payload.Result = scoring.ResultOther
	}
	if payload.DocType == "" {
		payload.DocType = "other"
	}

	rules := s.rules.Rules()
	if err := validateClassification(rules, payload); err != nil {
		return nil, err
	}

	student, err := s.students.GetByRecordBook(ctx, strings.TrimSpace(payload.RecordBook))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	score := scoring.Resolve(rules, payload.Category, payload.SubType, payload.Level, payload.Result)
	achievement := s.sanitizer.Sanitize(strings.TrimSpace(payload.Achievement))

	build := func(fileName, fileURL string) models.Document {
		return models.Document{
			StudentID:        student.ID,
			Category:         payload.Category,
			SubType:          payload.SubType,
			Level:            payload.Level,
			Result:           payload.Result,
			Achievement:      achievement,
			DocType:          payload.DocType,
			Score:            score,
			Status:           models.DocumentStatusPending,
			OriginalFileName: fileName,
			FileURL:          fileURL,
		}
	}

	var created []models.Document

	if len(files) == 0 {
		document := build("", "")
		if err := s.documents.Create(ctx, &document); err != nil {
			return nil, err
		}
		created = append(created, document)
	}

	for _, file := range files {
		if err := validateAttachmentType(file); err != nil {
			return nil, err
		}

		fileURL, err := s.uploadAttachment(ctx, student.RecordBook, file)
		if err != nil {
			return nil, err
		}

		document := build(file.Filename, fileURL)
		if err := s.documents.Create(ctx, &document); err != nil {
			return nil, err
		}
		created = append(created, document)
	}

	responses := make([]dto.DocumentResponse, 0, len(created))
	for _, document := range created {
		reloaded, err := s.documents.GetByID(ctx, document.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, dto.NewDocumentResponse(reloaded))
		observability.DocumentsSubmitted().WithLabelValues(document.Category).Inc()
	}

	s.logger.Info().
		Uint("student_id", student.ID).
		Str("category", payload.Category).
		Str("sub_type", payload.SubType).
		Int("score", score).
		Int("documents", len(created)).
		Msg("achievement submitted")

	return responses, nil
}

func (s *achievementService) List(ctx context.Context, filter dto.DocumentFilter) ([]dto.DocumentResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	documents, err := s.documents.List(ctx, repository.DocumentFilter{
		StudentID: filter.StudentID,
		Status:    filter.Status,
	})
	if err != nil {
		return nil, err
	}

	return dto.NewDocumentResponseSlice(documents), nil
}

func (s *achievementService) Get(ctx context.Context, id uint) (dto.DocumentResponse, error) {
	document, err := s.documents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DocumentResponse{}, ErrDocumentNotFound
		}
		return dto.DocumentResponse{}, err
	}

	return dto.NewDocumentResponse(document), nil
}

// Config derives the submission form configuration from the current rule
// table. Sentinel values stay internal and are filtered out.
func (s *achievementService) Config() dto.AchievementConfigResponse {
	rules := s.rules.Rules()

	return dto.AchievementConfigResponse{
		Structure: scoring.Structure(rules),
		Levels:    scoring.WithoutSentinels(scoring.MetadataChoices(rules, scoring.SectionLevels), scoring.LevelNone),
		Results:   scoring.WithoutSentinels(scoring.MetadataChoices(rules, scoring.SectionResults), scoring.ResultNone),
		DocTypes:  scoring.MetadataChoices(rules, scoring.SectionDocTypes),
	}
}

// validateClassification checks the submitted codes against the current
// enumerations before a document is constructed. Combinations that carry no
// rule are still accepted; they simply resolve to a zero score.
func validateClassification(rules scoring.RuleTable, payload dto.AchievementCreateRequest) error {
	if !scoring.Contains(scoring.Categories(rules), payload.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidClassification, payload.Category)
	}

	if !scoring.Contains(scoring.SubTypes(rules), payload.SubType) {
		return fmt.Errorf("%w: unknown sub-type %q", ErrInvalidClassification, payload.SubType)
	}

	if payload.Level != scoring.LevelNone &&
		!scoring.Contains(scoring.MetadataChoices(rules, scoring.SectionLevels), payload.Level) {
		return fmt.Errorf("%w: unknown level %q", ErrInvalidClassification, payload.Level)
	}

	if payload.Result != scoring.ResultOther && payload.Result != scoring.ResultNone &&
		!scoring.Contains(scoring.MetadataChoices(rules, scoring.SectionResults), payload.Result) {
		return fmt.Errorf("%w: unknown result %q", ErrInvalidClassification, payload.Result)
	}

	if payload.DocType != "other" &&
		!scoring.Contains(scoring.MetadataChoices(rules, scoring.SectionDocTypes), payload.DocType) {
		return fmt.Errorf("%w: unknown document type %q", ErrInvalidClassification, payload.DocType)
	}

	return nil
}

func (s *achievementService) uploadAttachment(ctx context.Context, recordBook string, file *multipart.FileHeader) (string, error) {
	reader, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	name := fmt.Sprintf("%s/%s%s", recordBook, uuid.NewString(), filepath.Ext(file.Filename))

	fileURL, err := s.uploader.Upload(ctx, name, reader)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return fileURL, nil
}

func validateAttachmentType(file *multipart.FileHeader) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return fmt.Errorf("failed to detect file type: %w", err)
	}

	allowed := []string{"application/pdf", "image/jpeg", "image/png"}
	for _, a := range allowed {
		if mime.Is(a) {
			return nil
		}
	}

	return fmt.Errorf("unsupported file type: %s", mime.String())
}
