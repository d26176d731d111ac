package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/ursa-team/ursa-go-api/internal/dto"
	"github.com/ursa-team/ursa-go-api/internal/observability"
	"github.com/ursa-team/ursa-go-api/internal/repository"
)

// ErrDocumentNotFound indicates the document could not be located.
var ErrDocumentNotFound = errors.New("document not found")

// ErrPermissionDenied indicates the caller lacks the moderation capability.
var ErrPermissionDenied = errors.New("moderation not permitted")

// ErrInvalidAction indicates an unrecognized moderation action.
var ErrInvalidAction = errors.New("unknown moderation action")

// Moderation actions accepted by Review.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// RatingInvalidator drops cached rating data after a credit lands.
type RatingInvalidator interface {
	Invalidate(ctx context.Context)
}

// ReviewService drives the moderation state machine for documents.
type ReviewService interface {
	Review(ctx context.Context, documentID uint, payload dto.ReviewRequest, actor Actor) (dto.DocumentResponse, error)
}

type reviewService struct {
	documents repository.DocumentRepository
	ratings   RatingInvalidator
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewReviewService constructs the moderation service.
func NewReviewService(documents repository.DocumentRepository, ratings RatingInvalidator, validate *validator.Validate, logger zerolog.Logger) ReviewService {
	return &reviewService{
		documents: documents,
		ratings:   ratings,
		validator: validate,
		logger:    logger.With().Str("component", "review_service").Logger(),
	}
}

// Review applies a moderation action. Approval credits the document's frozen
// score to the owning student exactly once: re-approving an approved
// document succeeds without a second credit. Rejection stores the joined
// reasons and never touches counters, even for a previously approved
// document.
func (s *reviewService) Review(ctx context.Context, documentID uint, payload dto.ReviewRequest, actor Actor) (dto.DocumentResponse, error) {
	tracer := otel.Tracer("github.com/ursa-team/ursa-go-api/internal/service/review")
	ctx, span := tracer.Start(ctx, "review.moderate")
	span.SetAttributes(
		attribute.Int64("review.document_id", int64(documentID)),
		attribute.Int64("review.actor_id", int64(actor.ID)),
		attribute.String("review.action", payload.Action),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.DocumentResponse{}, err
	}

	if !actor.Role.CanReview() {
		span.SetStatus(codes.Error, "permission_denied")
		return dto.DocumentResponse{}, ErrPermissionDenied
	}

	switch strings.ToLower(strings.TrimSpace(payload.Action)) {
	case ActionApprove:
		return s.approve(ctx, documentID, actor, span)
	case ActionReject:
		return s.reject(ctx, documentID, payload.Reasons, actor, span)
	default:
		span.SetStatus(codes.Error, "invalid_action")
		return dto.DocumentResponse{}, ErrInvalidAction
	}
}

func (s *reviewService) approve(ctx context.Context, documentID uint, actor Actor, span trace.Span) (dto.DocumentResponse, error) {
	document, credited, err := s.documents.Approve(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "document_not_found")
			return dto.DocumentResponse{}, ErrDocumentNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "approve_failed")
		return dto.DocumentResponse{}, err
	}

	if credited {
		observability.DocumentsApproved().WithLabelValues(document.Category).Inc()
		if s.ratings != nil {
			s.ratings.Invalidate(ctx)
		}
		s.logger.Info().
			Uint("document_id", document.ID).
			Uint("student_id", document.StudentID).
			Uint("reviewer_id", actor.ID).
			Int("score", document.Score).
			Msg("document approved, score credited")
	} else {
		s.logger.Debug().
			Uint("document_id", document.ID).
			Uint("reviewer_id", actor.ID).
			Msg("document already approved, no-op")
	}

	return dto.NewDocumentResponse(document), nil
}

func (s *reviewService) reject(ctx context.Context, documentID uint, reasons dto.ReasonList, actor Actor, span trace.Span) (dto.DocumentResponse, error) {
	document, err := s.documents.Reject(ctx, documentID, joinReasons(reasons))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "document_not_found")
			return dto.DocumentResponse{}, ErrDocumentNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "reject_failed")
		return dto.DocumentResponse{}, err
	}

	observability.DocumentsRejected().WithLabelValues(document.Category).Inc()
	s.logger.Info().
		Uint("document_id", document.ID).
		Uint("reviewer_id", actor.ID).
		Msg("document rejected")

	return dto.NewDocumentResponse(document), nil
}

func joinReasons(reasons dto.ReasonList) string {
	trimmed := make([]string, 0, len(reasons))
	for _, reason := range reasons {
		if reason = strings.TrimSpace(reason); reason != "" {
			trimmed = append(trimmed, reason)
		}
	}
	return strings.Join(trimmed, "; ")
}
