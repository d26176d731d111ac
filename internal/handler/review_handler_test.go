package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ursa-team/ursa-go-api/internal/dto"
	"github.com/ursa-team/ursa-go-api/internal/models"
	"github.com/ursa-team/ursa-go-api/internal/service"
)

type stubReviewService struct {
	response dto.DocumentResponse
	err      error
	gotID    uint
	gotBody  dto.ReviewRequest
}

func (s *stubReviewService) Review(_ context.Context, documentID uint, payload dto.ReviewRequest, _ service.Actor) (dto.DocumentResponse, error) {
	s.gotID = documentID
	s.gotBody = payload
	return s.response, s.err
}

func setupReviewApp(svc service.ReviewService) *fiber.App {
	app := fiber.New()
	handler := NewReviewHandler(svc, zerolog.Nop())
	handler.Register(app.Group("/api/v1/achievements"))
	return app
}

func postReview(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	return res
}

func TestReviewEndpointApproves(t *testing.T) {
	svc := &stubReviewService{response: dto.DocumentResponse{ID: 5, Status: models.DocumentStatusApproved}}
	app := setupReviewApp(svc)

	res := postReview(t, app, "/api/v1/achievements/5/review", dto.ReviewRequest{Action: "approve"})

	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, uint(5), svc.gotID)
	assert.Equal(t, "approve", svc.gotBody.Action)
}

func TestReviewEndpointAcceptsSingleStringReason(t *testing.T) {
	svc := &stubReviewService{response: dto.DocumentResponse{ID: 5, Status: models.DocumentStatusRejected}}
	app := setupReviewApp(svc)

	res := postReview(t, app, "/api/v1/achievements/5/review", map[string]any{
		"action":  "reject",
		"reasons": "unreadable scan",
	})

	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, dto.ReasonList{"unreadable scan"}, svc.gotBody.Reasons)
}

func TestReviewEndpointErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", service.ErrDocumentNotFound, fiber.StatusNotFound},
		{"forbidden", service.ErrPermissionDenied, fiber.StatusForbidden},
		{"bad action", service.ErrInvalidAction, fiber.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := setupReviewApp(&stubReviewService{err: tc.err})
			res := postReview(t, app, "/api/v1/achievements/5/review", dto.ReviewRequest{Action: "approve"})
			assert.Equal(t, tc.status, res.StatusCode)
		})
	}
}

func TestReviewEndpointRejectsBadID(t *testing.T) {
	app := setupReviewApp(&stubReviewService{})

	res := postReview(t, app, "/api/v1/achievements/abc/review", dto.ReviewRequest{Action: "approve"})

	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}
