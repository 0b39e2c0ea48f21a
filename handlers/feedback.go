// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/survey-intake/metrics"
	"github.com/danielhkuo/survey-intake/middleware"
	"github.com/danielhkuo/survey-intake/models"
	"github.com/danielhkuo/survey-intake/validation"
)

// FeedbackStore is the persistence the feedback endpoints need.
type FeedbackStore interface {
	SaveFeedback(ctx context.Context, sub models.FeedbackSubmission) bool
	GetAllFeedback(ctx context.Context) ([]models.FeedbackRecord, error)
	GetFeedbackAnalytics(ctx context.Context) models.FeedbackAnalytics
	GetFeedbackSummary(ctx context.Context) (models.FeedbackSummary, error)
}

type FeedbackHandler struct {
	store FeedbackStore
}

func NewFeedbackHandler(store FeedbackStore) *FeedbackHandler {
	return &FeedbackHandler{store: store}
}

// Submit handles POST /api/feedback/submit
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	body, err := middleware.ReadBody(r)
	if err != nil {
		metrics.RecordFeedbackSubmission(metrics.ResultInvalid)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sub, err := validation.DecodeFeedback(body)
	if err != nil {
		metrics.RecordFeedbackSubmission(metrics.ResultInvalid)

		var verr *validation.RequestValidationError
		if errors.As(err, &verr) {
			middleware.ValidationErrorResponse(w, verr.FieldErrors())
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !h.store.SaveFeedback(r.Context(), sub) {
		metrics.RecordFeedbackSubmission(metrics.ResultFailure)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit feedback")
		return
	}

	metrics.RecordFeedbackSubmission(metrics.ResultSuccess)
	slog.Info("feedback submitted",
		"digital_work", sub.HasDigitalWork(),
		"platform_opinions", sub.HasPlatformOpinions(),
	)

	middleware.Success(w, http.StatusCreated, "Feedback submitted successfully", nil)
}

// GetAll handles GET /api/feedback/all and GET /api/feedback/userfeedbackdata
func (h *FeedbackHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.store.GetAllFeedback(r.Context())
	if err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch feedback")
		return
	}

	middleware.Success(w, http.StatusOK, "Feedback retrieved successfully", feedback)
}

// Analytics handles GET /api/feedback/analytics
func (h *FeedbackHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	middleware.Success(w, http.StatusOK, "Analytics retrieved successfully", h.store.GetFeedbackAnalytics(r.Context()))
}

// Summary handles GET /api/feedback/summary
func (h *FeedbackHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.store.GetFeedbackSummary(r.Context())
	if err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch summary")
		return
	}

	middleware.Success(w, http.StatusOK, "Summary retrieved successfully", summary)
}
