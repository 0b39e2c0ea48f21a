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
	"github.com/danielhkuo/survey-intake/store"
	"github.com/danielhkuo/survey-intake/validation"
)

// Registration kinds, used in metrics and logs.
const (
	kindUser          = models.UserTypeUser
	kindCreator       = models.UserTypeCreator
	kindNotInterested = "not_interested"
)

// RegistrationStore is the persistence the user endpoints need.
type RegistrationStore interface {
	SaveUser(ctx context.Context, reg models.UserRegistration, userType string) (int64, error)
	SaveCreator(ctx context.Context, reg models.UserRegistration) (int64, error)
	SaveNotInterested(ctx context.Context, sub models.NotInterestedSubmission) (int64, error)
	GetAllUsers(ctx context.Context) ([]models.UserRecord, error)
	GetAllCreators(ctx context.Context) ([]models.UserRecord, error)
	GetAllNotInterested(ctx context.Context) ([]models.NotInterestedRecord, error)
	GetUserAnalytics(ctx context.Context) (models.UserAnalytics, error)
}

type UserHandler struct {
	store RegistrationStore
}

func NewUserHandler(store RegistrationStore) *UserHandler {
	return &UserHandler{store: store}
}

// RegisterUser handles POST /api/users/userdata
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req models.UserRegistration
	if !decodeRegistration(w, r, kindUser, &req) {
		return
	}

	id, err := h.store.SaveUser(r.Context(), req, models.UserTypeUser)
	h.respondSaved(w, kindUser, id, err, "User registered successfully")
}

// RegisterCreator handles POST /api/users/creatordata
func (h *UserHandler) RegisterCreator(w http.ResponseWriter, r *http.Request) {
	var req models.UserRegistration
	if !decodeRegistration(w, r, kindCreator, &req) {
		return
	}

	id, err := h.store.SaveCreator(r.Context(), req)
	h.respondSaved(w, kindCreator, id, err, "Creator registered successfully")
}

// RegisterNotInterested handles POST /api/users/notinteresteddata
func (h *UserHandler) RegisterNotInterested(w http.ResponseWriter, r *http.Request) {
	var req models.NotInterestedSubmission
	if !decodeRegistration(w, r, kindNotInterested, &req) {
		return
	}

	id, err := h.store.SaveNotInterested(r.Context(), req)
	h.respondSaved(w, kindNotInterested, id, err, "Response recorded successfully")
}

// decodeRegistration parses and validates v, writing the error response
// itself when it returns false.
func decodeRegistration(w http.ResponseWriter, r *http.Request, kind string, v any) bool {
	if err := middleware.ParseJSONBody(r, v); err != nil {
		metrics.RecordRegistration(kind, metrics.ResultInvalid)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}

	if verr := validation.ValidateStruct(v); verr != nil {
		metrics.RecordRegistration(kind, metrics.ResultInvalid)
		middleware.ValidationErrorResponse(w, verr.FieldErrors())
		return false
	}
	return true
}

func (h *UserHandler) respondSaved(w http.ResponseWriter, kind string, id int64, err error, message string) {
	switch {
	case errors.Is(err, store.ErrDuplicate):
		metrics.RecordRegistration(kind, metrics.ResultDuplicate)
		middleware.ErrorResponse(w, http.StatusConflict, "Email is already registered")
	case err != nil:
		metrics.RecordRegistration(kind, metrics.ResultFailure)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save registration")
	default:
		metrics.RecordRegistration(kind, metrics.ResultSuccess)
		slog.Info("registration saved", "kind", kind, "id", id)
		middleware.Success(w, http.StatusCreated, message, map[string]int64{"id": id})
	}
}

// GetUsers handles GET /api/users/registereduserdata
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.GetAllUsers(r.Context())
	if err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	middleware.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

// GetCreators handles GET /api/users/registeredcreatordata
func (h *UserHandler) GetCreators(w http.ResponseWriter, r *http.Request) {
	creators, err := h.store.GetAllCreators(r.Context())
	if err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch creators")
		return
	}
	middleware.Success(w, http.StatusOK, "Creators retrieved successfully", creators)
}

// GetNotInterested handles GET /api/users/notintdata
func (h *UserHandler) GetNotInterested(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.GetAllNotInterested(r.Context())
	if err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch not interested data")
		return
	}
	middleware.Success(w, http.StatusOK, "Not interested data retrieved successfully", records)
}

// Analytics handles GET /api/users/analytics
func (h *UserHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.store.GetUserAnalytics(r.Context())
	if err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch user analytics")
		return
	}
	middleware.Success(w, http.StatusOK, "User analytics retrieved successfully", analytics)
}
