// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/survey-intake/auth"
	"github.com/danielhkuo/survey-intake/metrics"
	"github.com/danielhkuo/survey-intake/middleware"
	"github.com/danielhkuo/survey-intake/models"
	"github.com/danielhkuo/survey-intake/validation"
)

type AuthHandler struct {
	tokens *auth.TokenManager
	admin  *auth.AdminCredentials
	ipSalt string
}

func NewAuthHandler(tokens *auth.TokenManager, admin *auth.AdminCredentials, ipSalt string) *AuthHandler {
	return &AuthHandler{tokens: tokens, admin: admin, ipSalt: ipSalt}
}

// AdminLogin handles POST /api/auth/adminlogin
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		middleware.ValidationErrorResponse(w, verr.FieldErrors())
		return
	}

	if err := h.admin.Authenticate(req.Username, req.Password); err != nil {
		metrics.RecordAdminAuthRejection("bad_credentials")
		slog.Warn("admin login failed", "username", req.Username, "client", auth.HashIP(middleware.GetClientIP(r), h.ipSalt))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}

	token, _, err := h.tokens.Issue(req.Username, auth.RoleAdmin)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	slog.Info("admin logged in", "username", req.Username)

	middleware.Success(w, http.StatusOK, "Login successful", models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(h.tokens.TTL().Seconds()),
	})
}

// Verify handles GET /api/auth/verify
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	info := models.TokenInfo{
		Subject:   claims.Subject,
		Role:      claims.Role,
		ExpiresAt: claims.Expiry(),
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.UTC()
	}

	middleware.Success(w, http.StatusOK, "Token is valid", info)
}
