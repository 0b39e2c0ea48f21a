// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/survey-intake/auth"
	"github.com/danielhkuo/survey-intake/export"
	"github.com/danielhkuo/survey-intake/middleware"
)

// Exporter builds admin statistics and export bundles.
type Exporter interface {
	Statistics(ctx context.Context) export.Statistics
	Export(ctx context.Context, scope export.Scope, tokenExpiry time.Time) (export.Bundle, error)
}

type DataHandler struct {
	exporter Exporter
}

func NewDataHandler(exporter Exporter) *DataHandler {
	return &DataHandler{exporter: exporter}
}

// Stats handles GET /api/data/stats
func (h *DataHandler) Stats(w http.ResponseWriter, r *http.Request) {
	middleware.Success(w, http.StatusOK, "Statistics retrieved successfully", h.exporter.Statistics(r.Context()))
}

// Export returns a handler for one export scope:
//
//	POST /api/data/downloaddata      → all
//	GET  /api/data/export/json       → all
//	GET  /api/data/export/userdata   → users
//	GET  /api/data/export/creatordata → creators
//	GET  /api/data/export/feedbackdata → feedback
//	GET  /api/data/export/notintdata → not_interested
func (h *DataHandler) Export(scope export.Scope, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var expiry time.Time
		if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
			expiry = claims.Expiry()
		}

		bundle, err := h.exporter.Export(r.Context(), scope, expiry)
		if err != nil {
			slog.Error("failed to export data", "scope", scope, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export data")
			return
		}

		middleware.Success(w, http.StatusOK, message, bundle)
	}
}
