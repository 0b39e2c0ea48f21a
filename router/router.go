// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/survey-intake/auth"
	"github.com/danielhkuo/survey-intake/cliparse"
	"github.com/danielhkuo/survey-intake/db"
	"github.com/danielhkuo/survey-intake/export"
	"github.com/danielhkuo/survey-intake/handlers"
	"github.com/danielhkuo/survey-intake/middleware"
	"github.com/danielhkuo/survey-intake/store"
)

// rateLimitWindow is the period RateLimitRequests applies to.
const rateLimitWindow = time.Minute

// chiMiddleware adapts a HandlerFunc wrapper to chi's middleware signature.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

func NewRouter(d *db.DB, cfg cliparse.Config) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token manager: %w", err)
	}

	admin, err := auth.NewAdminCredentials(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin credentials: %w", err)
	}

	// Initialize stores and handlers
	feedbackStore := store.NewFeedbackStore(d)
	registrationStore := store.NewRegistrationStore(d)

	proxies, err := middleware.NewTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}

	authHandler := handlers.NewAuthHandler(tokens, admin, cfg.IPHashSalt)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackStore)
	userHandler := handlers.NewUserHandler(registrationStore)
	dataHandler := handlers.NewDataHandler(export.NewExporter(registrationStore, feedbackStore))

	limit := middleware.RateLimit(cfg.RateLimitRequests, rateLimitWindow)
	if cfg.RateLimitDisabled {
		limit = middleware.RateLimit(0, rateLimitWindow)
	}
	requireAdmin := middleware.RequireAdmin(tokens, cfg.IPHashSalt)

	r := chi.NewRouter()

	r.Use(middleware.RealIP(proxies))
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(chiMiddleware(middleware.WithLogging))
	r.Use(middleware.CORS(cfg.CORSOrigins, cfg.CORSMaxAge))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.Success(w, http.StatusOK, "OK", map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.With(limit).Post("/adminlogin", authHandler.AdminLogin)
		r.With(requireAdmin).Get("/verify", authHandler.Verify)
	})

	r.Route("/api/users", func(r chi.Router) {
		// Public signups
		r.With(limit).Post("/userdata", userHandler.RegisterUser)
		r.With(limit).Post("/creatordata", userHandler.RegisterCreator)
		r.With(limit).Post("/notinteresteddata", userHandler.RegisterNotInterested)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/registereduserdata", userHandler.GetUsers)
			r.Get("/registeredcreatordata", userHandler.GetCreators)
			r.Get("/notintdata", userHandler.GetNotInterested)
			r.Get("/analytics", userHandler.Analytics)
		})
	})

	r.Route("/api/feedback", func(r chi.Router) {
		r.With(limit).Post("/submit", feedbackHandler.Submit)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/all", feedbackHandler.GetAll)
			r.Get("/userfeedbackdata", feedbackHandler.GetAll)
			r.Get("/analytics", feedbackHandler.Analytics)
			r.Get("/summary", feedbackHandler.Summary)
		})
	})

	// Admin data. Group middleware runs after routing, so unknown
	// methods still get 405 rather than 401.
	r.Route("/api/data", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/stats", dataHandler.Stats)
			r.Post("/downloaddata", dataHandler.Export(export.ScopeAll, "Data downloaded successfully"))
			r.Get("/export/json", dataHandler.Export(export.ScopeAll, "Data exported successfully"))
			r.Get("/export/userdata", dataHandler.Export(export.ScopeUsers, "User data exported successfully"))
			r.Get("/export/creatordata", dataHandler.Export(export.ScopeCreators, "Creator data exported successfully"))
			r.Get("/export/feedbackdata", dataHandler.Export(export.ScopeFeedback, "Feedback data exported successfully"))
			r.Get("/export/notintdata", dataHandler.Export(export.ScopeNotInterested, "Not interested data exported successfully"))
		})
	})

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		middleware.Success(w, http.StatusOK, "survey-intake API v1", map[string]string{"version": "v1"})
	})

	return r, nil
}
