// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/survey-intake/auth"
	"github.com/danielhkuo/survey-intake/metrics"
)

// TokenVerifier decodes a raw bearer token into claims.
type TokenVerifier interface {
	VerifyToken(raw string) (*auth.Claims, error)
}

// RequireAdmin admits a request only when its bearer token verifies and
// carries the admin role. Rejections never reach next, so no store is
// touched. ipSalt keys the client fingerprint in rejection logs.
func RequireAdmin(verifier TokenVerifier, ipSalt string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reject := func(reason, message string, err error) {
				metrics.RecordAdminAuthRejection(reason)
				slog.Warn("admin request rejected",
					"reason", reason,
					"path", r.URL.Path,
					"client", auth.HashIP(GetClientIP(r), ipSalt),
					"error", err,
				)
				w.Header().Set("WWW-Authenticate", "Bearer")
				ErrorResponse(w, http.StatusUnauthorized, message)
			}

			raw, err := auth.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				reject("missing", "Not authenticated", err)
				return
			}

			claims, err := verifier.VerifyToken(raw)
			if err != nil {
				reject("invalid", "Could not validate credentials", err)
				return
			}

			if !claims.IsAdmin() {
				reject("not_admin", "Admin privileges required", auth.ErrNotAdmin)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}
