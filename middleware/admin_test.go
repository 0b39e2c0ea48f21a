// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/survey-intake/auth"
)

func TestRequireAdmin(t *testing.T) {
	tm, err := auth.NewTokenManager("0123456789abcdef0123456789abcdef", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}

	adminToken, _, _ := tm.Issue("admin", auth.RoleAdmin)
	userToken, _, _ := tm.Issue("someone", "user")

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCalled bool
	}{
		{"no header", "", http.StatusUnauthorized, false},
		{"wrong scheme", "Basic YWRtaW46cHc=", http.StatusUnauthorized, false},
		{"malformed token", "Bearer not-a-jwt", http.StatusUnauthorized, false},
		{"non-admin role", "Bearer " + userToken, http.StatusUnauthorized, false},
		{"admin", "Bearer " + adminToken, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			var claims *auth.Claims
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				claims, _ = auth.ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/api/feedback/all", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			RequireAdmin(tm, "salt")(next).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if called != tt.wantCalled {
				t.Errorf("next called = %v, want %v", called, tt.wantCalled)
			}
			if tt.wantCalled && (claims == nil || claims.Subject != "admin") {
				t.Errorf("claims not attached: %+v", claims)
			}
			if !tt.wantCalled && w.Header().Get("WWW-Authenticate") != "Bearer" {
				t.Error("rejection should set WWW-Authenticate")
			}
		})
	}
}
