// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/survey-intake/export"
	"github.com/danielhkuo/survey-intake/models"
	"github.com/danielhkuo/survey-intake/testutil"
)

// TestFullSurveyWorkflow tests the complete end-to-end workflow:
// 1. Public signups and a not-interested response
// 2. Feedback submissions, one invalid
// 3. Admin login
// 4. Admin reads analytics and summary
// 5. Admin exports everything
func TestFullSurveyWorkflow(t *testing.T) {
	mux := newTestRouter(t)

	do := func(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.MakeRequest(method, path, body, headers))
		return w
	}

	// Step 1: Signups
	signup := func(email string) map[string]any {
		return map[string]any{"name": "Ada", "email": email, "phone_number": "5550100100", "profession": "judge"}
	}
	testutil.AssertStatus(t, do("POST", "/api/users/userdata", signup("ada@example.com"), nil), http.StatusCreated)
	testutil.AssertStatus(t, do("POST", "/api/users/creatordata", signup("ada@example.com"), nil), http.StatusCreated)
	testutil.AssertStatus(t, do("POST", "/api/users/userdata", signup("ada@example.com"), nil), http.StatusConflict)
	testutil.AssertStatus(t, do("POST", "/api/users/notinteresteddata", signup("bob@example.com"), nil), http.StatusCreated)

	// Step 2: Feedback
	testutil.AssertStatus(t, do("POST", "/api/feedback/submit",
		`{"digital_work_showcase_effectiveness": 2, "ai_tools_blogging_frequency": "often"}`, nil), http.StatusCreated)
	testutil.AssertStatus(t, do("POST", "/api/feedback/submit",
		`{"digital_work_showcase_effectiveness": 4, "ideal_reading_features": "dark mode"}`, nil), http.StatusCreated)
	testutil.AssertStatus(t, do("POST", "/api/feedback/submit",
		`{"digital_work_showcase_effectiveness": 6}`, nil), http.StatusUnprocessableEntity)

	// Step 3: Admin login
	w := do("POST", "/api/auth/adminlogin", models.AdminLoginRequest{
		Username: testutil.TestAdminUsername,
		Password: testutil.TestAdminPassword,
	}, nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	var token models.TokenResponse
	testutil.DecodeEnvelope(t, w, &token)
	if token.AccessToken == "" {
		t.Fatal("Step 3 - Missing access token")
	}
	admin := testutil.AuthHeader(token.AccessToken)

	w = do("GET", "/api/auth/verify", nil, admin)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Step 4: Analytics and summary
	w = do("GET", "/api/feedback/analytics", nil, admin)
	testutil.AssertStatus(t, w, http.StatusOK)

	var analytics models.FeedbackAnalytics
	testutil.DecodeEnvelope(t, w, &analytics)
	if analytics.TotalFeedback != 2 {
		t.Errorf("Step 4 - Expected 2 feedback, got %d", analytics.TotalFeedback)
	}
	if avg := analytics.AverageRatings.ShowcaseEffectiveness; avg == nil || *avg != 3.0 {
		t.Errorf("Step 4 - Expected mean 3.0, got %v", avg)
	}
	if analytics.AIToolsStats["often"] != 1 {
		t.Errorf("Step 4 - Expected ai_tools_stats often=1, got %v", analytics.AIToolsStats)
	}

	w = do("GET", "/api/users/analytics", nil, admin)
	var users models.UserAnalytics
	testutil.DecodeEnvelope(t, w, &users)
	if users.TotalUsers != 1 || users.TotalCreators != 1 || users.TotalNotInterested != 1 {
		t.Errorf("Step 4 - Unexpected user analytics: %+v", users)
	}
	if users.ProfessionDistribution["judge"] != 2 {
		t.Errorf("Step 4 - Expected 2 judges, got %v", users.ProfessionDistribution)
	}

	// Step 5: Export
	w = do("POST", "/api/data/downloaddata", nil, admin)
	testutil.AssertStatus(t, w, http.StatusOK)

	var bundle export.AllDataBundle
	testutil.DecodeEnvelope(t, w, &bundle)
	want := export.AllDataSummary{TotalUsers: 1, TotalCreators: 1, TotalNotInterested: 1, TotalFeedback: 2}
	if bundle.Summary != want {
		t.Errorf("Step 5 - summary = %+v, want %+v", bundle.Summary, want)
	}
	if bundle.TokenExpiresAt == nil {
		t.Error("Step 5 - Expected token_expires_at from the admin token")
	}
	if len(bundle.UnavailableSources) != 0 {
		t.Errorf("Step 5 - Unexpected unavailable sources: %v", bundle.UnavailableSources)
	}

	w = do("GET", "/api/data/export/feedbackdata", nil, admin)
	testutil.AssertStatus(t, w, http.StatusOK)

	var scoped export.FeedbackDataBundle
	testutil.DecodeEnvelope(t, w, &scoped)
	if scoped.DataType != "feedback_data" || len(scoped.Feedback) != 2 {
		t.Errorf("Step 5 - Unexpected feedback export: type=%s n=%d", scoped.DataType, len(scoped.Feedback))
	}
}
