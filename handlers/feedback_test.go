// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/survey-intake/db"
	"github.com/danielhkuo/survey-intake/models"
	"github.com/danielhkuo/survey-intake/store"
	"github.com/danielhkuo/survey-intake/testutil"
)

func newFeedbackHandler(t *testing.T) (*FeedbackHandler, *db.DB) {
	t.Helper()
	d := testutil.SetupTestDB(t)
	return NewFeedbackHandler(store.NewFeedbackStore(d)), d
}

func submitFeedback(t *testing.T, h *FeedbackHandler, body any) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.Submit(w, testutil.MakeRequest("POST", "/api/feedback/submit", body, nil))
	return w
}

func TestSubmitFeedback(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantDigital  int
		wantPlatform int
	}{
		{"empty object", `{}`, 0, 0},
		{"ratings only", `{"digital_work_showcase_effectiveness": 4, "regular_blogging": "yes"}`, 1, 0},
		{"text only", `{"core_platform_features": "search", "ai_research_opinion": "useful"}`, 0, 1},
		{"everything", `{
			"user_email": "a@example.com",
			"digital_work_showcase_effectiveness": 1,
			"legal_persons_online_recognition": "no",
			"digital_work_sharing_difficulty": 5,
			"regular_blogging": "yes",
			"ai_tools_blogging_frequency": "sometimes",
			"blogging_tools_familiarity": 3,
			"core_platform_features": "a",
			"ai_research_opinion": "b",
			"ideal_reading_features": "c",
			"portfolio_presentation_preference": "d"
		}`, 1, 1},
		{"nulls are absent", `{"user_email": null, "blogging_tools_familiarity": null}`, 0, 0},
		{"unknown fields ignored", `{"favourite_colour": "green"}`, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, d := newFeedbackHandler(t)

			w := submitFeedback(t, h, tt.body)
			testutil.AssertStatus(t, w, http.StatusCreated)

			env := testutil.DecodeEnvelope(t, w, nil)
			if !env.Success {
				t.Errorf("Expected success, got message %q", env.Message)
			}

			if got := testutil.CountRows(t, d, "feedback_forms"); got != 1 {
				t.Errorf("feedback_forms = %d, want 1", got)
			}
			if got := testutil.CountRows(t, d, "digital_work_feedback"); got != tt.wantDigital {
				t.Errorf("digital_work_feedback = %d, want %d", got, tt.wantDigital)
			}
			if got := testutil.CountRows(t, d, "platform_features_opinions"); got != tt.wantPlatform {
				t.Errorf("platform_features_opinions = %d, want %d", got, tt.wantPlatform)
			}
		})
	}
}

func TestSubmitFeedback_Validation(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"rating zero", `{"digital_work_showcase_effectiveness": 0}`, "digital_work_showcase_effectiveness"},
		{"rating six", `{"digital_work_sharing_difficulty": 6}`, "digital_work_sharing_difficulty"},
		{"rating negative", `{"blogging_tools_familiarity": -1}`, "blogging_tools_familiarity"},
		{"rating fraction", `{"blogging_tools_familiarity": 2.5}`, "blogging_tools_familiarity"},
		{"rating string", `{"blogging_tools_familiarity": "3"}`, "blogging_tools_familiarity"},
		{"bad enum", `{"regular_blogging": "maybe"}`, "regular_blogging"},
		{"bad frequency", `{"ai_tools_blogging_frequency": "daily"}`, "ai_tools_blogging_frequency"},
		{"bad email", `{"user_email": "not-an-email"}`, "user_email"},
		{"text too long", `{"ideal_reading_features": "` + strings.Repeat("x", 1001) + `"}`, "ideal_reading_features"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, d := newFeedbackHandler(t)

			w := submitFeedback(t, h, tt.body)
			testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)

			var fields []models.FieldError
			env := testutil.DecodeEnvelope(t, w, &fields)
			if env.Success {
				t.Error("Expected failure envelope")
			}

			found := false
			for _, f := range fields {
				if f.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected error for %s, got %+v", tt.wantField, fields)
			}

			if got := testutil.CountRows(t, d, "feedback_forms"); got != 0 {
				t.Errorf("invalid submission reached the store: %d forms", got)
			}
		})
	}
}

func TestSubmitFeedback_TextBoundary(t *testing.T) {
	h, _ := newFeedbackHandler(t)

	w := submitFeedback(t, h, `{"ideal_reading_features": "`+strings.Repeat("x", 1000)+`"}`)
	testutil.AssertStatus(t, w, http.StatusCreated)
}

func TestSubmitFeedback_Malformed(t *testing.T) {
	for _, body := range []string{"", "not json", "[1,2]", `{"user_email": `} {
		h, _ := newFeedbackHandler(t)

		w := submitFeedback(t, h, body)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	}
}

func TestSubmitFeedback_StoreFailure(t *testing.T) {
	h, d := newFeedbackHandler(t)
	testutil.IgnoreInserts(t, d, "feedback_forms")

	w := submitFeedback(t, h, `{"digital_work_showcase_effectiveness": 3, "core_platform_features": "x"}`)
	testutil.AssertStatus(t, w, http.StatusInternalServerError)

	env := testutil.DecodeEnvelope(t, w, nil)
	if env.Success || env.Message != "Failed to submit feedback" {
		t.Errorf("unexpected envelope: %+v", env)
	}
	if got := testutil.CountRows(t, d, "digital_work_feedback"); got != 0 {
		t.Errorf("child rows written without a form: %d", got)
	}
}

func TestGetAllFeedback(t *testing.T) {
	h, d := newFeedbackHandler(t)

	email := "old@example.com"
	testutil.InsertTestFeedback(t, d, &email, time.Now().Add(-time.Hour).UTC())
	submitFeedback(t, h, `{"user_email": "new@example.com", "regular_blogging": "no"}`)

	w := httptest.NewRecorder()
	h.GetAll(w, httptest.NewRequest("GET", "/api/feedback/all", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var records []models.FeedbackRecord
	testutil.DecodeEnvelope(t, w, &records)

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].UserEmail == nil || *records[0].UserEmail != "new@example.com" {
		t.Errorf("Expected newest first, got %+v", records[0])
	}
	if records[0].RegularBlogging == nil || *records[0].RegularBlogging != "no" {
		t.Errorf("Expected regular_blogging no, got %v", records[0].RegularBlogging)
	}
	if records[1].DigitalWorkShowcaseEffectiveness != nil || records[1].CorePlatformFeatures != nil {
		t.Error("Form without children should have null child fields")
	}
}

func TestGetAllFeedback_StoreFailure(t *testing.T) {
	h, d := newFeedbackHandler(t)
	testutil.DropTable(t, d, "digital_work_feedback")

	w := httptest.NewRecorder()
	h.GetAll(w, httptest.NewRequest("GET", "/api/feedback/all", nil))
	testutil.AssertStatus(t, w, http.StatusInternalServerError)
}

func TestFeedbackAnalytics(t *testing.T) {
	h, _ := newFeedbackHandler(t)

	submitFeedback(t, h, `{"digital_work_showcase_effectiveness": 2, "regular_blogging": "yes"}`)
	submitFeedback(t, h, `{"digital_work_showcase_effectiveness": 4, "regular_blogging": "yes"}`)

	w := httptest.NewRecorder()
	h.Analytics(w, httptest.NewRequest("GET", "/api/feedback/analytics", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var analytics models.FeedbackAnalytics
	testutil.DecodeEnvelope(t, w, &analytics)

	if analytics.TotalFeedback != 2 {
		t.Errorf("Expected total 2, got %d", analytics.TotalFeedback)
	}
	if analytics.AverageRatings.ShowcaseEffectiveness == nil || *analytics.AverageRatings.ShowcaseEffectiveness != 3.0 {
		t.Errorf("Expected mean 3.0, got %v", analytics.AverageRatings.ShowcaseEffectiveness)
	}
	if analytics.BloggingStats["yes"] != 2 {
		t.Errorf("Expected 2 yes, got %v", analytics.BloggingStats)
	}
}

func TestFeedbackAnalytics_Failure(t *testing.T) {
	h, d := newFeedbackHandler(t)
	testutil.DropTable(t, d, "digital_work_feedback")

	w := httptest.NewRecorder()
	h.Analytics(w, httptest.NewRequest("GET", "/api/feedback/analytics", nil))

	// Analytics are advisory and degrade to zero values
	testutil.AssertStatus(t, w, http.StatusOK)

	var analytics models.FeedbackAnalytics
	testutil.DecodeEnvelope(t, w, &analytics)
	if analytics.TotalFeedback != 0 || analytics.AverageRatings.ShowcaseEffectiveness != nil {
		t.Errorf("Expected zero analytics, got %+v", analytics)
	}
}

func TestFeedbackSummary(t *testing.T) {
	h, _ := newFeedbackHandler(t)

	submitFeedback(t, h, `{"digital_work_showcase_effectiveness": 5}`)
	submitFeedback(t, h, `{"core_platform_features": "x"}`)
	submitFeedback(t, h, `{}`)

	w := httptest.NewRecorder()
	h.Summary(w, httptest.NewRequest("GET", "/api/feedback/summary", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var summary models.FeedbackSummary
	testutil.DecodeEnvelope(t, w, &summary)

	if summary.TotalFeedback != 3 || summary.WithDigitalWork != 1 || summary.WithPlatformOpinions != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if summary.LatestSubmissionAt == nil {
		t.Error("Expected latest_submission_at")
	}
}
