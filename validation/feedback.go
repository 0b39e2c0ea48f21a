// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validation

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/danielhkuo/survey-intake/models"
)

// ErrMalformedBody means the body was not a JSON object.
var ErrMalformedBody = errors.New("request body must be a JSON object")

var integerLiteral = regexp.MustCompile(`^-?[0-9]+$`)

type feedbackField struct {
	name string
	// set decodes raw into the submission and reports whether its JSON type fit
	set     func(s *models.FeedbackSubmission, raw json.RawMessage) bool
	typeMsg string
}

var feedbackFields = []feedbackField{
	{"user_email", func(s *models.FeedbackSubmission, raw json.RawMessage) bool {
		v, ok := decodeString(raw)
		s.UserEmail = v
		return ok
	}, "user_email must be a string"},
	{"digital_work_showcase_effectiveness", func(s *models.FeedbackSubmission, raw json.RawMessage) bool {
		v, ok := decodeInt(raw)
		s.DigitalWorkShowcaseEffectiveness = v
		return ok
	}, ratingTypeMsg},
	{"legal_persons_online_recognition", func(s *models.FeedbackSubmission, raw json.RawMessage) bool {
		v, ok := decodeString(raw)
		if ok {
			s.LegalPersonsOnlineRecognition = (*models.YesNo)(v)
		}
		return ok
	}, "legal_persons_online_recognition must be one of: yes no"},
	{"digital_work_sharing_difficulty", func(s *models.FeedbackSubmission, raw json.RawMessage) bool {
		v, ok := decodeInt(raw)
		s.DigitalWorkSharingDifficulty = v
		return ok
	}, ratingTypeMsg},
	{"regular_blogging", func(s *models.FeedbackSubmission, raw json.RawMessage) bool {
		v, ok := decodeString(raw)
		if ok {
			s.RegularBlogging = (*models.YesNo)(v)
		}
		return ok
	}, "regular_blogging must be one of: yes no"},
	{"ai_tools_blogging_frequency", func(s *models.FeedbackSubmission, raw json.RawMessage) bool {
		v, ok := decodeString(raw)
		if ok {
			s.AIToolsBloggingFrequency = (*models.BloggingFrequency)(v)
		}
		return ok
	}, "ai_tools_blogging_frequency must be one of: never rarely sometimes often always"},
	{"blogging_tools_familiarity", func(s *models.FeedbackSubmission, raw json.RawMessage) bool {
		v, ok := decodeInt(raw)
		s.BloggingToolsFamiliarity = v
		return ok
	}, ratingTypeMsg},
	{"core_platform_features", func(s *models.FeedbackSubmission, raw json.RawMessage) bool {
		v, ok := decodeString(raw)
		s.CorePlatformFeatures = v
		return ok
	}, "core_platform_features must be a string"},
	{"ai_research_opinion", func(s *models.FeedbackSubmission, raw json.RawMessage) bool {
		v, ok := decodeString(raw)
		s.AIResearchOpinion = v
		return ok
	}, "ai_research_opinion must be a string"},
	{"ideal_reading_features", func(s *models.FeedbackSubmission, raw json.RawMessage) bool {
		v, ok := decodeString(raw)
		s.IdealReadingFeatures = v
		return ok
	}, "ideal_reading_features must be a string"},
	{"portfolio_presentation_preference", func(s *models.FeedbackSubmission, raw json.RawMessage) bool {
		v, ok := decodeString(raw)
		s.PortfolioPresentationPreference = v
		return ok
	}, "portfolio_presentation_preference must be a string"},
}

var ratingTypeMsg = fmt.Sprintf("Rating must be an integer between %d and %d", RatingMin, RatingMax)

// DecodeFeedback turns a request body into a validated submission.
//
// Each known field is type-checked on its own so that every offending
// field is reported, not just the first. Absent and null fields stay nil;
// unknown fields are ignored. Returns ErrMalformedBody when the body is
// not a JSON object, or a *RequestValidationError listing all failures.
func DecodeFeedback(body []byte) (models.FeedbackSubmission, error) {
	var sub models.FeedbackSubmission

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return sub, ErrMalformedBody
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return sub, ErrMalformedBody
	}

	var typeErrs []ValidationError
	for _, f := range feedbackFields {
		value, ok := raw[f.name]
		if !ok || isNull(value) {
			continue
		}
		if !f.set(&sub, value) {
			typeErrs = append(typeErrs, ValidationError{field: f.name, tag: "type", message: f.typeMsg})
		}
	}

	all := typeErrs
	if verr := ValidateStruct(&sub); verr != nil {
		failed := &RequestValidationError{errors: typeErrs}
		for _, e := range verr.errors {
			if !failed.Has(e.field) {
				all = append(all, e)
			}
		}
	}

	if len(all) > 0 {
		return models.FeedbackSubmission{}, &RequestValidationError{errors: all}
	}
	return sub, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeInt accepts only integer literals; 3.5, "4" and true are rejected.
func decodeInt(raw json.RawMessage) (*int, bool) {
	lit := string(bytes.TrimSpace(raw))
	if !integerLiteral.MatchString(lit) {
		return nil, false
	}
	n, err := strconv.Atoi(lit)
	if err != nil {
		return nil, false
	}
	return &n, true
}

func decodeString(raw json.RawMessage) (*string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return nil, false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}
	return &s, true
}
