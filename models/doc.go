// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Envelope

Every JSON response is a BaseResponse:

	{"success": true, "message": "...", "data": ...}

Validation failures carry a []FieldError as data.

# Request Types

  - FeedbackSubmission: optional ratings, yes/no and frequency choices, free text
  - UserRegistration: user and creator signups
  - NotInterestedSubmission: "not interested" responses
  - AdminLoginRequest: username, password

# Record Types

  - FeedbackRecord: one form joined with its optional children
  - UserRecord, NotInterestedRecord: stored registrations

# Derived Types

Computed on demand, never persisted:

  - FeedbackAnalytics: averages and categorical counts
  - FeedbackSummary: totals plus analytics
  - UserAnalytics: registration counts and distributions

# Enumerations

	Yes, No
	FrequencyNever, FrequencyRarely, FrequencySometimes, FrequencyOften, FrequencyAlways
	UserTypeUser, UserTypeCreator
*/
package models
