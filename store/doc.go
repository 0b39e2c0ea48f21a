// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists submissions and answers the admin read queries.

# Feedback

FeedbackStore.SaveFeedback splits one submission across three tables in a
single transaction:

	feedback_forms              always
	digital_work_feedback       when any rating or choice was answered
	platform_features_opinions  when any free-text answer was given

Any failure rolls the whole submission back and SaveFeedback returns false.
GetAllFeedback joins the tables back together, newest first with ties
broken by id. GetFeedbackAnalytics never fails: on error it logs and returns
the empty result.

# Registrations

RegistrationStore saves users and creators (one per email per type) and
"not interested" responses (one per email). Duplicates return ErrDuplicate.

# Errors

Read failures are logged with their cause and returned as ErrUnavailable
together with an empty, non-nil default.
*/
package store
