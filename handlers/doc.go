// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the survey-intake API.

# Handler Types

Each handler is a struct holding the narrow interface it reads or writes:

  - AuthHandler: Admin login and token verification
  - UserHandler: User, creator and not-interested signups (RegistrationStore)
  - FeedbackHandler: Feedback submission and admin reads (FeedbackStore)
  - DataHandler: Statistics and export bundles (Exporter)

Handlers are created via constructor functions:

	feedbackHandler := handlers.NewFeedbackHandler(store.NewFeedbackStore(db))

# Responses

Every response uses the {success, message, data} envelope from
middleware.Success and middleware.ErrorResponse:

	400  body is not valid JSON
	401  missing or bad credentials
	409  email already registered for that kind
	422  validation failed; data lists every failed field
	500  the store could not complete the request

# Feedback Submission

Submit decodes the body field by field so that every bad field is
reported at once, then hands the validated submission to the store. The
store writes the form and its child rows in one transaction.

# Admin Endpoints

Admin handlers assume middleware.RequireAdmin has already run. DataHandler
reads the token expiry from the request claims and passes it to the
exporter for display in the bundle.
*/
package handlers
