// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Chain

The router applies, outermost first:

	RequestID   // X-Request-ID in and out, UUID when absent
	Prometheus  // api_requests_total and latency per route pattern
	WithLogging // one structured line per request
	CORS        // go-chi/cors with configured origins

Public submission and login routes add RateLimit (go-chi/httprate, per IP).
Admin routes add RequireAdmin, which verifies the bearer token and admin
role before any handler runs and stores the claims in the request context.

# Responses

Every response uses the models.BaseResponse envelope:

	middleware.Success(w, http.StatusOK, "Feedback fetched", records)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch feedback")
	middleware.ValidationErrorResponse(w, verr.FieldErrors())

# Bodies

ReadBody and ParseJSONBody cap request bodies at MaxBodyBytes.
*/
package middleware
