// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validation checks request payloads with go-playground/validator.

A single validator instance is shared process-wide. Fields are reported by
their JSON names, and two rules are registered on top of the built-ins:

  - rating: integer in 1..5
  - text: at most 1000 characters

DecodeFeedback type-checks each feedback field before struct validation so
that a non-integer rating or a non-string answer is reported alongside any
range failures:

	sub, err := validation.DecodeFeedback(body)
	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		// 422 with verr.FieldErrors()
	}
*/
package validation
