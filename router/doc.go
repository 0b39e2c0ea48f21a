// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the survey-intake API.

# Route Registration

NewRouter builds the chi router with every endpoint:

	handler, err := router.NewRouter(db, cfg)

It fails only when the token settings or admin credentials in cfg are unusable.

# Middleware

Applied to every request, in order: client IP resolution (forwarding
headers honored only from TRUSTED_PROXIES), request ID, panic recovery,
Prometheus metrics, request logging, CORS. Public POST routes are rate
limited per client IP.

# Endpoints

Public:

	GET  /health                       - Health check
	GET  /metrics                      - Prometheus metrics
	POST /api/auth/adminlogin          - Issue admin token
	POST /api/users/userdata           - User signup
	POST /api/users/creatordata        - Creator signup
	POST /api/users/notinteresteddata  - Not interested response
	POST /api/feedback/submit          - Feedback questionnaire

Admin (Authorization: Bearer <token>):

	GET  /api/auth/verify
	GET  /api/users/registereduserdata
	GET  /api/users/registeredcreatordata
	GET  /api/users/notintdata
	GET  /api/users/analytics
	GET  /api/feedback/all
	GET  /api/feedback/userfeedbackdata
	GET  /api/feedback/analytics
	GET  /api/feedback/summary
	GET  /api/data/stats
	POST /api/data/downloaddata
	GET  /api/data/export/{json,userdata,creatordata,feedbackdata,notintdata}
*/
package router
