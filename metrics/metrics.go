// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values
const (
	ResultSuccess   = "success"
	ResultInvalid   = "invalid"
	ResultDuplicate = "duplicate"
	ResultFailure   = "failure"
)

var (
	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of requests currently being served",
		},
	)

	// Intake metrics
	FeedbackSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_submissions_total",
			Help: "Feedback submissions by outcome",
		},
		[]string{"result"},
	)

	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "User, creator and not-interested registrations by outcome",
		},
		[]string{"kind", "result"}, // kind: "user", "creator", "not_interested"
	)

	// Admin metrics
	ExportSourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "export_source_failures_total",
			Help: "Export data sources that failed and were replaced by an empty default",
		},
		[]string{"source"},
	)

	AdminAuthRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_auth_rejections_total",
			Help: "Requests rejected by the admin gate",
		},
		[]string{"reason"}, // "missing", "invalid", "not_admin", "bad_credentials"
	)
)

// RecordAPIRequest records one served request.
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

func RecordFeedbackSubmission(result string) {
	FeedbackSubmissions.WithLabelValues(result).Inc()
}

func RecordRegistration(kind, result string) {
	Registrations.WithLabelValues(kind, result).Inc()
}

func RecordExportSourceFailure(source string) {
	ExportSourceFailures.WithLabelValues(source).Inc()
}

func RecordAdminAuthRejection(reason string) {
	AdminAuthRejections.WithLabelValues(reason).Inc()
}
