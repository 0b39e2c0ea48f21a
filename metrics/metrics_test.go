// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/health", "200"))

	RecordAPIRequest("GET", "/health", "200", 5*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/health", "200"))
	if after != before+1 {
		t.Errorf("api_requests_total = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active after inc = %v, want %v", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active after dec = %v, want %v", got, before)
	}
}

func TestCounters(t *testing.T) {
	tests := []struct {
		name   string
		record func()
		read   func() float64
	}{
		{
			"feedback",
			func() { RecordFeedbackSubmission(ResultSuccess) },
			func() float64 { return testutil.ToFloat64(FeedbackSubmissions.WithLabelValues(ResultSuccess)) },
		},
		{
			"registration",
			func() { RecordRegistration("creator", ResultDuplicate) },
			func() float64 { return testutil.ToFloat64(Registrations.WithLabelValues("creator", ResultDuplicate)) },
		},
		{
			"export source",
			func() { RecordExportSourceFailure("not_interested") },
			func() float64 { return testutil.ToFloat64(ExportSourceFailures.WithLabelValues("not_interested")) },
		},
		{
			"auth rejection",
			func() { RecordAdminAuthRejection("missing") },
			func() float64 { return testutil.ToFloat64(AdminAuthRejections.WithLabelValues("missing")) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.read()
			tt.record()
			if got := tt.read(); got != before+1 {
				t.Errorf("counter = %v, want %v", got, before+1)
			}
		})
	}
}
