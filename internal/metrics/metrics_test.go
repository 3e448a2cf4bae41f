// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		err       error
		wantLabel string
	}{
		{
			name:      "successful read",
			operation: "history_read",
		},
		{
			name:      "short error",
			operation: "history_append",
			err:       errors.New("user not found"),
			wantLabel: "user not found",
		},
		{
			name:      "long error truncated to 50 chars",
			operation: "ratings_list",
			err:       errors.New(strings.Repeat("e", 80)),
			wantLabel: strings.Repeat("e", 50),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("badger", tt.operation, tt.wantLabel))
			RecordDBQuery("badger", tt.operation, 5*time.Millisecond, tt.err)
			after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("badger", tt.operation, tt.wantLabel))

			if tt.err == nil {
				if after != before {
					t.Errorf("expected no error increment, got %v -> %v", before, after)
				}
				return
			}
			if after != before+1 {
				t.Errorf("expected error counter to increment, got %v -> %v", before, after)
			}
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/chat", "200"))
	RecordAPIRequest("POST", "/chat", "200", 20*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/chat", "200"))
	if after != before+1 {
		t.Errorf("expected api_requests_total to increment, got %v -> %v", before, after)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	start := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != start+1 {
		t.Errorf("expected %v active requests, got %v", start+1, got)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != start {
		t.Errorf("expected %v active requests, got %v", start, got)
	}
}

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsServed.WithLabelValues("collaborative", "error"))
	RecordRecommendation("collaborative", time.Millisecond, errors.New("boom"))
	if got := testutil.ToFloat64(RecommendationsServed.WithLabelValues("collaborative", "error")); got != before+1 {
		t.Errorf("expected error result to increment, got %v -> %v", before, got)
	}
}

func TestMetricsLint(t *testing.T) {
	RecordCatalogRequest("success", 100*time.Millisecond)
	LookupOutcomes.WithLabelValues("found").Inc()

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer,
		"catalog_requests_total", "catalog_request_duration_seconds", "catalog_lookup_outcomes_total")
	if err != nil {
		t.Fatalf("GatherAndLint failed: %v", err)
	}
	for _, p := range problems {
		t.Errorf("metric %s: %s", p.Metric, p.Text)
	}
}
