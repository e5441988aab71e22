package engine

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	domainavailability "staycal/internal/domain/availability"
)

func window(t *testing.T) (time.Time, time.Time) {
	t.Helper()
	from, err := time.Parse(time.RFC3339, "2025-04-01T15:00:00Z")
	if err != nil {
		t.Fatalf("parse from: %v", err)
	}
	to, err := time.Parse(time.RFC3339, "2025-04-05T15:00:00Z")
	if err != nil {
		t.Fatalf("parse to: %v", err)
	}
	return from, to
}

func TestFetchSuccess(t *testing.T) {
	t.Parallel()

	var gotPath, gotKey, gotStart, gotEnd string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		gotStart = r.URL.Query().Get("start")
		gotEnd = r.URL.Query().Get("end")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"periods": ["2025-04-01T15:00:00Z", "2025-04-02T15:00:00Z", "2025-04-03T15:00:00Z"],
			"categories": [
				{"id": "cat-1", "availabilities": [1, 0, 1]},
				{"id": "cat-2", "availabilities": [0, 0, 0]}
			]
		}`))
	}))
	defer ts.Close()

	client := &Client{
		BaseURL:    ts.URL + "/",
		APIKey:     "secret",
		ServiceID:  "svc-1",
		HTTPClient: ts.Client(),
	}
	from, to := window(t)
	report, err := client.Fetch(context.Background(), from, to)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if gotPath != "/services/svc-1/availabilities" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotKey != "secret" {
		t.Fatalf("api key header = %q", gotKey)
	}
	if gotStart != "2025-04-01T15:00:00Z" || gotEnd != "2025-04-05T15:00:00Z" {
		t.Fatalf("window params = %q / %q", gotStart, gotEnd)
	}

	if len(report.Boundaries) != 3 {
		t.Fatalf("boundaries = %d, want 3", len(report.Boundaries))
	}
	if got := report.Boundaries[0].Format(time.RFC3339); got != "2025-04-01T15:00:00Z" {
		t.Fatalf("boundary[0] = %s", got)
	}
	if len(report.Categories) != 2 {
		t.Fatalf("categories = %d, want 2", len(report.Categories))
	}
	series, ok := report.Series("cat-2")
	if !ok || len(series.Counts) != 3 || series.Counts[0] != 0 {
		t.Fatalf("cat-2 series = %+v ok=%v", series, ok)
	}
}

func TestFetchUpstreamError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error": "start not aligned to day boundary"}`))
	}))
	defer ts.Close()

	client := &Client{BaseURL: ts.URL, ServiceID: "svc-1", HTTPClient: ts.Client()}
	from, to := window(t)
	_, err := client.Fetch(context.Background(), from, to)

	var upstreamErr *domainavailability.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("Fetch error = %v, want UpstreamError", err)
	}
	if upstreamErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", upstreamErr.Status)
	}
	if !strings.Contains(upstreamErr.Body, "not aligned") {
		t.Fatalf("body snippet = %q", upstreamErr.Body)
	}
}

func TestFetchSnippetIsBounded(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(strings.Repeat("x", 4096)))
	}))
	defer ts.Close()

	client := &Client{BaseURL: ts.URL, ServiceID: "svc-1", HTTPClient: ts.Client()}
	from, to := window(t)
	_, err := client.Fetch(context.Background(), from, to)

	var upstreamErr *domainavailability.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("Fetch error = %v, want UpstreamError", err)
	}
	if len(upstreamErr.Body) > 512 {
		t.Fatalf("snippet length = %d, want at most 512", len(upstreamErr.Body))
	}
}

func TestFetchMalformedAnswer(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"periods": [`))
	}))
	defer ts.Close()

	client := &Client{BaseURL: ts.URL, ServiceID: "svc-1", HTTPClient: ts.Client()}
	from, to := window(t)
	_, err := client.Fetch(context.Background(), from, to)
	if err == nil {
		t.Fatal("expected decode error")
	}
	var upstreamErr *domainavailability.UpstreamError
	if errors.As(err, &upstreamErr) {
		t.Fatalf("a garbled 200 answer is not an upstream rejection: %v", err)
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Fatalf("error %q must name the decode step", err)
	}
}

func TestFetchTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer ts.Close()
	defer close(release)

	client := &Client{BaseURL: ts.URL, ServiceID: "svc-1", HTTPClient: ts.Client(), Timeout: 50 * time.Millisecond}
	from, to := window(t)
	_, err := client.Fetch(context.Background(), from, to)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Fatalf("error %q must name the timeout", err)
	}
}

func TestFetchGuards(t *testing.T) {
	t.Parallel()

	from, to := window(t)
	cases := []struct {
		name   string
		client *Client
	}{
		{name: "nil client", client: nil},
		{name: "missing http client", client: &Client{BaseURL: "https://engine.test", ServiceID: "svc-1"}},
		{name: "missing base url", client: &Client{ServiceID: "svc-1", HTTPClient: http.DefaultClient}},
		{name: "missing service id", client: &Client{BaseURL: "https://engine.test", HTTPClient: http.DefaultClient}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := tc.client.Fetch(context.Background(), from, to); err == nil {
				t.Fatal("expected configuration error")
			}
		})
	}
}
