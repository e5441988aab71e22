package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainavailability "staycal/internal/domain/availability"
)

// Client fetches per-day availability from the booking engine's HTTP API.
// The API key travels in a header only; it never appears in errors or logs.
type Client struct {
	BaseURL    string
	APIKey     string
	ServiceID  string
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *slog.Logger
}

type availabilityResponse struct {
	Periods    []time.Time       `json:"periods"`
	Categories []categoryPayload `json:"categories"`
}

type categoryPayload struct {
	ID             string `json:"id"`
	Availabilities []int  `json:"availabilities"`
}

// Fetch retrieves the engine's availability report for the window
// [from, to]. Both bounds must already sit on the engine's day-start
// boundary; the engine answers off-boundary windows with a client error,
// which surfaces as an UpstreamError.
func (c *Client) Fetch(ctx context.Context, from, to time.Time) (*domainavailability.Report, error) {
	if c == nil || c.HTTPClient == nil {
		return nil, errors.New("engine: http client not configured")
	}
	if c.BaseURL == "" {
		return nil, errors.New("engine: base url not configured")
	}
	if c.ServiceID == "" {
		return nil, errors.New("engine: service id not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	endpoint := fmt.Sprintf("%s/services/%s/availabilities", strings.TrimRight(c.BaseURL, "/"), url.PathEscape(c.ServiceID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	start := from.Format(time.RFC3339)
	end := to.Format(time.RFC3339)
	query := req.URL.Query()
	query.Set("start", start)
	query.Set("end", end)
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("X-Api-Key", c.APIKey)
	}

	if c.Logger != nil {
		c.Logger.Info("engine availability request", "endpoint", endpoint, "start", start, "end", end)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			err = fmt.Errorf("engine: availability request timeout (%s)", endpoint)
		}
		c.logError("engine request failed", err)
		return nil, err
	}
	defer resp.Body.Close()

	if c.Logger != nil {
		c.Logger.Info("engine availability response", "status", resp.StatusCode)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		uerr := &domainavailability.UpstreamError{Status: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
		c.logError("engine returned error", uerr)
		return nil, uerr
	}

	var payload availabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logError("engine decode failed", err)
		return nil, fmt.Errorf("engine: decode availability response: %w", err)
	}

	report := &domainavailability.Report{
		Boundaries: payload.Periods,
		Categories: make([]domainavailability.CategorySeries, 0, len(payload.Categories)),
	}
	for _, cat := range payload.Categories {
		report.Categories = append(report.Categories, domainavailability.CategorySeries{
			ID:     cat.ID,
			Counts: cat.Availabilities,
		})
	}
	return report, nil
}

func (c *Client) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return 10 * time.Second
}

func (c *Client) logError(msg string, err error) {
	if c.Logger != nil {
		c.Logger.Error(msg, "error", err)
	}
}

var _ domainavailability.Source = (*Client)(nil)
