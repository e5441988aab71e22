package availability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domainavailability "staycal/internal/domain/availability"
	"staycal/internal/domain/shared/dateonly"
)

// Service resolves which calendar days of a range are unavailable for one
// category, correcting the engine's missing checkout days on the way.
type Service struct {
	Source domainavailability.Source
	Anchor domainavailability.DayAnchor
	Logger *slog.Logger
}

type ResolveParams struct {
	CategoryID string
	StartDate  string
	EndDate    string
}

type ResolveResult struct {
	Unavailable []dateonly.Date
}

func (s *Service) Resolve(ctx context.Context, params ResolveParams) (*ResolveResult, error) {
	if s.Source == nil {
		return nil, errors.New("availability: source required")
	}
	categoryID, window, err := parseParams(params)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("availability lookup",
			"category_id", categoryID,
			"start", window.From.String(),
			"end", window.To.String(),
			"days", window.Days(),
		)
	}

	report, err := s.Source.Fetch(ctx, s.Anchor.BoundaryFor(window.From), s.Anchor.BoundaryFor(window.To))
	if err != nil {
		var upstream *domainavailability.UpstreamError
		if errors.As(err, &upstream) {
			s.logError("booking engine rejected availability window", err)
			return nil, err
		}
		s.logError("availability fetch failed", err)
		return nil, fmt.Errorf("availability fetch: %w", err)
	}

	days, anomaly := report.UnavailableDays(categoryID)
	if anomaly != domainavailability.AnomalyNone && s.Logger != nil {
		s.Logger.Warn("availability report anomaly",
			"anomaly", string(anomaly),
			"category_id", categoryID,
			"boundaries", len(report.Boundaries),
		)
	}

	raw := domainavailability.NewDaySet(days...)
	corrected := raw.WithCheckoutDays()
	if synthesized := corrected.Len() - raw.Len(); synthesized > 0 && s.Logger != nil {
		s.Logger.Info("checkout days synthesized", "category_id", categoryID, "count", synthesized)
	}

	// The engine may answer a wider window than asked. The reply stays
	// inside the requested range, plus the checkout day the correction may
	// place one past its end.
	limit := window.To.Next()
	unavailable := make([]dateonly.Date, 0, corrected.Len())
	for _, day := range corrected.Sorted() {
		if day.Before(window.From) || day.After(limit) {
			continue
		}
		unavailable = append(unavailable, day)
	}
	return &ResolveResult{Unavailable: unavailable}, nil
}

// parseParams enforces what the transport layer cannot: calendar validity
// of each date and the range ordering. The category id is passed through
// to the engine untouched.
func parseParams(params ResolveParams) (string, dateonly.Range, error) {
	if strings.TrimSpace(params.CategoryID) == "" {
		return "", dateonly.Range{}, &domainavailability.ValidationError{Field: "categoryId", Reason: "is required"}
	}
	start, err := parseDate("startDate", params.StartDate)
	if err != nil {
		return "", dateonly.Range{}, err
	}
	end, err := parseDate("endDate", params.EndDate)
	if err != nil {
		return "", dateonly.Range{}, err
	}
	if end.Before(start) {
		return "", dateonly.Range{}, &domainavailability.ValidationError{Field: "endDate", Reason: "must not be before startDate"}
	}
	return params.CategoryID, dateonly.Range{From: start, To: end}, nil
}

func parseDate(field, raw string) (dateonly.Date, error) {
	if raw == "" {
		return dateonly.Date{}, &domainavailability.ValidationError{Field: field, Reason: "is required"}
	}
	day, err := dateonly.Parse(raw)
	switch {
	case errors.Is(err, dateonly.ErrBadFormat):
		return dateonly.Date{}, &domainavailability.ValidationError{Field: field, Reason: "must be a date in YYYY-MM-DD form"}
	case err != nil:
		return dateonly.Date{}, &domainavailability.ValidationError{Field: field, Reason: "is not a valid calendar date"}
	}
	return day, nil
}

func (s *Service) logError(msg string, err error) {
	if s.Logger != nil {
		s.Logger.Error(msg, "error", err)
	}
}
