package availability

import (
	"context"
	"time"

	"staycal/internal/domain/shared/dateonly"
)

// Anomaly marks a report defect that downgrades the target category to an
// empty series instead of failing the request.
type Anomaly string

const (
	AnomalyNone           Anomaly = ""
	AnomalyCategoryAbsent Anomaly = "category_absent"
	AnomalyLengthMismatch Anomaly = "series_length_mismatch"
)

// CategorySeries carries one category's per-day capacity counts, aligned
// positionally with the report's boundary sequence.
type CategorySeries struct {
	ID     string
	Counts []int
}

// Report is the engine's availability answer for one request window. Each
// boundary timestamp opens one scheduling day; its date component names
// that day.
type Report struct {
	Boundaries []time.Time
	Categories []CategorySeries
}

// Source fetches the report covering the window [from, to].
type Source interface {
	Fetch(ctx context.Context, from, to time.Time) (*Report, error)
}

// Series returns the series whose id matches exactly, case sensitive.
func (r *Report) Series(id string) (CategorySeries, bool) {
	for _, s := range r.Categories {
		if s.ID == id {
			return s, true
		}
	}
	return CategorySeries{}, false
}

// UnavailableDays extracts the calendar days on which the category has no
// capacity left. A missing category or a series misaligned with the
// boundary sequence yields no days plus the anomaly that caused it.
func (r *Report) UnavailableDays(categoryID string) ([]dateonly.Date, Anomaly) {
	series, ok := r.Series(categoryID)
	if !ok {
		return nil, AnomalyCategoryAbsent
	}
	if len(series.Counts) != len(r.Boundaries) {
		return nil, AnomalyLengthMismatch
	}
	var days []dateonly.Date
	for i, count := range series.Counts {
		if count > 0 {
			continue
		}
		days = append(days, dateonly.FromTime(r.Boundaries[i]))
	}
	return days, AnomalyNone
}
