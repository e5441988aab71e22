package memory

import (
	"context"
	"sync"
	"time"

	domainavailability "staycal/internal/domain/availability"
	"staycal/internal/domain/shared/dateonly"
)

// defaultCount is assumed for any day a category has no seeded entry.
const defaultCount = 1

// AvailabilitySource serves canned availability reports so the proxy can
// run without engine credentials, for local demos and tests.
type AvailabilitySource struct {
	mu         sync.RWMutex
	categories []string
	counts     map[string]map[dateonly.Date]int
}

func NewAvailabilitySource() *AvailabilitySource {
	return &AvailabilitySource{counts: make(map[string]map[dateonly.Date]int)}
}

// Seed records the capacity of one category on one day. A count of zero
// marks the day unavailable.
func (s *AvailabilitySource) Seed(categoryID string, day dateonly.Date, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	days, ok := s.counts[categoryID]
	if !ok {
		days = make(map[dateonly.Date]int)
		s.counts[categoryID] = days
		s.categories = append(s.categories, categoryID)
	}
	days[day] = count
}

// Fetch builds a report spanning every day the window touches, one
// boundary per day at the window's own wall clock, with a full series for
// each seeded category.
func (s *AvailabilitySource) Fetch(ctx context.Context, from, to time.Time) (*domainavailability.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := dateonly.FromTime(from)
	end := dateonly.FromTime(to)
	report := &domainavailability.Report{}
	var days []dateonly.Date
	for d := start; !d.After(end); d = d.Next() {
		report.Boundaries = append(report.Boundaries, d.At(from.Hour(), from.Minute(), from.Location()))
		days = append(days, d)
	}
	for _, id := range s.categories {
		counts := make([]int, len(days))
		for i, d := range days {
			counts[i] = s.countFor(id, d)
		}
		report.Categories = append(report.Categories, domainavailability.CategorySeries{ID: id, Counts: counts})
	}
	return report, nil
}

func (s *AvailabilitySource) countFor(categoryID string, day dateonly.Date) int {
	if days, ok := s.counts[categoryID]; ok {
		if count, ok := days[day]; ok {
			return count
		}
	}
	return defaultCount
}

var _ domainavailability.Source = (*AvailabilitySource)(nil)
