package availability

import (
	"sort"

	"staycal/internal/domain/shared/dateonly"
)

// DaySet is a deduplicated collection of unavailable calendar days.
type DaySet struct {
	days      map[dateonly.Date]struct{}
	corrected bool
}

func NewDaySet(days ...dateonly.Date) *DaySet {
	s := &DaySet{days: make(map[dateonly.Date]struct{}, len(days))}
	for _, d := range days {
		s.days[d] = struct{}{}
	}
	return s
}

func (s *DaySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.days)
}

func (s *DaySet) Contains(d dateonly.Date) bool {
	if s == nil {
		return false
	}
	_, ok := s.days[d]
	return ok
}

// Sorted returns the days in ascending calendar order.
func (s *DaySet) Sorted() []dateonly.Date {
	if s == nil || len(s.days) == 0 {
		return nil
	}
	out := make([]dateonly.Date, 0, len(s.days))
	for d := range s.days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// WithCheckoutDays closes every maximal run of consecutive days with the
// day after its last member. The engine attaches a night's unavailability
// to the day the night starts, so the checkout day ending a fully booked
// block never appears in the report; this synthesizes it. A set that
// already includes its checkout days is returned as is, so applying the
// transform again cannot grow the set further.
func (s *DaySet) WithCheckoutDays() *DaySet {
	if s == nil || len(s.days) == 0 || s.corrected {
		return s
	}
	sorted := s.Sorted()
	out := &DaySet{days: make(map[dateonly.Date]struct{}, len(sorted)+1), corrected: true}
	for i, day := range sorted {
		out.days[day] = struct{}{}
		endOfRun := i == len(sorted)-1 || !sorted[i+1].Equal(day.Next())
		if endOfRun {
			out.days[day.Next()] = struct{}{}
		}
	}
	return out
}
