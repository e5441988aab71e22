package availability

import (
	"fmt"
	"time"

	"staycal/internal/domain/shared/dateonly"
)

const anchorLayout = "15:04"

// DayAnchor is the wall-clock time at which the booking engine opens a new
// scheduling day. The engine rejects window timestamps that do not land
// exactly on this boundary, so the anchor is resolved from configuration
// once at startup and never guessed per request.
type DayAnchor struct {
	Hour     int
	Minute   int
	Location *time.Location
}

// ParseDayAnchor reads an HH:MM clock value and an IANA zone name. An
// empty zone means UTC.
func ParseDayAnchor(clock, zone string) (DayAnchor, error) {
	t, err := time.Parse(anchorLayout, clock)
	if err != nil {
		return DayAnchor{}, fmt.Errorf("day start %q must be an HH:MM clock value: %w", clock, err)
	}
	loc := time.UTC
	if zone != "" {
		loc, err = time.LoadLocation(zone)
		if err != nil {
			return DayAnchor{}, fmt.Errorf("day start timezone %q unknown: %w", zone, err)
		}
	}
	return DayAnchor{Hour: t.Hour(), Minute: t.Minute(), Location: loc}, nil
}

// BoundaryFor returns the timestamp opening day d on the engine's clock.
// The zero anchor means midnight UTC.
func (a DayAnchor) BoundaryFor(d dateonly.Date) time.Time {
	return d.At(a.Hour, a.Minute, a.location())
}

func (a DayAnchor) location() *time.Location {
	if a.Location == nil {
		return time.UTC
	}
	return a.Location
}
