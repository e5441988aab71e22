package availability

import (
	"testing"
	"time"
)

func TestParseDayAnchor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		clock   string
		zone    string
		wantErr bool
	}{
		{name: "midnight", clock: "00:00"},
		{name: "afternoon check in", clock: "15:00"},
		{name: "last minute of the day", clock: "23:59"},
		{name: "explicit utc zone", clock: "12:00", zone: "UTC"},
		{name: "empty clock", clock: "", wantErr: true},
		{name: "words", clock: "noon", wantErr: true},
		{name: "hour out of range", clock: "25:00", wantErr: true},
		{name: "minute out of range", clock: "15:70", wantErr: true},
		{name: "missing minutes", clock: "15", wantErr: true},
		{name: "unknown zone", clock: "15:00", zone: "Mars/Olympus", wantErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			anchor, err := ParseDayAnchor(tc.clock, tc.zone)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseDayAnchor(%q, %q) succeeded, want error", tc.clock, tc.zone)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDayAnchor(%q, %q): %v", tc.clock, tc.zone, err)
			}
			if anchor.Location == nil {
				t.Fatal("anchor location must never be nil after a successful parse")
			}
		})
	}
}

func TestBoundaryFor(t *testing.T) {
	t.Parallel()

	day := mustDay(t, "2025-04-01")

	anchor, err := ParseDayAnchor("15:00", "")
	if err != nil {
		t.Fatalf("ParseDayAnchor: %v", err)
	}
	if got := anchor.BoundaryFor(day).Format(time.RFC3339); got != "2025-04-01T15:00:00Z" {
		t.Fatalf("BoundaryFor = %s", got)
	}

	// The zero anchor is midnight UTC, so memory mode needs no engine
	// configuration at all.
	if got := (DayAnchor{}).BoundaryFor(day).Format(time.RFC3339); got != "2025-04-01T00:00:00Z" {
		t.Fatalf("zero anchor BoundaryFor = %s", got)
	}

	zoned := DayAnchor{Hour: 14, Minute: 30, Location: time.FixedZone("plus3", 3*60*60)}
	if got := zoned.BoundaryFor(day).Format(time.RFC3339); got != "2025-04-01T14:30:00+03:00" {
		t.Fatalf("zoned BoundaryFor = %s", got)
	}
}
