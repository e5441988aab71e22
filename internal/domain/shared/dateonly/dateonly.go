package dateonly

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Layout is the wire form of a calendar date.
const Layout = "2006-01-02"

var (
	ErrBadFormat    = errors.New("dateonly: date must be in YYYY-MM-DD form")
	ErrBadDate      = errors.New("dateonly: not a valid calendar date")
	ErrInvalidRange = errors.New("dateonly: range end must not precede start")
)

var layoutPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Date is a calendar day without a time of day, stored at midnight UTC.
type Date struct {
	t time.Time
}

// MatchesLayout reports whether raw has the four-two-two digit shape of
// Layout. It does not check calendar validity.
func MatchesLayout(raw string) bool {
	return layoutPattern.MatchString(raw)
}

// Parse accepts strictly formatted YYYY-MM-DD values. Values that fit the
// layout but name an impossible date, such as a thirteenth month, fail
// with ErrBadDate.
func Parse(raw string) (Date, error) {
	if !MatchesLayout(raw) {
		return Date{}, ErrBadFormat
	}
	t, err := time.Parse(Layout, raw)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrBadDate, raw)
	}
	return Date{t: t.UTC()}, nil
}

// FromTime keeps the calendar day the timestamp names in its own location.
func FromTime(t time.Time) Date {
	year, month, day := t.Date()
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) String() string {
	return d.t.Format(Layout)
}

// Next returns the following calendar day, carrying across month and year
// ends.
func (d Date) Next() Date {
	return Date{t: d.t.AddDate(0, 0, 1)}
}

func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// At places the day at the given wall clock in loc. A nil loc means UTC.
func (d Date) At(hour, minute int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	year, month, day := d.t.Date()
	return time.Date(year, month, day, hour, minute, 0, 0, loc)
}

// Range is an inclusive span of calendar days.
type Range struct {
	From Date
	To   Date
}

func NewRange(from, to Date) (Range, error) {
	r := Range{From: from, To: to}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

func (r Range) Validate() error {
	if r.From.IsZero() || r.To.IsZero() {
		return ErrInvalidRange
	}
	if r.To.Before(r.From) {
		return ErrInvalidRange
	}
	return nil
}

// Days counts the calendar days in the range, both ends included.
func (r Range) Days() int {
	return int(r.To.t.Sub(r.From.t)/(24*time.Hour)) + 1
}

func (r Range) Contains(d Date) bool {
	return !d.Before(r.From) && !d.After(r.To)
}
