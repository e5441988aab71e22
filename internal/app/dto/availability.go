package dto

import "staycal/internal/domain/shared/dateonly"

// UnavailableDates is the caller-facing answer. Unavailable is never null
// on the wire, so an empty result serializes as an empty array.
type UnavailableDates struct {
	Unavailable []string `json:"unavailable"`
}

func MapUnavailableDates(days []dateonly.Date) UnavailableDates {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.String())
	}
	return UnavailableDates{Unavailable: out}
}
