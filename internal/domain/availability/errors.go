package availability

import "fmt"

// ValidationError rejects a malformed availability query before any engine
// call is made. Field names the offending input in its wire spelling.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// UpstreamError reports a non-success answer from the booking engine.
// Status and Body are diagnostic only and must never reach the original
// caller.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("availability: booking engine returned status %d: %s", e.Status, e.Body)
}
