package scheduling

import "fmt"

// ValidationError reports malformed booking input: a bad title, a
// non-positive duration, an inverted interval or a start in the past.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError reports that the requested interval overlaps existing events.
// No event is created when this is returned.
type ConflictError struct {
	Requested Interval
	Busy      []Interval
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("requested slot %s conflicts with %d existing event(s)", e.Requested, len(e.Busy))
}

// BackendError wraps a failure from the calendar backend (network,
// authentication, quota).
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("calendar backend %s failed: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }
