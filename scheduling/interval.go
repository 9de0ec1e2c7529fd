// Package scheduling implements the availability and booking core: time
// intervals, candidate slot generation over a working window, free-slot
// computation against busy calendar events, and the conflict-guarded booking
// operation. All interval arithmetic is done in UTC; callers convert to the
// display timezone at the formatting boundary.
package scheduling

import (
	"fmt"
	"time"
)

// Interval is an immutable half-open time range [start, end) with start < end.
// Both bounds are normalized to UTC on construction.
type Interval struct {
	start time.Time
	end   time.Time
}

// NewInterval constructs an interval, enforcing start < end
func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, fmt.Errorf("interval start (%s) must be before end (%s)",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{start: start.UTC(), end: end.UTC()}, nil
}

// Start returns the interval's inclusive lower bound in UTC
func (i Interval) Start() time.Time { return i.start }

// End returns the interval's exclusive upper bound in UTC
func (i Interval) End() time.Time { return i.end }

// Duration returns the interval's length
func (i Interval) Duration() time.Duration { return i.end.Sub(i.start) }

// Overlaps reports whether the two intervals share any instant. The ranges are
// half-open, so an interval ending exactly when another begins does not overlap it.
func (i Interval) Overlaps(other Interval) bool {
	return i.start.Before(other.end) && other.start.Before(i.end)
}

// Clock renders the interval as wall-clock times in the given location, e.g. "09:00 - 10:00"
func (i Interval) Clock(loc *time.Location) string {
	return fmt.Sprintf("%s - %s", i.start.In(loc).Format("15:04"), i.end.In(loc).Format("15:04"))
}

// String renders the interval as an RFC3339 range, for logs
func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.start.Format(time.RFC3339), i.end.Format(time.RFC3339))
}
