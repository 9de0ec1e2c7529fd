package scheduling

import (
	"fmt"
	"iter"
	"time"
)

// DefaultSlotStep is the step between candidate slot start times when the
// caller does not configure one.
const DefaultSlotStep = 30 * time.Minute

// WorkingWindow is the span of a single day during which bookings are
// permitted. Open and Close are offsets from the day's midnight, so a window
// built from a local midnight keeps local working hours across DST changes.
type WorkingWindow struct {
	date  time.Time
	open  time.Duration
	close time.Duration
}

// NewWorkingWindow constructs a working window for the day starting at
// midnight. Midnight may be in any location; open and close are offsets from
// it and must satisfy 0 <= open < close <= 24h.
func NewWorkingWindow(midnight time.Time, open, close time.Duration) (WorkingWindow, error) {
	if open < 0 || close > 24*time.Hour {
		return WorkingWindow{}, fmt.Errorf("working hours must fall within the day, got open=%s close=%s", open, close)
	}
	if close <= open {
		return WorkingWindow{}, fmt.Errorf("working window close (%s) must be after open (%s)", close, open)
	}
	return WorkingWindow{date: midnight, open: open, close: close}, nil
}

// OpensAt returns the instant the window opens
func (w WorkingWindow) OpensAt() time.Time { return w.date.Add(w.open) }

// ClosesAt returns the instant the window closes
func (w WorkingWindow) ClosesAt() time.Time { return w.date.Add(w.close) }

// Span returns the window as an interval. The constructor guarantees the
// window is non-empty, so this cannot fail.
func (w WorkingWindow) Span() Interval {
	return Interval{start: w.OpensAt().UTC(), end: w.ClosesAt().UTC()}
}

// Slots yields the candidate intervals of the given duration inside the
// window, starting at the opening time and advancing by step. The sequence is
// finite, restartable and has no side effects; it is empty when the duration
// does not fit the window at all.
func Slots(window WorkingWindow, duration, step time.Duration) iter.Seq[Interval] {
	return func(yield func(Interval) bool) {
		if duration <= 0 || step <= 0 {
			return
		}
		closesAt := window.ClosesAt()
		for start := window.OpensAt(); !start.Add(duration).After(closesAt); start = start.Add(step) {
			slot, err := NewInterval(start, start.Add(duration))
			if err != nil {
				return
			}
			if !yield(slot) {
				return
			}
		}
	}
}
