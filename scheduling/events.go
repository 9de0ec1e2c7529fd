package scheduling

import (
	"time"

	"google.golang.org/api/calendar/v3"
)

// BusyIntervals converts calendar events into busy intervals. Timed events use
// their dateTime bounds; all-day events block the whole day. Events with
// missing or unparsable bounds are skipped rather than failing the whole
// computation.
func BusyIntervals(events []*calendar.Event) []Interval {
	var busy []Interval
	for _, event := range events {
		if event == nil || event.Start == nil || event.End == nil {
			continue
		}

		start, ok := parseEventBound(event.Start)
		if !ok {
			continue
		}
		end, ok := parseEventBound(event.End)
		if !ok {
			continue
		}

		interval, err := NewInterval(start, end)
		if err != nil {
			continue
		}
		busy = append(busy, interval)
	}
	return busy
}

func parseEventBound(bound *calendar.EventDateTime) (time.Time, bool) {
	if bound.DateTime != "" {
		t, err := time.Parse(time.RFC3339, bound.DateTime)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	if bound.Date != "" {
		t, err := time.Parse("2006-01-02", bound.Date)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}
