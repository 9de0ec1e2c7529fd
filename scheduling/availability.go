package scheduling

import "time"

// AvailableSlots computes the bookable slots of the given duration inside the
// window: every candidate from Slots that overlaps none of the busy intervals,
// in ascending start-time order. An empty busy set returns all candidates; a
// duration longer than the window returns an empty slice. The scan is a plain
// candidates x busy comparison, which is plenty for a single day's worth of
// both.
func AvailableSlots(window WorkingWindow, duration, step time.Duration, busy []Interval) []Interval {
	var available []Interval
	for slot := range Slots(window, duration, step) {
		free := true
		for _, b := range busy {
			if slot.Overlaps(b) {
				free = false
				break
			}
		}
		if free {
			available = append(available, slot)
		}
	}
	return available
}
