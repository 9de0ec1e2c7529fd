package skills

import (
	"fmt"
	"time"

	config "github.com/inference-gateway/appointment-booking-agent/config"
	scheduling "github.com/inference-gateway/appointment-booking-agent/scheduling"
)

// Settings carries the scheduling configuration shared by all booking skills
type Settings struct {
	CalendarID        string
	Location          *time.Location
	WorkdayStart      time.Duration
	WorkdayEnd        time.Duration
	SlotStep          time.Duration
	DefaultDuration   time.Duration
	AllowPastBookings bool
	MaxSlotsDisplayed int
}

// NewSettings derives the skill settings from the application configuration
func NewSettings(cfg *config.Config) (Settings, error) {
	loc, err := cfg.Location()
	if err != nil {
		return Settings{}, fmt.Errorf("failed to load calendar timezone: %w", err)
	}

	start, err := cfg.WorkdayStart()
	if err != nil {
		return Settings{}, fmt.Errorf("failed to parse workday start: %w", err)
	}

	end, err := cfg.WorkdayEnd()
	if err != nil {
		return Settings{}, fmt.Errorf("failed to parse workday end: %w", err)
	}

	step := cfg.Scheduling.SlotStep
	if step <= 0 {
		step = scheduling.DefaultSlotStep
	}

	return Settings{
		CalendarID:        cfg.Google.CalendarID,
		Location:          loc,
		WorkdayStart:      start,
		WorkdayEnd:        end,
		SlotStep:          step,
		DefaultDuration:   cfg.Scheduling.DefaultDuration,
		AllowPastBookings: cfg.Scheduling.AllowPastBookings,
		MaxSlotsDisplayed: cfg.Scheduling.MaxSlotsDisplayed,
	}, nil
}

// midnightOf returns the start of the given date in the configured location
func (s Settings) midnightOf(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.Location)
}

// parseDate parses a YYYY-MM-DD user date in the configured location
func (s Settings) parseDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, s.Location)
}

// durationFromArgs reads an optional duration-in-minutes argument, falling
// back to the configured default. Tool arguments arrive JSON-decoded, so
// numbers are float64 and durations sometimes come as strings.
func (s Settings) durationFromArgs(args map[string]any) time.Duration {
	raw, exists := args["duration"]
	if !exists || raw == nil {
		return s.DefaultDuration
	}
	switch v := raw.(type) {
	case float64:
		if v > 0 {
			return time.Duration(v) * time.Minute
		}
	case string:
		var minutes int
		if _, err := fmt.Sscanf(v, "%d", &minutes); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return s.DefaultDuration
}
