package skills

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/inference-gateway/appointment-booking-agent/config"
	scheduling "github.com/inference-gateway/appointment-booking-agent/scheduling"
)

func TestNewSettings(t *testing.T) {
	cfg, err := config.LoadWithLookuper(context.Background(), envconfig.MapLookuper(map[string]string{
		"APP_DEMO_MODE":            "true",
		"GOOGLE_CALENDAR_ID":       "bookings@example.com",
		"GOOGLE_CALENDAR_TIMEZONE": "Europe/Berlin",
		"SCHEDULING_WORKDAY_START": "08:00",
		"SCHEDULING_WORKDAY_END":   "16:00",
	}))
	require.NoError(t, err)

	settings, err := NewSettings(cfg)
	require.NoError(t, err)

	assert.Equal(t, "bookings@example.com", settings.CalendarID)
	assert.Equal(t, "Europe/Berlin", settings.Location.String())
	assert.Equal(t, 8*time.Hour, settings.WorkdayStart)
	assert.Equal(t, 16*time.Hour, settings.WorkdayEnd)
	assert.Equal(t, 30*time.Minute, settings.SlotStep)
	assert.Equal(t, time.Hour, settings.DefaultDuration)
	assert.Equal(t, 8, settings.MaxSlotsDisplayed)
}

func TestNewSettings_SlotStepFallback(t *testing.T) {
	cfg, err := config.LoadWithLookuper(context.Background(), envconfig.MapLookuper(map[string]string{
		"APP_DEMO_MODE": "true",
	}))
	require.NoError(t, err)

	// hand-built configs may omit the step entirely
	cfg.Scheduling.SlotStep = 0

	settings, err := NewSettings(cfg)
	require.NoError(t, err)
	assert.Equal(t, scheduling.DefaultSlotStep, settings.SlotStep)
}

func TestSettings_DurationFromArgs(t *testing.T) {
	settings := testSettings()

	testCases := []struct {
		name     string
		args     map[string]any
		expected time.Duration
	}{
		{name: "missing", args: map[string]any{}, expected: time.Hour},
		{name: "nil", args: map[string]any{"duration": nil}, expected: time.Hour},
		{name: "number", args: map[string]any{"duration": float64(45)}, expected: 45 * time.Minute},
		{name: "string_minutes", args: map[string]any{"duration": "90"}, expected: 90 * time.Minute},
		{name: "zero_falls_back", args: map[string]any{"duration": float64(0)}, expected: time.Hour},
		{name: "negative_falls_back", args: map[string]any{"duration": float64(-30)}, expected: time.Hour},
		{name: "garbage_falls_back", args: map[string]any{"duration": "soon"}, expected: time.Hour},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, settings.durationFromArgs(tc.args))
		})
	}
}

func TestSettings_ParseDate(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	settings := testSettings()
	settings.Location = berlin

	date, err := settings.parseDate("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, berlin), date)

	_, err = settings.parseDate("10.01.2024")
	assert.Error(t, err)
}
