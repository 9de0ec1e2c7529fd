package skills

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/api/calendar/v3"

	google "github.com/inference-gateway/appointment-booking-agent/google"
)

func testSettings() Settings {
	return Settings{
		CalendarID:        "primary",
		Location:          time.UTC,
		WorkdayStart:      9 * time.Hour,
		WorkdayEnd:        17 * time.Hour,
		SlotStep:          30 * time.Minute,
		DefaultDuration:   time.Hour,
		AllowPastBookings: true,
		MaxSlotsDisplayed: 8,
	}
}

func seedEvent(t *testing.T, svc *google.MockCalendarService, summary string, start, end time.Time) {
	t.Helper()
	_, err := svc.CreateEvent("primary", &calendar.Event{
		Summary: summary,
		Start:   &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
	})
	require.NoError(t, err)
}

func TestCheckAvailabilityHandler_BusyMorningEvent(t *testing.T) {
	svc := google.NewMockCalendarService(zaptest.NewLogger(t))
	seedEvent(t, svc, "Standup",
		time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 10, 11, 0, 0, 0, time.UTC))

	skill := &CheckAvailabilitySkill{
		logger:   zaptest.NewLogger(t),
		calendar: svc,
		settings: testSettings(),
	}

	response, err := skill.CheckAvailabilityHandler(context.Background(), map[string]any{
		"date": "2024-01-10",
	})
	require.NoError(t, err)

	assert.Contains(t, response, "Available slots for 2024-01-10")
	assert.Contains(t, response, "09:00 - 10:00")
	assert.Contains(t, response, "11:00 - 12:00")
	assert.NotContains(t, response, "09:30 - 10:30")
	assert.NotContains(t, response, "10:00 - 11:00")
	assert.NotContains(t, response, "10:30 - 11:30")
}

func TestCheckAvailabilityHandler_CapsDisplayedSlots(t *testing.T) {
	svc := google.NewMockCalendarService(zaptest.NewLogger(t))
	skill := &CheckAvailabilitySkill{
		logger:   zaptest.NewLogger(t),
		calendar: svc,
		settings: testSettings(),
	}

	response, err := skill.CheckAvailabilityHandler(context.Background(), map[string]any{
		"date": "2024-01-10",
	})
	require.NoError(t, err)

	// 15 candidates exist on an empty day, only the first 8 are rendered
	assert.Equal(t, 8, strings.Count(response, " - "))
	assert.Contains(t, response, "09:00 - 10:00")
	assert.Contains(t, response, "12:30 - 13:30")
	assert.NotContains(t, response, "13:00 - 14:00")
}

func TestCheckAvailabilityHandler_InvalidDate(t *testing.T) {
	skill := &CheckAvailabilitySkill{
		logger:   zaptest.NewLogger(t),
		calendar: google.NewMockCalendarService(zaptest.NewLogger(t)),
		settings: testSettings(),
	}

	response, err := skill.CheckAvailabilityHandler(context.Background(), map[string]any{
		"date": "next tuesday",
	})
	require.NoError(t, err)
	assert.Contains(t, response, "YYYY-MM-DD")
}

func TestCheckAvailabilityHandler_MissingDate(t *testing.T) {
	skill := &CheckAvailabilitySkill{
		logger:   zaptest.NewLogger(t),
		calendar: google.NewMockCalendarService(zaptest.NewLogger(t)),
		settings: testSettings(),
	}

	response, err := skill.CheckAvailabilityHandler(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Contains(t, response, "which date")
}

func TestCheckAvailabilityHandler_FullyBookedDay(t *testing.T) {
	svc := google.NewMockCalendarService(zaptest.NewLogger(t))
	seedEvent(t, svc, "Offsite",
		time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 10, 17, 0, 0, 0, time.UTC))

	skill := &CheckAvailabilitySkill{
		logger:   zaptest.NewLogger(t),
		calendar: svc,
		settings: testSettings(),
	}

	response, err := skill.CheckAvailabilityHandler(context.Background(), map[string]any{
		"date": "2024-01-10",
	})
	require.NoError(t, err)
	assert.Contains(t, response, "No available slots found for 2024-01-10")
}

func TestCheckAvailabilityHandler_BackendFailure(t *testing.T) {
	svc := google.NewMockCalendarService(zaptest.NewLogger(t))
	svc.ListErr = errors.New("quota exceeded")

	skill := &CheckAvailabilitySkill{
		logger:   zaptest.NewLogger(t),
		calendar: svc,
		settings: testSettings(),
	}

	response, err := skill.CheckAvailabilityHandler(context.Background(), map[string]any{
		"date": "2024-01-10",
	})
	require.NoError(t, err, "backend failures surface as text, not tool faults")
	assert.Contains(t, response, "couldn't check the calendar")
	assert.Contains(t, response, "quota exceeded")
}

func TestCheckAvailabilityHandler_CustomDuration(t *testing.T) {
	svc := google.NewMockCalendarService(zaptest.NewLogger(t))

	skill := &CheckAvailabilitySkill{
		logger:   zaptest.NewLogger(t),
		calendar: svc,
		settings: testSettings(),
	}

	// 480-minute slots only fit once in an 8-hour day
	response, err := skill.CheckAvailabilityHandler(context.Background(), map[string]any{
		"date":     "2024-01-10",
		"duration": float64(480),
	})
	require.NoError(t, err)
	assert.Contains(t, response, "09:00 - 17:00")
	assert.NotContains(t, response, "09:30")
}
