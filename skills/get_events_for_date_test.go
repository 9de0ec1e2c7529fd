package skills

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/api/calendar/v3"

	google "github.com/inference-gateway/appointment-booking-agent/google"
)

func newEventsSkill(t *testing.T, svc *google.MockCalendarService) *GetEventsForDateSkill {
	t.Helper()
	return &GetEventsForDateSkill{
		logger:   zaptest.NewLogger(t),
		calendar: svc,
		settings: testSettings(),
	}
}

func TestGetEventsForDateHandler_ListsEvents(t *testing.T) {
	svc := google.NewMockCalendarService(zaptest.NewLogger(t))
	seedEvent(t, svc, "Standup",
		time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 10, 10, 30, 0, 0, time.UTC))
	seedEvent(t, svc, "Design Review",
		time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC))
	// An event on another day must not show up
	seedEvent(t, svc, "Next-day sync",
		time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 11, 10, 0, 0, 0, time.UTC))

	skill := newEventsSkill(t, svc)

	response, err := skill.GetEventsForDateHandler(context.Background(), map[string]any{
		"date": "2024-01-10",
	})
	require.NoError(t, err)

	assert.Contains(t, response, "Events for 2024-01-10:")
	assert.Contains(t, response, "- Standup at 10:00")
	assert.Contains(t, response, "- Design Review at 14:00")
	assert.NotContains(t, response, "Next-day sync")
}

func TestGetEventsForDateHandler_EmptyDay(t *testing.T) {
	skill := newEventsSkill(t, google.NewMockCalendarService(zaptest.NewLogger(t)))

	response, err := skill.GetEventsForDateHandler(context.Background(), map[string]any{
		"date": "2024-01-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "No events found for 2024-01-10", response)
}

func TestGetEventsForDateHandler_UntitledEvent(t *testing.T) {
	svc := google.NewMockCalendarService(zaptest.NewLogger(t))
	seedEvent(t, svc, "",
		time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 10, 11, 0, 0, 0, time.UTC))

	skill := newEventsSkill(t, svc)

	response, err := skill.GetEventsForDateHandler(context.Background(), map[string]any{
		"date": "2024-01-10",
	})
	require.NoError(t, err)
	assert.Contains(t, response, "- No Title at 10:00")
}

func TestGetEventsForDateHandler_InvalidDate(t *testing.T) {
	skill := newEventsSkill(t, google.NewMockCalendarService(zaptest.NewLogger(t)))

	response, err := skill.GetEventsForDateHandler(context.Background(), map[string]any{
		"date": "someday",
	})
	require.NoError(t, err)
	assert.Contains(t, response, "YYYY-MM-DD")
}

func TestGetEventsForDateHandler_BackendFailure(t *testing.T) {
	svc := google.NewMockCalendarService(zaptest.NewLogger(t))
	svc.ListErr = errors.New("network unreachable")

	skill := newEventsSkill(t, svc)

	response, err := skill.GetEventsForDateHandler(context.Background(), map[string]any{
		"date": "2024-01-10",
	})
	require.NoError(t, err)
	assert.Contains(t, response, "couldn't read the calendar")
	assert.Contains(t, response, "network unreachable")
}

func TestEventStart_AllDayEvent(t *testing.T) {
	skill := newEventsSkill(t, google.NewMockCalendarService(zaptest.NewLogger(t)))

	rendered := skill.eventStart(&calendar.Event{
		Start: &calendar.EventDateTime{Date: "2024-01-10"},
	})
	assert.Equal(t, "all day", rendered)
}

func TestGetCurrentDateHandler(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	skill := &GetCurrentDateSkill{
		logger:   zaptest.NewLogger(t),
		location: berlin,
		now: func() time.Time {
			// 23:30 UTC is already the next day in Berlin
			return time.Date(2024, 1, 10, 23, 30, 0, 0, time.UTC)
		},
	}

	response, err := skill.GetCurrentDateHandler(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-11", response)
}
