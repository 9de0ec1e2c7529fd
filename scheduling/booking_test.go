package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/api/calendar/v3"

	"github.com/inference-gateway/appointment-booking-agent/google"
)

func newTestBooker(t *testing.T, svc google.CalendarService) *Booker {
	t.Helper()
	booker := NewBooker(zaptest.NewLogger(t), svc, "primary", false)
	booker.now = func() time.Time {
		return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return booker
}

func TestBooker_Book_Success(t *testing.T) {
	svc := google.NewMockCalendarService(zaptest.NewLogger(t))
	booker := newTestBooker(t, svc)

	created, err := booker.Book(context.Background(), BookingRequest{
		Title:    "Standup",
		Start:    at(10, 0),
		Duration: 30 * time.Minute,
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.Id)
	assert.Equal(t, "Standup", created.Summary)
	assert.Equal(t, at(10, 0).Format(time.RFC3339), created.Start.DateTime)
	assert.Equal(t, at(10, 30).Format(time.RFC3339), created.End.DateTime)
	assert.Equal(t, 1, svc.EventCount())
}

func TestBooker_Book_ValidationErrors(t *testing.T) {
	testCases := []struct {
		name  string
		req   BookingRequest
		field string
	}{
		{
			name:  "empty_title",
			req:   BookingRequest{Start: at(10, 0), Duration: time.Hour},
			field: "title",
		},
		{
			name:  "non_positive_duration",
			req:   BookingRequest{Title: "Standup", Start: at(10, 0), Duration: 0},
			field: "duration",
		},
		{
			name:  "negative_duration",
			req:   BookingRequest{Title: "Standup", Start: at(10, 0), Duration: -time.Hour},
			field: "duration",
		},
		{
			name: "start_in_the_past",
			req: BookingRequest{
				Title:    "Standup",
				Start:    time.Date(2023, 12, 31, 10, 0, 0, 0, time.UTC),
				Duration: time.Hour,
			},
			field: "start",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := google.NewMockCalendarService(zaptest.NewLogger(t))
			booker := newTestBooker(t, svc)

			created, err := booker.Book(context.Background(), tc.req)

			require.Error(t, err)
			assert.Nil(t, created)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)
			assert.Equal(t, 0, svc.EventCount(), "no event may be created on validation failure")
		})
	}
}

func TestBooker_Book_AllowPastBookings(t *testing.T) {
	svc := google.NewMockCalendarService(zaptest.NewLogger(t))
	booker := NewBooker(zaptest.NewLogger(t), svc, "primary", true)
	booker.now = func() time.Time {
		return time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	}

	created, err := booker.Book(context.Background(), BookingRequest{
		Title:    "Retro backfill",
		Start:    at(10, 0),
		Duration: time.Hour,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.Id)
}

func TestBooker_Book_Conflict(t *testing.T) {
	svc := google.NewMockCalendarService(zaptest.NewLogger(t))
	_, err := svc.CreateEvent("primary", &calendar.Event{
		Summary: "Existing meeting",
		Start:   &calendar.EventDateTime{DateTime: at(10, 0).Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: at(11, 0).Format(time.RFC3339)},
	})
	require.NoError(t, err)

	booker := newTestBooker(t, svc)

	created, err := booker.Book(context.Background(), BookingRequest{
		Title:    "Standup",
		Start:    at(10, 30),
		Duration: time.Hour,
	})

	require.Error(t, err)
	assert.Nil(t, created)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Len(t, conflictErr.Busy, 1)
	assert.Equal(t, 1, svc.EventCount(), "no event may be created on conflict")
}

func TestBooker_Book_ConflictAcrossMidnight(t *testing.T) {
	svc := google.NewMockCalendarService(zaptest.NewLogger(t))
	_, err := svc.CreateEvent("primary", &calendar.Event{
		Summary: "On-call handover",
		Start:   &calendar.EventDateTime{DateTime: "2024-01-11T00:00:00Z"},
		End:     &calendar.EventDateTime{DateTime: "2024-01-11T01:00:00Z"},
	})
	require.NoError(t, err)

	booker := newTestBooker(t, svc)

	// starts on Jan 10, ends on Jan 11, overlapping the existing event
	created, err := booker.Book(context.Background(), BookingRequest{
		Title:    "Late sync",
		Start:    at(23, 30),
		Duration: time.Hour,
	})

	require.Error(t, err)
	assert.Nil(t, created)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Len(t, conflictErr.Busy, 1)
	assert.Equal(t, 1, svc.EventCount(), "no event may be created on conflict")
}

func TestBooker_Book_AdjacentEventIsNotAConflict(t *testing.T) {
	svc := google.NewMockCalendarService(zaptest.NewLogger(t))
	_, err := svc.CreateEvent("primary", &calendar.Event{
		Summary: "Existing meeting",
		Start:   &calendar.EventDateTime{DateTime: at(9, 0).Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: at(10, 0).Format(time.RFC3339)},
	})
	require.NoError(t, err)

	booker := newTestBooker(t, svc)

	created, err := booker.Book(context.Background(), BookingRequest{
		Title:    "Follow-up",
		Start:    at(10, 0),
		Duration: time.Hour,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.Id)
	assert.Equal(t, 2, svc.EventCount())
}

func TestBooker_Book_BackendErrors(t *testing.T) {
	t.Run("list_failure", func(t *testing.T) {
		svc := google.NewMockCalendarService(zaptest.NewLogger(t))
		svc.ListErr = errors.New("quota exceeded")
		booker := newTestBooker(t, svc)

		created, err := booker.Book(context.Background(), BookingRequest{
			Title:    "Standup",
			Start:    at(10, 0),
			Duration: time.Hour,
		})

		require.Error(t, err)
		assert.Nil(t, created)

		var backendErr *BackendError
		require.ErrorAs(t, err, &backendErr)
		assert.Equal(t, "list-events", backendErr.Op)
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("create_failure", func(t *testing.T) {
		svc := google.NewMockCalendarService(zaptest.NewLogger(t))
		svc.CreateErr = errors.New("permission denied")
		booker := newTestBooker(t, svc)

		created, err := booker.Book(context.Background(), BookingRequest{
			Title:    "Standup",
			Start:    at(10, 0),
			Duration: time.Hour,
		})

		require.Error(t, err)
		assert.Nil(t, created)

		var backendErr *BackendError
		require.ErrorAs(t, err, &backendErr)
		assert.Equal(t, "create-event", backendErr.Op)
		assert.Equal(t, 0, svc.EventCount())
	})
}
