package scheduling

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"

	"github.com/inference-gateway/appointment-booking-agent/google"
)

// BookingRequest describes the appointment to create
type BookingRequest struct {
	Title       string
	Description string
	Start       time.Time
	Duration    time.Duration
}

// Booker validates booking requests, guards against double-booking and
// delegates persistence to the calendar backend. It holds no mutable state,
// so concurrent calls from independent sessions are safe; the window between
// the conflict check and the backend insert is an accepted limitation, since
// the backend offers no transactional create.
type Booker struct {
	logger     *zap.Logger
	calendar   google.CalendarService
	calendarID string
	allowPast  bool

	now func() time.Time
}

// NewBooker creates a booking operation bound to one calendar
func NewBooker(logger *zap.Logger, calendar google.CalendarService, calendarID string, allowPast bool) *Booker {
	return &Booker{
		logger:     logger,
		calendar:   calendar,
		calendarID: calendarID,
		allowPast:  allowPast,
		now:        time.Now,
	}
}

// Book validates the request, rejects it if the interval collides with an
// existing event, and otherwise creates exactly one event in
// the backend, returning it with its assigned identifier. On any failure no
// event is created. Errors are *ValidationError, *ConflictError or
// *BackendError.
func (b *Booker) Book(ctx context.Context, req BookingRequest) (*calendar.Event, error) {
	if req.Title == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if req.Duration <= 0 {
		return nil, &ValidationError{Field: "duration", Reason: "must be positive"}
	}

	interval, err := NewInterval(req.Start, req.Start.Add(req.Duration))
	if err != nil {
		return nil, &ValidationError{Field: "interval", Reason: err.Error()}
	}

	if !b.allowPast && interval.Start().Before(b.now().UTC()) {
		return nil, &ValidationError{Field: "start", Reason: "must not be in the past"}
	}

	events, err := b.calendar.ListEvents(b.calendarID, interval.Start(), interval.End())
	if err != nil {
		return nil, &BackendError{Op: "list-events", Err: err}
	}

	var conflicts []Interval
	for _, busy := range BusyIntervals(events) {
		if interval.Overlaps(busy) {
			conflicts = append(conflicts, busy)
		}
	}
	if len(conflicts) > 0 {
		b.logger.Info("booking rejected due to conflicts",
			zap.String("title", req.Title),
			zap.String("requested", interval.String()),
			zap.Int("conflictCount", len(conflicts)))
		return nil, &ConflictError{Requested: interval, Busy: conflicts}
	}

	event := &calendar.Event{
		Summary:     req.Title,
		Description: req.Description,
		Start: &calendar.EventDateTime{
			DateTime: interval.Start().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &calendar.EventDateTime{
			DateTime: interval.End().Format(time.RFC3339),
			TimeZone: "UTC",
		},
	}

	created, err := b.calendar.CreateEvent(b.calendarID, event)
	if err != nil {
		return nil, &BackendError{Op: "create-event", Err: err}
	}

	b.logger.Info("appointment booked",
		zap.String("eventID", created.Id),
		zap.String("title", created.Summary),
		zap.String("interval", interval.String()))

	return created, nil
}
