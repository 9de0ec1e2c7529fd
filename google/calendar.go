package google

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// CalendarService is the calendar backend consumed by the scheduling core.
// Implementations persist events and report the ones already on the calendar.
type CalendarService interface {
	ListEvents(calendarID string, timeMin, timeMax time.Time) ([]*calendar.Event, error)
	CreateEvent(calendarID string, event *calendar.Event) (*calendar.Event, error)
}

// CalendarServiceImpl implements the calendar service interface for Google Calendar API
type CalendarServiceImpl struct {
	service *calendar.Service
	logger  *zap.Logger
}

// NewCalendarService creates a new Google Calendar service
func NewCalendarService(ctx context.Context, logger *zap.Logger, opts ...option.ClientOption) (CalendarService, error) {
	scopesOption := option.WithScopes(
		calendar.CalendarReadonlyScope,
		calendar.CalendarScope,
	)

	allOptions := append([]option.ClientOption{scopesOption}, opts...)

	svc, err := calendar.NewService(ctx, allOptions...)
	if err != nil {
		return nil, fmt.Errorf("unable to create calendar service: %w", err)
	}
	return &CalendarServiceImpl{service: svc, logger: logger}, nil
}

// ListEvents retrieves events from the calendar within the specified time range
func (g *CalendarServiceImpl) ListEvents(calendarID string, timeMin, timeMax time.Time) ([]*calendar.Event, error) {
	g.logger.Debug("listing events",
		zap.String("component", "google-calendar-service"),
		zap.String("operation", "list-events"),
		zap.String("calendarID", calendarID),
		zap.Time("timeMin", timeMin),
		zap.Time("timeMax", timeMax))

	events, err := g.service.Events.List(calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		OrderBy("startTime").
		SingleEvents(true).
		Do()
	if err != nil {
		g.logger.Error("failed to retrieve events from google calendar api",
			zap.String("component", "google-calendar-service"),
			zap.String("operation", "list-events"),
			zap.String("calendarID", calendarID),
			zap.Error(err))
		return nil, fmt.Errorf("unable to retrieve events: %w", err)
	}

	g.logger.Info("successfully retrieved events",
		zap.String("component", "google-calendar-service"),
		zap.String("operation", "list-events"),
		zap.String("calendarID", calendarID),
		zap.Int("eventCount", len(events.Items)))

	return events.Items, nil
}

// CreateEvent creates a new event in the calendar
func (g *CalendarServiceImpl) CreateEvent(calendarID string, event *calendar.Event) (*calendar.Event, error) {
	g.logger.Debug("creating event",
		zap.String("component", "google-calendar-service"),
		zap.String("operation", "create-event"),
		zap.String("calendarID", calendarID),
		zap.String("eventSummary", event.Summary),
		zap.String("eventStart", event.Start.DateTime))

	createdEvent, err := g.service.Events.Insert(calendarID, event).Do()
	if err != nil {
		g.logger.Error("failed to create event in google calendar api",
			zap.String("component", "google-calendar-service"),
			zap.String("operation", "create-event"),
			zap.String("calendarID", calendarID),
			zap.String("eventSummary", event.Summary),
			zap.Error(err))
		return nil, fmt.Errorf("unable to create event: %w", err)
	}

	g.logger.Info("successfully created event",
		zap.String("component", "google-calendar-service"),
		zap.String("operation", "create-event"),
		zap.String("calendarID", calendarID),
		zap.String("eventID", createdEvent.Id),
		zap.String("eventSummary", createdEvent.Summary))

	return createdEvent, nil
}
