package skills

import (
	"context"
	"fmt"
	"strings"
	"time"

	server "github.com/inference-gateway/adk/server"
	zap "go.uber.org/zap"
	calendar "google.golang.org/api/calendar/v3"

	google "github.com/inference-gateway/appointment-booking-agent/google"
)

// GetEventsForDateSkill struct holds the skill with dependencies
type GetEventsForDateSkill struct {
	logger   *zap.Logger
	calendar google.CalendarService
	settings Settings
}

// NewGetEventsForDateSkill creates a new get_events_for_date skill
func NewGetEventsForDateSkill(logger *zap.Logger, calendar google.CalendarService, settings Settings) server.Tool {
	skill := &GetEventsForDateSkill{
		logger:   logger,
		calendar: calendar,
		settings: settings,
	}
	return server.NewBasicTool(
		"get_events_for_date",
		"Get existing events for a specific date. Use YYYY-MM-DD format.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"date": map[string]any{
					"description": "Date to list events for (YYYY-MM-DD format)",
					"type":        "string",
				},
			},
			"required": []string{"date"},
		},
		skill.GetEventsForDateHandler,
	)
}

// GetEventsForDateHandler handles the get_events_for_date skill execution
func (s *GetEventsForDateSkill) GetEventsForDateHandler(ctx context.Context, args map[string]any) (string, error) {
	s.logger.Debug("getting events for date", zap.Any("args", args))

	dateStr, ok := args["date"].(string)
	if !ok || dateStr == "" {
		return "Please tell me which date to look at, in YYYY-MM-DD format.", nil
	}

	date, err := s.settings.parseDate(dateStr)
	if err != nil {
		return fmt.Sprintf("I couldn't understand the date '%s'. Please use YYYY-MM-DD format.", dateStr), nil
	}

	// next midnight, not +24h, so DST-transition days keep their full span
	dayStart := s.settings.midnightOf(date)
	dayEnd := s.settings.midnightOf(date.AddDate(0, 0, 1))
	events, err := s.calendar.ListEvents(s.settings.CalendarID, dayStart.UTC(), dayEnd.UTC())
	if err != nil {
		s.logger.Error("failed to list events", zap.Error(err))
		return fmt.Sprintf("Sorry, I couldn't read the calendar right now: %v", err), nil
	}

	s.logger.Info("events listed", zap.String("date", dateStr), zap.Int("eventCount", len(events)))

	if len(events) == 0 {
		return fmt.Sprintf("No events found for %s", dateStr), nil
	}

	lines := make([]string, 0, len(events))
	for _, event := range events {
		lines = append(lines, fmt.Sprintf("- %s at %s", eventTitle(event), s.eventStart(event)))
	}

	return fmt.Sprintf("Events for %s:\n%s", dateStr, strings.Join(lines, "\n")), nil
}

func eventTitle(event *calendar.Event) string {
	if event.Summary == "" {
		return "No Title"
	}
	return event.Summary
}

// eventStart renders the event start as a wall-clock time in the configured
// timezone, or "all day" for date-only events
func (s *GetEventsForDateSkill) eventStart(event *calendar.Event) string {
	if event.Start == nil {
		return "unknown time"
	}
	if event.Start.DateTime != "" {
		if start, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
			return start.In(s.settings.Location).Format("15:04")
		}
		return event.Start.DateTime
	}
	if event.Start.Date != "" {
		return "all day"
	}
	return "unknown time"
}
