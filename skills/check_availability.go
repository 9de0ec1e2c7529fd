package skills

import (
	"context"
	"fmt"
	"strings"

	server "github.com/inference-gateway/adk/server"
	zap "go.uber.org/zap"

	google "github.com/inference-gateway/appointment-booking-agent/google"
	scheduling "github.com/inference-gateway/appointment-booking-agent/scheduling"
)

// CheckAvailabilitySkill struct holds the skill with dependencies
type CheckAvailabilitySkill struct {
	logger   *zap.Logger
	calendar google.CalendarService
	settings Settings
}

// NewCheckAvailabilitySkill creates a new check_availability skill
func NewCheckAvailabilitySkill(logger *zap.Logger, calendar google.CalendarService, settings Settings) server.Tool {
	skill := &CheckAvailabilitySkill{
		logger:   logger,
		calendar: calendar,
		settings: settings,
	}
	return server.NewBasicTool(
		"check_availability",
		"Check available time slots for a specific date. Use YYYY-MM-DD format.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"date": map[string]any{
					"description": "Date to check (YYYY-MM-DD format, e.g., 2024-01-10)",
					"type":        "string",
				},
				"duration": map[string]any{
					"description": "Desired appointment duration in minutes (default: 60)",
					"maximum":     480,
					"minimum":     15,
					"type":        "integer",
				},
			},
			"required": []string{"date"},
		},
		skill.CheckAvailabilityHandler,
	)
}

// CheckAvailabilityHandler handles the check_availability skill execution.
// Failures are rendered as conversational text so the agent can relay them.
func (s *CheckAvailabilitySkill) CheckAvailabilityHandler(ctx context.Context, args map[string]any) (string, error) {
	s.logger.Debug("checking availability", zap.Any("args", args))

	dateStr, ok := args["date"].(string)
	if !ok || dateStr == "" {
		return "Please tell me which date to check, in YYYY-MM-DD format.", nil
	}

	date, err := s.settings.parseDate(dateStr)
	if err != nil {
		return fmt.Sprintf("I couldn't understand the date '%s'. Please use YYYY-MM-DD format.", dateStr), nil
	}

	duration := s.settings.durationFromArgs(args)

	window, err := scheduling.NewWorkingWindow(s.settings.midnightOf(date), s.settings.WorkdayStart, s.settings.WorkdayEnd)
	if err != nil {
		s.logger.Error("invalid working window configuration", zap.Error(err))
		return "The booking calendar is misconfigured. Please try again later.", nil
	}

	span := window.Span()
	events, err := s.calendar.ListEvents(s.settings.CalendarID, span.Start(), span.End())
	if err != nil {
		s.logger.Error("failed to list events for availability check", zap.Error(err))
		return fmt.Sprintf("Sorry, I couldn't check the calendar right now: %v", err), nil
	}

	slots := scheduling.AvailableSlots(window, duration, s.settings.SlotStep, scheduling.BusyIntervals(events))

	s.logger.Info("availability computed",
		zap.String("date", dateStr),
		zap.Duration("duration", duration),
		zap.Int("slotCount", len(slots)))

	if len(slots) == 0 {
		return fmt.Sprintf("No available slots found for %s. Please try another date.", dateStr), nil
	}

	shown := slots
	if len(shown) > s.settings.MaxSlotsDisplayed {
		shown = shown[:s.settings.MaxSlotsDisplayed]
	}

	lines := make([]string, 0, len(shown))
	for _, slot := range shown {
		lines = append(lines, slot.Clock(s.settings.Location))
	}

	return fmt.Sprintf("Available slots for %s:\n%s", dateStr, strings.Join(lines, "\n")), nil
}
