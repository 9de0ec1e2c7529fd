package skills

import (
	"context"
	"errors"
	"fmt"
	"time"

	server "github.com/inference-gateway/adk/server"
	zap "go.uber.org/zap"

	scheduling "github.com/inference-gateway/appointment-booking-agent/scheduling"
)

// BookAppointmentSkill struct holds the skill with dependencies
type BookAppointmentSkill struct {
	logger   *zap.Logger
	booker   *scheduling.Booker
	settings Settings
}

// NewBookAppointmentSkill creates a new book_appointment skill
func NewBookAppointmentSkill(logger *zap.Logger, booker *scheduling.Booker, settings Settings) server.Tool {
	skill := &BookAppointmentSkill{
		logger:   logger,
		booker:   booker,
		settings: settings,
	}
	return server.NewBasicTool(
		"book_appointment",
		"Book an appointment. Requires title, date (YYYY-MM-DD), time (HH:MM), and optional duration in minutes (default 60).",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"date": map[string]any{
					"description": "Appointment date (YYYY-MM-DD format)",
					"type":        "string",
				},
				"description": map[string]any{
					"description": "Appointment description. Optional.",
					"type":        "string",
				},
				"duration": map[string]any{
					"description": "Duration in minutes (default: 60)",
					"maximum":     480,
					"minimum":     15,
					"type":        "integer",
				},
				"time": map[string]any{
					"description": "Appointment start time (HH:MM, 24-hour format)",
					"type":        "string",
				},
				"title": map[string]any{
					"description": "Appointment title (required)",
					"type":        "string",
				},
			},
			"required": []string{"title", "date", "time"},
		},
		skill.BookAppointmentHandler,
	)
}

// BookAppointmentHandler handles the book_appointment skill execution. Every
// outcome, including validation and backend failures, is returned as a
// conversational message rather than a tool fault.
func (s *BookAppointmentSkill) BookAppointmentHandler(ctx context.Context, args map[string]any) (string, error) {
	s.logger.Debug("booking appointment", zap.Any("args", args))

	title, ok := args["title"].(string)
	if !ok || title == "" {
		return "I need a title for the appointment before I can book it.", nil
	}

	dateStr, ok := args["date"].(string)
	if !ok || dateStr == "" {
		return "I need the appointment date in YYYY-MM-DD format.", nil
	}

	timeStr, ok := args["time"].(string)
	if !ok || timeStr == "" {
		return "I need the appointment start time in HH:MM format.", nil
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", fmt.Sprintf("%s %s", dateStr, timeStr), s.settings.Location)
	if err != nil {
		return fmt.Sprintf("I couldn't understand '%s %s'. Please use YYYY-MM-DD for the date and HH:MM for the time.", dateStr, timeStr), nil
	}

	description := ""
	if desc, exists := args["description"]; exists && desc != nil {
		description, _ = desc.(string)
	}

	created, err := s.booker.Book(ctx, scheduling.BookingRequest{
		Title:       title,
		Description: description,
		Start:       start,
		Duration:    s.settings.durationFromArgs(args),
	})
	if err != nil {
		return s.bookingFailureMessage(title, dateStr, timeStr, err), nil
	}

	s.logger.Info("appointment booked via skill",
		zap.String("eventId", created.Id),
		zap.String("title", created.Summary))

	return fmt.Sprintf("✅ Appointment '%s' booked successfully for %s at %s! (event ID: %s)", title, dateStr, timeStr, created.Id), nil
}

func (s *BookAppointmentSkill) bookingFailureMessage(title, dateStr, timeStr string, err error) string {
	var validationErr *scheduling.ValidationError
	var conflictErr *scheduling.ConflictError
	var backendErr *scheduling.BackendError

	switch {
	case errors.As(err, &validationErr):
		s.logger.Info("booking rejected by validation", zap.String("field", validationErr.Field), zap.Error(err))
		return fmt.Sprintf("❌ I can't book that: %s %s.", validationErr.Field, validationErr.Reason)
	case errors.As(err, &conflictErr):
		s.logger.Info("booking rejected due to conflict", zap.String("title", title), zap.Error(err))
		lines := ""
		for _, busy := range conflictErr.Busy {
			lines += fmt.Sprintf("\n- %s", busy.Clock(s.settings.Location))
		}
		return fmt.Sprintf("❌ The %s slot on %s is already booked. Busy during:%s\nPlease pick another slot.", timeStr, dateStr, lines)
	case errors.As(err, &backendErr):
		s.logger.Error("booking failed at calendar backend", zap.String("title", title), zap.Error(err))
		return fmt.Sprintf("❌ Failed to book appointment: %v", backendErr.Err)
	default:
		s.logger.Error("booking failed", zap.String("title", title), zap.Error(err))
		return fmt.Sprintf("❌ Failed to book appointment: %v", err)
	}
}
