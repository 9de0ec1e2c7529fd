package skills

import (
	"context"
	"time"

	server "github.com/inference-gateway/adk/server"
	zap "go.uber.org/zap"
)

// GetCurrentDateSkill struct holds the skill with dependencies
type GetCurrentDateSkill struct {
	logger   *zap.Logger
	location *time.Location
	now      func() time.Time
}

// NewGetCurrentDateSkill creates a new get_current_date skill
func NewGetCurrentDateSkill(logger *zap.Logger, location *time.Location) server.Tool {
	skill := &GetCurrentDateSkill{
		logger:   logger,
		location: location,
		now:      time.Now,
	}
	return server.NewBasicTool(
		"get_current_date",
		"Get the current date in YYYY-MM-DD format",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		skill.GetCurrentDateHandler,
	)
}

// GetCurrentDateHandler handles the get_current_date skill execution
func (s *GetCurrentDateSkill) GetCurrentDateHandler(ctx context.Context, args map[string]any) (string, error) {
	today := s.now().In(s.location).Format("2006-01-02")
	s.logger.Debug("reporting current date", zap.String("date", today))
	return today, nil
}
