package skills

import (
	"context"
	"fmt"
	"strings"
	"time"

	server "github.com/inference-gateway/adk/server"
	"github.com/inference-gateway/adk/types"
	zap "go.uber.org/zap"
)

// DemoTaskHandler implements the TaskHandler interface for demo mode. Without
// an LLM it routes the user's text to a booking tool by keyword matching, so
// the agent stays usable for smoke testing.
type DemoTaskHandler struct {
	toolBox *server.DefaultToolBox
	logger  *zap.Logger
	agent   server.OpenAICompatibleAgent
}

// NewDemoTaskHandler creates a new demo task handler
func NewDemoTaskHandler(toolBox *server.DefaultToolBox, logger *zap.Logger) *DemoTaskHandler {
	return &DemoTaskHandler{
		toolBox: toolBox,
		logger:  logger,
	}
}

// HandleTask processes tasks in demo mode by pattern matching and calling appropriate tools
func (d *DemoTaskHandler) HandleTask(ctx context.Context, task *types.Task, message *types.Message) (*types.Task, error) {
	d.logger.Info("Demo task handler processing task", zap.String("task_id", task.ID))

	userMessage := extractUserText(message)

	d.logger.Debug("Processing user message", zap.String("message", userMessage))

	today := time.Now().Format("2006-01-02")

	toolName, toolArgs := routeDemoMessage(userMessage, today)

	if !d.toolBox.HasTool(toolName) {
		d.logger.Error("Tool not found", zap.String("tool_name", toolName))
		return task, fmt.Errorf("tool not found: %s", toolName)
	}

	d.logger.Info("Calling tool", zap.String("tool_name", toolName), zap.Any("args", toolArgs))
	result, err := d.toolBox.ExecuteTool(ctx, toolName, toolArgs)
	if err != nil {
		d.logger.Error("Tool call failed", zap.Error(err))
		return task, fmt.Errorf("tool call failed: %w", err)
	}

	responseMsg := &types.Message{
		MessageID: fmt.Sprintf("response-%s", task.ID),
		Role:      types.RoleAgent,
		TaskID:    &task.ID,
		ContextID: &task.ContextID,
		Parts: []types.Part{
			types.CreateTextPart(result),
		},
	}

	if message != nil {
		task.History = append(task.History, *message)
	}
	task.History = append(task.History, *responseMsg)

	task.Status.State = types.TaskStateCompleted
	task.Status.Message = responseMsg
	now := time.Now()
	task.Status.Timestamp = &now

	d.logger.Info("Demo task completed successfully", zap.String("task_id", task.ID))
	return task, nil
}

// extractUserText returns the lower-cased text of the first text part of a
// user message, or "" when there is none.
func extractUserText(message *types.Message) string {
	// clients are inconsistent about the role wire value ("user" vs
	// ROLE_USER), so only agent messages are excluded
	if message == nil || message.Role == types.RoleAgent {
		return ""
	}
	for _, part := range message.Parts {
		if part.Text != nil {
			return strings.ToLower(*part.Text)
		}
	}
	return ""
}

// routeDemoMessage picks the tool and arguments for a user utterance
func routeDemoMessage(userMessage, today string) (string, map[string]any) {
	switch {
	case strings.Contains(userMessage, "book") || strings.Contains(userMessage, "schedule"):
		return "book_appointment", map[string]any{
			"title": "Demo Appointment",
			"date":  today,
			"time":  time.Now().Add(2 * time.Hour).Format("15:04"),
		}
	case strings.Contains(userMessage, "availab") || strings.Contains(userMessage, "free") || strings.Contains(userMessage, "slot"):
		return "check_availability", map[string]any{
			"date": today,
		}
	case strings.Contains(userMessage, "today") && strings.Contains(userMessage, "date"):
		return "get_current_date", map[string]any{}
	default:
		return "get_events_for_date", map[string]any{
			"date": today,
		}
	}
}

// SetAgent sets the OpenAI-compatible agent for the task handler
func (d *DemoTaskHandler) SetAgent(agent server.OpenAICompatibleAgent) {
	d.agent = agent
}

// GetAgent returns the configured OpenAI-compatible agent
func (d *DemoTaskHandler) GetAgent() server.OpenAICompatibleAgent {
	return d.agent
}
