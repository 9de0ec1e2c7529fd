package config

import (
	"fmt"
	"strings"
	"time"
)

// parseTimeOfDay parses an HH:MM string into an offset from midnight
func parseTimeOfDay(value string) (time.Duration, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM format: %w", err)
	}
	return time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute, nil
}

// WorkdayStart returns the configured workday opening time as an offset from midnight
func (c *Config) WorkdayStart() (time.Duration, error) {
	return parseTimeOfDay(c.Scheduling.WorkdayStart)
}

// WorkdayEnd returns the configured workday closing time as an offset from midnight
func (c *Config) WorkdayEnd() (time.Duration, error) {
	return parseTimeOfDay(c.Scheduling.WorkdayEnd)
}

// Location returns the configured calendar timezone location
func (c *Config) Location() (*time.Location, error) {
	if c.Google.TimeZone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Google.TimeZone)
}

// GetGoogleCredentialsOption returns the appropriate Google API credential option
func (c *Config) GetGoogleCredentialsOption() (string, string, error) {
	if c.ShouldUseMockService() {
		return "", "", nil
	}

	if c.Google.ServiceAccountJSON != "" {
		return "json", c.Google.ServiceAccountJSON, nil
	}

	if c.Google.CredentialsPath != "" {
		return "file", c.Google.CredentialsPath, nil
	}

	return "", "", fmt.Errorf("no Google credentials configured")
}

// GetLogLevel returns the zap log level equivalent
func (c *Config) GetLogLevel() string {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return "debug"
	case "info":
		return "info"
	case "warn", "warning":
		return "warn"
	case "error":
		return "error"
	default:
		return "info"
	}
}
