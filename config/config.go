package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config represents the application configuration
type Config struct {
	// Google Calendar Configuration
	Google GoogleConfig `env:", prefix=GOOGLE_"`

	// Scheduling Configuration
	Scheduling SchedulingConfig `env:", prefix=SCHEDULING_"`

	// Server Configuration
	Server ServerConfig `env:", prefix=SERVER_"`

	// Logging Configuration
	Logging LoggingConfig `env:", prefix=LOG_"`

	// Application Configuration
	App AppConfig `env:", prefix=APP_"`

	// LLM Configuration
	LLM LLMConfig `env:", prefix=LLM_"`
}

// GoogleConfig holds Google Calendar API related configuration
type GoogleConfig struct {
	// CalendarID is the target Google Calendar ID to use
	CalendarID string `env:"CALENDAR_ID, default=primary"`

	// ServiceAccountJSON contains the Google Service Account credentials in JSON format
	ServiceAccountJSON string `env:"CALENDAR_SA_JSON"`

	// CredentialsPath is the path to Google credentials file (alternative to ServiceAccountJSON)
	CredentialsPath string `env:"APPLICATION_CREDENTIALS"`

	// TimeZone is the timezone for interpreting user dates/times and rendering
	// slots (e.g., "Europe/Berlin", "America/New_York"). Interval math is
	// always done in UTC.
	TimeZone string `env:"CALENDAR_TIMEZONE, default=UTC"`
}

// SchedulingConfig holds the working-window and booking policy configuration
type SchedulingConfig struct {
	// WorkdayStart is the opening time of the bookable window (HH:MM)
	WorkdayStart string `env:"WORKDAY_START, default=09:00"`

	// WorkdayEnd is the closing time of the bookable window (HH:MM)
	WorkdayEnd string `env:"WORKDAY_END, default=17:00"`

	// SlotStep is the step between candidate slot start times
	SlotStep time.Duration `env:"SLOT_STEP, default=30m"`

	// DefaultDuration is the appointment duration used when the caller omits one
	DefaultDuration time.Duration `env:"DEFAULT_DURATION, default=60m"`

	// AllowPastBookings permits creating events whose start time is in the past
	AllowPastBookings bool `env:"ALLOW_PAST_BOOKINGS, default=false"`

	// MaxSlotsDisplayed caps how many free slots the availability tool renders
	MaxSlotsDisplayed int `env:"MAX_SLOTS_DISPLAYED, default=8"`
}

// ServerConfig holds HTTP server related configuration
type ServerConfig struct {
	// Port is the port the server will listen on
	Port string `env:"PORT, default=8080"`

	// Host is the host the server will bind to
	Host string `env:"HOST, default=0.0.0.0"`
}

// LoggingConfig holds logging related configuration
type LoggingConfig struct {
	// Level sets the log level (debug, info, warn, error)
	Level string `env:"LEVEL, default=info"`

	// Format sets the log format (json, console)
	Format string `env:"FORMAT, default=json"`

	// Output sets the log output destination (stdout, stderr, file path)
	Output string `env:"OUTPUT, default=stdout"`

	// EnableCaller adds caller information to log entries
	EnableCaller bool `env:"ENABLE_CALLER, default=true"`

	// EnableStacktrace adds stacktrace to error level logs
	EnableStacktrace bool `env:"ENABLE_STACKTRACE, default=true"`
}

// AppConfig holds general application configuration
type AppConfig struct {
	// Environment specifies the deployment environment (dev, staging, prod)
	Environment string `env:"ENVIRONMENT, default=dev"`

	// DemoMode enables demo mode with mock services
	DemoMode bool `env:"DEMO_MODE, default=false"`

	// RequestTimeout sets the maximum duration for handling requests
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=30s"`
}

// LLMConfig holds LLM provider configuration for natural language processing
// Supports both Inference Gateway and OpenAI-compatible API endpoints
type LLMConfig struct {
	// GatewayURL is the URL of the Inference Gateway or OpenAI-compatible API endpoint
	GatewayURL string `env:"GATEWAY_URL, default=http://localhost:8080/v1"`

	// Provider is the LLM provider to use through the Inference Gateway
	// Supported providers: openai, anthropic, groq, ollama, deepseek, cohere, cloudflare
	Provider string `env:"PROVIDER, default=groq"`

	// Model is the specific model to use (e.g., gpt-4o, claude-3-opus, deepseek-r1-distill-llama-70b)
	Model string `env:"MODEL, default=deepseek-r1-distill-llama-70b"`

	// Timeout is the timeout for LLM requests
	Timeout time.Duration `env:"TIMEOUT, default=30s"`

	// MaxTokens is the maximum number of tokens to generate
	MaxTokens int `env:"MAX_TOKENS, default=2048"`

	// Temperature controls randomness in generation (0.0 to 2.0)
	Temperature float64 `env:"TEMPERATURE, default=0.7"`

	// Enabled determines if LLM functionality is enabled
	Enabled bool `env:"ENABLED, default=true"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadWithLookuper loads configuration using a custom lookuper (useful for testing)
func LoadWithLookuper(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if !c.App.DemoMode {
		if c.Google.ServiceAccountJSON == "" && c.Google.CredentialsPath == "" {
			return fmt.Errorf("either GOOGLE_CALENDAR_SA_JSON or GOOGLE_APPLICATION_CREDENTIALS must be provided when not in demo mode")
		}
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", c.Google.TimeZone, err)
	}

	start, err := parseTimeOfDay(c.Scheduling.WorkdayStart)
	if err != nil {
		return fmt.Errorf("invalid SCHEDULING_WORKDAY_START '%s': %w", c.Scheduling.WorkdayStart, err)
	}
	end, err := parseTimeOfDay(c.Scheduling.WorkdayEnd)
	if err != nil {
		return fmt.Errorf("invalid SCHEDULING_WORKDAY_END '%s': %w", c.Scheduling.WorkdayEnd, err)
	}
	if end <= start {
		return fmt.Errorf("SCHEDULING_WORKDAY_END (%s) must be after SCHEDULING_WORKDAY_START (%s)", c.Scheduling.WorkdayEnd, c.Scheduling.WorkdayStart)
	}

	if c.Scheduling.SlotStep <= 0 {
		return fmt.Errorf("SCHEDULING_SLOT_STEP must be positive, got %s", c.Scheduling.SlotStep)
	}
	if c.Scheduling.DefaultDuration <= 0 {
		return fmt.Errorf("SCHEDULING_DEFAULT_DURATION must be positive, got %s", c.Scheduling.DefaultDuration)
	}
	if c.Scheduling.MaxSlotsDisplayed <= 0 {
		return fmt.Errorf("SCHEDULING_MAX_SLOTS_DISPLAYED must be positive, got %d", c.Scheduling.MaxSlotsDisplayed)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level '%s', must be one of: debug, info, warn, error", c.Logging.Level)
	}

	if c.LLM.Enabled {
		if c.LLM.GatewayURL == "" {
			return fmt.Errorf("LLM_GATEWAY_URL is required when LLM is enabled")
		}
		if c.LLM.Provider == "" {
			return fmt.Errorf("LLM_PROVIDER is required when LLM is enabled")
		}

		validProviders := map[string]bool{
			"openai":     true,
			"anthropic":  true,
			"groq":       true,
			"ollama":     true,
			"deepseek":   true,
			"cohere":     true,
			"cloudflare": true,
		}
		if !validProviders[c.LLM.Provider] {
			return fmt.Errorf("invalid LLM provider '%s', must be one of: openai, anthropic, groq, ollama, deepseek, cohere, cloudflare", c.LLM.Provider)
		}

		if c.LLM.Model == "" {
			return fmt.Errorf("LLM_MODEL is required when LLM is enabled")
		}
		if c.LLM.Temperature < 0.0 || c.LLM.Temperature > 2.0 {
			return fmt.Errorf("LLM_TEMPERATURE must be between 0.0 and 2.0, got %f", c.LLM.Temperature)
		}
		if c.LLM.MaxTokens <= 0 {
			return fmt.Errorf("LLM_MAX_TOKENS must be greater than 0, got %d", c.LLM.MaxTokens)
		}
	}

	return nil
}

// GetServerAddress returns the formatted server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// IsProduction returns true if the application is running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "prod" || c.App.Environment == "production"
}

// IsDevelopment returns true if the application is running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "dev" || c.App.Environment == "development"
}

// IsDebugEnabled returns true if debug mode is enabled
func (c *Config) IsDebugEnabled() bool {
	return c.Logging.Level == "debug" || c.IsDevelopment()
}

// ShouldUseMockService returns true if mock services should be used
func (c *Config) ShouldUseMockService() bool {
	return c.App.DemoMode
}
