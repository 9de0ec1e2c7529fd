package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	server "github.com/inference-gateway/adk/server"
	serverconfig "github.com/inference-gateway/adk/server/config"
	types "github.com/inference-gateway/adk/types"
	zap "go.uber.org/zap"
	option "google.golang.org/api/option"

	config "github.com/inference-gateway/appointment-booking-agent/config"
	google "github.com/inference-gateway/appointment-booking-agent/google"
	credentials "github.com/inference-gateway/appointment-booking-agent/internal/google"
	logging "github.com/inference-gateway/appointment-booking-agent/internal/logging"
	scheduling "github.com/inference-gateway/appointment-booking-agent/scheduling"
	skills "github.com/inference-gateway/appointment-booking-agent/skills"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	fmt.Printf("🗓️  Starting Appointment Booking A2A Agent v%s (commit: %s, built: %s)\n", version, commit, date)

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			_ = err
		}
	}()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.App.Environment),
		zap.Bool("debug", cfg.IsDebugEnabled()),
		zap.Bool("demo_mode", cfg.App.DemoMode),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("timezone", cfg.Google.TimeZone))

	if err := credentials.CreateCredentialsFile(logger, cfg); err != nil {
		logger.Fatal("Failed to prepare Google credentials", zap.Error(err))
	}

	settings, err := skills.NewSettings(cfg)
	if err != nil {
		logger.Fatal("Failed to derive scheduling settings", zap.Error(err))
	}

	calendarService, err := newCalendarService(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create calendar service", zap.Error(err))
	}

	booker := scheduling.NewBooker(logger, calendarService, settings.CalendarID, settings.AllowPastBookings)

	toolBox := server.NewDefaultToolBox(nil)
	toolBox.AddTool(skills.NewCheckAvailabilitySkill(logger, calendarService, settings))
	toolBox.AddTool(skills.NewBookAppointmentSkill(logger, booker, settings))
	toolBox.AddTool(skills.NewGetCurrentDateSkill(logger, settings.Location))
	toolBox.AddTool(skills.NewGetEventsForDateSkill(logger, calendarService, settings))

	serverCfg := serverconfig.Config{
		AgentName:        "Appointment Booking Agent",
		AgentDescription: "AI agent that books calendar appointments: checking availability, listing a day's events, and creating conflict-free bookings",
		AgentVersion:     version,
		QueueConfig: serverconfig.QueueConfig{
			CleanupInterval: time.Minute * 5,
		},
		ServerConfig: serverconfig.ServerConfig{
			Port: cfg.Server.Port,
		},
	}

	if cfg.LLM.Enabled && cfg.LLM.GatewayURL != "" && !cfg.App.DemoMode {
		serverCfg.AgentConfig = serverconfig.AgentConfig{
			BaseURL:     cfg.LLM.GatewayURL,
			Provider:    cfg.LLM.Provider,
			APIKey:      "",
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
			CustomHeaders: map[string]string{
				"X-A2A-Bypass": "true",
			},
			MaxChatCompletionIterations: 20,
			MaxConversationHistory:      20,
			MaxRetries:                  10,
			Timeout:                     cfg.LLM.Timeout,
		}
		logger.Info("Configuring agent with LLM client",
			zap.String("base_url", cfg.LLM.GatewayURL),
			zap.String("provider", cfg.LLM.Provider),
			zap.String("model", cfg.LLM.Model),
			zap.Duration("timeout", cfg.LLM.Timeout))
	} else if cfg.App.DemoMode {
		serverCfg.AgentConfig = serverconfig.AgentConfig{
			Provider:                    "demo",
			Model:                       "demo-model",
			APIKey:                      "demo-key",
			Temperature:                 0.7,
			MaxTokens:                   4096,
			MaxChatCompletionIterations: 20,
			MaxConversationHistory:      20,
			MaxRetries:                  3,
			Timeout:                     time.Second * 30,
		}
		logger.Info("LLM configured in demo mode - agent will use mock responses")
	}
	if cfg.IsDebugEnabled() {
		serverCfg.Debug = true
	}

	systemPrompt := buildSystemPrompt(cfg)

	card := agentCard(serverCfg, cfg.Server.Port)

	var a2aServer server.A2AServer
	if cfg.App.DemoMode {
		demoHandler := skills.NewDemoTaskHandler(toolBox, logger)

		a2aServer, err = server.NewA2AServerBuilder(serverCfg, logger).
			WithBackgroundTaskHandler(demoHandler).
			WithAgentCard(card).
			Build()
		if err != nil {
			logger.Fatal("Failed to create A2A server", zap.Error(err))
		}
	} else {
		agentInstance, err := server.NewAgentBuilder(logger).
			WithConfig(&serverCfg.AgentConfig).
			WithSystemPrompt(systemPrompt).
			WithToolBox(toolBox).
			WithMaxConversationHistory(20).
			WithMaxChatCompletion(10).
			Build()
		if err != nil {
			logger.Fatal("Failed to create OpenAI-compatible agent", zap.Error(err))
		}

		a2aServer, err = server.NewA2AServerBuilder(serverCfg, logger).
			WithAgent(agentInstance).
			WithDefaultBackgroundTaskHandler().
			WithAgentCard(card).
			Build()
		if err != nil {
			logger.Fatal("Failed to create A2A server", zap.Error(err))
		}
	}

	if cfg.LLM.Enabled && cfg.LLM.GatewayURL != "" && !cfg.App.DemoMode {
		logger.Info("✅ Appointment booking agent created with AI capabilities",
			zap.String("provider", cfg.LLM.Provider),
			zap.String("model", cfg.LLM.Model),
			zap.String("gateway_url", cfg.LLM.GatewayURL))
	} else if cfg.App.DemoMode {
		logger.Info("✅ Appointment booking agent created in demo mode (AI disabled)")
	} else {
		logger.Info("✅ Appointment booking agent created with default capabilities")
	}

	printStartupInfo(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := a2aServer.Start(ctx); err != nil {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := a2aServer.Stop(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("✅ Goodbye!")
}

// newCalendarService builds the real Google Calendar backend, or the
// in-memory one in demo mode. In development a backend failure degrades to
// the in-memory service instead of aborting startup.
func newCalendarService(ctx context.Context, cfg *config.Config, logger *zap.Logger) (google.CalendarService, error) {
	if cfg.ShouldUseMockService() {
		logger.Info("Calendar service initialized in demo mode")
		return google.NewDemoCalendarService(logger, time.Now()), nil
	}

	var opts []option.ClientOption
	if cfg.Google.ServiceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.Google.ServiceAccountJSON)))
	} else if cfg.Google.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Google.CredentialsPath))
	}

	svc, err := google.NewCalendarService(ctx, logger, opts...)
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("Failed to initialize Google Calendar service, falling back to in-memory calendar", zap.Error(err))
			return google.NewDemoCalendarService(logger, time.Now()), nil
		}
		return nil, err
	}

	logger.Info("✅ Google Calendar service initialized successfully")
	return svc, nil
}

// agentCard describes this agent to A2A clients. Streaming is disabled, so
// the background task handler serves every request.
func agentCard(serverCfg serverconfig.Config, port string) types.AgentCard {
	if port == "" {
		port = "8080"
	}
	return types.AgentCard{
		Name:            serverCfg.AgentName,
		Description:     serverCfg.AgentDescription,
		Version:         serverCfg.AgentVersion,
		URL:             server.StringPtr(fmt.Sprintf("http://localhost:%s", port)),
		ProtocolVersion: "0.3.0",
		Capabilities: types.AgentCapabilities{
			Streaming:              boolPtr(false),
			PushNotifications:      boolPtr(false),
			StateTransitionHistory: boolPtr(false),
		},
		DefaultInputModes:  []string{"text/plain"},
		DefaultOutputModes: []string{"text/plain"},
		Skills: []types.AgentSkill{
			{ID: "check_availability", Name: "check_availability", Description: "List free time slots for a date", Tags: []string{"calendar", "availability"}},
			{ID: "book_appointment", Name: "book_appointment", Description: "Book an appointment in a free slot", Tags: []string{"calendar", "booking"}},
			{ID: "get_current_date", Name: "get_current_date", Description: "Get today's date", Tags: []string{"calendar"}},
			{ID: "get_events_for_date", Name: "get_events_for_date", Description: "List a day's existing events", Tags: []string{"calendar", "events"}},
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func buildSystemPrompt(cfg *config.Config) string {
	currentTime := time.Now().Format("Monday, January 2, 2006 at 15:04 MST")
	return fmt.Sprintf(`Today is %s. You are a helpful calendar booking assistant. Your job is to help users book appointments on their calendar through natural conversation.

ALWAYS use tools - never provide responses without tool interactions.

Available tools:
- check_availability - List free time slots for a date
- book_appointment - Book an appointment (ALWAYS check availability first)
- get_current_date - Get today's date
- get_events_for_date - List a day's existing events

Guidelines:
- Always be conversational and friendly
- Ask for missing information (title, date, time) before booking
- Suggest available time slots when asked
- Confirm booking details before creating the appointment
- Use proper date format (YYYY-MM-DD) and time format (HH:MM)
- Default appointment duration is %d minutes unless specified otherwise
- Working hours are %s to %s

When a user wants to book an appointment:
1. Get the appointment title/purpose
2. Get the preferred date
3. Check availability for that date
4. Get the preferred time from available slots
5. Confirm and book the appointment

Be helpful and guide users through the booking process step by step.`,
		currentTime,
		int(cfg.Scheduling.DefaultDuration.Minutes()),
		cfg.Scheduling.WorkdayStart,
		cfg.Scheduling.WorkdayEnd)
}

func printStartupInfo(cfg *config.Config) {
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}

	fmt.Printf("\n🌐 Appointment booking agent running on port %s\n", port)
	fmt.Printf("\n🎯 Available endpoints:\n")
	fmt.Printf("📋 Agent info: http://localhost:%s/.well-known/agent.json\n", port)
	fmt.Printf("💚 Health check: http://localhost:%s/health\n", port)
	fmt.Printf("📡 A2A endpoint: http://localhost:%s/a2a\n", port)

	fmt.Println("\n📝 Example A2A request:")
	fmt.Printf(`curl -X POST http://localhost:%s/a2a \
  -H "Content-Type: application/json" \
  -d '{
    "jsonrpc": "2.0",
    "method": "message/send",
    "params": {
      "message": {
        "role": "user",
        "messageId": "msg-1",
        "parts": [
          {
            "text": "What slots are free tomorrow?"
          }
        ]
      }
    },
    "id": 1
  }'`, port)
	fmt.Println()

	fmt.Println("\n📦 Booking Tools Available:")
	fmt.Println("• check_availability - List free time slots for a date")
	fmt.Println("• book_appointment - Book an appointment")
	fmt.Println("• get_current_date - Get today's date")
	fmt.Println("• get_events_for_date - List a day's existing events")

	if cfg.App.DemoMode {
		fmt.Println("\n⚠️  Running in DEMO MODE - using an in-memory calendar (AI disabled)")
	} else if cfg.Google.ServiceAccountJSON == "" && cfg.Google.CredentialsPath == "" {
		fmt.Println("\n⚠️  Google credentials not configured - some features may be limited")
		fmt.Println("   Set GOOGLE_CALENDAR_SA_JSON or GOOGLE_APPLICATION_CREDENTIALS")
	}

	if !cfg.LLM.Enabled {
		fmt.Println("\n💡 LLM disabled - agent will have limited AI capabilities")
		fmt.Println("   Set LLM_ENABLED=true and configure LLM settings for full AI features")
	}
}
