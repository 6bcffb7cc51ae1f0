package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-planning-assistant/config"
	_ "meal-planning-assistant/docs" // Swagger docs
	"meal-planning-assistant/internal/agent"
	"meal-planning-assistant/internal/agent/tools"
	"meal-planning-assistant/internal/chat/classifier"
	"meal-planning-assistant/internal/chat/composer"
	"meal-planning-assistant/internal/chat/contextstore"
	"meal-planning-assistant/internal/chat/dispatcher"
	"meal-planning-assistant/internal/chat/orchestrator"
	"meal-planning-assistant/internal/httpserver"
	planSQLite "meal-planning-assistant/internal/plan/repository/sqlite"
	"meal-planning-assistant/pkg/gcalendar"
	"meal-planning-assistant/pkg/llmprovider"
	"meal-planning-assistant/pkg/log"
)

// @title       Meal Planning Assistant API
// @description Conversational meal planning: intent classification, tool dispatch, plan and grocery storage.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Meal Planning Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Storage
	repo, err := planSQLite.New(cfg.Storage.DSN)
	if err != nil {
		logger.Errorf(ctx, "Failed to open storage: %v", err)
		return
	}
	defer repo.Close()
	logger.Infof(ctx, "Storage ready at %s", cfg.Storage.DSN)

	// 4. LLM providers
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize LLM providers: %v", err)
		return
	}
	manager := llmprovider.NewManager(providers, llmprovider.ManagerConfigFromLLMConfig(&cfg.LLM), logger)
	logger.Infof(ctx, "LLM providers initialized: %d", len(providers))

	// 5. Google Calendar (optional meal schedule export)
	var calendarClient *gcalendar.Client
	if cfg.GoogleCalendar.CredentialsPath != "" {
		calendarClient, err = gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if err != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", err)
			calendarClient = nil
		} else {
			logger.Info(ctx, "Google Calendar initialized")
		}
	}

	// 6. Tool registry
	registry := agent.NewRegistry()
	toolDeps := tools.Deps{
		Logger:     logger,
		Generator:  manager,
		Repo:       repo,
		CalendarID: cfg.GoogleCalendar.CalendarID,
		Timezone:   cfg.GoogleCalendar.Timezone,
	}
	if calendarClient != nil {
		toolDeps.Calendar = calendarClient
	}
	tools.RegisterAll(registry, toolDeps)
	logger.Infof(ctx, "Tool registry ready: %d tools", len(registry.List()))

	// 7. Chat orchestration pipeline
	sessionTTL := parseDurationOr(cfg.Chat.SessionTTL, 30*time.Minute)
	toolTimeout := parseDurationOr(cfg.Chat.ToolTimeout, time.Minute)

	store := contextstore.New(sessionTTL, cfg.Chat.MaxSessions)
	cls := classifier.New(logger, manager)
	dsp := dispatcher.New(logger, registry, cls, toolTimeout)
	chatUC := orchestrator.New(logger, store, cls, dsp, composer.New(), manager)

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		ChatUseCase:    chatUC,
		PlanRepository: repo,
		RatePerMinute:  cfg.Chat.RateLimitPerMin,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
