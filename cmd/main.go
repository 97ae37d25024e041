package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"aurabot/clients"
	"aurabot/clients/anthropic"
	"aurabot/clients/azureai"
	"aurabot/clients/azureimage"
	"aurabot/clients/azuretranslate"
	"aurabot/clients/discord"
	"aurabot/config"
	"aurabot/db"
	"aurabot/handlers"
	"aurabot/metrics"
	"aurabot/middleware"
	"aurabot/services/guilds"
	"aurabot/services/interactions"
	"aurabot/services/usage"
	"aurabot/usecases/gateway"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize error alert middleware
	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.SlackAlertWebhook,
		Environment: cfg.Environment,
		AppName:     "aurabot",
		LogsURL:     cfg.ServerLogsURL,
	})

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Initialize repositories with shared connection
	guildsRepo := db.NewPostgresGuildsRepository(dbConn, cfg.DatabaseSchema)
	interactionsRepo := db.NewPostgresInteractionsRepository(dbConn, cfg.DatabaseSchema)
	responsesRepo := db.NewPostgresInteractionResponsesRepository(dbConn, cfg.DatabaseSchema)
	usageRepo := db.NewPostgresAIUsageRepository(dbConn, cfg.DatabaseSchema)

	guildsService := guilds.NewGuildsService(guildsRepo)
	interactionsService := interactions.NewInteractionsService(interactionsRepo, responsesRepo)
	usageService := usage.NewUsageService(usageRepo)

	// Initialize outbound clients
	httpClient := &http.Client{Timeout: 30 * time.Second}
	discordClient := discord.NewDiscordClient(httpClient, cfg.DiscordConfig.BotToken, cfg.DiscordConfig.ApplicationID)

	var chatClient clients.ChatClient
	switch cfg.AIProvider {
	case "anthropic":
		chatClient = anthropic.NewChatClient(
			cfg.AnthropicConfig.APIKey,
			cfg.AnthropicConfig.Model,
			cfg.AzureAIConfig.SystemInstruction,
		)
	default:
		chatClient = azureai.NewChatClient(
			cfg.AzureAIConfig.Endpoint,
			cfg.AzureAIConfig.APIKey,
			cfg.AzureAIConfig.Model,
			cfg.AzureAIConfig.SystemInstruction,
		)
	}

	imageClient := azureimage.NewImageClient(cfg.AzureImageConfig.Endpoint, cfg.AzureImageConfig.APIKey)

	var translateClient clients.TranslateClient
	if cfg.AzureTranslateConfig.Endpoint != "" {
		translateClient = azuretranslate.NewTranslateClientWithBase(
			cfg.AzureTranslateConfig.APIKey,
			cfg.AzureTranslateConfig.Region,
			cfg.AzureTranslateConfig.Endpoint,
		)
	} else {
		translateClient = azuretranslate.NewTranslateClient(
			cfg.AzureTranslateConfig.APIKey,
			cfg.AzureTranslateConfig.Region,
		)
	}

	appMetrics := metrics.New()

	gatewayUsecase := gateway.NewGatewayUsecase(
		discordClient,
		chatClient,
		imageClient,
		translateClient,
		guildsService,
		interactionsService,
		usageService,
		appMetrics,
		cfg.BotUserID,
		cfg.BotVersion,
	)

	// Create a new router and mount the webhook endpoints
	router := mux.NewRouter()
	webhooksHandler := handlers.NewWebhooksHandler(gatewayUsecase, appMetrics, cfg.DiscordConfig.PublicKey)
	webhooksHandler.RegisterRoutes(router)

	// Periodic heartbeat broadcast to initialized guilds
	heartbeatTicker := time.NewTicker(6 * time.Hour)
	go func() {
		for range heartbeatTicker.C {
			_ = alertMiddleware.WrapBackgroundTask("HeartbeatBroadcast", func() error {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				defer cancel()
				return gatewayUsecase.Heartbeat(ctx)
			})()
		}
	}()
	defer heartbeatTicker.Stop()

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Signature-Ed25519", "X-Signature-Timestamp"},
		AllowCredentials: true,
	})

	// Setup and handle graceful shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
