package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/influencer-hub/internal/api"
	"github.com/influencer-hub/internal/assistant"
	"github.com/influencer-hub/internal/config"
	"github.com/influencer-hub/internal/content"
	"github.com/influencer-hub/internal/discovery"
	"github.com/influencer-hub/internal/logging"
	"github.com/influencer-hub/internal/models"
	"github.com/influencer-hub/internal/youtube"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	deps := api.Dependencies{Logger: logger}

	// Creator discovery. A missing key is reported per request.
	if err := cfg.RequireYouTube(); err != nil {
		logger.Warn("Creator search disabled until configured", zap.Error(err))
	}
	ytClient := youtube.NewClient(cfg.YouTubeAPIKey,
		youtube.WithBaseURL(cfg.YouTubeBaseURL),
		youtube.WithHTTPClient(httpClient))
	deps.Searcher = discovery.NewAggregator(ytClient, logger.Named("discovery"))

	if cfg.YouTubeAPIKey != "" {
		profiles, err := youtube.NewProfiles(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			logger.Fatal("Failed to initialize YouTube API", zap.Error(err))
		}
		deps.Profiles = profiles
	}

	// Content store
	if err := cfg.RequireSanity(); err != nil {
		logger.Warn("Content store not configured", zap.Error(err))
	}
	deps.Content = content.NewClient(cfg.Sanity, content.WithHTTPClient(httpClient))

	// Google AI diagnostics
	if err := cfg.RequireGoogleAI(); err != nil {
		deps.DiagnosticsUnavailable = err
	} else {
		gemini, err := assistant.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Fatal("Failed to initialize Gemini", zap.Error(err))
		}
		translator, err := assistant.NewTranslator(ctx, cfg.TranslateAPIKey)
		if err != nil {
			logger.Fatal("Failed to initialize Translate", zap.Error(err))
		}
		deps.Diagnostics = assistant.NewDiagnostics(gemini, translator, logger.Named("diagnostics"))
	}

	// Search history
	if cfg.HistoryDBURL != "" {
		db, err := models.NewDatabase(cfg.HistoryDBURL, logger.Named("history"))
		if err != nil {
			logger.Fatal("Failed to initialize database", zap.Error(err))
		}
		defer db.Close()
		deps.History = db
	}

	server := api.NewServer(cfg, deps)
	if err := server.Run(ctx, ":"+cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
