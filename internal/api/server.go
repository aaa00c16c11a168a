package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/influencer-hub/internal/assistant"
	"github.com/influencer-hub/internal/config"
	"github.com/influencer-hub/internal/discovery"
	"github.com/influencer-hub/internal/models"
	"go.uber.org/zap"
)

// Searcher runs creator discovery
type Searcher interface {
	Search(ctx context.Context, req discovery.Request) ([]models.Candidate, error)
}

// ProfileFinder looks up one channel
type ProfileFinder interface {
	GetChannel(ctx context.Context, channelID string) (*models.ChannelProfile, error)
}

// ContentStore reads the headless CMS
type ContentStore interface {
	Fetch(ctx context.Context, query string) (json.RawMessage, error)
	Creators(ctx context.Context) ([]models.Creator, error)
	Campaigns(ctx context.Context) ([]models.Campaign, error)
	ContractTemplates(ctx context.Context) ([]models.ContractTemplate, error)
}

// DiagnosticsRunner checks the Google AI providers
type DiagnosticsRunner interface {
	Run(ctx context.Context) (*assistant.Report, error)
}

// HistoryStore records discovery requests
type HistoryStore interface {
	RecordSearch(ctx context.Context, rec models.SearchRecord) error
	RecentSearches(ctx context.Context, limit int) ([]models.SearchRecord, error)
}

// Dependencies are the collaborators behind the routes. Profiles,
// Diagnostics and History may be nil when their providers are not
// configured; the matching routes then answer with an error.
type Dependencies struct {
	Searcher    Searcher
	Profiles    ProfileFinder
	Content     ContentStore
	Diagnostics DiagnosticsRunner
	History     HistoryStore
	Logger      *zap.Logger

	// DiagnosticsUnavailable explains why Diagnostics is nil
	DiagnosticsUnavailable error
}

// Server represents the API server
type Server struct {
	router *gin.Engine
	deps   Dependencies
	logger *zap.Logger
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, deps Dependencies) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(requestID(), requestLogger(logger), recovery(logger))
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	server := &Server{
		router: router,
		deps:   deps,
		logger: logger,
	}

	server.setupRoutes()

	return server
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "Pragma"},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// setupRoutes configures all the routes for the server
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Creator discovery
	s.router.GET("/creator-search", s.searchCreators)
	s.router.GET("/creator-search/history", s.searchHistory)
	s.router.GET("/channels/:id", s.getChannel)

	// Content store
	s.router.GET("/content", s.queryContent)
	s.router.GET("/creators", s.listCreators)
	s.router.GET("/campaigns", s.listCampaigns)
	s.router.GET("/contract-templates", s.listContractTemplates)

	// Diagnostics
	s.router.GET("/diagnostics/google-services", s.googleServices)
}

// Handler exposes the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
