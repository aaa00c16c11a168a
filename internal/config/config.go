package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

var (
	ErrMissingAPIKey    = errors.New("YouTube API key is required")
	ErrMissingSanity    = errors.New("Sanity project id is required")
	ErrMissingAIKeys    = errors.New("Gemini and Google Translate API keys are required")
	ErrInvalidPort      = errors.New("port must not be empty")
	ErrNegativeDuration = errors.New("HTTP timeout must not be negative")
)

// Config holds the application configuration
type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"release"`

	// The YouTube key is optional at start; requests fail with a
	// configuration error while it is unset.
	YouTubeAPIKey  string `env:"YOUTUBE_API_KEY"`
	YouTubeBaseURL string `env:"YOUTUBE_API_BASE_URL" envDefault:"https://www.googleapis.com/youtube/v3"`

	Sanity SanityConfig

	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	GeminiModel     string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	TranslateAPIKey string `env:"GOOGLE_TRANSLATE_API_KEY"`

	// HistoryDBURL is a SQLite Cloud connection string. Search history is
	// disabled when empty.
	HistoryDBURL string `env:"HISTORY_DB_URL"`

	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:3001"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPTimeout    time.Duration `env:"HTTP_TIMEOUT" envDefault:"0s"`
}

// SanityConfig points the content passthrough at a Sanity dataset
type SanityConfig struct {
	ProjectID  string `env:"SANITY_PROJECT_ID"`
	Dataset    string `env:"SANITY_DATASET" envDefault:"production"`
	APIVersion string `env:"SANITY_API_VERSION" envDefault:"2024-01-01"`
	UseCDN     bool   `env:"SANITY_USE_CDN" envDefault:"false"`
	Token      string `env:"SANITY_TOKEN"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings every deployment needs. Provider keys are
// checked lazily by the features that use them.
func (c *Config) Validate() error {
	if c.Port == "" {
		return ErrInvalidPort
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeDuration, c.HTTPTimeout)
	}
	return nil
}

// RequireYouTube reports whether the YouTube API key is set.
func (c *Config) RequireYouTube() error {
	if c.YouTubeAPIKey == "" {
		return fmt.Errorf("%w: YOUTUBE_API_KEY environment variable is not set", ErrMissingAPIKey)
	}
	return nil
}

// RequireSanity reports whether the content store is configured.
func (c *Config) RequireSanity() error {
	if c.Sanity.ProjectID == "" {
		return fmt.Errorf("%w: SANITY_PROJECT_ID environment variable is not set", ErrMissingSanity)
	}
	return nil
}

// RequireGoogleAI reports whether both diagnostic providers are configured.
func (c *Config) RequireGoogleAI() error {
	if c.GeminiAPIKey == "" || c.TranslateAPIKey == "" {
		return fmt.Errorf("%w: set GEMINI_API_KEY and GOOGLE_TRANSLATE_API_KEY", ErrMissingAIKeys)
	}
	return nil
}
