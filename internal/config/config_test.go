package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("YOUTUBE_API_KEY", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("HTTP_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://www.googleapis.com/youtube/v3", cfg.YouTubeBaseURL)
	assert.Equal(t, "production", cfg.Sanity.Dataset)
	assert.Equal(t, "2024-01-01", cfg.Sanity.APIVersion)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, cfg.AllowedOrigins)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.ErrorIs(t, cfg.RequireYouTube(), ErrMissingAPIKey)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("YOUTUBE_API_KEY", "yt-key")
	t.Setenv("SANITY_PROJECT_ID", "abc123")
	t.Setenv("SANITY_USE_CDN", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com,https://admin.example.com")
	t.Setenv("HTTP_TIMEOUT", "15s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.NoError(t, cfg.RequireYouTube())
	assert.NoError(t, cfg.RequireSanity())
	assert.True(t, cfg.Sanity.UseCDN)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{name: "ok", cfg: Config{Port: "8080"}},
		{name: "empty port", cfg: Config{}, want: ErrInvalidPort},
		{name: "negative timeout", cfg: Config{Port: "8080", HTTPTimeout: -time.Second}, want: ErrNegativeDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRequireGoogleAI(t *testing.T) {
	cfg := Config{GeminiAPIKey: "g"}
	assert.ErrorIs(t, cfg.RequireGoogleAI(), ErrMissingAIKeys)

	cfg.TranslateAPIKey = "t"
	assert.NoError(t, cfg.RequireGoogleAI())
}
