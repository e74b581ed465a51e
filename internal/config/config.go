package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Claude extraction
	AnthropicAPIKey string
	AnthropicModel  string

	// Docx to pdf conversion service
	ConvertURL    string
	ConvertAPIKey string

	// Word template preloaded from disk, optional
	TemplatePath string

	// Review engine
	ReviewDelay time.Duration

	// Sessions
	SessionTTL time.Duration

	// Upload limits
	MaxUploadBytes int64
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),

		ConvertURL:    os.Getenv("CONVERT_URL"),
		ConvertAPIKey: os.Getenv("CONVERT_API_KEY"),

		TemplatePath: os.Getenv("TEMPLATE_PATH"),

		ReviewDelay: envDuration("REVIEW_DELAY", 2*time.Second),
		SessionTTL:  envDuration("SESSION_TTL", 12*time.Hour),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB
	}

	if cfg.ReviewDelay < 0 {
		cfg.ReviewDelay = 0
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}

	return cfg
}

// Validate checks hard requirements only. A missing Anthropic key or
// template is allowed; the features depending on them fail on use with
// their own errors instead of blocking startup.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric: %q", c.Port)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
