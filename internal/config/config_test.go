package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8090" {
		t.Errorf("Port = %q, want 8090", cfg.Port)
	}
	if cfg.ReviewDelay != 2*time.Second {
		t.Errorf("ReviewDelay = %v", cfg.ReviewDelay)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("REVIEW_DELAY", "250ms")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("ANTHROPIC_MODEL", "claude-test")

	cfg := Load()
	if cfg.Port != "9999" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.ReviewDelay != 250*time.Millisecond {
		t.Errorf("ReviewDelay = %v", cfg.ReviewDelay)
	}
	if cfg.MaxUploadBytes != 1024 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.AnthropicModel != "claude-test" {
		t.Errorf("AnthropicModel = %q", cfg.AnthropicModel)
	}
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("REVIEW_DELAY", "not-a-duration")
	t.Setenv("MAX_UPLOAD_BYTES", "-5")

	cfg := Load()
	if cfg.ReviewDelay != 2*time.Second {
		t.Errorf("ReviewDelay = %v, want default", cfg.ReviewDelay)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("MaxUploadBytes = %d, want default", cfg.MaxUploadBytes)
	}
}

func TestValidate(t *testing.T) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with defaults: %v", err)
	}

	// Missing credentials are not fatal at startup.
	cfg.AnthropicAPIKey = ""
	cfg.TemplatePath = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() without credentials: %v", err)
	}

	cfg.Port = "not-a-port"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted non-numeric port")
	}
}
