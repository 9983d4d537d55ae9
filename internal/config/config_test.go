package config

import (
	"strings"
	"testing"
	"time"
)

func clearPluginEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RESEND_API_KEY", "RESEND_API_BASE", "RESEND_FROM", "RESEND_TIMEOUT_SEC",
		"TINYFISH_API_KEY", "TINYFISH_BASE_URL", "TINYFISH_TIMEOUT_SEC",
		"PLUGIN_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadResendDefaults(t *testing.T) {
	clearPluginEnv(t)

	cfg, err := LoadResend()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != DefaultResendBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("expected 30s default timeout, got %v", cfg.Timeout)
	}
	if cfg.APIKey != "" {
		t.Fatalf("expected empty api key to be tolerated, got %q", cfg.APIKey)
	}
	if cfg.LogLevel != "disabled" {
		t.Fatalf("expected disabled log level, got %q", cfg.LogLevel)
	}
}

func TestLoadResendOverrides(t *testing.T) {
	clearPluginEnv(t)
	t.Setenv("RESEND_API_KEY", "re_123")
	t.Setenv("RESEND_API_BASE", "http://localhost:9999/")
	t.Setenv("RESEND_FROM", "agent@x.com")
	t.Setenv("RESEND_TIMEOUT_SEC", "2.5")

	cfg, err := LoadResend()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://localhost:9999" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 2500*time.Millisecond {
		t.Fatalf("expected fractional timeout, got %v", cfg.Timeout)
	}
	if cfg.APIKey != "re_123" || cfg.DefaultFrom != "agent@x.com" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadResendRejectsMalformedTimeout(t *testing.T) {
	clearPluginEnv(t)
	t.Setenv("RESEND_TIMEOUT_SEC", "soon")

	_, err := LoadResend()
	if err == nil || !strings.Contains(err.Error(), "RESEND_TIMEOUT_SEC") {
		t.Fatalf("expected timeout parse error, got %v", err)
	}
}

func TestLoadTinyfishDefaults(t *testing.T) {
	clearPluginEnv(t)

	cfg, err := LoadTinyfish()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != DefaultTinyfishBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 90*time.Second {
		t.Fatalf("expected 90s default timeout, got %v", cfg.Timeout)
	}
}

func TestLoadTinyfishRejectsNegativeTimeout(t *testing.T) {
	clearPluginEnv(t)
	t.Setenv("TINYFISH_TIMEOUT_SEC", "-4")

	_, err := LoadTinyfish()
	if err == nil || !strings.Contains(err.Error(), "TINYFISH_TIMEOUT_SEC") {
		t.Fatalf("expected timeout parse error, got %v", err)
	}
}
