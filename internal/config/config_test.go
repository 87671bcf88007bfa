package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("API_TIMEOUT_SECONDS", "")
	t.Setenv("TOKEN_STORE_PATH", "/tmp/wealth/session.bolt")
	t.Setenv("MOCK_TOKEN_TTL_MINUTES", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":8000" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Fatalf("unexpected base url: %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 60*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.API.Timeout)
	}
	if cfg.API.TokenStorePath != "/tmp/wealth/session.bolt" {
		t.Fatalf("unexpected store path: %s", cfg.API.TokenStorePath)
	}
	if cfg.Mock.TokenTTL != 0 {
		t.Fatalf("expected zero ttl, got %s", cfg.Mock.TokenTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("API_BASE_URL", "https://wealth.example.com")
	t.Setenv("API_TIMEOUT_SECONDS", "5")
	t.Setenv("MOCK_TOKEN_TTL_MINUTES", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.API.BaseURL != "https://wealth.example.com" {
		t.Fatalf("unexpected base url: %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.API.Timeout)
	}
	if cfg.Mock.TokenTTL != 30*time.Minute {
		t.Fatalf("unexpected ttl: %s", cfg.Mock.TokenTTL)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("API_TIMEOUT_SECONDS", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric timeout")
	}

	t.Setenv("API_TIMEOUT_SECONDS", "")
	t.Setenv("PORT", "80 80")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for PORT with spaces")
	}
}
