package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(baseURLEnv, "")
	t.Setenv(logLevelEnv, "")

	cfg := Load()
	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Fatalf("unexpected base url: %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.API.Timeout)
	}
	if cfg.Dashboard.DefaultPeriod != "last-7-days" {
		t.Fatalf("unexpected period: %s", cfg.Dashboard.DefaultPeriod)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "newsdesk.yaml")
	raw := []byte(`
api:
  baseUrl: https://news.internal.example
  timeout: 5s
logging:
  level: debug
dashboard:
  defaultPeriod: last-30-days
  refreshInterval: 1m
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(baseURLEnv, "")
	t.Setenv(logLevelEnv, "error")

	cfg := Load()
	if cfg.API.BaseURL != "https://news.internal.example" {
		t.Fatalf("unexpected base url: %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.API.Timeout)
	}
	if cfg.Logging.Level != "error" {
		t.Fatalf("env should override file level, got %s", cfg.Logging.Level)
	}
	if cfg.Dashboard.DefaultPeriod != "last-30-days" || cfg.Dashboard.RefreshInterval != time.Minute {
		t.Fatalf("unexpected dashboard config: %+v", cfg.Dashboard)
	}

	t.Setenv(baseURLEnv, "http://127.0.0.1:9000")
	if got := Load().API.BaseURL; got != "http://127.0.0.1:9000" {
		t.Fatalf("env should override file base url, got %s", got)
	}
}

func TestLoadBrokenFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("api: [unterminated"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(baseURLEnv, "")
	t.Setenv(logLevelEnv, "")

	if got := Load().API.BaseURL; got != "http://localhost:8000" {
		t.Fatalf("expected defaults, got %s", got)
	}
}
