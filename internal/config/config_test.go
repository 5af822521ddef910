package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Marketplace.BaseURL != defaultBaseURL || cfg.Moderation.DefaultPerPage != 10 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  address: ":8080"
  allowed_origins: ["https://admin.example.so"]
marketplace:
  base_url: "https://api.example.so"
  timeout: 5s
session:
  driver: memory
  jwt_secret: from-file
moderation:
  board_idle_ttl: 10m
  default_per_page: 20
`)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("BOARD_CLEANUP_SECONDS", "15")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Address != ":9090" {
		t.Fatalf("PORT should override the file, got %q", cfg.Server.Address)
	}
	if cfg.Session.JWTSecret != "from-env" || cfg.Session.Driver != "memory" {
		t.Fatalf("unexpected session config %+v", cfg.Session)
	}
	if cfg.Marketplace.Timeout != 5*time.Second || cfg.Moderation.BoardIdleTTL != 10*time.Minute {
		t.Fatalf("durations not parsed: %+v %+v", cfg.Marketplace, cfg.Moderation)
	}
	if cfg.Moderation.CleanupInterval != 15*time.Second {
		t.Fatalf("cleanup interval = %s", cfg.Moderation.CleanupInterval)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "https://admin.example.so" {
		t.Fatalf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
	if err := cfg.ValidateServer(); err != nil {
		t.Fatalf("should validate: %v", err)
	}
}

func TestLoadRejectsBadEnv(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidateServer(t *testing.T) {
	cfg := Default()
	if err := cfg.ValidateServer(); err == nil {
		t.Fatal("missing JWT secret should fail")
	}
	cfg.Session.JWTSecret = "s"
	if err := cfg.ValidateServer(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.Session.Driver = "file"
	if err := cfg.ValidateServer(); err == nil {
		t.Fatal("file driver is not available to the server")
	}
	cfg = Default()
	cfg.Moderation.DefaultPerPage = 7
	if err := cfg.Validate(); err == nil {
		t.Fatal("page size 7 should fail")
	}
}
