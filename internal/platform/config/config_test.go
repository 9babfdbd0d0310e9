package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "5000" || cfg.DiaryMaxFiles != 5 || cfg.DiaryMaxFileBytes != 100<<20 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ReminderCron != DefaultReminderCron {
		t.Fatalf("expected default cron, got %q", cfg.ReminderCron)
	}
	if cfg.Addr() != ":5000" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
}

func TestLoad_YAMLThenEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := []byte(`
port: "8081"
jwtSecret: from-file
diaryMaxFiles: 3
corsOrigins:
  - http://a.test
`)
	if err := os.WriteFile(path, yml, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("CORS_ORIGINS", "http://b.test/, http://c.test")
	t.Setenv("TOKEN_TTL", "2h")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8081" || cfg.DiaryMaxFiles != 3 {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
	if cfg.JWTSecret != "from-env" {
		t.Fatalf("env must override yaml, got %q", cfg.JWTSecret)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("unexpected ttl: %v", cfg.TokenTTL)
	}
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DSN", "")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error in production without JWT_SECRET")
	}
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DIARY_MAX_FILES", "five")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for invalid DIARY_MAX_FILES")
	}
}
