package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MemoryDriverWithSecrets(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
	t.Setenv("MATCH_FALLBACK_SIZE", "3")
	t.Setenv("LEDGER_ENFORCE_CAPACITY", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Database.Driver != DriverMemory {
		t.Fatalf("expected memory driver, got %q", cfg.Database.Driver)
	}
	if cfg.App.HTTPPort != "3001" {
		t.Fatalf("expected default port 3001, got %q", cfg.App.HTTPPort)
	}
	if cfg.JWT.AccessExpiresIn != 15*time.Minute {
		t.Fatalf("unexpected access ttl %s", cfg.JWT.AccessExpiresIn)
	}
	if cfg.Matching.SkillWeight != 0.6 || cfg.Matching.InterestWeight != 0.4 {
		t.Fatalf("unexpected weights %v/%v", cfg.Matching.SkillWeight, cfg.Matching.InterestWeight)
	}
	if cfg.Matching.FallbackSize != 3 {
		t.Fatalf("expected fallback size 3, got %d", cfg.Matching.FallbackSize)
	}
	if !cfg.Ledger.EnforceCapacity {
		t.Fatalf("expected capacity enforcement on")
	}
	if len(cfg.CORS.AllowedOrigins) != 4 {
		t.Fatalf("expected 4 default origins, got %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("redis should be disabled without REDIS_HOST")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("DB_USER", "")

	_, err := Load("")
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
	for _, key := range []string{"DB_HOST", "JWT_ACCESS_SECRET", "JWT_REFRESH_SECRET"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("expected %s in error, got %v", key, err)
		}
	}
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mongo")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "db_driver: memory\njwt_access_secret: a\njwt_refresh_secret: b\nhttp_port: \"8080\"\nmatch_eligibility: exact\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.App.HTTPPort != "9090" {
		t.Fatalf("expected env to win over file, got %q", cfg.App.HTTPPort)
	}
	if cfg.Matching.Eligibility != "exact" {
		t.Fatalf("expected exact eligibility, got %q", cfg.Matching.Eligibility)
	}
}
