package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Expected development environment, got %s", cfg.Server.Environment)
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("Expected 25 max open conns, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Auth.JWTSecret == "" {
		t.Error("Expected a fallback JWT secret in development")
	}
	if cfg.IsProduction() {
		t.Error("Expected non-production by default")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SERVER_READ_TIMEOUT", "30s")
	t.Setenv("RATE_LIMIT_PER_MIN", "60")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Expected db.internal, got %s", cfg.Database.Host)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("Expected 30s read timeout, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.RateLimit.RequestsPerMin != 60 {
		t.Errorf("Expected 60 requests/min, got %d", cfg.RateLimit.RequestsPerMin)
	}
}

func TestLoadConfigInvalidIntFallsBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected fallback port 8080, got %d", cfg.Server.Port)
	}
}

func TestLoadConfigProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected error for production without JWT_SECRET")
	}

	t.Setenv("JWT_SECRET", "real-secret")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed with secret set: %v", err)
	}
	if cfg.Auth.JWTSecret != "real-secret" {
		t.Errorf("Expected secret from env, got %q", cfg.Auth.JWTSecret)
	}
}

func TestAddressHelpers(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.GetServerAddr() != "0.0.0.0:8080" {
		t.Errorf("Unexpected server addr %q", cfg.GetServerAddr())
	}
	if cfg.GetRedisAddr() != "localhost:6379" {
		t.Errorf("Unexpected redis addr %q", cfg.GetRedisAddr())
	}
	if cfg.GetDSN() == "" {
		t.Error("Expected a non-empty DSN")
	}
}
