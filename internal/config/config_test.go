package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("refuses to start without JWT_SECRET", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		if err == nil {
			t.Fatal("Expected error when JWT_SECRET is unset")
		}
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("ENVIRONMENT", "")
		t.Setenv("PORT", "")
		t.Setenv("JWT_EXPIRES_IN", "")
		t.Setenv("LOG_LEVEL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if cfg.Environment != "development" {
			t.Errorf("Expected development, got %s", cfg.Environment)
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected port 8080, got %s", cfg.Port)
		}
		if cfg.JWTTTL != 24*time.Hour {
			t.Errorf("Expected 24h token TTL, got %s", cfg.JWTTTL)
		}
		if cfg.LogLevel != slog.LevelInfo {
			t.Errorf("Expected info level, got %s", cfg.LogLevel)
		}
	})

	t.Run("custom token TTL", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("JWT_EXPIRES_IN", "2h")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if cfg.JWTTTL != 2*time.Hour {
			t.Errorf("Expected 2h token TTL, got %s", cfg.JWTTTL)
		}
	})

	t.Run("invalid token TTL is an error", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("JWT_EXPIRES_IN", "tomorrow")

		if _, err := Load(); err == nil {
			t.Fatal("Expected error for unparseable JWT_EXPIRES_IN")
		}
	})

	t.Run("log level parsing", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("JWT_EXPIRES_IN", "")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if cfg.LogLevel != slog.LevelDebug {
			t.Errorf("Expected debug level, got %s", cfg.LogLevel)
		}
	})
}
