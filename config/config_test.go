package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Save original env vars
	originalVars := map[string]string{
		"SERVER_PORT":             os.Getenv("SERVER_PORT"),
		"DATABASE_URL":            os.Getenv("DATABASE_URL"),
		"LOG_LEVEL":               os.Getenv("LOG_LEVEL"),
		"METRICS_ENABLED":         os.Getenv("METRICS_ENABLED"),
		"SUBMIT_LIMIT_PER_MINUTE": os.Getenv("SUBMIT_LIMIT_PER_MINUTE"),
		"BACKFILL_INTERVAL":       os.Getenv("BACKFILL_INTERVAL"),
	}

	// Clean up after test
	defer func() {
		for key, value := range originalVars {
			if value == "" {
				os.Unsetenv(key)
			} else {
				os.Setenv(key, value)
			}
		}
	}()

	t.Run("Default configuration", func(t *testing.T) {
		for key := range originalVars {
			os.Unsetenv(key)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if cfg.Server.Port != 8080 {
			t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
		}
		if cfg.Database.URL != "" {
			t.Errorf("Expected empty database URL, got %s", cfg.Database.URL)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("Expected default log level 'info', got %s", cfg.Logging.Level)
		}
		if !cfg.Metrics.Enabled {
			t.Error("Expected metrics enabled by default")
		}
		if cfg.Submit.PerMinute != 5 || cfg.Submit.PerDay != 50 {
			t.Errorf("Unexpected default submit limits: %+v", cfg.Submit)
		}
		if cfg.Backfill.Interval != 5*time.Minute {
			t.Errorf("Expected default backfill interval 5m, got %v", cfg.Backfill.Interval)
		}
	})

	t.Run("Environment overrides", func(t *testing.T) {
		os.Setenv("SERVER_PORT", "9999")
		os.Setenv("LOG_LEVEL", "debug")
		os.Setenv("METRICS_ENABLED", "false")
		os.Setenv("BACKFILL_INTERVAL", "90s")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if cfg.Server.Port != 9999 {
			t.Errorf("Expected port 9999, got %d", cfg.Server.Port)
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("Expected log level 'debug', got %s", cfg.Logging.Level)
		}
		if cfg.Metrics.Enabled {
			t.Error("Expected metrics disabled")
		}
		if cfg.Backfill.Interval != 90*time.Second {
			t.Errorf("Expected backfill interval 90s, got %v", cfg.Backfill.Interval)
		}
	})

	t.Run("Invalid port rejected", func(t *testing.T) {
		os.Setenv("SERVER_PORT", "70000")
		defer os.Unsetenv("SERVER_PORT")

		if _, err := Load(); err == nil {
			t.Error("Expected validation error for out-of-range port")
		}
	})

	t.Run("Invalid submit limit rejected", func(t *testing.T) {
		os.Setenv("SERVER_PORT", "8080")
		os.Setenv("SUBMIT_LIMIT_PER_MINUTE", "0")
		defer os.Unsetenv("SUBMIT_LIMIT_PER_MINUTE")

		if _, err := Load(); err == nil {
			t.Error("Expected validation error for zero submit limit")
		}
	})
}
