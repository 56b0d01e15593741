package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in  string
		out slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"garbage", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.out {
			t.Errorf("parseLevel(%q)=%v want %v", tt.in, got, tt.out)
		}
	}
}

func TestInitAndHelpers(t *testing.T) {
	Init("debug", "json")
	if defaultLogger == nil {
		t.Fatal("defaultLogger not initialized")
	}

	ctx := context.WithValue(context.Background(), "request_id", "req-42")
	if l := WithContext(ctx); l == nil {
		t.Fatal("WithContext returned nil")
	}
	if l := With("component", "test"); l == nil {
		t.Fatal("With returned nil")
	}

	// Exercise the package-level helpers; they must not panic.
	Debug("debug message", "k", "v")
	Info("info message")
	Warn("warn message")
	Error("error message")
}
