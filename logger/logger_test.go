package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"unknown_defaults_to_info", "loud", slog.LevelInfo},
		{"empty_defaults_to_info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Fatalf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatAttr(t *testing.T) {
	if got := formatAttr("", slog.String("key", "value")); got != "  key=value" {
		t.Fatalf("unexpected attr %q", got)
	}
	if got := formatAttr("scene", slog.Int("walls", 4)); got != "  scene.walls=4" {
		t.Fatalf("unexpected grouped attr %q", got)
	}
}

func TestConsoleHandler(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Format: "console", Output: &buf})

	l.Debug("hidden")
	l.With("style", "kinematic").WithGroup("scene").Info("loaded", "walls", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record should be filtered: %q", out)
	}
	if !strings.Contains(out, "INFO  loaded") {
		t.Fatalf("missing message: %q", out)
	}
	if !strings.Contains(out, "style=kinematic") || !strings.Contains(out, "scene.walls=4") {
		t.Fatalf("missing attrs: %q", out)
	}
}
