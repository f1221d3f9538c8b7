package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		createFile bool
		content    string
		validate   func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:       "valid_yaml",
			createFile: true,
			content: `window:
  title: "Demo"
  width: 800
  height: 600
logging:
  level: "debug"
  format: "json"
scene:
  file: "lobby.yaml"
  style: "dynamic"
  script: "patrol.tengo"
tps: 120
`,
			validate: func(t *testing.T, cfg *Config, err error) {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if cfg.Window.Title != "Demo" || cfg.Window.Width != 800 || cfg.Window.Height != 600 {
					t.Errorf("Window = %+v", cfg.Window)
				}
				if !cfg.Window.Resizable {
					t.Errorf("unset Resizable should keep its default")
				}
				if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
					t.Errorf("Logging = %+v", cfg.Logging)
				}
				if cfg.Scene.File != "lobby.yaml" || cfg.Scene.Style != "dynamic" || cfg.Scene.Script != "patrol.tengo" {
					t.Errorf("Scene = %+v", cfg.Scene)
				}
				if !cfg.Scene.Watch {
					t.Errorf("unset Watch should keep its default")
				}
				if cfg.TPS != 120 {
					t.Errorf("TPS = %d", cfg.TPS)
				}
				if strings.Join(cfg.Inspector.Chord, "+") != "shift+control+alt+i" {
					t.Errorf("Chord = %v", cfg.Inspector.Chord)
				}
			},
		},
		{
			name:       "missing_file",
			createFile: false,
			validate: func(t *testing.T, cfg *Config, err error) {
				if !os.IsNotExist(err) {
					t.Errorf("expected not-exist error, got %v", err)
				}
			},
		},
		{
			name:       "bad_yaml",
			createFile: true,
			content:    "window:\n  width: [800\n",
			validate: func(t *testing.T, cfg *Config, err error) {
				if err == nil || !strings.Contains(err.Error(), "yaml") {
					t.Errorf("expected yaml error, got %v", err)
				}
			},
		},
		{
			name:       "empty_file",
			createFile: true,
			content:    "",
			validate: func(t *testing.T, cfg *Config, err error) {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if cfg.TPS != 60 || cfg.Scene.File != "showroom.yaml" {
					t.Errorf("empty file should load defaults, got %+v", cfg)
				}
			},
		},
		{
			name:       "invalid_style",
			createFile: true,
			content:    "scene:\n  style: hover\n",
			validate: func(t *testing.T, cfg *Config, err error) {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			},
		},
		{
			name:       "zero_tps",
			createFile: true,
			content:    "tps: 0\n",
			validate: func(t *testing.T, cfg *Config, err error) {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if tt.createFile {
				if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
					t.Fatalf("write config: %v", err)
				}
			}
			cfg, err := Load(path)
			tt.validate(t, cfg, err)
		})
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Fatalf("defaults = %+v", cfg.Window)
	}
}
