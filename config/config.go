package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/milk9111/showroom/scene"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("config: invalid config")

type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Logging   LoggingConfig   `yaml:"logging"`
	Scene     SceneConfig     `yaml:"scene"`
	Inspector InspectorConfig `yaml:"inspector"`
	TPS       int             `yaml:"tps"`
}

type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type SceneConfig struct {
	File string `yaml:"file"`
	// Watch reloads the scene when its file changes on disk.
	Watch bool `yaml:"watch"`
	// Script replaces the keyboard with an autopilot script.
	Script string `yaml:"script"`
	Style  string `yaml:"style"`
}

type InspectorConfig struct {
	Visible bool `yaml:"visible"`
	// Chord lists key names; the last one is the trigger, the rest must be
	// held when it goes down.
	Chord []string `yaml:"chord"`
	// CaptureInput stops keys reaching the character while the panel is open.
	CaptureInput bool `yaml:"capture_input"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "Showroom",
			Width:     1280,
			Height:    720,
			Resizable: true,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Scene:   SceneConfig{File: scene.DefaultScene, Watch: true},
		Inspector: InspectorConfig{
			Chord: []string{"shift", "control", "alt", "i"},
		},
		TPS: 60,
	}
}

// Load reads path over Default. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TPS <= 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalidConfig, c.TPS)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if len(c.Inspector.Chord) == 0 {
		return fmt.Errorf("%w: empty inspector chord", ErrInvalidConfig)
	}
	switch c.Scene.Style {
	case "", scene.StyleKinematic, scene.StyleDynamic:
	default:
		return fmt.Errorf("%w: scene style %q", ErrInvalidConfig, c.Scene.Style)
	}
	return nil
}
