package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/showroom/config"
	"github.com/milk9111/showroom/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a yaml runtime config")
	sceneName := flag.String("scene", "", "scene file in scene/ (overrides config)")
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	script := flag.String("script", "", "autopilot script in scene/scripts/ that replaces the keyboard")
	style := flag.String("style", "", "movement style override: kinematic or dynamic")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *sceneName != "" {
		cfg.Scene.File = *sceneName
	}
	if *script != "" {
		cfg.Scene.Script = *script
	}
	if *style != "" {
		cfg.Scene.Style = *style
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	out, closeLog, err := logOutput(cfg.Logging.File)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()
	logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Output: out})

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetTPS(cfg.TPS)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game := NewGame(cfg, *debug)
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		logger.L().Error("game exited", "err", err)
		closeLog()
		os.Exit(1)
	}
}

// logOutput tees log lines to path when one is set.
func logOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return io.MultiWriter(os.Stdout, f), func() { _ = f.Close() }, nil
}
