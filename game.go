package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/showroom/autopilot"
	"github.com/milk9111/showroom/config"
	"github.com/milk9111/showroom/ecs/system"
	"github.com/milk9111/showroom/input"
	"github.com/milk9111/showroom/logger"
	"github.com/milk9111/showroom/scene"
)

type Game struct {
	cfg    *config.Config
	debug  bool
	frames int

	// input outlives scenes so held keys survive a reload.
	input    *input.State
	keyboard *system.EbitenKeys

	scene     *scene.Scene
	autopilot *autopilot.Driver
	loadCh    chan loadResult
	loadErr   error
	loading   *loadingScreen

	watcher   *scene.Watcher
	inspector *Inspector
	chord     []ebiten.Key
}

type loadResult struct {
	scene     *scene.Scene
	autopilot *autopilot.Driver
	err       error
}

func NewGame(cfg *config.Config, debug bool) *Game {
	g := &Game{
		cfg:      cfg,
		debug:    debug,
		input:    input.NewState(input.DefaultBindings()),
		keyboard: &system.EbitenKeys{},
		loadCh:   make(chan loadResult, 1),
		loading:  newLoadingScreen(cfg.Window.Title),
	}

	chord, err := parseChord(cfg.Inspector.Chord)
	if err != nil {
		logger.L().Warn("inspector chord ignored", "err", err)
	}
	g.chord = chord
	g.inspector = NewInspector(g)
	g.inspector.SetVisible(cfg.Inspector.Visible)

	if cfg.Scene.Watch {
		w, err := scene.NewWatcher(scene.WatchDirs()...)
		if err != nil {
			logger.L().Warn("scene hot reload disabled", "dirs", scene.WatchDirs(), "err", err)
		} else {
			g.watcher = w
		}
	}

	// The scene builds off the game loop; nothing reads g.input until it
	// arrives on loadCh.
	go func() {
		g.loadCh <- g.loadScene()
	}()
	return g
}

func (g *Game) loadScene() loadResult {
	spec, err := scene.LoadSpec(g.cfg.Scene.File)
	if err != nil {
		return loadResult{err: err}
	}

	var keys input.KeySource = g.keyboard
	var driver *autopilot.Driver
	scriptName := g.cfg.Scene.Script
	if scriptName == "" {
		scriptName = spec.Script
	}
	if scriptName != "" {
		src, err := scene.LoadScript(scriptName)
		if err != nil {
			return loadResult{err: fmt.Errorf("load script %s: %w", scriptName, err)}
		}
		driver, err = autopilot.New(scriptName, src)
		if err != nil {
			return loadResult{err: err}
		}
		keys = input.Sources{g.keyboard, driver}
	}

	s, err := scene.Build(*spec, scene.Options{
		Input: g.input,
		Keys:  keys,
		TPS:   g.cfg.TPS,
		Style: g.cfg.Scene.Style,
	})
	if err != nil {
		return loadResult{err: err}
	}
	return loadResult{scene: s, autopilot: driver}
}

func (g *Game) setScene(res loadResult) {
	if g.scene != nil {
		g.scene.Close()
	}
	releaseAutopilotKeys(g.autopilot, g.input)
	g.scene = res.scene
	g.autopilot = res.autopilot
	g.loadErr = nil
	logger.L().Info("scene ready",
		"scene", g.scene.Spec.Name,
		"style", g.scene.Spec.Movement.Style,
		"autopilot", g.autopilot != nil,
	)
}

// releaseAutopilotKeys lifts the keys an outgoing driver still holds. Its
// replacement starts with nothing held and would never release them.
func releaseAutopilotKeys(d *autopilot.Driver, in *input.State) {
	if d == nil || in == nil {
		return
	}
	for _, k := range d.Held() {
		in.OnKeyUp(k)
	}
}

// ReloadScene rebuilds the scene from disk. On failure the running scene
// stays.
func (g *Game) ReloadScene() {
	if g.scene == nil {
		return
	}
	res := g.loadScene()
	if res.err != nil {
		logger.L().Warn("scene reload failed", "file", g.cfg.Scene.File, "err", res.err)
		return
	}
	g.setScene(res)
}

func (g *Game) Update() error {
	g.frames++

	if len(g.chord) > 0 && system.ChordPressed(g.chord[len(g.chord)-1], g.chord[:len(g.chord)-1]...) {
		g.inspector.Toggle()
	}

	if g.scene == nil {
		g.loading.Update()
		select {
		case res := <-g.loadCh:
			switch {
			case errors.Is(res.err, scene.ErrNoPhysics):
				g.loadErr = res.err
				logger.L().Error("No physics engine available", "scene", g.cfg.Scene.File)
			case res.err != nil:
				return fmt.Errorf("load scene %s: %w", g.cfg.Scene.File, res.err)
			default:
				g.setScene(res)
			}
		default:
		}
		return nil
	}

	g.pollWatcher()
	g.inspector.Update()
	g.scene.SetInputPaused(g.cfg.Inspector.CaptureInput && g.inspector.Visible())
	g.scene.Update()
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if !g.affectsScene(name) {
				continue
			}
			logger.L().Info("scene file changed", "file", name)
			g.ReloadScene()
		case err, ok := <-g.watcher.Errors:
			if ok {
				logger.L().Warn("scene watcher", "err", err)
			}
		default:
			return
		}
	}
}

func (g *Game) affectsScene(path string) bool {
	base := filepath.Base(path)
	if base == filepath.Base(g.cfg.Scene.File) {
		return true
	}
	return g.autopilot != nil && base == filepath.Base(g.autopilot.Name())
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.scene == nil {
		g.loading.Draw(screen, g.loadErr)
		return
	}

	g.scene.Draw(screen)
	if g.debug {
		system.DrawPhysicsDebug(g.scene.Physics.Space(), g.scene.World, screen)
		system.DrawCharacterDebug(g.scene.World, screen)
	}
	g.inspector.Draw(screen)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.1f  FPS: %.1f", ebiten.ActualTPS(), ebiten.ActualFPS()), 10, screen.Bounds().Dy()-20)
}

// Layout follows the window so a resize changes how much of the showroom is
// visible rather than stretching it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.scene != nil {
		g.scene.Close()
	}
}

// parseChord maps key names such as "shift" or "i" to Ebitengine keys.
func parseChord(names []string) ([]ebiten.Key, error) {
	keys := make([]ebiten.Key, 0, len(names))
	for _, name := range names {
		k, ok := keyByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown key %q", name)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func keyByName(name string) (ebiten.Key, bool) {
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, true
		}
	}
	return 0, false
}
