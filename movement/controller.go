package movement

import (
	"errors"
	"fmt"

	"github.com/milk9111/showroom/input"
)

var (
	ErrNilInput    = errors.New("movement: input state is nil")
	ErrNilStrategy = errors.New("movement: strategy is nil")
)

// Config holds per-frame speeds. Speeds are applied once per Update and are
// not scaled by elapsed time.
type Config struct {
	WalkSpeed     float64 `yaml:"walk_speed"`
	ReverseSpeed  float64 `yaml:"reverse_speed"`
	RotationSpeed float64 `yaml:"rotation_speed"`
}

func (c Config) Validate() error {
	if c.WalkSpeed < 0 || c.ReverseSpeed < 0 || c.RotationSpeed < 0 {
		return fmt.Errorf("movement: speeds must be non-negative: walk=%v reverse=%v rotation=%v", c.WalkSpeed, c.ReverseSpeed, c.RotationSpeed)
	}
	return nil
}

// Controller reads an input snapshot once per frame and issues movement,
// rotation and walk-animation commands.
type Controller struct {
	cfg      Config
	input    *input.State
	strategy Strategy
	clip     AnimatedClip
}

// NewController binds a controller to its input and strategy. clip may be
// nil, in which case the animation step is skipped.
func NewController(cfg Config, in *input.State, strategy Strategy, clip AnimatedClip) (*Controller, error) {
	if in == nil {
		return nil, ErrNilInput
	}
	if strategy == nil {
		return nil, ErrNilStrategy
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Controller{cfg: cfg, input: in, strategy: strategy, clip: clip}, nil
}

func (c *Controller) Config() Config     { return c.cfg }
func (c *Controller) Strategy() Strategy { return c.strategy }

// SetConfig swaps the speeds, used when a scene is hot reloaded.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// Update runs one frame. Every branch is gated on its own key.
func (c *Controller) Update() {
	in := c.input

	if in.Held(input.Forward) {
		c.strategy.Translate(c.cfg.WalkSpeed)
	}
	if in.Held(input.Backward) {
		c.strategy.Translate(-c.cfg.ReverseSpeed)
	}

	rotating := false
	if in.Held(input.RotateLeft) {
		c.strategy.Rotate(-c.cfg.RotationSpeed)
		rotating = true
	}
	if in.Held(input.RotateRight) {
		c.strategy.Rotate(c.cfg.RotationSpeed)
		rotating = true
	}

	if c.clip != nil {
		if in.AnyMovementKeyHeld() {
			c.clip.Start(true, 1.0, c.clip.From(), c.clip.To(), false)
		} else {
			c.clip.Stop()
		}
	}

	c.strategy.EndFrame(rotating)
}
