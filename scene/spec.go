package scene

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/showroom/input"
	"github.com/milk9111/showroom/movement"
	"github.com/milk9111/showroom/physics"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// DefaultScene is the embedded scene loaded when none is named.
const DefaultScene = "showroom.yaml"

const (
	StyleKinematic = "kinematic"
	StyleDynamic   = "dynamic"
)

var (
	ErrInvalidScene = errors.New("scene: invalid scene")
	ErrUnknownStyle = errors.New("scene: unknown movement style")
)

type Spec struct {
	Name      string         `yaml:"name"`
	Character CharacterSpec  `yaml:"character"`
	Showroom  RoomSpec       `yaml:"showroom"`
	Ground    RoomSpec       `yaml:"ground"`
	Camera    CameraSpec     `yaml:"camera"`
	Light     LightSpec      `yaml:"light"`
	Sky       SkySpec        `yaml:"sky"`
	Physics   PhysicsSpec    `yaml:"physics"`
	Movement  MovementSpec   `yaml:"movement"`
	Bindings  input.Bindings `yaml:"bindings"`
	// Script names an autopilot script under scripts/ that drives the
	// character instead of the keyboard.
	Script string `yaml:"script"`
}

type VecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v VecSpec) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

type CharacterSpec struct {
	Name     string  `yaml:"name"`
	Position VecSpec `yaml:"position"`
	// Yaw is the initial heading in degrees, 0 facing +Z.
	Yaw         float64  `yaml:"yaw"`
	Scale       float64  `yaml:"scale"`
	Radius      float64  `yaml:"radius"`
	Mass        float64  `yaml:"mass"`
	Restitution float64  `yaml:"restitution"`
	Friction    float64  `yaml:"friction"`
	Walk        ClipSpec `yaml:"walk"`
}

// ClipSpec is a frame range of the character's imported animation.
type ClipSpec struct {
	Name string  `yaml:"name"`
	From int     `yaml:"from"`
	To   int     `yaml:"to"`
	FPS  float64 `yaml:"fps"`
}

type RoomSpec struct {
	Position      VecSpec `yaml:"position"`
	Width         float64 `yaml:"width"`
	Depth         float64 `yaml:"depth"`
	Height        float64 `yaml:"height"`
	WallThickness float64 `yaml:"wall_thickness"`
}

type CameraSpec struct {
	Locked     bool    `yaml:"locked"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

type LightSpec struct {
	Intensity float64 `yaml:"intensity"`
}

// SkySpec is the backdrop behind the showroom, a vertical blend between two
// named colors (SVG names, e.g. "midnightblue").
type SkySpec struct {
	Zenith  string `yaml:"zenith"`
	Horizon string `yaml:"horizon"`
}

// Colors resolves the named colors.
func (s SkySpec) Colors() (zenith, horizon color.RGBA, err error) {
	var ok bool
	zenith, ok = colornames.Map[strings.ToLower(s.Zenith)]
	if !ok {
		return zenith, horizon, fmt.Errorf("%w: sky color %q", ErrInvalidScene, s.Zenith)
	}
	horizon, ok = colornames.Map[strings.ToLower(s.Horizon)]
	if !ok {
		return zenith, horizon, fmt.Errorf("%w: sky color %q", ErrInvalidScene, s.Horizon)
	}
	return zenith, horizon, nil
}

type PhysicsSpec struct {
	Enabled        bool `yaml:"enabled"`
	physics.Config `yaml:",inline"`
}

type MovementSpec struct {
	Style     string          `yaml:"style"`
	Kinematic movement.Config `yaml:"kinematic"`
	Dynamic   movement.Config `yaml:"dynamic"`
	// AngularDamping is applied to the dynamic body while it turns.
	AngularDamping float64 `yaml:"angular_damping"`
}

// Config returns the speeds for the selected style.
func (m MovementSpec) Config() (movement.Config, error) {
	switch m.Style {
	case StyleKinematic:
		return m.Kinematic, nil
	case StyleDynamic:
		return m.Dynamic, nil
	default:
		return movement.Config{}, fmt.Errorf("%w: %q", ErrUnknownStyle, m.Style)
	}
}

// DefaultSpec is the showroom demo: a 10x10 room on a 10x10 floor with the
// character just inside, walking at demo speeds.
func DefaultSpec() Spec {
	return Spec{
		Name: "showroom",
		Character: CharacterSpec{
			Name:        "character",
			Position:    VecSpec{0, -1, 0},
			Scale:       0.8,
			Radius:      0.5,
			Mass:        10,
			Restitution: 0.01,
			Friction:    0.5,
			Walk:        ClipSpec{Name: "Walk", From: 0, To: 32, FPS: 30},
		},
		Showroom: RoomSpec{Width: 10, Depth: 10, Height: 10, WallThickness: 0.2},
		Ground:   RoomSpec{Width: 10, Depth: 10},
		Camera:   CameraSpec{Locked: true, Zoom: 1, Smoothness: 0.8},
		Light:    LightSpec{Intensity: 0.7},
		Sky:      SkySpec{Zenith: "midnightblue", Horizon: "lightsteelblue"},
		Physics:  PhysicsSpec{Enabled: true, Config: physics.DefaultConfig()},
		Movement: MovementSpec{
			Style:          StyleKinematic,
			Kinematic:      movement.Config{WalkSpeed: 0.01, ReverseSpeed: 0.01, RotationSpeed: 0.01},
			Dynamic:        movement.Config{WalkSpeed: 1, ReverseSpeed: 1, RotationSpeed: 0.5},
			AngularDamping: 500,
		},
		Bindings: input.DefaultBindings(),
	}
}

// Parse decodes data over DefaultSpec, so a file only lists what it
// changes.
func Parse(data []byte) (*Spec, error) {
	spec := DefaultSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	spec.Bindings = spec.Bindings.WithDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func LoadSpec(filename string) (*Spec, error) {
	data, err := Load(filename)
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", filename, err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", filename, err)
	}
	return spec, nil
}

func (s *Spec) Validate() error {
	c := s.Character
	if c.Scale <= 0 {
		return fmt.Errorf("%w: character scale %v", ErrInvalidScene, c.Scale)
	}
	if c.Radius <= 0 {
		return fmt.Errorf("%w: character radius %v", ErrInvalidScene, c.Radius)
	}
	if c.Walk.To < c.Walk.From {
		return fmt.Errorf("%w: walk clip range %d..%d", ErrInvalidScene, c.Walk.From, c.Walk.To)
	}
	if s.Showroom.Width <= 0 || s.Showroom.Depth <= 0 {
		return fmt.Errorf("%w: showroom %vx%v", ErrInvalidScene, s.Showroom.Width, s.Showroom.Depth)
	}
	if s.Camera.Smoothness < 0 || s.Camera.Smoothness >= 1 {
		return fmt.Errorf("%w: camera smoothness %v outside [0,1)", ErrInvalidScene, s.Camera.Smoothness)
	}
	if _, _, err := s.Sky.Colors(); err != nil {
		return err
	}
	cfg, err := s.Movement.Config()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	if s.Movement.Style == StyleDynamic && c.Mass <= 0 {
		return fmt.Errorf("%w: dynamic character needs mass, got %v", ErrInvalidScene, c.Mass)
	}
	return nil
}
