package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/showroom/animation"
	"github.com/milk9111/showroom/ecs"
	"github.com/milk9111/showroom/ecs/component"
	"github.com/milk9111/showroom/ecs/system"
	"github.com/milk9111/showroom/input"
	"github.com/milk9111/showroom/movement"
	"github.com/milk9111/showroom/physics"
)

var ErrNoPhysics = errors.New("scene: no physics engine available")

// Options carries the host-owned pieces a scene is built around.
type Options struct {
	Input *input.State
	Keys  input.KeySource
	TPS   int
	// Style overrides the scene's movement style when set.
	Style string
}

// Scene is a built, running showroom.
type Scene struct {
	Spec       Spec
	World      *ecs.World
	Physics    *physics.World
	Player     ecs.Entity
	Transform  *component.Transform
	Body       *physics.Body
	Controller *movement.Controller
	Walk       *animation.Clip

	input  *system.InputSystem
	events *system.EventLogSystem
	render *system.RenderSystem
}

// Build creates the ECS world for spec: floor, showroom walls, light, sky,
// camera and the controllable character, with systems registered in tick
// order.
func Build(spec Spec, opts Options) (*Scene, error) {
	if opts.Input == nil {
		return nil, movement.ErrNilInput
	}
	if opts.Style != "" {
		spec.Movement.Style = opts.Style
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if !spec.Physics.Enabled {
		return nil, ErrNoPhysics
	}
	opts.Input.SetBindings(spec.Bindings)

	s := &Scene{
		Spec:    spec,
		World:   ecs.NewWorld(),
		Physics: physics.NewWorld(spec.Physics.Config),
		render:  system.NewRenderSystem(),
	}

	if err := s.addGround(); err != nil {
		return nil, err
	}
	if err := s.addShowroom(); err != nil {
		return nil, err
	}
	if err := s.addLight(); err != nil {
		return nil, err
	}
	if err := s.addSky(); err != nil {
		return nil, err
	}
	if err := s.addCharacter(opts.Input); err != nil {
		return nil, err
	}
	if err := s.addCamera(); err != nil {
		return nil, err
	}

	s.input = system.NewInputSystem(opts.Keys)
	s.events = system.NewEventLogSystem()
	s.World.AddSystem(s.input)
	s.World.AddSystem(system.NewCharacterControllerSystem())
	s.World.AddSystem(system.NewPhysicsSystem(s.Physics, opts.TPS))
	s.World.AddSystem(system.NewAnimationSystem(opts.TPS))
	s.World.AddSystem(system.NewCameraSystem())
	s.World.AddSystem(s.events)
	return s, nil
}

func (s *Scene) addGround() error {
	e := ecs.CreateEntity(s.World)
	g := s.Spec.Ground
	if err := ecs.Add(s.World, e, component.TransformComponent.Kind(), component.NewTransform(g.Position.Vec3(), 0, 1)); err != nil {
		return fmt.Errorf("scene: add ground: %w", err)
	}
	return ecs.Add(s.World, e, component.GroundComponent.Kind(), &component.Ground{Width: g.Width, Depth: g.Depth})
}

func (s *Scene) addShowroom() error {
	r := s.Spec.Showroom
	e := ecs.CreateEntity(s.World)
	if err := ecs.Add(s.World, e, component.TransformComponent.Kind(), component.NewTransform(r.Position.Vec3(), 0, 1)); err != nil {
		return fmt.Errorf("scene: add showroom: %w", err)
	}
	if err := ecs.Add(s.World, e, component.ShowroomComponent.Kind(), &component.Showroom{Width: r.Width, Depth: r.Depth}); err != nil {
		return fmt.Errorf("scene: add showroom: %w", err)
	}
	s.Physics.AddRoom(r.Position.Vec3(), mgl64.Vec3{r.Width, r.Height, r.Depth}, r.WallThickness)
	return nil
}

func (s *Scene) addLight() error {
	e := ecs.CreateEntity(s.World)
	return ecs.Add(s.World, e, component.LightComponent.Kind(), &component.Light{Intensity: s.Spec.Light.Intensity})
}

func (s *Scene) addSky() error {
	zenith, horizon, err := s.Spec.Sky.Colors()
	if err != nil {
		return err
	}
	e := ecs.CreateEntity(s.World)
	return ecs.Add(s.World, e, component.SkyComponent.Kind(), &component.Sky{Zenith: zenith, Horizon: horizon})
}

func (s *Scene) addCharacter(in *input.State) error {
	c := s.Spec.Character
	yaw := mgl64.DegToRad(c.Yaw)
	s.Transform = component.NewTransform(c.Position.Vec3(), yaw, c.Scale)

	bodySpec := physics.BodySpec{
		Position:   c.Position.Vec3(),
		Yaw:        yaw,
		Radius:     c.Radius,
		Mass:       c.Mass,
		Elasticity: c.Restitution,
		Friction:   c.Friction,
	}
	var (
		strategy movement.Strategy
		err      error
	)
	switch s.Spec.Movement.Style {
	case StyleDynamic:
		s.Body, err = s.Physics.AddDynamicCharacter(bodySpec)
		if err == nil {
			strategy = movement.NewDynamic(s.Transform, s.Body, s.Spec.Movement.AngularDamping)
		}
	default:
		s.Body, err = s.Physics.AddKinematicCharacter(bodySpec)
		if err == nil {
			strategy = movement.NewKinematic(s.Transform, s.Body)
		}
	}
	if err != nil {
		return fmt.Errorf("scene: add character body: %w", err)
	}

	cfg, err := s.Spec.Movement.Config()
	if err != nil {
		return err
	}
	s.Walk = animation.NewClip(c.Walk.Name, c.Walk.From, c.Walk.To, c.Walk.FPS)
	s.Controller, err = movement.NewController(cfg, in, strategy, s.Walk)
	if err != nil {
		return fmt.Errorf("scene: add character controller: %w", err)
	}

	e := ecs.CreateEntity(s.World)
	s.Player = e
	adds := []error{
		ecs.Add(s.World, e, component.TransformComponent.Kind(), s.Transform),
		ecs.Add(s.World, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
		ecs.Add(s.World, e, component.InputComponent.Kind(), &component.Input{State: in}),
		ecs.Add(s.World, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: s.Body}),
		ecs.Add(s.World, e, component.CharacterControllerComponent.Kind(), &component.CharacterController{
			Controller: s.Controller,
			Style:      s.Spec.Movement.Style,
		}),
		ecs.Add(s.World, e, component.AnimationComponent.Kind(), &component.Animation{
			Library: animation.NewLibrary(s.Walk),
			Watched: s.Walk.Name,
		}),
	}
	if err := errors.Join(adds...); err != nil {
		return fmt.Errorf("scene: add character: %w", err)
	}
	return nil
}

func (s *Scene) addCamera() error {
	cam := s.Spec.Camera
	e := ecs.CreateEntity(s.World)
	return ecs.Add(s.World, e, component.CameraComponent.Kind(), &component.Camera{
		Locked:     cam.Locked,
		Zoom:       cam.Zoom,
		Smoothness: cam.Smoothness,
		Focus:      s.Transform.Pos,
	})
}

// Update runs one tick of every system.
func (s *Scene) Update() {
	s.World.Update()
}

func (s *Scene) Draw(screen *ebiten.Image) {
	s.render.Draw(s.World, screen)
}

// SetInputPaused stops key events from reaching the character.
func (s *Scene) SetInputPaused(paused bool) {
	s.input.Paused = paused
}

// RecentEvents returns the latest walk animation transitions.
func (s *Scene) RecentEvents() []ecs.AnimationEvent {
	return s.events.Recent()
}

// ResetCharacter puts the character back on its spawn pose and stops it.
func (s *Scene) ResetCharacter() {
	c := s.Spec.Character
	pos := c.Position.Vec3()
	rot := component.NewTransform(pos, mgl64.DegToRad(c.Yaw), c.Scale).Rot

	s.Transform.SetPosition(pos)
	s.Transform.SetOrientation(rot)
	s.Body.SetPosition(pos)
	s.Body.SetOrientation(rot)
	if s.Body.Dynamic() {
		s.Body.SetLinearVelocity(mgl64.Vec3{})
		s.Body.SetAngularVelocity(mgl64.Vec3{})
	}
}

// Close removes the character from the physics world and the ECS world, so
// a replaced scene no longer drives anything.
func (s *Scene) Close() {
	if s == nil {
		return
	}
	if s.Physics != nil && s.Body != nil {
		s.Physics.Remove(s.Body)
	}
	if s.World != nil {
		s.World.DestroyEntity(s.Player)
	}
}
