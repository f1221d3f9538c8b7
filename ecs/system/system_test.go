package system

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/showroom/animation"
	"github.com/milk9111/showroom/ecs"
	"github.com/milk9111/showroom/ecs/component"
	"github.com/milk9111/showroom/input"
	"github.com/milk9111/showroom/movement"
	"github.com/milk9111/showroom/physics"
)

// scriptedKeys hands out one batch of events per tick.
type scriptedKeys struct {
	pressed  [][]string
	released [][]string
	reads    int
}

func (s *scriptedKeys) AppendPressed(keys []string) []string {
	s.reads++
	if len(s.pressed) == 0 {
		return keys
	}
	keys = append(keys, s.pressed[0]...)
	s.pressed = s.pressed[1:]
	return keys
}

func (s *scriptedKeys) AppendReleased(keys []string) []string {
	if len(s.released) == 0 {
		return keys
	}
	keys = append(keys, s.released[0]...)
	s.released = s.released[1:]
	return keys
}

type rig struct {
	world  *ecs.World
	keys   *scriptedKeys
	state  *input.State
	xform  *component.Transform
	clip   *animation.Clip
	events *EventLogSystem
}

var testMovement = movement.Config{WalkSpeed: 0.1, ReverseSpeed: 0.05, RotationSpeed: 0.5}

func newRig(t *testing.T, dynamic bool) *rig {
	t.Helper()
	w := ecs.NewWorld()
	pw := physics.NewWorld(physics.DefaultConfig())
	state := input.NewState(input.DefaultBindings())
	xform := component.NewTransform(mgl64.Vec3{0, -1, 0}, 0, 1)
	clip := animation.NewClip("Walk", 0, 24, 30)

	var (
		body     *physics.Body
		strategy movement.Strategy
		err      error
	)
	spec := physics.BodySpec{Position: xform.Pos, Radius: 0.4, Mass: 10}
	if dynamic {
		body, err = pw.AddDynamicCharacter(spec)
		strategy = movement.NewDynamic(xform, body, 500)
	} else {
		body, err = pw.AddKinematicCharacter(spec)
		strategy = movement.NewKinematic(xform, body)
	}
	if err != nil {
		t.Fatal(err)
	}
	ctrl, err := movement.NewController(testMovement, state, strategy, clip)
	if err != nil {
		t.Fatal(err)
	}

	e := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, e, component.TransformComponent.Kind(), xform))
	mustAdd(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	mustAdd(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{State: state}))
	mustAdd(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body}))
	mustAdd(t, ecs.Add(w, e, component.CharacterControllerComponent.Kind(), &component.CharacterController{Controller: ctrl}))
	mustAdd(t, ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
		Library: animation.NewLibrary(clip),
		Watched: clip.Name,
	}))

	keys := &scriptedKeys{}
	events := NewEventLogSystem()
	w.AddSystem(NewInputSystem(keys))
	w.AddSystem(NewCharacterControllerSystem())
	w.AddSystem(NewPhysicsSystem(pw, 60))
	w.AddSystem(NewAnimationSystem(60))
	w.AddSystem(NewCameraSystem())
	w.AddSystem(events)

	return &rig{world: w, keys: keys, state: state, xform: xform, clip: clip, events: events}
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func (r *rig) tick(pressed, released []string) {
	r.keys.pressed = append(r.keys.pressed, pressed)
	r.keys.released = append(r.keys.released, released)
	r.world.Update()
}

func TestKinematicPressWalkRelease(t *testing.T) {
	r := newRig(t, false)

	r.tick([]string{"w"}, nil)
	if got := r.xform.Pos.Z(); math.Abs(got-testMovement.WalkSpeed) > 1e-9 {
		t.Fatalf("z after one tick = %v, want %v", got, testMovement.WalkSpeed)
	}
	if !r.clip.Playing() {
		t.Fatalf("walk clip should be playing")
	}

	r.tick(nil, []string{"w"})
	if got := r.xform.Pos.Z(); math.Abs(got-testMovement.WalkSpeed) > 1e-9 {
		t.Fatalf("z after release = %v, want unchanged", got)
	}
	if r.clip.Playing() {
		t.Fatalf("walk clip should have stopped")
	}
	if r.xform.Pos.Y() != -1 {
		t.Fatalf("height changed to %v", r.xform.Pos.Y())
	}

	recent := r.events.Recent()
	if len(recent) != 2 || recent[0].Kind != ecs.AnimationStarted || recent[1].Kind != ecs.AnimationStopped {
		t.Fatalf("unexpected animation events %+v", recent)
	}
	if recent[0].Clip != "Walk" {
		t.Fatalf("event clip = %q", recent[0].Clip)
	}
}

func TestKinematicOpposingRotationCancels(t *testing.T) {
	r := newRig(t, false)
	r.tick([]string{"a", "d"}, nil)
	if yaw := r.xform.Yaw(); math.Abs(yaw) > 1e-9 {
		t.Fatalf("yaw = %v, want 0", yaw)
	}
}

func TestDynamicCharacterFollowsBody(t *testing.T) {
	r := newRig(t, true)

	r.tick([]string{"w", "d"}, nil)
	if r.xform.Pos.Z() <= 0 {
		t.Fatalf("dynamic body should have moved forward, z = %v", r.xform.Pos.Z())
	}
	if math.Abs(r.xform.Pos.X()) > 1e-9 {
		t.Fatalf("first step should be straight ahead, x = %v", r.xform.Pos.X())
	}
	if r.xform.Yaw() <= 0 {
		t.Fatalf("rotate-right should turn towards +X, yaw = %v", r.xform.Yaw())
	}
	if r.xform.Pos.Y() != -1 {
		t.Fatalf("height changed to %v", r.xform.Pos.Y())
	}

	yaw := r.xform.Yaw()
	r.tick(nil, []string{"d"})
	if math.Abs(r.xform.Yaw()-yaw) > 1e-9 {
		t.Fatalf("spin should stop once the key is released, yaw %v -> %v", yaw, r.xform.Yaw())
	}
}

func TestInputSystemReadsSourceOnce(t *testing.T) {
	w := ecs.NewWorld()
	state := input.NewState(input.DefaultBindings())
	for i := 0; i < 3; i++ {
		e := ecs.CreateEntity(w)
		mustAdd(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{State: state}))
	}
	keys := &scriptedKeys{pressed: [][]string{{"w"}}}
	sys := NewInputSystem(keys)

	sys.Update(w)
	if keys.reads != 1 {
		t.Fatalf("source read %d times, want 1", keys.reads)
	}
	if !state.IsHeld("w") {
		t.Fatalf("w should be held")
	}
}

func TestInputSystemPaused(t *testing.T) {
	w := ecs.NewWorld()
	state := input.NewState(input.DefaultBindings())
	e := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{State: state}))

	keys := &scriptedKeys{pressed: [][]string{{"w"}, {"s"}}}
	sys := NewInputSystem(keys)
	sys.Paused = true
	sys.Update(w)
	if state.IsHeld("w") {
		t.Fatalf("paused system should drop events")
	}

	sys.Paused = false
	sys.Update(w)
	if state.IsHeld("w") || !state.IsHeld("s") {
		t.Fatalf("dropped events must not be replayed, held = %v", state.HeldKeys())
	}
}

func TestCameraFollowsPlayer(t *testing.T) {
	cases := []struct {
		name   string
		cam    component.Camera
		expect mgl64.Vec3
	}{
		{"snap", component.Camera{Locked: true}, mgl64.Vec3{2, 0, 4}},
		{"smoothed", component.Camera{Locked: true, Smoothness: 0.5}, mgl64.Vec3{1, 0, 2}},
		{"unlocked", component.Camera{Focus: mgl64.Vec3{-1, 0, -1}}, mgl64.Vec3{-1, 0, -1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			player := ecs.CreateEntity(w)
			mustAdd(t, ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
			mustAdd(t, ecs.Add(w, player, component.TransformComponent.Kind(), component.NewTransform(mgl64.Vec3{2, 0, 4}, 0, 1)))

			camEntity := ecs.CreateEntity(w)
			cam := c.cam
			mustAdd(t, ecs.Add(w, camEntity, component.CameraComponent.Kind(), &cam))

			NewCameraSystem().Update(w)
			for i := 0; i < 3; i++ {
				if math.Abs(cam.Focus[i]-c.expect[i]) > 1e-9 {
					t.Fatalf("focus = %v, want %v", cam.Focus, c.expect)
				}
			}
		})
	}
}

func TestViewToScreen(t *testing.T) {
	v := View{Focus: mgl64.Vec3{1, 5, 1}, Scale: 10, Width: 100, Height: 50}
	cases := []struct {
		x, z   float64
		sx, sy float32
	}{
		{1, 1, 50, 25},
		{2, 3, 60, 5},
		{0, 0, 40, 35},
	}
	for _, c := range cases {
		sx, sy := v.ToScreen(c.x, c.z)
		if sx != c.sx || sy != c.sy {
			t.Fatalf("ToScreen(%v, %v) = (%v, %v), want (%v, %v)", c.x, c.z, sx, sy, c.sx, c.sy)
		}
	}
}

func TestCameraViewUsesZoom(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{Zoom: 2, Focus: mgl64.Vec3{3, 0, 3}}))

	v := CameraView(w, 640, 480)
	if v.Scale != 96 || v.Focus.X() != 3 || v.Width != 640 || v.Height != 480 {
		t.Fatalf("unexpected view %+v", v)
	}
}

func TestSkyColorBlend(t *testing.T) {
	sky := &component.Sky{
		Zenith:  color.RGBA{R: 0, G: 100, B: 200, A: 255},
		Horizon: color.RGBA{R: 200, G: 100, B: 0, A: 255},
	}
	cases := []struct {
		t    float64
		want color.RGBA
	}{
		{0, sky.Zenith},
		{1, sky.Horizon},
		{0.5, color.RGBA{R: 100, G: 100, B: 100, A: 255}},
		{-1, sky.Zenith},
		{2, sky.Horizon},
	}
	for _, c := range cases {
		if got := SkyColor(sky, c.t); got != c.want {
			t.Fatalf("SkyColor(%v) = %v, want %v", c.t, got, c.want)
		}
	}
}
