package movement

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/showroom/animation"
	"github.com/milk9111/showroom/common"
	"github.com/milk9111/showroom/input"
)

const eps = 1e-9

type stubEntity struct {
	pos mgl64.Vec3
	rot mgl64.Quat
}

func newStubEntity() *stubEntity {
	return &stubEntity{rot: mgl64.QuatIdent()}
}

func (s *stubEntity) Position() mgl64.Vec3        { return s.pos }
func (s *stubEntity) SetPosition(p mgl64.Vec3)    { s.pos = p }
func (s *stubEntity) Orientation() mgl64.Quat     { return s.rot }
func (s *stubEntity) SetOrientation(q mgl64.Quat) { s.rot = q }
func (s *stubEntity) Forward() mgl64.Vec3         { return s.rot.Rotate(common.LocalForward) }

type stubBody struct {
	linear  mgl64.Vec3
	angular mgl64.Vec3
	damping float64
	calls   []string
}

func (b *stubBody) LinearVelocity() mgl64.Vec3 { return b.linear }
func (b *stubBody) SetLinearVelocity(v mgl64.Vec3) {
	b.linear = v
	b.calls = append(b.calls, "linear")
}
func (b *stubBody) AngularVelocity() mgl64.Vec3 { return b.angular }
func (b *stubBody) SetAngularVelocity(w mgl64.Vec3) {
	b.angular = w
	b.calls = append(b.calls, "angular")
}
func (b *stubBody) SetAngularDamping(d float64) {
	b.damping = d
	b.calls = append(b.calls, "damping")
}

type stubClip struct {
	playing bool
	starts  int
	stops   int
	from    int
	to      int
	loop    bool
	speed   float64
}

func (c *stubClip) Start(loop bool, speed float64, from, to int, blend bool) {
	c.starts++
	if c.playing {
		return
	}
	c.playing = true
	c.loop = loop
	c.speed = speed
	c.from = from
	c.to = to
}
func (c *stubClip) Stop() {
	c.stops++
	c.playing = false
}
func (c *stubClip) From() int { return 3 }
func (c *stubClip) To() int   { return 42 }

// wallCollider stops any motion past z = limit.
type wallCollider struct {
	limit float64
}

func (w wallCollider) MoveWithCollisions(from, d mgl64.Vec3) mgl64.Vec3 {
	to := from.Add(d)
	if to.Z() > w.limit {
		to[2] = w.limit
	}
	return to
}

var testConfig = Config{WalkSpeed: 0.5, ReverseSpeed: 0.25, RotationSpeed: 0.1}

func press(s *input.State, keys ...string) {
	for _, k := range keys {
		s.OnKeyDown(k)
	}
}

func newKinematic(t *testing.T, clip AnimatedClip) (*Controller, *input.State, *stubEntity) {
	t.Helper()
	in := input.NewState(input.DefaultBindings())
	ent := newStubEntity()
	c, err := NewController(testConfig, in, NewKinematic(ent, nil), clip)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c, in, ent
}

func vecNear(a, b mgl64.Vec3) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func quatNear(a, b mgl64.Quat) bool {
	return math.Abs(a.W-b.W) <= eps && vecNear(a.V, b.V)
}

func TestNewControllerPreconditions(t *testing.T) {
	in := input.NewState(input.DefaultBindings())
	strat := NewKinematic(newStubEntity(), nil)

	if _, err := NewController(testConfig, nil, strat, nil); !errors.Is(err, ErrNilInput) {
		t.Fatalf("expected ErrNilInput, got %v", err)
	}
	if _, err := NewController(testConfig, in, nil, nil); !errors.Is(err, ErrNilStrategy) {
		t.Fatalf("expected ErrNilStrategy, got %v", err)
	}
	if _, err := NewController(Config{WalkSpeed: -1}, in, strat, nil); err == nil {
		t.Fatalf("expected negative speed to be rejected")
	}
	if _, err := NewController(testConfig, in, strat, nil); err != nil {
		t.Fatalf("missing clip should be tolerated: %v", err)
	}
}

func TestKinematicTranslation(t *testing.T) {
	cases := []struct {
		name string
		keys []string
		yaw  float64
		want mgl64.Vec3
	}{
		{"idle", nil, 0, mgl64.Vec3{0, 0, 0}},
		{"forward", []string{"w"}, 0, mgl64.Vec3{0, 0, 0.5}},
		{"backward", []string{"s"}, 0, mgl64.Vec3{0, 0, -0.25}},
		{"forward_and_backward_add_up", []string{"w", "s"}, 0, mgl64.Vec3{0, 0, 0.25}},
		{"forward_facing_x", []string{"w"}, math.Pi / 2, mgl64.Vec3{0.5, 0, 0}},
		{"non_movement_key", []string{"b"}, 0, mgl64.Vec3{0, 0, 0}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctrl, in, ent := newKinematic(t, nil)
			ent.rot = mgl64.QuatRotate(c.yaw, common.WorldUp)
			press(in, c.keys...)

			ctrl.Update()

			if !vecNear(ent.pos, c.want) {
				t.Fatalf("position = %v, want %v", ent.pos, c.want)
			}
			if !quatNear(ent.rot, mgl64.QuatRotate(c.yaw, common.WorldUp)) {
				t.Fatalf("orientation changed without a rotation key")
			}
		})
	}
}

func TestKinematicRotation(t *testing.T) {
	cases := []struct {
		name    string
		keys    []string
		wantYaw float64
	}{
		{"left", []string{"a"}, -0.1},
		{"right", []string{"d"}, 0.1},
		{"both_cancel", []string{"a", "d"}, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctrl, in, ent := newKinematic(t, nil)
			press(in, c.keys...)

			ctrl.Update()

			if got := common.YawOf(ent.rot); math.Abs(got-c.wantYaw) > 1e-9 {
				t.Fatalf("yaw = %v, want %v", got, c.wantYaw)
			}
			if ent.pos.Len() != 0 {
				t.Fatalf("rotation should not translate, got %v", ent.pos)
			}
		})
	}
}

func TestKinematicCollider(t *testing.T) {
	in := input.NewState(input.DefaultBindings())
	ent := newStubEntity()
	ctrl, err := NewController(testConfig, in, NewKinematic(ent, wallCollider{limit: 0.7}), nil)
	if err != nil {
		t.Fatal(err)
	}
	press(in, "w")

	ctrl.Update()
	ctrl.Update()

	if !vecNear(ent.pos, mgl64.Vec3{0, 0, 0.7}) {
		t.Fatalf("collider should clamp position, got %v", ent.pos)
	}
}

func TestUpdateIsRepeatable(t *testing.T) {
	ctrl, in, ent := newKinematic(t, nil)
	press(in, "w")

	ctrl.Update()
	first := ent.pos
	ctrl.Update()
	second := ent.pos.Sub(first)

	if !vecNear(first, second) {
		t.Fatalf("per-frame delta drifted: first=%v second=%v", first, second)
	}
}

func TestDynamicStrategy(t *testing.T) {
	cases := []struct {
		name        string
		keys        []string
		wantLinear  mgl64.Vec3
		wantAngular mgl64.Vec3
		wantDamping float64
	}{
		{"idle_zeroes_spin", nil, mgl64.Vec3{}, mgl64.Vec3{}, 0},
		{"forward", []string{"w"}, mgl64.Vec3{0, 0, 0.5}, mgl64.Vec3{}, 0},
		{"backward_wins_over_forward", []string{"w", "s"}, mgl64.Vec3{0, 0, -0.25}, mgl64.Vec3{}, 0},
		{"left", []string{"a"}, mgl64.Vec3{}, mgl64.Vec3{0, -0.1, 0}, 500},
		{"right_wins_over_left", []string{"a", "d"}, mgl64.Vec3{}, mgl64.Vec3{0, 0.1, 0}, 500},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := input.NewState(input.DefaultBindings())
			ent := newStubEntity()
			body := &stubBody{angular: mgl64.Vec3{0, 3, 0}}
			ctrl, err := NewController(testConfig, in, NewDynamic(ent, body, 500), nil)
			if err != nil {
				t.Fatal(err)
			}
			press(in, c.keys...)

			ctrl.Update()

			if !vecNear(body.linear, c.wantLinear) {
				t.Fatalf("linear = %v, want %v", body.linear, c.wantLinear)
			}
			if !vecNear(body.angular, c.wantAngular) {
				t.Fatalf("angular = %v, want %v", body.angular, c.wantAngular)
			}
			if body.damping != c.wantDamping {
				t.Fatalf("damping = %v, want %v", body.damping, c.wantDamping)
			}
			if ent.pos.Len() != 0 {
				t.Fatalf("dynamic strategy must not write the transform")
			}
		})
	}
}

func TestDynamicDampingBeforeVelocity(t *testing.T) {
	in := input.NewState(input.DefaultBindings())
	body := &stubBody{}
	ctrl, _ := NewController(testConfig, in, NewDynamic(newStubEntity(), body, 500), nil)
	press(in, "d")

	ctrl.Update()

	want := []string{"damping", "angular"}
	if len(body.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", body.calls, want)
	}
	for i := range want {
		if body.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", body.calls, want)
		}
	}
}

func TestWalkAnimation(t *testing.T) {
	clip := &stubClip{}
	ctrl, in, _ := newKinematic(t, clip)

	ctrl.Update()
	if clip.playing || clip.stops != 1 {
		t.Fatalf("idle frame should stop the clip: %+v", clip)
	}

	press(in, "a")
	ctrl.Update()
	if !clip.playing || !clip.loop || clip.speed != 1.0 || clip.from != 3 || clip.to != 42 {
		t.Fatalf("expected looping walk over the clip range: %+v", clip)
	}

	ctrl.Update()
	if clip.starts != 2 || !clip.playing {
		t.Fatalf("second moving frame should request start again: %+v", clip)
	}

	in.OnKeyUp("a")
	ctrl.Update()
	if clip.playing {
		t.Fatalf("expected STOPPED after movement keys released")
	}
}

func TestWalkAnimationIgnoresNonMovementKeys(t *testing.T) {
	clip := &stubClip{}
	ctrl, in, _ := newKinematic(t, clip)
	press(in, "b")

	ctrl.Update()

	if clip.playing {
		t.Fatalf("non-movement key must not start the walk clip")
	}
}

func TestPressWalkRelease(t *testing.T) {
	walk := animation.NewClip("Walk", 0, 30, 30)
	ctrl, in, ent := newKinematic(t, walk)

	in.OnKeyDown("w")
	ctrl.Update()
	if math.Abs(ent.pos.Z()-testConfig.WalkSpeed) > eps {
		t.Fatalf("z = %v, want %v", ent.pos.Z(), testConfig.WalkSpeed)
	}
	if !walk.Playing() {
		t.Fatalf("walk clip should be playing")
	}

	in.OnKeyUp("w")
	before := ent.pos
	ctrl.Update()
	if ent.pos != before {
		t.Fatalf("position moved after release: %v -> %v", before, ent.pos)
	}
	if walk.Playing() {
		t.Fatalf("walk clip should be stopped")
	}
}

func TestSetConfig(t *testing.T) {
	ctrl, in, ent := newKinematic(t, nil)
	if err := ctrl.SetConfig(Config{WalkSpeed: -2}); err == nil {
		t.Fatalf("expected invalid config to be rejected")
	}
	if err := ctrl.SetConfig(Config{WalkSpeed: 2}); err != nil {
		t.Fatal(err)
	}
	press(in, "w")
	ctrl.Update()
	if math.Abs(ent.pos.Z()-2) > eps {
		t.Fatalf("expected new walk speed, got z=%v", ent.pos.Z())
	}
}
