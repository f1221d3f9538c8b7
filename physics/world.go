// Package physics simulates the character on the ground plane with Chipmunk.
// World X maps to space X and world Z maps to space Y; height is carried
// through untouched.
package physics

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

const (
	collisionTypeStatic cp.CollisionType = iota + 1
	collisionTypeCharacter
)

const (
	categoryStatic uint = 1 << iota
	categoryCharacter
)

var (
	staticFilter    = cp.ShapeFilter{Group: cp.NO_GROUP, Categories: categoryStatic, Mask: cp.ALL_CATEGORIES}
	characterFilter = cp.ShapeFilter{Group: cp.NO_GROUP, Categories: categoryCharacter, Mask: cp.ALL_CATEGORIES}
	// sweepFilter only sees static geometry.
	sweepFilter = cp.ShapeFilter{Group: cp.NO_GROUP, Categories: categoryCharacter, Mask: categoryStatic}
)

var ErrInvalidBody = errors.New("physics: invalid body spec")

type Config struct {
	Iterations uint `yaml:"iterations"`
	// LinearDamping is the fraction of velocity a body keeps after one second.
	LinearDamping float64 `yaml:"linear_damping"`
}

func DefaultConfig() Config {
	return Config{Iterations: 20, LinearDamping: 0.05}
}

// World owns the Chipmunk space, the static showroom geometry and the
// character bodies.
type World struct {
	space  *cp.Space
	bodies []*Body
}

func NewWorld(cfg Config) *World {
	if cfg.Iterations == 0 {
		cfg.Iterations = DefaultConfig().Iterations
	}
	space := cp.NewSpace()
	space.Iterations = cfg.Iterations
	space.SetGravity(cp.Vector{})
	if cfg.LinearDamping > 0 && cfg.LinearDamping <= 1 {
		space.SetDamping(cfg.LinearDamping)
	}
	return &World{space: space}
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

func (w *World) Bodies() []*Body {
	if w == nil {
		return nil
	}
	return w.bodies
}

// Step advances dynamic bodies by dt seconds.
func (w *World) Step(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	w.space.Step(dt)
}

// AddStaticBox adds a solid box centred on center. size is read on X and Z.
func (w *World) AddStaticBox(center, size mgl64.Vec3, yaw float64) *cp.Shape {
	body := cp.NewStaticBody()
	body.SetPosition(toPlane(center))
	body.SetAngle(-yaw)
	shape := cp.NewBox(body, size.X(), size.Z(), 0)
	return w.addStatic(body, shape)
}

// AddRoom encloses the XZ footprint of a box of the given size with four wall
// segments of the given thickness. The inside stays free.
func (w *World) AddRoom(center, size mgl64.Vec3, thickness float64) []*cp.Shape {
	hx := size.X() / 2
	hz := size.Z() / 2
	c := toPlane(center)
	corners := []cp.Vector{
		{X: c.X - hx, Y: c.Y - hz},
		{X: c.X + hx, Y: c.Y - hz},
		{X: c.X + hx, Y: c.Y + hz},
		{X: c.X - hx, Y: c.Y + hz},
	}
	radius := thickness / 2
	shapes := make([]*cp.Shape, 0, len(corners))
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		shapes = append(shapes, w.addStatic(w.space.StaticBody, cp.NewSegment(w.space.StaticBody, a, b, radius)))
	}
	return shapes
}

func (w *World) addStatic(body *cp.Body, shape *cp.Shape) *cp.Shape {
	if body != w.space.StaticBody {
		w.space.AddBody(body)
	}
	shape.SetFriction(0.8)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeStatic)
	shape.SetFilter(staticFilter)
	return w.space.AddShape(shape)
}

// BodySpec describes a character body. Radius is the footprint of the
// character's collision volume on the ground plane.
type BodySpec struct {
	Position   mgl64.Vec3
	Yaw        float64
	Radius     float64
	Mass       float64
	Elasticity float64
	Friction   float64
}

func (s BodySpec) validate(dynamic bool) error {
	if s.Radius <= 0 {
		return fmt.Errorf("%w: radius %v", ErrInvalidBody, s.Radius)
	}
	if dynamic && s.Mass <= 0 {
		return fmt.Errorf("%w: mass %v", ErrInvalidBody, s.Mass)
	}
	return nil
}

// AddDynamicCharacter creates a body driven by velocities and resolved by
// the solver.
func (w *World) AddDynamicCharacter(spec BodySpec) (*Body, error) {
	if err := spec.validate(true); err != nil {
		return nil, err
	}
	body := cp.NewBody(spec.Mass, cp.MomentForCircle(spec.Mass, 0, spec.Radius, cp.Vector{}))
	b := w.addCharacter(body, spec)
	body.SetVelocityUpdateFunc(b.updateVelocity)
	return b, nil
}

// AddKinematicCharacter creates a body that only moves through
// MoveWithCollisions.
func (w *World) AddKinematicCharacter(spec BodySpec) (*Body, error) {
	if err := spec.validate(false); err != nil {
		return nil, err
	}
	return w.addCharacter(cp.NewKinematicBody(), spec), nil
}

func (w *World) addCharacter(body *cp.Body, spec BodySpec) *Body {
	body.SetPosition(toPlane(spec.Position))
	body.SetAngle(-spec.Yaw)
	w.space.AddBody(body)

	shape := cp.NewCircle(body, spec.Radius, cp.Vector{})
	shape.SetElasticity(spec.Elasticity)
	shape.SetFriction(spec.Friction)
	shape.SetCollisionType(collisionTypeCharacter)
	shape.SetFilter(characterFilter)
	w.space.AddShape(shape)

	b := &Body{world: w, body: body, shape: shape, y: spec.Position.Y(), radius: spec.Radius}
	w.bodies = append(w.bodies, b)
	return b
}

// Remove takes b out of the space.
func (w *World) Remove(b *Body) {
	if w == nil || b == nil || b.world != w {
		return
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	b.world = nil
}

func toPlane(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Z()}
}
