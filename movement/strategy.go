package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/showroom/common"
)

// Strategy applies translation and rotation commands to a character. A scene
// uses exactly one strategy for its whole lifetime.
type Strategy interface {
	// Translate moves along the entity's forward axis by amount.
	Translate(amount float64)
	// Rotate turns about common.WorldUp by amount radians.
	Rotate(amount float64)
	// EndFrame runs after all commands of a frame.
	EndFrame(rotating bool)
}

// Kinematic mutates the transform directly. Translations go through Collider
// when one is set, otherwise the position is written as is. Commands issued in
// the same frame accumulate.
type Kinematic struct {
	Entity   Transformable
	Collider Collider
}

func NewKinematic(entity Transformable, collider Collider) *Kinematic {
	return &Kinematic{Entity: entity, Collider: collider}
}

func (k *Kinematic) Translate(amount float64) {
	from := k.Entity.Position()
	delta := k.Entity.Forward().Mul(amount)
	if k.Collider != nil {
		k.Entity.SetPosition(k.Collider.MoveWithCollisions(from, delta))
		return
	}
	k.Entity.SetPosition(from.Add(delta))
}

func (k *Kinematic) Rotate(amount float64) {
	q := mgl64.QuatRotate(amount, common.WorldUp).Mul(k.Entity.Orientation())
	k.Entity.SetOrientation(q.Normalize())
}

func (k *Kinematic) EndFrame(bool) {}

// Dynamic drives a rigid body by velocity. Each command overwrites the
// previous velocity, so when opposing keys are held the later command wins.
type Dynamic struct {
	Entity  Transformable
	Body    RigidBody
	Damping float64
}

func NewDynamic(entity Transformable, body RigidBody, damping float64) *Dynamic {
	return &Dynamic{Entity: entity, Body: body, Damping: damping}
}

func (d *Dynamic) Translate(amount float64) {
	d.Body.SetLinearVelocity(d.Entity.Forward().Mul(amount))
}

func (d *Dynamic) Rotate(amount float64) {
	d.Body.SetAngularDamping(d.Damping)
	d.Body.SetAngularVelocity(common.WorldUp.Mul(amount))
}

// EndFrame zeroes angular velocity when no rotation key is held so damped
// spin from an earlier frame does not linger.
func (d *Dynamic) EndFrame(rotating bool) {
	if !rotating {
		d.Body.SetAngularVelocity(mgl64.Vec3{})
	}
}
