// Package movement turns a keyboard snapshot into one frame of character
// motion and walk-animation state. The character is reached only through the
// capability interfaces below so the controller runs against any engine.
package movement

import "github.com/go-gl/mathgl/mgl64"

// Transformable is a movable entity with a pose.
type Transformable interface {
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
	Orientation() mgl64.Quat
	SetOrientation(q mgl64.Quat)
	// Forward is common.LocalForward rotated into world space.
	Forward() mgl64.Vec3
}

// Collider sweeps a displacement against collision geometry and returns where
// the entity ends up.
type Collider interface {
	MoveWithCollisions(from, displacement mgl64.Vec3) mgl64.Vec3
}

// RigidBody is a dynamic physics body driven by velocities.
type RigidBody interface {
	LinearVelocity() mgl64.Vec3
	SetLinearVelocity(v mgl64.Vec3)
	AngularVelocity() mgl64.Vec3
	SetAngularVelocity(w mgl64.Vec3)
	SetAngularDamping(d float64)
}

// AnimatedClip is a playable frame range such as the "Walk" clip.
type AnimatedClip interface {
	Start(loop bool, speed float64, from, to int, blend bool)
	Stop()
	From() int
	To() int
}
