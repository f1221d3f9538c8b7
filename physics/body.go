package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/showroom/common"
)

const (
	maxSlideIterations   = 3
	maxResolveIterations = 4
	contactSkin          = 1e-3
	minMoveSq            = 1e-12
)

// Body is a character body on the ground plane. Yaw about world up maps to
// the negated Chipmunk angle.
type Body struct {
	world  *World
	body   *cp.Body
	shape  *cp.Shape
	y      float64
	radius float64

	angularDamping float64
}

func (b *Body) Shape() *cp.Shape { return b.shape }
func (b *Body) Radius() float64  { return b.radius }

func (b *Body) Dynamic() bool {
	return b.body.GetType() == cp.BODY_DYNAMIC
}

func (b *Body) Position() mgl64.Vec3 {
	p := b.body.Position()
	return mgl64.Vec3{p.X, b.y, p.Y}
}

func (b *Body) SetPosition(p mgl64.Vec3) {
	b.y = p.Y()
	b.body.SetPosition(toPlane(p))
}

func (b *Body) Yaw() float64 {
	return -b.body.Angle()
}

func (b *Body) Orientation() mgl64.Quat {
	return common.QuatFromYaw(b.Yaw())
}

// SetOrientation keeps only the heading of q.
func (b *Body) SetOrientation(q mgl64.Quat) {
	b.body.SetAngle(-common.YawOf(q))
}

func (b *Body) Forward() mgl64.Vec3 {
	return b.Orientation().Rotate(common.LocalForward)
}

func (b *Body) LinearVelocity() mgl64.Vec3 {
	v := b.body.Velocity()
	return mgl64.Vec3{v.X, 0, v.Y}
}

// SetLinearVelocity drops the vertical component.
func (b *Body) SetLinearVelocity(v mgl64.Vec3) {
	b.body.SetVelocity(v.X(), v.Z())
}

func (b *Body) AngularVelocity() mgl64.Vec3 {
	return mgl64.Vec3{0, -b.body.AngularVelocity(), 0}
}

// SetAngularVelocity keeps only the spin about world up.
func (b *Body) SetAngularVelocity(w mgl64.Vec3) {
	b.body.SetAngularVelocity(-w.Y())
}

func (b *Body) SetAngularDamping(d float64) {
	if d < 0 {
		d = 0
	}
	b.angularDamping = d
}

func (b *Body) AngularDamping() float64 {
	return b.angularDamping
}

func (b *Body) updateVelocity(body *cp.Body, gravity cp.Vector, damping, dt float64) {
	cp.BodyUpdateVelocity(body, gravity, damping, dt)
	if b.angularDamping > 0 {
		body.SetAngularVelocity(body.AngularVelocity() / (1 + dt*b.angularDamping))
	}
}

// MoveWithCollisions sweeps the body from from along displacement against
// static geometry. On contact the remaining motion slides along the surface.
// Height is applied without collision.
func (b *Body) MoveWithCollisions(from, displacement mgl64.Vec3) mgl64.Vec3 {
	b.y = from.Y() + displacement.Y()
	if b.world == nil {
		b.body.SetPosition(toPlane(from.Add(displacement)))
		return b.Position()
	}

	pos := toPlane(from)
	remaining := cp.Vector{X: displacement.X(), Y: displacement.Z()}
	for i := 0; i < maxSlideIterations && remaining.LengthSq() > minMoveSq; i++ {
		end := pos.Add(remaining)
		info := b.world.space.SegmentQueryFirst(pos, end, b.radius, sweepFilter)
		if info.Shape == nil {
			pos = end
			break
		}
		travel := remaining.Mult(info.Alpha)
		pos = pos.Add(travel).Add(info.Normal.Mult(contactSkin))
		remaining = remaining.Sub(travel)
		remaining = remaining.Sub(info.Normal.Mult(remaining.Dot(info.Normal)))
	}
	b.body.SetPosition(pos)

	for i := 0; i < maxResolveIterations; i++ {
		push, hit := b.penetration()
		if !hit {
			break
		}
		b.body.SetPosition(b.body.Position().Add(push))
	}
	return b.Position()
}

// penetration sums the push needed to leave every overlapped static shape.
func (b *Body) penetration() (cp.Vector, bool) {
	var push cp.Vector
	hit := false
	b.world.space.ShapeQuery(b.shape, func(other *cp.Shape, set *cp.ContactPointSet) {
		if other.Sensor() || other.Body() == b.body || other.Filter.Categories&categoryStatic == 0 {
			return
		}
		deepest := 0.0
		for i := 0; i < set.Count; i++ {
			if d := set.Points[i].Distance; d < deepest {
				deepest = d
			}
		}
		if deepest < 0 {
			push = push.Add(set.Normal.Mult(deepest))
			hit = true
		}
	})
	return push, hit
}
