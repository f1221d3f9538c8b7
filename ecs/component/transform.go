package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/showroom/common"
)

// Transform is an entity pose in world space. It satisfies
// movement.Transformable.
type Transform struct {
	Pos   mgl64.Vec3
	Rot   mgl64.Quat
	Scale mgl64.Vec3
}

func NewTransform(pos mgl64.Vec3, yaw, scale float64) *Transform {
	return &Transform{
		Pos:   pos,
		Rot:   common.QuatFromYaw(yaw),
		Scale: mgl64.Vec3{scale, scale, scale},
	}
}

func (t *Transform) Position() mgl64.Vec3        { return t.Pos }
func (t *Transform) SetPosition(p mgl64.Vec3)    { t.Pos = p }
func (t *Transform) Orientation() mgl64.Quat     { return t.Rot }
func (t *Transform) SetOrientation(q mgl64.Quat) { t.Rot = q }

func (t *Transform) Forward() mgl64.Vec3 {
	return t.Rot.Rotate(common.LocalForward)
}

func (t *Transform) Yaw() float64 {
	return common.YawOf(t.Rot)
}

var TransformComponent = NewComponent[Transform]()
