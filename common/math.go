package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// PixelsPerUnit scales world units to screen pixels in the top-down view.
	PixelsPerUnit = 48.0
)

var (
	WorldUp      = mgl64.Vec3{0, 1, 0}
	LocalForward = mgl64.Vec3{0, 0, 1}
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// QuatFromYaw returns a rotation of yaw radians about WorldUp.
func QuatFromYaw(yaw float64) mgl64.Quat {
	return mgl64.QuatRotate(yaw, WorldUp)
}

// YawOf extracts the heading of q about WorldUp. Yaw 0 faces +Z, positive
// yaw turns towards +X.
func YawOf(q mgl64.Quat) float64 {
	f := q.Rotate(LocalForward)
	return math.Atan2(f.X(), f.Z())
}

func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
