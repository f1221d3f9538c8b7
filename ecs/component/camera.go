package component

import "github.com/go-gl/mathgl/mgl64"

// Camera looks down on the scene. When Locked is set it tracks the player,
// otherwise it stays at its own transform.
type Camera struct {
	Locked     bool
	Zoom       float64
	Smoothness float64
	// Focus is the world point at the centre of the screen.
	Focus mgl64.Vec3
}

var CameraComponent = NewComponent[Camera]()
