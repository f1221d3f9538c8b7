package component

import "image/color"

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// Showroom marks static scenery with its footprint on the ground plane.
type Showroom struct {
	Width float64
	Depth float64
}

var ShowroomComponent = NewComponent[Showroom]()

// Ground is the walkable floor footprint.
type Ground struct {
	Width float64
	Depth float64
}

var GroundComponent = NewComponent[Ground]()

// Light is an ambient hemispheric light; the renderer uses its intensity to
// shade the floor.
type Light struct {
	Intensity float64
}

var LightComponent = NewComponent[Light]()

// Sky is the backdrop, blended from Zenith at the top of the screen to
// Horizon at the bottom.
type Sky struct {
	Zenith  color.RGBA
	Horizon color.RGBA
}

var SkyComponent = NewComponent[Sky]()
