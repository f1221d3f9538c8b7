package component

import "github.com/milk9111/showroom/animation"

// Animation holds the clips imported with an entity's model.
type Animation struct {
	Library *animation.Library
	// Watched is the clip whose playing state is reported as events.
	Watched string
	// WasPlaying mirrors the watched clip at the end of the previous frame.
	WasPlaying bool
}

var AnimationComponent = NewComponent[Animation]()
