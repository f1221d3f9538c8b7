package component

import "github.com/milk9111/showroom/movement"

// CharacterController drives an entity from keyboard input once per frame.
type CharacterController struct {
	Controller *movement.Controller
	Style      string
}

var CharacterControllerComponent = NewComponent[CharacterController]()
