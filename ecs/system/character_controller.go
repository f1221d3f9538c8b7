package system

import (
	"github.com/milk9111/showroom/ecs"
	"github.com/milk9111/showroom/ecs/component"
)

// CharacterControllerSystem runs each character's movement controller once
// per tick.
type CharacterControllerSystem struct{}

func NewCharacterControllerSystem() *CharacterControllerSystem {
	return &CharacterControllerSystem{}
}

func (c *CharacterControllerSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.CharacterControllerComponent.Kind(), func(e ecs.Entity, cc *component.CharacterController) {
		if cc.Controller == nil {
			return
		}
		cc.Controller.Update()
	})
}
