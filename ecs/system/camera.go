package system

import (
	"github.com/milk9111/showroom/common"
	"github.com/milk9111/showroom/ecs"
	"github.com/milk9111/showroom/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update moves a locked camera's focus toward the player. Smoothness 0 snaps
// to the target; values toward 1 trail behind it.
func (cs *CameraSystem) Update(w *ecs.World) {
	if !cs.camEntity.Valid() || !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok || !cam.Locked {
		return
	}

	if !cs.targetEntity.Valid() || !w.IsAlive(cs.targetEntity) {
		target, ok := w.First(component.PlayerTagComponent.Kind(), component.TransformComponent.Kind())
		if !ok {
			return
		}
		cs.targetEntity = target
	}
	targetTransform, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	t := 1 - cam.Smoothness
	if t <= 0 || t > 1 {
		t = 1
	}
	goal := targetTransform.Pos
	cam.Focus[0] = common.Lerp(cam.Focus[0], goal[0], t)
	cam.Focus[1] = common.Lerp(cam.Focus[1], goal[1], t)
	cam.Focus[2] = common.Lerp(cam.Focus[2], goal[2], t)
}
