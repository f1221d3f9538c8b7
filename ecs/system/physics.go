package system

import (
	"github.com/milk9111/showroom/ecs"
	"github.com/milk9111/showroom/ecs/component"
	"github.com/milk9111/showroom/physics"
)

// PhysicsSystem steps the physics world once per tick and reconciles bodies
// with transforms. Dynamic bodies own their pose; kinematic bodies follow the
// transform.
type PhysicsSystem struct {
	world *physics.World
	dt    float64
}

func NewPhysicsSystem(world *physics.World, tps int) *PhysicsSystem {
	if tps <= 0 {
		tps = 60
	}
	return &PhysicsSystem{world: world, dt: 1 / float64(tps)}
}

func (p *PhysicsSystem) World() *physics.World {
	if p == nil {
		return nil
	}
	return p.world
}

func (p *PhysicsSystem) Update(w *ecs.World) {
	if p == nil || p.world == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil || pb.Body.Dynamic() {
			return
		}
		pb.Body.SetPosition(t.Pos)
		pb.Body.SetOrientation(t.Rot)
	})

	p.world.Step(p.dt)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil || !pb.Body.Dynamic() {
			return
		}
		t.Pos = pb.Body.Position()
		t.Rot = pb.Body.Orientation()
	})
}
