package system

import (
	"github.com/milk9111/showroom/animation"
	"github.com/milk9111/showroom/ecs"
	"github.com/milk9111/showroom/ecs/component"
)

// AnimationEventType is the ecs.Event type carrying an ecs.AnimationEvent.
const AnimationEventType = "animation"

// AnimationSystem advances every clip library by one tick and reports when
// an entity's watched clip starts or stops.
type AnimationSystem struct {
	tps float64
}

func NewAnimationSystem(tps int) *AnimationSystem {
	if tps <= 0 {
		tps = 60
	}
	return &AnimationSystem{tps: float64(tps)}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, anim *component.Animation) {
		if anim.Library == nil {
			return
		}
		anim.Library.Advance(a.tps)

		clip := anim.Library.Get(anim.Watched)
		if clip == nil {
			return
		}
		playing := clip.Playing()
		if playing == anim.WasPlaying {
			return
		}
		anim.WasPlaying = playing
		w.Events().Push(ecs.Event{Type: AnimationEventType, Data: ecs.AnimationEvent{
			Entity: e,
			Clip:   clip.Name,
			Kind:   transitionKind(clip),
		}})
	})
}

func transitionKind(c *animation.Clip) ecs.AnimationEventKind {
	if c.Playing() {
		return ecs.AnimationStarted
	}
	return ecs.AnimationStopped
}
