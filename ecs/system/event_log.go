package system

import (
	"github.com/milk9111/showroom/ecs"
	"github.com/milk9111/showroom/logger"
)

const recentEventLimit = 8

// EventLogSystem drains the world event queue, logs every event and keeps
// the latest animation transitions for the inspector.
type EventLogSystem struct {
	recent []ecs.AnimationEvent
}

func NewEventLogSystem() *EventLogSystem {
	return &EventLogSystem{}
}

func (s *EventLogSystem) Update(w *ecs.World) {
	for _, evt := range w.Events().Drain() {
		ae, ok := evt.Data.(ecs.AnimationEvent)
		if !ok {
			logger.L().Debug("ecs event", "type", evt.Type)
			continue
		}
		logger.L().Debug("animation", "entity", ae.Entity.String(), "clip", ae.Clip, "kind", string(ae.Kind))
		s.recent = append(s.recent, ae)
		if len(s.recent) > recentEventLimit {
			s.recent = s.recent[len(s.recent)-recentEventLimit:]
		}
	}
}

// Recent returns the latest animation transitions, oldest first.
func (s *EventLogSystem) Recent() []ecs.AnimationEvent {
	return append([]ecs.AnimationEvent(nil), s.recent...)
}
