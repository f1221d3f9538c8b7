package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// AnimationEventKind identifies animation state transitions.
type AnimationEventKind string

const (
	AnimationStarted AnimationEventKind = "animation_started"
	AnimationStopped AnimationEventKind = "animation_stopped"
)

// AnimationEvent is emitted when a clip changes between playing and stopped.
type AnimationEvent struct {
	Entity Entity
	Clip   string
	Kind   AnimationEventKind
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
