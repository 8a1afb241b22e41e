package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

type EventType int

const (
	EventSpawned EventType = iota
	EventSampleRecorded
	EventSampleEvicted
	EventPaused
	EventResumed
	EventDespawned
)

func (t EventType) String() string {
	switch t {
	case EventSpawned:
		return "spawned"
	case EventSampleRecorded:
		return "sample_recorded"
	case EventSampleEvicted:
		return "sample_evicted"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	case EventDespawned:
		return "despawned"
	default:
		return "unknown"
	}
}

type Event struct {
	Type     EventType
	EntityID uuid.UUID
	Position mgl64.Vec3
	Data     int // history length after the change
}

type EventHandler func(Event)

// EventBus dispatches synchronously on the ticking goroutine.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	for t := EventSpawned; t <= EventDespawned; t++ {
		eb.Subscribe(t, fn)
	}
}

func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
