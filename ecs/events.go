package ecs

// EventType names a gameplay event.
type EventType string

const (
	EventJumped     EventType = "jumped"
	EventLanded     EventType = "landed"
	EventPlayerDied EventType = "player_died"
	EventSpawned    EventType = "spawned"
)

// Event is a gameplay notification. Entity is the subject; Source is the
// other party, when there is one.
type Event struct {
	Type   EventType
	Entity Entity
	Source Entity
}

// EventQueue is a simple FIFO queue drained by the game loop.
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

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
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
