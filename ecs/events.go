package ecs

// EventKind identifies world events.
type EventKind string

const (
	EventLoaded     EventKind = "loaded"
	EventLoadFailed EventKind = "load failed"
	EventSelected   EventKind = "selected"
	EventReloaded   EventKind = "reloaded"
)

// Event is something a system wants the frame owner to know about.
type Event struct {
	Kind   EventKind
	Entity Entity
	Data   any
}

// EventQueue is a FIFO the frame owner drains once per tick.
type EventQueue struct {
	items []Event
}

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

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
