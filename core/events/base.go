package events

import "time"

// Kind names an event type. Kinds are stable strings, namespaced by the
// state surface they mirror (message.*, stage.*, media.*, turn_state.*).
type Kind string

// Event is one state-change notification.
type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

// Base carries the kind and emission time shared by every event. Concrete
// events embed it by value.
type Base struct {
	kind      Kind
	timestamp time.Time
}

// NewBase stamps a base with the given kind and the current time.
func NewBase(kind Kind) Base {
	return Base{kind: kind, timestamp: time.Now()}
}

func (b Base) Kind() Kind {
	return b.kind
}

// Timestamp reports when the event was emitted.
func (b Base) Timestamp() time.Time {
	return b.timestamp
}
