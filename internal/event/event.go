package event

import (
	"time"

	"github.com/google/uuid"
)

// Well-known topics.
const (
	TopicCalcInvalid    = "calc.invalid"
	TopicCalcDivZero    = "calc.divzero"
	TopicCalcResult     = "calc.result"
	TopicCalcCleared    = "calc.cleared"
	TopicConfigReloaded = "config.reloaded"
)

// Event is a published notification.
// Events are immutable once created.
type Event struct {
	// Topic is the dot-separated event type (e.g., "calc.result").
	Topic string

	// Payload contains the event-specific data.
	Payload any

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the component that published the event.
	Source string
}

// New creates an event with a fresh ID and the current time.
func New(topic string, payload any, source string) Event {
	return Event{
		Topic:   topic,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}
