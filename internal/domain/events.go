package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNilEvent is returned when a nil event is added to an aggregate.
var ErrNilEvent = errors.New("nil domain event")

// Event is an immutable record of a significant state change, buffered on an
// aggregate root until explicitly cleared by the publisher after a
// successful persistence transaction.
type Event interface {
	// EventID returns the event's unique identifier.
	EventID() uuid.UUID

	// OccurredAt returns the UTC time at which the event occurred.
	OccurredAt() time.Time

	// EventName returns a stable name for the event kind, used by
	// publishers to route payloads.
	EventName() string
}

// EventBase carries the id and occurrence timestamp shared by all concrete
// events. Embed it and call NewEventBase from the event constructor.
type EventBase struct {
	ID         uuid.UUID
	OccurredOn time.Time
}

// NewEventBase returns an EventBase stamped with a fresh id and UTC now.
func NewEventBase() EventBase {
	return EventBase{ID: uuid.New(), OccurredOn: time.Now().UTC()}
}

// EventID implements Event.
func (e EventBase) EventID() uuid.UUID {
	return e.ID
}

// OccurredAt implements Event.
func (e EventBase) OccurredAt() time.Time {
	return e.OccurredOn
}

// Events is the domain-event buffer capability embedded by aggregate roots.
// It is pure in-memory bookkeeping: events accumulate in insertion order,
// are never deduplicated, and are emptied only by ClearDomainEvents. The
// buffer assumes single-writer access during the aggregate's mutation
// window; it is not a thread-safe container.
type Events struct {
	events []Event
}

// AddDomainEvent appends an event to the buffer. Adding a nil event fails.
func (b *Events) AddDomainEvent(e Event) error {
	if e == nil {
		return ErrNilEvent
	}
	b.events = append(b.events, e)
	return nil
}

// RemoveDomainEvent removes the first buffered event with the same event id.
// Removing an event that is not buffered is a no-op.
func (b *Events) RemoveDomainEvent(e Event) {
	if e == nil {
		return
	}
	for i, ev := range b.events {
		if ev.EventID() == e.EventID() {
			b.events = append(b.events[:i], b.events[i+1:]...)
			return
		}
	}
}

// ClearDomainEvents empties the buffer. The publisher calls this after a
// successful flush.
func (b *Events) ClearDomainEvents() {
	b.events = nil
}

// DomainEvents returns a copy of the buffered events in insertion order.
func (b *Events) DomainEvents() []Event {
	out := make([]Event, len(b.events))
	copy(out, b.events)
	return out
}

// HasDomainEvents reports whether any events are buffered.
func (b *Events) HasDomainEvents() bool {
	return len(b.events) > 0
}
