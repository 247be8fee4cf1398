package domain

import (
	"errors"
	"testing"
)

type stubEvent struct {
	EventBase
}

func (stubEvent) EventName() string { return "stub" }

func TestEvents_AddDomainEvent(t *testing.T) {
	t.Parallel()

	var buf Events
	if buf.HasDomainEvents() {
		t.Error("empty buffer should report no events")
	}

	ev := stubEvent{EventBase: NewEventBase()}
	if err := buf.AddDomainEvent(ev); err != nil {
		t.Fatalf("AddDomainEvent() error = %v", err)
	}
	if !buf.HasDomainEvents() {
		t.Error("buffer should report events after add")
	}
	if got := len(buf.DomainEvents()); got != 1 {
		t.Errorf("len(DomainEvents()) = %d, want 1", got)
	}
}

func TestEvents_AddNilEvent(t *testing.T) {
	t.Parallel()

	var buf Events
	err := buf.AddDomainEvent(nil)
	if !errors.Is(err, ErrNilEvent) {
		t.Errorf("AddDomainEvent(nil) error = %v, want ErrNilEvent", err)
	}
	if buf.HasDomainEvents() {
		t.Error("failed add must not grow the buffer")
	}
}

func TestEvents_DuplicatesAllowed(t *testing.T) {
	t.Parallel()

	var buf Events
	ev := stubEvent{EventBase: NewEventBase()}
	if err := buf.AddDomainEvent(ev); err != nil {
		t.Fatal(err)
	}
	if err := buf.AddDomainEvent(ev); err != nil {
		t.Fatal(err)
	}
	if got := len(buf.DomainEvents()); got != 2 {
		t.Errorf("len(DomainEvents()) = %d, want 2 (no deduplication)", got)
	}
}

func TestEvents_RemoveDomainEvent(t *testing.T) {
	t.Parallel()

	var buf Events
	a := stubEvent{EventBase: NewEventBase()}
	b := stubEvent{EventBase: NewEventBase()}
	if err := buf.AddDomainEvent(a); err != nil {
		t.Fatal(err)
	}
	if err := buf.AddDomainEvent(b); err != nil {
		t.Fatal(err)
	}

	buf.RemoveDomainEvent(a)
	events := buf.DomainEvents()
	if len(events) != 1 {
		t.Fatalf("len(DomainEvents()) = %d, want 1", len(events))
	}
	if events[0].EventID() != b.EventID() {
		t.Error("wrong event removed")
	}

	// Removing an absent event is a no-op.
	buf.RemoveDomainEvent(a)
	if got := len(buf.DomainEvents()); got != 1 {
		t.Errorf("len(DomainEvents()) = %d after removing absent event, want 1", got)
	}
}

func TestEvents_ClearDomainEvents(t *testing.T) {
	t.Parallel()

	var buf Events
	for range 3 {
		if err := buf.AddDomainEvent(stubEvent{EventBase: NewEventBase()}); err != nil {
			t.Fatal(err)
		}
	}

	buf.ClearDomainEvents()
	if buf.HasDomainEvents() {
		t.Error("buffer should be empty after clear")
	}
	if got := len(buf.DomainEvents()); got != 0 {
		t.Errorf("len(DomainEvents()) = %d, want 0", got)
	}
}

func TestEvents_DomainEventsReturnsCopy(t *testing.T) {
	t.Parallel()

	var buf Events
	if err := buf.AddDomainEvent(stubEvent{EventBase: NewEventBase()}); err != nil {
		t.Fatal(err)
	}

	snapshot := buf.DomainEvents()
	snapshot[0] = nil
	if buf.DomainEvents()[0] == nil {
		t.Error("mutating the returned slice must not affect the buffer")
	}
}
