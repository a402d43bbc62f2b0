package roster

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultShiftDuration is the span given to events created by dragging an
// employee onto an empty slot.
const DefaultShiftDuration = 3 * time.Hour

// EventStore is the in-memory working set of shift events for the active
// editing session, keyed by event id. It is not safe for concurrent use;
// the owning session serializes access.
type EventStore struct {
	events        map[string]ShiftEvent
	newID         func() string
	shiftDuration time.Duration
}

// EventStoreOption configures an EventStore.
type EventStoreOption func(*EventStore)

// WithIDGenerator overrides the generator used for fresh event ids. Tests
// substitute a deterministic sequence.
func WithIDGenerator(generate func() string) EventStoreOption {
	return func(s *EventStore) {
		if generate != nil {
			s.newID = generate
		}
	}
}

// WithShiftDuration overrides the default duration applied to events created
// from an external drop.
func WithShiftDuration(d time.Duration) EventStoreOption {
	return func(s *EventStore) {
		if d > 0 {
			s.shiftDuration = d
		}
	}
}

// NewEventStore returns an empty store. Fresh ids default to uuid strings.
func NewEventStore(opts ...EventStoreOption) *EventStore {
	s := &EventStore{
		events:        make(map[string]ShiftEvent),
		newID:         uuid.NewString,
		shiftDuration: DefaultShiftDuration,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of events held.
func (s *EventStore) Len() int {
	return len(s.events)
}

// Get returns the event with the given id.
func (s *EventStore) Get(id string) (ShiftEvent, bool) {
	e, ok := s.events[id]
	return e, ok
}

// Upsert inserts or replaces the event under its id.
func (s *EventStore) Upsert(event ShiftEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}
	s.events[event.ID] = event
	return nil
}

// Remove deletes the event with the given id. Removing an absent id is a
// no-op.
func (s *EventStore) Remove(id string) {
	delete(s.events, id)
}

// MoveOrClone relocates the identified event to the new start/end. When
// clone is set, the original entry is left untouched and a copy is inserted
// under a fresh id at the new time; otherwise the same entry is updated in
// place. Exactly one entry changes identity or time per call.
func (s *EventStore) MoveOrClone(id string, newStart, newEnd time.Time, clone bool) (ShiftEvent, error) {
	event, ok := s.events[id]
	if !ok {
		return ShiftEvent{}, fmt.Errorf("event store: no event with id %s", id)
	}
	if !newEnd.After(newStart) {
		return ShiftEvent{}, fmt.Errorf("event store: end must be after start")
	}
	if clone {
		event.ID = s.newID()
	}
	event.Start = newStart
	event.End = newEnd
	s.events[event.ID] = event
	return event, nil
}

// CreateFromExternalDrop synthesizes a new event for an employee dragged in
// from outside the calendar. The end is fixed at the configured default
// duration from start regardless of the slot the surface reported, and the
// legacy Duration field is written as zero.
func (s *EventStore) CreateFromExternalDrop(employee EmployeeRef, start time.Time, allDay bool) ShiftEvent {
	event := ShiftEvent{
		ID:       s.newID(),
		Employee: employee,
		Start:    start,
		End:      start.Add(s.shiftDuration),
		AllDay:   allDay,
		Duration: 0,
	}
	s.events[event.ID] = event
	return event
}

// Query returns the events matching the predicate. The result is a fresh
// slice over a single snapshot, so callers may iterate it repeatedly; no
// ordering is guaranteed beyond stability of that slice. A nil predicate
// matches everything.
func (s *EventStore) Query(predicate func(ShiftEvent) bool) []ShiftEvent {
	matched := make([]ShiftEvent, 0, len(s.events))
	for _, event := range s.events {
		if predicate == nil || predicate(event) {
			matched = append(matched, event)
		}
	}
	return matched
}

// Events returns every event in the store.
func (s *EventStore) Events() []ShiftEvent {
	return s.Query(nil)
}

// Snapshot copies the current contents into a plain map for later
// comparison or restoration.
func (s *EventStore) Snapshot() map[string]ShiftEvent {
	snapshot := make(map[string]ShiftEvent, len(s.events))
	for id, event := range s.events {
		snapshot[id] = event
	}
	return snapshot
}

// ReplaceAll discards the current contents and installs the given events.
// Events are copied, never shared, so later mutation of the argument does
// not leak into the store.
func (s *EventStore) ReplaceAll(events map[string]ShiftEvent) {
	s.events = make(map[string]ShiftEvent, len(events))
	for id, event := range events {
		s.events[id] = event
	}
}
