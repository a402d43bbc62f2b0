package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/roster-scheduler/internal/persistence"
	"github.com/example/roster-scheduler/internal/roster"
)

var (
	eventCounter    uint64
	employeeCounter uint64
	storeCounter    uint64
)

// referenceTime is a Monday morning, so week-window fixtures line up with
// the start of the viewed week by default.
var referenceTime = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ReferenceWeek returns the week window containing ReferenceTime.
func ReferenceWeek() roster.Window {
	return roster.WeekBounds(referenceTime)
}

// --------------------------- Shift event fixtures ---------------------------

// EventFixture represents a deterministic shift event.
type EventFixture struct {
	ID       string
	Employee roster.EmployeeRef
	Start    time.Time
	End      time.Time
	AllDay   bool
	Color    roster.ColorTag
	RosterID string
}

// EventOption customises an EventFixture.
type EventOption func(*EventFixture)

// NewEventFixture constructs an event fixture with unique defaults: a fresh
// id and an 09:00-17:00 shift on the reference Monday.
func NewEventFixture(opts ...EventOption) EventFixture {
	n := atomic.AddUint64(&eventCounter, 1)
	fixture := EventFixture{
		ID:       fmt.Sprintf("event-%d", n),
		Employee: roster.EmployeeRef{ID: fmt.Sprintf("employee-%d", n), Name: fmt.Sprintf("Employee %d", n)},
		Start:    referenceTime,
		End:      referenceTime.Add(8 * time.Hour),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEventID overrides the event id.
func WithEventID(id string) EventOption {
	return func(f *EventFixture) { f.ID = id }
}

// WithEmployee overrides the assigned employee.
func WithEmployee(ref roster.EmployeeRef) EventOption {
	return func(f *EventFixture) { f.Employee = ref }
}

// WithEventTimes overrides the start and end instants.
func WithEventTimes(start, end time.Time) EventOption {
	return func(f *EventFixture) {
		f.Start = start
		f.End = end
	}
}

// WithAllDay marks the event as all-day.
func WithAllDay() EventOption {
	return func(f *EventFixture) { f.AllDay = true }
}

// WithColor overrides the color tag.
func WithColor(tag roster.ColorTag) EventOption {
	return func(f *EventFixture) { f.Color = tag }
}

// WithRosterID sets the originating roster back-reference.
func WithRosterID(id string) EventOption {
	return func(f *EventFixture) { f.RosterID = id }
}

// Domain materialises the fixture as a roster.ShiftEvent.
func (f EventFixture) Domain() roster.ShiftEvent {
	return roster.ShiftEvent{
		ID:       f.ID,
		Employee: f.Employee,
		Start:    f.Start,
		End:      f.End,
		AllDay:   f.AllDay,
		Color:    f.Color,
		RosterID: f.RosterID,
	}
}

// Record materialises the fixture as a persisted event record.
func (f EventFixture) Record() persistence.ShiftEventRecord {
	return persistence.ShiftEventRecord{
		ID:           f.ID,
		EmployeeID:   f.Employee.ID,
		EmployeeName: f.Employee.Name,
		Start:        f.Start,
		End:          f.End,
		AllDay:       f.AllDay,
		Color:        string(f.Color),
	}
}

// ---------------------------- Employee fixtures ----------------------------

// NewEmployeeFixture constructs a unique employee record.
func NewEmployeeFixture() persistence.Employee {
	n := atomic.AddUint64(&employeeCounter, 1)
	return persistence.Employee{
		ID:        fmt.Sprintf("employee-%d", n),
		Name:      fmt.Sprintf("Employee %d", n),
		Role:      "staff",
		CreatedAt: referenceTime,
		UpdatedAt: referenceTime,
	}
}

// NamedEmployee constructs an employee record with explicit identity.
func NamedEmployee(id, name string) persistence.Employee {
	return persistence.Employee{
		ID:        id,
		Name:      name,
		Role:      "staff",
		CreatedAt: referenceTime,
		UpdatedAt: referenceTime,
	}
}

// ------------------------------ Store fixtures -----------------------------

// NewStoreFixture constructs a unique store record.
func NewStoreFixture() persistence.Store {
	n := atomic.AddUint64(&storeCounter, 1)
	return persistence.Store{
		ID:        fmt.Sprintf("store-%d", n),
		Name:      fmt.Sprintf("Store %d", n),
		CreatedAt: referenceTime,
		UpdatedAt: referenceTime,
	}
}
