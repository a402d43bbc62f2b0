package application

import (
	"time"

	"github.com/example/roster-scheduler/internal/persistence"
	"github.com/example/roster-scheduler/internal/roster"
)

// DropEventCommand carries an internal calendar drop or resize. Clone is
// the duplicate-modifier sampled by the UI at the instant the drop
// finalizes; threading it through the command keeps the engine free of
// ambient key state.
type DropEventCommand struct {
	EventID string
	Start   time.Time
	End     time.Time
	Clone   bool
}

// ExternalDropCommand carries a drop of an external drag source (the
// employee list) onto the calendar surface.
type ExternalDropCommand struct {
	Start  time.Time
	End    time.Time
	AllDay bool
}

// SessionState is a read-only snapshot of the editing session handed to the
// calendar surface.
type SessionState struct {
	BusinessID string
	StoreID    string
	ViewMode   roster.ViewMode
	Window     roster.Window
	Events     []roster.ShiftEvent
	Dirty      bool
}

// EmployeeHours is one row of the sidebar table: an employee with the
// aggregated totals for the active window.
type EmployeeHours struct {
	Employee roster.EmployeeRef
	Role     string
	Hours    float64
	Shifts   int
}

// PreviewRow is one row of the preview table: an employee's shifts laid out
// per day across the active window.
type PreviewRow struct {
	Employee roster.EmployeeRef
	Days     []string
	Shifts   int
}

// SaveResult reports the outcome of persisting the active roster.
type SaveResult struct {
	RosterID   string
	StoreID    string
	WeekEnding time.Time
	EventCount int
}

func toRecord(event roster.ShiftEvent) persistence.ShiftEventRecord {
	return persistence.ShiftEventRecord{
		ID:           event.ID,
		EmployeeID:   event.Employee.ID,
		EmployeeName: event.Employee.Name,
		Start:        event.Start,
		End:          event.End,
		AllDay:       event.AllDay,
		Color:        string(event.Color),
		Duration:     event.Duration,
	}
}

func fromRecord(record persistence.ShiftEventRecord, rosterID string) roster.ShiftEvent {
	return roster.ShiftEvent{
		ID:       record.ID,
		Employee: roster.EmployeeRef{ID: record.EmployeeID, Name: record.EmployeeName},
		Start:    record.Start,
		End:      record.End,
		AllDay:   record.AllDay,
		Color:    roster.ColorTag(record.Color),
		Duration: record.Duration,
		RosterID: rosterID,
	}
}
