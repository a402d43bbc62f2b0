package persistence

import "time"

// Store represents a physical store location referenced by the roster
// planner. The engine references stores by id and never validates existence
// beyond what the repository enforces.
type Store struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Employee represents a staff member that can be assigned shifts.
type Employee struct {
	ID        string
	Name      string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShiftEventRecord is the persisted form of a shift event inside a roster
// document.
type ShiftEventRecord struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Start        time.Time
	End          time.Time
	AllDay       bool
	Color        string
	Duration     float64
}

// RosterDocument is the persisted snapshot of one store's shift events for
// one week, keyed by the store id and the formatted week-ending date. Saves
// replace the whole document; there is no partial patching.
type RosterDocument struct {
	ID        string
	StoreID   string
	Events    []ShiftEventRecord
	CreatedAt time.Time
	UpdatedAt time.Time
}
