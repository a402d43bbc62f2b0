package roster

import (
	"fmt"
	"time"
)

// EmployeeRef identifies the employee a shift is assigned to. The display
// name is denormalized onto the event because persisted documents written by
// earlier versions of the planner carry only the name.
type EmployeeRef struct {
	ID   string
	Name string
}

// Matches reports whether the reference points at the same employee as
// other. Matching is id-based; the name is consulted only when either side
// lacks an id.
func (e EmployeeRef) Matches(other EmployeeRef) bool {
	if e.ID != "" && other.ID != "" {
		return e.ID == other.ID
	}
	return e.Name != "" && e.Name == other.Name
}

// ColorTag selects one of the fixed palette entries used to tint an event on
// the calendar surface.
type ColorTag string

const (
	ColorDefault ColorTag = ""
	ColorBlue    ColorTag = "blue"
	ColorGreen   ColorTag = "green"
	ColorYellow  ColorTag = "yellow"
	ColorRed     ColorTag = "red"
	ColorPurple  ColorTag = "purple"
)

// ValidColorTag reports whether tag belongs to the palette.
func ValidColorTag(tag ColorTag) bool {
	switch tag {
	case ColorDefault, ColorBlue, ColorGreen, ColorYellow, ColorRed, ColorPurple:
		return true
	}
	return false
}

// ShiftEvent is a scheduled work assignment on the weekly calendar.
type ShiftEvent struct {
	ID       string
	Employee EmployeeRef
	Start    time.Time
	End      time.Time
	AllDay   bool
	Color    ColorTag
	// Duration is a legacy placeholder persisted as zero by external drops.
	// Display duration is always recomputed from Start/End and never read
	// from this field.
	Duration float64
	// RosterID back-references the persisted document the event was loaded
	// from. Empty for events created in the current session.
	RosterID string
}

// Validate checks the event invariants: a non-empty id and End after Start.
func (e ShiftEvent) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("shift event: id is required")
	}
	if !e.End.After(e.Start) {
		return fmt.Errorf("shift event %s: end must be after start", e.ID)
	}
	if !ValidColorTag(e.Color) {
		return fmt.Errorf("shift event %s: unknown color tag %q", e.ID, e.Color)
	}
	return nil
}

// Equal reports structural equality of two events. Instants compare with
// time.Time.Equal so location differences do not count as changes.
func (e ShiftEvent) Equal(other ShiftEvent) bool {
	return e.ID == other.ID &&
		e.Employee == other.Employee &&
		e.Start.Equal(other.Start) &&
		e.End.Equal(other.End) &&
		e.AllDay == other.AllDay &&
		e.Color == other.Color &&
		e.RosterID == other.RosterID
}
