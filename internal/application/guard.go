package application

import (
	"time"

	"github.com/example/roster-scheduler/internal/roster"
)

// EditGuard rejects mutations dated in the past and detects unsaved-change
// state. Past-ness is a calendar-date comparison: a shift earlier today is
// still editable.
type EditGuard struct {
	now func() time.Time
}

// NewEditGuard builds a guard around the given clock. A nil clock falls back
// to time.Now.
func NewEditGuard(now func() time.Time) *EditGuard {
	if now == nil {
		now = time.Now
	}
	return &EditGuard{now: now}
}

// IsPast reports whether the instant's calendar date is strictly earlier
// than today's. Time-of-day is ignored.
func (g *EditGuard) IsPast(instant time.Time) bool {
	today := g.now()
	y1, m1, d1 := instant.Year(), instant.Month(), instant.Day()
	y2, m2, d2 := today.Year(), today.Month(), today.Day()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}

// GuardMutation fails with ErrPastWeekEdit when the proposed start falls on
// a past date. Callers must perform no state change on failure.
func (g *EditGuard) GuardMutation(proposedStart time.Time) error {
	if g.IsPast(proposedStart) {
		return ErrPastWeekEdit
	}
	return nil
}

// HasUnsavedChanges reports whether the live events differ structurally from
// the last saved snapshot, independent of ordering.
func HasUnsavedChanges(live, saved map[string]roster.ShiftEvent) bool {
	if len(live) != len(saved) {
		return true
	}
	for id, event := range live {
		savedEvent, ok := saved[id]
		if !ok || !event.Equal(savedEvent) {
			return true
		}
	}
	return false
}
