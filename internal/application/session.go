package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/example/roster-scheduler/internal/persistence"
	"github.com/example/roster-scheduler/internal/roster"
)

// SaveBoundary controls how events ending exactly at the week boundary are
// treated when selecting the persisted subset.
type SaveBoundary string

const (
	// SaveBoundaryExclusive drops events whose end equals the window end.
	// This mirrors the source behavior and is the default.
	SaveBoundaryExclusive SaveBoundary = "exclusive"
	// SaveBoundaryInclusive keeps events whose end equals the window end.
	SaveBoundaryInclusive SaveBoundary = "inclusive"
)

// RosterSession owns the in-memory event store for one editing session and
// interprets the calendar surface's command stream against it. All commands
// execute serially under the session lock; persistence calls release the
// lock so a later selection can supersede an in-flight load.
type RosterSession struct {
	mu sync.Mutex

	rosters     persistence.RosterRepository
	businessID  string
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger

	guard        *EditGuard
	saveBoundary SaveBoundary

	events  *roster.EventStore
	saved   map[string]roster.ShiftEvent
	storeID string

	viewMode roster.ViewMode
	anchor   time.Time
	window   roster.Window

	// pendingDrag is the single-slot holder filled at drag-start and
	// consumed exactly once when an external drop finalizes.
	pendingDrag *roster.EmployeeRef

	// loadGeneration tags in-flight loads so a stale completion cannot
	// overwrite the store after the selection changed.
	loadGeneration uint64
}

// NewRosterSession wires dependencies for a roster editing session. The
// session opens on the week containing the current date.
func NewRosterSession(rosters persistence.RosterRepository, businessID string, idGenerator func() string, now func() time.Time) *RosterSession {
	return NewRosterSessionWithLogger(rosters, businessID, idGenerator, now, nil)
}

// NewRosterSessionWithLogger is NewRosterSession with an explicit logger.
func NewRosterSessionWithLogger(rosters persistence.RosterRepository, businessID string, idGenerator func() string, now func() time.Time, logger *slog.Logger) *RosterSession {
	if now == nil {
		now = time.Now
	}
	anchor := now()
	session := &RosterSession{
		rosters:      rosters,
		businessID:   businessID,
		idGenerator:  idGenerator,
		now:          now,
		logger:       defaultLogger(logger),
		guard:        NewEditGuard(now),
		saveBoundary: SaveBoundaryExclusive,
		saved:        make(map[string]roster.ShiftEvent),
		viewMode:     roster.ViewWeek,
		anchor:       anchor,
		window:       roster.WeekBounds(anchor),
	}
	storeOpts := []roster.EventStoreOption{}
	if idGenerator != nil {
		storeOpts = append(storeOpts, roster.WithIDGenerator(idGenerator))
	}
	session.events = roster.NewEventStore(storeOpts...)
	return session
}

// SetSaveBoundary overrides the week-end boundary rule applied on save.
func (s *RosterSession) SetSaveBoundary(boundary SaveBoundary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if boundary == SaveBoundaryInclusive {
		s.saveBoundary = SaveBoundaryInclusive
	} else {
		s.saveBoundary = SaveBoundaryExclusive
	}
}

// SetDefaultShiftDuration overrides the span given to externally dropped
// events.
func (s *RosterSession) SetDefaultShiftDuration(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.events.Snapshot()
	opts := []roster.EventStoreOption{roster.WithShiftDuration(d)}
	if s.idGenerator != nil {
		opts = append(opts, roster.WithIDGenerator(s.idGenerator))
	}
	s.events = roster.NewEventStore(opts...)
	s.events.ReplaceAll(snapshot)
}

// State returns a snapshot of the session for the calendar surface, with
// events ordered by start then id.
func (s *RosterSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.events.Events()
	sort.Slice(events, func(i, j int) bool {
		if events[i].Start.Equal(events[j].Start) {
			return events[i].ID < events[j].ID
		}
		return events[i].Start.Before(events[j].Start)
	})

	return SessionState{
		BusinessID: s.businessID,
		StoreID:    s.storeID,
		ViewMode:   s.viewMode,
		Window:     s.window,
		Events:     events,
		Dirty:      HasUnsavedChanges(s.events.Snapshot(), s.saved),
	}
}

// SelectStore switches the active store and loads every roster document
// ever saved for it, flattened into the event store by event id. Unsaved
// changes gate the switch: declining aborts it, confirming restores the last
// saved snapshot first. A load failure is logged and leaves the event store
// at its prior state.
func (s *RosterSession) SelectStore(ctx context.Context, storeID string, confirmDiscard bool) error {
	s.mu.Lock()
	if s.businessID == "" {
		s.mu.Unlock()
		return ErrBusinessContextMissing
	}
	if err := s.gateDiscardLocked(confirmDiscard); err != nil {
		s.mu.Unlock()
		return err
	}
	s.storeID = storeID
	if storeID == "" {
		s.mu.Unlock()
		return nil
	}
	s.loadGeneration++
	generation := s.loadGeneration
	businessID := s.businessID
	s.mu.Unlock()

	logger := serviceLogger(ctx, s.logger, "roster_session", "select_store", "store_id", storeID)

	documents, err := s.rosters.ListRostersForStore(ctx, businessID, storeID)
	if err != nil {
		// Load failures are diagnostic only; the event store keeps its
		// prior contents.
		logger.WarnContext(ctx, "failed to load rosters", "error", err)
		return nil
	}

	merged := flattenRosters(documents)

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.loadGeneration || s.storeID != storeID {
		logger.WarnContext(ctx, "discarding stale roster load", "generation", generation)
		return nil
	}
	s.events.ReplaceAll(merged)
	s.saved = copySnapshot(merged)
	logger.InfoContext(ctx, "rosters loaded", "documents", len(documents), "events", len(merged))
	return nil
}

// Navigate steps the viewport anchor one unit in the given direction. While
// unsaved changes exist the move must be confirmed; confirming discards the
// live edits back to the last saved snapshot.
func (s *RosterSession) Navigate(direction roster.Direction, confirmDiscard bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.gateDiscardLocked(confirmDiscard); err != nil {
		return err
	}
	s.anchor = roster.Navigate(s.anchor, s.viewMode, direction)
	s.window = roster.Bounds(s.anchor, s.viewMode)
	return nil
}

// NavigateTo jumps the viewport anchor to an explicit date, with the same
// unsaved-change gating as Navigate.
func (s *RosterSession) NavigateTo(date time.Time, confirmDiscard bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.gateDiscardLocked(confirmDiscard); err != nil {
		return err
	}
	s.anchor = date
	s.window = roster.Bounds(s.anchor, s.viewMode)
	return nil
}

// SetView switches between week and day mode, recomputing the window around
// the current anchor. The unsaved-change gate applies because the active
// window changes.
func (s *RosterSession) SetView(mode roster.ViewMode, confirmDiscard bool) error {
	if mode != roster.ViewWeek && mode != roster.ViewDay {
		vErr := &ValidationError{}
		vErr.add("mode", fmt.Sprintf("unknown view mode %q", mode))
		return vErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.gateDiscardLocked(confirmDiscard); err != nil {
		return err
	}
	s.viewMode = mode
	s.window = roster.Bounds(s.anchor, mode)
	return nil
}

// RangeChanged records the window the calendar surface reports after it has
// already re-rendered. The report is canonicalized but never gated: the
// surface is telling us where it is, not asking permission.
func (s *RosterSession) RangeChanged(raw roster.RawRange) {
	window := roster.NormalizeRange(raw)
	if window.Start.IsZero() && window.End.IsZero() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.window = window
}

// BeginExternalDrag stashes the employee being dragged from the sidebar.
// The slot holds a single reference; a new drag overwrites an unconsumed
// one.
func (s *RosterSession) BeginExternalDrag(employee roster.EmployeeRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDrag = &employee
}

// DropEvent applies an internal calendar drop or resize: a move when Clone
// is unset, a duplicate under a fresh id when it is set. The edit guard
// runs first; a rejected drop changes nothing.
func (s *RosterSession) DropEvent(ctx context.Context, cmd DropEventCommand) (roster.ShiftEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard.GuardMutation(cmd.Start); err != nil {
		serviceLogger(ctx, s.logger, "roster_session", "drop_event", "event_id", cmd.EventID).
			WarnContext(ctx, "mutation rejected", "kind", ErrorKind(err))
		return roster.ShiftEvent{}, err
	}

	event, err := s.events.MoveOrClone(cmd.EventID, cmd.Start, cmd.End, cmd.Clone)
	if err != nil {
		return roster.ShiftEvent{}, err
	}
	return event, nil
}

// DropFromOutside consumes the pending drag payload and creates a new event
// at the dropped slot with the default shift duration. With no pending
// payload the drop is a silent no-op. The edit guard applies as for any
// other mutation.
func (s *RosterSession) DropFromOutside(ctx context.Context, cmd ExternalDropCommand) (roster.ShiftEvent, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingDrag == nil {
		return roster.ShiftEvent{}, false, nil
	}
	employee := *s.pendingDrag
	s.pendingDrag = nil

	if err := s.guard.GuardMutation(cmd.Start); err != nil {
		serviceLogger(ctx, s.logger, "roster_session", "drop_from_outside", "employee_id", employee.ID).
			WarnContext(ctx, "mutation rejected", "kind", ErrorKind(err))
		return roster.ShiftEvent{}, false, err
	}

	event := s.events.CreateFromExternalDrop(employee, cmd.Start, cmd.AllDay)
	return event, true, nil
}

// UpdateEvent replaces an event wholesale, the modal's save path. The guard
// rejects updates that would place the event on a past date.
func (s *RosterSession) UpdateEvent(ctx context.Context, event roster.ShiftEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard.GuardMutation(event.Start); err != nil {
		return err
	}
	if _, ok := s.events.Get(event.ID); !ok {
		return ErrNotFound
	}
	return s.events.Upsert(event)
}

// DeleteEvent removes an event from the working set. Deleting an unknown id
// is a no-op, matching the store semantics.
func (s *RosterSession) DeleteEvent(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events.Remove(id)
}

// Save persists the active roster wholesale. The persisted week is anchored
// on the latest event start, falling back to the viewed window when the
// store is empty. Events outside the week filter are silently left out of
// the document but stay in memory. On failure the in-memory state is not
// rolled back.
func (s *RosterSession) Save(ctx context.Context) (SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.businessID == "" {
		return SaveResult{}, ErrBusinessContextMissing
	}
	if s.storeID == "" {
		return SaveResult{}, ErrStoreNotSelected
	}

	week := s.saveWindowLocked()
	events := s.events.Query(func(event roster.ShiftEvent) bool {
		if event.Start.Before(week.Start) {
			return false
		}
		if s.saveBoundary == SaveBoundaryInclusive {
			return !event.End.After(week.End)
		}
		return event.End.Before(week.End)
	})
	sort.Slice(events, func(i, j int) bool {
		if events[i].Start.Equal(events[j].Start) {
			return events[i].ID < events[j].ID
		}
		return events[i].Start.Before(events[j].Start)
	})

	records := make([]persistence.ShiftEventRecord, 0, len(events))
	for _, event := range events {
		records = append(records, toRecord(event))
	}

	weekEnding := week.End
	document := persistence.RosterDocument{
		ID:      RosterDocumentID(s.storeID, weekEnding),
		StoreID: s.storeID,
		Events:  records,
	}

	logger := serviceLogger(ctx, s.logger, "roster_session", "save", "roster_id", document.ID)

	if err := s.rosters.PutRoster(ctx, s.businessID, document); err != nil {
		logger.ErrorContext(ctx, "failed to save roster", "error", err)
		return SaveResult{}, &PersistenceFailure{Op: "save", Err: err}
	}

	s.saved = s.events.Snapshot()
	logger.InfoContext(ctx, "roster saved", "events", len(records))

	return SaveResult{
		RosterID:   document.ID,
		StoreID:    s.storeID,
		WeekEnding: weekEnding,
		EventCount: len(records),
	}, nil
}

// HasUnsavedChanges reports whether the live events have diverged from the
// last saved snapshot.
func (s *RosterSession) HasUnsavedChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return HasUnsavedChanges(s.events.Snapshot(), s.saved)
}

// Window returns the active viewport bounds.
func (s *RosterSession) Window() roster.Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window
}

// HoursFor aggregates one employee's totals over the active window.
func (s *RosterSession) HoursFor(employee roster.EmployeeRef) (float64, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return roster.TotalHours(s.events, employee, s.window),
		roster.ShiftCount(s.events, employee, s.window)
}

// HoursReport builds the sidebar table for the given employees over the
// active window.
func (s *RosterSession) HoursReport(employees []persistence.Employee) []EmployeeHours {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]EmployeeHours, 0, len(employees))
	for _, employee := range employees {
		ref := roster.EmployeeRef{ID: employee.ID, Name: employee.Name}
		rows = append(rows, EmployeeHours{
			Employee: ref,
			Role:     employee.Role,
			Hours:    roster.TotalHours(s.events, ref, s.window),
			Shifts:   roster.ShiftCount(s.events, ref, s.window),
		})
	}
	return rows
}

// Preview builds the per-day preview table for the given employees over the
// active window.
func (s *RosterSession) Preview(employees []persistence.Employee) []PreviewRow {
	s.mu.Lock()
	defer s.mu.Unlock()

	days := roster.WindowDays(s.window)
	rows := make([]PreviewRow, 0, len(employees))
	for _, employee := range employees {
		ref := roster.EmployeeRef{ID: employee.ID, Name: employee.Name}
		cells := make([]string, 0, len(days))
		for _, day := range days {
			cells = append(cells, roster.FormatDayShifts(s.events, ref, s.window, day))
		}
		rows = append(rows, PreviewRow{
			Employee: ref,
			Days:     cells,
			Shifts:   roster.ShiftCount(s.events, ref, s.window),
		})
	}
	return rows
}

// RosterDocumentID builds the deterministic document key for a store's week:
// the store id joined with the formatted week-ending date.
func RosterDocumentID(storeID string, weekEnding time.Time) string {
	return fmt.Sprintf("%s-%s", storeID, weekEnding.Format("02Jan2006"))
}

// gateDiscardLocked enforces the unsaved-change confirmation on window and
// store changes. Confirming replaces the live events with the last saved
// snapshot.
func (s *RosterSession) gateDiscardLocked(confirmDiscard bool) error {
	if !HasUnsavedChanges(s.events.Snapshot(), s.saved) {
		return nil
	}
	if !confirmDiscard {
		return ErrUnsavedChanges
	}
	s.events.ReplaceAll(s.saved)
	return nil
}

// saveWindowLocked anchors the persisted week on the latest event start,
// matching the source: the week being saved is the week being edited, even
// when the viewport has moved on.
func (s *RosterSession) saveWindowLocked() roster.Window {
	latest := time.Time{}
	for _, event := range s.events.Events() {
		if event.Start.After(latest) {
			latest = event.Start
		}
	}
	if latest.IsZero() {
		return roster.WeekBounds(s.window.Start)
	}
	return roster.WeekBounds(latest)
}

func flattenRosters(documents []persistence.RosterDocument) map[string]roster.ShiftEvent {
	merged := make(map[string]roster.ShiftEvent)
	for _, document := range documents {
		for _, record := range document.Events {
			// Ids are expected to be globally unique; a recurring id
			// resolves to the later-enumerated document.
			merged[record.ID] = fromRecord(record, document.ID)
		}
	}
	return merged
}

func copySnapshot(events map[string]roster.ShiftEvent) map[string]roster.ShiftEvent {
	snapshot := make(map[string]roster.ShiftEvent, len(events))
	for id, event := range events {
		snapshot[id] = event
	}
	return snapshot
}

// mapRepoError converts persistence sentinels into application sentinels.
func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
