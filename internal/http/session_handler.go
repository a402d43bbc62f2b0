package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/roster-scheduler/internal/application"
	"github.com/example/roster-scheduler/internal/persistence"
	"github.com/example/roster-scheduler/internal/roster"
)

type rosterSession interface {
	State() application.SessionState
	SelectStore(ctx context.Context, storeID string, confirmDiscard bool) error
	Navigate(direction roster.Direction, confirmDiscard bool) error
	NavigateTo(date time.Time, confirmDiscard bool) error
	SetView(mode roster.ViewMode, confirmDiscard bool) error
	RangeChanged(raw roster.RawRange)
	BeginExternalDrag(employee roster.EmployeeRef)
	DropEvent(ctx context.Context, cmd application.DropEventCommand) (roster.ShiftEvent, error)
	DropFromOutside(ctx context.Context, cmd application.ExternalDropCommand) (roster.ShiftEvent, bool, error)
	UpdateEvent(ctx context.Context, event roster.ShiftEvent) error
	DeleteEvent(id string)
	Save(ctx context.Context) (application.SaveResult, error)
	HoursReport(employees []persistence.Employee) []application.EmployeeHours
	Preview(employees []persistence.Employee) []application.PreviewRow
}

type storeDirectory interface {
	ListStores(ctx context.Context) ([]persistence.Store, error)
}

type employeeDirectory interface {
	ListEmployees(ctx context.Context) ([]persistence.Employee, error)
}

// SessionHandler serves the roster editing session's command surface.
type SessionHandler struct {
	session   rosterSession
	stores    storeDirectory
	employees employeeDirectory
	responder responder
}

// NewSessionHandler wires the session handler.
func NewSessionHandler(session rosterSession, stores storeDirectory, employees employeeDirectory, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		session:   session,
		stores:    stores,
		employees: employees,
		responder: newResponder(logger),
	}
}

// --- DTOs ---

type eventDTO struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	AllDay       bool      `json:"all_day"`
	Color        string    `json:"color,omitempty"`
	Hours        string    `json:"hours"`
	RosterID     string    `json:"roster_id,omitempty"`
}

type stateResponse struct {
	StoreID  string     `json:"store_id"`
	ViewMode string     `json:"view_mode"`
	Start    time.Time  `json:"window_start"`
	End      time.Time  `json:"window_end"`
	Events   []eventDTO `json:"events"`
	Dirty    bool       `json:"dirty"`
}

type selectStoreRequest struct {
	StoreID        string `json:"store_id"`
	ConfirmDiscard bool   `json:"confirm_discard"`
}

type navigateRequest struct {
	Date           *time.Time `json:"date,omitempty"`
	Direction      string     `json:"direction,omitempty"`
	ConfirmDiscard bool       `json:"confirm_discard"`
}

type viewRequest struct {
	Mode           string `json:"mode"`
	ConfirmDiscard bool   `json:"confirm_discard"`
}

type rangeRequest struct {
	Dates []time.Time `json:"dates,omitempty"`
	Start time.Time   `json:"start,omitempty"`
	End   time.Time   `json:"end,omitempty"`
}

type dragStartRequest struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
}

type dropEventRequest struct {
	EventID string    `json:"event_id"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Clone   bool      `json:"clone"`
}

type externalDropRequest struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	AllDay bool      `json:"all_day"`
}

type updateEventRequest struct {
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	AllDay       bool      `json:"all_day"`
	Color        string    `json:"color"`
}

type hoursRow struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Role         string `json:"role,omitempty"`
	TotalHours   string `json:"total_hours"`
	Shifts       int    `json:"shifts"`
}

type previewRowDTO struct {
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	Days         []string `json:"days"`
	Shifts       int      `json:"shifts"`
}

type saveResponse struct {
	RosterID   string    `json:"roster_id"`
	StoreID    string    `json:"store_id"`
	WeekEnding time.Time `json:"week_ending"`
	EventCount int       `json:"event_count"`
}

type storeDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type employeeDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// --- Handlers ---

// State renders the session snapshot for the calendar surface.
func (h *SessionHandler) State(w http.ResponseWriter, r *http.Request) {
	state := h.session.State()
	events := make([]eventDTO, 0, len(state.Events))
	for _, event := range state.Events {
		events = append(events, toEventDTO(event))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, stateResponse{
		StoreID:  state.StoreID,
		ViewMode: string(state.ViewMode),
		Start:    state.Window.Start,
		End:      state.Window.End,
		Events:   events,
		Dirty:    state.Dirty,
	})
}

// SelectStore switches the active store and loads its rosters.
func (h *SessionHandler) SelectStore(w http.ResponseWriter, r *http.Request) {
	var req selectStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if err := h.session.SelectStore(r.Context(), req.StoreID, req.ConfirmDiscard); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.State(w, r)
}

// Navigate moves the viewport anchor by date or direction.
func (h *SessionHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	var err error
	switch {
	case req.Date != nil:
		err = h.session.NavigateTo(*req.Date, req.ConfirmDiscard)
	case strings.EqualFold(req.Direction, "back"):
		err = h.session.Navigate(roster.Back, req.ConfirmDiscard)
	case strings.EqualFold(req.Direction, "forward"):
		err = h.session.Navigate(roster.Forward, req.ConfirmDiscard)
	default:
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.State(w, r)
}

// SetView toggles between week and day mode.
func (h *SessionHandler) SetView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if err := h.session.SetView(roster.ViewMode(req.Mode), req.ConfirmDiscard); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.State(w, r)
}

// RangeChanged records the window the surface reports after re-rendering.
func (h *SessionHandler) RangeChanged(w http.ResponseWriter, r *http.Request) {
	var req rangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	h.session.RangeChanged(roster.RawRange{Dates: req.Dates, Start: req.Start, End: req.End})
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// DragStart stashes the employee reference for the next external drop.
func (h *SessionHandler) DragStart(w http.ResponseWriter, r *http.Request) {
	var req dragStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	h.session.BeginExternalDrag(roster.EmployeeRef{ID: req.EmployeeID, Name: req.EmployeeName})
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// DropEvent applies an internal move, resize or clone.
func (h *SessionHandler) DropEvent(w http.ResponseWriter, r *http.Request) {
	var req dropEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	event, err := h.session.DropEvent(r.Context(), application.DropEventCommand{
		EventID: req.EventID,
		Start:   req.Start,
		End:     req.End,
		Clone:   req.Clone,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toEventDTO(event))
}

// DropExternal materializes the pending drag payload as a new event. With
// no payload pending, nothing is created and 204 is returned.
func (h *SessionHandler) DropExternal(w http.ResponseWriter, r *http.Request) {
	var req externalDropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	event, created, err := h.session.DropFromOutside(r.Context(), application.ExternalDropCommand{
		Start:  req.Start,
		End:    req.End,
		AllDay: req.AllDay,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	if !created {
		h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toEventDTO(event))
}

// UpdateEvent replaces an event wholesale, the modal's save path.
func (h *SessionHandler) UpdateEvent(w http.ResponseWriter, r *http.Request, eventID string) {
	if eventID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}
	var req updateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	event := roster.ShiftEvent{
		ID:       eventID,
		Employee: roster.EmployeeRef{ID: req.EmployeeID, Name: req.EmployeeName},
		Start:    req.Start,
		End:      req.End,
		AllDay:   req.AllDay,
		Color:    roster.ColorTag(req.Color),
	}
	if err := h.session.UpdateEvent(r.Context(), event); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toEventDTO(event))
}

// DeleteEvent removes an event from the working set.
func (h *SessionHandler) DeleteEvent(w http.ResponseWriter, r *http.Request, eventID string) {
	if eventID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}
	h.session.DeleteEvent(eventID)
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// Save persists the active roster wholesale.
func (h *SessionHandler) Save(w http.ResponseWriter, r *http.Request) {
	result, err := h.session.Save(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, saveResponse{
		RosterID:   result.RosterID,
		StoreID:    result.StoreID,
		WeekEnding: result.WeekEnding,
		EventCount: result.EventCount,
	})
}

// Hours renders the per-employee totals for the active window.
func (h *SessionHandler) Hours(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employees.ListEmployees(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	rows := make([]hoursRow, 0, len(employees))
	for _, row := range h.session.HoursReport(employees) {
		rows = append(rows, hoursRow{
			EmployeeID:   row.Employee.ID,
			EmployeeName: row.Employee.Name,
			Role:         row.Role,
			TotalHours:   roster.FormatHours(row.Hours),
			Shifts:       row.Shifts,
		})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, rows)
}

// Preview renders the per-day preview table for the active window.
func (h *SessionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employees.ListEmployees(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	rows := make([]previewRowDTO, 0, len(employees))
	for _, row := range h.session.Preview(employees) {
		rows = append(rows, previewRowDTO{
			EmployeeID:   row.Employee.ID,
			EmployeeName: row.Employee.Name,
			Days:         row.Days,
			Shifts:       row.Shifts,
		})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, rows)
}

// Stores renders the store catalog for the selector.
func (h *SessionHandler) Stores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.stores.ListStores(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	dtos := make([]storeDTO, 0, len(stores))
	for _, store := range stores {
		dtos = append(dtos, storeDTO{ID: store.ID, Name: store.Name})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, dtos)
}

// Employees renders the employee list for the drag source sidebar.
func (h *SessionHandler) Employees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employees.ListEmployees(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	dtos := make([]employeeDTO, 0, len(employees))
	for _, employee := range employees {
		dtos = append(dtos, employeeDTO{ID: employee.ID, Name: employee.Name, Role: employee.Role})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, dtos)
}

func toEventDTO(event roster.ShiftEvent) eventDTO {
	return eventDTO{
		ID:           event.ID,
		EmployeeID:   event.Employee.ID,
		EmployeeName: event.Employee.Name,
		Start:        event.Start,
		End:          event.End,
		AllDay:       event.AllDay,
		Color:        string(event.Color),
		Hours:        roster.FormatHours(event.Hours()),
		RosterID:     event.RosterID,
	}
}
