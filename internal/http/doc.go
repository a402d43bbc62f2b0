// Package http exposes the roster engine's command surface as a JSON API.
// The endpoints mirror the calendar widget's callback contract one to one:
//
//   - GET /state: the active window, view mode, selected store, events and
//     dirty flag.
//   - GET /hours: per-employee total hours and shift counts for the active
//     window.
//   - GET /preview: the per-day preview table for the active window.
//   - GET /stores, GET /employees: directory listings for the selectors and
//     the drag source sidebar.
//   - POST /store: {"store_id","confirm_discard"} selects a store and loads
//     its rosters.
//   - POST /navigate: {"date"} or {"direction":"back"|"forward"} plus
//     "confirm_discard"; moves the viewport anchor.
//   - POST /view: {"mode":"week"|"day","confirm_discard"}.
//   - POST /range: {"dates":[...]} or {"start","end"}; records the window
//     the surface reports after re-rendering.
//   - POST /drag/start: {"employee_id","employee_name"} stashes the drag
//     payload consumed by the next external drop.
//   - POST /events/drop: {"event_id","start","end","clone"} moves, resizes
//     or clones an event.
//   - POST /events/drop-external: {"start","end","all_day"} materializes the
//     pending drag payload as a new event.
//   - PUT /events/{id}, DELETE /events/{id}: the event modal's save and
//     delete paths.
//   - POST /save: persists the active roster wholesale.
//
// Request/response DTOs live alongside the handler so tests and
// documentation share the same ground truth.
package http
