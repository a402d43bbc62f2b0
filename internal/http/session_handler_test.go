package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/roster-scheduler/internal/application"
	"github.com/example/roster-scheduler/internal/persistence"
	"github.com/example/roster-scheduler/internal/roster"
	"github.com/example/roster-scheduler/internal/testfixtures"
)

const testBusinessID = "business-1"

type handlerHarness struct {
	router  http.Handler
	rosters *testfixtures.RosterRepository
	session *application.RosterSession
}

func newHandlerHarness(t *testing.T) *handlerHarness {
	t.Helper()
	ctx := context.Background()

	rosters := testfixtures.NewRosterRepository()
	stores := testfixtures.NewStoreRepository()
	employees := testfixtures.NewEmployeeRepository()

	if err := stores.PutStore(ctx, testBusinessID, persistence.Store{ID: "store-1", Name: "Downtown"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := employees.PutEmployee(ctx, testBusinessID, testfixtures.NamedEmployee("employee-1", "Alice")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock := testfixtures.NewClock(time.Time{})
	ids := testfixtures.NewIDGenerator("event")
	session := application.NewRosterSession(rosters, testBusinessID, ids.NextFunc(), clock.NowFunc())

	handler := NewSessionHandler(
		session,
		application.NewStoreDirectory(stores, testBusinessID, nil),
		application.NewEmployeeDirectory(employees, testBusinessID, nil),
		nil,
	)
	return &handlerHarness{
		router:  NewRouter(RouterConfig{Session: handler}),
		rosters: rosters,
		session: session,
	}
}

func (h *handlerHarness) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	recorder := httptest.NewRecorder()
	h.router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(recorder.Body).Decode(&out); err != nil {
		t.Fatalf("unexpected error decoding body %q: %v", recorder.Body.String(), err)
	}
	return out
}

// seedStore persists a one-event roster and selects the store through the
// API so follow-up requests operate on a loaded session.
func (h *handlerHarness) seedStore(t *testing.T) {
	t.Helper()
	start := testfixtures.ReferenceTime()
	record := testfixtures.NewEventFixture(
		testfixtures.WithEventID("shift-1"),
		testfixtures.WithEmployee(roster.EmployeeRef{ID: "employee-1", Name: "Alice"}),
		testfixtures.WithEventTimes(start, start.Add(8*time.Hour)),
	).Record()
	doc := persistence.RosterDocument{
		ID:      application.RosterDocumentID("store-1", testfixtures.ReferenceWeek().End),
		StoreID: "store-1",
		Events:  []persistence.ShiftEventRecord{record},
	}
	if err := h.rosters.PutRoster(context.Background(), testBusinessID, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recorder := h.do(t, http.MethodPost, "/store", selectStoreRequest{StoreID: "store-1"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 selecting the store, got %d: %s", recorder.Code, recorder.Body.String())
	}
}

func TestSessionHandlerState(t *testing.T) {
	h := newHandlerHarness(t)
	h.seedStore(t)

	recorder := h.do(t, http.MethodGet, "/state", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	state := decodeBody[stateResponse](t, recorder)
	if state.StoreID != "store-1" {
		t.Errorf("expected store-1, got %q", state.StoreID)
	}
	if state.ViewMode != "week" {
		t.Errorf("expected week mode, got %q", state.ViewMode)
	}
	if len(state.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(state.Events))
	}
	if state.Events[0].Hours != "8.00" {
		t.Errorf("expected 8.00 hours, got %q", state.Events[0].Hours)
	}
	if state.Dirty {
		t.Error("expected a freshly loaded session to be clean")
	}
}

func TestSessionHandlerNavigate(t *testing.T) {
	h := newHandlerHarness(t)
	h.seedStore(t)

	t.Run("direction steps the window", func(t *testing.T) {
		recorder := h.do(t, http.MethodPost, "/navigate", navigateRequest{Direction: "forward"})
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		state := decodeBody[stateResponse](t, recorder)
		want := testfixtures.ReferenceWeek().Start.AddDate(0, 0, 7)
		if !state.Start.Equal(want) {
			t.Errorf("expected window start %v, got %v", want, state.Start)
		}
	})

	t.Run("explicit date jumps", func(t *testing.T) {
		date := time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)
		recorder := h.do(t, http.MethodPost, "/navigate", navigateRequest{Date: &date})
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		state := decodeBody[stateResponse](t, recorder)
		if want := time.Date(2026, time.April, 13, 0, 0, 0, 0, time.UTC); !state.Start.Equal(want) {
			t.Errorf("expected the week of the target date, got %v", state.Start)
		}
	})

	t.Run("missing direction is a bad request", func(t *testing.T) {
		recorder := h.do(t, http.MethodPost, "/navigate", navigateRequest{})
		if recorder.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", recorder.Code)
		}
	})
}

func TestSessionHandlerDragAndDrop(t *testing.T) {
	h := newHandlerHarness(t)
	h.seedStore(t)

	t.Run("external drop without a drag returns no content", func(t *testing.T) {
		recorder := h.do(t, http.MethodPost, "/events/drop-external", externalDropRequest{
			Start: testfixtures.ReferenceTime().AddDate(0, 0, 1),
		})
		if recorder.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", recorder.Code)
		}
	})

	t.Run("drag then drop creates the shift", func(t *testing.T) {
		recorder := h.do(t, http.MethodPost, "/drag/start", dragStartRequest{EmployeeID: "employee-1", EmployeeName: "Alice"})
		if recorder.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", recorder.Code)
		}

		start := testfixtures.ReferenceTime().AddDate(0, 0, 1)
		recorder = h.do(t, http.MethodPost, "/events/drop-external", externalDropRequest{Start: start})
		if recorder.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
		}
		event := decodeBody[eventDTO](t, recorder)
		if event.EmployeeID != "employee-1" {
			t.Errorf("expected the dragged employee, got %q", event.EmployeeID)
		}
		if !event.End.Equal(start.Add(3 * time.Hour)) {
			t.Errorf("expected a 3h shift, got end %v", event.End)
		}
	})

	t.Run("internal drop moves the shift", func(t *testing.T) {
		newStart := testfixtures.ReferenceTime().AddDate(0, 0, 2)
		recorder := h.do(t, http.MethodPost, "/events/drop", dropEventRequest{
			EventID: "shift-1",
			Start:   newStart,
			End:     newStart.Add(8 * time.Hour),
		})
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
		event := decodeBody[eventDTO](t, recorder)
		if event.ID != "shift-1" || !event.Start.Equal(newStart) {
			t.Errorf("expected shift-1 at the new slot, got %+v", event)
		}
	})

	t.Run("past-dated drop maps to a conflict", func(t *testing.T) {
		yesterday := testfixtures.ReferenceTime().AddDate(0, 0, -1)
		recorder := h.do(t, http.MethodPost, "/events/drop", dropEventRequest{
			EventID: "shift-1",
			Start:   yesterday,
			End:     yesterday.Add(8 * time.Hour),
		})
		if recorder.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", recorder.Code)
		}
		body := decodeBody[errorResponse](t, recorder)
		if body.ErrorCode != "PAST_WEEK_EDIT" {
			t.Errorf("expected PAST_WEEK_EDIT, got %q", body.ErrorCode)
		}
	})
}

func TestSessionHandlerUpdateAndDelete(t *testing.T) {
	h := newHandlerHarness(t)
	h.seedStore(t)

	t.Run("update replaces the event", func(t *testing.T) {
		start := testfixtures.ReferenceTime()
		recorder := h.do(t, http.MethodPut, "/events/shift-1", updateEventRequest{
			EmployeeID:   "employee-1",
			EmployeeName: "Alice",
			Start:        start,
			End:          start.Add(6 * time.Hour),
			Color:        "blue",
		})
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
		event := decodeBody[eventDTO](t, recorder)
		if event.Color != "blue" || event.Hours != "6.00" {
			t.Errorf("expected a blue 6.00h shift, got %+v", event)
		}
	})

	t.Run("updating an unknown event is a 404", func(t *testing.T) {
		start := testfixtures.ReferenceTime()
		recorder := h.do(t, http.MethodPut, "/events/ghost", updateEventRequest{
			Start: start,
			End:   start.Add(time.Hour),
		})
		if recorder.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", recorder.Code)
		}
	})

	t.Run("delete removes the event", func(t *testing.T) {
		recorder := h.do(t, http.MethodDelete, "/events/shift-1", nil)
		if recorder.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", recorder.Code)
		}
		state := decodeBody[stateResponse](t, h.do(t, http.MethodGet, "/state", nil))
		if len(state.Events) != 0 {
			t.Errorf("expected no events after delete, got %d", len(state.Events))
		}
	})

	t.Run("unsupported method on an event id", func(t *testing.T) {
		recorder := h.do(t, http.MethodPost, "/events/shift-1", nil)
		if recorder.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", recorder.Code)
		}
	})
}

func TestSessionHandlerSave(t *testing.T) {
	t.Run("without a store selected", func(t *testing.T) {
		h := newHandlerHarness(t)
		recorder := h.do(t, http.MethodPost, "/save", nil)
		if recorder.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", recorder.Code)
		}
		body := decodeBody[errorResponse](t, recorder)
		if body.ErrorCode != "STORE_NOT_SELECTED" {
			t.Errorf("expected STORE_NOT_SELECTED, got %q", body.ErrorCode)
		}
	})

	t.Run("persists and reports the document", func(t *testing.T) {
		h := newHandlerHarness(t)
		h.seedStore(t)

		recorder := h.do(t, http.MethodPost, "/save", nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
		result := decodeBody[saveResponse](t, recorder)
		if result.RosterID != "store-1-08Mar2026" || result.EventCount != 1 {
			t.Errorf("expected the reference week document, got %+v", result)
		}
	})

	t.Run("backend failure maps to a bad gateway", func(t *testing.T) {
		h := newHandlerHarness(t)
		h.seedStore(t)
		h.rosters.PutErr = fmt.Errorf("backend offline")

		recorder := h.do(t, http.MethodPost, "/save", nil)
		if recorder.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", recorder.Code)
		}
		body := decodeBody[errorResponse](t, recorder)
		if body.ErrorCode != "PERSISTENCE_FAILURE" {
			t.Errorf("expected PERSISTENCE_FAILURE, got %q", body.ErrorCode)
		}
	})
}

func TestSessionHandlerUnsavedChangesGate(t *testing.T) {
	h := newHandlerHarness(t)
	h.seedStore(t)

	// Dirty the session through the API.
	if code := h.do(t, http.MethodPost, "/drag/start", dragStartRequest{EmployeeID: "employee-1", EmployeeName: "Alice"}).Code; code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", code)
	}
	if code := h.do(t, http.MethodPost, "/events/drop-external", externalDropRequest{
		Start: testfixtures.ReferenceTime().AddDate(0, 0, 1),
	}).Code; code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}

	recorder := h.do(t, http.MethodPost, "/navigate", navigateRequest{Direction: "forward"})
	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", recorder.Code)
	}
	if body := decodeBody[errorResponse](t, recorder); body.ErrorCode != "UNSAVED_CHANGES" {
		t.Errorf("expected UNSAVED_CHANGES, got %q", body.ErrorCode)
	}

	recorder = h.do(t, http.MethodPost, "/navigate", navigateRequest{Direction: "forward", ConfirmDiscard: true})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 after confirming, got %d", recorder.Code)
	}
	if state := decodeBody[stateResponse](t, recorder); state.Dirty {
		t.Error("expected a confirmed discard to leave the session clean")
	}
}

func TestSessionHandlerHoursAndPreview(t *testing.T) {
	h := newHandlerHarness(t)
	h.seedStore(t)

	t.Run("hours table", func(t *testing.T) {
		recorder := h.do(t, http.MethodGet, "/hours", nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		rows := decodeBody[[]hoursRow](t, recorder)
		if len(rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(rows))
		}
		if rows[0].TotalHours != "8.00" || rows[0].Shifts != 1 {
			t.Errorf("expected 8.00 hours over 1 shift, got %+v", rows[0])
		}
	})

	t.Run("preview table", func(t *testing.T) {
		recorder := h.do(t, http.MethodGet, "/preview", nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		rows := decodeBody[[]previewRowDTO](t, recorder)
		if len(rows) != 1 || len(rows[0].Days) != 7 {
			t.Fatalf("expected 1 row with 7 day cells, got %+v", rows)
		}
		if rows[0].Days[0] != "09:00 - 17:00" {
			t.Errorf("expected Monday's shift, got %q", rows[0].Days[0])
		}
	})
}

func TestSessionHandlerCatalogs(t *testing.T) {
	h := newHandlerHarness(t)

	t.Run("stores", func(t *testing.T) {
		recorder := h.do(t, http.MethodGet, "/stores", nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		stores := decodeBody[[]storeDTO](t, recorder)
		if len(stores) != 1 || stores[0].Name != "Downtown" {
			t.Errorf("expected the seeded store, got %+v", stores)
		}
	})

	t.Run("employees", func(t *testing.T) {
		recorder := h.do(t, http.MethodGet, "/employees", nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		employees := decodeBody[[]employeeDTO](t, recorder)
		if len(employees) != 1 || employees[0].Name != "Alice" {
			t.Errorf("expected the seeded employee, got %+v", employees)
		}
	})

	t.Run("wrong method", func(t *testing.T) {
		recorder := h.do(t, http.MethodDelete, "/stores", nil)
		if recorder.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", recorder.Code)
		}
	})
}
