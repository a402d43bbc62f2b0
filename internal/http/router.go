package http

import (
	"net/http"
	"strings"
)

// RouterConfig wires the handlers served by the router.
type RouterConfig struct {
	Session *SessionHandler
}

// NewRouter assembles the roster API routes.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	h := cfg.Session

	if h != nil {
		mux.HandleFunc("/state", methodHandler(h, map[string]http.HandlerFunc{
			http.MethodGet: h.State,
		}))
		mux.HandleFunc("/hours", methodHandler(h, map[string]http.HandlerFunc{
			http.MethodGet: h.Hours,
		}))
		mux.HandleFunc("/preview", methodHandler(h, map[string]http.HandlerFunc{
			http.MethodGet: h.Preview,
		}))
		mux.HandleFunc("/stores", methodHandler(h, map[string]http.HandlerFunc{
			http.MethodGet: h.Stores,
		}))
		mux.HandleFunc("/employees", methodHandler(h, map[string]http.HandlerFunc{
			http.MethodGet: h.Employees,
		}))
		mux.HandleFunc("/store", methodHandler(h, map[string]http.HandlerFunc{
			http.MethodPost: h.SelectStore,
		}))
		mux.HandleFunc("/navigate", methodHandler(h, map[string]http.HandlerFunc{
			http.MethodPost: h.Navigate,
		}))
		mux.HandleFunc("/view", methodHandler(h, map[string]http.HandlerFunc{
			http.MethodPost: h.SetView,
		}))
		mux.HandleFunc("/range", methodHandler(h, map[string]http.HandlerFunc{
			http.MethodPost: h.RangeChanged,
		}))
		mux.HandleFunc("/drag/start", methodHandler(h, map[string]http.HandlerFunc{
			http.MethodPost: h.DragStart,
		}))
		mux.HandleFunc("/events/drop", methodHandler(h, map[string]http.HandlerFunc{
			http.MethodPost: h.DropEvent,
		}))
		mux.HandleFunc("/events/drop-external", methodHandler(h, map[string]http.HandlerFunc{
			http.MethodPost: h.DropExternal,
		}))
		mux.HandleFunc("/events/", func(w http.ResponseWriter, r *http.Request) {
			eventID := strings.TrimPrefix(r.URL.Path, "/events/")
			if eventID == "" || strings.Contains(eventID, "/") {
				h.responder.writeError(r.Context(), w, http.StatusNotFound, nil)
				return
			}
			switch r.Method {
			case http.MethodPut:
				h.UpdateEvent(w, r, eventID)
			case http.MethodDelete:
				h.DeleteEvent(w, r, eventID)
			default:
				h.responder.writeError(r.Context(), w, http.StatusMethodNotAllowed, errMethodNotAllowed)
			}
		})
		mux.HandleFunc("/save", methodHandler(h, map[string]http.HandlerFunc{
			http.MethodPost: h.Save,
		}))
	}

	return mux
}

func methodHandler(h *SessionHandler, methods map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if fn, ok := methods[r.Method]; ok {
			fn(w, r)
			return
		}
		h.responder.writeError(r.Context(), w, http.StatusMethodNotAllowed, errMethodNotAllowed)
	}
}
