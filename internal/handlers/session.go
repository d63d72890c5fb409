package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/emberhollow/adventure/internal/session"
)

// SessionHandler handles HTTP requests for session state operations.
// Routes:
//
//	GET /v1/session/{id}    - Read the session's state snapshot
//	DELETE /v1/session/{id} - Reset the session (state and memory together)
type SessionHandler struct {
	store  session.Store
	logger *slog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(store session.Store, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		store:  store,
		logger: logger,
	}
}

func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/session"), "/")
	if id == "" {
		h.logger.Warn("Session request without ID", "path", r.URL.Path)
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{
			Error: "Session ID is required.",
		})
		return
	}

	switch r.Method {
	case http.MethodGet:
		// The memory store hands out live session pointers; snapshot the
		// state under the session lock so a concurrent turn can't mutate
		// it mid-encode.
		unlock := h.store.Lock(id)
		sess, err := h.store.Get(r.Context(), id)
		if err != nil {
			unlock()
			h.logger.Error("Failed to load session", "session_id", id, "error", err)
			writeJSON(w, h.logger, http.StatusInternalServerError, ErrorResponse{
				Error: "Failed to load session.",
			})
			return
		}
		if sess == nil {
			unlock()
			writeJSON(w, h.logger, http.StatusNotFound, ErrorResponse{
				Error: "Session not found.",
			})
			return
		}
		snapshot := sess.State.Clone()
		unlock()
		writeJSON(w, h.logger, http.StatusOK, snapshot)

	case http.MethodDelete:
		unlock := h.store.Lock(id)
		defer unlock()
		if err := h.store.Reset(r.Context(), id); err != nil {
			h.logger.Error("Failed to reset session", "session_id", id, "error", err)
			writeJSON(w, h.logger, http.StatusInternalServerError, ErrorResponse{
				Error: "Failed to reset session.",
			})
			return
		}
		h.logger.Info("Session reset", "session_id", id)
		w.WriteHeader(http.StatusNoContent)

	default:
		h.logger.Warn("Method not allowed for session endpoint",
			"method", r.Method, "path", r.URL.Path)
		writeJSON(w, h.logger, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "Method not allowed. Only GET and DELETE are supported.",
		})
	}
}
