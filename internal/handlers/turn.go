package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/emberhollow/adventure/pkg/turn"
)

// ErrorResponse is the JSON error body shared by all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TurnProcessor resolves one player turn. Implemented by engine.Engine;
// the indirection keeps the handler testable without an LLM.
type TurnProcessor interface {
	ProcessTurn(ctx context.Context, req turn.Request) (*turn.Response, error)
}

// TurnHandler handles turn requests.
type TurnHandler struct {
	engine TurnProcessor
	logger *slog.Logger
}

// NewTurnHandler creates a new turn handler.
func NewTurnHandler(engine TurnProcessor, logger *slog.Logger) *TurnHandler {
	return &TurnHandler{
		engine: engine,
		logger: logger,
	}
}

// ServeHTTP handles POST /v1/turn.
func (h *TurnHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for turn endpoint",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)
		writeJSON(w, h.logger, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "Method not allowed. Only POST is supported.",
		})
		return
	}

	var req turn.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body. Expected JSON with 'session_id' and 'text' fields.",
		})
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.Warn("Invalid turn request", "error", err)
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request: " + err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 90*time.Second)
	defer cancel()

	resp, err := h.engine.ProcessTurn(ctx, req)
	if err != nil {
		h.logger.Error("Error processing turn", "error", err, "session_id", req.SessionID)
		writeJSON(w, h.logger, http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to process turn. Please try again.",
		})
		return
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}

// writeJSON writes a status code and JSON body, logging encode failures.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}
