package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/emberhollow/adventure/internal/config"
	"github.com/emberhollow/adventure/internal/session"
)

type HealthResponse struct {
	Status            string            `json:"status"`
	Timestamp         time.Time         `json:"timestamp"`
	Service           string            `json:"service"`
	IntentProvider    string            `json:"intent_provider"`
	IntentModel       string            `json:"intent_model"`
	NarrationProvider string            `json:"narration_provider"`
	NarrationModel    string            `json:"narration_model"`
	Components        map[string]string `json:"components"`
}

type HealthHandler struct {
	cfg    *config.Config
	store  session.Store
	logger *slog.Logger
}

func NewHealthHandler(cfg *config.Config, store session.Store, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		cfg:    cfg,
		store:  store,
		logger: logger,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	h.logger.Debug("Health check requested",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr)

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := make(map[string]string)
	overallStatus := "healthy"

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("Session store health check failed", "error", err)
		components["session_store"] = "unhealthy"
		overallStatus = "degraded"
	} else {
		components["session_store"] = "healthy"
	}

	response := HealthResponse{
		Status:            overallStatus,
		Timestamp:         time.Now(),
		Service:           "adventure-engine",
		IntentProvider:    h.cfg.IntentProvider,
		IntentModel:       h.cfg.IntentModel,
		NarrationProvider: h.cfg.NarrationProvider,
		NarrationModel:    h.cfg.NarrationModel,
		Components:        components,
	}

	status := http.StatusOK
	if overallStatus != "healthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, h.logger, status, response)
}
