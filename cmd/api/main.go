package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/emberhollow/adventure/internal/config"
	"github.com/emberhollow/adventure/internal/engine"
	"github.com/emberhollow/adventure/internal/handlers"
	"github.com/emberhollow/adventure/internal/logger"
	"github.com/emberhollow/adventure/internal/middleware"
	"github.com/emberhollow/adventure/internal/services"
	"github.com/emberhollow/adventure/internal/session"
	"github.com/emberhollow/adventure/pkg/catalog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Adventure Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"intent_provider", cfg.IntentProvider,
		"intent_model", cfg.IntentModel,
		"narration_provider", cfg.NarrationProvider,
		"narration_model", cfg.NarrationModel,
		"session_store", cfg.SessionStore)

	cat := loadCatalog(cfg, log)

	intentLLM := newLLMService(cfg.IntentProvider, cfg, log)
	narrationLLM := newLLMService(cfg.NarrationProvider, cfg, log)

	limits := session.Limits{
		ShortMemoryLimit:   cfg.ShortMemoryLimit,
		LongMemoryMaxChars: cfg.LongMemoryMaxChars,
	}
	var store session.Store
	switch cfg.SessionStore {
	case config.StoreRedis:
		store = session.NewRedisStore(cfg.RedisURL, limits, log)
		storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer storageCancel()
		if err := store.Ping(storageCtx); err != nil {
			log.Error("Failed to connect to session store", "error", err)
			os.Exit(1)
		}
		log.Info("Redis session store connection established")
	default:
		store = session.NewMemoryStore(limits)
		log.Info("Using in-memory session store")
	}

	// The summarizer rides on the narration provider: continuity belongs
	// to the same narrative voice.
	gameEngine := engine.New(
		store,
		cat,
		engine.NewIntentParser(intentLLM, cfg.IntentModel),
		engine.NewNarrator(narrationLLM, cfg.NarrationModel),
		engine.NewSummarizer(narrationLLM, cfg.NarrationModel),
		log,
	)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(cfg, store, log)
	mux.Handle("/health", healthHandler)

	turnHandler := handlers.NewTurnHandler(gameEngine, log)
	mux.Handle("/v1/turn", turnHandler)

	sessionHandler := handlers.NewSessionHandler(store, log)
	mux.Handle("/v1/session/", sessionHandler)

	handler := middleware.Logger(log, middleware.CORS(mux))
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing session store", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}

// loadCatalog reads the item catalog from the data directory, falling
// back to the built-in catalog when the file is absent.
func loadCatalog(cfg *config.Config, log *slog.Logger) *catalog.Catalog {
	path := filepath.Join(cfg.DataDir, "items.json")
	cat, err := catalog.Load(path)
	if err != nil {
		log.Warn("Item catalog file not loaded, using built-in catalog", "path", path, "error", err)
		return catalog.Default()
	}
	log.Info("Item catalog loaded", "path", path, "items", len(cat.Names()))
	return cat
}

// newLLMService selects a provider once at startup. Gemini without a key
// falls back to Groq here, at configuration time, never mid-turn.
func newLLMService(provider string, cfg *config.Config, log *slog.Logger) services.LLMService {
	if provider == config.ProviderGemini {
		svc, err := services.NewGeminiService(cfg.GeminiAPIKey)
		if err == nil {
			log.Info("Using Gemini LLM provider")
			return svc
		}
		log.Warn("Gemini provider unavailable, falling back to Groq", "error", err)
	}
	if cfg.GroqAPIKey == "" {
		log.Error("Groq API key is required when using the groq provider")
		os.Exit(1)
	}
	log.Info("Using Groq LLM provider")
	return services.NewGroqService(cfg.GroqAPIKey)
}
