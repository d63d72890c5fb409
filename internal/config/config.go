package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Session store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// LLM providers.
const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Intent parsing and narration may use different providers/models.
	IntentProvider    string
	IntentModel       string
	NarrationProvider string
	NarrationModel    string

	GroqAPIKey   string
	GeminiAPIKey string

	SessionStore string
	RedisURL     string
	DataDir      string

	ShortMemoryLimit   int
	LongMemoryMaxChars int
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		LogLevel:          parseLogLevel(getEnv("LOG_LEVEL", "info")),
		IntentProvider:    strings.ToLower(getEnv("INTENT_PROVIDER", ProviderGroq)),
		IntentModel:       getEnv("INTENT_MODEL", "llama-3.1-8b-instant"),
		NarrationProvider: strings.ToLower(getEnv("NARRATION_PROVIDER", ProviderGroq)),
		GroqAPIKey:        os.Getenv("GROQ_API_KEY"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		SessionStore:      strings.ToLower(getEnv("SESSION_STORE", StoreMemory)),
		RedisURL:          getEnv("REDIS_URL", "localhost:6379"),
		DataDir:           getEnv("DATA_DIR", "./data"),
	}

	// The narration default depends on the chosen provider.
	defaultNarrationModel := "llama-3.3-70b-versatile"
	if cfg.NarrationProvider == ProviderGemini {
		defaultNarrationModel = "gemini-1.5-flash"
	}
	cfg.NarrationModel = getEnv("NARRATION_MODEL", defaultNarrationModel)

	var err error
	cfg.ShortMemoryLimit, err = getEnvInt("SHORT_MEMORY_LIMIT", 5)
	if err != nil {
		return nil, err
	}
	cfg.LongMemoryMaxChars, err = getEnvInt("LONG_MEMORY_MAX_CHARS", 1200)
	if err != nil {
		return nil, err
	}

	if cfg.SessionStore != StoreMemory && cfg.SessionStore != StoreRedis {
		return nil, fmt.Errorf("invalid SESSION_STORE %q: expected %q or %q", cfg.SessionStore, StoreMemory, StoreRedis)
	}

	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
