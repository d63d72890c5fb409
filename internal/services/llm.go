package services

import "context"

// ChatMessage is one message of a chat-completion payload, as shared by
// the OpenAI-style provider APIs.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	ChatRoleSystem = "system"
	ChatRoleUser   = "user"
)

// LLMService is the capability the engine needs from a model provider:
// one system+user exchange returning a parsed JSON object. Providers are
// selected once at startup, never mid-turn.
type LLMService interface {
	// Name identifies the provider for health reporting and logs.
	Name() string

	// GenerateJSON runs one JSON-mode chat completion and returns the
	// decoded object. Malformed model output is an error; callers treat
	// it as a provider failure and abort the turn without mutation.
	GenerateJSON(ctx context.Context, model, system, user string, temperature float64) (map[string]any, error)
}
