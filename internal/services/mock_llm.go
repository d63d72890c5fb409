package services

import (
	"context"
	"sync"
)

// MockLLM is a mock implementation of LLMService for testing.
type MockLLM struct {
	GenerateJSONFunc func(ctx context.Context, model, system, user string, temperature float64) (map[string]any, error)

	// Track calls for testing
	GenerateJSONCalls []GenerateJSONCall

	mu sync.Mutex // protects all fields above
}

type GenerateJSONCall struct {
	Model       string
	System      string
	User        string
	Temperature float64
}

var _ LLMService = (*MockLLM)(nil)

// NewMockLLM creates a new mock LLM service.
func NewMockLLM() *MockLLM {
	return &MockLLM{
		GenerateJSONCalls: make([]GenerateJSONCall, 0),
	}
}

func (m *MockLLM) Name() string {
	return "mock"
}

// GenerateJSON mocks a JSON-mode completion.
func (m *MockLLM) GenerateJSON(ctx context.Context, model, system, user string, temperature float64) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GenerateJSONCalls = append(m.GenerateJSONCalls, GenerateJSONCall{
		Model:       model,
		System:      system,
		User:        user,
		Temperature: temperature,
	})

	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, model, system, user, temperature)
	}

	// Default behavior - an empty object
	return map[string]any{}, nil
}

// SetResponse sets up the mock to return a fixed object.
func (m *MockLLM) SetResponse(result map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateJSONFunc = func(ctx context.Context, model, system, user string, temperature float64) (map[string]any, error) {
		return result, nil
	}
}

// SetError sets up the mock to return an error.
func (m *MockLLM) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateJSONFunc = func(ctx context.Context, model, system, user string, temperature float64) (map[string]any, error) {
		return nil, err
	}
}

// Calls returns a copy of the call tracking data in a thread-safe way.
func (m *MockLLM) Calls() []GenerateJSONCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]GenerateJSONCall, len(m.GenerateJSONCalls))
	copy(calls, m.GenerateJSONCalls)
	return calls
}

// Reset clears all call tracking.
func (m *MockLLM) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateJSONCalls = make([]GenerateJSONCall, 0)
	m.GenerateJSONFunc = nil
}
