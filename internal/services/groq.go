package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	groqBaseURL = "https://api.groq.com/openai/v1"

	// GroqMaxTokens bounds completion length; intents and GM results are
	// small JSON objects and fit comfortably.
	GroqMaxTokens = 256
)

// GroqService implements LLMService against Groq's OpenAI-compatible
// chat completions API.
type GroqService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ LLMService = (*GroqService)(nil)

// GroqResponseFormat asks the API for a JSON-only completion.
type GroqResponseFormat struct {
	Type string `json:"type"`
}

// GroqChatRequest represents the request structure for Groq chat completions.
type GroqChatRequest struct {
	Model          string              `json:"model"`
	Messages       []ChatMessage       `json:"messages"`
	Temperature    float64             `json:"temperature"`
	MaxTokens      int                 `json:"max_tokens,omitempty"`
	ResponseFormat *GroqResponseFormat `json:"response_format,omitempty"`
}

// GroqChatResponse represents the response structure for Groq chat completions.
type GroqChatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewGroqService creates a new Groq service.
func NewGroqService(apiKey string) *GroqService {
	return &GroqService{
		apiKey:  apiKey,
		baseURL: groqBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (g *GroqService) Name() string {
	return "groq"
}

// GenerateJSON runs one JSON-mode chat completion and decodes the model's
// reply into a map.
func (g *GroqService) GenerateJSON(ctx context.Context, model, system, user string, temperature float64) (map[string]any, error) {
	groqReq := GroqChatRequest{
		Model: model,
		Messages: []ChatMessage{
			{Role: ChatRoleSystem, Content: system},
			{Role: ChatRoleUser, Content: user},
		},
		Temperature:    temperature,
		MaxTokens:      GroqMaxTokens,
		ResponseFormat: &GroqResponseFormat{Type: "json_object"},
	}

	reqBody, err := json.Marshal(groqReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("groq request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var groqResp GroqChatResponse
	if err := json.Unmarshal(body, &groqResp); err != nil {
		return nil, fmt.Errorf("failed to parse groq response: %w", err)
	}
	if groqResp.Error != nil {
		return nil, fmt.Errorf("groq API error: %s", groqResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("groq API returned status %d: %s", resp.StatusCode, string(body))
	}
	if len(groqResp.Choices) == 0 {
		return nil, fmt.Errorf("groq response contained no choices")
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(groqResp.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("groq returned malformed JSON content: %w", err)
	}
	return result, nil
}
