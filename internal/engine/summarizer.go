package engine

import (
	"context"
	"fmt"

	"github.com/emberhollow/adventure/internal/services"
	"github.com/emberhollow/adventure/pkg/prompts"
)

const summaryTemperature = 0.2

// Summarizer condenses pending narration texts into the long-term memory
// digest via the configured LLM provider.
type Summarizer struct {
	llm   services.LLMService
	model string
}

// NewSummarizer creates a summarizer on the given provider/model.
func NewSummarizer(llm services.LLMService, model string) *Summarizer {
	return &Summarizer{llm: llm, model: model}
}

// Summarize returns the updated summary, or an error that leaves the
// caller's pending texts intact for retry.
func (s *Summarizer) Summarize(ctx context.Context, previous string, texts []string) (string, error) {
	user, err := prompts.MemoryUpdateUserPrompt(previous, texts)
	if err != nil {
		return "", err
	}
	raw, err := s.llm.GenerateJSON(ctx, s.model, prompts.MemoryUpdateSystemPrompt, user, summaryTemperature)
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}
	summary, _ := raw["summary"].(string)
	return summary, nil
}
