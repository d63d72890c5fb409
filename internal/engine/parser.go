package engine

import (
	"context"
	"fmt"

	"github.com/emberhollow/adventure/internal/services"
	"github.com/emberhollow/adventure/pkg/catalog"
	"github.com/emberhollow/adventure/pkg/intent"
	"github.com/emberhollow/adventure/pkg/prompts"
	"github.com/emberhollow/adventure/pkg/state"
)

// intentTemperature keeps parsing near-deterministic.
const intentTemperature = 0.1

// IntentParser turns raw player text into a normalized Intent using the
// configured LLM provider.
type IntentParser struct {
	llm   services.LLMService
	model string
}

// NewIntentParser creates an intent parser on the given provider/model.
func NewIntentParser(llm services.LLMService, model string) *IntentParser {
	return &IntentParser{llm: llm, model: model}
}

// Parse runs one intent-parsing completion and normalizes the result.
// The returned error is a provider failure; the normalizer itself never
// fails.
func (p *IntentParser) Parse(ctx context.Context, gs *state.GameState, cat *catalog.Catalog, playerText string) (intent.Intent, error) {
	user, err := prompts.IntentUserPrompt(playerText, gs, cat)
	if err != nil {
		return intent.Intent{}, err
	}
	raw, err := p.llm.GenerateJSON(ctx, p.model, prompts.IntentSystemPrompt, user, intentTemperature)
	if err != nil {
		return intent.Intent{}, fmt.Errorf("intent parsing failed: %w", err)
	}
	return intent.Normalize(raw), nil
}
