package engine

import (
	"context"
	"fmt"

	"github.com/emberhollow/adventure/internal/services"
	"github.com/emberhollow/adventure/internal/session"
	"github.com/emberhollow/adventure/pkg/catalog"
	"github.com/emberhollow/adventure/pkg/gm"
	"github.com/emberhollow/adventure/pkg/intent"
	"github.com/emberhollow/adventure/pkg/prompts"
)

const narrationTemperature = 0.5

// Narrator produces story text and state deltas from the configured LLM
// provider, normalized into a strict gm.Result.
type Narrator struct {
	llm   services.LLMService
	model string
}

// NewNarrator creates a narrator on the given provider/model.
func NewNarrator(llm services.LLMService, model string) *Narrator {
	return &Narrator{llm: llm, model: model}
}

// Generate runs one narration completion for the turn. The returned
// error is a provider failure; malformed fields inside an otherwise
// valid result are absorbed by normalization.
func (n *Narrator) Generate(ctx context.Context, sess *session.Session, in intent.Intent, dice int, cat *catalog.Catalog) (gm.Result, error) {
	user, err := prompts.NarrationUserPrompt(sess.State, sess.Memory, in, dice, cat)
	if err != nil {
		return gm.Result{}, err
	}
	raw, err := n.llm.GenerateJSON(ctx, n.model, prompts.NarrationSystemPrompt, user, narrationTemperature)
	if err != nil {
		return gm.Result{}, fmt.Errorf("narration failed: %w", err)
	}
	return gm.Normalize(raw), nil
}
