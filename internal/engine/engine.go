// Package engine sequences one player turn through the resolution
// pipeline: intent parsing, sanity validation, deterministic movement and
// shop resolution, narration, merge and memory update.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emberhollow/adventure/internal/session"
	"github.com/emberhollow/adventure/pkg/catalog"
	"github.com/emberhollow/adventure/pkg/rules"
	"github.com/emberhollow/adventure/pkg/turn"
)

const (
	providerTimeout = 30 * time.Second
	summaryTimeout  = 45 * time.Second
)

// Choice sets for turns the engine resolves without the narrator.
var (
	rejectionChoices = []string{"LOOK around", "Go to cave", "Check inventory"}
	defaultChoices   = []string{"LOOK around", "Go to cave", "Return to tavern"}
)

// Engine is the turn orchestrator. One engine serves all sessions;
// per-session serialization comes from the store's lock.
type Engine struct {
	store      session.Store
	cat        *catalog.Catalog
	parser     *IntentParser
	narrator   *Narrator
	summarizer *Summarizer
	logger     *slog.Logger
}

// New creates a turn engine. The summarizer may be nil, disabling
// long-term memory updates.
func New(store session.Store, cat *catalog.Catalog, parser *IntentParser, narrator *Narrator, summarizer *Summarizer, logger *slog.Logger) *Engine {
	return &Engine{
		store:      store,
		cat:        cat,
		parser:     parser,
		narrator:   narrator,
		summarizer: summarizer,
		logger:     logger,
	}
}

// ProcessTurn resolves one player turn. Rejections, shop turns and
// narrated turns all return a normal response; an error means a provider
// failure, in which case the session state is left untouched.
func (e *Engine) ProcessTurn(ctx context.Context, req turn.Request) (*turn.Response, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	unlock := e.store.Lock(sessionID)
	defer unlock()

	sess, err := e.store.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	gs := sess.State

	dice := rollD20()

	parseCtx, cancelParse := context.WithTimeout(ctx, providerTimeout)
	defer cancelParse()
	in, err := e.parser.Parse(parseCtx, gs, e.cat, req.Text)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("Intent parsed",
		"session_id", sessionID,
		"action", in.Action,
		"item", in.Item,
		"target", in.Target)

	// Sanity check before any mutation. A rejection still costs a turn
	// and is logged, but changes nothing else.
	if ok, reason := rules.Validate(gs, in, e.cat); !ok {
		narration := reason + " Try something else."
		gs.Turn++
		gs.AppendLog(req.Text, narration)
		if err := e.store.Save(ctx, sess); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
		return &turn.Response{
			SessionID: sessionID,
			Narration: narration,
			Choices:   rejectionChoices,
			EndGame:   false,
			State:     gs.Clone(),
		}, nil
	}

	// Deterministic resolution before narration: movement, then shop.
	// Remember where the player stood so a narration failure can roll
	// the movement back, keeping the turn all-or-nothing.
	locationBefore := gs.World.Location
	moveText := rules.ResolveMovement(gs, in)

	if shopText, handled := rules.ResolveShop(gs, in, e.cat); handled {
		narration := joinFragments(moveText, shopText)
		gs.Turn++
		gs.AppendLog(req.Text, narration)
		sess.Memory.AddTurn(req.Text, narration)
		if err := e.store.Save(ctx, sess); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
		e.updateMemoryLater(sessionID)
		return &turn.Response{
			SessionID: sessionID,
			Narration: narration,
			Choices:   rules.ShopChoices(gs.World.Location, e.cat),
			EndGame:   false,
			State:     gs.Clone(),
		}, nil
	}

	narrateCtx, cancelNarrate := context.WithTimeout(ctx, providerTimeout)
	defer cancelNarrate()
	result, err := e.narrator.Generate(narrateCtx, sess, in, dice, e.cat)
	if err != nil {
		gs.World.Location = locationBefore
		return nil, err
	}

	narration := joinFragments(moveText, rules.ApplyResult(gs, e.cat, result))
	gs.Turn++
	gs.AppendLog(req.Text, narration)
	sess.Memory.AddTurn(req.Text, narration)
	if err := e.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	e.updateMemoryLater(sessionID)

	choices := result.Choices
	if len(choices) == 0 {
		choices = defaultChoices
	}
	return &turn.Response{
		SessionID: sessionID,
		Narration: narration,
		Choices:   choices,
		EndGame:   result.EndGame,
		State:     gs.Clone(),
	}, nil
}

// updateMemoryLater re-summarizes the session's long-term memory in the
// background, after the turn response has gone out. The summary the next
// turn sees may be one cycle stale; a summarization failure keeps the
// pending texts for retry.
func (e *Engine) updateMemoryLater(sessionID string) {
	if e.summarizer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), summaryTimeout)
		defer cancel()

		unlock := e.store.Lock(sessionID)
		defer unlock()

		sess, err := e.store.Get(ctx, sessionID)
		if err != nil || sess == nil {
			return
		}
		if err := sess.Memory.UpdateLongSummary(ctx, e.summarizer.Summarize); err != nil {
			e.logger.Warn("Memory summarization failed, pending texts retained",
				"session_id", sessionID, "error", err)
			return
		}
		if err := e.store.Save(ctx, sess); err != nil {
			e.logger.Error("Failed to save session after memory update",
				"session_id", sessionID, "error", err)
		}
	}()
}

// rollD20 produces the turn's flavor dice for the narrator.
func rollD20() int {
	return rand.IntN(20) + 1
}

func joinFragments(fragments ...string) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
