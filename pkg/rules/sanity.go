// Package rules implements the deterministic game logic that runs between
// intent parsing and narration: sanity validation, movement, shopkeeping
// and the merge of narration results into authoritative state.
package rules

import (
	"fmt"

	"github.com/emberhollow/adventure/pkg/catalog"
	"github.com/emberhollow/adventure/pkg/intent"
	"github.com/emberhollow/adventure/pkg/state"
)

// Validate runs the sanity rules over (state, intent) before any mutation.
// Rules are evaluated in strict order and the first failing rule wins.
// It returns (false, reason) on rejection; a rejection is a normal
// outcome, not an error.
func Validate(gs *state.GameState, in intent.Intent, cat *catalog.Catalog) (bool, string) {
	if gs.GameOver {
		return false, "The adventure has already ended."
	}

	if gs.Player.HP <= 0 {
		return false, "You are incapacitated and cannot act."
	}

	// Validation runs on the normalized intent, whose quantity is already
	// clamped to >= 1. The rule stays as a guard for callers that build
	// Intents without going through the normalizer.
	switch in.Action {
	case intent.ActionTakeItem, intent.ActionDropItem, intent.ActionGiveItem:
		if in.Quantity <= 0 {
			return false, "Invalid quantity."
		}
	}

	if in.Action == intent.ActionUseItem {
		if in.Item == "" {
			return false, "You must specify an item to use."
		}
		if !gs.HasItem(in.Item, in.Quantity) {
			return false, fmt.Sprintf("You don't have %s.", in.Item)
		}
		canonical, def := cat.Lookup(in.Item)
		if def == nil {
			return false, fmt.Sprintf("You can't use '%s' right now.", in.Item)
		}
		if def.Type != catalog.TypeConsumable && def.Type != catalog.TypeUtility {
			return false, fmt.Sprintf("You can't really 'use' the %s directly.", canonical)
		}
	}

	if (in.Action == intent.ActionDropItem || in.Action == intent.ActionGiveItem) && in.Item != "" {
		if !gs.HasItem(in.Item, in.Quantity) {
			return false, fmt.Sprintf("You don't have enough %s.", in.Item)
		}
	}

	// BUY is never hard-rejected here; affordability and catalog
	// membership belong to the shop resolver.
	return true, ""
}
