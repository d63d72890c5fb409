package rules

import (
	"fmt"
	"strings"

	"github.com/emberhollow/adventure/pkg/catalog"
	"github.com/emberhollow/adventure/pkg/gm"
	"github.com/emberhollow/adventure/pkg/state"
)

// ApplyResult merges a normalized narration result into authoritative
// state and returns the final narration text, with effect and acquisition
// fragments appended. The health change applies first, then each
// inventory change in order. Changes that reference unknown items are
// skipped with an inline annotation; use/remove changes the inventory
// cannot cover are skipped entirely (no partial application).
func ApplyResult(gs *state.GameState, cat *catalog.Catalog, res gm.Result) string {
	gs.ApplyHealthChange(res.HealthChange)

	var narration strings.Builder
	narration.WriteString(res.Narration)

	for _, change := range res.InventoryChange {
		name, ok := cat.Resolve(change.Item)
		if !ok {
			fmt.Fprintf(&narration, " (Ignored unknown item '%s'.)", change.Item)
			continue
		}
		canonical, def := cat.Lookup(name)
		if def == nil {
			fmt.Fprintf(&narration, " (Ignored unknown item '%s'.)", change.Item)
			continue
		}

		switch change.Action {
		case gm.ChangeUse, gm.ChangeRemove:
			if !gs.HasItem(canonical, change.Count) {
				continue
			}
			if change.Action == gm.ChangeUse && def.Type == catalog.TypeConsumable {
				if eff := applyItemEffect(gs, canonical, def); eff != "" {
					narration.WriteString(" " + eff)
				}
			}
			gs.RemoveItem(canonical, change.Count)

		case gm.ChangeAdd:
			gs.AddItem(canonical, change.Count)
			fmt.Fprintf(&narration, " You obtained %s.", canonical)
		}
	}

	if res.EndGame {
		gs.GameOver = true
	}

	return strings.TrimSpace(narration.String())
}

// applyItemEffect applies a consumable's fixed effect and returns a short
// narration fragment, or "" when the item has no applicable effect.
func applyItemEffect(gs *state.GameState, canonical string, def *catalog.Item) string {
	hp, ok := def.Effect["hp"]
	if !ok {
		return ""
	}
	before := gs.Player.HP
	gs.ApplyHealthChange(hp)
	gained := gs.Player.HP - before
	if gained == 0 {
		return fmt.Sprintf("You use the %s, but it has no effect.", canonical)
	}
	return fmt.Sprintf("You use the %s and recover %d HP.", canonical, gained)
}
