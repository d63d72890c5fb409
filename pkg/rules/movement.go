package rules

import (
	"strings"

	"github.com/emberhollow/adventure/pkg/intent"
	"github.com/emberhollow/adventure/pkg/state"
)

// movementKeywords maps destination keywords to locations, checked in
// order. Substring matching is deliberate: "go to the goblin cave"
// resolves the same as "cave".
var movementKeywords = []struct {
	words    []string
	location string
	fragment string
}{
	{[]string{"blacksmith", "smith"}, state.LocationBlacksmith, "You head to the blacksmith's forge."},
	{[]string{"market"}, state.LocationMarket, "You head to the small village market."},
	{[]string{"tavern"}, state.LocationTavern, "You return to the tavern."},
	{[]string{"cave", "north"}, state.LocationCave, "You make your way toward the goblin cave."},
	{[]string{"village"}, state.LocationVillage, "You are back in the village square."},
}

var leavePhrases = []string{"leave", "go back", "step outside"}

// ResolveMovement applies a deterministic location transition when the
// intent asks for one, returning a short narration fragment. Unrecognized
// movement phrasing returns "" and is deferred to narration; the resolver
// never invents locations.
func ResolveMovement(gs *state.GameState, in intent.Intent) string {
	if in.Action == intent.ActionMove {
		t := strings.ToLower(firstNonEmpty(in.Target, in.Direction, in.FreeText))
		for _, kw := range movementKeywords {
			for _, word := range kw.words {
				if strings.Contains(t, word) {
					gs.World.Location = kw.location
					return kw.fragment
				}
			}
		}
	}

	// "Leave" shorthand: outside the village, leaving always means
	// returning to the village square, whatever the parsed action was.
	if gs.World.Location != state.LocationVillage {
		text := strings.ToLower(in.FreeText)
		for _, phrase := range leavePhrases {
			if strings.Contains(text, phrase) {
				gs.World.Location = state.LocationVillage
				return "You are back in the village square."
			}
		}
	}

	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
