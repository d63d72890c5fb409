// Package prompts holds the system prompt text and user prompt builders
// for the three narrative collaborators: the intent parser, the GM
// narrator and the memory summarizer.
package prompts

import (
	"encoding/json"
	"fmt"

	"github.com/emberhollow/adventure/pkg/catalog"
	"github.com/emberhollow/adventure/pkg/intent"
	"github.com/emberhollow/adventure/pkg/memory"
	"github.com/emberhollow/adventure/pkg/state"
)

// LogTailLimit is how many recent turns the narrator sees verbatim.
const LogTailLimit = 3

const IntentSystemPrompt = `You parse a player's text command into a JSON intent.
Return ONLY JSON with keys: action (LOOK, MOVE, TALK, ATTACK, USE_ITEM, TAKE_ITEM, DROP_ITEM, GIVE_ITEM, RUN, WAIT, BUY, OTHER), target (string|null), item (string|null), quantity (int), direction (string|null), free_text (string|null).

Guidelines:
- Always set quantity to a positive integer (usually 1). Never use null.
- Use OTHER when no specific action fits but the player still wants to do something.
- Use free_text to store the raw player command or extra details.
- Prefer item names that appear in the player's text. If unsure, leave item=null.
- You are given state.location and state.items_db (known item names). Only use BUY when the player clearly wants to buy something. For ad-hoc deals in non-shop locations, TALK is usually a better action.
- Map phrases like 'go to blacksmith/market/tavern/cave' into MOVE with target.
- Map 'buy X', 'purchase X', 'get supplies' into BUY with item and quantity where possible.`

const NarrationSystemPrompt = `You are a game master (GM) for a small text adventure game.
Always respect the game's internal logic and current world state.
The player is on a quest to recover a beer keg stolen by goblins and return it to the tavern.
Respond with short, consistent narration that matches the player's LOCATION and INTENT.

ALWAYS return ONLY JSON with these keys:
  narration (string), choices (string[]), end_game (boolean), health_change (integer), inventory_change (list of {action, item, count}).

World and consistency rules:
- The current location is state.world.location. Describe scenes only in that location.
- DO NOT move the player to new locations yourself. Movement is handled by the server logic. You can describe intentions, but not actual travel.
- Keep the world consistent; don't teleport or reset the player.
- Use state.memory_long_summary and state.memory_short_turns to maintain continuity; avoid repeating unchanged ambience or the same observation each turn.

Quest / story rules:
- Side activities (visiting blacksmith/market/tavern, chatting, small trades) are allowed.
- Gently remind the player of the keg quest from time to time, but not in every single reply.
- If the quest is complete, describe returning to the tavern.

Inventory and items:
- You are given state.items_db: a list of all canonical item names in the game.
- inventory_change.action must be one of: add, use, remove (lowercase).
- When you say the player gains, loses, buys or uses a concrete item, you MUST add a matching entry to inventory_change using a canonical name from state.items_db or from the player's current inventory.
- If you want to mention vague supplies without changing the inventory, keep it purely descriptive.
- Use exact item names as they appear in inventory/world/items_db. For multiple coins, use item='Gold Coin' with count=N.

Combat and improvisation:
- ATTACK actions mean active combat. Describe blows, dodges, and risks. Adjust health_change accordingly.
- RUN actions are attempts to flee or reposition.
- OTHER actions can be creative maneuvers (grappling, pushing, distracting, negotiating mid-fight). Be creative but stay consistent and reasonable.

Style:
- Keep narration 3-6 sentences and choices 2-4.
- choices should be short, actionable suggestions like 'Attack again', 'Try to talk', 'Retreat toward the exit'.
- Look at state.log_tail: avoid repeating the last narration. If the player does something similar to the previous turn in the same location, advance the situation or add new detail instead of repeating the same description.`

const MemoryUpdateSystemPrompt = `You maintain a concise long-term memory for a text adventure.
Return strict JSON: {"summary": "<updated concise summary>"}.
Use 3-6 sentences in past tense (~60-140 words).
Preserve previously stated important facts; do not drop early setup (starting location, initial objective) or key events.
Merge new facts with the previous summary. Include quest progress, key events, notable NPCs/locations, inventory/health changes.
Avoid repeating ambience or filler.`

// IntentUserPrompt builds the user message for intent parsing. The state
// context is kept minimal: the parser only needs location, quest,
// inventory names and the known item names.
func IntentUserPrompt(playerText string, gs *state.GameState, cat *catalog.Catalog) (string, error) {
	ctx := map[string]any{
		"location":        gs.World.Location,
		"quest":           gs.Quest,
		"inventory_items": gs.ItemNames(),
		"items_db":        cat.Names(),
	}
	stateJSON, err := json.Marshal(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to marshal intent context: %w", err)
	}
	return fmt.Sprintf("Player command:\n%s\n\nCurrent game state (context only):\n%s\n\nReturn a single JSON object. No extra text.",
		playerText, stateJSON), nil
}

// NarrationUserPrompt builds the user message for GM narration, including
// the recent log tail and both memory tiers.
func NarrationUserPrompt(gs *state.GameState, mem *memory.Manager, in intent.Intent, dice int, cat *catalog.Catalog) (string, error) {
	ctx := map[string]any{
		"turn":                gs.Turn,
		"player":              gs.Player,
		"world":               gs.World,
		"quest":               gs.Quest,
		"inventory":           gs.Inventory,
		"log_tail":            gs.LogTail(LogTailLimit),
		"items_db":            cat.Names(),
		"memory_short_turns":  mem.ShortTexts(),
		"memory_long_summary": mem.LongSummary,
	}
	stateJSON, err := json.Marshal(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to marshal narration context: %w", err)
	}
	intentJSON, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("failed to marshal intent: %w", err)
	}
	return fmt.Sprintf("Current state:\n%s\n\nParsed intent:\n%s\n\nServer dice (for inspiration): {\"d20\": %d}\n\nReturn one JSON object with the required keys and formats. No extra text.",
		stateJSON, intentJSON, dice), nil
}

// MemoryUpdateUserPrompt builds the user message for long-summary updates.
func MemoryUpdateUserPrompt(previousSummary string, newTexts []string) (string, error) {
	if previousSummary == "" {
		previousSummary = "(none)"
	}
	textsJSON, err := json.Marshal(newTexts)
	if err != nil {
		return "", fmt.Errorf("failed to marshal narration texts: %w", err)
	}
	return fmt.Sprintf("Previous summary (may be empty):\n%s\n\nNew narration texts (JSON array of strings):\n%s\n\nUpdate the long-term summary. Return ONLY JSON.",
		previousSummary, textsJSON), nil
}
