package intent

import (
	"strconv"
	"strings"
)

// Action is the canonical action type of a parsed player command.
type Action string

const (
	ActionLook     Action = "LOOK"
	ActionMove     Action = "MOVE"
	ActionTalk     Action = "TALK"
	ActionAttack   Action = "ATTACK"
	ActionUseItem  Action = "USE_ITEM"
	ActionTakeItem Action = "TAKE_ITEM"
	ActionDropItem Action = "DROP_ITEM"
	ActionGiveItem Action = "GIVE_ITEM"
	ActionRun      Action = "RUN"
	ActionWait     Action = "WAIT"
	ActionBuy      Action = "BUY"
	ActionOther    Action = "OTHER"
)

var allowedActions = map[Action]bool{
	ActionLook:     true,
	ActionMove:     true,
	ActionTalk:     true,
	ActionAttack:   true,
	ActionUseItem:  true,
	ActionTakeItem: true,
	ActionDropItem: true,
	ActionGiveItem: true,
	ActionRun:      true,
	ActionWait:     true,
	ActionBuy:      true,
	ActionOther:    true,
}

// actionSynonyms maps action names the intent parser likes to invent onto
// the canonical set.
var actionSynonyms = map[string]Action{
	"INSPECT":  ActionLook,
	"SEARCH":   ActionLook,
	"CHECK":    ActionLook,
	"EXAMINE":  ActionLook,
	"SPEAK":    ActionTalk,
	"CHAT":     ActionTalk,
	"CONVERSE": ActionTalk,
	"FLEE":     ActionRun,
	"ESCAPE":   ActionRun,
	"DEFEND":   ActionOther,
	"BLOCK":    ActionOther,
	"TRADE":    ActionBuy,
}

// Intent is the normalized, structured form of one player command.
// Intents are produced fresh each turn and never persisted.
type Intent struct {
	Action    Action `json:"action"`
	Target    string `json:"target,omitempty"`
	Item      string `json:"item,omitempty"`
	Quantity  int    `json:"quantity"`
	Direction string `json:"direction,omitempty"`
	FreeText  string `json:"free_text,omitempty"`
}

// Normalize converts an untrusted field map from the intent parser into a
// canonical Intent. It never fails: unrecognized actions become LOOK,
// unusable quantities become 1, and a USE_ITEM without an item is
// downgraded to OTHER. Fidelity is traded for robustness against
// unreliable parser output.
func Normalize(raw map[string]any) Intent {
	act := Action(strings.ToUpper(coerceString(raw["action"])))
	if syn, ok := actionSynonyms[string(act)]; ok {
		act = syn
	}
	if !allowedActions[act] {
		act = ActionLook
	}

	qty, ok := coerceInt(raw["quantity"])
	if !ok || qty <= 0 {
		qty = 1
	}

	in := Intent{
		Action:    act,
		Target:    coerceString(raw["target"]),
		Item:      coerceString(raw["item"]),
		Quantity:  qty,
		Direction: coerceString(raw["direction"]),
		FreeText:  coerceString(raw["free_text"]),
	}

	// Using an item is meaningless without a target item.
	if in.Action == ActionUseItem && in.Item == "" {
		in.Action = ActionOther
	}
	return in
}

// coerceString renders a raw value as a trimmed string; nil and
// whitespace-only values become the empty string (the unset value).
func coerceString(v any) string {
	if v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// coerceInt accepts the number encodings JSON decoding produces.
func coerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
