package gm

import (
	"strconv"
	"strings"
)

// Inventory change actions the merge engine understands.
const (
	ChangeAdd    = "add"
	ChangeUse    = "use"
	ChangeRemove = "remove"
)

// changeSynonyms maps the action spellings narrators produce onto the
// canonical lowercase set. Entries that resolve to nothing are dropped.
var changeSynonyms = map[string]string{
	"ADD_ITEM":    ChangeAdd,
	"ADD":         ChangeAdd,
	"GAIN":        ChangeAdd,
	"RECEIVE":     ChangeAdd,
	"REMOVE_ITEM": ChangeRemove,
	"REMOVE":      ChangeRemove,
	"DROP":        ChangeRemove,
	"LOSE":        ChangeRemove,
	"USE":         ChangeUse,
	"USE_ITEM":    ChangeUse,
	"CONSUME":     ChangeUse,
}

// InventoryChange is one inventory delta requested by the narrator.
type InventoryChange struct {
	Action string `json:"action"`
	Item   string `json:"item"`
	Count  int    `json:"count"`
}

// Result is the strict, normalized form of one narration turn. A Result
// is a compact delta rather than a full state: the narrator proposes
// changes and the merge engine decides what actually applies.
type Result struct {
	Narration       string            `json:"narration"`
	Choices         []string          `json:"choices"`
	EndGame         bool              `json:"end_game"`
	HealthChange    int               `json:"health_change"`
	InventoryChange []InventoryChange `json:"inventory_change"`
}

// Normalize coerces an untrusted narrator result into a strict Result.
// Missing or malformed fields degrade to zero values; a malformed result
// never fails the turn.
func Normalize(raw map[string]any) Result {
	res := Result{
		Narration: strings.TrimSpace(coerceString(raw["narration"])),
		Choices:   coerceStringList(raw["choices"]),
	}

	if b, ok := coerceBool(raw["end_game"]); ok {
		res.EndGame = b
	}
	if n, ok := coerceInt(raw["health_change"]); ok {
		res.HealthChange = n
	}

	changes, _ := raw["inventory_change"].([]any)
	for _, entry := range changes {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		actRaw := strings.TrimSpace(coerceString(m["action"]))
		act, ok := changeSynonyms[strings.ToUpper(actRaw)]
		if !ok {
			act = strings.ToLower(actRaw)
		}
		if act != ChangeAdd && act != ChangeUse && act != ChangeRemove {
			continue
		}
		count, ok := coerceInt(m["count"])
		if !ok || count <= 0 {
			count = 1
		}
		res.InventoryChange = append(res.InventoryChange, InventoryChange{
			Action: act,
			Item:   strings.TrimSpace(coerceString(m["item"])),
			Count:  count,
		})
	}
	return res
}

func coerceString(v any) string {
	s, _ := v.(string)
	return s
}

func coerceStringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

// coerceBool accepts the loose truthy encodings narrators produce:
// real booleans, "true"/"false" strings and 0/1 numbers.
func coerceBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return false, false
	case float64:
		return b != 0, true
	case int:
		return b != 0, true
	default:
		return false, false
	}
}

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
