package catalog

import "strings"

// aliases maps common player phrasings directly to canonical item names.
// "sword" deliberately resolves to Iron Sword: in a purchase context the
// player is asking for the better weapon, not their starting one.
var aliases = map[string]string{
	"gold coins":   "Gold Coin",
	"gold coin":    "Gold Coin",
	"coins":        "Gold Coin",
	"coin":         "Gold Coin",
	"bread":        "Loaf of Bread",
	"loaf":         "Loaf of Bread",
	"better sword": "Iron Sword",
	"sword":        "Iron Sword",
}

// Resolve maps a free-form item reference to a canonical catalog name.
// Rules are tried in strict priority order and the first rule producing a
// unique result wins:
//
//  1. exact alias-table match
//  2. exact case-insensitive catalog match
//  3. singularized (trailing "s" stripped) catalog match
//  4. a catalog name that is a prefix of the input (must be unique)
//  5. a catalog name contained in the input (must be unique)
//  6. the input contained in exactly one catalog name
//
// Ambiguity at any level, or a total miss, returns ("", false) — never a
// guess.
func (c *Catalog) Resolve(input string) (string, bool) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return "", false
	}
	lowered := folder.String(raw)

	if alias, ok := aliases[lowered]; ok {
		if canonical, def := c.Lookup(alias); def != nil {
			return canonical, true
		}
	}

	if canonical, def := c.Lookup(raw); def != nil {
		return canonical, true
	}

	if strings.HasSuffix(lowered, "s") {
		if canonical, def := c.Lookup(raw[:len(raw)-1]); def != nil {
			return canonical, true
		}
	}

	if name, ok := c.uniqueMatch(func(folded string) bool {
		return strings.HasPrefix(lowered, folded)
	}); ok {
		return name, true
	}

	if name, ok := c.uniqueMatch(func(folded string) bool {
		return strings.Contains(lowered, folded)
	}); ok {
		return name, true
	}

	return c.uniqueMatch(func(folded string) bool {
		return strings.Contains(folded, lowered)
	})
}

// uniqueMatch returns the single catalog name whose folded form satisfies
// the predicate, or ("", false) when zero or several match.
func (c *Catalog) uniqueMatch(match func(folded string) bool) (string, bool) {
	found := ""
	for folded, canonical := range c.folded {
		if match(folded) {
			if found != "" {
				return "", false
			}
			found = canonical
		}
	}
	return found, found != ""
}
