package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emberhollow/adventure/pkg/catalog"
	"github.com/emberhollow/adventure/pkg/intent"
	"github.com/emberhollow/adventure/pkg/state"
)

// priceEntry is one line of a shop's price table.
type priceEntry struct {
	Name  string
	Price int
}

// Fixed price tables. The market and the village square share a catalog;
// the blacksmith carries his own. Entries whose item is missing from the
// item catalog are dropped from the effective catalog at resolution time.
var (
	marketPrices = []priceEntry{
		{"Loaf of Bread", 2},
		{"Torch", 1},
		{"Rope", 2},
		{"Bandage", 2},
		{"Healing Herbs", 3},
	}
	blacksmithPrices = []priceEntry{
		{"Iron Sword", 10},
		{"Shield", 8},
		{"Dagger", 4},
	}
)

// shoppingHints trigger the inquiry path when they appear in free text of
// a non-BUY turn at a shop location.
var shoppingHints = []string{
	"price", "cost", "buy", "sell", "weapon", "sword", "axe",
	"shield", "dagger", "torch", "rope", "bread",
}

var hagglingHints = []string{"haggle", "bargain", "discount", "cheaper"}

// ResolveShop handles shop turns deterministically when possible. A
// (text, true) return means the turn is fully resolved locally and
// narration is skipped; ("", false) means the shop did not handle the
// turn at all and the orchestrator should proceed to narration.
func ResolveShop(gs *state.GameState, in intent.Intent, cat *catalog.Catalog) (string, bool) {
	loc := gs.World.Location
	if loc != state.LocationBlacksmith && loc != state.LocationMarket && loc != state.LocationVillage {
		return "", false
	}

	effective := effectiveCatalog(loc, cat)
	text := strings.ToLower(in.FreeText)

	// Haggling gets a fixed in-character refusal, no mutation.
	for _, hint := range hagglingHints {
		if strings.Contains(text, hint) {
			return "The shopkeeper shakes their head. \"The price is the price, friend.\"", true
		}
	}

	// Inquiry: describe the effective catalog without selling anything.
	if in.Action != intent.ActionBuy {
		for _, hint := range shoppingHints {
			if strings.Contains(text, hint) {
				return describeOffers(loc, effective), true
			}
		}
		return "", false
	}

	request := firstNonEmpty(strings.TrimSpace(in.Item), strings.TrimSpace(in.FreeText))

	var wanted []priceEntry
	if request == "" || strings.EqualFold(request, "supplies") {
		// A vague request buys a quick bundle: the two cheapest items on offer.
		if len(effective) == 0 {
			return "There aren't any suitable supplies available to buy here.", true
		}
		bundle := make([]priceEntry, len(effective))
		copy(bundle, effective)
		sort.SliceStable(bundle, func(i, j int) bool { return bundle[i].Price < bundle[j].Price })
		if len(bundle) > 2 {
			bundle = bundle[:2]
		}
		wanted = bundle
	} else {
		name, ok := cat.Resolve(in.Item)
		if !ok {
			name, ok = itemNameInText(cat, in.FreeText)
		}
		if !ok {
			// Nothing resolvable: the shop stays out of it and narration
			// takes the turn.
			return "", false
		}
		price, sold := lookupPrice(effective, name)
		if !sold {
			return "That item isn't sold at this location.", true
		}
		wanted = []priceEntry{{name, price}}
	}

	total := 0
	names := make([]string, 0, len(wanted))
	for _, entry := range wanted {
		total += entry.Price
		names = append(names, entry.Name)
	}
	itemsList := strings.Join(names, ", ")

	if gs.CoinCount() < total {
		return fmt.Sprintf("You don't have enough coins to buy %s. Total cost is %d.", itemsList, total), true
	}
	if !gs.SpendCoins(total) {
		return "Purchase failed: not enough Gold Coins.", true
	}
	for _, entry := range wanted {
		gs.AddItem(entry.Name, 1)
	}
	return fmt.Sprintf("You buy %s for %d Gold Coin(s).", itemsList, total), true
}

// ShopChoices returns suggested purchases for the player's location,
// filtered to items that exist in the catalog. Locations without a shop
// (or with bare shelves) get the default exploration choices.
func ShopChoices(loc string, cat *catalog.Catalog) []string {
	var suggestions []string
	if loc == state.LocationBlacksmith {
		suggestions = []string{"Dagger", "Iron Sword", "Shield"}
	} else {
		suggestions = []string{"Torch", "Rope", "Loaf of Bread"}
	}
	choices := make([]string, 0, len(suggestions))
	for _, name := range suggestions {
		if cat.Has(name) {
			choices = append(choices, "Buy "+name)
		}
	}
	if len(choices) == 0 {
		return []string{"LOOK around", "Go to cave", "Return to tavern"}
	}
	return choices
}

// effectiveCatalog filters a location's price table to items that exist
// in the item catalog.
func effectiveCatalog(loc string, cat *catalog.Catalog) []priceEntry {
	table := marketPrices
	if loc == state.LocationBlacksmith {
		table = blacksmithPrices
	}
	out := make([]priceEntry, 0, len(table))
	for _, entry := range table {
		if cat.Has(entry.Name) {
			out = append(out, entry)
		}
	}
	return out
}

func describeOffers(loc string, effective []priceEntry) string {
	offers := make([]string, 0, len(effective))
	for _, entry := range effective {
		offers = append(offers, fmt.Sprintf("%s for %d coins", entry.Name, entry.Price))
	}
	if loc == state.LocationBlacksmith {
		if len(offers) == 0 {
			return "The blacksmith shrugs; his racks are bare today."
		}
		return "The blacksmith shows you his wares: " + strings.Join(offers, ", ") + "."
	}
	if len(offers) == 0 {
		return "The market is quiet and offers little right now."
	}
	return "Stalls around you offer " + strings.Join(offers, ", ") + "."
}

func lookupPrice(effective []priceEntry, name string) (int, bool) {
	for _, entry := range effective {
		if strings.EqualFold(entry.Name, name) {
			return entry.Price, true
		}
	}
	return 0, false
}

// itemNameInText finds a catalog item name literally occurring in free
// text. When several names occur, the longest match wins.
func itemNameInText(cat *catalog.Catalog, text string) (string, bool) {
	lowered := strings.ToLower(text)
	best := ""
	for _, name := range cat.Names() {
		if strings.Contains(lowered, strings.ToLower(name)) && len(name) > len(best) {
			best = name
		}
	}
	return best, best != ""
}
