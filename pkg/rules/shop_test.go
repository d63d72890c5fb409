package rules

import (
	"strings"
	"testing"

	"github.com/emberhollow/adventure/pkg/catalog"
	"github.com/emberhollow/adventure/pkg/intent"
	"github.com/emberhollow/adventure/pkg/state"
)

func shopState(location string) *state.GameState {
	gs := state.NewGameState()
	gs.World.Location = location
	return gs
}

func TestResolveShop_BuyDaggerAtBlacksmith(t *testing.T) {
	cat := catalog.Default()
	gs := shopState(state.LocationBlacksmith)

	text, handled := ResolveShop(gs, intent.Intent{Action: intent.ActionBuy, Item: "dagger", Quantity: 1}, cat)
	if !handled {
		t.Fatal("Expected shop to handle the purchase")
	}
	if text != "You buy Dagger for 4 Gold Coin(s)." {
		t.Errorf("Unexpected confirmation: %q", text)
	}
	if gs.CoinCount() != 1 {
		t.Errorf("Expected 1 coin left, got %d", gs.CoinCount())
	}
	if gs.ItemCount("Dagger") != 1 {
		t.Errorf("Expected 1 Dagger, got %d", gs.ItemCount("Dagger"))
	}
}

func TestResolveShop_InsufficientCoinsLeavesStateUnchanged(t *testing.T) {
	cat := catalog.Default()
	gs := shopState(state.LocationBlacksmith)

	text, handled := ResolveShop(gs, intent.Intent{Action: intent.ActionBuy, Item: "iron sword", Quantity: 1}, cat)
	if !handled {
		t.Fatal("Expected shop to handle the refusal")
	}
	if text != "You don't have enough coins to buy Iron Sword. Total cost is 10." {
		t.Errorf("Unexpected refusal: %q", text)
	}
	if gs.CoinCount() != 5 {
		t.Errorf("Expected coins untouched at 5, got %d", gs.CoinCount())
	}
	if gs.HasItem("Iron Sword", 1) {
		t.Error("Iron Sword must not be granted on a failed purchase")
	}
}

func TestResolveShop_NotSoldHere(t *testing.T) {
	cat := catalog.Default()
	gs := shopState(state.LocationMarket)

	text, handled := ResolveShop(gs, intent.Intent{Action: intent.ActionBuy, Item: "dagger", Quantity: 1}, cat)
	if !handled || text != "That item isn't sold at this location." {
		t.Errorf("Expected not-sold refusal, got (%q, %v)", text, handled)
	}
	if gs.CoinCount() != 5 {
		t.Errorf("Expected coins untouched, got %d", gs.CoinCount())
	}
}

func TestResolveShop_SuppliesBundle(t *testing.T) {
	cat := catalog.Default()
	gs := shopState(state.LocationMarket)

	text, handled := ResolveShop(gs, intent.Intent{Action: intent.ActionBuy, Item: "supplies", Quantity: 1}, cat)
	if !handled {
		t.Fatal("Expected shop to handle the bundle purchase")
	}
	// Two cheapest market items: Torch (1) and Loaf of Bread (2).
	if text != "You buy Torch, Loaf of Bread for 3 Gold Coin(s)." {
		t.Errorf("Unexpected confirmation: %q", text)
	}
	if gs.CoinCount() != 2 {
		t.Errorf("Expected 2 coins left, got %d", gs.CoinCount())
	}
	if !gs.HasItem("Torch", 1) || !gs.HasItem("Loaf of Bread", 1) {
		t.Error("Bundle items missing from inventory")
	}
}

func TestResolveShop_ItemResolvedFromFreeText(t *testing.T) {
	cat := catalog.Default()
	gs := shopState(state.LocationMarket)

	in := intent.Intent{Action: intent.ActionBuy, FreeText: "I'd like to buy a torch please", Quantity: 1}
	text, handled := ResolveShop(gs, in, cat)
	if !handled {
		t.Fatal("Expected shop to resolve the item from free text")
	}
	if text != "You buy Torch for 1 Gold Coin(s)." {
		t.Errorf("Unexpected confirmation: %q", text)
	}
}

func TestResolveShop_UnresolvableDefersToNarration(t *testing.T) {
	cat := catalog.Default()
	gs := shopState(state.LocationMarket)

	in := intent.Intent{Action: intent.ActionBuy, Item: "castle", FreeText: "buy the castle", Quantity: 1}
	text, handled := ResolveShop(gs, in, cat)
	if handled || text != "" {
		t.Errorf("Expected deferral, got (%q, %v)", text, handled)
	}
	if gs.CoinCount() != 5 {
		t.Errorf("Expected coins untouched, got %d", gs.CoinCount())
	}
}

func TestResolveShop_Inquiry(t *testing.T) {
	cat := catalog.Default()
	gs := shopState(state.LocationBlacksmith)

	in := intent.Intent{Action: intent.ActionLook, FreeText: "what do your weapons cost?", Quantity: 1}
	text, handled := ResolveShop(gs, in, cat)
	if !handled {
		t.Fatal("Expected inquiry to be handled locally")
	}
	for _, want := range []string{"Iron Sword for 10 coins", "Shield for 8 coins", "Dagger for 4 coins"} {
		if !strings.Contains(text, want) {
			t.Errorf("Inquiry %q missing %q", text, want)
		}
	}
	if gs.CoinCount() != 5 {
		t.Error("Inquiry must not spend coins")
	}
}

func TestResolveShop_HagglingRefused(t *testing.T) {
	cat := catalog.Default()
	gs := shopState(state.LocationMarket)

	in := intent.Intent{Action: intent.ActionTalk, FreeText: "any chance of a discount?", Quantity: 1}
	text, handled := ResolveShop(gs, in, cat)
	if !handled {
		t.Fatal("Expected haggling to be handled locally")
	}
	if text != "The shopkeeper shakes their head. \"The price is the price, friend.\"" {
		t.Errorf("Unexpected refusal: %q", text)
	}
}

func TestResolveShop_OutsideShopLocations(t *testing.T) {
	cat := catalog.Default()
	for _, loc := range []string{state.LocationTavern, state.LocationCave} {
		gs := shopState(loc)
		in := intent.Intent{Action: intent.ActionBuy, Item: "torch", Quantity: 1}
		if text, handled := ResolveShop(gs, in, cat); handled || text != "" {
			t.Errorf("Expected no shop at %s, got (%q, %v)", loc, text, handled)
		}
	}
}

func TestResolveShop_NonShoppingTurnPassesThrough(t *testing.T) {
	cat := catalog.Default()
	gs := shopState(state.LocationMarket)

	in := intent.Intent{Action: intent.ActionLook, FreeText: "look at the sky", Quantity: 1}
	if text, handled := ResolveShop(gs, in, cat); handled || text != "" {
		t.Errorf("Expected pass-through, got (%q, %v)", text, handled)
	}
}

func TestShopChoices(t *testing.T) {
	cat := catalog.Default()

	blacksmith := ShopChoices(state.LocationBlacksmith, cat)
	if len(blacksmith) != 3 || blacksmith[0] != "Buy Dagger" {
		t.Errorf("Unexpected blacksmith choices: %v", blacksmith)
	}

	market := ShopChoices(state.LocationMarket, cat)
	if len(market) != 3 || market[0] != "Buy Torch" {
		t.Errorf("Unexpected market choices: %v", market)
	}

	// With an empty catalog no suggestion survives filtering and the
	// defaults come back.
	empty := ShopChoices(state.LocationMarket, catalog.New(nil))
	if len(empty) != 3 || empty[0] != "LOOK around" {
		t.Errorf("Unexpected fallback choices: %v", empty)
	}
}
