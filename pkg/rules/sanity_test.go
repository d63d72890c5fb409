package rules

import (
	"strings"
	"testing"

	"github.com/emberhollow/adventure/pkg/catalog"
	"github.com/emberhollow/adventure/pkg/intent"
	"github.com/emberhollow/adventure/pkg/state"
)

func TestValidate(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		name    string
		setup   func(gs *state.GameState)
		in      intent.Intent
		ok      bool
		message string
	}{
		{
			name: "plain look is fine",
			in:   intent.Intent{Action: intent.ActionLook, Quantity: 1},
			ok:   true,
		},
		{
			name:    "game over rejects everything",
			setup:   func(gs *state.GameState) { gs.GameOver = true },
			in:      intent.Intent{Action: intent.ActionLook, Quantity: 1},
			ok:      false,
			message: "The adventure has already ended.",
		},
		{
			name:    "incapacitated player cannot act",
			setup:   func(gs *state.GameState) { gs.Player.HP = 0 },
			in:      intent.Intent{Action: intent.ActionLook, Quantity: 1},
			ok:      false,
			message: "You are incapacitated and cannot act.",
		},
		{
			name:    "game over outranks incapacitation",
			setup:   func(gs *state.GameState) { gs.GameOver = true; gs.Player.HP = 0 },
			in:      intent.Intent{Action: intent.ActionAttack, Quantity: 1},
			ok:      false,
			message: "The adventure has already ended.",
		},
		{
			name:    "non-positive quantity on take",
			in:      intent.Intent{Action: intent.ActionTakeItem, Item: "Torch", Quantity: 0},
			ok:      false,
			message: "Invalid quantity.",
		},
		{
			name:    "use without item",
			in:      intent.Intent{Action: intent.ActionUseItem, Quantity: 1},
			ok:      false,
			message: "You must specify an item to use.",
		},
		{
			name:    "use item not held",
			in:      intent.Intent{Action: intent.ActionUseItem, Item: "Bandage", Quantity: 1},
			ok:      false,
			message: "You don't have Bandage.",
		},
		{
			name:    "use item unknown to catalog",
			setup:   func(gs *state.GameState) { gs.AddItem("Beer Keg", 1) },
			in:      intent.Intent{Action: intent.ActionUseItem, Item: "Beer Keg", Quantity: 1},
			ok:      false,
			message: "You can't use 'Beer Keg' right now.",
		},
		{
			name:    "use weapon directly",
			in:      intent.Intent{Action: intent.ActionUseItem, Item: "wooden sword", Quantity: 1},
			ok:      false,
			message: "You can't really 'use' the Wooden Sword directly.",
		},
		{
			name:  "use held consumable",
			setup: func(gs *state.GameState) { gs.AddItem("Bandage", 1) },
			in:    intent.Intent{Action: intent.ActionUseItem, Item: "Bandage", Quantity: 1},
			ok:    true,
		},
		{
			name:  "use held utility",
			setup: func(gs *state.GameState) { gs.AddItem("Torch", 1) },
			in:    intent.Intent{Action: intent.ActionUseItem, Item: "Torch", Quantity: 1},
			ok:    true,
		},
		{
			name:    "drop more than held",
			in:      intent.Intent{Action: intent.ActionDropItem, Item: "Gold Coin", Quantity: 6},
			ok:      false,
			message: "You don't have enough Gold Coin.",
		},
		{
			name: "drop within held count",
			in:   intent.Intent{Action: intent.ActionDropItem, Item: "Gold Coin", Quantity: 5},
			ok:   true,
		},
		{
			name: "buy is never hard-rejected",
			in:   intent.Intent{Action: intent.ActionBuy, Item: "Castle", Quantity: 1},
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := state.NewGameState()
			if tt.setup != nil {
				tt.setup(gs)
			}
			before := *gs

			ok, message := Validate(gs, tt.in, cat)
			if ok != tt.ok {
				t.Fatalf("Validate() ok = %v, want %v (message %q)", ok, tt.ok, message)
			}
			if !tt.ok && message != tt.message {
				t.Errorf("Validate() message = %q, want %q", message, tt.message)
			}

			// Validation must never mutate state.
			if gs.Turn != before.Turn || gs.Player != before.Player || gs.World != before.World {
				t.Error("Validate mutated game state")
			}
		})
	}
}

func TestValidate_RejectionMessagesAreUserFacing(t *testing.T) {
	cat := catalog.Default()
	gs := state.NewGameState()
	gs.GameOver = true

	_, message := Validate(gs, intent.Intent{Action: intent.ActionLook, Quantity: 1}, cat)
	if strings.TrimSpace(message) == "" {
		t.Error("Rejection must carry a user-facing message")
	}
}
