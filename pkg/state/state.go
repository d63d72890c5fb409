package state

import "strings"

// Known locations in the game world. The world graph is intentionally
// closed; movement resolution never invents a location outside this set.
const (
	LocationVillage    = "Village"
	LocationBlacksmith = "Blacksmith"
	LocationMarket     = "Market"
	LocationTavern     = "Tavern"
	LocationCave       = "Cave"
)

// GoldCoinName is the canonical name of the game's currency item.
const GoldCoinName = "Gold Coin"

// Player holds the player character's vitals and progression.
type Player struct {
	Name  string `json:"name"`
	HP    int    `json:"hp"`
	MaxHP int    `json:"max_hp"`
	Level int    `json:"level"`
	XP    int    `json:"xp"`
}

// World is the player's position in the game world.
type World struct {
	Location  string `json:"location"`
	TimeOfDay string `json:"time_of_day"`
}

// Quest tracks the current quest. Status transitions are narration-driven
// and are not validated here.
type Quest struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// InventoryItem is a stack of a single item. Names are unique within an
// inventory (case-insensitive) and Count is always positive; a stack that
// reaches zero is removed rather than persisted.
type InventoryItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// LogEntry is one turn's player text and GM response.
type LogEntry struct {
	Player string `json:"player"`
	GM     string `json:"gm"`
}

// GameState is the authoritative state of one adventure session.
// It is owned by the session store; one instance exists per session.
type GameState struct {
	Turn      int             `json:"turn"`
	Player    Player          `json:"player"`
	World     World           `json:"world"`
	Quest     Quest           `json:"quest"`
	Inventory []InventoryItem `json:"inventory"`
	Log       []LogEntry      `json:"log"`
	GameOver  bool            `json:"game_over"`
}

// NewGameState creates the starting state for a fresh session.
func NewGameState() *GameState {
	return &GameState{
		Turn: 0,
		Player: Player{
			Name:  "Hero",
			HP:    10,
			MaxHP: 10,
			Level: 1,
			XP:    0,
		},
		World: World{
			Location:  LocationVillage,
			TimeOfDay: "morning",
		},
		Quest: Quest{
			ID:     "beer_keg",
			Title:  "Recover the goblins' stolen beer keg and return it to the tavern",
			Status: "in_progress",
		},
		Inventory: []InventoryItem{
			{Name: GoldCoinName, Count: 5},
			{Name: "Wooden Sword", Count: 1},
		},
		Log: make([]LogEntry, 0),
	}
}

// Clone returns a deep copy of the state. Responses and other readers
// that outlive the session lock must work on a clone, never on the live
// session state.
func (gs *GameState) Clone() *GameState {
	out := *gs
	out.Inventory = make([]InventoryItem, len(gs.Inventory))
	copy(out.Inventory, gs.Inventory)
	out.Log = make([]LogEntry, len(gs.Log))
	copy(out.Log, gs.Log)
	return &out
}

// ApplyHealthChange adjusts the player's HP by delta, clamped to
// [0, MaxHP], and returns the new HP.
func (gs *GameState) ApplyHealthChange(delta int) int {
	hp := gs.Player.HP + delta
	if hp < 0 {
		hp = 0
	}
	if hp > gs.Player.MaxHP {
		hp = gs.Player.MaxHP
	}
	gs.Player.HP = hp
	return hp
}

// ItemCount returns the held count of the named item, matching
// case-insensitively. Missing items count as zero.
func (gs *GameState) ItemCount(name string) int {
	for i := range gs.Inventory {
		if strings.EqualFold(gs.Inventory[i].Name, name) {
			return gs.Inventory[i].Count
		}
	}
	return 0
}

// HasItem reports whether the inventory holds at least qty of the named item.
func (gs *GameState) HasItem(name string, qty int) bool {
	return gs.ItemCount(name) >= qty
}

// AddItem increments an existing stack or inserts a new one.
func (gs *GameState) AddItem(name string, qty int) {
	for i := range gs.Inventory {
		if strings.EqualFold(gs.Inventory[i].Name, name) {
			gs.Inventory[i].Count += qty
			return
		}
	}
	gs.Inventory = append(gs.Inventory, InventoryItem{Name: name, Count: qty})
}

// RemoveItem decrements a stack by qty, deleting the stack when it reaches
// zero. It returns false without mutating anything if the inventory does
// not hold at least qty.
func (gs *GameState) RemoveItem(name string, qty int) bool {
	for i := range gs.Inventory {
		if strings.EqualFold(gs.Inventory[i].Name, name) {
			if gs.Inventory[i].Count < qty {
				return false
			}
			gs.Inventory[i].Count -= qty
			if gs.Inventory[i].Count == 0 {
				gs.Inventory = append(gs.Inventory[:i], gs.Inventory[i+1:]...)
			}
			return true
		}
	}
	return false
}

// CoinCount returns the number of Gold Coins held.
func (gs *GameState) CoinCount() int {
	return gs.ItemCount(GoldCoinName)
}

// SpendCoins removes qty Gold Coins, returning false if the player
// cannot afford it.
func (gs *GameState) SpendCoins(qty int) bool {
	return gs.RemoveItem(GoldCoinName, qty)
}

// ItemNames returns the names of all held items, in inventory order.
func (gs *GameState) ItemNames() []string {
	names := make([]string, 0, len(gs.Inventory))
	for i := range gs.Inventory {
		names = append(names, gs.Inventory[i].Name)
	}
	return names
}

// AppendLog records one completed turn in the session log.
func (gs *GameState) AppendLog(playerText, gmText string) {
	gs.Log = append(gs.Log, LogEntry{Player: playerText, GM: gmText})
}

// LogTail returns up to n of the most recent log entries.
func (gs *GameState) LogTail(n int) []LogEntry {
	if n <= 0 || len(gs.Log) == 0 {
		return nil
	}
	if len(gs.Log) <= n {
		return gs.Log
	}
	return gs.Log[len(gs.Log)-n:]
}
