package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"golang.org/x/text/cases"
)

// Item type classes. The sanity validator only lets the player "use"
// consumables and utility items; consumables may carry an effect.
const (
	TypeCurrency   = "currency"
	TypeWeapon     = "weapon"
	TypeUtility    = "utility"
	TypeConsumable = "consumable"
)

// Item is a static item definition.
type Item struct {
	Type   string         `json:"type"`
	Effect map[string]int `json:"effect,omitempty"`
}

// Catalog is the read-only mapping of canonical item names to their
// definitions. Lookups are case-insensitive.
type Catalog struct {
	items  map[string]Item   // canonical name -> definition
	folded map[string]string // case-folded name -> canonical name
}

var folder = cases.Fold()

// New builds a catalog from canonical name -> definition entries.
func New(items map[string]Item) *Catalog {
	c := &Catalog{
		items:  make(map[string]Item, len(items)),
		folded: make(map[string]string, len(items)),
	}
	for name, def := range items {
		c.items[name] = def
		c.folded[folder.String(name)] = name
	}
	return c
}

// Load reads a catalog from a JSON file of canonical name -> definition.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read item catalog: %w", err)
	}
	var items map[string]Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse item catalog: %w", err)
	}
	return New(items), nil
}

// Default returns the built-in item catalog, used when no catalog file
// is present in the data directory.
func Default() *Catalog {
	return New(map[string]Item{
		"Gold Coin":     {Type: TypeCurrency},
		"Wooden Sword":  {Type: TypeWeapon},
		"Iron Sword":    {Type: TypeWeapon},
		"Shield":        {Type: TypeWeapon},
		"Dagger":        {Type: TypeWeapon},
		"Loaf of Bread": {Type: TypeConsumable, Effect: map[string]int{"hp": 2}},
		"Torch":         {Type: TypeUtility},
		"Rope":          {Type: TypeUtility},
		"Bandage":       {Type: TypeConsumable, Effect: map[string]int{"hp": 3}},
		"Healing Herbs": {Type: TypeConsumable, Effect: map[string]int{"hp": 4}},
	})
}

// Lookup finds an item by name, case-insensitively. It returns the
// canonical name and definition, or ("", nil) when the item is unknown.
func (c *Catalog) Lookup(name string) (string, *Item) {
	canonical, ok := c.folded[folder.String(name)]
	if !ok {
		return "", nil
	}
	def := c.items[canonical]
	return canonical, &def
}

// Has reports whether the named item exists in the catalog.
func (c *Catalog) Has(name string) bool {
	_, def := c.Lookup(name)
	return def != nil
}

// Names returns all canonical item names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.items))
	for name := range c.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
