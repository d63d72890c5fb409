package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLookup_CaseInsensitive(t *testing.T) {
	cat := Default()

	canonical, def := cat.Lookup("healing herbs")
	if def == nil {
		t.Fatal("Expected to find Healing Herbs")
	}
	if canonical != "Healing Herbs" {
		t.Errorf("Expected canonical 'Healing Herbs', got %q", canonical)
	}
	if def.Type != TypeConsumable {
		t.Errorf("Expected consumable, got %q", def.Type)
	}
	if def.Effect["hp"] != 4 {
		t.Errorf("Expected hp effect 4, got %d", def.Effect["hp"])
	}

	if canonical, def := cat.Lookup("Beer Keg"); def != nil || canonical != "" {
		t.Errorf("Expected miss for unknown item, got %q", canonical)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")
	content := `{"Lantern": {"type": "utility"}, "Apple": {"type": "consumable", "effect": {"hp": 1}}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cat.Has("lantern") {
		t.Error("Expected catalog to contain Lantern")
	}
	if len(cat.Names()) != 2 {
		t.Errorf("Expected 2 items, got %d", len(cat.Names()))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected error for missing catalog file")
	}
}

func TestResolve_PriorityOrder(t *testing.T) {
	cat := Default()

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"alias match", "coins", "Gold Coin", true},
		{"alias sword prefers iron", "sword", "Iron Sword", true},
		{"alias bread", "bread", "Loaf of Bread", true},
		{"exact case-insensitive", "dagger", "Dagger", true},
		{"singularized", "Torches", "Torch", true},
		{"catalog name is prefix of input", "rope from the stall", "Rope", true},
		{"catalog name inside input", "that sturdy shield there", "Shield", true},
		{"input inside catalog name", "Healing", "Healing Herbs", true},
		{"ambiguous fragment unresolved", "o", "", false},
		{"total miss", "beer keg", "", false},
		{"empty input", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cat.Resolve(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestResolve_AmbiguityIsNotGuessed(t *testing.T) {
	cat := New(map[string]Item{
		"Red Potion":  {Type: TypeConsumable},
		"Blue Potion": {Type: TypeConsumable},
	})

	// "potion" is contained in both catalog names: ambiguous, so
	// unresolved rather than guessed.
	if got, ok := cat.Resolve("potion"); ok {
		t.Errorf("Expected ambiguity to stay unresolved, got %q", got)
	}
}
