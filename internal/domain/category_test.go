package domain

import (
	"encoding/json"
	"testing"
)

func TestCategoryUnmarshal_MissingIcon(t *testing.T) {
	var cat Category
	if err := json.Unmarshal([]byte(`{"id":1,"name":"Food","amount":"50","color":255}`), &cat); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if cat.Icon != DefaultIcon {
		t.Errorf("Expected missing icon to default, got %q", cat.Icon)
	}
}

func TestCategoryUnmarshal_NullIcon(t *testing.T) {
	var cat Category
	if err := json.Unmarshal([]byte(`{"id":1,"name":"Food","amount":"50","icon":null}`), &cat); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if cat.Icon != DefaultIcon {
		t.Errorf("Expected null icon to default, got %q", cat.Icon)
	}
}

func TestCategoryUnmarshal_KeepsIcon(t *testing.T) {
	var cat Category
	if err := json.Unmarshal([]byte(`{"id":1,"name":"Food","amount":"50","icon":"Groceries"}`), &cat); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if cat.Icon != "Groceries" {
		t.Errorf("Expected icon preserved, got %q", cat.Icon)
	}
}

func TestIsDailySpends(t *testing.T) {
	cases := map[string]bool{
		"Daily Spends": true,
		"daily spends": true,
		"DAILY SPENDS": true,
		"Daily":        false,
		"Food":         false,
	}
	for name, want := range cases {
		cat := Category{Name: name}
		if got := cat.IsDailySpends(); got != want {
			t.Errorf("IsDailySpends(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestPaletteColor_Cycles(t *testing.T) {
	if PaletteColor(0) != PaletteColor(len(Palette)) {
		t.Error("Expected palette to cycle")
	}
	for i := range Palette {
		if PaletteColor(i) != Palette[i] {
			t.Errorf("Expected PaletteColor(%d) = Palette[%d]", i, i)
		}
	}
}

func TestDefaultCategories_UniqueIDs(t *testing.T) {
	categories := DefaultCategories()
	if len(categories) != 5 {
		t.Fatalf("Expected 5 categories, got %d", len(categories))
	}
	seen := make(map[int64]bool)
	for _, cat := range categories {
		if seen[cat.ID] {
			t.Errorf("Duplicate category id %d", cat.ID)
		}
		seen[cat.ID] = true
		if cat.Icon == "" {
			t.Errorf("Expected an icon on %q", cat.Name)
		}
	}
}
