package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultIcon is the icon key used when a category has none. Older
// snapshots persisted a null icon, which broke icon lookups on read.
const DefaultIcon = "Default"

// DailySpendsName is the catch-all category auto-created the first time an
// expense is recorded in a month. Matching is case-insensitive and each
// month holds at most one.
const DailySpendsName = "Daily Spends"

// Palette is the fixed set of category colors (packed ARGB). New
// categories cycle through it by the month's current category count.
var Palette = []int64{
	0xFF4CAF50, // green
	0xFF2196F3, // blue
	0xFFFF9800, // orange
	0xFF9C27B0, // purple
	0xFFF44336, // red
}

// PaletteColor returns the color for the n-th category added to a month.
func PaletteColor(n int) int64 {
	return Palette[n%len(Palette)]
}

// Category is a budget allocation bucket within a month.
type Category struct {
	ID     int64           `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Color  int64           `json:"color"`
	Icon   string          `json:"icon"`
}

// UnmarshalJSON defaults a missing or null icon to DefaultIcon.
func (c *Category) UnmarshalJSON(data []byte) error {
	type alias Category
	aux := struct {
		Icon *string `json:"icon"`
		*alias
	}{alias: (*alias)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Icon == nil || *aux.Icon == "" {
		c.Icon = DefaultIcon
	} else {
		c.Icon = *aux.Icon
	}
	return nil
}

// IsDailySpends reports whether the category is the month's catch-all.
func (c *Category) IsDailySpends() bool {
	return strings.EqualFold(c.Name, DailySpendsName)
}

// DefaultCategories returns the five categories seeded into a month the
// first time it is accessed with no persisted data.
func DefaultCategories() []Category {
	names := []struct {
		name string
		icon string
	}{
		{"Food", "Food"},
		{"Transport", "Transport"},
		{"Shopping", "Shopping"},
		{"Bills", "Bills"},
		{"Entertainment", "Entertainment"},
	}

	categories := make([]Category, len(names))
	for i, n := range names {
		categories[i] = Category{
			ID:     NextID(),
			Name:   n.name,
			Amount: decimal.Zero,
			Color:  PaletteColor(i),
			Icon:   n.icon,
		}
	}
	return categories
}
