package loot

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/islesim/internal/config"
	"github.com/udisondev/islesim/internal/data"
)

var fixedTables = map[string]data.LootTable{
	"fixed": {
		ID:         "fixed",
		Guaranteed: []data.LootEntry{{ItemID: "bone", Min: 2, Max: 2}},
		Weighted:   []data.LootEntry{{ItemID: "hide", Weight: 1, Min: 1, Max: 1}},
		Rolls:      3,
	},
	"empty_weights": {
		ID:         "empty_weights",
		Guaranteed: []data.LootEntry{{ItemID: "amber", Min: 0, Max: 0}},
		Weighted:   []data.LootEntry{{ItemID: "never", Weight: 0, Min: 1, Max: 1}},
		Rolls:      5,
	},
}

func TestGenerator_Generate(t *testing.T) {
	tests := []struct {
		name       string
		table      string
		level      int
		multiplier float64
		levelScale float64
		want       []Item
	}{
		{
			name:       "base",
			table:      "fixed",
			level:      1,
			multiplier: 1,
			want:       []Item{{"bone", 2}, {"hide", 3}},
		},
		{
			name:       "elite multiplier",
			table:      "fixed",
			level:      1,
			multiplier: 2,
			want:       []Item{{"bone", 4}, {"hide", 6}},
		},
		{
			name:       "level scaling",
			table:      "fixed",
			level:      6,
			multiplier: 1,
			levelScale: 0.1,
			want:       []Item{{"bone", 3}, {"hide", 6}},
		},
		{
			name:       "zero weights and amounts",
			table:      "empty_weights",
			level:      1,
			multiplier: 0,
			want:       []Item{{"amber", 1}},
		},
		{
			name:  "unknown table",
			table: "nope",
			level: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(fixedTables, config.LootConfig{LevelScale: tt.levelScale}, nil)
			assert.Equal(t, tt.want, g.Generate(tt.table, tt.level, tt.multiplier))
		})
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	tables := data.LootTables()
	a := NewGenerator(tables, config.LootConfig{LevelScale: 0.1}, rand.New(rand.NewPCG(42, 42)))
	b := NewGenerator(tables, config.LootConfig{LevelScale: 0.1}, rand.New(rand.NewPCG(42, 42)))

	for range 20 {
		assert.Equal(t, a.Generate("raptor", 4, 1), b.Generate("raptor", 4, 1))
	}
}

func TestGenerator_BuiltinTables(t *testing.T) {
	g := NewGenerator(data.LootTables(), config.LootConfig{}, rand.New(rand.NewPCG(5, 5)))

	for id, table := range data.LootTables() {
		items := g.Generate(id, 1, 1)
		require.NotEmpty(t, items, "table %s", id)
		for i, e := range table.Guaranteed {
			assert.Equal(t, e.ItemID, items[i].ItemID, "guaranteed entries come first")
		}
		for _, it := range items {
			assert.Positive(t, it.Amount)
		}
	}
}
