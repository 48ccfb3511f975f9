// Package loot rolls reward items for defeated enemies.
package loot

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/udisondev/islesim/internal/config"
	"github.com/udisondev/islesim/internal/data"
)

// Item is one rolled reward stack.
type Item struct {
	ItemID string
	Amount int
}

// Generator rolls loot tables.
//
// Algorithm:
//  1. Every guaranteed entry drops with amount random(min..max).
//  2. Rolls times, one weighted entry is picked proportionally to Weight.
//  3. Each amount is scaled by (1 + LevelScale×(level-1)) × multiplier,
//     rounded, never below 1.
//  4. Stacks of the same item are merged in first-seen order.
type Generator struct {
	tables     map[string]data.LootTable
	levelScale float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates generator. nil rng uses a fixed seed.
func NewGenerator(tables map[string]data.LootTable, cfg config.LootConfig, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 3))
	}
	return &Generator{
		tables:     tables,
		levelScale: cfg.LevelScale,
		rng:        rng,
	}
}

// Generate rolls table tableID for an enemy of level with the given loot
// multiplier. Unknown tables yield nothing.
func (g *Generator) Generate(tableID string, level int, multiplier float64) []Item {
	table, ok := g.tables[tableID]
	if !ok {
		slog.Debug("unknown loot table", "table", tableID)
		return nil
	}
	if multiplier <= 0 {
		multiplier = 1
	}
	scale := (1 + g.levelScale*float64(max(level-1, 0))) * multiplier

	g.mu.Lock()
	defer g.mu.Unlock()

	var items []Item
	index := make(map[string]int)
	add := func(e data.LootEntry) {
		amount := int(math.Round(float64(g.rollAmount(e)) * scale))
		if amount < 1 {
			amount = 1
		}
		if i, ok := index[e.ItemID]; ok {
			items[i].Amount += amount
			return
		}
		index[e.ItemID] = len(items)
		items = append(items, Item{ItemID: e.ItemID, Amount: amount})
	}

	for _, e := range table.Guaranteed {
		add(e)
	}

	total := 0
	for _, e := range table.Weighted {
		total += max(e.Weight, 0)
	}
	if total > 0 {
		for range table.Rolls {
			if e, ok := g.pick(table.Weighted, total); ok {
				add(e)
			}
		}
	}
	return items
}

func (g *Generator) pick(entries []data.LootEntry, total int) (data.LootEntry, bool) {
	roll := g.rng.IntN(total)
	for _, e := range entries {
		w := max(e.Weight, 0)
		if roll < w {
			return e, true
		}
		roll -= w
	}
	return data.LootEntry{}, false
}

func (g *Generator) rollAmount(e data.LootEntry) int {
	lo := max(e.Min, 1)
	hi := max(e.Max, lo)
	if hi == lo {
		return lo
	}
	return lo + g.rng.IntN(hi-lo+1)
}
