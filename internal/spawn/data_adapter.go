package spawn

import (
	"log/slog"

	"github.com/udisondev/islesim/internal/loot"
	"github.com/udisondev/islesim/internal/model"
)

// LootSource rolls loot. Implemented by *loot.Generator.
type LootSource interface {
	Generate(tableID string, level int, multiplier float64) []loot.Item
}

// LootRewards implements RewardHandler by rolling the enemy's loot table
// and dropping the result where it died.
type LootRewards struct {
	source LootSource
	drops  *DropSpawner
}

// NewLootRewards creates a RewardHandler adapter over a loot source.
func NewLootRewards(source LootSource, drops *DropSpawner) *LootRewards {
	return &LootRewards{source: source, drops: drops}
}

// HandleReward rolls and drops loot for e.
func (r *LootRewards) HandleReward(e *model.Enemy, killerID uint32) {
	if r.source == nil || e.Stats.LootTableID == "" {
		return
	}
	items := r.source.Generate(e.Stats.LootTableID, e.Level, e.Stats.LootMultiplier)
	for _, it := range items {
		r.drops.SpawnDrop(it.ItemID, it.Amount, e.Position, e.Region, e.ID)
	}
	if len(items) > 0 {
		slog.Debug("loot dropped",
			"enemyID", e.ID,
			"killerID", killerID,
			"table", e.Stats.LootTableID,
			"stacks", len(items))
	}
}
