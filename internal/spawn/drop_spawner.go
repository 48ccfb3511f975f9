package spawn

import (
	"log/slog"

	"github.com/udisondev/islesim/internal/model"
)

// DropSpawner places item stacks on the ground.
type DropSpawner struct {
	entities *Entities
}

// NewDropSpawner creates drop spawner.
func NewDropSpawner(entities *Entities) *DropSpawner {
	return &DropSpawner{entities: entities}
}

// SpawnDrop places amount of itemID at pos. dropperID is the enemy that
// dropped it, 0 for none.
func (s *DropSpawner) SpawnDrop(itemID string, amount int, pos model.Vec2, region model.GridPos, dropperID uint32) *model.DroppedItem {
	if itemID == "" || amount <= 0 {
		return nil
	}
	d := &model.DroppedItem{
		ID:        s.entities.IDs.NextDropID(),
		ItemID:    itemID,
		Amount:    amount,
		Position:  pos,
		Region:    region,
		DropperID: dropperID,
	}
	s.entities.Drops.Add(d)
	return d
}

// SpawnCraftedItem places a freshly crafted stack at pos.
func (s *DropSpawner) SpawnCraftedItem(itemID string, amount int, pos model.Vec2, region model.GridPos) *model.DroppedItem {
	d := s.SpawnDrop(itemID, amount, pos, region, 0)
	if d != nil {
		d.Crafted = true
		slog.Debug("crafted item placed", "itemID", itemID, "amount", amount, "dropID", d.ID)
	}
	return d
}

// Pickup removes drop id from the ground.
func (s *DropSpawner) Pickup(id uint32) (*model.DroppedItem, bool) {
	return s.entities.Drops.Remove(id)
}
