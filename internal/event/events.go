// Package event defines the notifications the simulation publishes and the
// publisher implementations that carry them to the rest of the game.
package event

import "github.com/udisondev/islesim/internal/model"

// Type enumerates event kinds.
type Type int32

const (
	TypeRegionUnlocked Type = iota
	TypeEnemyAggroed
	TypeEnemyLeashed
	TypeEnemyAttacked
	TypeEnemyDefeated
	TypeEnemyRespawned
	TypeResourceDepleted
	TypeResourceRespawned
	TypeResourceAutoCollected
)

var typeNames = [...]string{
	TypeRegionUnlocked:        "region_unlocked",
	TypeEnemyAggroed:          "enemy_aggroed",
	TypeEnemyLeashed:          "enemy_leashed",
	TypeEnemyAttacked:         "enemy_attacked",
	TypeEnemyDefeated:         "enemy_defeated",
	TypeEnemyRespawned:        "enemy_respawned",
	TypeResourceDepleted:      "resource_depleted",
	TypeResourceRespawned:     "resource_respawned",
	TypeResourceAutoCollected: "resource_auto_collected",
}

// String returns the wire name of the event type.
func (t Type) String() string {
	if int(t) >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Types returns all event types in declaration order.
func Types() []Type {
	out := make([]Type, len(typeNames))
	for i := range typeNames {
		out[i] = Type(i)
	}
	return out
}

// Event is implemented by every typed payload.
type Event interface {
	Type() Type
}

// RegionUnlocked is published after a region flips to unlocked and the
// collision index has been rebuilt.
type RegionUnlocked struct {
	Region   model.GridPos `json:"region"`
	Name     string        `json:"name"`
	Category string        `json:"category"`
	Cost     int           `json:"cost"`
}

// EnemyAggroed is published when an enemy starts chasing a target.
// Alerted is true when the transition came from a pack alert.
type EnemyAggroed struct {
	EnemyID  uint32          `json:"enemy_id"`
	Kind     model.EnemyKind `json:"kind"`
	TargetID uint32          `json:"target_id"`
	GroupID  string          `json:"group_id,omitempty"`
	Alerted  bool            `json:"alerted"`
}

// EnemyLeashed is published when an enemy gives up and returns to spawn.
type EnemyLeashed struct {
	EnemyID  uint32     `json:"enemy_id"`
	Distance float64    `json:"distance"`
	Spawn    model.Vec2 `json:"spawn"`
}

// EnemyAttacked is published when an enemy lands a hit on its target.
type EnemyAttacked struct {
	EnemyID  uint32  `json:"enemy_id"`
	TargetID uint32  `json:"target_id"`
	Damage   float64 `json:"damage"`
}

// EnemyDefeated is published exactly once per death and carries the reward
// data the loot generator needs.
type EnemyDefeated struct {
	EnemyID        uint32          `json:"enemy_id"`
	Kind           model.EnemyKind `json:"kind"`
	Level          int             `json:"level"`
	Elite          bool            `json:"elite"`
	Region         model.GridPos   `json:"region"`
	Position       model.Vec2      `json:"position"`
	XPReward       int             `json:"xp_reward"`
	LootTableID    string          `json:"loot_table_id"`
	LootMultiplier float64         `json:"loot_multiplier"`
	KillerID       uint32          `json:"killer_id"`
	RespawnIn      float64         `json:"respawn_in"`
}

// EnemyRespawned is published when a dead enemy is revived in place.
type EnemyRespawned struct {
	EnemyID  uint32        `json:"enemy_id"`
	Region   model.GridPos `json:"region"`
	Position model.Vec2    `json:"position"`
}

// ResourceDepleted is published when a node is harvested empty.
type ResourceDepleted struct {
	ResourceID uint32        `json:"resource_id"`
	Region     model.GridPos `json:"region"`
	RespawnIn  float64       `json:"respawn_in"`
}

// ResourceRespawned is published when a node regrows.
type ResourceRespawned struct {
	ResourceID uint32        `json:"resource_id"`
	Region     model.GridPos `json:"region"`
}

// ResourceAutoCollected is published when a regrown node is harvested by
// the region's auto-collect upgrade.
type ResourceAutoCollected struct {
	ResourceID uint32        `json:"resource_id"`
	Region     model.GridPos `json:"region"`
	ItemID     string        `json:"item_id"`
	Amount     int           `json:"amount"`
}

func (RegionUnlocked) Type() Type        { return TypeRegionUnlocked }
func (EnemyAggroed) Type() Type          { return TypeEnemyAggroed }
func (EnemyLeashed) Type() Type          { return TypeEnemyLeashed }
func (EnemyAttacked) Type() Type         { return TypeEnemyAttacked }
func (EnemyDefeated) Type() Type         { return TypeEnemyDefeated }
func (EnemyRespawned) Type() Type        { return TypeEnemyRespawned }
func (ResourceDepleted) Type() Type      { return TypeResourceDepleted }
func (ResourceRespawned) Type() Type     { return TypeResourceRespawned }
func (ResourceAutoCollected) Type() Type { return TypeResourceAutoCollected }
