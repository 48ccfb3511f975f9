package model

import "fmt"

// EnemyKind is the closed set of hostile entity kinds.
// Decided once at construction, never inferred from names.
type EnemyKind int32

const (
	KindNone EnemyKind = iota
	KindScout
	KindRaptor
	KindSpitter
	KindBrute
	KindWarlord
)

var enemyKindNames = map[EnemyKind]string{
	KindNone:    "none",
	KindScout:   "scout",
	KindRaptor:  "raptor",
	KindSpitter: "spitter",
	KindBrute:   "brute",
	KindWarlord: "warlord",
}

// String returns kind name as used in config.
func (k EnemyKind) String() string {
	if s, ok := enemyKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k EnemyKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsBoss reports whether the kind is a boss.
func (k EnemyKind) IsBoss() bool {
	return k == KindWarlord
}

// ParseEnemyKind parses config kind name.
func ParseEnemyKind(s string) (EnemyKind, error) {
	for k, name := range enemyKindNames {
		if name == s && k != KindNone {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("unknown enemy kind %q", s)
}

// EnemyStats is the merged, typed stat record of one enemy.
// Resolved once at spawn time and cached on the entity.
type EnemyStats struct {
	Health         float64
	Damage         float64
	AttackRange    float64
	AttackRate     float64 // seconds between hits
	Speed          float64 // world units per second
	AggroRange     float64
	PatrolRadius   float64
	LeashDistance  float64
	XPReward       int
	LootTableID    string
	LootMultiplier float64
	PackAggro      bool
	RespawnTime    float64 // static respawn seconds
}

// Enemy is a hostile entity record.
type Enemy struct {
	ID     uint32
	Kind   EnemyKind
	Level  int
	Region GridPos
	Stats  EnemyStats
	Elite  bool

	GroupID string
	WaveID  int

	Health   float64
	Position Vec2
	Spawn    Vec2

	// UpgradeTimed marks enemies whose respawn duration comes from the
	// region upgrade provider instead of Stats.RespawnTime.
	UpgradeTimed bool

	Dead  bool
	Timer *RespawnTimer
	AI    AI
}

// MaxHealth returns the resolved max health.
func (e *Enemy) MaxHealth() float64 { return e.Stats.Health }

// IsAlive reports whether the enemy takes part in the simulation.
func (e *Enemy) IsAlive() bool { return !e.Dead }

// DistanceFromSpawn returns current distance to the spawn point.
func (e *Enemy) DistanceFromSpawn() float64 {
	return e.Position.Distance(e.Spawn)
}

// EntityID implements arena indexing.
func (e *Enemy) EntityID() uint32 { return e.ID }

// HomeRegion implements arena indexing.
func (e *Enemy) HomeRegion() GridPos { return e.Region }

// GroupKey implements arena indexing.
func (e *Enemy) GroupKey() string { return e.GroupID }

// KindKey implements arena indexing.
func (e *Enemy) KindKey() string { return e.Kind.String() }
