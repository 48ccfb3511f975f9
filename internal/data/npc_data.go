package data

import (
	"github.com/udisondev/islesim/internal/config"
	"github.com/udisondev/islesim/internal/model"
)

// baseStats is the bottom layer of enemy stat resolution. Every kind
// inherits these values unless its own layer sets them.
var baseStats = model.EnemyStats{
	Health:         50,
	Damage:         5,
	AttackRange:    40,
	AttackRate:     1.5,
	Speed:          70,
	AggroRange:     180,
	PatrolRadius:   120,
	LeashDistance:  450,
	XPReward:       10,
	LootTableID:    "common",
	LootMultiplier: 1,
	PackAggro:      false,
	RespawnTime:    30,
}

// enemyDefs are the built-in kind layers.
var enemyDefs = map[model.EnemyKind]config.EnemyOverride{
	model.KindScout: {
		Health:     f64(40),
		Damage:     f64(4),
		Speed:      f64(90),
		AggroRange: f64(200),
		XPReward:   intp(8),
	},
	model.KindRaptor: {
		Health:        f64(65),
		Damage:        f64(9),
		AttackRate:    f64(1.1),
		Speed:         f64(120),
		AggroRange:    f64(220),
		LeashDistance: f64(520),
		XPReward:      intp(18),
		LootTableID:   str("raptor"),
		PackAggro:     boolp(true),
	},
	model.KindSpitter: {
		Health:      f64(45),
		Damage:      f64(7),
		AttackRange: f64(160),
		AttackRate:  f64(2),
		Speed:       f64(60),
		AggroRange:  f64(260),
		XPReward:    intp(15),
		LootTableID: str("spitter"),
		PackAggro:   boolp(true),
	},
	model.KindBrute: {
		Health:       f64(180),
		Damage:       f64(18),
		AttackRate:   f64(2.4),
		Speed:        f64(55),
		AggroRange:   f64(150),
		PatrolRadius: f64(80),
		XPReward:     intp(35),
		LootTableID:  str("brute"),
	},
	model.KindWarlord: {
		Health:         f64(1500),
		Damage:         f64(40),
		AttackRange:    f64(60),
		AttackRate:     f64(2),
		Speed:          f64(65),
		AggroRange:     f64(260),
		PatrolRadius:   f64(60),
		LeashDistance:  f64(600),
		XPReward:       intp(400),
		LootTableID:    str("warlord"),
		LootMultiplier: f64(1.5),
		PackAggro:      boolp(true),
		RespawnTime:    f64(300),
	},
}

// LootEntry is one item line of a loot table.
type LootEntry struct {
	ItemID string
	Weight int // weighted entries only
	Min    int
	Max    int
}

// LootTable holds guaranteed drops plus weighted rolls.
type LootTable struct {
	ID         string
	Guaranteed []LootEntry
	Weighted   []LootEntry
	Rolls      int
}

var lootDefs = []LootTable{
	{
		ID:         "common",
		Guaranteed: []LootEntry{{ItemID: "bone", Min: 1, Max: 2}},
		Weighted: []LootEntry{
			{ItemID: "hide", Weight: 60, Min: 1, Max: 1},
			{ItemID: "fang", Weight: 30, Min: 1, Max: 2},
			{ItemID: "amber", Weight: 10, Min: 1, Max: 1},
		},
		Rolls: 1,
	},
	{
		ID:         "raptor",
		Guaranteed: []LootEntry{{ItemID: "raptor_claw", Min: 1, Max: 2}},
		Weighted: []LootEntry{
			{ItemID: "hide", Weight: 50, Min: 1, Max: 2},
			{ItemID: "feather", Weight: 40, Min: 2, Max: 4},
			{ItemID: "amber", Weight: 10, Min: 1, Max: 1},
		},
		Rolls: 2,
	},
	{
		ID:         "spitter",
		Guaranteed: []LootEntry{{ItemID: "venom_sac", Min: 1, Max: 1}},
		Weighted: []LootEntry{
			{ItemID: "scale", Weight: 70, Min: 1, Max: 3},
			{ItemID: "amber", Weight: 30, Min: 1, Max: 1},
		},
		Rolls: 1,
	},
	{
		ID:         "brute",
		Guaranteed: []LootEntry{{ItemID: "thick_hide", Min: 2, Max: 3}},
		Weighted: []LootEntry{
			{ItemID: "bone", Weight: 50, Min: 2, Max: 4},
			{ItemID: "iron_ore", Weight: 50, Min: 1, Max: 2},
		},
		Rolls: 2,
	},
	{
		ID: "warlord",
		Guaranteed: []LootEntry{
			{ItemID: "warlord_crest", Min: 1, Max: 1},
			{ItemID: "amber", Min: 3, Max: 5},
		},
		Weighted: []LootEntry{
			{ItemID: "ancient_blade", Weight: 20, Min: 1, Max: 1},
			{ItemID: "thick_hide", Weight: 80, Min: 3, Max: 6},
		},
		Rolls: 3,
	},
}

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }
func str(v string) *string   { return &v }
func boolp(v bool) *bool     { return &v }
