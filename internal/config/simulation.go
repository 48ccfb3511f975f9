package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// GridConfig describes the rows×cols island layout.
type GridConfig struct {
	Rows           int          `yaml:"rows"`
	Cols           int          `yaml:"cols"`
	RegionSize     float64      `yaml:"region_size"`    // square region edge in world units
	WaterGap       float64      `yaml:"water_gap"`      // water between neighbouring regions
	WallThickness  float64      `yaml:"wall_thickness"` // perimeter wall inset
	BridgeOverlap  float64      `yaml:"bridge_overlap"` // how far bridges reach into each region
	HomeX          int          `yaml:"home_x"`
	HomeY          int          `yaml:"home_y"`
	BaseUnlockCost int          `yaml:"base_unlock_cost"`
	Regions        []RegionSpec `yaml:"regions"`
}

// RegionSpec overrides name, category and enemy roster for one grid cell.
type RegionSpec struct {
	X          int      `yaml:"x"`
	Y          int      `yaml:"y"`
	Name       string   `yaml:"name"`
	Category   string   `yaml:"category"` // home | resource | enemy | boss
	UnlockCost int      `yaml:"unlock_cost"`
	Roster     []string `yaml:"roster"` // enemy kinds spawned in this region
	Boss       string   `yaml:"boss"`   // boss kind for boss regions
	Level      int      `yaml:"level"`
}

// AIConfig holds enemy state machine tuning.
type AIConfig struct {
	AlertRadius          float64 `yaml:"alert_radius"`
	ArrivalThreshold     float64 `yaml:"arrival_threshold"`
	LeashSpeedMultiplier float64 `yaml:"leash_speed_multiplier"`
	WanderMin            float64 `yaml:"wander_min"` // seconds
	WanderMax            float64 `yaml:"wander_max"` // seconds
}

// RespawnConfig holds fallback respawn durations (seconds), used when no
// upgrade provider is wired.
type RespawnConfig struct {
	BaseSeconds     float64 `yaml:"base_seconds"`
	ResourceSeconds float64 `yaml:"resource_seconds"`
}

// EliteConfig holds elite roll chance and stat multipliers.
type EliteConfig struct {
	Chance float64 `yaml:"chance"`
	Health float64 `yaml:"health"`
	Damage float64 `yaml:"damage"`
	XP     float64 `yaml:"xp"`
	Loot   float64 `yaml:"loot"`
}

// PopulationConfig holds region population defaults.
type PopulationConfig struct {
	BaseSlotTarget       int     `yaml:"base_slot_target"`
	GroupSize            int     `yaml:"group_size"`
	GroupSpread          float64 `yaml:"group_spread"`
	ResourceAmount       int     `yaml:"resource_amount"`
	DecorationsPerRegion int     `yaml:"decorations_per_region"`
}

// UpgradeTier is one row of the region upgrade table.
type UpgradeTier struct {
	Tier              int     `yaml:"tier"`
	SlotTarget        int     `yaml:"slot_target"`
	AutoCollectChance float64 `yaml:"auto_collect_chance"`
	RespawnSeconds    float64 `yaml:"respawn_seconds"`
	Cost              int     `yaml:"cost"`
}

// EnemyOverride overrides built-in enemy kind stats. Nil fields keep the
// built-in value.
type EnemyOverride struct {
	Health         *float64 `yaml:"health"`
	Damage         *float64 `yaml:"damage"`
	AttackRange    *float64 `yaml:"attack_range"`
	AttackRate     *float64 `yaml:"attack_rate"`
	Speed          *float64 `yaml:"speed"`
	AggroRange     *float64 `yaml:"aggro_range"`
	PatrolRadius   *float64 `yaml:"patrol_radius"`
	LeashDistance  *float64 `yaml:"leash_distance"`
	XPReward       *int     `yaml:"xp_reward"`
	LootTableID    *string  `yaml:"loot_table"`
	LootMultiplier *float64 `yaml:"loot_multiplier"`
	PackAggro      *bool    `yaml:"pack_aggro"`
	RespawnTime    *float64 `yaml:"respawn_time"`
}

// LootConfig tunes the loot generator.
type LootConfig struct {
	LevelScale float64 `yaml:"level_scale"` // amount bonus per level above 1
}

// Simulation holds all configuration for the simulation process.
type Simulation struct {
	LogLevel     string        `yaml:"log_level"`
	TickInterval time.Duration `yaml:"tick_interval"`
	Seed         uint64        `yaml:"seed"`

	Grid       GridConfig               `yaml:"grid"`
	AI         AIConfig                 `yaml:"ai"`
	Respawn    RespawnConfig            `yaml:"respawn"`
	Elite      EliteConfig              `yaml:"elite"`
	Population PopulationConfig         `yaml:"population"`
	Upgrades   []UpgradeTier            `yaml:"upgrades"`
	Enemies    map[string]EnemyOverride `yaml:"enemies"`
	Loot       LootConfig               `yaml:"loot"`

	Storage StorageConfig `yaml:"storage"`
	NATS    NATSConfig    `yaml:"nats"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// DefaultSimulation returns Simulation config with sensible defaults:
// a 3×3 archipelago with home at the bottom centre.
func DefaultSimulation() Simulation {
	return Simulation{
		LogLevel:     "info",
		TickInterval: 100 * time.Millisecond,
		Seed:         1,
		Grid: GridConfig{
			Rows:           3,
			Cols:           3,
			RegionSize:     800,
			WaterGap:       160,
			WallThickness:  24,
			BridgeOverlap:  40,
			HomeX:          1,
			HomeY:          2,
			BaseUnlockCost: 100,
			Regions: []RegionSpec{
				{X: 0, Y: 0, Name: "Ashen Peaks", Category: "boss", UnlockCost: 1200, Boss: "warlord", Roster: []string{"brute", "raptor"}, Level: 8},
				{X: 1, Y: 0, Name: "Fang Hollow", Category: "enemy", UnlockCost: 800, Roster: []string{"raptor", "spitter"}, Level: 6},
				{X: 2, Y: 0, Name: "Deep Quarry", Category: "resource", UnlockCost: 700},
				{X: 0, Y: 1, Name: "Thornwood", Category: "enemy", UnlockCost: 400, Roster: []string{"scout", "raptor"}, Level: 3},
				{X: 1, Y: 1, Name: "Old Grove", Category: "resource", UnlockCost: 250},
				{X: 2, Y: 1, Name: "Marsh Reach", Category: "enemy", UnlockCost: 450, Roster: []string{"spitter", "scout"}, Level: 4},
				{X: 0, Y: 2, Name: "Pebble Shore", Category: "resource", UnlockCost: 150},
				{X: 1, Y: 2, Name: "Homestead", Category: "home"},
				{X: 2, Y: 2, Name: "Bramble Flats", Category: "enemy", UnlockCost: 200, Roster: []string{"scout"}, Level: 1},
			},
		},
		AI: AIConfig{
			AlertRadius:          300,
			ArrivalThreshold:     8,
			LeashSpeedMultiplier: 1.6,
			WanderMin:            1.5,
			WanderMax:            4,
		},
		Respawn: RespawnConfig{
			BaseSeconds:     30,
			ResourceSeconds: 20,
		},
		Elite: EliteConfig{
			Chance: 0.08,
			Health: 2.5,
			Damage: 1.5,
			XP:     3,
			Loot:   2,
		},
		Population: PopulationConfig{
			BaseSlotTarget:       4,
			GroupSize:            3,
			GroupSpread:          60,
			ResourceAmount:       5,
			DecorationsPerRegion: 6,
		},
		Upgrades: []UpgradeTier{
			{Tier: 0, SlotTarget: 4, AutoCollectChance: 0, RespawnSeconds: 30},
			{Tier: 1, SlotTarget: 6, AutoCollectChance: 0.1, RespawnSeconds: 24, Cost: 200},
			{Tier: 2, SlotTarget: 8, AutoCollectChance: 0.2, RespawnSeconds: 18, Cost: 500},
			{Tier: 3, SlotTarget: 10, AutoCollectChance: 0.35, RespawnSeconds: 12, Cost: 1200},
		},
		Loot: LootConfig{
			LevelScale: 0.1,
		},
		Storage: DefaultStorage(),
		NATS: NATSConfig{
			SubjectPrefix: "islesim.events",
			Source:        "islesim",
			FlushTimeout:  2 * time.Second,
		},
		Metrics: MetricsConfig{
			Addr: ":9102",
			Path: "/metrics",
		},
	}
}

// LoadSimulation loads simulation config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks structural constraints the simulation relies on.
func (c Simulation) Validate() error {
	g := c.Grid
	if g.Rows <= 0 || g.Cols <= 0 {
		return fmt.Errorf("grid must have positive rows and cols, got %dx%d", g.Rows, g.Cols)
	}
	if g.HomeX < 0 || g.HomeX >= g.Cols || g.HomeY < 0 || g.HomeY >= g.Rows {
		return fmt.Errorf("home region (%d,%d) outside %dx%d grid", g.HomeX, g.HomeY, g.Rows, g.Cols)
	}
	if g.RegionSize <= 0 {
		return fmt.Errorf("region_size must be positive, got %v", g.RegionSize)
	}
	if g.WallThickness*2 >= g.RegionSize {
		return fmt.Errorf("wall_thickness %v too large for region_size %v", g.WallThickness, g.RegionSize)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %v", c.TickInterval)
	}
	if c.AI.WanderMax < c.AI.WanderMin {
		return fmt.Errorf("ai.wander_max %v < ai.wander_min %v", c.AI.WanderMax, c.AI.WanderMin)
	}
	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres, StorageRedis:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
