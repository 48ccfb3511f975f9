package model

import "fmt"

// RegionKind distinguishes the home region from the rest.
type RegionKind int32

const (
	// RegionNormal - regular unlockable region
	RegionNormal RegionKind = iota
	// RegionHome - starting region, always unlocked
	RegionHome
)

// String returns human-readable region kind
func (k RegionKind) String() string {
	switch k {
	case RegionHome:
		return "home"
	case RegionNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// RegionCategory decides what a region is populated with.
type RegionCategory int32

const (
	CategoryHome RegionCategory = iota
	CategoryResource
	CategoryEnemy
	CategoryBoss
)

// String returns category name as used in config.
func (c RegionCategory) String() string {
	switch c {
	case CategoryHome:
		return "home"
	case CategoryResource:
		return "resource"
	case CategoryEnemy:
		return "enemy"
	case CategoryBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// HasEnemies reports whether the category is populated with hostiles.
func (c RegionCategory) HasEnemies() bool {
	return c == CategoryEnemy || c == CategoryBoss
}

// ParseRegionCategory parses config category name.
func ParseRegionCategory(s string) (RegionCategory, error) {
	switch s {
	case "home":
		return CategoryHome, nil
	case "resource", "":
		return CategoryResource, nil
	case "enemy":
		return CategoryEnemy, nil
	case "boss":
		return CategoryBoss, nil
	default:
		return 0, fmt.Errorf("unknown region category %q", s)
	}
}

// Region is one cell of the world grid.
// Geometry is immutable; Unlocked flips false→true once and never reverts.
type Region struct {
	Pos        GridPos
	Name       string
	Kind       RegionKind
	Category   RegionCategory
	Unlocked   bool
	UnlockCost int
	Level      int
	Roster     []EnemyKind
	Boss       EnemyKind // KindNone unless Category == CategoryBoss

	WorldX float64
	WorldY float64
	Width  float64
	Height float64
}

// Bounds returns the full region footprint.
func (r *Region) Bounds() Rect {
	return NewRect(r.WorldX, r.WorldY, r.Width, r.Height)
}

// Center returns the footprint centre.
func (r *Region) Center() Vec2 {
	return r.Bounds().Center()
}

// IsHome reports whether this is the home region.
func (r *Region) IsHome() bool {
	return r.Kind == RegionHome
}

// Orientation of a bridge.
type Orientation int32

const (
	// Horizontal bridges connect (x, y) with (x+1, y).
	Horizontal Orientation = iota
	// Vertical bridges connect (x, y) with (x, y+1).
	Vertical
)

// String returns orientation name
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Bridge connects two orthogonally adjacent regions across the water gap.
// Derived from region geometry, never persisted.
type Bridge struct {
	Rect        Rect
	Orientation Orientation
	From        GridPos
	To          GridPos
}

// ZoneKind tags a walkable zone.
type ZoneKind int32

const (
	ZoneRegion ZoneKind = iota
	ZoneBridge
)

// String returns zone kind name
func (k ZoneKind) String() string {
	if k == ZoneBridge {
		return "bridge"
	}
	return "region"
}

// Zone is a walkable rectangle.
type Zone struct {
	Rect   Rect
	Kind   ZoneKind
	Region GridPos
}

// Block is an obstruction rectangle.
type Block struct {
	Rect   Rect
	Region GridPos
}

// Upgrade is the progression state of a region as seen by the simulation.
type Upgrade struct {
	Tier              int
	SlotTarget        int
	AutoCollectChance float64
	RespawnSeconds    float64
}
