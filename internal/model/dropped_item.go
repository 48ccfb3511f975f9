package model

// DroppedItem is an item lying on the ground: loot from a defeated enemy or
// a freshly crafted item placed in the world.
type DroppedItem struct {
	ID        uint32
	ItemID    string
	Amount    int
	Position  Vec2
	Region    GridPos
	Crafted   bool
	DropperID uint32 // enemy objectID for loot, 0 for crafted items
}

// EntityID implements arena indexing.
func (d *DroppedItem) EntityID() uint32 { return d.ID }

// HomeRegion implements arena indexing.
func (d *DroppedItem) HomeRegion() GridPos { return d.Region }

// GroupKey implements arena indexing.
func (d *DroppedItem) GroupKey() string { return "" }

// KindKey implements arena indexing.
func (d *DroppedItem) KindKey() string { return d.ItemID }

// ResourceKind is the closed set of harvestable node kinds.
type ResourceKind int32

const (
	ResourceTree ResourceKind = iota
	ResourceRock
	ResourceBush
	ResourceOre
)

// String returns resource kind name
func (k ResourceKind) String() string {
	switch k {
	case ResourceTree:
		return "tree"
	case ResourceRock:
		return "rock"
	case ResourceBush:
		return "bush"
	case ResourceOre:
		return "ore"
	default:
		return "unknown"
	}
}

// YieldItem returns the item a node of this kind yields.
func (k ResourceKind) YieldItem() string {
	switch k {
	case ResourceTree:
		return "wood"
	case ResourceRock:
		return "stone"
	case ResourceBush:
		return "berry"
	case ResourceOre:
		return "iron_ore"
	default:
		return ""
	}
}

// Resource is a harvestable node. Depleted nodes respawn through the same
// timer path as dead enemies.
type Resource struct {
	ID        uint32
	Kind      ResourceKind
	Region    GridPos
	Position  Vec2
	Amount    int
	MaxAmount int
	Depleted  bool
	Timer     *RespawnTimer
}

// EntityID implements arena indexing.
func (r *Resource) EntityID() uint32 { return r.ID }

// HomeRegion implements arena indexing.
func (r *Resource) HomeRegion() GridPos { return r.Region }

// GroupKey implements arena indexing.
func (r *Resource) GroupKey() string { return "" }

// KindKey implements arena indexing.
func (r *Resource) KindKey() string { return r.Kind.String() }

// Prop is a static decoration or NPC placed in a region.
type Prop struct {
	ID       uint32
	Kind     string
	Position Vec2
	Region   GridPos
}

// EntityID implements arena indexing.
func (p *Prop) EntityID() uint32 { return p.ID }

// HomeRegion implements arena indexing.
func (p *Prop) HomeRegion() GridPos { return p.Region }

// GroupKey implements arena indexing.
func (p *Prop) GroupKey() string { return "" }

// KindKey implements arena indexing.
func (p *Prop) KindKey() string { return p.Kind }

// Hero is the player entity as seen by the simulation. The core reads its
// position every tick and never moves it.
type Hero struct {
	ID       uint32
	Position Vec2
	Alive    bool
}
