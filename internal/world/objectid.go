package world

import "sync/atomic"

// ObjectIDGenerator generates unique IDs for all world entities.
//
// ID ranges (convention):
//
//	0x00000000 - 0x0FFFFFFF: Reserved (0 = no target)
//	0x10000000 - 0x1FFFFFFF: Heroes
//	0x20000000 - 0x2FFFFFFF: Enemies
//	0x30000000 - 0x3FFFFFFF: Dropped items
//	0x40000000 - 0x4FFFFFFF: Resource nodes
//	0x50000000 - 0x5FFFFFFF: Props and decorations
type ObjectIDGenerator struct {
	nextHeroID     atomic.Uint32
	nextEnemyID    atomic.Uint32
	nextDropID     atomic.Uint32
	nextResourceID atomic.Uint32
	nextPropID     atomic.Uint32
}

// ID range starts.
const (
	HeroIDBase     uint32 = 0x10000000
	EnemyIDBase    uint32 = 0x20000000
	DropIDBase     uint32 = 0x30000000
	ResourceIDBase uint32 = 0x40000000
	PropIDBase     uint32 = 0x50000000
)

// NewObjectIDGenerator creates a new ID generator. Each simulation owns
// one so that runs with the same seed produce the same IDs.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextHeroID.Store(HeroIDBase)
	gen.nextEnemyID.Store(EnemyIDBase)
	gen.nextDropID.Store(DropIDBase)
	gen.nextResourceID.Store(ResourceIDBase)
	gen.nextPropID.Store(PropIDBase)
	return gen
}

// NextHeroID generates next hero ID.
func (g *ObjectIDGenerator) NextHeroID() uint32 { return g.nextHeroID.Add(1) }

// NextEnemyID generates next enemy ID.
func (g *ObjectIDGenerator) NextEnemyID() uint32 { return g.nextEnemyID.Add(1) }

// NextDropID generates next dropped item ID.
func (g *ObjectIDGenerator) NextDropID() uint32 { return g.nextDropID.Add(1) }

// NextResourceID generates next resource node ID.
func (g *ObjectIDGenerator) NextResourceID() uint32 { return g.nextResourceID.Add(1) }

// NextPropID generates next prop ID.
func (g *ObjectIDGenerator) NextPropID() uint32 { return g.nextPropID.Add(1) }

// IsEnemyID reports whether id falls in the enemy range.
func IsEnemyID(id uint32) bool {
	return id >= EnemyIDBase && id < DropIDBase
}
