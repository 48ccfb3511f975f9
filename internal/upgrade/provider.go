// Package upgrade tracks per-region progression tiers bought by the player
// and translates them into population targets, auto-collect chances and
// respawn durations.
package upgrade

import (
	"cmp"
	"log/slog"
	"slices"
	"sync"

	"github.com/udisondev/islesim/internal/config"
	"github.com/udisondev/islesim/internal/model"
)

// Provider maps region tiers to upgrade state. Safe for concurrent use.
type Provider struct {
	tiers    []config.UpgradeTier // sorted by Tier
	fallback model.Upgrade

	mu     sync.RWMutex
	levels map[model.GridPos]int // index into tiers
}

// NewProvider creates provider from the tier table. Regions start at the
// lowest tier. With an empty table every region gets the fallback built
// from population and respawn defaults.
func NewProvider(tiers []config.UpgradeTier, pop config.PopulationConfig, respawn config.RespawnConfig) *Provider {
	sorted := slices.Clone(tiers)
	slices.SortFunc(sorted, func(a, b config.UpgradeTier) int { return cmp.Compare(a.Tier, b.Tier) })

	return &Provider{
		tiers: sorted,
		fallback: model.Upgrade{
			SlotTarget:     pop.BaseSlotTarget,
			RespawnSeconds: respawn.BaseSeconds,
		},
		levels: make(map[model.GridPos]int),
	}
}

// RegionUpgrade returns the current upgrade state of region (gx, gy).
func (p *Provider) RegionUpgrade(gx, gy int) model.Upgrade {
	if len(p.tiers) == 0 {
		return p.fallback
	}
	p.mu.RLock()
	idx := p.levels[model.GridPos{X: gx, Y: gy}]
	p.mu.RUnlock()
	return p.upgradeAt(idx)
}

// Tier returns the tier number of region (gx, gy).
func (p *Provider) Tier(gx, gy int) int {
	return p.RegionUpgrade(gx, gy).Tier
}

// NextCost returns the price of the next tier. false at max tier.
func (p *Provider) NextCost(gx, gy int) (int, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	next := p.levels[model.GridPos{X: gx, Y: gy}] + 1
	if next >= len(p.tiers) {
		return 0, false
	}
	return p.tiers[next].Cost, true
}

// Purchase raises region (gx, gy) by one tier. Returns the new state and
// false when already at max tier.
func (p *Provider) Purchase(gx, gy int) (model.Upgrade, bool) {
	pos := model.GridPos{X: gx, Y: gy}

	p.mu.Lock()
	next := p.levels[pos] + 1
	if next >= len(p.tiers) {
		p.mu.Unlock()
		return p.RegionUpgrade(gx, gy), false
	}
	p.levels[pos] = next
	p.mu.Unlock()

	up := p.upgradeAt(next)
	slog.Info("region upgraded",
		"gridX", gx,
		"gridY", gy,
		"tier", up.Tier,
		"slotTarget", up.SlotTarget,
		"respawnSeconds", up.RespawnSeconds)
	return up, true
}

// SetTier forces region (gx, gy) to tier. Returns false for unknown tiers.
func (p *Provider) SetTier(gx, gy, tier int) bool {
	idx := slices.IndexFunc(p.tiers, func(t config.UpgradeTier) bool { return t.Tier == tier })
	if idx < 0 {
		return false
	}
	p.mu.Lock()
	p.levels[model.GridPos{X: gx, Y: gy}] = idx
	p.mu.Unlock()
	return true
}

func (p *Provider) upgradeAt(idx int) model.Upgrade {
	t := p.tiers[idx]
	up := model.Upgrade{
		Tier:              t.Tier,
		SlotTarget:        t.SlotTarget,
		AutoCollectChance: t.AutoCollectChance,
		RespawnSeconds:    t.RespawnSeconds,
	}
	if up.SlotTarget <= 0 {
		up.SlotTarget = p.fallback.SlotTarget
	}
	if up.RespawnSeconds <= 0 {
		up.RespawnSeconds = p.fallback.RespawnSeconds
	}
	return up
}
