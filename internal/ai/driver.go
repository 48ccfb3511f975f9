package ai

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/udisondev/islesim/internal/config"
	"github.com/udisondev/islesim/internal/event"
	"github.com/udisondev/islesim/internal/model"
	"github.com/udisondev/islesim/internal/world"
)

// Collision decides whether an entity may stand at a point.
// Implemented by *world.Grid.
type Collision interface {
	CanOccupy(p model.Vec2) bool
}

// Driver runs the enemy state machine over every live enemy in the arena:
//
//	WANDER → CHASE → ATTACK → LEASH_RETURN → WANDER
//
// All enemies see the same hero snapshot within one tick. Enemies forced
// into CHASE by a pack alert skip evaluation until the next tick.
type Driver struct {
	cfg     config.AIConfig
	enemies *world.Arena[*model.Enemy]
	grid    Collision
	pub     event.Publisher
	rng     *rand.Rand

	// alerted holds enemies pack-alerted during the current tick.
	alerted map[uint32]struct{}
}

// NewDriver creates the AI driver. nil grid allows movement everywhere,
// nil publisher drops events, nil rng uses a fixed seed.
func NewDriver(cfg config.AIConfig, enemies *world.Arena[*model.Enemy], grid Collision, pub event.Publisher, rng *rand.Rand) *Driver {
	if pub == nil {
		pub = event.Nop{}
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 1))
	}
	return &Driver{
		cfg:     cfg,
		enemies: enemies,
		grid:    grid,
		pub:     pub,
		rng:     rng,
		alerted: make(map[uint32]struct{}),
	}
}

// Tick advances every live enemy by dt seconds against the hero snapshot.
func (d *Driver) Tick(dt float64, hero model.Hero) {
	clear(d.alerted)

	evaluated := 0
	d.enemies.Each(func(e *model.Enemy) bool {
		if e.Dead {
			return true
		}
		if _, skip := d.alerted[e.ID]; skip {
			return true
		}
		d.step(e, dt, hero)
		evaluated++
		return true
	})

	if IsDebugEnabled() {
		slog.Debug("AI tick completed", "evaluated", evaluated, "alerted", len(d.alerted))
	}
}

// NotifyDamage makes a wandering enemy chase its attacker and alerts its
// pack. Returns false if the enemy is dead or already engaged.
func (d *Driver) NotifyDamage(e *model.Enemy, attackerID uint32) bool {
	if e.Dead || e.AI.State != model.StateWander || attackerID == 0 {
		return false
	}
	d.aggro(e, attackerID, false)
	return true
}

// Reset puts an enemy back into a fresh WANDER state. Called on respawn.
func (d *Driver) Reset(e *model.Enemy) {
	e.AI.Reset()
	d.rollWander(e)
}

func (d *Driver) step(e *model.Enemy, dt float64, hero model.Hero) {
	switch e.AI.State {
	case model.StateWander:
		d.wander(e, dt, hero)
	case model.StateChase:
		d.chase(e, dt, hero)
	case model.StateAttack:
		d.attack(e, dt, hero)
	case model.StateLeashReturn:
		d.leashReturn(e, dt)
	}
}

func (d *Driver) wander(e *model.Enemy, dt float64, hero model.Hero) {
	if hero.Alive && hero.ID != 0 && e.Position.Distance(hero.Position) <= e.Stats.AggroRange {
		d.aggro(e, hero.ID, false)
		return
	}

	e.AI.WanderTimer -= dt
	if e.AI.WanderTimer <= 0 {
		d.rollWander(e)
	}

	next := e.Position.Add(e.AI.WanderDir.Scale(e.Stats.Speed * dt))
	if next.Distance(e.Spawn) > e.Stats.PatrolRadius || !d.canOccupy(next) {
		e.AI.WanderDir = e.AI.WanderDir.Scale(-1)
		return
	}
	e.Position = next
}

func (d *Driver) chase(e *model.Enemy, dt float64, hero model.Hero) {
	target, ok := d.target(e, hero)
	if !ok {
		d.leash(e)
		return
	}
	if e.DistanceFromSpawn() > e.Stats.LeashDistance {
		d.leash(e)
		return
	}
	if e.Position.Distance(target) <= e.Stats.AttackRange {
		d.setState(e, model.StateAttack)
		return
	}

	next := e.Position.MoveToward(target, e.Stats.Speed*dt)
	if d.canOccupy(next) {
		e.Position = next
	}
}

func (d *Driver) attack(e *model.Enemy, dt float64, hero model.Hero) {
	target, ok := d.target(e, hero)
	if !ok {
		d.leash(e)
		return
	}
	if e.DistanceFromSpawn() > e.Stats.LeashDistance {
		d.leash(e)
		return
	}
	if e.Position.Distance(target) > e.Stats.AttackRange {
		d.setState(e, model.StateChase)
		return
	}

	e.AI.AttackCooldown -= dt
	if e.AI.AttackCooldown > 0 {
		return
	}
	e.AI.AttackCooldown = e.Stats.AttackRate
	d.pub.Publish(event.EnemyAttacked{
		EnemyID:  e.ID,
		TargetID: e.AI.Target,
		Damage:   e.Stats.Damage,
	})
}

func (d *Driver) leashReturn(e *model.Enemy, dt float64) {
	mult := d.cfg.LeashSpeedMultiplier
	if mult <= 0 {
		mult = 1
	}
	e.Position = e.Position.MoveToward(e.Spawn, e.Stats.Speed*mult*dt)
	if e.Position.Distance(e.Spawn) > d.cfg.ArrivalThreshold {
		return
	}

	e.Health = e.MaxHealth()
	e.AI.Target = 0
	e.AI.AttackCooldown = 0
	d.setState(e, model.StateWander)
	d.rollWander(e)
}

// aggro switches e to CHASE and, unless e itself was alerted, alerts
// wandering pack members within AlertRadius.
func (d *Driver) aggro(e *model.Enemy, targetID uint32, alerted bool) {
	e.AI.Target = targetID
	d.setState(e, model.StateChase)
	d.pub.Publish(event.EnemyAggroed{
		EnemyID:  e.ID,
		Kind:     e.Kind,
		TargetID: targetID,
		GroupID:  e.GroupID,
		Alerted:  alerted,
	})

	if alerted || !e.Stats.PackAggro || e.GroupID == "" {
		return
	}

	members := d.enemies.ByGroup(e.GroupID)
	if len(members) <= 1 {
		if IsDebugEnabled() {
			slog.Debug("pack alert without members", "enemyID", e.ID, "group", e.GroupID)
		}
		return
	}
	for _, m := range members {
		if m.ID == e.ID || m.Dead || m.AI.State != model.StateWander {
			continue
		}
		if m.Position.Distance(e.Position) > d.cfg.AlertRadius {
			continue
		}
		d.alerted[m.ID] = struct{}{}
		d.aggro(m, targetID, true)
	}
}

func (d *Driver) leash(e *model.Enemy) {
	dist := e.DistanceFromSpawn()
	d.setState(e, model.StateLeashReturn)
	d.pub.Publish(event.EnemyLeashed{
		EnemyID:  e.ID,
		Distance: dist,
		Spawn:    e.Spawn,
	})
}

// target returns the position of e's target when it is still valid.
func (d *Driver) target(e *model.Enemy, hero model.Hero) (model.Vec2, bool) {
	if e.AI.Target == 0 || e.AI.Target != hero.ID || !hero.Alive {
		return model.Vec2{}, false
	}
	return hero.Position, true
}

func (d *Driver) setState(e *model.Enemy, s model.AIState) {
	old := e.AI.State
	e.AI.State = s
	if old != s && IsDebugEnabled() {
		slog.Debug("enemy state changed",
			"enemyID", e.ID,
			"kind", e.Kind,
			"from", old,
			"to", s)
	}
}

func (d *Driver) rollWander(e *model.Enemy) {
	angle := d.rng.Float64() * 2 * math.Pi
	e.AI.WanderDir = model.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
	span := d.cfg.WanderMax - d.cfg.WanderMin
	e.AI.WanderTimer = d.cfg.WanderMin + d.rng.Float64()*max(span, 0)
}

func (d *Driver) canOccupy(p model.Vec2) bool {
	return d.grid == nil || d.grid.CanOccupy(p)
}
