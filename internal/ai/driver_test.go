package ai

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/islesim/internal/config"
	"github.com/udisondev/islesim/internal/event"
	"github.com/udisondev/islesim/internal/model"
	"github.com/udisondev/islesim/internal/world"
)

const heroID uint32 = 0x10000001

var testAI = config.AIConfig{
	AlertRadius:          150,
	ArrivalThreshold:     5,
	LeashSpeedMultiplier: 2,
	WanderMin:            1,
	WanderMax:            2,
}

type collisionFunc func(p model.Vec2) bool

func (f collisionFunc) CanOccupy(p model.Vec2) bool { return f(p) }

func newTestEnemy(id uint32, pos model.Vec2) *model.Enemy {
	stats := model.EnemyStats{
		Health:        50,
		Damage:        5,
		AttackRange:   20,
		AttackRate:    1,
		Speed:         50,
		AggroRange:    100,
		PatrolRadius:  100,
		LeashDistance: 300,
	}
	return &model.Enemy{
		ID:       id,
		Kind:     model.KindRaptor,
		Stats:    stats,
		Health:   stats.Health,
		Position: pos,
		Spawn:    pos,
		AI:       model.AI{State: model.StateWander, WanderTimer: 100},
	}
}

func newTestDriver(t *testing.T, grid Collision, enemies ...*model.Enemy) (*Driver, *event.Recorder) {
	t.Helper()
	arena := world.NewArena[*model.Enemy]()
	for _, e := range enemies {
		require.True(t, arena.Add(e))
	}
	rec := event.NewRecorder()
	return NewDriver(testAI, arena, grid, rec, rand.New(rand.NewPCG(7, 7))), rec
}

func hero(x, y float64) model.Hero {
	return model.Hero{ID: heroID, Position: model.Vec2{X: x, Y: y}, Alive: true}
}

func TestDriver_WanderToChase(t *testing.T) {
	e := newTestEnemy(1, model.Vec2{})
	d, rec := newTestDriver(t, nil, e)

	d.Tick(0.1, hero(80, 0))

	assert.Equal(t, model.StateChase, e.AI.State)
	assert.Equal(t, heroID, e.AI.Target)
	require.Equal(t, 1, rec.Count(event.TypeEnemyAggroed))
	ev := rec.OfType(event.TypeEnemyAggroed)[0].(event.EnemyAggroed)
	assert.False(t, ev.Alerted)
	assert.Equal(t, model.KindRaptor, ev.Kind)
}

func TestDriver_WanderIgnoresDeadOrDistantHero(t *testing.T) {
	tests := []struct {
		name string
		hero model.Hero
	}{
		{"out of aggro range", hero(150, 0)},
		{"dead hero in range", model.Hero{ID: heroID, Position: model.Vec2{X: 10}, Alive: false}},
		{"no hero", model.Hero{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnemy(1, model.Vec2{})
			d, rec := newTestDriver(t, nil, e)
			d.Tick(0.1, tt.hero)
			assert.Equal(t, model.StateWander, e.AI.State)
			assert.Zero(t, rec.Count(event.TypeEnemyAggroed))
		})
	}
}

func TestDriver_WanderReversesAtPatrolEdge(t *testing.T) {
	e := newTestEnemy(1, model.Vec2{})
	e.Position = model.Vec2{X: 99}
	e.AI.WanderDir = model.Vec2{X: 1}
	d, _ := newTestDriver(t, nil, e)

	d.Tick(0.1, model.Hero{})

	assert.Equal(t, model.Vec2{X: 99}, e.Position, "no step outside patrol radius")
	assert.Equal(t, model.Vec2{X: -1}, e.AI.WanderDir)

	d.Tick(0.1, model.Hero{})
	assert.InDelta(t, 94, e.Position.X, 1e-9, "walks back after reversal")
}

func TestDriver_WanderReversesWhenBlocked(t *testing.T) {
	e := newTestEnemy(1, model.Vec2{})
	e.AI.WanderDir = model.Vec2{Y: 1}
	wall := collisionFunc(func(p model.Vec2) bool { return p.Y <= 0 })
	d, _ := newTestDriver(t, wall, e)

	d.Tick(0.1, model.Hero{})

	assert.Equal(t, model.Vec2{}, e.Position)
	assert.Equal(t, model.Vec2{Y: -1}, e.AI.WanderDir)
}

func TestDriver_WanderRerollsDirection(t *testing.T) {
	e := newTestEnemy(1, model.Vec2{})
	e.AI.WanderTimer = 0.05
	d, _ := newTestDriver(t, nil, e)

	d.Tick(0.1, model.Hero{})

	assert.InDelta(t, 1, e.AI.WanderDir.Len(), 1e-9)
	assert.GreaterOrEqual(t, e.AI.WanderTimer, testAI.WanderMin)
	assert.LessOrEqual(t, e.AI.WanderTimer, testAI.WanderMax)
}

func TestDriver_ChaseMovesTowardTarget(t *testing.T) {
	e := newTestEnemy(1, model.Vec2{})
	e.AI.State = model.StateChase
	e.AI.Target = heroID
	d, _ := newTestDriver(t, nil, e)

	d.Tick(0.5, hero(100, 0))

	assert.Equal(t, model.StateChase, e.AI.State)
	assert.InDelta(t, 25, e.Position.X, 1e-9)
}

func TestDriver_ChaseSkipsBlockedStep(t *testing.T) {
	e := newTestEnemy(1, model.Vec2{})
	e.AI.State = model.StateChase
	e.AI.Target = heroID
	d, _ := newTestDriver(t, collisionFunc(func(model.Vec2) bool { return false }), e)

	d.Tick(0.5, hero(100, 0))

	assert.Equal(t, model.Vec2{}, e.Position)
	assert.Equal(t, model.StateChase, e.AI.State)
}

func TestDriver_Transitions(t *testing.T) {
	tests := []struct {
		name     string
		state    model.AIState
		position model.Vec2
		hero     model.Hero
		want     model.AIState
	}{
		{"chase to attack in range", model.StateChase, model.Vec2{}, hero(15, 0), model.StateAttack},
		{"chase leashes past leash distance", model.StateChase, model.Vec2{X: 301}, hero(400, 0), model.StateLeashReturn},
		{"chase leashes on dead target", model.StateChase, model.Vec2{}, model.Hero{ID: heroID}, model.StateLeashReturn},
		{"attack to chase out of range", model.StateAttack, model.Vec2{}, hero(50, 0), model.StateChase},
		{"attack leashes on missing target", model.StateAttack, model.Vec2{}, model.Hero{}, model.StateLeashReturn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnemy(1, model.Vec2{})
			e.Position = tt.position
			e.AI.State = tt.state
			e.AI.Target = heroID
			d, _ := newTestDriver(t, nil, e)

			d.Tick(0.1, tt.hero)

			assert.Equal(t, tt.want, e.AI.State)
		})
	}
}

func TestDriver_LeashWinsOverAttack(t *testing.T) {
	e := newTestEnemy(1, model.Vec2{})
	e.Position = model.Vec2{X: 320}
	e.AI.State = model.StateAttack
	e.AI.Target = heroID
	d, rec := newTestDriver(t, nil, e)

	d.Tick(0.1, hero(330, 0))

	assert.Equal(t, model.StateLeashReturn, e.AI.State)
	assert.Zero(t, rec.Count(event.TypeEnemyAttacked), "no hit once leashed")
	require.Equal(t, 1, rec.Count(event.TypeEnemyLeashed))
	ev := rec.OfType(event.TypeEnemyLeashed)[0].(event.EnemyLeashed)
	assert.InDelta(t, 320, ev.Distance, 1e-9)
}

func TestDriver_AttackCooldown(t *testing.T) {
	e := newTestEnemy(1, model.Vec2{})
	e.AI.State = model.StateAttack
	e.AI.Target = heroID
	d, rec := newTestDriver(t, nil, e)
	h := hero(10, 0)

	d.Tick(0.1, h)
	require.Equal(t, 1, rec.Count(event.TypeEnemyAttacked), "first hit lands immediately")
	assert.Equal(t, e.Stats.AttackRate, e.AI.AttackCooldown)

	d.Tick(0.5, h)
	assert.Equal(t, 1, rec.Count(event.TypeEnemyAttacked))

	d.Tick(0.5, h)
	assert.Equal(t, 2, rec.Count(event.TypeEnemyAttacked))

	ev := rec.OfType(event.TypeEnemyAttacked)[1].(event.EnemyAttacked)
	assert.Equal(t, heroID, ev.TargetID)
	assert.Equal(t, 5.0, ev.Damage)
}

func TestDriver_LeashReturn(t *testing.T) {
	t.Run("moves at leash speed ignoring collision", func(t *testing.T) {
		e := newTestEnemy(1, model.Vec2{})
		e.Position = model.Vec2{X: 100}
		e.AI.State = model.StateLeashReturn
		d, _ := newTestDriver(t, collisionFunc(func(model.Vec2) bool { return false }), e)

		d.Tick(0.5, hero(110, 0))

		assert.InDelta(t, 50, e.Position.X, 1e-9)
		assert.Equal(t, model.StateLeashReturn, e.AI.State, "no aggro while returning")
	})

	t.Run("arrival restores health", func(t *testing.T) {
		e := newTestEnemy(1, model.Vec2{})
		e.Position = model.Vec2{X: 20}
		e.Health = 3
		e.AI.State = model.StateLeashReturn
		e.AI.Target = heroID
		d, _ := newTestDriver(t, nil, e)

		d.Tick(0.5, model.Hero{})

		assert.Equal(t, model.StateWander, e.AI.State)
		assert.Equal(t, e.MaxHealth(), e.Health)
		assert.Zero(t, e.AI.Target)
		assert.Equal(t, model.Vec2{}, e.Position)
	})
}

func TestDriver_PackAlert(t *testing.T) {
	a := newTestEnemy(1, model.Vec2{})
	b := newTestEnemy(2, model.Vec2{X: -120})
	far := newTestEnemy(3, model.Vec2{X: -400})
	engaged := newTestEnemy(4, model.Vec2{X: -50})
	engaged.AI.State = model.StateLeashReturn
	engaged.Spawn = model.Vec2{X: -50, Y: 200}
	for _, e := range []*model.Enemy{a, b, far, engaged} {
		e.GroupID = "pack-1"
		e.Stats.PackAggro = true
	}
	other := newTestEnemy(5, model.Vec2{X: -60})
	other.GroupID = "pack-2"

	d, rec := newTestDriver(t, nil, a, b, far, engaged, other)

	// Hero is inside a's aggro range only.
	d.Tick(0.1, hero(90, 0))

	assert.Equal(t, model.StateChase, a.AI.State)
	assert.Equal(t, model.StateChase, b.AI.State, "alerted on the same tick")
	assert.Equal(t, heroID, b.AI.Target)
	assert.Equal(t, model.Vec2{X: -120}, b.Position, "alerted entity does not act this tick")

	assert.Equal(t, model.StateWander, far.AI.State, "outside alert radius")
	assert.Equal(t, model.StateLeashReturn, engaged.AI.State, "only wandering members are alerted")
	assert.Equal(t, model.StateWander, other.AI.State, "different group")

	aggroed := rec.OfType(event.TypeEnemyAggroed)
	require.Len(t, aggroed, 2)
	assert.True(t, aggroed[1].(event.EnemyAggroed).Alerted)

	d.Tick(0.1, hero(90, 0))
	assert.Greater(t, b.Position.X, -120.0, "alerted entity chases on the next tick")
}

func TestDriver_NoPackAlertWithoutPackAggro(t *testing.T) {
	a := newTestEnemy(1, model.Vec2{})
	b := newTestEnemy(2, model.Vec2{X: -120})
	a.GroupID, b.GroupID = "g", "g"
	d, _ := newTestDriver(t, nil, a, b)

	d.Tick(0.1, hero(90, 0))

	assert.Equal(t, model.StateChase, a.AI.State)
	assert.Equal(t, model.StateWander, b.AI.State)
}

func TestDriver_NotifyDamage(t *testing.T) {
	a := newTestEnemy(1, model.Vec2{})
	b := newTestEnemy(2, model.Vec2{X: 40})
	a.GroupID, b.GroupID = "g", "g"
	a.Stats.PackAggro = true
	d, rec := newTestDriver(t, nil, a, b)

	assert.True(t, d.NotifyDamage(a, heroID))
	assert.Equal(t, model.StateChase, a.AI.State)
	assert.Equal(t, model.StateChase, b.AI.State)
	assert.Equal(t, 2, rec.Count(event.TypeEnemyAggroed))

	assert.False(t, d.NotifyDamage(a, heroID), "already engaged")

	dead := newTestEnemy(3, model.Vec2{})
	dead.Dead = true
	assert.False(t, d.NotifyDamage(dead, heroID))
}

func TestDriver_SkipsDead(t *testing.T) {
	e := newTestEnemy(1, model.Vec2{})
	e.Dead = true
	d, rec := newTestDriver(t, nil, e)

	d.Tick(0.1, hero(10, 0))

	assert.Equal(t, model.StateWander, e.AI.State)
	assert.Empty(t, rec.Events())
}

func TestDriver_Reset(t *testing.T) {
	e := newTestEnemy(1, model.Vec2{})
	e.AI = model.AI{State: model.StateAttack, Target: heroID, AttackCooldown: 0.4}
	d, _ := newTestDriver(t, nil, e)

	d.Reset(e)

	assert.Equal(t, model.StateWander, e.AI.State)
	assert.Zero(t, e.AI.Target)
	assert.Zero(t, e.AI.AttackCooldown)
	assert.GreaterOrEqual(t, e.AI.WanderTimer, testAI.WanderMin)
}
