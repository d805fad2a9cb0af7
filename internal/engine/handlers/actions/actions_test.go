package actions

import (
	"io"
	"math/rand"
	"os"
	"testing"

	"roguecore/internal/domain"
	"roguecore/internal/engine/handlers"
	"roguecore/internal/event"
	"roguecore/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitWithOutput(io.Discard)
	os.Exit(m.Run())
}

type visionSpy struct{ dirty int }

func (v *visionSpy) MarkDirty() { v.dirty++ }

type fixture struct {
	ctx    *handlers.Context
	hub    *handlers.Hub
	vision *visionSpy
}

func newFixture(m *domain.GridMap) *fixture {
	vision := &visionSpy{}
	hub := handlers.NewHub(0)
	Register(hub)
	hub.Freeze()
	return &fixture{
		ctx: &handlers.Context{
			World:  domain.NewWorld(m),
			Vision: vision,
			Rng:    rand.New(rand.NewSource(1)),
		},
		hub:    hub,
		vision: vision,
	}
}

func (f *fixture) spawn(a domain.Actor) *domain.Actor {
	return f.ctx.World.Actor(f.ctx.World.Spawn(a))
}

func (f *fixture) dispatch(t *testing.T, ev event.Event) (event.HandleResult, *event.Tree) {
	t.Helper()
	b := event.NewBuilder()
	res, err := f.hub.Dispatch(ev, f.ctx, b)
	require.NoError(t, err)
	return res, b.Build()
}

func names(tree *event.Tree) []string {
	var out []string
	for _, ev := range tree.Events() {
		out = append(out, ev.EventName())
	}
	return out
}

func hero(x, y int) domain.Actor {
	return domain.Actor{
		Type:   domain.ActorTypePlayer,
		Name:   "Герой",
		Pos:    domain.Position{X: x, Y: y},
		Render: &domain.RenderComponent{Glyph: '@'},
		Stats:  &domain.StatsComponent{HP: 30, MaxHP: 30, Strength: 6, Draughts: 1},
		AI:     &domain.AIComponent{},
	}
}

func monster(name string, x, y int, hostile bool) domain.Actor {
	return domain.Actor{
		Type:   domain.ActorTypeEnemy,
		Name:   name,
		Pos:    domain.Position{X: x, Y: y},
		Render: &domain.RenderComponent{Glyph: 'g'},
		Stats:  &domain.StatsComponent{HP: 10, MaxHP: 10, Strength: 3},
		AI:     &domain.AIComponent{IsHostile: hostile},
	}
}

func TestRegister_AllRules(t *testing.T) {
	f := newFixture(domain.NewGridMap(3, 3))
	assert.Equal(t, 10, f.hub.HandlerCount())
	assert.True(t, f.hub.HasHandler(domain.Walk{}))
	assert.False(t, f.hub.HasHandler(domain.RestOneTurn{}), "resting is an optional event")
}

func TestWalk_TurnsBeforeStepping(t *testing.T) {
	f := newFixture(domain.NewGridMap(5, 5))
	p := f.spawn(hero(2, 2))

	res, tree := f.dispatch(t, domain.Walk{Actor: p.ID, Dir: domain.DirSW})
	assert.True(t, res.IsTurnConsuming)
	assert.Equal(t, 3, res.Events)

	require.Equal(t, 1, tree.Len())
	assert.Equal(t, event.Node{Children: []event.Elem{
		event.Token{Event: domain.Walk{Actor: p.ID, Dir: domain.DirSW}},
		event.Node{Children: []event.Elem{
			event.Token{Event: domain.DirChange{Actor: p.ID, Dir: domain.DirSW}},
		}},
		event.Node{Children: []event.Elem{
			event.Token{Event: domain.PosChange{
				Actor: p.ID,
				From:  domain.Position{X: 2, Y: 2},
				To:    domain.Position{X: 1, Y: 3},
			}},
		}},
	}}, tree.Elems()[0])

	assert.Equal(t, domain.Position{X: 1, Y: 3}, p.Pos)
	assert.Equal(t, domain.DirSW, p.Dir)
	assert.Equal(t, domain.TimeCostMove, p.AI.NextActionTick)
	assert.Equal(t, 1, f.vision.dirty)
}

func TestWalk_NPCStepDoesNotDirtyVision(t *testing.T) {
	f := newFixture(domain.NewGridMap(5, 5))
	f.spawn(hero(0, 0))
	g := f.spawn(monster("Гоблин", 3, 3, true))

	f.dispatch(t, domain.Walk{Actor: g.ID, Dir: domain.DirN})
	assert.Equal(t, domain.Position{X: 3, Y: 2}, g.Pos)
	assert.Zero(t, f.vision.dirty)
}

func TestWalk_FriendlyBlocks(t *testing.T) {
	f := newFixture(domain.NewGridMap(5, 5))
	p := f.spawn(hero(1, 1))
	f.spawn(monster("Торговец", 2, 1, false))

	res, tree := f.dispatch(t, domain.Walk{Actor: p.ID, Dir: domain.DirE})
	assert.False(t, res.IsTurnConsuming)
	assert.Equal(t, []string{"Walk", "DirChange"}, names(tree))
	assert.Equal(t, domain.Position{X: 1, Y: 1}, p.Pos)
}

func TestWalk_StaleActorSkipped(t *testing.T) {
	f := newFixture(domain.NewGridMap(5, 5))
	g := f.spawn(monster("Гоблин", 1, 1, true))
	id := g.ID
	require.NoError(t, f.ctx.World.Despawn(id))

	res, tree := f.dispatch(t, domain.Walk{Actor: id, Dir: domain.DirE})
	assert.True(t, res.Handled)
	assert.Equal(t, []string{"Walk"}, names(tree))
}

func TestMeleeAttack_ProvokesPeacefulTarget(t *testing.T) {
	f := newFixture(domain.NewGridMap(5, 5))
	p := f.spawn(hero(1, 1))
	m := f.spawn(monster("Торговец", 2, 2, false))

	res, tree := f.dispatch(t, domain.MeleeAttack{Attacker: p.ID, Target: m.ID})
	assert.True(t, res.IsTurnConsuming)
	assert.Equal(t, []string{"MeleeAttack", "Hit", "GiveDamage"}, names(tree))
	assert.Equal(t, 4, m.Stats.HP)
	assert.True(t, m.AI.IsHostile)
	assert.Equal(t, domain.AIStateCombat, m.AI.State)
	assert.Equal(t, domain.TimeCostAttackLight, p.AI.NextActionTick)
}

func TestMeleeAttack_OutOfReach(t *testing.T) {
	f := newFixture(domain.NewGridMap(6, 6))
	p := f.spawn(hero(0, 0))
	g := f.spawn(monster("Гоблин", 3, 3, true))

	_, tree := f.dispatch(t, domain.MeleeAttack{Attacker: p.ID, Target: g.ID})
	assert.Equal(t, []string{"MeleeAttack"}, names(tree))
	assert.Equal(t, 10, g.Stats.HP)
	assert.Equal(t, domain.TimeCostAttackLight, p.AI.NextActionTick, "a swing costs time even when it misses")
}

func TestGiveDamage_KillOnlyOnce(t *testing.T) {
	f := newFixture(domain.NewGridMap(4, 4))
	p := f.spawn(hero(0, 0))
	g := f.spawn(monster("Гоблин", 1, 0, true))

	_, tree := f.dispatch(t, domain.GiveDamage{Source: p.ID, Target: g.ID, Amount: 50})
	assert.Equal(t, []string{"GiveDamage", "Death"}, names(tree))
	assert.False(t, g.IsAlive())
	assert.Equal(t, '%', g.Render.Glyph)
	assert.Equal(t, domain.AIStateIdle, g.AI.State)

	// Добивание трупа не рождает вторую смерть.
	_, tree = f.dispatch(t, domain.GiveDamage{Source: p.ID, Target: g.ID, Amount: 5})
	assert.Equal(t, []string{"GiveDamage"}, names(tree))
}

func TestHeal_CursedRedirectsToDamage(t *testing.T) {
	f := newFixture(domain.NewGridMap(3, 3))
	a := hero(1, 1)
	a.Stats.HP = 20
	a.Stats.IsCursed = true
	p := f.spawn(a)

	_, tree := f.dispatch(t, domain.UseHealingDraught{Actor: p.ID})
	assert.Equal(t, []string{"UseHealingDraught", "Heal", "GiveDamage", "Death"}, names(tree))
	assert.Equal(t, 0, p.Stats.HP)
	assert.True(t, p.Stats.IsDead)
	assert.Equal(t, 0, p.Stats.Draughts)
}

func TestHeal_CapsAtMax(t *testing.T) {
	f := newFixture(domain.NewGridMap(3, 3))
	a := hero(1, 1)
	a.Stats.HP = 25
	p := f.spawn(a)

	_, tree := f.dispatch(t, domain.UseHealingDraught{Actor: p.ID})
	assert.Equal(t, []string{"UseHealingDraught", "Heal"}, names(tree))
	assert.Equal(t, 30, p.Stats.HP)

	logs := f.ctx.World.DrainLogs()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Text, "5 HP")
}
