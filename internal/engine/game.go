package engine

import (
	"fmt"
	"math/rand"

	"roguecore/internal/domain"
	"roguecore/internal/engine/handlers"
	"roguecore/internal/engine/handlers/actions"
	"roguecore/internal/event"
	"roguecore/internal/shadow"
	"roguecore/internal/systems"
	"roguecore/pkg/dungeon"
	"roguecore/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Game - один запущенный уровень: мир, правила, очередь ходов и тень.
// Реализует System для Tick. Однопоточный: всё вызывается из одного цикла.
type Game struct {
	Config Config
	World  *domain.World
	Shadow *shadow.Shadow
	Turns  *TurnManager
	Rng    *rand.Rand

	hub       *handlers.Hub
	ctx       *handlers.Context
	commands  []domain.Command
	turnStart int // NextActionTick актора в начале его хода
	log       *logrus.Entry
}

// NewGame собирает игру вокруг готового мира. Все акторы мира с AI
// попадают в очередь ходов.
func NewGame(cfg Config, world *domain.World) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	width, height := world.Map.Size()
	sh := shadow.New(width, height, shadow.Config{
		Radius:     fovRadius(cfg, world.PlayerActor()),
		Transition: cfg.TransitionSeconds,
	})

	hub := handlers.NewHub(cfg.MaxCascadeDepth)
	actions.Register(hub)
	hub.Freeze()

	rng := rand.New(rand.NewSource(cfg.Seed))

	g := &Game{
		Config: cfg,
		World:  world,
		Shadow: sh,
		Turns:  NewTurnManager(),
		Rng:    rng,
		hub:    hub,
		ctx: &handlers.Context{
			World:  world,
			Vision: sh,
			Rng:    rng,
		},
		log: logger.Component("game").WithField("seed", cfg.Seed),
	}

	for _, a := range world.Actors() {
		g.Turns.AddActor(a)
	}
	sh.MarkDirty()

	g.log.WithFields(logrus.Fields{
		"actors":   g.Turns.Len(),
		"handlers": hub.HandlerCount(),
		"radius":   sh.Radius(),
		"width":    width,
		"height":   height,
	}).Info("Game created.")
	return g, nil
}

// fovRadius - радиус тени: явный из конфига или зрение игрока.
func fovRadius(cfg Config, player *domain.Actor) int {
	if cfg.FovRadius != FovFromActor {
		return cfg.FovRadius
	}
	if player == nil {
		return domain.VisionRadius
	}
	return player.VisionRadius()
}

// NewGameFromLevel спавнит игрока и акторов уровня в новый мир.
func NewGameFromLevel(cfg Config, level dungeon.Level) (*Game, error) {
	world := domain.NewWorld(level.Map)
	world.Spawn(dungeon.CreatePlayer("", level.Start))
	for _, a := range level.Actors {
		world.Spawn(a)
	}
	return NewGame(cfg, world)
}

// NewDungeonGame генерирует подземелье глубины depth из сида конфига.
// Сид уровня N = Seed + N.
func NewDungeonGame(cfg Config, depth int) (*Game, error) {
	level := dungeon.Generate(depth, rand.New(rand.NewSource(cfg.Seed+int64(depth))))
	return NewGameFromLevel(cfg, level)
}

// Spawn добавляет актора в мир посреди игры. Ходить он начнет с текущего тика.
func (g *Game) Spawn(a domain.Actor) domain.ActorID {
	if a.AI != nil && a.AI.NextActionTick < g.World.GlobalTick {
		a.AI.NextActionTick = g.World.GlobalTick
	}
	id := g.World.Spawn(a)
	g.Turns.AddActor(g.World.Actor(id))
	return id
}

// QueueCommand кладет команду игрока в очередь. Tick её заберет
// в ближайший ход игрока.
func (g *Game) QueueCommand(cmd domain.Command) {
	g.commands = append(g.commands, cmd)
}

// PendingCommands - сколько команд ждет своей очереди.
func (g *Game) PendingCommands() int {
	return len(g.commands)
}

// Tick - один проход Tick с лимитом шагов из конфига.
func (g *Game) Tick() (TickResult, error) {
	return Tick(g, g.Config.MaxStepsPerTick)
}

// Update - кадр рендерера: пересчет видимости при необходимости
// и продвижение перехода.
func (g *Game) Update(dt float32) {
	// Зрение игрока могло измениться между кадрами.
	g.Shadow.SetRadius(fovRadius(g.Config, g.World.PlayerActor()))
	g.Shadow.PostUpdate(dt, g.World.Map, g.viewerPos())
}

func (g *Game) viewerPos() domain.Position {
	if p := g.World.PlayerActor(); p != nil {
		return p.Pos
	}
	w, h := g.World.Map.Size()
	return domain.Position{X: w / 2, Y: h / 2}
}

// --- System ---

// NextActor - актор с наименьшим NextActionTick. Трупы NPC и
// исчезнувшие акторы по дороге выбрасываются из очереди, мертвый
// игрок остается: его ход вернет PlayerDied.
func (g *Game) NextActor() (domain.ActorID, bool) {
	for {
		item := g.Turns.PeekNext()
		if item == nil {
			return domain.NilActorID, false
		}
		a := g.World.Actor(item.Actor)
		if a == nil || (!a.IsAlive() && !a.IsPlayer()) {
			g.Turns.RemoveActor(item.Actor)
			continue
		}
		g.World.GlobalTick = item.Priority
		return item.Actor, true
	}
}

// TakeTurn - решение актора: команда игрока из очереди или решение AI.
func (g *Game) TakeTurn(id domain.ActorID) Action {
	a := g.World.Actor(id)
	if a == nil {
		return Do(domain.RestOneTurn{Actor: id})
	}
	if a.AI != nil {
		g.turnStart = a.AI.NextActionTick
	}
	if a.IsPlayer() {
		return g.playerAction(a)
	}
	return g.npcAction(a)
}

func (g *Game) playerAction(p *domain.Actor) Action {
	if !p.IsAlive() {
		return Stop(domain.PlayerDied{Actor: p.ID})
	}

	for len(g.commands) > 0 {
		cmd := g.commands[0]
		g.commands = g.commands[1:]

		switch cmd.Action {
		case domain.ActionWalk:
			return Do(domain.Walk{Actor: p.ID, Dir: cmd.Dir})
		case domain.ActionWait:
			return Do(domain.RestOneTurn{Actor: p.ID})
		case domain.ActionDrink:
			return Do(domain.UseHealingDraught{Actor: p.ID})
		case domain.ActionAttack:
			if target := g.World.ActorAt(p.Pos.Step(cmd.Dir)); target != nil {
				return Do(domain.MeleeAttack{Attacker: p.ID, Target: target.ID})
			}
			g.World.AddLog("Вы бьете воздух.", domain.MsgInfo)
			return Do(domain.RestOneTurn{Actor: p.ID})
		default:
			g.log.WithField("action", cmd.Action).Warn("Unknown player command dropped.")
		}
	}

	return Stop(domain.AwaitPlayerInput{Actor: p.ID})
}

func (g *Game) npcAction(npc *domain.Actor) Action {
	decision := systems.ComputeNPCAction(npc, g.World.PlayerActor(), g.World, g.Rng)

	switch decision.Action {
	case domain.ActionWalk:
		return Do(domain.Walk{Actor: npc.ID, Dir: decision.Dir})
	case domain.ActionAttack:
		return Do(domain.MeleeAttack{Attacker: npc.ID, Target: decision.Target.ID})
	default:
		return Do(domain.RestOneTurn{Actor: npc.ID})
	}
}

// HandleEvent отдает событие хабу правил.
func (g *Game) HandleEvent(ev event.Event, b *event.Builder) (event.HandleResult, error) {
	res, err := g.hub.Dispatch(ev, g.ctx, b)
	if err != nil {
		return res, fmt.Errorf("dispatch %s: %w", ev.EventName(), err)
	}
	return res, nil
}

// EndTurn двигает актора в очереди. Если действие не потратило
// время (например, RestOneTurn без обработчика), списывается ожидание.
func (g *Game) EndTurn(id domain.ActorID) {
	a := g.World.Actor(id)
	if a == nil || a.AI == nil {
		g.Turns.RemoveActor(id)
		return
	}
	if a.AI.NextActionTick == g.turnStart {
		a.AI.Wait(domain.TimeCostWait)
	}
	if !a.IsAlive() && !a.IsPlayer() {
		g.Turns.RemoveActor(id)
		return
	}
	g.Turns.UpdatePriority(id, a.AI.NextActionTick)
}
