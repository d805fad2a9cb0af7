package agent

import (
	"math/rand"

	"roguecore/internal/domain"
	"roguecore/internal/engine"
	"roguecore/internal/systems"
	"roguecore/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Bot - автопилот игрока (headless agent).
// Видит только то, что лежит в текущем поле зрения тени, и решает
// тем же ComputeNPCAction, что и монстры: для системы AI бот
// притворяется враждебным NPC, а целью становится ближайший видимый враг.
//
// Жизненный цикл:
//  1. NewBot - бот привязывается к игре.
//  2. Play - Tick до AwaitPlayerInput, затем Decide и команда в очередь.
//  3. Останавливается на смерти игрока или по лимиту ходов.
type Bot struct {
	game *engine.Game
	rng  *rand.Rand
	log  *logrus.Entry
}

// Report - итог прогона.
type Report struct {
	Turns      int // сколько команд отдал бот
	Events     int // сколько событий записано во всех деревьях
	Kills      int
	Died       bool
	GlobalTick int
}

// DrinkThreshold - доля MaxHP, ниже которой бот пьет зелье.
const DrinkThreshold = 3

func NewBot(g *engine.Game, seed int64) *Bot {
	return &Bot{
		game: g,
		rng:  rand.New(rand.NewSource(seed)),
		log:  logger.Component("bot"),
	}
}

// Decide - команда для текущего хода игрока.
func (b *Bot) Decide() domain.Command {
	me := b.game.World.PlayerActor()
	if me == nil || !me.IsAlive() {
		return domain.Command{Action: domain.ActionWait}
	}

	if me.Stats.Draughts > 0 && me.Stats.HP*DrinkThreshold <= me.Stats.MaxHP {
		b.log.WithField("hp", me.Stats.HP).Debug("Low HP. Action: DRINK")
		return domain.Command{Action: domain.ActionDrink}
	}

	// Для AI бот - враждебный NPC на месте игрока.
	self := *me
	self.AI = &domain.AIComponent{IsHostile: true}

	target := b.nearestVisibleEnemy(me)
	decision := systems.ComputeNPCAction(&self, target, b.game.World, b.rng)

	switch decision.Action {
	case domain.ActionAttack:
		dir, ok := domain.DirectionFromDelta(me.Pos.DirectionTo(decision.Target.Pos))
		if !ok {
			return domain.Command{Action: domain.ActionWait}
		}
		return domain.Command{Action: domain.ActionAttack, Dir: dir}
	case domain.ActionWalk:
		return domain.Command{Action: domain.ActionWalk, Dir: decision.Dir}
	default:
		return domain.Command{Action: domain.ActionWait}
	}
}

// nearestVisibleEnemy ищет живого врага в текущем поле зрения.
// При равном расстоянии побеждает младший слот арены.
func (b *Bot) nearestVisibleEnemy(me *domain.Actor) *domain.Actor {
	fov := b.game.Shadow.Fov.Front()
	var (
		best     *domain.Actor
		bestDist int
	)
	for _, a := range b.game.World.Actors() {
		if a.ID == me.ID || !a.IsAlive() || !a.IsHostileTo(me) || !fov.IsLit(a.Pos) {
			continue
		}
		d := me.Pos.DistanceSquaredTo(a.Pos)
		if best == nil || d < bestDist {
			best, bestDist = a, d
		}
	}
	return best
}

// Play гоняет игру, пока игрок жив и не исчерпан лимит ходов.
func (b *Bot) Play(maxTurns int) (Report, error) {
	var rep Report
	player := b.game.World.Player

	for {
		res, err := b.game.Tick()
		if err != nil {
			return rep, err
		}
		for _, ev := range res.Tree.Events() {
			rep.Events++
			if d, ok := ev.(domain.Death); ok && d.Actor != player {
				rep.Kills++
			}
		}
		rep.GlobalTick = b.game.World.GlobalTick

		if _, dead := res.UI.(domain.PlayerDied); dead {
			rep.Died = true
			break
		}
		if rep.Turns >= maxTurns {
			break
		}

		// Глаза бота - это тень, ее надо догнать до текущей позиции.
		b.game.Update(0)
		b.game.QueueCommand(b.Decide())
		rep.Turns++
	}

	b.log.WithFields(logrus.Fields{
		"turns":  rep.Turns,
		"events": rep.Events,
		"kills":  rep.Kills,
		"died":   rep.Died,
		"tick":   rep.GlobalTick,
	}).Info("Bot run finished.")
	return rep, nil
}
