package engine

import (
	"errors"
	"fmt"

	"roguecore/internal/domain"
	"roguecore/internal/event"
	"roguecore/pkg/logger"

	"github.com/sirupsen/logrus"
)

var (
	ErrNoActors    = errors.New("no actor to take a turn")
	ErrTickStalled = errors.New("tick produced no UI event")
	ErrEmptyAction = errors.New("actor returned an empty action")
)

// System - источник ходов для Tick.
type System interface {
	// NextActor - чей ход сейчас. false - ходить некому.
	NextActor() (domain.ActorID, bool)
	// TakeTurn - решение актора: событие хода или UI-событие.
	TakeTurn(actor domain.ActorID) Action
	// HandleEvent отдает событие хабу, каскад пишется в b.
	HandleEvent(ev event.Event, b *event.Builder) (event.HandleResult, error)
	// EndTurn вызывается, когда действие потратило ход актора.
	EndTurn(actor domain.ActorID)
}

// Action - либо событие хода (Event), либо UI-событие, на котором
// Tick останавливается и отдает управление вызывающему.
type Action struct {
	Event event.Event
	UI    event.Event
}

// Do - действие, которое пойдет в хаб.
func Do(ev event.Event) Action { return Action{Event: ev} }

// Stop - UI-событие, на котором Tick остановится.
func Stop(ui event.Event) Action { return Action{UI: ui} }

// IsUI - остановит ли действие тик.
func (a Action) IsUI() bool { return a.UI != nil }

// TickResult - чем закончился тик.
type TickResult struct {
	UI    event.Event    // событие, на котором тик остановился
	Actor domain.ActorID // чей ход прервал UI
	Tree  *event.Tree    // всё, что случилось до остановки
	Steps int            // сколько действий обработано
}

// Tick крутит ходы, пока кто-то не вернет UI-событие. Дерево
// накопленных событий отдается вместе с ним; при ошибке дерево
// выбрасывается, а модель остается как есть.
// maxSteps <= 0 - DefaultMaxStepsPerTick.
func Tick(sys System, maxSteps int) (TickResult, error) {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxStepsPerTick
	}
	tickLogger := logger.Component("tick")
	b := event.NewBuilder()

	for step := 0; step < maxSteps; step++ {
		actor, ok := sys.NextActor()
		if !ok {
			return TickResult{}, ErrNoActors
		}

		action := sys.TakeTurn(actor)
		if action.IsUI() {
			tickLogger.WithFields(logrus.Fields{
				"actor": actor,
				"ui":    action.UI.EventName(),
				"steps": step,
			}).Debug("Tick stopped on UI event.")
			return TickResult{UI: action.UI, Actor: actor, Tree: b.Build(), Steps: step}, nil
		}
		if action.Event == nil {
			return TickResult{}, fmt.Errorf("actor %s: %w", actor, ErrEmptyAction)
		}

		res, err := sys.HandleEvent(action.Event, b)
		if err != nil {
			return TickResult{}, fmt.Errorf("actor %s: %w", actor, err)
		}
		if res.IsTurnConsuming {
			sys.EndTurn(actor)
		}
	}

	tickLogger.WithField("max_steps", maxSteps).Error("Tick stalled.")
	return TickResult{}, fmt.Errorf("%w after %d steps", ErrTickStalled, maxSteps)
}
