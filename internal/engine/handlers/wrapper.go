package handlers

import (
	"roguecore/internal/domain"
	"roguecore/internal/event"
	"roguecore/pkg/logger"

	"github.com/sirupsen/logrus"
)

// SubjectEvent - событие, у которого есть исполнитель.
type SubjectEvent interface {
	event.Event
	Subject() domain.ActorID
}

// ChangeEvent - концевое событие, которое само является изменением модели.
type ChangeEvent interface {
	event.Event
	domain.Change
}

// ActorHandlerFunc - "чистый" хендлер, которому уже нашли живого исполнителя.
type ActorHandlerFunc[E SubjectEvent] func(ctx *Context, actor *domain.Actor, ev E) (event.Event, error)

// WithActor берет хендлер с исполнителем и превращает его в обычный
// обработчик хаба. Берет на себя поиск актора в арене: устаревший handle
// или мертвый исполнитель - событие пропускается без ошибки
// (например, актора убили раньше в том же каскаде).
func WithActor[E SubjectEvent](handler ActorHandlerFunc[E]) event.HandlerFunc[*Context, E] {
	return func(ctx *Context, ev E) (event.Event, error) {
		actor, err := ctx.World.Lookup(ev.Subject())
		if err != nil {
			logger.Component("handlers").WithFields(logrus.Fields{
				"event": ev.EventName(),
				"actor": ev.Subject(),
			}).WithError(err).Debug("Event subject is gone, skipped.")
			return nil, nil
		}
		if !actor.IsAlive() {
			return nil, nil
		}
		return handler(ctx, actor, ev)
	}
}

// Apply - обработчик концевого события: применяет его к миру как Change.
func Apply[E ChangeEvent](ctx *Context, ev E) (event.Event, error) {
	return nil, ctx.World.ApplyChange(ev)
}
