package event

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"roguecore/pkg/logger"

	"github.com/sirupsen/logrus"
)

// DefaultMaxDepth - предел вложенности каскада по умолчанию.
const DefaultMaxDepth = 32

var (
	ErrCascadeTooDeep = errors.New("event cascade too deep")
	ErrNilEvent       = errors.New("nil event")
)

// CascadeError - каскад не сошелся за допустимую глубину.
// Chain - имена событий от корня до того, которое не удалось отдать.
type CascadeError struct {
	Chain []string
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("%s (depth %d): %s", ErrCascadeTooDeep, len(e.Chain), strings.Join(e.Chain, " -> "))
}

func (e *CascadeError) Unwrap() error {
	return ErrCascadeTooDeep
}

// HandlerFunc - обработчик события E над моделью M. Может вернуть
// следующее событие (nil - каскад закончен).
type HandlerFunc[M any, E Event] func(model M, ev E) (Event, error)

type trampoline[M any] func(model M, ev Event) (Event, error)

// HandleResult - итог одного Dispatch со всем каскадом.
type HandleResult struct {
	IsTurnConsuming bool // событие или что-то из каскада тратит ход
	Handled         bool // нашелся хотя бы один обработчик
	Events          int  // сколько событий записано, включая каскад
}

// Hub хранит обработчики по конкретному типу события.
// Регистрация идет один раз при старте, потом Freeze.
type Hub[M any] struct {
	handlers map[reflect.Type][]trampoline[M]
	count    int
	maxDepth int
	frozen   bool
}

// NewHub создает хаб. maxDepth <= 0 - DefaultMaxDepth.
func NewHub[M any](maxDepth int) *Hub[M] {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Hub[M]{
		handlers: make(map[reflect.Type][]trampoline[M]),
		maxDepth: maxDepth,
	}
}

// Register добавляет обработчик для конкретного типа E.
// Обработчики одного типа вызываются в порядке регистрации.
func Register[E Event, M any](h *Hub[M], fn HandlerFunc[M, E]) {
	t := reflect.TypeOf((*E)(nil)).Elem()
	if h.frozen {
		panic(fmt.Sprintf("event: register %s after Freeze", t))
	}
	if t.Kind() == reflect.Interface {
		panic(fmt.Sprintf("event: handler must be bound to a concrete type, got %s", t))
	}
	h.handlers[t] = append(h.handlers[t], func(model M, ev Event) (Event, error) {
		return fn(model, ev.(E))
	})
	h.count++

	logger.Component("event_hub").WithFields(logrus.Fields{
		"event":    t.String(),
		"position": len(h.handlers[t]),
	}).Debug("Handler registered.")
}

// Freeze закрывает регистрацию.
func (h *Hub[M]) Freeze() {
	h.frozen = true
}

// MaxDepth - предел вложенности каскада.
func (h *Hub[M]) MaxDepth() int {
	return h.maxDepth
}

// HasHandler - есть ли обработчик для типа ev.
func (h *Hub[M]) HasHandler(ev Event) bool {
	return len(h.handlers[reflect.TypeOf(ev)]) > 0
}

// HandlerCount - сколько обработчиков зарегистрировано всего.
func (h *Hub[M]) HandlerCount() int {
	return h.count
}

// Dispatch отдает событие обработчикам и записывает его в b вместе с
// каскадом: ровно один Node на вызов. Следующее событие от обработчика
// разбирается целиком до запуска следующего обработчика.
// Событие без обработчиков не ошибка: оно просто записывается.
func (h *Hub[M]) Dispatch(ev Event, model M, b *Builder) (HandleResult, error) {
	return h.dispatch(ev, model, b, nil)
}

func (h *Hub[M]) dispatch(ev Event, model M, b *Builder, chain []string) (HandleResult, error) {
	if ev == nil {
		return HandleResult{}, ErrNilEvent
	}
	name := ev.EventName()
	if len(chain) >= h.maxDepth {
		err := &CascadeError{Chain: append(slices.Clone(chain), name)}
		logger.Component("event_hub").WithFields(logrus.Fields{
			"depth": len(chain),
			"chain": strings.Join(err.Chain, " -> "),
		}).Error("Cascade aborted.")
		return HandleResult{}, err
	}

	cp := b.Checkpoint()
	b.Push(ev)
	defer b.Nest(cp)

	res := HandleResult{
		IsTurnConsuming: ConsumesTurn(ev),
		Events:          1,
	}

	handlers := h.handlers[reflect.TypeOf(ev)]
	if len(handlers) == 0 {
		logger.Component("event_hub").WithField("event", name).Debug("No handler, event recorded as is.")
		return res, nil
	}
	res.Handled = true

	chain = append(chain, name)
	for _, handle := range handlers {
		next, err := handle(model, ev)
		if err != nil {
			return res, fmt.Errorf("handle %s: %w", name, err)
		}
		if next == nil {
			continue
		}
		sub, err := h.dispatch(next, model, b, chain)
		if err != nil {
			return res, err
		}
		res.IsTurnConsuming = res.IsTurnConsuming || sub.IsTurnConsuming
		res.Events += sub.Events
	}
	return res, nil
}
