package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownActor = errors.New("unknown actor")
	ErrStaleActor   = errors.New("stale actor handle")
)

// Change - атомарное изменение модели. Применяется только через
// World.ApplyChange, чтобы все мутации шли одной дорогой.
type Change interface {
	Apply(w *World) error
}

type actorSlot struct {
	gen   uint16
	actor *Actor // nil - слот свободен
}

// World - модель игры: карта, арена акторов, время и журнал.
// Никто не хранит указатель на World: его передают параметром в каждый вызов.
type World struct {
	Map        *GridMap
	GlobalTick int
	Player     ActorID

	Logs []LogEntry

	slots []actorSlot
	free  []uint32
}

func NewWorld(m *GridMap) *World {
	return &World{
		Map:  m,
		Logs: make([]LogEntry, 0),
	}
}

// Spawn кладет актора в арену и возвращает его handle.
// Освободившиеся слоты переиспользуются с новым поколением.
func (w *World) Spawn(a Actor) ActorID {
	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		idx = uint32(len(w.slots))
		w.slots = append(w.slots, actorSlot{})
	}

	slot := &w.slots[idx]
	slot.gen++
	if slot.gen == 0 { // переполнение: 0 зарезервирован под NilActorID
		slot.gen = 1
	}

	id := PackActorID(slot.gen, idx)
	a.ID = id
	slot.actor = &a

	if a.IsPlayer() && w.Player.IsNil() {
		w.Player = id
	}
	return id
}

// Despawn освобождает слот. Старый handle после этого невалиден.
func (w *World) Despawn(id ActorID) error {
	if _, err := w.Lookup(id); err != nil {
		return err
	}
	idx := id.Index()
	w.slots[idx].actor = nil
	w.free = append(w.free, idx)
	if w.Player == id {
		w.Player = NilActorID
	}
	return nil
}

// Lookup резолвит handle в актора.
func (w *World) Lookup(id ActorID) (*Actor, error) {
	idx := id.Index()
	if id.IsNil() || int(idx) >= len(w.slots) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownActor, id)
	}
	slot := w.slots[idx]
	if slot.actor == nil || slot.gen != id.Generation() {
		return nil, fmt.Errorf("%w: %s", ErrStaleActor, id)
	}
	return slot.actor, nil
}

// Actor - как Lookup, но без ошибки: nil для невалидного handle.
func (w *World) Actor(id ActorID) *Actor {
	a, err := w.Lookup(id)
	if err != nil {
		return nil
	}
	return a
}

// PlayerActor возвращает актора игрока или nil.
func (w *World) PlayerActor() *Actor {
	return w.Actor(w.Player)
}

// Actors возвращает всех акторов в порядке слотов арены.
func (w *World) Actors() []*Actor {
	result := make([]*Actor, 0, len(w.slots))
	for _, s := range w.slots {
		if s.actor != nil {
			result = append(result, s.actor)
		}
	}
	return result
}

// ActorAt возвращает живого актора в клетке (тело блокирует проход).
func (w *World) ActorAt(pos Position) *Actor {
	for _, s := range w.slots {
		if s.actor != nil && s.actor.IsAlive() && s.actor.Pos == pos {
			return s.actor
		}
	}
	return nil
}

// IsWalkable - клетка в карте, не стена и не занята живым телом.
func (w *World) IsWalkable(pos Position) bool {
	return !w.Map.IsBodyBlocked(pos) && w.ActorAt(pos) == nil
}

// ApplyChange - единственная точка мутации модели из обработчиков событий.
func (w *World) ApplyChange(c Change) error {
	return c.Apply(w)
}

// AddLog пишет строку в игровой журнал.
func (w *World) AddLog(text, logType string) {
	if logType == "" {
		logType = MsgInfo
	}
	w.Logs = append(w.Logs, LogEntry{
		Tick: w.GlobalTick,
		Text: text,
		Type: logType,
	})
}

// DrainLogs забирает накопленный журнал (рендерер показывает и очищает).
func (w *World) DrainLogs() []LogEntry {
	logs := w.Logs
	w.Logs = make([]LogEntry, 0)
	return logs
}
