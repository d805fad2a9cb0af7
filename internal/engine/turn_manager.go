package engine

import (
	"container/heap"

	"roguecore/internal/domain"
	"roguecore/pkg/logger"

	"github.com/sirupsen/logrus"
)

// TurnManager manages the priority queue of actor turns.
type TurnManager struct {
	queue   TurnQueue
	itemMap map[domain.ActorID]*TurnItem
}

func NewTurnManager() *TurnManager {
	return &TurnManager{
		queue:   make(TurnQueue, 0),
		itemMap: make(map[domain.ActorID]*TurnItem),
	}
}

// AddActor registers an actor in the turn system. Actors without AI
// (no NextActionTick) never get a turn.
func (tm *TurnManager) AddActor(a *domain.Actor) {
	if a.AI == nil {
		return
	}
	if _, ok := tm.itemMap[a.ID]; ok {
		tm.UpdatePriority(a.ID, a.AI.NextActionTick)
		return
	}

	item := &TurnItem{
		Actor:    a.ID,
		Priority: a.AI.NextActionTick,
	}

	heap.Push(&tm.queue, item)
	tm.itemMap[a.ID] = item

	logger.Component("turn_manager").WithFields(logrus.Fields{
		"actor_id": a.ID,
		"priority": item.Priority,
	}).Debug("Actor added to TurnManager")
}

// UpdatePriority updates an actor's position in the queue (e.g. after they acted).
func (tm *TurnManager) UpdatePriority(id domain.ActorID, newTick int) {
	if item, ok := tm.itemMap[id]; ok {
		tm.queue.Update(item, newTick)
	}
}

// PeekNext returns the actor whose turn is next, without removing them.
func (tm *TurnManager) PeekNext() *TurnItem {
	if tm.queue.Len() == 0 {
		return nil
	}
	return tm.queue[0]
}

// RemoveActor removes an actor from the turn system (e.g. death).
func (tm *TurnManager) RemoveActor(id domain.ActorID) {
	if item, ok := tm.itemMap[id]; ok {
		heap.Remove(&tm.queue, item.Index)
		delete(tm.itemMap, id)
	}
}

// Has reports whether the actor is scheduled.
func (tm *TurnManager) Has(id domain.ActorID) bool {
	_, ok := tm.itemMap[id]
	return ok
}

func (tm *TurnManager) Len() int {
	return tm.queue.Len()
}

// TurnSnapshot - строка очереди для отладочного вывода.
type TurnSnapshot struct {
	Actor    domain.ActorID `json:"actor"`
	Priority int            `json:"priority"`
}

// DebugDump возвращает снимок очереди в порядке кучи
func (tm *TurnManager) DebugDump() []TurnSnapshot {
	result := make([]TurnSnapshot, 0, len(tm.queue))
	for _, item := range tm.queue {
		result = append(result, TurnSnapshot{Actor: item.Actor, Priority: item.Priority})
	}
	return result
}
