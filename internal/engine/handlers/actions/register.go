// Package actions - правила хода: обработчики событий хаба.
package actions

import (
	"roguecore/internal/domain"
	"roguecore/internal/engine/handlers"
	"roguecore/internal/event"
)

// Register вешает все правила на хаб. Порядок важен: обработчики одного
// события вызываются в порядке регистрации (Walk: сначала поворот, потом шаг).
// RestOneTurn обработчика не имеет.
func Register(hub *handlers.Hub) {
	// Перемещение
	event.Register(hub, handlers.WithActor(HandleWalkTurn))
	event.Register(hub, handlers.WithActor(HandleWalkStep))
	event.Register(hub, handlers.Apply[domain.DirChange])
	event.Register(hub, HandlePosChange)

	// Бой
	event.Register(hub, handlers.WithActor(HandleMeleeAttack))
	event.Register(hub, HandleHit)
	event.Register(hub, HandleGiveDamage)
	event.Register(hub, HandleDeath)

	// Расходники
	event.Register(hub, handlers.WithActor(HandleUseHealingDraught))
	event.Register(hub, HandleHeal)
}
