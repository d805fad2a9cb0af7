package actions

import (
	"roguecore/internal/domain"
	"roguecore/internal/engine/handlers"
	"roguecore/internal/event"
	"roguecore/internal/systems"
)

// HandleWalkTurn - первый обработчик Walk: актор поворачивается в сторону шага.
func HandleWalkTurn(_ *handlers.Context, actor *domain.Actor, ev domain.Walk) (event.Event, error) {
	return domain.DirChange{Actor: actor.ID, Dir: ev.Dir}, nil
}

// HandleWalkStep - второй обработчик Walk: шаг, удар по врагу на пути или ничего.
func HandleWalkStep(ctx *handlers.Context, actor *domain.Actor, ev domain.Walk) (event.Event, error) {
	res := systems.CalculateMove(actor, ev.Dir, ctx.World)

	switch {
	case res.HasMoved:
		return domain.PosChange{Actor: actor.ID, From: actor.Pos, To: res.Target}, nil

	case res.BlockedBy != nil && actor.IsHostileTo(res.BlockedBy):
		return domain.MeleeAttack{Attacker: actor.ID, Target: res.BlockedBy.ID}, nil

	case actor.IsPlayer():
		ctx.World.AddLog("Путь прегражден.", domain.MsgError)
	}

	return nil, nil
}

// HandlePosChange применяет перемещение и тратит время актора.
// Шаг наблюдателя делает видимость устаревшей.
func HandlePosChange(ctx *handlers.Context, ev domain.PosChange) (event.Event, error) {
	if err := ctx.World.ApplyChange(ev); err != nil {
		return nil, err
	}
	if a := ctx.World.Actor(ev.Actor); a != nil && a.AI != nil {
		a.AI.Wait(domain.TimeCostMove)
	}
	if ctx.IsViewer(ev.Actor) {
		ctx.MarkVisionDirty()
	}
	return nil, nil
}
