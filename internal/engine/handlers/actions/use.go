package actions

import (
	"fmt"

	"roguecore/internal/domain"
	"roguecore/internal/engine/handlers"
	"roguecore/internal/event"
)

// HandleUseHealingDraught тратит зелье и время. Без зелий - ничего
// не происходит, ход не потерян.
func HandleUseHealingDraught(ctx *handlers.Context, actor *domain.Actor, _ domain.UseHealingDraught) (event.Event, error) {
	if actor.Stats == nil || !actor.Stats.SpendDraught() {
		if actor.IsPlayer() {
			ctx.World.AddLog("Зелий не осталось.", domain.MsgError)
		}
		return nil, nil
	}

	if actor.AI != nil {
		actor.AI.Wait(domain.TimeCostUse)
	}
	return domain.Heal{Target: actor.ID, Amount: domain.HealingDraughtPower}, nil
}

// HandleHeal лечит цель. На проклятом акторе лечение оборачивается уроном.
func HandleHeal(ctx *handlers.Context, ev domain.Heal) (event.Event, error) {
	target := ctx.World.Actor(ev.Target)
	if target == nil || target.Stats == nil {
		return nil, nil
	}

	if target.Stats.IsCursed {
		ctx.World.AddLog(fmt.Sprintf("Проклятие! Зелье обжигает %s.", target.Name), domain.MsgCombat)
		return domain.GiveDamage{Source: ev.Target, Target: ev.Target, Amount: ev.Amount}, nil
	}

	before := target.Stats.HP
	if err := ctx.World.ApplyChange(ev); err != nil {
		return nil, err
	}
	ctx.World.AddLog(fmt.Sprintf("%s восстанавливает %d HP.", target.Name, target.Stats.HP-before), domain.MsgInfo)
	return nil, nil
}
