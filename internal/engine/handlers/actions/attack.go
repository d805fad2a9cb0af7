package actions

import (
	"fmt"

	"roguecore/internal/domain"
	"roguecore/internal/engine/handlers"
	"roguecore/internal/event"
	"roguecore/internal/systems"
	"roguecore/pkg/logger"

	"github.com/sirupsen/logrus"
)

// HandleMeleeAttack тратит время атакующего и, если цель достижима,
// отдает Hit с уже посчитанным уроном.
func HandleMeleeAttack(ctx *handlers.Context, attacker *domain.Actor, ev domain.MeleeAttack) (event.Event, error) {
	target, err := ctx.World.Lookup(ev.Target)
	if err != nil || !target.IsAlive() {
		return nil, nil
	}

	if attacker.AI != nil {
		attacker.AI.Wait(domain.TimeCostAttackLight)
	}

	if !systems.CanMelee(ctx.World.Map, attacker, target) {
		logger.Component("actions").WithFields(logrus.Fields{
			"attacker": attacker.Name,
			"target":   target.Name,
		}).Debug("Target out of melee reach.")
		if attacker.IsPlayer() {
			ctx.World.AddLog("Не дотянуться.", domain.MsgError)
		}
		return nil, nil
	}

	// Мирный NPC после удара становится врагом.
	if target.AI != nil && !target.IsPlayer() && !target.IsHostileTo(attacker) {
		target.AI.BecomeHostile()
	}

	damage := systems.ComputeMeleeDamage(attacker, target)
	if damage == 0 {
		return nil, nil
	}
	return domain.Hit{Attacker: attacker.ID, Target: target.ID, Damage: damage}, nil
}

// HandleHit пишет удар в журнал и превращает его в урон.
func HandleHit(ctx *handlers.Context, ev domain.Hit) (event.Event, error) {
	attacker := ctx.World.Actor(ev.Attacker)
	target := ctx.World.Actor(ev.Target)
	if attacker != nil && target != nil {
		ctx.World.AddLog(fmt.Sprintf("%s бьет %s на %d урона.", attacker.Name, target.Name, ev.Damage), domain.MsgCombat)
	}
	return domain.GiveDamage{Source: ev.Attacker, Target: ev.Target, Amount: ev.Damage}, nil
}

// HandleGiveDamage снимает HP. Если цель погибла от этого урона - Death.
func HandleGiveDamage(ctx *handlers.Context, ev domain.GiveDamage) (event.Event, error) {
	target := ctx.World.Actor(ev.Target)
	if target == nil {
		return nil, nil
	}
	wasAlive := target.IsAlive()

	if err := ctx.World.ApplyChange(ev); err != nil {
		return nil, err
	}

	if wasAlive && !target.IsAlive() {
		return domain.Death{Actor: ev.Target, Killer: ev.Source}, nil
	}
	return nil, nil
}

// HandleDeath превращает актора в труп.
func HandleDeath(ctx *handlers.Context, ev domain.Death) (event.Event, error) {
	if err := ctx.World.ApplyChange(ev); err != nil {
		return nil, err
	}

	a := ctx.World.Actor(ev.Actor)
	if a == nil {
		return nil, nil
	}
	if a.IsPlayer() {
		ctx.World.AddLog("Вы погибли.", domain.MsgCombat)
	} else {
		ctx.World.AddLog(fmt.Sprintf("%s умирает.", a.Name), domain.MsgCombat)
	}

	logger.Component("actions").WithFields(logrus.Fields{
		"actor":  a.Name,
		"killer": ev.Killer,
	}).Info("Actor died.")
	return nil, nil
}
