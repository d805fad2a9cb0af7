package systems

import (
	"roguecore/internal/domain"
	"roguecore/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ComputeMeleeDamage считает урон удара. Модель не меняет: урон применяет
// обработчик GiveDamage. Возвращает 0, если бить бессмысленно
// (у цели нет тела или она уже мертва).
func ComputeMeleeDamage(attacker, target *domain.Actor) int {
	combatLogger := logger.Component("combat_system").WithFields(logrus.Fields{
		"attacker_id":   attacker.ID,
		"attacker_name": attacker.Name,
		"target_id":     target.ID,
		"target_name":   target.Name,
	})

	if target.Stats == nil {
		combatLogger.Warn("Attack failed: target has no StatsComponent.")
		return 0
	}
	if target.Stats.IsDead {
		combatLogger.Info("Attack ineffective: target is already dead.")
		return 0
	}

	// Базовый урон = Strength атакующего
	baseDamage := 1
	if attacker.Stats != nil {
		baseDamage = attacker.Stats.Strength
	}

	defense := target.Stats.Defense

	// Финальный урон (минимум 1)
	finalDamage := baseDamage - defense
	if finalDamage < 1 {
		finalDamage = 1
	}

	combatLogger.WithFields(logrus.Fields{
		"base_damage":  baseDamage,
		"defense":      defense,
		"final_damage": finalDamage,
		"hp_before":    target.Stats.HP,
	}).Debug("Attack resolved.")

	return finalDamage
}

// CanMelee проверяет дистанцию и прямую видимость для удара.
func CanMelee(opacity domain.OpacityMap, attacker, target *domain.Actor) bool {
	if attacker.Pos.DistanceTo(target.Pos) > domain.MeleeRange {
		return false
	}
	return HasLineOfSight(opacity, attacker.Pos, target.Pos)
}
