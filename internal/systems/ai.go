package systems

import (
	"math/rand"

	"roguecore/internal/domain"
	"roguecore/pkg/logger"

	"github.com/sirupsen/logrus"
)

// NPCDecision - что NPC решил сделать в свой ход.
type NPCDecision struct {
	Action domain.ActionType
	Target *domain.Actor    // для ATTACK
	Dir    domain.Direction // для WALK
}

func waitDecision() NPCDecision {
	return NPCDecision{Action: domain.ActionWait}
}

// ComputeNPCAction решает, что делать NPC. target может быть nil (цели нет).
// rng нужен для блуждания без цели; при одном сиде решения повторяются.
func ComputeNPCAction(npc, target *domain.Actor, w *domain.World, rng *rand.Rand) NPCDecision {
	aiLogger := logger.Component("ai_system").WithField("npc", npc.Name)

	if npc.AI == nil || !npc.IsAlive() {
		return waitDecision()
	}

	if target == nil || !target.IsAlive() || !npc.AI.IsHostile {
		return wander(npc, w, rng)
	}

	dist := npc.Pos.DistanceTo(target.Pos)

	// Если не видим цель (дальше радиуса зрения или за стеной), бродим.
	if dist > float64(npc.VisionRadius()) || !HasLineOfSight(w.Map, npc.Pos, target.Pos) {
		aiLogger.WithField("vision", npc.VisionRadius()).Debug("Target not visible. Wandering.")
		return wander(npc, w, rng)
	}

	// Если в радиусе атаки (включая диагонали)
	if dist <= domain.MeleeRange {
		aiLogger.WithField("target", target.Name).Debug("Target in attack range. Action: ATTACK")
		return NPCDecision{Action: domain.ActionAttack, Target: target}
	}

	// Видим, но слишком далеко
	if dist > domain.AggroRadius {
		return waitDecision()
	}

	dir, ok := calculateSmartMove(npc, target, w)
	if !ok {
		aiLogger.Debug("Path is blocked. Action: WAIT")
		return waitDecision()
	}

	aiLogger.WithFields(logrus.Fields{
		"dir":  dir,
		"dist": dist,
	}).Debug("Pursuing target. Action: WALK")
	return NPCDecision{Action: domain.ActionWalk, Dir: dir}
}

// wander: с вероятностью 1/2 шаг в случайную свободную сторону.
func wander(npc *domain.Actor, w *domain.World, rng *rand.Rand) NPCDecision {
	if rng == nil || rng.Intn(2) == 0 {
		return waitDecision()
	}
	start := rng.Intn(8)
	for i := 0; i < 8; i++ {
		dir := domain.Direction((start + i) % 8)
		if CalculateMove(npc, dir, w).HasMoved {
			return NPCDecision{Action: domain.ActionWalk, Dir: dir}
		}
	}
	return waitDecision()
}

func calculateSmartMove(npc, target *domain.Actor, w *domain.World) (domain.Direction, bool) {
	dxRaw := target.Pos.X - npc.Pos.X
	dyRaw := target.Pos.Y - npc.Pos.Y
	stepX, stepY := npc.Pos.DirectionTo(target.Pos)

	// Попытка 1: Идеальный путь
	if dir, ok := checkMove(npc, stepX, stepY, w); ok {
		return dir, true
	}

	// Попытка 2: скольжение вдоль приоритетной оси
	tryXFirst := abs(dxRaw) > abs(dyRaw)
	axes := [2][2]int{{stepX, 0}, {0, stepY}}
	if !tryXFirst {
		axes[0], axes[1] = axes[1], axes[0]
	}
	for _, a := range axes {
		if dir, ok := checkMove(npc, a[0], a[1], w); ok {
			return dir, true
		}
	}

	return domain.DirN, false // Тупик
}

func checkMove(a *domain.Actor, dx, dy int, w *domain.World) (domain.Direction, bool) {
	dir, ok := domain.DirectionFromDelta(dx, dy)
	if !ok {
		return dir, false
	}
	return dir, CalculateMove(a, dir, w).HasMoved
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
