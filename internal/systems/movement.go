package systems

import (
	"roguecore/internal/domain"
)

// MovementResult - результат вычисления движения
type MovementResult struct {
	Target    domain.Position
	HasMoved  bool
	BlockedBy *domain.Actor // Если врезались в кого-то (для атаки)
	IsWall    bool          // Если врезались в стену или край карты
}

// CalculateMove вычисляет новую позицию. Не меняет состояние мира!
func CalculateMove(a *domain.Actor, dir domain.Direction, w *domain.World) MovementResult {
	target := a.Pos.Step(dir)
	res := MovementResult{Target: target}

	// 1. Стены и границы
	if w.Map.IsBodyBlocked(target) {
		res.IsWall = true
		return res
	}

	// 2. Живые тела. Трупы проходимы.
	if other := w.ActorAt(target); other != nil && other.ID != a.ID {
		res.BlockedBy = other
		return res
	}

	res.HasMoved = true
	return res
}
