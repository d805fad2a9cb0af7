package systems

import (
	"roguecore/internal/domain"
	"roguecore/pkg/logger"

	"github.com/sirupsen/logrus"
)

// HasLineOfSight проверяет прямую видимость между двумя точками.
// Брезенхэм, только целочисленная арифметика. Концы отрезка не проверяются:
// стоящий в дверном проеме видит и виден.
func HasLineOfSight(opacity domain.OpacityMap, p1, p2 domain.Position) bool {
	losLogger := logger.Component("physics_system").WithFields(logrus.Fields{
		"start_pos": p1,
		"end_pos":   p2,
	})

	if p1 == p2 {
		return true
	}

	x0, y0 := p1.X, p1.Y
	x1, y1 := p2.X, p2.Y

	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}

	sx, sy := p1.DirectionTo(p2)

	err := dx - dy

	for {
		cur := domain.Position{X: x0, Y: y0}
		if cur != p1 && cur != p2 && opacity.IsOpaque(cur) {
			losLogger.WithField("blocking_point", cur).Debug("Line of sight blocked.")
			return false
		}

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}

	return true
}
