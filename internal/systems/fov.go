package systems

import (
	"roguecore/internal/domain"
	"roguecore/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Мультипликаторы для трансформации координат в 8 октантов
var multipliers = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// InRadius - метрика дальности обзора: квадрат евклидова расстояния,
// граница включительно. Одинакова для всех октантов, поэтому на пустой
// карте освещенная область - ровный диск.
func InRadius(dx, dy, radius int) bool {
	return dx*dx+dy*dy <= radius*radius
}

// RefreshFov считает поле зрения рекурсивным shadowcasting'ом и вызывает
// light для каждой освещенной клетки. На границах октантов одна клетка
// может прийти в light дважды - дедупликацию делает FovData.
//
// Предусловие: origin лежит внутри карты. Иначе ничего не освещается.
// Радиус 0 освещает только origin.
func RefreshFov(origin domain.Position, radius int, opacity domain.OpacityMap, light func(domain.Position)) {
	if !opacity.Contains(origin) {
		logger.Component("fov_system").WithFields(logrus.Fields{
			"origin": origin,
			"radius": radius,
		}).Warn("FOV origin is outside of the map, nothing lit.")
		return
	}

	// Центр всегда виден
	light(origin)

	if radius <= 0 {
		return
	}

	for i := 0; i < 8; i++ {
		castLight(opacity, light, origin.X, origin.Y, 1, 1.0, 0.0, radius,
			multipliers[0][i], multipliers[1][i],
			multipliers[2][i], multipliers[3][i])
	}
}

func castLight(opacity domain.OpacityMap, light func(domain.Position), cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int) {
	if start < end {
		return
	}

	for j := row; j <= radius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		newStart := start

		for {
			dx++
			if dx > 0 {
				break
			}

			// Наклоны левого и правого края клетки
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			pos := domain.Position{
				X: cx + dx*xx + dy*xy,
				Y: cy + dx*yx + dy*yy,
			}

			if opacity.Contains(pos) && InRadius(dx, dy, radius) {
				light(pos)
			}

			opaque := opacity.IsOpaque(pos)

			if blocked {
				if opaque {
					// Идем вдоль стены
					newStart = rSlope
					continue
				}
				// Стена кончилась
				blocked = false
				start = newStart
			} else if opaque && j < radius {
				// Наткнулись на стену: сканируем следующий ряд до ее левого края
				blocked = true
				castLight(opacity, light, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}

// FovData - результат последнего расчета поля зрения.
// Сетка размером с карту, пересчитывается целиком на каждом Refresh.
type FovData struct {
	Radius int
	Origin domain.Position

	width  int
	height int
	lit    []bool
	count  int
}

func NewFovData(width, height, radius int) *FovData {
	return &FovData{
		Radius: radius,
		width:  width,
		height: height,
		lit:    make([]bool, width*height),
	}
}

// Refresh пересчитывает поле зрения с нуля. extra (может быть nil)
// получает каждую освещенную клетку ровно один раз - через него
// туман войны помечает клетки в том же проходе.
func (f *FovData) Refresh(origin domain.Position, opacity domain.OpacityMap, extra func(domain.Position)) {
	f.Clear()
	f.Origin = origin

	RefreshFov(origin, f.Radius, opacity, func(pos domain.Position) {
		if !f.light(pos) {
			return
		}
		if extra != nil {
			extra(pos)
		}
	})
}

// light помечает клетку. Возвращает true, если клетка освещена впервые.
func (f *FovData) light(pos domain.Position) bool {
	if !f.contains(pos) {
		return false
	}
	idx := pos.Y*f.width + pos.X
	if f.lit[idx] {
		return false
	}
	f.lit[idx] = true
	f.count++
	return true
}

func (f *FovData) contains(pos domain.Position) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X < f.width && pos.Y < f.height
}

// IsLit - видна ли клетка сейчас.
func (f *FovData) IsLit(pos domain.Position) bool {
	if !f.contains(pos) {
		return false
	}
	return f.lit[pos.Y*f.width+pos.X]
}

// Clear гасит все клетки.
func (f *FovData) Clear() {
	clear(f.lit)
	f.count = 0
}

// Len - количество освещенных клеток.
func (f *FovData) Len() int {
	return f.count
}

// LitCells возвращает освещенные клетки построчно.
func (f *FovData) LitCells() []domain.Position {
	cells := make([]domain.Position, 0, f.count)
	for idx, on := range f.lit {
		if on {
			cells = append(cells, domain.Position{X: idx % f.width, Y: idx / f.width})
		}
	}
	return cells
}
