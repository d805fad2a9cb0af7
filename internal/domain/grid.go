package domain

import (
	"roguecore/pkg/logger"

	"github.com/sirupsen/logrus"
)

// OpacityMap - всё, что умеет отвечать "закрывает ли клетка обзор"
// и "лежит ли клетка внутри карты". Этого достаточно для FOV.
type OpacityMap interface {
	Contains(pos Position) bool
	IsOpaque(pos Position) bool
}

// GridMap - ортогональная сетка проходимости и прозрачности.
// Хранение построчное: индекс = y*Width + x. Создается через NewGridMap
// или GridMapFromRows.
// Клетки за границей карты всегда считаются заблокированными.
type GridMap struct {
	Width      int
	Height     int
	bodyBlocks []bool
	viewBlocks []bool
}

// NewGridMap создает пустую (полностью открытую) карту.
func NewGridMap(width, height int) *GridMap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &GridMap{
		Width:      width,
		Height:     height,
		bodyBlocks: make([]bool, width*height),
		viewBlocks: make([]bool, width*height),
	}
}

// Символы карты для GridMapFromRows.
const (
	GlyphWall    = '#' // блокирует и тело, и взгляд
	GlyphCurtain = '+' // блокирует только взгляд
	GlyphWater   = '~' // блокирует только тело
)

// GridMapFromRows строит карту из ASCII-строк. Ширина берется по самой
// длинной строке, недостающие клетки - пол.
func GridMapFromRows(rows []string) *GridMap {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	m := NewGridMap(width, len(rows))
	for y, r := range rows {
		for x := 0; x < len(r); x++ {
			switch r[x] {
			case GlyphWall:
				m.SetBlocks(Position{X: x, Y: y}, true, true)
			case GlyphCurtain:
				m.SetBlocks(Position{X: x, Y: y}, false, true)
			case GlyphWater:
				m.SetBlocks(Position{X: x, Y: y}, true, false)
			}
		}
	}
	return m
}

// Contains - true, если 0 <= x < Width и 0 <= y < Height и под клетку
// выделено хранилище. Карта, собранная литералом без NewGridMap,
// не содержит ни одной клетки.
func (m *GridMap) Contains(pos Position) bool {
	if pos.X < 0 || pos.Y < 0 || pos.X >= m.Width || pos.Y >= m.Height {
		return false
	}
	return m.index(pos) < len(m.bodyBlocks)
}

func (m *GridMap) index(pos Position) int {
	return pos.Y*m.Width + pos.X
}

// IsBodyBlocked - нельзя ли встать в клетку. За границей - всегда нельзя.
func (m *GridMap) IsBodyBlocked(pos Position) bool {
	if !m.Contains(pos) {
		return true
	}
	return m.bodyBlocks[m.index(pos)]
}

// IsViewBlocked - закрывает ли клетка обзор. За границей - всегда закрывает.
func (m *GridMap) IsViewBlocked(pos Position) bool {
	if !m.Contains(pos) {
		return true
	}
	return m.viewBlocks[m.index(pos)]
}

// IsOpaque реализует OpacityMap.
func (m *GridMap) IsOpaque(pos Position) bool {
	return m.IsViewBlocked(pos)
}

// SetBlocks меняет состояние клетки (разрушаемые стены, двери).
// Запись за границу игнорируется.
func (m *GridMap) SetBlocks(pos Position, body, view bool) {
	if !m.Contains(pos) {
		logger.Component("grid_map").WithFields(logrus.Fields{
			"pos":    pos,
			"width":  m.Width,
			"height": m.Height,
		}).Warn("SetBlocks outside of the map ignored.")
		return
	}
	idx := m.index(pos)
	m.bodyBlocks[idx] = body
	m.viewBlocks[idx] = view
}

// Size возвращает размеры карты.
func (m *GridMap) Size() (int, int) {
	return m.Width, m.Height
}
