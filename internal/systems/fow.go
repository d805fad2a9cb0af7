package systems

import (
	"roguecore/internal/domain"
	"roguecore/pkg/logger"

	"github.com/sirupsen/logrus"
)

// FowData - туман войны: "видел ли наблюдатель эту клетку хоть раз".
// Клетка, раз открытая, остается открытой до Cover или Clear.
type FowData struct {
	Width  int
	Height int

	shadows []bool
	count   int
}

func NewFowData(width, height int) *FowData {
	return &FowData{
		Width:   width,
		Height:  height,
		shadows: make([]bool, width*height),
	}
}

func (f *FowData) contains(pos domain.Position) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X < f.Width && pos.Y < f.Height
}

func (f *FowData) warnOutOfBounds(op string, pos domain.Position) {
	logger.Component("fow_system").WithFields(logrus.Fields{
		"op":     op,
		"pos":    pos,
		"width":  f.Width,
		"height": f.Height,
	}).Warn("FOW write outside of the map ignored.")
}

// Uncover открывает клетку.
func (f *FowData) Uncover(pos domain.Position) {
	if !f.contains(pos) {
		f.warnOutOfBounds("uncover", pos)
		return
	}
	idx := pos.Y*f.Width + pos.X
	if !f.shadows[idx] {
		f.shadows[idx] = true
		f.count++
	}
}

// Cover снова прячет клетку (сброс участка карты).
func (f *FowData) Cover(pos domain.Position) {
	if !f.contains(pos) {
		f.warnOutOfBounds("cover", pos)
		return
	}
	idx := pos.Y*f.Width + pos.X
	if f.shadows[idx] {
		f.shadows[idx] = false
		f.count--
	}
}

// IsVisible - открыта ли клетка. За границей - false.
func (f *FowData) IsVisible(pos domain.Position) bool {
	if !f.contains(pos) {
		return false
	}
	return f.shadows[pos.Y*f.Width+pos.X]
}

// Clear прячет всю карту.
func (f *FowData) Clear() {
	clear(f.shadows)
	f.count = 0
}

// CopyFrom делает f точной копией other (без общих срезов).
func (f *FowData) CopyFrom(other *FowData) {
	if len(f.shadows) != len(other.shadows) {
		f.shadows = make([]bool, len(other.shadows))
	}
	copy(f.shadows, other.shadows)
	f.Width = other.Width
	f.Height = other.Height
	f.count = other.count
}

// Count - количество открытых клеток.
func (f *FowData) Count() int {
	return f.count
}
