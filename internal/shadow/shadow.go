// Package shadow держит двойные буферы поля зрения и тумана войны
// и часы интерполяции между ними.
//
// Видимость пересчитывается только по событиям хода (MarkDirty), а кадры
// рендерера лишь двигают часы: рендерер смешивает Back() и Front()
// по Progress().
package shadow

import (
	"roguecore/internal/domain"
	"roguecore/internal/systems"
	"roguecore/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Яркость клеток для CellAlpha.
const (
	AlphaLit        float32 = 1
	AlphaRemembered float32 = 0.35
	AlphaUnknown    float32 = 0
)

// Config - параметры тени.
type Config struct {
	Radius     int
	Transition float32        // секунды на переход между состояниями
	Easing     ease.TweenFunc // nil - ease.OutQuad
}

// Shadow - FOV и FOW в двойных буферах плюс сглаженный таймер перехода.
type Shadow struct {
	Fov Double[systems.FovData]
	Fow Double[systems.FowData]

	radius     int
	transition float32
	easing     ease.TweenFunc

	tween    *gween.Tween
	progress float32
	dirty    bool
}

// New создает тень для карты width x height. Пока не было ни одного
// Calculate, оба буфера пусты и переход считается завершенным.
func New(width, height int, cfg Config) *Shadow {
	easing := cfg.Easing
	if easing == nil {
		easing = ease.OutQuad
	}
	radius := cfg.Radius
	if radius < 0 {
		radius = 0
	}
	return &Shadow{
		Fov: NewDouble(
			*systems.NewFovData(width, height, radius),
			*systems.NewFovData(width, height, radius),
		),
		Fow: NewDouble(
			*systems.NewFowData(width, height),
			*systems.NewFowData(width, height),
		),
		radius:     radius,
		transition: cfg.Transition,
		easing:     easing,
		progress:   1,
	}
}

// Calculate пересчитывает видимость из origin:
//  1. FOV: swap (старый front уходит в back, новый front перезаписывается);
//  2. FOW: front копируется в back - туман персистентен, back не мусор;
//  3. сброс таймера перехода;
//  4. shadowcasting в новый front FOV, каждая клетка открывается и в front FOW.
func (s *Shadow) Calculate(origin domain.Position, opacity domain.OpacityMap) {
	s.Fov.Swap()
	s.Fow.Back().CopyFrom(s.Fow.Front())
	s.resetTimer()

	fov := s.Fov.Front()
	fov.Radius = s.radius
	fov.Refresh(origin, opacity, s.Fow.Front().Uncover)

	logger.Component("shadow").WithFields(logrus.Fields{
		"origin":   origin,
		"radius":   s.radius,
		"lit":      fov.Len(),
		"explored": s.Fow.Front().Count(),
	}).Debug("Visibility recalculated.")
}

// MarkDirty просит пересчитать видимость в ближайшем PostUpdate.
// Вызывается, когда сдвинулся наблюдатель или поменялась прозрачность карты.
func (s *Shadow) MarkDirty() {
	s.dirty = true
}

// IsDirty - ждет ли тень пересчета.
func (s *Shadow) IsDirty() bool {
	return s.dirty
}

// PostUpdate вызывается раз в кадр. Пересчитывает видимость только если
// тень грязная, а таймер двигает всегда.
func (s *Shadow) PostUpdate(dt float32, opacity domain.OpacityMap, origin domain.Position) {
	if s.dirty {
		s.Calculate(origin, opacity)
		s.dirty = false
	}
	s.advance(dt)
}

func (s *Shadow) resetTimer() {
	if s.transition <= 0 {
		s.tween = nil
		s.progress = 1
		return
	}
	s.tween = gween.New(0, 1, s.transition, s.easing)
	s.progress = 0
}

func (s *Shadow) advance(dt float32) {
	if s.tween == nil {
		return
	}
	value, finished := s.tween.Update(dt)
	s.progress = value
	if finished {
		s.tween = nil
		s.progress = 1
	}
}

// Progress - сглаженный прогресс перехода back -> front, от 0 до 1.
func (s *Shadow) Progress() float32 {
	return s.progress
}

// Finished - переход завершен.
func (s *Shadow) Finished() bool {
	return s.tween == nil
}

// Radius - текущий радиус обзора.
func (s *Shadow) Radius() int {
	return s.radius
}

// SetRadius меняет радиус и помечает тень грязной.
func (s *Shadow) SetRadius(radius int) {
	if radius < 0 {
		radius = 0
	}
	if radius == s.radius {
		return
	}
	s.radius = radius
	s.MarkDirty()
}

// Reset забывает всё увиденное (перезапуск уровня).
func (s *Shadow) Reset() {
	s.Fov.Front().Clear()
	s.Fov.Back().Clear()
	s.Fow.Front().Clear()
	s.Fow.Back().Clear()
	s.tween = nil
	s.progress = 1
	s.MarkDirty()
}

func cellAlpha(fov *systems.FovData, fow *systems.FowData, pos domain.Position) float32 {
	switch {
	case fov.IsLit(pos):
		return AlphaLit
	case fow.IsVisible(pos):
		return AlphaRemembered
	default:
		return AlphaUnknown
	}
}

// CellAlpha - яркость клетки для рендерера с учетом перехода:
// линейная интерполяция между предыдущим и текущим состоянием по Progress.
func (s *Shadow) CellAlpha(pos domain.Position) float32 {
	from := cellAlpha(s.Fov.Back(), s.Fow.Back(), pos)
	to := cellAlpha(s.Fov.Front(), s.Fow.Front(), pos)
	return from + (to-from)*s.progress
}
