package domain

import (
	"fmt"
	"math"
)

// Position - клетка сетки. Любые целые координаты допустимы,
// в том числе отрицательные: проверку границ делает карта.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Shift возвращает новую позицию со смещением, не меняя текущую.
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Step сдвигает позицию на одну клетку в направлении d.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return p.Shift(dx, dy)
}

// DistanceTo возвращает точное расстояние до другой точки (float)
func (p Position) DistanceTo(other Position) float64 {
	return math.Sqrt(float64(p.DistanceSquaredTo(other)))
}

// DistanceSquaredTo возвращает квадрат расстояния (int) для сравнения без корней
func (p Position) DistanceSquaredTo(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// IsAdjacent возвращает true, если цель в соседней клетке (включая диагональ)
func (p Position) IsAdjacent(other Position) bool {
	dx := abs(p.X - other.X)
	dy := abs(p.Y - other.Y)
	return dx <= 1 && dy <= 1 && (dx != 0 || dy != 0)
}

// DirectionTo возвращает шаг по осям (-1, 0, 1) в сторону other.
func (p Position) DirectionTo(other Position) (int, int) {
	return sign(other.X - p.X), sign(other.Y - p.Y)
}

// Direction - одно из восьми направлений взгляда/шага.
type Direction uint8

const (
	DirN Direction = iota
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
)

var directionDeltas = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

var directionNames = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Delta возвращает смещение (dx, dy) для направления.
func (d Direction) Delta() (int, int) {
	v := directionDeltas[d%8]
	return v[0], v[1]
}

func (d Direction) String() string {
	return directionNames[d%8]
}

// DirectionFromDelta подбирает направление по смещению.
// Нулевой вектор невалиден.
func DirectionFromDelta(dx, dy int) (Direction, bool) {
	dx, dy = sign(dx), sign(dy)
	for i, v := range directionDeltas {
		if v[0] == dx && v[1] == dy {
			return Direction(i), true
		}
	}
	return DirN, false
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
