package domain

import "fmt"

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
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

// Shift возвращает новую позицию со смещением, не меняя текущую
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Step - сдвиг на одну клетку в направлении.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return p.Shift(dx, dy)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
