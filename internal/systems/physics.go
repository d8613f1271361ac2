package systems

import (
	"delve/internal/domain"
)

// Trace ведет луч от from к to по Брезенхэму (только целочисленная арифметика).
// Луч останавливается на первом акторе или перед непрозрачной клеткой.
// Возвращает точку остановки и задетого актора (nil, если никого).
func Trace(w *domain.World, from, to domain.Position) (domain.Position, *domain.Actor) {
	x0, y0 := from.X, from.Y
	x1, y1 := to.X, to.Y

	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	err := dx - dy

	last := from
	for {
		p := domain.Position{X: x0, Y: y0}
		if p != from {
			if w.Grid.BlocksSight(p) {
				return last, nil
			}
			if a := w.ActorAt(p); a != nil {
				return p, a
			}
			last = p
		}
		if x0 == x1 && y0 == y1 {
			return last, nil
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
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
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
