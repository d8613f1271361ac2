package systems

import (
	"github.com/sirupsen/logrus"

	"delve/internal/domain"
	"delve/pkg/logger"
)

// VisibleSet - клетки, видимые наблюдателю
type VisibleSet map[domain.Position]bool

func (v VisibleSet) Contains(p domain.Position) bool { return v[p] }

// Симметричный shadowcasting по четырем квадрантам.
// Политика углов: стена видна, если луч ее касается; пол виден, только если его центр
// лежит внутри сектора. Поэтому видимость пола симметрична: A видит B <=> B видит A.
// Диагональная щель между двумя стенами пропускает взгляд (и шаг, см. CalculateMove).

type quadrant uint8

const (
	quadNorth quadrant = iota
	quadEast
	quadSouth
	quadWest
)

// transform переводит (глубина ряда, колонка) квадранта в координаты карты
func (q quadrant) transform(origin domain.Position, depth, col int) domain.Position {
	switch q {
	case quadNorth:
		return domain.Position{X: origin.X + col, Y: origin.Y - depth}
	case quadSouth:
		return domain.Position{X: origin.X + col, Y: origin.Y + depth}
	case quadEast:
		return domain.Position{X: origin.X + depth, Y: origin.Y + col}
	default:
		return domain.Position{X: origin.X - depth, Y: origin.Y + col}
	}
}

// slope - рациональный наклон num/den, den > 0. Дроби без плавающей точки: симметрия не
// должна зависеть от округления.
type slope struct {
	num, den int
}

// tileSlope - наклон левого края клетки (2*col - 1) / (2*depth)
func tileSlope(depth, col int) slope {
	return slope{num: 2*col - 1, den: 2 * depth}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// roundTiesUp(depth * s) = floor(depth*s + 1/2)
func roundTiesUp(depth int, s slope) int {
	return floorDiv(2*depth*s.num+s.den, 2*s.den)
}

// roundTiesDown(depth * s) = ceil(depth*s - 1/2)
func roundTiesDown(depth int, s slope) int {
	return -floorDiv(-(2*depth*s.num - s.den), 2*s.den)
}

type row struct {
	depth      int
	start, end slope
}

type scanner struct {
	grid    *domain.Grid
	origin  domain.Position
	radius  int
	q       quadrant
	visible VisibleSet
}

func (s *scanner) isWall(depth, col int) bool {
	return s.grid.BlocksSight(s.q.transform(s.origin, depth, col))
}

func (s *scanner) reveal(depth, col int) {
	p := s.q.transform(s.origin, depth, col)
	if !s.grid.InBounds(p) {
		return
	}
	if depth*depth+col*col > s.radius*s.radius {
		return
	}
	s.visible[p] = true
}

// isSymmetric - центр клетки внутри сектора ряда
func isSymmetric(r row, col int) bool {
	// col >= depth*start && col <= depth*end, в целых числах
	return col*r.start.den >= r.depth*r.start.num && col*r.end.den <= r.depth*r.end.num
}

func (s *scanner) scan(r row) {
	if r.depth > s.radius {
		return
	}
	minCol := roundTiesUp(r.depth, r.start)
	maxCol := roundTiesDown(r.depth, r.end)

	prevWall, prevFloor := false, false
	for col := minCol; col <= maxCol; col++ {
		wall := s.isWall(r.depth, col)
		if wall || isSymmetric(r, col) {
			s.reveal(r.depth, col)
		}
		if prevWall && !wall {
			r.start = tileSlope(r.depth, col)
		}
		if prevFloor && wall {
			next := row{depth: r.depth + 1, start: r.start, end: tileSlope(r.depth, col)}
			s.scan(next)
		}
		prevWall, prevFloor = wall, !wall
	}
	if prevFloor {
		s.scan(row{depth: r.depth + 1, start: r.start, end: r.end})
	}
}

// ComputeVisibleTiles возвращает видимые из origin клетки в радиусе radius (евклидова метрика).
func ComputeVisibleTiles(g *domain.Grid, origin domain.Position, radius int) VisibleSet {
	fovLogger := logger.Log.WithFields(logrus.Fields{
		"component":    "fov_system",
		"observer_pos": origin,
	})

	visible := make(VisibleSet)
	if radius <= 0 || !g.InBounds(origin) {
		fovLogger.WithField("radius", radius).Debug("FOV calculation skipped for blind observer.")
		return visible
	}

	// Центр всегда виден
	visible[origin] = true

	for q := quadNorth; q <= quadWest; q++ {
		s := &scanner{grid: g, origin: origin, radius: radius, q: q, visible: visible}
		s.scan(row{depth: 1, start: slope{-1, 1}, end: slope{1, 1}})
	}

	fovLogger.WithFields(logrus.Fields{
		"radius":        radius,
		"visible_tiles": len(visible),
	}).Debug("FOV calculation complete.")
	return visible
}

// UpdateVisibility пересчитывает FOV игрока: Visible заново, Explored только растет.
func UpdateVisibility(w *domain.World, origin domain.Position, radius int) VisibleSet {
	visible := ComputeVisibleTiles(w.Grid, origin, radius)
	w.Grid.ClearVisible()
	for p := range visible {
		t := w.Grid.At(p)
		t.Visible = true
		t.Explored = true
	}
	return visible
}

// CanSee - видит ли наблюдатель в from клетку to радиусом radius.
// targetView - готовое поле зрения цели радиусом targetRadius: между прозрачными клетками
// видимость симметрична, поэтому пока радиус наблюдателя не больше, пересчет не нужен.
// Дальнозоркий наблюдатель считает свое поле зрения сам.
func CanSee(g *domain.Grid, targetView VisibleSet, targetRadius int, from, to domain.Position, radius int) bool {
	if from.DistanceSquaredTo(to) > radius*radius {
		return false
	}
	if radius <= targetRadius {
		return targetView.Contains(from)
	}
	return ComputeVisibleTiles(g, from, radius).Contains(to)
}
