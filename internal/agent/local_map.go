package agent

import (
	"delve/internal/domain"
	"delve/pkg/api"
)

// localMap - картина мира, восстановленная из снимка: только исследованные клетки
type localMap struct {
	tiles    map[api.Position]string
	monsters []api.EntityView
	occupied map[api.Position]bool
	loot     map[api.Position]bool
}

func newLocalMap(snap *api.Snapshot) *localMap {
	m := &localMap{
		tiles:    make(map[api.Position]string, len(snap.Map)),
		occupied: make(map[api.Position]bool),
		loot:     make(map[api.Position]bool),
	}
	for _, t := range snap.Map {
		m.tiles[api.Position{X: t.X, Y: t.Y}] = t.Kind
	}
	for _, e := range snap.Entities {
		if e.Faction == "PLAYER" {
			continue
		}
		m.monsters = append(m.monsters, e)
		m.occupied[e.Pos] = true
	}
	for _, it := range snap.Items {
		if it.Pos != nil && it.Kind != "CORPSE" {
			m.loot[*it.Pos] = true
		}
	}
	return m
}

func (m *localMap) kind(p api.Position) string {
	return m.tiles[p]
}

func (m *localMap) passable(p api.Position) bool {
	k, ok := m.tiles[p]
	return ok && k != "WALL" && !m.occupied[p]
}

func (m *localMap) isMonsterAdjacent(p api.Position) bool {
	for _, e := range m.monsters {
		if chebyshev(p, e.Pos) == 1 {
			return true
		}
	}
	return false
}

func (m *localMap) hasLoot(p api.Position) bool { return m.loot[p] }

func (m *localMap) isStairs(p api.Position) bool { return m.tiles[p] == "STAIRS_DOWN" }

// isFrontier - известная проходимая клетка рядом с неизвестной
func (m *localMap) isFrontier(p api.Position) bool {
	for _, d := range domain.Directions {
		dx, dy := d.Delta()
		if _, known := m.tiles[api.Position{X: p.X + dx, Y: p.Y + dy}]; !known {
			return true
		}
	}
	return false
}

// stepTowards - первый шаг кратчайшего пути (BFS по 8 направлениям) к ближайшей клетке-цели.
// Стартовая клетка целью не считается.
func (m *localMap) stepTowards(from api.Position, goal func(api.Position) bool) (domain.Direction, bool) {
	type node struct {
		pos   api.Position
		first domain.Direction
	}
	seen := map[api.Position]bool{from: true}
	queue := []node{{pos: from}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range domain.Directions {
			dx, dy := d.Delta()
			next := api.Position{X: cur.pos.X + dx, Y: cur.pos.Y + dy}
			if seen[next] || !m.passable(next) {
				continue
			}
			seen[next] = true
			first := cur.first
			if cur.pos == from {
				first = d
			}
			if goal(next) {
				return first, true
			}
			queue = append(queue, node{pos: next, first: first})
		}
	}
	return domain.DirNone, false
}
