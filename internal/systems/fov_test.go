package systems

import (
	"testing"

	"delve/internal/domain"
	"delve/pkg/utils"
)

func TestFOV_OpenRoom(t *testing.T) {
	g, _ := domain.ParseGrid(openRoom)
	origin := domain.Position{X: 4, Y: 4}

	visible := ComputeVisibleTiles(g, origin, 10)

	// В пустой комнате видно все, включая стены по периметру
	for i := range g.Tiles {
		p := g.PositionOf(i)
		if !visible.Contains(p) {
			t.Errorf("tile %s not visible in open room", p)
		}
	}
}

func TestFOV_WallBlocks(t *testing.T) {
	g, _ := domain.ParseGrid([]string{
		"#########",
		"#.......#",
		"#...#...#",
		"#.......#",
		"#########",
	})
	origin := domain.Position{X: 2, Y: 2}
	visible := ComputeVisibleTiles(g, origin, 10)

	if !visible.Contains(domain.Position{X: 4, Y: 2}) {
		t.Error("wall itself must be visible")
	}
	if visible.Contains(domain.Position{X: 5, Y: 2}) {
		t.Error("tile directly behind the wall must be hidden")
	}
	if !visible.Contains(domain.Position{X: 5, Y: 1}) {
		t.Error("tile around the pillar must be visible")
	}
}

func TestFOV_Radius(t *testing.T) {
	g, _ := domain.ParseGrid(openRoom)
	origin := domain.Position{X: 1, Y: 1}
	visible := ComputeVisibleTiles(g, origin, 3)

	for p := range visible {
		if origin.DistanceSquaredTo(p) > 9 {
			t.Errorf("tile %s outside radius 3", p)
		}
	}
	if !visible.Contains(domain.Position{X: 4, Y: 1}) {
		t.Error("tile at distance 3 must be visible")
	}
	if len(ComputeVisibleTiles(g, origin, 0)) != 0 {
		t.Error("blind observer sees something")
	}
}

// Диагональная щель между двумя стенами пропускает взгляд
func TestFOV_DiagonalGap(t *testing.T) {
	g, _ := domain.ParseGrid([]string{
		"#####",
		"#..##",
		"#.#.#",
		"#####",
	})
	from := domain.Position{X: 2, Y: 1}
	to := domain.Position{X: 3, Y: 2}
	if !ComputeVisibleTiles(g, from, 5).Contains(to) {
		t.Error("diagonal neighbour through a corner gap must be visible")
	}
	if !ComputeVisibleTiles(g, to, 5).Contains(from) {
		t.Error("corner gap visibility must be symmetric")
	}
}

// Симметрия: для любых двух проходимых клеток A видит B <=> B видит A
func TestFOV_Symmetry(t *testing.T) {
	const radius = 8
	rng := utils.NewRand(2024)

	// Случайная карта со столбами
	g := domain.NewGrid(30, 20)
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			if rng.Intn(100) < 78 {
				g.Set(domain.Position{X: x, Y: y}, domain.TileFloor)
			}
		}
	}

	var floors []domain.Position
	for i, tile := range g.Tiles {
		if !tile.Kind.BlocksSight() {
			floors = append(floors, g.PositionOf(i))
		}
	}

	views := make(map[domain.Position]VisibleSet, len(floors))
	for _, p := range floors {
		views[p] = ComputeVisibleTiles(g, p, radius)
	}

	for _, a := range floors {
		for _, b := range floors {
			if views[a].Contains(b) != views[b].Contains(a) {
				t.Fatalf("asymmetric: %s sees %s = %v, reverse = %v", a, b, views[a].Contains(b), views[b].Contains(a))
			}
		}
	}
}

func TestUpdateVisibility_ExploredIsSticky(t *testing.T) {
	w := createTestWorld(t, []string{
		"############",
		"#....#.....#",
		"#..........#",
		"############",
	}, domain.Position{X: 1, Y: 1})

	far := domain.Position{X: 10, Y: 1}
	UpdateVisibility(w, domain.Position{X: 1, Y: 1}, 3)
	if w.Grid.At(far).Explored {
		t.Fatal("far tile explored too early")
	}

	UpdateVisibility(w, domain.Position{X: 9, Y: 1}, 3)
	if !w.Grid.At(far).Visible || !w.Grid.At(far).Explored {
		t.Fatal("far tile should be visible and explored")
	}

	UpdateVisibility(w, domain.Position{X: 1, Y: 1}, 3)
	if w.Grid.At(far).Visible {
		t.Error("far tile still visible after moving away")
	}
	if !w.Grid.At(far).Explored {
		t.Error("explored flag lost")
	}
}

func TestCanSee_ObserverRadiusBeyondTargetView(t *testing.T) {
	g, _ := domain.ParseGrid(openRoom)
	player := domain.Position{X: 1, Y: 1}
	monster := domain.Position{X: 7, Y: 7}
	view := ComputeVisibleTiles(g, player, 3)

	if view.Contains(monster) {
		t.Fatal("monster should be outside the player's short view")
	}
	if !CanSee(g, view, 3, monster, player, 12) {
		t.Error("far-sighted monster should see the player")
	}
	if CanSee(g, view, 3, monster, player, 6) {
		t.Error("distance exceeds the monster's radius")
	}

	// Сплошная стена между ними закрывает обзор и дальнозоркому
	for y := 1; y <= 8; y++ {
		g.Set(domain.Position{X: 4, Y: y}, domain.TileWall)
	}
	if CanSee(g, ComputeVisibleTiles(g, player, 3), 3, monster, player, 12) {
		t.Error("wall should block sight")
	}
}
