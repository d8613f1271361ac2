package dungeon

import (
	"errors"
	"os"
	"testing"

	"delve/internal/domain"
	"delve/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	content, err := DefaultContent()
	if err != nil {
		t.Fatalf("DefaultContent: %v", err)
	}
	return NewGenerator(content, DefaultConfig())
}

func TestGenerate(t *testing.T) {
	gen := newTestGenerator(t)
	world, err := gen.Generate(42, 1)
	if err != nil {
		t.Fatal(err)
	}

	// 1. Проверка размеров мира
	if world.Grid.Width != domain.DefaultMapWidth || world.Grid.Height != domain.DefaultMapHeight {
		t.Errorf("Expected map size %dx%d, got %dx%d", domain.DefaultMapWidth, domain.DefaultMapHeight, world.Grid.Width, world.Grid.Height)
	}

	// 2. Инварианты мира
	if err := world.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	// 3. Ровно одна лестница вниз, и игрок не на ней
	stairs := 0
	for _, tile := range world.Grid.Tiles {
		if tile.Kind == domain.TileStairsDown {
			stairs++
		}
	}
	if stairs != 1 {
		t.Errorf("expected exactly one StairsDown, got %d", stairs)
	}
	player := world.Player()
	if player == nil {
		t.Fatal("no player")
	}
	if world.Grid.Kind(player.Pos) == domain.TileStairsDown {
		t.Error("player spawned on the stairs")
	}

	// 4. Стартовый набор: кинжал в руке
	if player.Equipment.Weapon == domain.NilEntityID {
		t.Error("starting weapon not equipped")
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	gen := newTestGenerator(t)
	for depth := 1; depth <= 4; depth++ {
		a, err := gen.Generate(1234, depth)
		if err != nil {
			t.Fatal(err)
		}
		b, err := gen.Generate(1234, depth)
		if err != nil {
			t.Fatal(err)
		}

		rowsA, rowsB := a.Grid.Rows(), b.Grid.Rows()
		for y := range rowsA {
			if rowsA[y] != rowsB[y] {
				t.Fatalf("depth %d row %d differs", depth, y)
			}
		}
		if len(a.Actors) != len(b.Actors) || len(a.Items) != len(b.Items) {
			t.Fatalf("depth %d: population differs", depth)
		}
		for id, actor := range a.Actors {
			other := b.Actors[id]
			if other == nil || other.Pos != actor.Pos || other.Stats != actor.Stats || other.Template != actor.Template {
				t.Fatalf("depth %d: actor %s differs", depth, id)
			}
		}
		for id, item := range a.Items {
			other := b.Items[id]
			if other == nil || other.Pos != item.Pos || other.Template != item.Template {
				t.Fatalf("depth %d: item %s differs", depth, id)
			}
		}
	}

	other, err := gen.Generate(1235, 1)
	if err != nil {
		t.Fatal(err)
	}
	base, _ := gen.Generate(1234, 1)
	same := true
	for i := range base.Grid.Tiles {
		if base.Grid.Tiles[i].Kind != other.Grid.Tiles[i].Kind {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical maps")
	}
}

func TestGenerate_Connectivity(t *testing.T) {
	gen := newTestGenerator(t)
	for seed := int64(0); seed < 20; seed++ {
		world, err := gen.Generate(seed, 1+int(seed%5))
		if err != nil {
			t.Fatal(err)
		}
		g := world.Grid

		// BFS от игрока по проходимым клеткам
		start := world.Player().Pos
		seen := map[domain.Position]bool{start: true}
		queue := []domain.Position{start}
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			for _, d := range domain.Directions {
				n := p.Step(d)
				if !seen[n] && g.IsWalkable(n) {
					seen[n] = true
					queue = append(queue, n)
				}
			}
		}

		for i, tile := range g.Tiles {
			if tile.Kind.IsWalkable() && !seen[g.PositionOf(i)] {
				t.Fatalf("seed %d: tile %s unreachable", seed, g.PositionOf(i))
			}
		}
	}
}

func TestGenerate_ArrivalMatchesPreviousStairs(t *testing.T) {
	gen := newTestGenerator(t)
	const seed = 99
	prev, err := gen.Generate(seed, 1)
	if err != nil {
		t.Fatal(err)
	}
	for depth := 2; depth <= 5; depth++ {
		stairs, ok := prev.Grid.Find(domain.TileStairsDown)
		if !ok {
			t.Fatalf("depth %d has no stairs", depth-1)
		}
		next, err := gen.Generate(seed, depth)
		if err != nil {
			t.Fatal(err)
		}
		if got := next.Player().Pos; got != stairs {
			t.Fatalf("depth %d: player at %s, previous stairs at %s", depth, got, stairs)
		}
		if next.Grid.Kind(stairs) != domain.TileStairsUp {
			t.Errorf("depth %d: arrival tile is %s", depth, next.Grid.Kind(stairs))
		}
		prev = next
	}
}

func TestGenerate_Failure(t *testing.T) {
	content, err := DefaultContent()
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 12, 12
	gen := NewGenerator(content, cfg)

	// На карте 12x12 вторая комната размером от 6 не помещается
	if _, err := gen.Generate(1, 1); !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
	if _, err := newTestGenerator(t).Generate(1, 0); !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("depth 0: expected ErrGeneration, got %v", err)
	}
}

func TestMonsterTemplate_ScalesWithDepth(t *testing.T) {
	gen := newTestGenerator(t)
	c := gen.Content()
	for id, m := range c.Monsters {
		prev := m.Scaled(1, c.Tables.MonsterScaling)
		for depth := 2; depth <= 12; depth++ {
			s := m.Scaled(depth, c.Tables.MonsterScaling)
			if s.HP < prev.HP || s.Attack < prev.Attack || s.Defense < prev.Defense {
				t.Fatalf("%s gets weaker at depth %d", id, depth)
			}
			prev = s
		}
	}
	for depth := 1; depth < 12; depth++ {
		if FromDepth(c.Tables.MaxMonsters, depth+1) < FromDepth(c.Tables.MaxMonsters, depth) {
			t.Fatalf("max monsters drops after depth %d", depth)
		}
	}
}

// Тест вспомогательной функции пересечения комнат
func TestRect_Intersects(t *testing.T) {
	r1 := Rect{0, 0, 10, 10}
	r2 := Rect{5, 5, 10, 10} // Пересекается
	r3 := Rect{20, 20, 5, 5} // Не пересекается

	if !r1.Intersects(r2) {
		t.Error("Rects should intersect")
	}

	if r1.Intersects(r3) {
		t.Error("Rects should NOT intersect")
	}
}
