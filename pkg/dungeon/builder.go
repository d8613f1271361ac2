package dungeon

import (
	"fmt"
	"math/rand"

	"delve/internal/domain"
	"delve/pkg/utils"
)

// Rect - Вспомогательная структура для комнаты. Пол - внутренность (X+1..X+W-1).
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Contains - точка лежит на полу комнаты
func (r Rect) Contains(p domain.Position) bool {
	return p.X > r.X && p.X < r.X+r.W && p.Y > r.Y && p.Y < r.Y+r.H
}

func createRoom(g *domain.Grid, room Rect) {
	for y := room.Y + 1; y < room.Y+room.H; y++ {
		for x := room.X + 1; x < room.X+room.W; x++ {
			g.Set(domain.Position{X: x, Y: y}, domain.TileFloor)
		}
	}
}

func createHCorridor(g *domain.Grid, x1, x2, y int) {
	start := min(x1, x2)
	end := max(x1, x2)
	for x := start; x <= end; x++ {
		g.Set(domain.Position{X: x, Y: y}, domain.TileFloor)
	}
}

func createVCorridor(g *domain.Grid, y1, y2, x int) {
	start := min(y1, y2)
	end := max(y1, y2)
	for y := start; y <= end; y++ {
		g.Set(domain.Position{X: x, Y: y}, domain.TileFloor)
	}
}

// LevelBuilder предоставляет fluent API для создания уровней.
// Первая ошибка запоминается, последующие шаги становятся no-op, Build ее возвращает.
type LevelBuilder struct {
	depth   int
	width   int
	height  int
	rooms   []Rect
	grid    *domain.Grid
	arrival *domain.Position
	stairs  domain.Position
	rng     *rand.Rand
	content *Content
	world   *domain.World
	err     error
}

// NewLevel создает новый builder для уровня. rng отвечает только за планировку.
func NewLevel(depth int, rng *rand.Rand, content *Content) *LevelBuilder {
	return &LevelBuilder{
		depth:   depth,
		width:   domain.DefaultMapWidth,
		height:  domain.DefaultMapHeight,
		rng:     rng,
		content: content,
	}
}

// WithSize устанавливает размер карты
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.width = width
	b.height = height
	return b
}

// WithArrival задает точку прибытия: первая комната обязана ее накрыть
func (b *LevelBuilder) WithArrival(p domain.Position) *LevelBuilder {
	b.arrival = &p
	return b
}

// WithRooms генерирует комнаты и коридоры (attempts попыток, размер minSize..maxSize)
func (b *LevelBuilder) WithRooms(attempts, minSize, maxSize int) *LevelBuilder {
	if b.err != nil {
		return b
	}
	if b.width < minSize+2 || b.height < minSize+2 {
		b.err = fmt.Errorf("%w: map %dx%d cannot fit a %d room", domain.ErrGeneration, b.width, b.height, minSize)
		return b
	}
	if b.arrival != nil && (b.arrival.X < 1 || b.arrival.X > b.width-2 || b.arrival.Y < 1 || b.arrival.Y > b.height-2) {
		b.err = fmt.Errorf("%w: arrival %s outside carvable area", domain.ErrGeneration, *b.arrival)
		return b
	}

	// Инициализируем карту стенами
	b.grid = domain.NewGrid(b.width, b.height)

	b.rooms = make([]Rect, 0, attempts)
	for i := 0; i < attempts; i++ {
		w := utils.RandRange(b.rng, minSize, min(maxSize, b.width-2))
		h := utils.RandRange(b.rng, minSize, min(maxSize, b.height-2))

		var newRoom Rect
		if len(b.rooms) == 0 && b.arrival != nil {
			newRoom = b.roomAround(*b.arrival, w, h)
		} else {
			x := utils.RandRange(b.rng, 0, b.width-w-1)
			y := utils.RandRange(b.rng, 0, b.height-h-1)
			newRoom = Rect{X: x, Y: y, W: w, H: h}
		}

		// Проверяем пересечения
		failed := false
		for _, other := range b.rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		createRoom(b.grid, newRoom)

		// Соединяем с предыдущей комнатой L-коридором
		if len(b.rooms) > 0 {
			prevX, prevY := b.rooms[len(b.rooms)-1].Center()
			currX, currY := newRoom.Center()

			if b.rng.Intn(2) == 0 {
				createHCorridor(b.grid, prevX, currX, prevY)
				createVCorridor(b.grid, prevY, currY, currX)
			} else {
				createVCorridor(b.grid, prevY, currY, prevX)
				createHCorridor(b.grid, prevX, currX, currY)
			}
		}
		b.rooms = append(b.rooms, newRoom)
	}

	return b
}

// roomAround выбирает положение комнаты w x h, пол которой накрывает точку p
func (b *LevelBuilder) roomAround(p domain.Position, w, h int) Rect {
	lo := max(p.X-w+1, 0)
	hi := min(p.X-1, b.width-w-1)
	x := utils.RandRange(b.rng, lo, hi)

	lo = max(p.Y-h+1, 0)
	hi = min(p.Y-1, b.height-h-1)
	y := utils.RandRange(b.rng, lo, hi)
	return Rect{X: x, Y: y, W: w, H: h}
}

// RequireRooms проверяет, что комнат достаточно
func (b *LevelBuilder) RequireRooms(minRooms int) *LevelBuilder {
	if b.err != nil {
		return b
	}
	if len(b.rooms) < minRooms {
		b.err = fmt.Errorf("%w: placed %d rooms, need %d", domain.ErrGeneration, len(b.rooms), minRooms)
	}
	return b
}

// PlaceStairs размещает лестницы: вниз - в центре последней комнаты, вверх - в точке прибытия
func (b *LevelBuilder) PlaceStairs() *LevelBuilder {
	if b.err != nil {
		return b
	}
	if len(b.rooms) < 2 {
		b.err = fmt.Errorf("%w: stairs need a room outside the spawn room", domain.ErrGeneration)
		return b
	}

	lx, ly := b.rooms[len(b.rooms)-1].Center()
	b.stairs = domain.Position{X: lx, Y: ly}
	b.grid.Set(b.stairs, domain.TileStairsDown)

	if b.arrival != nil {
		b.grid.Set(*b.arrival, domain.TileStairsUp)
	}
	return b
}

// StartPos - стартовая позиция: точка прибытия или центр первой комнаты
func (b *LevelBuilder) StartPos() domain.Position {
	if b.arrival != nil {
		return *b.arrival
	}
	if len(b.rooms) > 0 {
		cx, cy := b.rooms[0].Center()
		return domain.Position{X: cx, Y: cy}
	}
	return domain.Position{X: b.width / 2, Y: b.height / 2}
}

// StairsPos - где лежит спуск
func (b *LevelBuilder) StairsPos() domain.Position {
	return b.stairs
}

func (b *LevelBuilder) Rooms() []Rect {
	return b.rooms
}

// Populate создает мир и расселяет монстров и предметы по комнатам, кроме стартовой
func (b *LevelBuilder) Populate(rng *rand.Rand) *LevelBuilder {
	if b.err != nil {
		return b
	}
	b.world = domain.NewWorld(b.depth, b.grid)

	maxMonsters := FromDepth(b.content.Tables.MaxMonsters, b.depth)
	maxItems := FromDepth(b.content.Tables.MaxItems, b.depth)

	for _, room := range b.rooms[1:] {
		b.spawnMonsters(rng, room, rng.Intn(maxMonsters+1))
		b.spawnItems(rng, room, rng.Intn(maxItems+1))
		if b.err != nil {
			return b
		}
	}
	return b
}

func (b *LevelBuilder) randomFloor(rng *rand.Rand, room Rect) domain.Position {
	return domain.Position{
		X: utils.RandRange(rng, room.X+1, room.X+room.W-1),
		Y: utils.RandRange(rng, room.Y+1, room.Y+room.H-1),
	}
}

func (b *LevelBuilder) spawnMonsters(rng *rand.Rand, room Rect, count int) {
	for i := 0; i < count; i++ {
		pos := b.randomFloor(rng, room)
		if b.grid.Kind(pos) != domain.TileFloor || !b.world.IsFree(pos) {
			continue
		}
		id, ok := weightedChoice(b.content.Tables.MonsterWeights, b.depth, rng.Intn)
		if !ok {
			return
		}
		tmpl := b.content.Monsters[id]
		monster := tmpl.Spawn(b.world.NewID(domain.EntityKindActor), pos, b.depth, b.content.Tables.MonsterScaling, rng)
		if err := b.world.AddActor(monster); err != nil {
			b.err = err
			return
		}

		if tmpl.Loot != nil && rng.Intn(100) < tmpl.Loot.Chance {
			loot := b.content.Items[tmpl.Loot.Item].Spawn(b.world.NewID(domain.EntityKindItem), domain.Position{})
			loot.Owner = monster.ID
			monster.Inventory = append(monster.Inventory, loot.ID)
			if err := b.world.AddItem(loot); err != nil {
				b.err = err
				return
			}
		}
	}
}

func (b *LevelBuilder) spawnItems(rng *rand.Rand, room Rect, count int) {
	for i := 0; i < count; i++ {
		pos := b.randomFloor(rng, room)
		if b.grid.Kind(pos) != domain.TileFloor || len(b.world.ItemsAt(pos)) > 0 {
			continue
		}
		id, ok := weightedChoice(b.content.Tables.ItemWeights, b.depth, rng.Intn)
		if !ok {
			return
		}
		item := b.content.Items[id].Spawn(b.world.NewID(domain.EntityKindItem), pos)
		if err := b.world.AddItem(item); err != nil {
			b.err = err
			return
		}
	}
}

// Build собирает и возвращает готовый мир (без игрока)
func (b *LevelBuilder) Build() (*domain.World, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.world == nil {
		b.world = domain.NewWorld(b.depth, b.grid)
	}
	return b.world, nil
}
