package dungeon

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"delve/internal/domain"
	"delve/pkg/logger"
	"delve/pkg/utils"
)

// Config - параметры планировки
type Config struct {
	Width       int
	Height      int
	MaxRooms    int // число попыток разместить комнату
	RoomMinSize int
	RoomMaxSize int
	MinRooms    int
}

// DefaultConfig - карта 80x43, до 30 комнат размером 6..10
func DefaultConfig() Config {
	return Config{
		Width:       domain.DefaultMapWidth,
		Height:      domain.DefaultMapHeight,
		MaxRooms:    30,
		RoomMinSize: 6,
		RoomMaxSize: 10,
		MinRooms:    2,
	}
}

// Потоки случайности одного уровня
const (
	streamLayout int64 = iota
	streamPopulate
)

// Generator строит уровни. Результат зависит только от (seed, depth).
type Generator struct {
	content *Content
	cfg     Config
	log     *logrus.Entry
}

func NewGenerator(content *Content, cfg Config) *Generator {
	return &Generator{
		content: content,
		cfg:     cfg,
		log:     logger.Log.WithField("component", "dungeon"),
	}
}

func (g *Generator) Content() *Content { return g.content }

// Generate создает уровень depth со свежим игроком в стартовой точке
func (g *Generator) Generate(seed int64, depth int) (*domain.World, error) {
	if depth < 1 {
		return nil, fmt.Errorf("%w: depth %d < 1", domain.ErrGeneration, depth)
	}

	// 1. Точка прибытия - место спуска на предыдущей глубине
	var arrival *domain.Position
	for d := 1; d < depth; d++ {
		b := g.layout(seed, d, arrival)
		if b.err != nil {
			return nil, fmt.Errorf("depth %d layout: %w", d, b.err)
		}
		stairs := b.StairsPos()
		arrival = &stairs
	}

	// 2. Планировка и заселение
	b := g.layout(seed, depth, arrival).
		Populate(utils.NewRand(seed, int64(depth), streamPopulate))
	world, err := b.Build()
	if err != nil {
		g.log.WithError(err).WithFields(logrus.Fields{"seed": seed, "depth": depth}).Error("Level generation failed")
		return nil, err
	}

	// 3. Игрок
	if _, err := g.NewPlayer(world, b.StartPos()); err != nil {
		return nil, err
	}

	g.log.WithFields(logrus.Fields{
		"seed":     seed,
		"depth":    depth,
		"rooms":    len(b.Rooms()),
		"monsters": len(world.Actors) - 1,
		"items":    len(world.Items),
	}).Debug("Level generated")
	return world, nil
}

// layout строит только карту: комнаты, коридоры, лестницы
func (g *Generator) layout(seed int64, depth int, arrival *domain.Position) *LevelBuilder {
	b := NewLevel(depth, utils.NewRand(seed, int64(depth), streamLayout), g.content).
		WithSize(g.cfg.Width, g.cfg.Height)
	if arrival != nil {
		b.WithArrival(*arrival)
	}
	return b.WithRooms(g.cfg.MaxRooms, g.cfg.RoomMinSize, g.cfg.RoomMaxSize).
		RequireRooms(g.cfg.MinRooms).
		PlaceStairs()
}

// NewPlayer создает героя со стартовым набором. Игрок и его набор живут в пространстве имен глубины 0.
func (g *Generator) NewPlayer(world *domain.World, pos domain.Position) (*domain.Actor, error) {
	t := g.content.Player
	vision := t.Vision
	if vision <= 0 {
		vision = domain.PlayerVisionRadius
	}
	player := &domain.Actor{
		ID:           domain.PlayerID,
		Name:         t.Name,
		Template:     "player",
		Pos:          pos,
		Faction:      domain.FactionPlayer,
		Stats:        domain.Stats{HP: t.HP, MaxHP: t.HP, Attack: t.Attack, Defense: t.Defense},
		Progression:  domain.Progression{Level: 1},
		VisionRadius: vision,
	}
	if err := world.AddActor(player); err != nil {
		return nil, fmt.Errorf("%w: place player: %v", domain.ErrGeneration, err)
	}

	next := domain.PlayerID.Index()
	for _, k := range t.StartingKit {
		next++
		item := g.content.Items[k.Item].Spawn(domain.PackEntityID(domain.EntityKindItem, 0, next), domain.Position{})
		item.Owner = player.ID
		slot := item.Kind.Slot()
		if k.Equip && slot != domain.SlotNone && player.Equipment.Get(slot) == domain.NilEntityID {
			player.Equipment.Set(slot, item.ID)
		} else {
			player.Inventory = append(player.Inventory, item.ID)
		}
		if err := world.AddItem(item); err != nil {
			return nil, fmt.Errorf("%w: starting kit: %v", domain.ErrGeneration, err)
		}
	}
	return player, nil
}
