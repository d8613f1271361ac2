package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"delve/internal/domain"
	"delve/internal/engine/handlers"
	"delve/internal/engine/handlers/actions"
	"delve/internal/systems"
	"delve/pkg/api"
	"delve/pkg/dungeon"
	"delve/pkg/logger"
	"delve/pkg/utils"
)

// Status - чем закончился раунд
type Status int

const (
	StatusRunning  Status = iota
	StatusQuit            // игрок вышел на границе раунда
	StatusGameOver        // игрок погиб
)

func (s Status) String() string {
	switch s {
	case StatusQuit:
		return "QUIT"
	case StatusGameOver:
		return "GAME_OVER"
	}
	return "RUNNING"
}

// Game - контекст симуляции одной партии. Глобального состояния нет: все, что нужно
// раунду, живет здесь. Однопоточный: методы нельзя вызывать конкурентно.
type Game struct {
	cfg Config
	gen *dungeon.Generator

	world    *domain.World
	round    int
	messages domain.MessageLog
	visible  systems.VisibleSet
	over     bool

	handlers handlers.Table
	turns    *TurnManager

	// Saver - куда уходят команды SAVE. Без него сохранение отклоняется.
	Saver Saver

	log *logrus.Entry
}

func newGame(cfg Config, gen *dungeon.Generator, world *domain.World, round int) *Game {
	g := &Game{
		cfg:      cfg,
		gen:      gen,
		world:    world,
		round:    round,
		handlers: actions.NewTable(),
		turns:    NewTurnManager(),
		log:      logger.Log.WithFields(logrus.Fields{"component": "engine", "seed": cfg.Seed}),
	}
	g.messages.Reset(round)
	g.refreshFOV()
	if p := world.Player(); p != nil && p.IsDead() {
		g.over = true
	}
	return g
}

// NewGame начинает партию с первой глубины
func NewGame(cfg Config, gen *dungeon.Generator) (*Game, error) {
	world, err := gen.Generate(cfg.Seed, 1)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	g := newGame(cfg, gen, world, 0)
	g.messages.Add(domain.MsgInfo, "Добро пожаловать в подземелье. Найдите лестницу вниз.")
	g.log.Info("New game started")
	return g, nil
}

// Restore продолжает сохраненную партию. Сид берется из сохранения.
func Restore(cfg Config, gen *dungeon.Generator, state *domain.GameState) (*Game, error) {
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	cfg.Seed = state.Seed
	g := newGame(cfg, gen, state.World.Clone(), state.Round)
	g.messages.Add(domain.MsgInfo, fmt.Sprintf("С возвращением. Глубина %d.", state.World.Depth))
	g.log.WithFields(logrus.Fields{"depth": state.World.Depth, "round": state.Round}).Info("Game restored")
	return g, nil
}

func (g *Game) Seed() int64          { return g.cfg.Seed }
func (g *Game) Round() int           { return g.round }
func (g *Game) Depth() int           { return g.world.Depth }
func (g *Game) IsOver() bool         { return g.over }
func (g *Game) Turns() *TurnManager  { return g.turns }
func (g *Game) Rules() systems.Rules { return g.cfg.Rules }

// State - копия сохраняемого состояния. Вызывать только между раундами.
func (g *Game) State() *domain.GameState {
	return &domain.GameState{
		Seed:  g.cfg.Seed,
		Round: g.round,
		World: g.world.Clone(),
	}
}

// Snapshot - свежий снимок для рендера, с сообщениями последнего раунда
func (g *Game) Snapshot() *api.Snapshot {
	return BuildSnapshot(g.world, g.visible, g.messages.Snapshot(), g.round, g.cfg.Rules, g.over)
}

// Run играет раунды, пока игрок не выйдет или не погибнет. Observer получает снимок после
// каждого раунда. Отмена ctx прерывает ожидание ввода.
func (g *Game) Run(ctx context.Context, in Input, observer Observer) error {
	for {
		status, err := g.PlayRound(ctx, in)
		if err != nil {
			return err
		}
		if observer != nil {
			observer(g.Snapshot())
		}
		if status != StatusRunning {
			g.log.WithFields(logrus.Fields{"status": status.String(), "round": g.round, "depth": g.world.Depth}).Info("Game loop finished")
			return nil
		}
	}
}

// PlayRound - один раунд: команда игрока, ходы монстров, тик статусов.
func (g *Game) PlayRound(ctx context.Context, in Input) (Status, error) {
	if g.over {
		return StatusGameOver, nil
	}

	// 1. Ожидание игрока. SAVE и QUIT выполняются здесь и ход не тратят.
	var cmd domain.Command
	for {
		c, err := in.NextCommand(ctx, g.Snapshot())
		if err != nil {
			return StatusRunning, err
		}
		if !c.IsMeta() {
			cmd = c
			break
		}
		if c.Kind == domain.CommandQuit {
			g.log.WithField("round", g.round).Info("Quit requested")
			return StatusQuit, nil
		}
		g.save(ctx)
	}

	// 2. Новый раунд
	g.round++
	g.messages.Reset(g.round)
	sys := g.systemsContext()

	// 3. Очередь: игрок, затем монстры по возрастанию ID
	g.turns.Schedule(g.world)
	for id, ok := g.turns.Next(); ok; id, ok = g.turns.Next() {
		actor := g.world.GetActor(id)
		if actor == nil || actor.IsDead() {
			continue
		}

		if actor.IsPlayer() {
			res, err := g.executeCommand(sys, actor, cmd)
			if err != nil {
				return StatusRunning, err
			}
			if res.Outcome == handlers.OutcomeDescend {
				// Старый уровень со всеми монстрами отбрасывается, раунд закончен
				g.turns.Clear()
				if err := g.descend(sys); err != nil {
					return StatusRunning, err
				}
				return StatusRunning, nil
			}
			g.refreshFOV()
			sys.Visible = g.visible
		} else {
			if err := g.processAITurn(sys, actor); err != nil {
				return StatusRunning, err
			}
		}

		if g.world.Player().IsDead() {
			g.turns.Clear()
			break
		}
		// Убитые за этот ход своего хода уже не дождутся
		if n := g.turns.Prune(g.world); n > 0 {
			g.log.WithFields(logrus.Fields{"round": g.round, "pruned": n}).Debug("Fallen removed from turn order")
		}
	}

	// 4. Конец раунда: статусы
	g.tickStatuses(sys)

	if g.world.Player().IsDead() {
		g.over = true
		g.log.WithFields(logrus.Fields{"round": g.round, "depth": g.world.Depth}).Info("Player died")
		return StatusGameOver, nil
	}
	return StatusRunning, nil
}

// systemsContext - контекст систем на текущий раунд. Генератор зависит от (сид, глубина, раунд),
// поэтому раунд после загрузки разыгрывается так же, как без нее.
func (g *Game) systemsContext() *systems.Context {
	return &systems.Context{
		World:   g.world,
		Rules:   g.cfg.Rules,
		RNG:     utils.NewRand(g.cfg.Seed, int64(g.world.Depth), int64(g.round)),
		Log:     &g.messages,
		Visible: g.visible,
	}
}

// executeCommand выполняет команду актора. Отказ (*domain.CommandError) не ошибка движка:
// ход потрачен, причина уходит в лог раунда.
func (g *Game) executeCommand(sys *systems.Context, actor *domain.Actor, cmd domain.Command) (handlers.Result, error) {
	handler, ok := g.handlers[cmd.Kind]
	if !ok {
		handler = func(_ handlers.Context, cmd domain.Command) (handlers.Result, error) {
			return handlers.Result{}, domain.Rejectf(cmd.Kind, "неизвестная команда")
		}
	}

	res, err := handler(handlers.Context{Sys: sys, Actor: actor}, cmd)
	if err == nil {
		return res, nil
	}

	var cmdErr *domain.CommandError
	if !errors.As(err, &cmdErr) {
		g.log.WithError(err).WithFields(logrus.Fields{"actor_id": actor.ID, "command": cmd.String()}).Error("Command broke the world")
		return handlers.Result{}, err
	}

	entry := g.log.WithFields(logrus.Fields{"actor_id": actor.ID, "command": cmd.String(), "reason": cmdErr.Reason})
	if actor.IsPlayer() {
		entry.Warn("Command rejected")
		g.messages.Add(domain.MsgError, cmdErr.Reason)
	} else {
		entry.Debug("NPC command rejected")
	}
	return handlers.EmptyResult(), nil
}

// tickStatuses - в том же порядке, что и ходы
func (g *Game) tickStatuses(sys *systems.Context) {
	g.turns.Schedule(g.world)
	for id, ok := g.turns.Next(); ok; id, ok = g.turns.Next() {
		if a := g.world.GetActor(id); a != nil && !a.IsDead() {
			systems.TickStatuses(sys, a)
		}
	}
}

// descend переносит героя с вещами на depth+1. Перед новым уровнем он отдыхает.
func (g *Game) descend(sys *systems.Context) error {
	old := g.world
	player := old.Player()
	items := old.CarriedItems(player.ID)
	depth := old.Depth + 1

	next, err := g.gen.Generate(g.cfg.Seed, depth)
	if err != nil {
		return fmt.Errorf("descend to depth %d: %w", depth, err)
	}
	if err := next.AdoptPlayer(player, items); err != nil {
		return fmt.Errorf("descend to depth %d: %w", depth, err)
	}

	g.world = next
	sys.World = next
	g.messages.Add(domain.MsgLevel, fmt.Sprintf("Вы спускаетесь глубже. Глубина %d.", depth))
	systems.Rest(sys, player)
	g.refreshFOV()

	g.log.WithFields(logrus.Fields{
		"depth":    depth,
		"round":    g.round,
		"monsters": len(next.MonsterIDs()),
		"items":    len(next.Items),
	}).Info("Level transition")
	return nil
}

func (g *Game) refreshFOV() {
	p := g.world.Player()
	if p == nil {
		g.visible = systems.VisibleSet{}
		return
	}
	g.visible = systems.UpdateVisibility(g.world, p.Pos, p.VisionRadius)
}

// save - запрос SAVE на границе раунда
func (g *Game) save(ctx context.Context) {
	if g.Saver == nil {
		g.messages.Add(domain.MsgError, "Сохранение недоступно.")
		return
	}
	if err := g.Saver.Save(ctx, g.State()); err != nil {
		g.log.WithError(err).Error("Save failed")
		g.messages.Add(domain.MsgError, "Не удалось сохранить игру.")
		return
	}
	g.log.WithFields(logrus.Fields{"round": g.round, "depth": g.world.Depth}).Info("Game saved")
	g.messages.Add(domain.MsgInfo, "Игра сохранена.")
}

// World - доступ к миру только для отладки (/debug/world). Не менять!
func (g *Game) World() *domain.World { return g.world }
