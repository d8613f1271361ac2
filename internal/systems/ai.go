package systems

import (
	"github.com/sirupsen/logrus"

	"delve/internal/domain"
	"delve/pkg/logger"
)

// Decide - единственная функция решений AI. Переключение поведения делается здесь же.
func Decide(ctx *Context, npc *domain.Actor) domain.Command {
	aiLogger := logger.Log.WithFields(logrus.Fields{
		"component": "ai",
		"npc_id":    npc.ID,
		"behavior":  npc.Behavior.String(),
	})

	player := ctx.World.Player()
	if npc.IsDead() || player == nil || player.IsDead() {
		return domain.Wait()
	}

	// 1. Смятение: случайный шаг вместо любого намерения
	if npc.HasEffect(domain.StatusConfused) {
		dir := domain.Directions[ctx.roll(len(domain.Directions))]
		aiLogger.WithField("dir", dir.String()).Debug("Confused, stumbling")
		return domain.Move(dir)
	}

	canSee := CanSee(ctx.World.Grid, ctx.Visible, player.VisionRadius, npc.Pos, player.Pos, npc.VisionRadius)
	if canSee && npc.Behavior != domain.BehaviorChase {
		aiLogger.Debug("Player spotted")
		npc.Behavior = domain.BehaviorChase
	}

	switch npc.Behavior {
	case domain.BehaviorChase:
		if npc.Pos.IsAdjacent(player.Pos) {
			return domain.Attack(domain.DirectionFromDelta(player.Pos.X-npc.Pos.X, player.Pos.Y-npc.Pos.Y))
		}
		if !canSee {
			// Потеряли из виду - снова бродим
			npc.Behavior = domain.BehaviorWander
			return wander(ctx, npc)
		}
		if dir := calculateSmartMove(ctx.World, npc, player.Pos); dir != domain.DirNone {
			return domain.Move(dir)
		}
		return domain.Wait()

	case domain.BehaviorWander:
		return wander(ctx, npc)
	}
	return domain.Wait()
}

func wander(ctx *Context, npc *domain.Actor) domain.Command {
	dir := domain.Directions[ctx.roll(len(domain.Directions))]
	if CalculateMove(ctx.World, npc, dir).HasMoved {
		return domain.Move(dir)
	}
	return domain.Wait()
}

// calculateSmartMove - шаг к цели: сначала по прямой, затем скольжением вдоль приоритетной оси
func calculateSmartMove(w *domain.World, npc *domain.Actor, target domain.Position) domain.Direction {
	dxRaw := target.X - npc.Pos.X
	dyRaw := target.Y - npc.Pos.Y

	stepX := sign(dxRaw)
	stepY := sign(dyRaw)

	// Попытка 1: Идеальный путь
	if d := domain.DirectionFromDelta(stepX, stepY); d != domain.DirNone && CalculateMove(w, npc, d).HasMoved {
		return d
	}

	// Попытка 2: Smart Sliding (выбор приоритетной оси)
	horizontal := domain.DirectionFromDelta(stepX, 0)
	vertical := domain.DirectionFromDelta(0, stepY)
	order := []domain.Direction{vertical, horizontal}
	if abs(dxRaw) > abs(dyRaw) {
		order = []domain.Direction{horizontal, vertical}
	}
	for _, d := range order {
		if d != domain.DirNone && CalculateMove(w, npc, d).HasMoved {
			return d
		}
	}

	return domain.DirNone // Тупик
}
