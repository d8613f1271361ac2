package systems

import (
	"delve/internal/domain"
)

// MovementResult - результат вычисления движения
type MovementResult struct {
	Target    domain.Position
	HasMoved  bool
	BlockedBy *domain.Actor // Если клетку занимает другой актор
	IsWall    bool          // Если врезались в стену
	IsDoor    bool          // Закрытая дверь: шаг откроет ее
}

// CalculateMove вычисляет новую позицию. Не меняет состояние мира!
// Диагональный шаг проверяет только клетку назначения, углы стен не мешают.
func CalculateMove(w *domain.World, a *domain.Actor, dir domain.Direction) MovementResult {
	targetPos := a.Pos.Step(dir)
	res := MovementResult{Target: targetPos}

	// 1. Проверка границ
	if !w.Grid.InBounds(targetPos) {
		res.IsWall = true
		return res
	}

	// 2. Проверка стен и дверей
	switch kind := w.Grid.Kind(targetPos); {
	case kind == domain.TileDoorClosed:
		res.IsDoor = true
		return res
	case !kind.IsWalkable():
		res.IsWall = true
		return res
	}

	// 3. Проверка акторов
	if other := w.ActorAt(targetPos); other != nil && other.ID != a.ID {
		res.BlockedBy = other
		return res
	}

	res.HasMoved = true
	return res
}

// Move выполняет шаг. Закрытая дверь открывается, занятая клетка - отказ.
// Атака делается только командой ATTACK.
func Move(ctx *Context, a *domain.Actor, dir domain.Direction) error {
	res := CalculateMove(ctx.World, a, dir)
	switch {
	case res.HasMoved:
		return ctx.World.MoveActor(a, res.Target)
	case res.IsDoor:
		ctx.World.Grid.Set(res.Target, domain.TileDoorOpen)
		if a.IsPlayer() {
			ctx.say(domain.MsgInfo, "Вы открываете дверь.")
		}
		return nil
	case res.BlockedBy != nil:
		return domain.Rejectf(domain.CommandMove, "путь загораживает %s", res.BlockedBy.Name)
	}
	return domain.Rejectf(domain.CommandMove, "там стена")
}
