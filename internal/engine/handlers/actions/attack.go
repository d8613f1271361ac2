package actions

import (
	"delve/internal/domain"
	"delve/internal/engine/handlers"
	"delve/internal/systems"
)

// HandleAttack - удар по соседней клетке в заданном направлении
func HandleAttack(ctx handlers.Context, cmd domain.Command) (handlers.Result, error) {
	// 1. Поиск цели
	target := ctx.World().ActorAt(ctx.Actor.Pos.Step(cmd.Dir))
	if target == nil {
		return handlers.Result{}, domain.Rejectf(cmd.Kind, "там никого нет")
	}

	// 2. Своих не бьем
	if target.Faction == ctx.Actor.Faction {
		return handlers.Result{}, domain.Rejectf(cmd.Kind, "%s не враг", target.Name)
	}

	// 3. Вызов Системы Боя
	systems.Attack(ctx.Sys, ctx.Actor, target)
	return handlers.EmptyResult(), nil
}
