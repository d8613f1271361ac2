package actions

import (
	"delve/internal/domain"
	"delve/internal/engine/handlers"
	"delve/internal/systems"
)

// HandleMove - шаг или открытие двери. Занятая клетка - отказ, ход потрачен
func HandleMove(ctx handlers.Context, cmd domain.Command) (handlers.Result, error) {
	if err := systems.Move(ctx.Sys, ctx.Actor, cmd.Dir); err != nil {
		return handlers.Result{}, err
	}
	return handlers.EmptyResult(), nil
}
