package actions

import (
	"delve/internal/domain"
	"delve/internal/engine/handlers"
	"delve/internal/systems"
)

// HandleUnequip обрабатывает команду UNEQUIP - снятие экипировки в рюкзак
func HandleUnequip(ctx handlers.Context, cmd domain.Command) (handlers.Result, error) {
	if err := systems.Unequip(ctx.Sys, ctx.Actor, cmd.ItemID); err != nil {
		return handlers.Result{}, err
	}
	return handlers.EmptyResult(), nil
}
