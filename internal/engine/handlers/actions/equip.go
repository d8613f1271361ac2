package actions

import (
	"delve/internal/domain"
	"delve/internal/engine/handlers"
	"delve/internal/systems"
)

// HandleEquip обрабатывает команду EQUIP - экипировка оружия/брони
func HandleEquip(ctx handlers.Context, cmd domain.Command) (handlers.Result, error) {
	if err := systems.Equip(ctx.Sys, ctx.Actor, cmd.ItemID); err != nil {
		return handlers.Result{}, err
	}
	return handlers.EmptyResult(), nil
}
