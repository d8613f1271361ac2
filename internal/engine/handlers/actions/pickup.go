package actions

import (
	"delve/internal/engine/handlers"
	"delve/internal/systems"
)

// HandlePickup поднимает то, что лежит под ногами
func HandlePickup(ctx handlers.Context) (handlers.Result, error) {
	if err := systems.Pickup(ctx.Sys, ctx.Actor); err != nil {
		return handlers.Result{}, err
	}
	return handlers.EmptyResult(), nil
}
