package actions

import (
	"github.com/sirupsen/logrus"

	"delve/internal/domain"
	"delve/internal/engine/handlers"
	"delve/internal/systems"
	"delve/pkg/logger"
)

// HandleDrop обрабатывает команду DROP - выброс предмета под ноги
func HandleDrop(ctx handlers.Context, cmd domain.Command) (handlers.Result, error) {
	if err := systems.Drop(ctx.Sys, ctx.Actor, cmd.ItemID); err != nil {
		return handlers.Result{}, err
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "drop_handler",
		"actor_id":  ctx.Actor.ID,
		"item_id":   cmd.ItemID,
	}).Debug("Item dropped successfully")
	return handlers.EmptyResult(), nil
}
