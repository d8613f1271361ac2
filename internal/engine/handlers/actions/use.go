package actions

import (
	"github.com/sirupsen/logrus"

	"delve/internal/domain"
	"delve/internal/engine/handlers"
	"delve/internal/systems"
	"delve/pkg/logger"
)

// HandleUse обрабатывает команду USE - зелья, свитки, переключение экипировки
func HandleUse(ctx handlers.Context, cmd domain.Command) (handlers.Result, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"component": "use_handler",
		"actor_id":  ctx.Actor.ID,
		"item_id":   cmd.ItemID,
	})

	if err := systems.UseItem(ctx.Sys, ctx.Actor, cmd.ItemID, cmd.Target); err != nil {
		log.WithError(err).Debug("Item use refused")
		return handlers.Result{}, err
	}
	return handlers.EmptyResult(), nil
}
