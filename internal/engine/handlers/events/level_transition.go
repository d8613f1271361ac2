package events

import (
	"github.com/sirupsen/logrus"

	"delve/internal/domain"
	"delve/internal/engine/handlers"
	"delve/pkg/logger"
)

// HandleDescend проверяет, что актор стоит на лестнице вниз.
// Сам переход (генерация depth+1, перенос героя) делает движок по OutcomeDescend.
func HandleDescend(ctx handlers.Context, cmd domain.Command) (handlers.Result, error) {
	actor := ctx.Actor
	w := ctx.World()

	if w.Grid.Kind(actor.Pos) != domain.TileStairsDown {
		return handlers.Result{}, domain.Rejectf(cmd.Kind, "здесь нет лестницы вниз")
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "events",
		"actor_id":  actor.ID,
		"depth":     w.Depth,
	}).Debug("Descent requested")

	return handlers.Result{Outcome: handlers.OutcomeDescend}, nil
}
