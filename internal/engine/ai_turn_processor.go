package engine

import (
	"github.com/sirupsen/logrus"

	"delve/internal/domain"
	"delve/internal/systems"
)

// processAITurn - ход монстра: решение AI превращается в обычную команду
// и проходит через те же хендлеры, что и команды игрока.
func (g *Game) processAITurn(sys *systems.Context, npc *domain.Actor) error {
	cmd := systems.Decide(sys, npc)

	g.log.WithFields(logrus.Fields{
		"npc_id":   npc.ID,
		"behavior": npc.Behavior.String(),
		"command":  cmd.String(),
	}).Debug("NPC decided")

	_, err := g.executeCommand(sys, npc, cmd)
	return err
}
