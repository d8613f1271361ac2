package systems

import (
	"github.com/sirupsen/logrus"

	"delve/internal/domain"
	"delve/pkg/logger"
)

// AttackResult - итог одного удара
type AttackResult struct {
	Damage int
	Killed bool
}

// Damage = max(0, атака - защита) + разброс из генератора раунда, но не меньше нуля.
func rollDamage(ctx *Context, attack, defense int) int {
	dmg := attack - defense
	if dmg < 0 {
		dmg = 0
	}
	if v := ctx.Rules.DamageVariance; v > 0 {
		dmg += ctx.roll(2*v+1) - v
	}
	if dmg < 0 {
		dmg = 0
	}
	return dmg
}

// Attack - удар в ближнем бою
func Attack(ctx *Context, attacker, target *domain.Actor) AttackResult {
	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":   "combat_system",
		"attacker_id": attacker.ID,
		"target_id":   target.ID,
	})

	if target.IsDead() {
		combatLogger.Info("Attack ineffective: target is already dead.")
		return AttackResult{}
	}

	atk := EffectiveStats(ctx.World, attacker)
	def := EffectiveStats(ctx.World, target)
	damage := rollDamage(ctx, atk.Attack, def.Defense)

	hpBefore := target.Stats.HP
	died := target.Stats.TakeDamage(damage)

	combatLogger.WithFields(logrus.Fields{
		"attack":      atk.Attack,
		"defense":     def.Defense,
		"damage":      damage,
		"hp_before":   hpBefore,
		"hp_after":    target.Stats.HP,
		"target_died": died,
	}).Debug("Attack resolved.")

	if damage > 0 {
		ctx.say(domain.MsgCombat, "%s наносит %d урона по %s.", attacker.Name, damage, target.Name)
	} else {
		ctx.say(domain.MsgCombat, "%s атакует %s, но это бесполезно.", attacker.Name, target.Name)
	}

	if died {
		Kill(ctx, target, attacker)
	}
	return AttackResult{Damage: damage, Killed: died}
}

// ApplyDamage - урон в обход защиты (свитки, яд). killer может быть nil.
func ApplyDamage(ctx *Context, target *domain.Actor, amount int, killer *domain.Actor) bool {
	if target.IsDead() {
		return false
	}
	died := target.Stats.TakeDamage(amount)
	if died {
		Kill(ctx, target, killer)
	}
	return died
}

// Kill обрабатывает смерть: вещи и золото падают на месте смерти, остается труп,
// игрок получает опыт. Монстр удаляется из живых. Игрок остается на карте (конец игры).
func Kill(ctx *Context, victim, killer *domain.Actor) {
	w := ctx.World
	pos := victim.Pos
	victim.Stats.HP = 0

	if victim.IsPlayer() {
		ctx.say(domain.MsgCombat, "Вы погибли!")
		logger.Log.WithFields(logrus.Fields{
			"component": "combat_system",
			"depth":     w.Depth,
		}).Info("Player died")
		return
	}

	// 1. Рюкзак и экипировка
	for _, it := range w.CarriedItems(victim.ID) {
		if err := w.PlaceItem(it.ID, pos); err != nil {
			logger.Log.WithError(err).WithField("item_id", it.ID).Error("Failed to drop loot")
		}
	}

	// 2. Золото
	if victim.Gold > 0 {
		gold := &domain.Item{
			ID:       w.NewID(domain.EntityKindItem),
			Name:     "Золото",
			Template: "gold",
			Kind:     domain.ItemGold,
			Pos:      pos,
			Amount:   victim.Gold,
		}
		victim.Gold = 0
		if err := w.AddItem(gold); err != nil {
			logger.Log.WithError(err).Error("Failed to drop gold")
		}
	}

	// 3. Труп
	corpse := &domain.Item{
		ID:       w.NewID(domain.EntityKindItem),
		Name:     "Останки " + victim.Name,
		Template: "corpse",
		Kind:     domain.ItemCorpse,
		Pos:      pos,
	}
	if err := w.AddItem(corpse); err != nil {
		logger.Log.WithError(err).Error("Failed to leave corpse")
	}

	w.RemoveActor(victim.ID)
	ctx.say(domain.MsgCombat, "%s погибает.", victim.Name)

	// 4. Опыт за убийство игроком
	if killer != nil && killer.IsPlayer() {
		ctx.say(domain.MsgInfo, "Вы получаете %d опыта.", victim.XPReward)
		GainXP(ctx, killer, victim.XPReward)
	}
}
