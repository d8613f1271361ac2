package systems

import (
	"github.com/sirupsen/logrus"

	"delve/internal/domain"
	"delve/pkg/logger"
)

// XPToReach - суммарный опыт, нужный для перехода с level на level+1.
// Прирост порога base + k*factor, пороги строго растут.
func XPToReach(r Rules, level int) int {
	total := 0
	for k := 1; k <= level; k++ {
		total += r.LevelUpBase + k*r.LevelUpFactor
	}
	return total
}

// GainXP начисляет опыт и сразу применяет все пересеченные пороги.
// Возвращает число полученных уровней.
func GainXP(ctx *Context, a *domain.Actor, amount int) int {
	if amount <= 0 {
		return 0
	}
	a.Progression.XP += amount

	gained := 0
	for a.Progression.XP >= XPToReach(ctx.Rules, a.Progression.Level) {
		levelUp(ctx, a)
		gained++
	}
	return gained
}

// levelUp - рост статов атомарно, HP восстанавливается до нового максимума
func levelUp(ctx *Context, a *domain.Actor) {
	r := ctx.Rules
	a.Progression.Level++
	a.Stats.MaxHP += r.HPPerLevel
	a.Stats.Attack += r.AttackPerLevel
	if r.DefenseEvery > 0 && a.Progression.Level%r.DefenseEvery == 0 {
		a.Stats.Defense++
	}
	a.Stats.HP = EffectiveStats(ctx.World, a).MaxHP

	ctx.say(domain.MsgLevel, "Ваш опыт растет! Вы достигли уровня %d.", a.Progression.Level)
	logger.Log.WithFields(logrus.Fields{
		"component": "progression",
		"actor_id":  a.ID,
		"level":     a.Progression.Level,
		"xp":        a.Progression.XP,
	}).Info("Level up")
}

// Rest - передышка при спуске: лечит MaxHP / RestDivisor
func Rest(ctx *Context, a *domain.Actor) int {
	if ctx.Rules.RestDivisor <= 0 {
		return 0
	}
	maxHP := EffectiveStats(ctx.World, a).MaxHP
	healed := a.Stats.Heal(maxHP/ctx.Rules.RestDivisor, maxHP)
	if healed > 0 {
		ctx.say(domain.MsgInfo, "Вы отдыхаете и восстанавливаете %d HP.", healed)
	}
	return healed
}
