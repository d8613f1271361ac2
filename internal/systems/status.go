package systems

import (
	"delve/internal/domain"
)

// TickStatuses - конец раунда: яд жжет, длительности уменьшаются, истекшие статусы снимаются.
// Возвращает true, если актор погиб от яда.
func TickStatuses(ctx *Context, a *domain.Actor) bool {
	if len(a.Effects) == 0 {
		return false
	}

	kept := a.Effects[:0]
	var expired []domain.StatusKind
	for _, e := range a.Effects {
		if e.Kind == domain.StatusPoisoned && e.Magnitude > 0 && !a.IsDead() {
			ctx.say(domain.MsgCombat, "Яд разъедает %s (%d).", a.Name, e.Magnitude)
			a.Stats.TakeDamage(e.Magnitude)
		}
		e.Remaining--
		if e.Remaining > 0 {
			kept = append(kept, e)
		} else {
			expired = append(expired, e.Kind)
		}
	}
	a.Effects = kept

	for _, kind := range expired {
		switch kind {
		case domain.StatusConfused:
			ctx.say(domain.MsgInfo, "%s больше не в смятении.", a.Name)
		case domain.StatusStrengthened:
			ctx.say(domain.MsgInfo, "Сила покидает %s.", a.Name)
		case domain.StatusPoisoned:
			ctx.say(domain.MsgInfo, "Яд больше не действует на %s.", a.Name)
		}
	}

	if a.IsDead() {
		Kill(ctx, a, nil)
		return true
	}
	return false
}
