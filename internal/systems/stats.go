package systems

import "delve/internal/domain"

// EffectiveStats - базовые статы плюс экипировка и статусы. Считаются на лету,
// поэтому бонусы не могут задвоиться.
func EffectiveStats(w *domain.World, a *domain.Actor) domain.Stats {
	bonus := w.EquipmentBonus(a)
	s := a.Stats
	s.MaxHP += bonus.MaxHP
	s.Attack += bonus.Attack
	s.Defense += bonus.Defense
	if st := a.Effect(domain.StatusStrengthened); st != nil {
		s.Attack += st.Magnitude
	}
	return s
}

// clampHP держит HP в пределах эффективного максимума (после снятия вещи с бонусом к HP)
func clampHP(w *domain.World, a *domain.Actor) {
	maxHP := EffectiveStats(w, a).MaxHP
	if a.Stats.HP > maxHP {
		a.Stats.HP = maxHP
	}
}
