package systems

import (
	"github.com/sirupsen/logrus"

	"delve/internal/domain"
	"delve/pkg/logger"
)

// UseItem применяет предмет из рюкзака. Расходник при успехе уничтожается,
// экипировка надевается или снимается. Отказ (*domain.CommandError) оставляет предмет на месте.
func UseItem(ctx *Context, user *domain.Actor, itemID domain.EntityID, target *domain.Position) error {
	w := ctx.World
	item := w.GetItem(itemID)
	if item == nil || item.Owner != user.ID {
		return domain.Rejectf(domain.CommandUseItem, "у вас нет такого предмета")
	}

	if item.IsEquipment() {
		if user.Equipment.SlotOf(item.ID) != domain.SlotNone {
			return Unequip(ctx, user, item.ID)
		}
		return Equip(ctx, user, item.ID)
	}
	if !item.IsConsumable() {
		return domain.Rejectf(domain.CommandUseItem, "%s нельзя использовать", item.Name)
	}

	var err error
	switch item.Effect.Kind {
	case domain.EffectHeal:
		err = applyHeal(ctx, user, item)
	case domain.EffectStrength:
		user.AddEffect(domain.StatusEffect{Kind: domain.StatusStrengthened, Remaining: item.Effect.Duration, Magnitude: item.Effect.Amount})
		ctx.say(domain.MsgInfo, "%s чувствует прилив сил (+%d к атаке).", user.Name, item.Effect.Amount)
	case domain.EffectLightning:
		err = applyLightning(ctx, user, item)
	case domain.EffectConfuse:
		err = applyConfuse(ctx, user, item, target)
	case domain.EffectFireball:
		err = applyFireball(ctx, user, item, target)
	case domain.EffectPoison:
		err = applyPoison(ctx, user, item, target)
	default:
		err = domain.Rejectf(domain.CommandUseItem, "неизвестный эффект %s", item.Effect.Kind)
	}
	if err != nil {
		return err
	}

	w.RemoveItem(item.ID)
	logger.Log.WithFields(logrus.Fields{
		"component": "effects",
		"user_id":   user.ID,
		"item":      item.Template,
		"effect":    item.Effect.Kind.String(),
	}).Debug("Item consumed")
	return nil
}

func applyHeal(ctx *Context, user *domain.Actor, item *domain.Item) error {
	maxHP := EffectiveStats(ctx.World, user).MaxHP
	if user.Stats.HP >= maxHP {
		return domain.Rejectf(domain.CommandUseItem, "вы уже полностью здоровы")
	}
	healed := user.Stats.Heal(item.Effect.Amount, maxHP)
	ctx.say(domain.MsgInfo, "%s восстанавливает %d HP.", user.Name, healed)
	return nil
}

// closestVisibleMonster - ближайший видимый враг в пределах дальности (при равенстве - меньший ID)
func closestVisibleMonster(ctx *Context, user *domain.Actor, maxRange int) *domain.Actor {
	var best *domain.Actor
	bestDist := maxRange*maxRange + 1
	for _, id := range ctx.World.MonsterIDs() {
		m := ctx.World.GetActor(id)
		if m.Faction == user.Faction || !ctx.Visible.Contains(m.Pos) {
			continue
		}
		if d := user.Pos.DistanceSquaredTo(m.Pos); d < bestDist {
			best, bestDist = m, d
		}
	}
	return best
}

// targetAt - видимый враг в выбранной клетке в пределах дальности
func targetAt(ctx *Context, user *domain.Actor, p domain.Position, maxRange int) (*domain.Actor, error) {
	if !ctx.Visible.Contains(p) {
		return nil, domain.Rejectf(domain.CommandUseItem, "вы не видите цель")
	}
	if user.Pos.DistanceSquaredTo(p) > maxRange*maxRange {
		return nil, domain.Rejectf(domain.CommandUseItem, "цель слишком далеко")
	}
	m := ctx.World.ActorAt(p)
	if m == nil || m.Faction == user.Faction {
		return nil, domain.Rejectf(domain.CommandUseItem, "там нет врага")
	}
	return m, nil
}

func applyLightning(ctx *Context, user *domain.Actor, item *domain.Item) error {
	m := closestVisibleMonster(ctx, user, item.Effect.Range)
	if m == nil {
		return domain.Rejectf(domain.CommandUseItem, "рядом нет врагов")
	}
	ctx.say(domain.MsgCombat, "Молния бьет %s с громовым раскатом! Урон: %d.", m.Name, item.Effect.Amount)
	ApplyDamage(ctx, m, item.Effect.Amount, user)
	return nil
}

func applyConfuse(ctx *Context, user *domain.Actor, item *domain.Item, target *domain.Position) error {
	var m *domain.Actor
	if target != nil {
		var err error
		if m, err = targetAt(ctx, user, *target, item.Effect.Range); err != nil {
			return err
		}
	} else if m = closestVisibleMonster(ctx, user, item.Effect.Range); m == nil {
		return domain.Rejectf(domain.CommandUseItem, "рядом нет врагов")
	}
	m.AddEffect(domain.StatusEffect{Kind: domain.StatusConfused, Remaining: item.Effect.Duration})
	ctx.say(domain.MsgInfo, "Глаза %s стекленеют, он начинает бесцельно бродить.", m.Name)
	return nil
}

// applyFireball - урон всем акторам в радиусе от цели, включая самого игрока
func applyFireball(ctx *Context, user *domain.Actor, item *domain.Item, target *domain.Position) error {
	if target == nil {
		return domain.Rejectf(domain.CommandUseItem, "нужна цель")
	}
	if !ctx.Visible.Contains(*target) {
		return domain.Rejectf(domain.CommandUseItem, "вы не видите цель")
	}
	if item.Effect.Range > 0 && user.Pos.DistanceSquaredTo(*target) > item.Effect.Range*item.Effect.Range {
		return domain.Rejectf(domain.CommandUseItem, "цель слишком далеко")
	}

	ctx.say(domain.MsgCombat, "Огненный шар взрывается, сжигая все в радиусе %d!", item.Effect.Radius)
	r2 := item.Effect.Radius * item.Effect.Radius
	for _, id := range ctx.World.ActorIDs() {
		a := ctx.World.GetActor(id)
		if a == nil || a.Pos.DistanceSquaredTo(*target) > r2 {
			continue
		}
		ctx.say(domain.MsgCombat, "%s горит и получает %d урона.", a.Name, item.Effect.Amount)
		ApplyDamage(ctx, a, item.Effect.Amount, user)
	}
	return nil
}

// applyPoison - ядовитый снаряд летит к цели и поражает первого на пути
func applyPoison(ctx *Context, user *domain.Actor, item *domain.Item, target *domain.Position) error {
	var aim domain.Position
	if target != nil {
		if !ctx.Visible.Contains(*target) {
			return domain.Rejectf(domain.CommandUseItem, "вы не видите цель")
		}
		aim = *target
	} else {
		m := closestVisibleMonster(ctx, user, item.Effect.Range)
		if m == nil {
			return domain.Rejectf(domain.CommandUseItem, "рядом нет врагов")
		}
		aim = m.Pos
	}
	if user.Pos.DistanceSquaredTo(aim) > item.Effect.Range*item.Effect.Range {
		return domain.Rejectf(domain.CommandUseItem, "цель слишком далеко")
	}

	_, hit := Trace(ctx.World, user.Pos, aim)
	if hit == nil {
		ctx.say(domain.MsgInfo, "Ядовитое облако рассеивается впустую.")
		return nil
	}
	hit.AddEffect(domain.StatusEffect{Kind: domain.StatusPoisoned, Remaining: item.Effect.Duration, Magnitude: item.Effect.Amount})
	ctx.say(domain.MsgCombat, "%s отравлен.", hit.Name)
	return nil
}
