package systems

import (
	"delve/internal/domain"
)

// --- PICKUP ---

// Pickup поднимает золото и первый подходящий предмет под ногами.
// Оружие и броня сразу надеваются, если слот свободен.
func Pickup(ctx *Context, a *domain.Actor) error {
	w := ctx.World
	var gold, item *domain.Item
	for _, it := range w.ItemsAt(a.Pos) {
		switch {
		case it.Kind == domain.ItemGold && gold == nil:
			gold = it
		case it.Pickable() && it.Kind != domain.ItemGold && item == nil:
			item = it
		}
	}
	if gold == nil && item == nil {
		return domain.Rejectf(domain.CommandPickup, "здесь нечего поднять")
	}

	// 1. Золото идет в кошелек, а не в рюкзак
	if gold != nil {
		a.Gold += gold.Amount
		w.RemoveItem(gold.ID)
		ctx.say(domain.MsgInfo, "%s подбирает %d золота.", a.Name, gold.Amount)
	}
	if item == nil {
		return nil
	}

	// 2. Предмет
	if len(a.Inventory) >= domain.InventoryCapacity {
		if gold != nil {
			ctx.say(domain.MsgError, "Рюкзак полон, %s остается лежать.", item.Name)
			return nil
		}
		return domain.Rejectf(domain.CommandPickup, "рюкзак полон")
	}
	if err := w.GiveItem(item.ID, a.ID); err != nil {
		return err
	}
	ctx.say(domain.MsgInfo, "%s подбирает %s.", a.Name, item.Name)

	// 3. Автоэкипировка в пустой слот
	if slot := item.Kind.Slot(); slot != domain.SlotNone && a.Equipment.Get(slot) == domain.NilEntityID {
		return Equip(ctx, a, item.ID)
	}
	return nil
}

// --- DROP ---

// Drop кладет предмет из рюкзака или слота на пол под актором
func Drop(ctx *Context, a *domain.Actor, itemID domain.EntityID) error {
	w := ctx.World
	item := w.GetItem(itemID)
	if item == nil || item.Owner != a.ID {
		return domain.Rejectf(domain.CommandDrop, "у вас нет такого предмета")
	}
	wasEquipped := a.Equipment.SlotOf(itemID) != domain.SlotNone
	if err := w.PlaceItem(itemID, a.Pos); err != nil {
		return err
	}
	if wasEquipped {
		clampHP(w, a)
	}
	ctx.say(domain.MsgInfo, "%s выбрасывает %s.", a.Name, item.Name)
	return nil
}

// --- EQUIP ---

// Equip переносит предмет из рюкзака в слот. Прежний предмет слота возвращается
// в рюкзак, а если места нет - на пол.
func Equip(ctx *Context, a *domain.Actor, itemID domain.EntityID) error {
	w := ctx.World
	item := w.GetItem(itemID)
	if item == nil || item.Owner != a.ID {
		return domain.Rejectf(domain.CommandEquipItem, "у вас нет такого предмета")
	}
	slot := item.Kind.Slot()
	if slot == domain.SlotNone {
		return domain.Rejectf(domain.CommandEquipItem, "%s нельзя надеть", item.Name)
	}
	if a.Equipment.SlotOf(itemID) != domain.SlotNone {
		return domain.Rejectf(domain.CommandEquipItem, "%s уже надет", item.Name)
	}
	if !a.RemoveFromInventory(itemID) {
		return domain.Rejectf(domain.CommandEquipItem, "%s не в рюкзаке", item.Name)
	}

	if prevID := a.Equipment.Get(slot); prevID != domain.NilEntityID {
		a.Equipment.Set(slot, domain.NilEntityID)
		prev := w.GetItem(prevID)
		if len(a.Inventory) < domain.InventoryCapacity {
			a.Inventory = append(a.Inventory, prevID)
			ctx.say(domain.MsgInfo, "%s снимает %s.", a.Name, prev.Name)
		} else {
			prev.Owner = domain.NilEntityID
			prev.Pos = a.Pos
			ctx.say(domain.MsgInfo, "%s снимает %s и бросает на пол.", a.Name, prev.Name)
		}
	}

	a.Equipment.Set(slot, itemID)
	clampHP(w, a)
	ctx.say(domain.MsgInfo, "%s надевает %s.", a.Name, item.Name)
	return nil
}

// --- UNEQUIP ---

// Unequip снимает предмет в рюкзак (или на пол, если рюкзак полон)
func Unequip(ctx *Context, a *domain.Actor, itemID domain.EntityID) error {
	w := ctx.World
	slot := a.Equipment.SlotOf(itemID)
	if slot == domain.SlotNone {
		return domain.Rejectf(domain.CommandUnequipItem, "этот предмет не надет")
	}
	item := w.GetItem(itemID)

	if len(a.Inventory) >= domain.InventoryCapacity {
		if err := w.PlaceItem(itemID, a.Pos); err != nil {
			return err
		}
		ctx.say(domain.MsgInfo, "%s снимает %s и бросает на пол.", a.Name, item.Name)
	} else {
		a.Equipment.Set(slot, domain.NilEntityID)
		a.Inventory = append(a.Inventory, itemID)
		ctx.say(domain.MsgInfo, "%s снимает %s.", a.Name, item.Name)
	}
	clampHP(w, a)
	return nil
}
