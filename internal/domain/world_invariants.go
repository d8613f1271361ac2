package domain

// Validate проверяет все инварианты уровня. Вызывается в точках покоя:
// после генерации, после загрузки и перед сохранением.
func (w *World) Validate() error {
	g := w.Grid
	if g == nil || g.Width <= 0 || g.Height <= 0 {
		return invariantf("empty grid")
	}
	if len(g.Tiles) != g.Width*g.Height {
		return invariantf("grid has %d tiles, want %d", len(g.Tiles), g.Width*g.Height)
	}

	// 1. Акторы: границы, проходимость, одна клетка - один актор, ровно один игрок
	players := 0
	seen := make(map[Position]EntityID, len(w.Actors))
	for _, id := range w.ActorIDs() {
		a := w.Actors[id]
		if a.ID != id || id.Kind() != EntityKindActor {
			return invariantf("actor key %s holds %s", id, a.ID)
		}
		if !g.InBounds(a.Pos) {
			return invariantf("actor %s out of bounds at %s", id, a.Pos)
		}
		if !g.IsWalkable(a.Pos) {
			return invariantf("actor %s stands on %s at %s", id, g.Kind(a.Pos), a.Pos)
		}
		if other, busy := seen[a.Pos]; busy {
			return invariantf("actors %s and %s share %s", other, id, a.Pos)
		}
		seen[a.Pos] = id
		if w.occupancy[a.Pos] != id {
			return invariantf("occupancy index out of date for %s", id)
		}

		maxHP := a.Stats.MaxHP + w.EquipmentBonus(a).MaxHP
		if a.Stats.HP <= 0 || a.Stats.HP > maxHP {
			return invariantf("actor %s hp %d outside (0, %d]", id, a.Stats.HP, maxHP)
		}

		switch a.Faction {
		case FactionPlayer:
			players++
			if id != w.PlayerID {
				return invariantf("player %s does not match world player %s", id, w.PlayerID)
			}
		case FactionMonster:
		default:
			return invariantf("actor %s has no faction", id)
		}

		if len(a.Inventory) > InventoryCapacity {
			return invariantf("actor %s carries %d items", id, len(a.Inventory))
		}
		if err := w.validateOwnership(a); err != nil {
			return err
		}
	}
	if players != 1 {
		return invariantf("level has %d players", players)
	}
	if len(w.occupancy) != len(w.Actors) {
		return invariantf("occupancy index has %d entries for %d actors", len(w.occupancy), len(w.Actors))
	}

	// 2. Предметы: либо на полу на проходимой клетке, либо у существующего владельца
	for _, id := range w.ItemIDs() {
		it := w.Items[id]
		if it.ID != id || id.Kind() != EntityKindItem {
			return invariantf("item key %s holds %s", id, it.ID)
		}
		if it.IsHeld() {
			owner, ok := w.Actors[it.Owner]
			if !ok {
				return invariantf("item %s owned by missing actor %s", id, it.Owner)
			}
			if !owner.HasInInventory(id) && owner.Equipment.SlotOf(id) == SlotNone {
				return invariantf("item %s not referenced by owner %s", id, it.Owner)
			}
			continue
		}
		if !g.InBounds(it.Pos) {
			return invariantf("item %s out of bounds at %s", id, it.Pos)
		}
		if !g.IsWalkable(it.Pos) {
			return invariantf("item %s lies on %s at %s", id, g.Kind(it.Pos), it.Pos)
		}
	}
	return nil
}

// validateOwnership: каждый предмет в рюкзаке и слотах принадлежит актору и упомянут ровно раз
func (w *World) validateOwnership(a *Actor) error {
	refs := make(map[EntityID]bool, len(a.Inventory)+2)
	check := func(itemID EntityID) error {
		if refs[itemID] {
			return invariantf("item %s referenced twice by %s", itemID, a.ID)
		}
		refs[itemID] = true
		it, ok := w.Items[itemID]
		if !ok {
			return invariantf("actor %s references missing item %s", a.ID, itemID)
		}
		if it.Owner != a.ID {
			return invariantf("actor %s references item %s owned by %s", a.ID, itemID, it.Owner)
		}
		return nil
	}
	for _, itemID := range a.Inventory {
		if err := check(itemID); err != nil {
			return err
		}
	}
	for _, slot := range []Slot{SlotWeapon, SlotArmor} {
		itemID := a.Equipment.Get(slot)
		if itemID == NilEntityID {
			continue
		}
		if err := check(itemID); err != nil {
			return err
		}
		if w.Items[itemID].Kind.Slot() != slot {
			return invariantf("item %s does not fit %s slot of %s", itemID, slot, a.ID)
		}
	}
	return nil
}
