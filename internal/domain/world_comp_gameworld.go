package domain

// AddActor регистрирует актора и занимает его клетку
func (w *World) AddActor(a *Actor) error {
	if a.ID.Kind() != EntityKindActor {
		return invariantf("%s is not an actor id", a.ID)
	}
	if _, dup := w.Actors[a.ID]; dup {
		return invariantf("actor %s already registered", a.ID)
	}
	if !w.Grid.InBounds(a.Pos) {
		return &OutOfBoundsError{Pos: a.Pos, Width: w.Grid.Width, Height: w.Grid.Height}
	}
	if !w.Grid.IsWalkable(a.Pos) {
		return invariantf("actor %s placed on %s at %s", a.ID, w.Grid.Kind(a.Pos), a.Pos)
	}
	if other, busy := w.occupancy[a.Pos]; busy {
		return invariantf("actor %s placed on %s occupied by %s", a.ID, a.Pos, other)
	}
	if a.IsPlayer() {
		if w.PlayerID != NilEntityID && w.PlayerID != a.ID {
			if _, ok := w.Actors[w.PlayerID]; ok {
				return invariantf("second player %s, level already has %s", a.ID, w.PlayerID)
			}
		}
		w.PlayerID = a.ID
	}

	w.Actors[a.ID] = a
	if w.occupancy == nil {
		w.occupancy = make(map[Position]EntityID)
	}
	w.occupancy[a.Pos] = a.ID
	return nil
}

// RemoveActor удаляет актора из живых. Его предметы не трогаются.
func (w *World) RemoveActor(id EntityID) *Actor {
	a, ok := w.Actors[id]
	if !ok {
		return nil
	}
	delete(w.Actors, id)
	if w.occupancy[a.Pos] == id {
		delete(w.occupancy, a.Pos)
	}
	return a
}

// MoveActor перемещает актора в индексе
func (w *World) MoveActor(a *Actor, to Position) error {
	// 1. Проверка границ
	if !w.Grid.InBounds(to) {
		return &OutOfBoundsError{Pos: to, Width: w.Grid.Width, Height: w.Grid.Height}
	}
	// 2. Проходимость и занятость
	if !w.Grid.IsWalkable(to) {
		return invariantf("%s cannot stand on %s", a.ID, w.Grid.Kind(to))
	}
	if other, busy := w.occupancy[to]; busy && other != a.ID {
		return invariantf("%s occupied by %s", to, other)
	}

	// 3. Переносим в индексе
	if w.occupancy[a.Pos] == a.ID {
		delete(w.occupancy, a.Pos)
	}
	a.Pos = to
	w.occupancy[to] = a.ID
	return nil
}

// AddItem регистрирует предмет. Предмет в руках уже должен быть в рюкзаке или слоте владельца.
func (w *World) AddItem(it *Item) error {
	if it.ID.Kind() != EntityKindItem {
		return invariantf("%s is not an item id", it.ID)
	}
	if _, dup := w.Items[it.ID]; dup {
		return invariantf("item %s already registered", it.ID)
	}
	if it.IsHeld() {
		if _, ok := w.Actors[it.Owner]; !ok {
			return invariantf("item %s owned by unknown actor %s", it.ID, it.Owner)
		}
	} else {
		if !w.Grid.InBounds(it.Pos) {
			return &OutOfBoundsError{Pos: it.Pos, Width: w.Grid.Width, Height: w.Grid.Height}
		}
		if !w.Grid.IsWalkable(it.Pos) {
			return invariantf("item %s placed on %s at %s", it.ID, w.Grid.Kind(it.Pos), it.Pos)
		}
	}
	w.Items[it.ID] = it
	return nil
}

// RemoveItem уничтожает предмет (например, выпитое зелье), отвязывая его от владельца
func (w *World) RemoveItem(id EntityID) *Item {
	it, ok := w.Items[id]
	if !ok {
		return nil
	}
	w.detach(it)
	delete(w.Items, id)
	return it
}

// GiveItem кладет предмет с пола в рюкзак актора. Вместимость проверяет вызывающий.
func (w *World) GiveItem(itemID, ownerID EntityID) error {
	it, ok := w.Items[itemID]
	if !ok {
		return invariantf("unknown item %s", itemID)
	}
	owner, ok := w.Actors[ownerID]
	if !ok {
		return invariantf("unknown actor %s", ownerID)
	}
	w.detach(it)
	it.Owner = ownerID
	it.Pos = Position{}
	owner.Inventory = append(owner.Inventory, itemID)
	return nil
}

// PlaceItem кладет предмет на пол, снимая его с владельца (рюкзак или слот)
func (w *World) PlaceItem(itemID EntityID, p Position) error {
	it, ok := w.Items[itemID]
	if !ok {
		return invariantf("unknown item %s", itemID)
	}
	if !w.Grid.InBounds(p) {
		return &OutOfBoundsError{Pos: p, Width: w.Grid.Width, Height: w.Grid.Height}
	}
	if !w.Grid.IsWalkable(p) {
		return invariantf("item %s dropped on %s", itemID, w.Grid.Kind(p))
	}
	w.detach(it)
	it.Owner = NilEntityID
	it.Pos = p
	return nil
}

// detach убирает ссылки владельца на предмет
func (w *World) detach(it *Item) {
	if !it.IsHeld() {
		return
	}
	owner, ok := w.Actors[it.Owner]
	if !ok {
		return
	}
	owner.RemoveFromInventory(it.ID)
	if slot := owner.Equipment.SlotOf(it.ID); slot != SlotNone {
		owner.Equipment.Set(slot, NilEntityID)
	}
}

// RebuildIndex восстанавливает индекс занятости после загрузки
func (w *World) RebuildIndex() error {
	w.occupancy = make(map[Position]EntityID, len(w.Actors))
	for _, id := range w.ActorIDs() {
		a := w.Actors[id]
		if other, busy := w.occupancy[a.Pos]; busy {
			return invariantf("actors %s and %s share %s", other, id, a.Pos)
		}
		w.occupancy[a.Pos] = id
	}
	return nil
}

// AdoptPlayer заменяет игрока уровня на пришедшего сверху вместе с его вещами.
// Пришедший встает на место прежнего, вещи прежнего уничтожаются.
func (w *World) AdoptPlayer(player *Actor, items []*Item) error {
	old := w.Player()
	if old == nil {
		return invariantf("level has no player to replace")
	}
	pos := old.Pos
	for _, id := range w.ItemIDs() {
		if w.Items[id].Owner == old.ID {
			delete(w.Items, id)
		}
	}
	w.RemoveActor(old.ID)
	w.PlayerID = NilEntityID

	player.Pos = pos
	if err := w.AddActor(player); err != nil {
		return err
	}
	for _, it := range items {
		if it.Owner != player.ID {
			return invariantf("carried item %s owned by %s", it.ID, it.Owner)
		}
		if err := w.AddItem(it); err != nil {
			return err
		}
	}
	return nil
}

// CarriedItems - все предметы, которыми владеет актор (рюкзак и слоты), по возрастанию ID
func (w *World) CarriedItems(ownerID EntityID) []*Item {
	var out []*Item
	for _, id := range w.ItemIDs() {
		if it := w.Items[id]; it.Owner == ownerID {
			out = append(out, it)
		}
	}
	return out
}
