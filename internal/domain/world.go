package domain

import "sort"

// World - состояние одного уровня: карта, живые акторы, предметы на полу и в руках.
// Все коллекции плоские и ключуются ID, владение выражено полями-ссылками.
type World struct {
	Depth    int                  `json:"depth"`
	Grid     *Grid                `json:"grid"`
	Actors   map[EntityID]*Actor  `json:"actors"`
	Items    map[EntityID]*Item   `json:"items"`
	PlayerID EntityID             `json:"playerId"`
	// NextIndex - счетчик индексов для ID, выданных на этой глубине
	NextIndex uint64 `json:"nextIndex"`

	// occupancy: позиция -> актор. Не сериализуем, восстанавливается RebuildIndex.
	occupancy map[Position]EntityID
}

func NewWorld(depth int, grid *Grid) *World {
	return &World{
		Depth:     depth,
		Grid:      grid,
		Actors:    make(map[EntityID]*Actor),
		Items:     make(map[EntityID]*Item),
		occupancy: make(map[Position]EntityID),
	}
}

// NewID выдает следующий ID в пространстве имен текущей глубины
func (w *World) NewID(kind EntityKind) EntityID {
	w.NextIndex++
	return PackEntityID(kind, w.Depth, w.NextIndex)
}

func (w *World) Player() *Actor {
	return w.Actors[w.PlayerID]
}

// GetActor ищет актора по ID
func (w *World) GetActor(id EntityID) *Actor {
	return w.Actors[id]
}

// GetItem ищет предмет по ID
func (w *World) GetItem(id EntityID) *Item {
	return w.Items[id]
}

// ActorAt возвращает актора в клетке (быстро, через индекс)
func (w *World) ActorAt(p Position) *Actor {
	id, ok := w.occupancy[p]
	if !ok {
		return nil
	}
	return w.Actors[id]
}

// ItemsAt - предметы на полу в клетке, по возрастанию ID
func (w *World) ItemsAt(p Position) []*Item {
	var out []*Item
	for _, it := range w.Items {
		if !it.IsHeld() && it.Pos == p {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IsFree - клетка проходима и не занята актором
func (w *World) IsFree(p Position) bool {
	if !w.Grid.InBounds(p) || !w.Grid.IsWalkable(p) {
		return false
	}
	_, busy := w.occupancy[p]
	return !busy
}

// ActorIDs - все живые акторы по возрастанию ID
func (w *World) ActorIDs() []EntityID {
	ids := make([]EntityID, 0, len(w.Actors))
	for id := range w.Actors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// MonsterIDs - живые монстры по возрастанию ID (порядок ходов)
func (w *World) MonsterIDs() []EntityID {
	ids := make([]EntityID, 0, len(w.Actors))
	for _, id := range w.ActorIDs() {
		if a := w.Actors[id]; a.Faction == FactionMonster && !a.IsDead() {
			ids = append(ids, id)
		}
	}
	return ids
}

// ItemIDs - все предметы по возрастанию ID
func (w *World) ItemIDs() []EntityID {
	ids := make([]EntityID, 0, len(w.Items))
	for id := range w.Items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// EquipmentBonus суммирует бонусы надетых предметов. Каждый слот учитывается ровно раз.
func (w *World) EquipmentBonus(a *Actor) Bonus {
	var b Bonus
	for _, id := range a.Equipment.IDs() {
		it := w.Items[id]
		if it == nil {
			continue
		}
		b.Attack += it.Bonus.Attack
		b.Defense += it.Bonus.Defense
		b.MaxHP += it.Bonus.MaxHP
	}
	return b
}

// Clone - глубокая копия мира (для снапшотов и сравнения в тестах)
func (w *World) Clone() *World {
	c := NewWorld(w.Depth, w.Grid.Clone())
	c.PlayerID = w.PlayerID
	c.NextIndex = w.NextIndex
	for id, a := range w.Actors {
		c.Actors[id] = a.Clone()
	}
	for id, it := range w.Items {
		c.Items[id] = it.Clone()
	}
	for p, id := range w.occupancy {
		c.occupancy[p] = id
	}
	return c
}
