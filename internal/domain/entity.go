package domain

import "strings"

// Faction - сторона конфликта
type Faction uint8

const (
	FactionUnknown Faction = iota
	FactionPlayer
	FactionMonster
)

var factionToString = map[Faction]string{
	FactionPlayer:  "PLAYER",
	FactionMonster: "MONSTER",
}

var factionStringToType = map[string]Faction{
	"PLAYER":  FactionPlayer,
	"MONSTER": FactionMonster,
}

func ParseFaction(s string) (Faction, bool) {
	val, ok := factionStringToType[strings.ToUpper(s)]
	return val, ok
}

func (f Faction) String() string {
	if val, ok := factionToString[f]; ok {
		return val
	}
	return "UNKNOWN"
}

// Equipment - слоты хранят ID предметов, которыми актор владеет
type Equipment struct {
	Weapon EntityID `json:"weapon,omitempty"`
	Armor  EntityID `json:"armor,omitempty"`
}

// Get возвращает предмет в слоте
func (e Equipment) Get(slot Slot) EntityID {
	switch slot {
	case SlotWeapon:
		return e.Weapon
	case SlotArmor:
		return e.Armor
	}
	return NilEntityID
}

func (e *Equipment) Set(slot Slot, id EntityID) {
	switch slot {
	case SlotWeapon:
		e.Weapon = id
	case SlotArmor:
		e.Armor = id
	}
}

// SlotOf - в каком слоте лежит предмет (SlotNone, если не надет)
func (e Equipment) SlotOf(id EntityID) Slot {
	switch {
	case id == NilEntityID:
		return SlotNone
	case e.Weapon == id:
		return SlotWeapon
	case e.Armor == id:
		return SlotArmor
	}
	return SlotNone
}

// IDs - непустые слоты в фиксированном порядке
func (e Equipment) IDs() []EntityID {
	var ids []EntityID
	if e.Weapon != NilEntityID {
		ids = append(ids, e.Weapon)
	}
	if e.Armor != NilEntityID {
		ids = append(ids, e.Armor)
	}
	return ids
}

// Actor - игрок или монстр. Владение предметами - через ID, без указателей.
type Actor struct {
	ID       EntityID `json:"id"`
	Name     string   `json:"name"`
	Template string   `json:"template"`
	Pos      Position `json:"pos"`
	Faction  Faction  `json:"faction"`

	Stats       Stats       `json:"stats"`
	Progression Progression `json:"progression"`
	// XPReward - сколько опыта получит игрок за убийство
	XPReward int `json:"xpReward,omitempty"`
	Gold     int `json:"gold,omitempty"`

	Inventory []EntityID     `json:"inventory,omitempty"`
	Equipment Equipment      `json:"equipment"`
	Effects   []StatusEffect `json:"effects,omitempty"`

	Behavior     AIBehavior `json:"behavior"`
	VisionRadius int        `json:"visionRadius"`
}

func (a *Actor) IsPlayer() bool { return a.Faction == FactionPlayer }

func (a *Actor) IsDead() bool { return a.Stats.HP <= 0 }

// InventoryIndex - позиция предмета в рюкзаке или -1
func (a *Actor) InventoryIndex(id EntityID) int {
	for i, it := range a.Inventory {
		if it == id {
			return i
		}
	}
	return -1
}

func (a *Actor) HasInInventory(id EntityID) bool {
	return a.InventoryIndex(id) >= 0
}

// RemoveFromInventory удаляет предмет из рюкзака, сохраняя порядок остальных
func (a *Actor) RemoveFromInventory(id EntityID) bool {
	i := a.InventoryIndex(id)
	if i < 0 {
		return false
	}
	a.Inventory = append(a.Inventory[:i], a.Inventory[i+1:]...)
	return true
}

// Effect возвращает активный статус указанного типа
func (a *Actor) Effect(kind StatusKind) *StatusEffect {
	for i := range a.Effects {
		if a.Effects[i].Kind == kind {
			return &a.Effects[i]
		}
	}
	return nil
}

func (a *Actor) HasEffect(kind StatusKind) bool {
	return a.Effect(kind) != nil
}

// AddEffect накладывает статус. Повторное наложение обновляет длительность и силу, не суммируя.
func (a *Actor) AddEffect(e StatusEffect) {
	if cur := a.Effect(e.Kind); cur != nil {
		if e.Remaining > cur.Remaining {
			cur.Remaining = e.Remaining
		}
		if e.Magnitude > cur.Magnitude {
			cur.Magnitude = e.Magnitude
		}
		return
	}
	a.Effects = append(a.Effects, e)
}

// Clone - глубокая копия (слайсы не разделяются)
func (a *Actor) Clone() *Actor {
	c := *a
	c.Inventory = append([]EntityID(nil), a.Inventory...)
	c.Effects = append([]StatusEffect(nil), a.Effects...)
	return &c
}
