package domain

import "strings"

// ItemKind - категория предмета
type ItemKind uint8

const (
	ItemUnknown ItemKind = iota
	ItemWeapon
	ItemArmor
	ItemPotion
	ItemScroll
	ItemGold
	ItemCorpse
)

var itemKindToString = map[ItemKind]string{
	ItemWeapon: "WEAPON",
	ItemArmor:  "ARMOR",
	ItemPotion: "POTION",
	ItemScroll: "SCROLL",
	ItemGold:   "GOLD",
	ItemCorpse: "CORPSE",
}

var itemStringToKind = map[string]ItemKind{
	"WEAPON": ItemWeapon,
	"ARMOR":  ItemArmor,
	"POTION": ItemPotion,
	"SCROLL": ItemScroll,
	"GOLD":   ItemGold,
	"CORPSE": ItemCorpse,
}

func ParseItemKind(s string) (ItemKind, bool) {
	val, ok := itemStringToKind[strings.ToUpper(s)]
	return val, ok
}

func (k ItemKind) String() string {
	if val, ok := itemKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// Slot - слот экипировки
type Slot uint8

const (
	SlotNone Slot = iota
	SlotWeapon
	SlotArmor
)

func (s Slot) String() string {
	switch s {
	case SlotWeapon:
		return "WEAPON"
	case SlotArmor:
		return "ARMOR"
	}
	return "NONE"
}

// Slot - куда надевается предмет этого типа
func (k ItemKind) Slot() Slot {
	switch k {
	case ItemWeapon:
		return SlotWeapon
	case ItemArmor:
		return SlotArmor
	}
	return SlotNone
}

// EffectKind - что делает расходник при использовании
type EffectKind uint8

const (
	EffectNone EffectKind = iota
	EffectHeal
	EffectLightning
	EffectConfuse
	EffectFireball
	EffectPoison
	EffectStrength
)

var effectKindToString = map[EffectKind]string{
	EffectHeal:      "HEAL",
	EffectLightning: "LIGHTNING",
	EffectConfuse:   "CONFUSE",
	EffectFireball:  "FIREBALL",
	EffectPoison:    "POISON",
	EffectStrength:  "STRENGTH",
}

var effectStringToKind = map[string]EffectKind{
	"HEAL":      EffectHeal,
	"LIGHTNING": EffectLightning,
	"CONFUSE":   EffectConfuse,
	"FIREBALL":  EffectFireball,
	"POISON":    EffectPoison,
	"STRENGTH":  EffectStrength,
}

func ParseEffectKind(s string) (EffectKind, bool) {
	val, ok := effectStringToKind[strings.ToUpper(s)]
	return val, ok
}

func (k EffectKind) String() string {
	if val, ok := effectKindToString[k]; ok {
		return val
	}
	return "NONE"
}

// NeedsTarget - эффекты, которым нужна клетка-цель (иначе берется ближайший видимый монстр)
func (k EffectKind) NeedsTarget() bool {
	return k == EffectFireball
}

// Effect - дескриптор эффекта расходника
type Effect struct {
	Kind     EffectKind `json:"kind"`
	Amount   int        `json:"amount,omitempty"`
	Range    int        `json:"range,omitempty"`
	Radius   int        `json:"radius,omitempty"`
	Duration int        `json:"duration,omitempty"`
}

// Bonus - аддитивные модификаторы надетой экипировки
type Bonus struct {
	Attack  int `json:"attack,omitempty"`
	Defense int `json:"defense,omitempty"`
	MaxHP   int `json:"maxHp,omitempty"`
}

// Item лежит либо на полу (Pos), либо у владельца (Owner), но не одновременно.
type Item struct {
	ID       EntityID `json:"id"`
	Name     string   `json:"name"`
	Template string   `json:"template"`
	Kind     ItemKind `json:"kind"`
	Pos      Position `json:"pos"`
	Owner    EntityID `json:"owner,omitempty"`
	Effect   Effect   `json:"effect"`
	Bonus    Bonus    `json:"bonus"`
	// Amount - количество монет для золота
	Amount int `json:"amount,omitempty"`
}

func (i *Item) IsHeld() bool { return i.Owner != NilEntityID }

func (i *Item) IsConsumable() bool {
	return i.Kind == ItemPotion || i.Kind == ItemScroll
}

func (i *Item) IsEquipment() bool {
	return i.Kind.Slot() != SlotNone
}

// Pickable - трупы остаются лежать
func (i *Item) Pickable() bool {
	return i.Kind != ItemCorpse
}

func (i *Item) Clone() *Item {
	c := *i
	return &c
}
