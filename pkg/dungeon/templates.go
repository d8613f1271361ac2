package dungeon

import (
	"math/rand"

	"delve/internal/domain"
	"delve/pkg/utils"
)

// MonsterTemplate - строка из monsters.yaml
type MonsterTemplate struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	HP       int    `yaml:"hp"`
	Attack   int    `yaml:"attack"`
	Defense  int    `yaml:"defense"`
	XP       int    `yaml:"xp"`
	GoldMin  int    `yaml:"gold_min"`
	GoldMax  int    `yaml:"gold_max"`
	Behavior string `yaml:"behavior"`
	Vision   int    `yaml:"vision"`
	Loot     *Loot  `yaml:"loot,omitempty"`
}

// Loot - предмет, который монстр может нести с собой (шанс в процентах)
type Loot struct {
	Item   string `yaml:"item"`
	Chance int    `yaml:"chance"`
}

// MonsterScaling - рост статов монстров с глубиной
type MonsterScaling struct {
	HPPerDepth   int `yaml:"hp_per_depth"`
	AttackEvery  int `yaml:"attack_every"`
	DefenseEvery int `yaml:"defense_every"`
}

// Scaled возвращает статы шаблона на заданной глубине. Не убывают с глубиной.
func (t MonsterTemplate) Scaled(depth int, s MonsterScaling) domain.Stats {
	extra := depth - 1
	if extra < 0 {
		extra = 0
	}
	stats := domain.Stats{
		HP:      t.HP + extra*s.HPPerDepth,
		Attack:  t.Attack,
		Defense: t.Defense,
	}
	if s.AttackEvery > 0 {
		stats.Attack += extra / s.AttackEvery
	}
	if s.DefenseEvery > 0 {
		stats.Defense += extra / s.DefenseEvery
	}
	stats.MaxHP = stats.HP
	return stats
}

// Spawn создает монстра из шаблона на заданной позиции
func (t MonsterTemplate) Spawn(id domain.EntityID, pos domain.Position, depth int, s MonsterScaling, rng *rand.Rand) *domain.Actor {
	behavior, ok := domain.ParseBehavior(t.Behavior)
	if !ok {
		behavior = domain.BehaviorIdle
	}
	vision := t.Vision
	if vision <= 0 {
		vision = domain.MonsterVisionRadius
	}
	return &domain.Actor{
		ID:           id,
		Name:         t.Name,
		Template:     t.ID,
		Pos:          pos,
		Faction:      domain.FactionMonster,
		Stats:        t.Scaled(depth, s),
		Progression:  domain.Progression{Level: depth},
		XPReward:     t.XP + (depth-1)*t.XP/10,
		Gold:         utils.RandRange(rng, t.GoldMin, t.GoldMax),
		Equipment:    domain.Equipment{},
		Behavior:     behavior,
		VisionRadius: vision,
	}
}

// ItemTemplate - строка из items.yaml
type ItemTemplate struct {
	ID     string     `yaml:"id"`
	Name   string     `yaml:"name"`
	Kind   string     `yaml:"kind"`
	Effect EffectSpec `yaml:"effect"`
	Bonus  BonusSpec  `yaml:"bonus"`
}

type BonusSpec struct {
	Attack  int `yaml:"attack"`
	Defense int `yaml:"defense"`
	MaxHP   int `yaml:"max_hp"`
}

type EffectSpec struct {
	Kind     string `yaml:"kind"`
	Amount   int    `yaml:"amount"`
	Range    int    `yaml:"range"`
	Radius   int    `yaml:"radius"`
	Duration int    `yaml:"duration"`
}

// Spawn создает предмет на полу. Для предмета в руках вызывающий выставит Owner.
func (t ItemTemplate) Spawn(id domain.EntityID, pos domain.Position) *domain.Item {
	kind, _ := domain.ParseItemKind(t.Kind)
	effect, _ := domain.ParseEffectKind(t.Effect.Kind)
	return &domain.Item{
		ID:       id,
		Name:     t.Name,
		Template: t.ID,
		Kind:     kind,
		Pos:      pos,
		Effect: domain.Effect{
			Kind:     effect,
			Amount:   t.Effect.Amount,
			Range:    t.Effect.Range,
			Radius:   t.Effect.Radius,
			Duration: t.Effect.Duration,
		},
		Bonus: domain.Bonus{
			Attack:  t.Bonus.Attack,
			Defense: t.Bonus.Defense,
			MaxHP:   t.Bonus.MaxHP,
		},
	}
}

// PlayerTemplate - стартовые характеристики героя
type PlayerTemplate struct {
	Name        string    `yaml:"name"`
	HP          int       `yaml:"hp"`
	Attack      int       `yaml:"attack"`
	Defense     int       `yaml:"defense"`
	Vision      int       `yaml:"vision"`
	StartingKit []KitItem `yaml:"starting_kit"`
}

type KitItem struct {
	Item  string `yaml:"item"`
	Equip bool   `yaml:"equip"`
}

// ProgressionTable - параметры кривой опыта
type ProgressionTable struct {
	LevelUpBase    int `yaml:"level_up_base"`
	LevelUpFactor  int `yaml:"level_up_factor"`
	HPPerLevel     int `yaml:"hp_per_level"`
	AttackPerLevel int `yaml:"attack_per_level"`
	DefenseEvery   int `yaml:"defense_every"`
	RestDivisor    int `yaml:"rest_divisor"`
}
