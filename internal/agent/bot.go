package agent

import (
	"context"

	"github.com/sirupsen/logrus"

	"delve/internal/domain"
	"delve/pkg/api"
	"delve/pkg/logger"
)

// Bot - "игрок-компьютер". Реализует engine.Input и, как настоящий клиент,
// принимает решения только по снимку: видит то же, что увидел бы человек.
//
// Приоритеты хода:
//  1. Монстр рядом -> атака.
//  2. Мало здоровья и есть лечебное зелье -> выпить.
//  3. Под ногами предметы -> поднять; в рюкзаке оружие лучше -> надеть.
//  4. Стоим на лестнице -> спуск.
//  5. Видим монстра -> идем к нему.
//  6. Знаем лестницу -> идем к ней, иначе к ближайшей неисследованной границе.
type Bot struct {
	// MaxRounds - после стольких решений бот выходит из игры (0 - без ограничения)
	MaxRounds int
	// HealBelow - порог здоровья в процентах для лечебного зелья
	HealBelow int

	decisions    int
	skipPickupAt *api.Position
	log          *logrus.Entry
}

func NewBot(maxRounds int) *Bot {
	return &Bot{
		MaxRounds: maxRounds,
		HealBelow: 40,
		log:       logger.Log.WithField("component", "bot"),
	}
}

// NextCommand выбирает следующую команду по снимку
func (b *Bot) NextCommand(ctx context.Context, snap *api.Snapshot) (domain.Command, error) {
	if err := ctx.Err(); err != nil {
		return domain.Command{}, err
	}
	if snap.Type == "GAME_OVER" || snap.Player.IsDead {
		return domain.Quit(), nil
	}
	if b.MaxRounds > 0 && b.decisions >= b.MaxRounds {
		b.log.WithField("decisions", b.decisions).Info("Bot reached round limit")
		return domain.Quit(), nil
	}
	b.decisions++

	cmd := b.decide(snap)
	b.log.WithFields(logrus.Fields{
		"round": snap.Round,
		"depth": snap.Depth,
		"cmd":   cmd.String(),
	}).Debug("Bot decided")
	return cmd, nil
}

func (b *Bot) decide(snap *api.Snapshot) domain.Command {
	view := newLocalMap(snap)
	me := snap.Player
	here := me.Pos

	// 1. Атака соседа
	for _, e := range view.monsters {
		if chebyshev(here, e.Pos) == 1 {
			return domain.Attack(domain.DirectionFromDelta(e.Pos.X-here.X, e.Pos.Y-here.Y))
		}
	}

	// 2. Лечение
	if me.Stats.HP*100 < me.Stats.MaxHP*b.HealBelow {
		for _, it := range me.Inventory {
			if it.Template == "healing_potion" {
				if id, err := domain.ParseEntityID(it.ID); err == nil {
					return domain.UseItem(id)
				}
			}
		}
	}

	// 3. Предметы под ногами и лучшее оружие
	if b.shouldPickup(snap, here) {
		p := here
		b.skipPickupAt = &p
		return domain.Pickup()
	}
	if cmd, ok := betterWeapon(me); ok {
		return cmd
	}

	// 4. Спуск
	if view.kind(here) == "STAIRS_DOWN" {
		return domain.Descend()
	}

	// 5-6. Движение
	goals := []func(api.Position) bool{view.isMonsterAdjacent}
	if len(me.Inventory) < me.MaxSlots {
		goals = append(goals, view.hasLoot)
	}
	goals = append(goals, view.isStairs, view.isFrontier)
	for _, goal := range goals {
		if dir, ok := view.stepTowards(here, goal); ok {
			return domain.Move(dir)
		}
	}
	return domain.Wait()
}

// shouldPickup - на клетке лежит что-то полезное, и мы еще не пытались поднять это здесь
func (b *Bot) shouldPickup(snap *api.Snapshot, here api.Position) bool {
	if b.skipPickupAt != nil && *b.skipPickupAt == here {
		return false
	}
	b.skipPickupAt = nil
	if len(snap.Player.Inventory) >= snap.Player.MaxSlots {
		return false
	}
	for _, it := range snap.Items {
		if it.Pos != nil && *it.Pos == here && it.Kind != "CORPSE" {
			return true
		}
	}
	return false
}

func betterWeapon(me api.PlayerView) (domain.Command, bool) {
	current := 0
	if me.Equipment.Weapon != nil {
		current = me.Equipment.Weapon.Attack
	}
	for _, it := range me.Inventory {
		if it.Kind == "WEAPON" && it.Attack > current {
			if id, err := domain.ParseEntityID(it.ID); err == nil {
				return domain.Equip(id), true
			}
		}
	}
	return domain.Command{}, false
}

func chebyshev(a, b api.Position) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
