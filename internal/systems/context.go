package systems

import (
	"fmt"
	"math/rand"

	"delve/internal/domain"
)

// Rules - числовые параметры механик (кривая опыта, разброс урона, отдых)
type Rules struct {
	// DamageVariance - урон случайно сдвигается в пределах [-v, +v]
	DamageVariance int

	LevelUpBase    int
	LevelUpFactor  int
	HPPerLevel     int
	AttackPerLevel int
	// DefenseEvery - защита растет на каждом N-м уровне
	DefenseEvery int
	// RestDivisor - при спуске лечится MaxHP / RestDivisor
	RestDivisor int
}

// DefaultRules - значения встроенных таблиц
func DefaultRules() Rules {
	return Rules{
		DamageVariance: 1,
		LevelUpBase:    200,
		LevelUpFactor:  150,
		HPPerLevel:     20,
		AttackPerLevel: 1,
		DefenseEvery:   2,
		RestDivisor:    2,
	}
}

// Context - явный контекст симуляции для одного хода. Глобального состояния у систем нет.
type Context struct {
	World *domain.World
	Rules Rules
	RNG   *rand.Rand
	Log   *domain.MessageLog
	// Visible - текущее поле зрения игрока (монстры проверяют по нему, видят ли игрока)
	Visible VisibleSet
}

func (c *Context) say(kind domain.MessageType, format string, args ...any) {
	if c.Log == nil {
		return
	}
	c.Log.Add(kind, fmt.Sprintf(format, args...))
}

// roll - случайное число в [0, n). Без генератора - всегда 0.
func (c *Context) roll(n int) int {
	if c.RNG == nil || n <= 0 {
		return 0
	}
	return c.RNG.Intn(n)
}
