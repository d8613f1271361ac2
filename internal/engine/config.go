package engine

import (
	"time"

	"delve/internal/systems"
	"delve/pkg/dungeon"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. От него зависят все уровни и все броски кубиков:
	// уровень N строится из (Seed, N), раунд R на уровне N - из (Seed, N, R).
	Seed  int64
	Rules systems.Rules
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:  time.Now().UnixNano(),
		Rules: systems.DefaultRules(),
	}
}

// WithProgression берет кривую опыта и рост характеристик из таблиц контента.
// Нулевые поля таблицы оставляют текущие значения.
func (c Config) WithProgression(t dungeon.ProgressionTable) Config {
	set := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	set(&c.Rules.LevelUpBase, t.LevelUpBase)
	set(&c.Rules.LevelUpFactor, t.LevelUpFactor)
	set(&c.Rules.HPPerLevel, t.HPPerLevel)
	set(&c.Rules.AttackPerLevel, t.AttackPerLevel)
	set(&c.Rules.DefenseEvery, t.DefenseEvery)
	set(&c.Rules.RestDivisor, t.RestDivisor)
	return c
}
