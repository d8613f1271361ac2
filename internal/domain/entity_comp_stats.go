package domain

// Stats - базовые характеристики без учета экипировки и статусов
type Stats struct {
	HP      int `json:"hp"`
	MaxHP   int `json:"maxHp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
}

// Progression - опыт и уровень. Есть у всех акторов, но растет только у игрока.
type Progression struct {
	XP    int `json:"xp"`
	Level int `json:"level"`
}

// TakeDamage наносит урон. Возвращает true, если цель погибла.
func (s *Stats) TakeDamage(amount int) bool {
	if s.HP <= 0 {
		return false
	}
	if amount < 0 {
		amount = 0
	}

	s.HP -= amount

	if s.HP <= 0 {
		s.HP = 0
		return true
	}
	return false
}

// Heal лечит, не поднимая HP выше limit (эффективный максимум с учетом экипировки).
// Возвращает фактически восстановленное количество.
func (s *Stats) Heal(amount, limit int) int {
	if s.HP <= 0 {
		return 0 // Не лечим трупы! Нет некромантии!
	}
	before := s.HP
	s.HP += amount
	if s.HP > limit {
		s.HP = limit
	}
	if s.HP < before {
		return 0
	}
	return s.HP - before
}
