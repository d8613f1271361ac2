package domain

import "fmt"

// GameState - все, что нужно для продолжения партии: сид, номер раунда и текущий уровень.
// Прошлые уровни не хранятся.
type GameState struct {
	Seed  int64
	Round int
	World *World
}

// Validate проверяет согласованность состояния перед сохранением и после загрузки
func (s *GameState) Validate() error {
	if s.World == nil {
		return invariantf("state has no world")
	}
	if s.World.Depth < 1 {
		return invariantf("depth %d < 1", s.World.Depth)
	}
	if s.Round < 0 {
		return invariantf("negative round %d", s.Round)
	}
	if err := s.World.Validate(); err != nil {
		return fmt.Errorf("world: %w", err)
	}
	return nil
}

// Clone - независимая копия для сохранения вне игрового цикла
func (s *GameState) Clone() *GameState {
	c := *s
	if s.World != nil {
		c.World = s.World.Clone()
	}
	return &c
}
