package handlers

import (
	"delve/internal/domain"
	"delve/internal/systems"
)

// Context передает хендлеру состояние мира.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	Sys   *systems.Context
	Actor *domain.Actor // Тот, кто выполняет команду (Игрок или монстр)
}

// World - короткий доступ к миру
func (c Context) World() *domain.World { return c.Sys.World }

// Outcome - что должен сделать движок после команды
type Outcome int

const (
	OutcomeActed   Outcome = iota // обычный ход
	OutcomeDescend                // переход на следующую глубину
)

// Result - возвращает результат выполнения команды.
// Хендлер НЕ меняет уровень сам, он возвращает намерение.
type Result struct {
	Outcome Outcome
}

// HandlerFunc - это контракт для любой команды (MOVE, ATTACK, etc).
// *domain.CommandError означает отказ: ход потрачен, мир не изменен.
type HandlerFunc func(ctx Context, cmd domain.Command) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// Table - хендлеры по типу команды
type Table map[domain.CommandKind]HandlerFunc
