package actions

import (
	"delve/internal/domain"
	"delve/internal/engine/handlers"
	"delve/internal/engine/handlers/events"
)

// Register заполняет таблицу хендлеров всех игровых команд.
// Save и Quit сюда не входят: их обрабатывает сам движок на границе раунда.
func Register(t handlers.Table) {
	// Общие действия
	t[domain.CommandMove] = handlers.WithValidation(HandleMove)
	t[domain.CommandAttack] = handlers.WithValidation(HandleAttack)
	t[domain.CommandWait] = handlers.WithEmptyPayload(HandleWait)
	t[domain.CommandDescend] = handlers.WithValidation(handlers.PlayerOnly(events.HandleDescend))

	// Инвентарь
	t[domain.CommandPickup] = handlers.WithEmptyPayload(HandlePickup)
	t[domain.CommandDrop] = handlers.WithValidation(HandleDrop)
	t[domain.CommandUseItem] = handlers.WithValidation(HandleUse)
	t[domain.CommandEquipItem] = handlers.WithValidation(HandleEquip)
	t[domain.CommandUnequipItem] = handlers.WithValidation(HandleUnequip)
}

// NewTable - готовая таблица
func NewTable() handlers.Table {
	t := make(handlers.Table)
	Register(t)
	return t
}
