package domain

import "strings"

// CommandKind - Внутренний числовой идентификатор команды
type CommandKind uint8

const (
	CommandUnknown CommandKind = iota
	CommandMove
	CommandAttack
	CommandUseItem
	CommandEquipItem
	CommandUnequipItem
	CommandPickup
	CommandDrop
	CommandDescend
	CommandWait
	CommandSave
	CommandQuit
)

// Маппинг для конвертации JSON -> Domain
var commandStringToKind = map[string]CommandKind{
	"MOVE":    CommandMove,
	"ATTACK":  CommandAttack,
	"USE":     CommandUseItem,
	"EQUIP":   CommandEquipItem,
	"UNEQUIP": CommandUnequipItem,
	"PICKUP":  CommandPickup,
	"DROP":    CommandDrop,
	"DESCEND": CommandDescend,
	"WAIT":    CommandWait,
	"SAVE":    CommandSave,
	"QUIT":    CommandQuit,
}

// Маппинг для логов Domain -> String
var commandKindToString = map[CommandKind]string{
	CommandMove:        "MOVE",
	CommandAttack:      "ATTACK",
	CommandUseItem:     "USE",
	CommandEquipItem:   "EQUIP",
	CommandUnequipItem: "UNEQUIP",
	CommandPickup:      "PICKUP",
	CommandDrop:        "DROP",
	CommandDescend:     "DESCEND",
	CommandWait:        "WAIT",
	CommandSave:        "SAVE",
	CommandQuit:        "QUIT",
}

// ParseCommandKind конвертирует строку из JSON в CommandKind
func ParseCommandKind(s string) CommandKind {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := commandStringToKind[upper]; ok {
		return val
	}
	return CommandUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (k CommandKind) String() string {
	if val, ok := commandKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}
