package domain

import "fmt"

// Command - намерение актора на один ход. Игрок получает его от Input, монстр - от AI.
type Command struct {
	Kind   CommandKind
	Dir    Direction
	ItemID EntityID
	// Target - клетка-цель для свитков с областью действия
	Target *Position
}

func Move(d Direction) Command   { return Command{Kind: CommandMove, Dir: d} }
func Attack(d Direction) Command { return Command{Kind: CommandAttack, Dir: d} }
func UseItem(id EntityID) Command {
	return Command{Kind: CommandUseItem, ItemID: id}
}

// UseItemAt - использование с клеткой-целью
func UseItemAt(id EntityID, target Position) Command {
	return Command{Kind: CommandUseItem, ItemID: id, Target: &target}
}
func Equip(id EntityID) Command   { return Command{Kind: CommandEquipItem, ItemID: id} }
func Unequip(id EntityID) Command { return Command{Kind: CommandUnequipItem, ItemID: id} }
func Pickup() Command             { return Command{Kind: CommandPickup} }
func Drop(id EntityID) Command    { return Command{Kind: CommandDrop, ItemID: id} }
func Descend() Command            { return Command{Kind: CommandDescend} }
func Wait() Command               { return Command{Kind: CommandWait} }
func Save() Command               { return Command{Kind: CommandSave} }
func Quit() Command               { return Command{Kind: CommandQuit} }

// IsMeta - команды сессии: выполняются на границе раунда и не тратят ход
func (c Command) IsMeta() bool {
	return c.Kind == CommandSave || c.Kind == CommandQuit
}

// Validate проверяет форму команды, не глядя на мир
func (c Command) Validate() error {
	switch c.Kind {
	case CommandMove, CommandAttack:
		if !c.Dir.IsValid() {
			return Rejectf(c.Kind, "direction required")
		}
	case CommandUseItem, CommandEquipItem, CommandUnequipItem, CommandDrop:
		if c.ItemID == NilEntityID {
			return Rejectf(c.Kind, "item id required")
		}
		if c.ItemID.Kind() != EntityKindItem {
			return Rejectf(c.Kind, "%s is not an item", c.ItemID)
		}
	case CommandPickup, CommandDescend, CommandWait, CommandSave, CommandQuit:
	default:
		return Rejectf(c.Kind, "unknown command")
	}
	return nil
}

func (c Command) String() string {
	switch c.Kind {
	case CommandMove, CommandAttack:
		return fmt.Sprintf("%s %s", c.Kind, c.Dir)
	case CommandUseItem:
		if c.Target != nil {
			return fmt.Sprintf("%s %s at %s", c.Kind, c.ItemID, *c.Target)
		}
		return fmt.Sprintf("%s %s", c.Kind, c.ItemID)
	case CommandEquipItem, CommandUnequipItem, CommandDrop:
		return fmt.Sprintf("%s %s", c.Kind, c.ItemID)
	}
	return c.Kind.String()
}
