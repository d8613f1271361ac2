package domain

import (
	"fmt"
	"strconv"
)

// EntityID - упакованный идентификатор (Kind + Depth + Index).
//
// Формат битов (от старших к младшим):
//
//	[ Kind (8) | Depth (16) | Index (40) ]
//
// Глубина в ID разводит пространства имен уровней: предметы, которые игрок
// уносит с собой вниз, никогда не пересекаются с ID, выданными новому уровню.
type EntityID uint64

// NilEntityID - "нет сущности". Используется в пустых слотах и у предметов на полу.
const NilEntityID EntityID = 0

// EntityKind - тип сущности в старших битах ID.
type EntityKind uint8

const (
	EntityKindUnknown EntityKind = iota
	EntityKindActor
	EntityKindItem
)

// Конфигурация битов
const (
	bitsIndex = 40
	bitsDepth = 16
	bitsKind  = 8

	shiftDepth = bitsIndex
	shiftKind  = bitsIndex + bitsDepth

	maskIndex = (1 << bitsIndex) - 1
	maskDepth = (1 << bitsDepth) - 1
	maskKind  = (1 << bitsKind) - 1
)

// PlayerID - игрок всегда живет в пространстве имен глубины 0 под индексом 1.
var PlayerID = PackEntityID(EntityKindActor, 0, 1)

// PackEntityID создает ID из компонентов
func PackEntityID(kind EntityKind, depth int, index uint64) EntityID {
	id := index & maskIndex
	id |= (uint64(depth) & maskDepth) << shiftDepth
	id |= (uint64(kind) & maskKind) << shiftKind
	return EntityID(id)
}

func (id EntityID) Kind() EntityKind {
	return EntityKind((id >> shiftKind) & maskKind)
}

func (id EntityID) Depth() int {
	return int((id >> shiftDepth) & maskDepth)
}

func (id EntityID) Index() uint64 {
	return uint64(id & maskIndex)
}

// MarshalJSON сериализует ID в строку, так как JS теряет точность для больших int64
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON парсит строку или число из JSON
func (id *EntityID) UnmarshalJSON(data []byte) error {
	if len(data) > 1 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	val, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("entity id %q: %w", string(data), err)
	}
	*id = EntityID(val)
	return nil
}

// ParseEntityID разбирает десятичную запись ID (так его отдает MarshalJSON).
func ParseEntityID(s string) (EntityID, error) {
	val, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return NilEntityID, fmt.Errorf("entity id %q: %w", s, err)
	}
	return EntityID(val), nil
}

// String для логов: [Kind:Depth:Idx]
func (id EntityID) String() string {
	return fmt.Sprintf("[%d:%d:%d]", id.Kind(), id.Depth(), id.Index())
}
