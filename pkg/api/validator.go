package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"delve/internal/domain"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p DirectionPayload) Validate() error {
	if p.Dx == 0 && p.Dy == 0 {
		return errors.New("movement vector cannot be zero")
	}
	if p.Dx < -1 || p.Dx > 1 || p.Dy < -1 || p.Dy > 1 {
		return errors.New("movement step too large")
	}
	return nil
}

func (p ItemPayload) Validate() error {
	if p.ItemID == "" {
		return errors.New("itemId is required")
	}
	return nil
}

// decodePayload - распаковка и автоматическая валидация payload
func decodePayload[T any](raw json.RawMessage) (T, error) {
	var payload T

	// 1. Распаковка JSON
	if len(raw) == 0 {
		return payload, errors.New("payload is required")
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, fmt.Errorf("invalid payload format: %w", err)
	}

	// 2. Проверяем, реализует ли структура T интерфейс Validator
	if v, ok := any(payload).(Validator); ok {
		if err := v.Validate(); err != nil {
			return payload, fmt.Errorf("validation failed: %w", err)
		}
	}
	return payload, nil
}

// ToCommand переводит сообщение клиента в команду ядра.
// Ошибки оборачивают domain.ErrInvalidCommand.
func (c ClientCommand) ToCommand() (domain.Command, error) {
	kind := domain.ParseCommandKind(c.Action)

	switch kind {
	case domain.CommandMove, domain.CommandAttack:
		p, err := decodePayload[DirectionPayload](c.Payload)
		if err != nil {
			return domain.Command{}, domain.Rejectf(kind, "%v", err)
		}
		cmd := domain.Command{Kind: kind, Dir: domain.DirectionFromDelta(p.Dx, p.Dy)}
		return cmd, cmd.Validate()

	case domain.CommandUseItem, domain.CommandEquipItem, domain.CommandUnequipItem, domain.CommandDrop:
		p, err := decodePayload[ItemPayload](c.Payload)
		if err != nil {
			return domain.Command{}, domain.Rejectf(kind, "%v", err)
		}
		id, err := domain.ParseEntityID(p.ItemID)
		if err != nil {
			return domain.Command{}, domain.Rejectf(kind, "%v", err)
		}
		cmd := domain.Command{Kind: kind, ItemID: id}
		if p.Target != nil {
			if kind != domain.CommandUseItem {
				return domain.Command{}, domain.Rejectf(kind, "target is only valid for USE")
			}
			cmd.Target = &domain.Position{X: p.Target.X, Y: p.Target.Y}
		}
		return cmd, cmd.Validate()

	case domain.CommandUnknown:
		return domain.Command{}, domain.Rejectf(kind, "unknown action %q", c.Action)
	}

	cmd := domain.Command{Kind: kind}
	return cmd, cmd.Validate()
}
