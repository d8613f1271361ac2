package api

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"delve/internal/domain"
)

func TestClientCommand_ToCommand(t *testing.T) {
	potion := domain.PackEntityID(domain.EntityKindItem, 1, 4)
	idStr := strconv.FormatUint(uint64(potion), 10)

	raw := func(v any) json.RawMessage {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatal(err)
		}
		return b
	}
	tests := []struct {
		name string
		in   ClientCommand
		want domain.Command
	}{
		{"move", ClientCommand{Action: "MOVE", Payload: raw(DirectionPayload{Dx: 1, Dy: -1})}, domain.Move(domain.DirNE)},
		{"attack lowercase", ClientCommand{Action: "attack", Payload: raw(DirectionPayload{Dx: 0, Dy: 1})}, domain.Attack(domain.DirS)},
		{"use", ClientCommand{Action: "USE", Payload: raw(ItemPayload{ItemID: idStr})}, domain.UseItem(potion)},
		{"use at", ClientCommand{Action: "USE", Payload: raw(ItemPayload{ItemID: idStr, Target: &PositionPayload{X: 3, Y: 4}})}, domain.UseItemAt(potion, domain.Position{X: 3, Y: 4})},
		{"drop", ClientCommand{Action: "DROP", Payload: raw(ItemPayload{ItemID: idStr})}, domain.Drop(potion)},
		{"pickup", ClientCommand{Action: "PICKUP"}, domain.Pickup()},
		{"descend", ClientCommand{Action: "DESCEND"}, domain.Descend()},
		{"save", ClientCommand{Action: "SAVE"}, domain.Save()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.ToCommand()
			if err != nil {
				t.Fatalf("ToCommand: %v", err)
			}
			if got.Kind != tt.want.Kind || got.Dir != tt.want.Dir || got.ItemID != tt.want.ItemID {
				t.Errorf("got %s, want %s", got, tt.want)
			}
			if (got.Target == nil) != (tt.want.Target == nil) || (got.Target != nil && *got.Target != *tt.want.Target) {
				t.Errorf("target: got %v, want %v", got.Target, tt.want.Target)
			}
		})
	}
}

func TestClientCommand_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   ClientCommand
	}{
		{"unknown action", ClientCommand{Action: "TELEPORT"}},
		{"zero move", ClientCommand{Action: "MOVE", Payload: json.RawMessage(`{"dx":0,"dy":0}`)}},
		{"long step", ClientCommand{Action: "MOVE", Payload: json.RawMessage(`{"dx":2,"dy":0}`)}},
		{"missing payload", ClientCommand{Action: "ATTACK"}},
		{"broken json", ClientCommand{Action: "USE", Payload: json.RawMessage(`{"itemId":`)}},
		{"empty item", ClientCommand{Action: "EQUIP", Payload: json.RawMessage(`{"itemId":""}`)}},
		{"bad item id", ClientCommand{Action: "EQUIP", Payload: json.RawMessage(`{"itemId":"sword"}`)}},
		{"actor id as item", ClientCommand{Action: "DROP", Payload: json.RawMessage(`{"itemId":"1"}`)}},
		{"target on drop", ClientCommand{Action: "DROP", Payload: json.RawMessage(`{"itemId":"1","target":{"x":1,"y":1}}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.in.ToCommand()
			if !errors.Is(err, domain.ErrInvalidCommand) {
				t.Errorf("expected ErrInvalidCommand, got %v", err)
			}
		})
	}
}
