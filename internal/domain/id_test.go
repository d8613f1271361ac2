package domain

import (
	"encoding/json"
	"testing"
)

func TestEntityID_Packing(t *testing.T) {
	id := PackEntityID(EntityKindItem, 12, 987654)

	if id.Kind() != EntityKindItem {
		t.Errorf("kind = %d", id.Kind())
	}
	if id.Depth() != 12 {
		t.Errorf("depth = %d", id.Depth())
	}
	if id.Index() != 987654 {
		t.Errorf("index = %d", id.Index())
	}
}

func TestEntityID_DepthNamespaces(t *testing.T) {
	// Одинаковый индекс на разных глубинах дает разные ID
	a := PackEntityID(EntityKindItem, 1, 5)
	b := PackEntityID(EntityKindItem, 2, 5)
	if a == b {
		t.Fatal("ids from different depths collide")
	}
	if PlayerID.Kind() != EntityKindActor || PlayerID.Depth() != 0 {
		t.Errorf("player id %s is not a depth-0 actor", PlayerID)
	}
}

func TestEntityID_JSON(t *testing.T) {
	id := PackEntityID(EntityKindActor, 3, 42)
	data, err := json.Marshal(id)
	if err != nil {
		t.Fatal(err)
	}
	if data[0] != '"' {
		t.Errorf("expected string encoding, got %s", data)
	}

	var back EntityID
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != id {
		t.Errorf("got %s, want %s", back, id)
	}

	// Числа тоже принимаем
	if err := json.Unmarshal([]byte("17"), &back); err != nil || back != 17 {
		t.Errorf("numeric id: %v %d", err, back)
	}
}
