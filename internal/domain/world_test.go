package domain

import (
	"errors"
	"testing"
)

func testGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := ParseGrid([]string{
		"#######",
		"#.....#",
		"#.....#",
		"#..#..#",
		"#######",
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w := NewWorld(1, testGrid(t))
	player := &Actor{
		ID:      PlayerID,
		Name:    "player",
		Pos:     Position{X: 1, Y: 1},
		Faction: FactionPlayer,
		Stats:   Stats{HP: 30, MaxHP: 30, Attack: 5, Defense: 2},
	}
	if err := w.AddActor(player); err != nil {
		t.Fatal(err)
	}
	return w
}

func TestWorld_AddMoveRemoveActor(t *testing.T) {
	w := newTestWorld(t)
	orc := &Actor{
		ID:      w.NewID(EntityKindActor),
		Name:    "orc",
		Pos:     Position{X: 3, Y: 1},
		Faction: FactionMonster,
		Stats:   Stats{HP: 10, MaxHP: 10},
	}
	if err := w.AddActor(orc); err != nil {
		t.Fatal(err)
	}
	if w.ActorAt(Position{X: 3, Y: 1}) != orc {
		t.Fatal("ActorAt did not find orc")
	}

	// Занятая клетка
	if err := w.MoveActor(orc, Position{X: 1, Y: 1}); !errors.Is(err, ErrWorldInvariant) {
		t.Errorf("move onto player: %v", err)
	}
	// Стена
	if err := w.MoveActor(orc, Position{X: 3, Y: 3}); !errors.Is(err, ErrWorldInvariant) {
		t.Errorf("move into wall: %v", err)
	}
	// За картой
	if err := w.MoveActor(orc, Position{X: 30, Y: 1}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("move out of bounds: %v", err)
	}

	if err := w.MoveActor(orc, Position{X: 4, Y: 2}); err != nil {
		t.Fatal(err)
	}
	if w.ActorAt(Position{X: 3, Y: 1}) != nil {
		t.Error("old position still occupied")
	}
	if err := w.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	w.RemoveActor(orc.ID)
	if w.ActorAt(Position{X: 4, Y: 2}) != nil || w.GetActor(orc.ID) != nil {
		t.Error("orc still present after removal")
	}
}

func TestWorld_SecondPlayerRejected(t *testing.T) {
	w := newTestWorld(t)
	err := w.AddActor(&Actor{
		ID:      w.NewID(EntityKindActor),
		Pos:     Position{X: 2, Y: 2},
		Faction: FactionPlayer,
		Stats:   Stats{HP: 1, MaxHP: 1},
	})
	if !errors.Is(err, ErrWorldInvariant) {
		t.Fatalf("expected invariant error, got %v", err)
	}
}

func TestWorld_ItemOwnership(t *testing.T) {
	w := newTestWorld(t)
	sword := &Item{ID: w.NewID(EntityKindItem), Name: "sword", Kind: ItemWeapon, Pos: Position{X: 2, Y: 1}, Bonus: Bonus{Attack: 3}}
	if err := w.AddItem(sword); err != nil {
		t.Fatal(err)
	}
	if got := w.ItemsAt(Position{X: 2, Y: 1}); len(got) != 1 || got[0] != sword {
		t.Fatalf("ItemsAt = %v", got)
	}

	if err := w.GiveItem(sword.ID, PlayerID); err != nil {
		t.Fatal(err)
	}
	player := w.Player()
	if !player.HasInInventory(sword.ID) || sword.Owner != PlayerID {
		t.Fatal("sword not in player inventory")
	}
	if len(w.ItemsAt(Position{X: 2, Y: 1})) != 0 {
		t.Error("sword still on the floor")
	}

	// Надеваем: из рюкзака в слот
	player.RemoveFromInventory(sword.ID)
	player.Equipment.Weapon = sword.ID
	if err := w.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if b := w.EquipmentBonus(player); b.Attack != 3 {
		t.Errorf("bonus attack = %d, want 3", b.Attack)
	}

	// Бросаем на пол прямо из слота
	if err := w.PlaceItem(sword.ID, player.Pos); err != nil {
		t.Fatal(err)
	}
	if player.Equipment.Weapon != NilEntityID {
		t.Error("weapon slot not cleared")
	}
	if err := w.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestWorld_ValidateCatchesBrokenOwnership(t *testing.T) {
	w := newTestWorld(t)
	potion := &Item{ID: w.NewID(EntityKindItem), Kind: ItemPotion, Owner: PlayerID}
	if err := w.AddItem(potion); err != nil {
		t.Fatal(err)
	}
	// Владелец не ссылается на предмет
	if err := w.Validate(); !errors.Is(err, ErrWorldInvariant) {
		t.Fatalf("expected invariant error, got %v", err)
	}
	w.Player().Inventory = []EntityID{potion.ID, potion.ID}
	if err := w.Validate(); !errors.Is(err, ErrWorldInvariant) {
		t.Fatalf("duplicate reference: expected invariant error, got %v", err)
	}
	w.Player().Inventory = []EntityID{potion.ID}
	if err := w.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestGrid_AtPanicsOutOfBounds(t *testing.T) {
	g := testGrid(t)
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("expected ErrOutOfBounds panic, got %v", r)
		}
	}()
	g.At(Position{X: -1, Y: 0})
}

func TestGrid_RowsRoundTrip(t *testing.T) {
	g := testGrid(t)
	g.Set(Position{X: 5, Y: 3}, TileStairsDown)
	back, err := ParseGrid(g.Rows())
	if err != nil {
		t.Fatal(err)
	}
	for i := range g.Tiles {
		if g.Tiles[i].Kind != back.Tiles[i].Kind {
			t.Fatalf("tile %d: %v != %v", i, g.Tiles[i].Kind, back.Tiles[i].Kind)
		}
	}
}
