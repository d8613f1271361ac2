package systems

import (
	"errors"
	"testing"

	"delve/internal/domain"
)

// dropOnFloor кладет новый предмет на пол
func dropOnFloor(t *testing.T, w *domain.World, pos domain.Position, it *domain.Item) *domain.Item {
	t.Helper()
	it.ID = w.NewID(domain.EntityKindItem)
	it.Pos = pos
	if err := w.AddItem(it); err != nil {
		t.Fatal(err)
	}
	return it
}

func TestPickup_AutoEquipsIntoEmptySlot(t *testing.T) {
	pos := domain.Position{X: 3, Y: 3}
	w := createTestWorld(t, openRoom, pos)
	ctx := newTestContext(w)
	player := w.Player()

	sword := dropOnFloor(t, w, pos, &domain.Item{Name: "Меч", Kind: domain.ItemWeapon, Bonus: domain.Bonus{Attack: 3}})
	gold := dropOnFloor(t, w, pos, &domain.Item{Name: "Золото", Kind: domain.ItemGold, Amount: 12})

	if err := Pickup(ctx, player); err != nil {
		t.Fatal(err)
	}
	if player.Gold != 12 || w.GetItem(gold.ID) != nil {
		t.Errorf("gold not collected: purse %d", player.Gold)
	}
	if player.Equipment.Weapon != sword.ID {
		t.Error("sword not auto-equipped")
	}
	if player.HasInInventory(sword.ID) {
		t.Error("equipped item must not stay in the inventory")
	}
	if got := EffectiveStats(w, player).Attack; got != 8 {
		t.Errorf("effective attack = %d, want 8", got)
	}
	if err := w.Validate(); err != nil {
		t.Fatal(err)
	}

	// Второй меч уже не надевается
	second := dropOnFloor(t, w, pos, &domain.Item{Name: "Кинжал", Kind: domain.ItemWeapon, Bonus: domain.Bonus{Attack: 2}})
	if err := Pickup(ctx, player); err != nil {
		t.Fatal(err)
	}
	if !player.HasInInventory(second.ID) || player.Equipment.Weapon != sword.ID {
		t.Error("second weapon should go to the inventory")
	}
}

func TestPickup_Rejections(t *testing.T) {
	pos := domain.Position{X: 3, Y: 3}
	w := createTestWorld(t, openRoom, pos)
	ctx := newTestContext(w)
	player := w.Player()

	if err := Pickup(ctx, player); !errors.Is(err, domain.ErrInvalidCommand) {
		t.Fatalf("empty tile: got %v", err)
	}

	// Труп не поднимается
	dropOnFloor(t, w, pos, &domain.Item{Name: "Останки орка", Kind: domain.ItemCorpse})
	if err := Pickup(ctx, player); !errors.Is(err, domain.ErrInvalidCommand) {
		t.Fatalf("corpse: got %v", err)
	}

	for i := 0; i < domain.InventoryCapacity; i++ {
		giveItem(t, w, player, healingPotion())
	}
	potion := dropOnFloor(t, w, pos, healingPotion())
	err := Pickup(ctx, player)
	var cmdErr *domain.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Kind != domain.CommandPickup {
		t.Fatalf("full inventory: got %v", err)
	}
	if w.GetItem(potion.ID).IsHeld() {
		t.Error("potion picked into a full inventory")
	}
}

func TestEquip_SwapReturnsPrevious(t *testing.T) {
	w := createTestWorld(t, openRoom, domain.Position{X: 3, Y: 3})
	ctx := newTestContext(w)
	player := w.Player()

	dagger := giveItem(t, w, player, &domain.Item{Name: "Кинжал", Kind: domain.ItemWeapon, Bonus: domain.Bonus{Attack: 2}})
	sword := giveItem(t, w, player, &domain.Item{Name: "Меч", Kind: domain.ItemWeapon, Bonus: domain.Bonus{Attack: 3}})

	if err := Equip(ctx, player, dagger.ID); err != nil {
		t.Fatal(err)
	}
	if err := Equip(ctx, player, sword.ID); err != nil {
		t.Fatal(err)
	}
	if player.Equipment.Weapon != sword.ID || !player.HasInInventory(dagger.ID) {
		t.Fatalf("swap failed: weapon %s, inventory %v", player.Equipment.Weapon, player.Inventory)
	}
	// Бонус не задваивается
	if got := EffectiveStats(w, player).Attack; got != 8 {
		t.Errorf("effective attack = %d, want 8", got)
	}

	if err := Equip(ctx, player, sword.ID); !errors.Is(err, domain.ErrInvalidCommand) {
		t.Errorf("equipping twice: got %v", err)
	}
	potion := giveItem(t, w, player, healingPotion())
	if err := Equip(ctx, player, potion.ID); !errors.Is(err, domain.ErrInvalidCommand) {
		t.Errorf("equipping a potion: got %v", err)
	}
	if err := w.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestEquip_FullInventorySwap(t *testing.T) {
	w := createTestWorld(t, openRoom, domain.Position{X: 3, Y: 3})
	ctx := newTestContext(w)
	player := w.Player()

	dagger := giveItem(t, w, player, &domain.Item{Name: "Кинжал", Kind: domain.ItemWeapon, Bonus: domain.Bonus{Attack: 2}})
	if err := Equip(ctx, player, dagger.ID); err != nil {
		t.Fatal(err)
	}
	sword := giveItem(t, w, player, &domain.Item{Name: "Меч", Kind: domain.ItemWeapon, Bonus: domain.Bonus{Attack: 3}})
	for len(player.Inventory) < domain.InventoryCapacity {
		giveItem(t, w, player, healingPotion())
	}

	// Меч освобождает место в рюкзаке, кинжал встает на него
	if err := Equip(ctx, player, sword.ID); err != nil {
		t.Fatal(err)
	}
	if player.Equipment.Weapon != sword.ID || !player.HasInInventory(dagger.ID) {
		t.Fatalf("swap with full inventory failed: weapon %s", player.Equipment.Weapon)
	}
	if len(player.Inventory) != domain.InventoryCapacity {
		t.Errorf("inventory size %d", len(player.Inventory))
	}
	if err := w.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestUnequip_FullInventory(t *testing.T) {
	pos := domain.Position{X: 3, Y: 3}
	w := createTestWorld(t, openRoom, pos)
	ctx := newTestContext(w)
	player := w.Player()

	mail := giveItem(t, w, player, &domain.Item{Name: "Кольчуга", Kind: domain.ItemArmor, Bonus: domain.Bonus{Defense: 2, MaxHP: 15}})
	if err := Equip(ctx, player, mail.ID); err != nil {
		t.Fatal(err)
	}
	player.Stats.HP = 45
	for len(player.Inventory) < domain.InventoryCapacity {
		giveItem(t, w, player, healingPotion())
	}

	if err := Unequip(ctx, player, mail.ID); err != nil {
		t.Fatal(err)
	}
	m := w.GetItem(mail.ID)
	if m.IsHeld() || m.Pos != pos {
		t.Errorf("mail should be on the floor, got %+v", m)
	}
	if player.Equipment.Armor != domain.NilEntityID {
		t.Error("armor slot not cleared")
	}
	// HP урезается до нового максимума
	if player.Stats.HP != 30 {
		t.Errorf("hp = %d, want 30", player.Stats.HP)
	}
	if err := Unequip(ctx, player, mail.ID); !errors.Is(err, domain.ErrInvalidCommand) {
		t.Errorf("unequip twice: got %v", err)
	}
}

func TestDrop(t *testing.T) {
	pos := domain.Position{X: 3, Y: 3}
	w := createTestWorld(t, openRoom, pos)
	ctx := newTestContext(w)
	player := w.Player()
	potion := giveItem(t, w, player, healingPotion())

	if err := Drop(ctx, player, potion.ID); err != nil {
		t.Fatal(err)
	}
	if player.HasInInventory(potion.ID) {
		t.Error("potion still in inventory")
	}
	items := w.ItemsAt(pos)
	if len(items) != 1 || items[0].ID != potion.ID {
		t.Errorf("items at %v: %v", pos, items)
	}
	if err := Drop(ctx, player, potion.ID); !errors.Is(err, domain.ErrInvalidCommand) {
		t.Errorf("drop twice: got %v", err)
	}
}
