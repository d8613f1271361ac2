package engine

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"

	"delve/internal/domain"
	"delve/internal/systems"
	"delve/pkg/api"
	"delve/pkg/dungeon"
	"delve/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	// Exit with the result of the tests
	os.Exit(m.Run())
}

var testRoom = []string{
	"##########",
	"#........#",
	"#........#",
	"#........#",
	"#.......>#",
	"##########",
}

func testConfig() Config {
	rules := systems.DefaultRules()
	rules.DamageVariance = 0
	return Config{Seed: 7, Rules: rules}
}

func newTestGenerator(t *testing.T) *dungeon.Generator {
	t.Helper()
	content, err := dungeon.DefaultContent()
	if err != nil {
		t.Fatal(err)
	}
	return dungeon.NewGenerator(content, dungeon.DefaultConfig())
}

// createTestGame - игра на маленькой ручной карте. Игрок: HP 30, атака 5, защита 2.
func createTestGame(t *testing.T, player domain.Position) *Game {
	t.Helper()
	g, err := domain.ParseGrid(testRoom)
	if err != nil {
		t.Fatal(err)
	}
	w := domain.NewWorld(1, g)
	p := &domain.Actor{
		ID:           domain.PlayerID,
		Name:         "Герой",
		Template:     "player",
		Pos:          player,
		Faction:      domain.FactionPlayer,
		Stats:        domain.Stats{HP: 30, MaxHP: 30, Attack: 5, Defense: 2},
		Progression:  domain.Progression{Level: 1},
		VisionRadius: domain.PlayerVisionRadius,
	}
	if err := w.AddActor(p); err != nil {
		t.Fatal(err)
	}
	return newGame(testConfig(), newTestGenerator(t), w, 0)
}

func addOrc(t *testing.T, game *Game, pos domain.Position, stats domain.Stats) *domain.Actor {
	t.Helper()
	w := game.World()
	m := &domain.Actor{
		ID:           w.NewID(domain.EntityKindActor),
		Name:         "Орк",
		Template:     "orc",
		Pos:          pos,
		Faction:      domain.FactionMonster,
		Stats:        stats,
		XPReward:     35,
		Behavior:     domain.BehaviorIdle,
		VisionRadius: domain.MonsterVisionRadius,
	}
	if err := w.AddActor(m); err != nil {
		t.Fatal(err)
	}
	game.refreshFOV()
	return m
}

func giveItem(t *testing.T, w *domain.World, owner *domain.Actor, it *domain.Item) *domain.Item {
	t.Helper()
	it.ID = w.NewID(domain.EntityKindItem)
	it.Owner = owner.ID
	owner.Inventory = append(owner.Inventory, it.ID)
	if err := w.AddItem(it); err != nil {
		t.Fatal(err)
	}
	return it
}

func playOne(t *testing.T, g *Game, cmd domain.Command) Status {
	t.Helper()
	status, err := g.PlayRound(context.Background(), Script(cmd))
	if err != nil {
		t.Fatalf("PlayRound(%s): %v", cmd, err)
	}
	if err := g.World().Validate(); err != nil {
		t.Fatalf("world broken after %s: %v", cmd, err)
	}
	return status
}

func hasLog(snap *api.Snapshot, kind domain.MessageType) bool {
	for _, e := range snap.Logs {
		if e.Type == string(kind) {
			return true
		}
	}
	return false
}

func TestPlayRound_AttackScenario(t *testing.T) {
	g := createTestGame(t, domain.Position{X: 2, Y: 2})
	orc := addOrc(t, g, domain.Position{X: 3, Y: 2}, domain.Stats{HP: 10, MaxHP: 10, Attack: 4, Defense: 2})

	playOne(t, g, domain.Attack(domain.DirE))

	// Атака 5 против защиты 2
	if orc.Stats.HP != 7 {
		t.Errorf("orc hp = %d, want 7", orc.Stats.HP)
	}
	// Орк замечает игрока и бьет в ответ: 4 - 2
	if hp := g.World().Player().Stats.HP; hp != 28 {
		t.Errorf("player hp = %d, want 28", hp)
	}
	if g.Round() != 1 {
		t.Errorf("round = %d", g.Round())
	}
}

func TestPlayRound_MoveIntoMonsterIsRejected(t *testing.T) {
	g := createTestGame(t, domain.Position{X: 2, Y: 2})
	orc := addOrc(t, g, domain.Position{X: 3, Y: 2}, domain.Stats{HP: 10, MaxHP: 10, Attack: 4, Defense: 2})

	playOne(t, g, domain.Move(domain.DirE))

	if orc.Stats.HP != 10 {
		t.Errorf("move damaged the orc: hp = %d, want 10", orc.Stats.HP)
	}
	if p := g.World().Player(); p.Pos != (domain.Position{X: 2, Y: 2}) {
		t.Errorf("player moved into the orc: %v", p.Pos)
	}
	if g.Round() != 1 {
		t.Errorf("round = %d, want 1", g.Round())
	}
	if !hasLog(g.Snapshot(), domain.MsgError) {
		t.Error("rejection not logged")
	}
}

func TestPlayRound_DeathDropsLoot(t *testing.T) {
	g := createTestGame(t, domain.Position{X: 2, Y: 2})
	w := g.World()
	orc := addOrc(t, g, domain.Position{X: 3, Y: 2}, domain.Stats{HP: 3, MaxHP: 3, Attack: 4, Defense: 2})
	orc.Gold = 5
	potion := giveItem(t, w, orc, &domain.Item{Name: "Зелье лечения", Kind: domain.ItemPotion, Effect: domain.Effect{Kind: domain.EffectHeal, Amount: 40}})

	playOne(t, g, domain.Attack(domain.DirE))

	if w.GetActor(orc.ID) != nil {
		t.Fatal("dead orc still in the world")
	}
	loot := w.ItemsAt(domain.Position{X: 3, Y: 2})
	kinds := map[domain.ItemKind]bool{}
	for _, it := range loot {
		kinds[it.Kind] = true
	}
	if len(loot) != 3 || !kinds[domain.ItemPotion] || !kinds[domain.ItemGold] || !kinds[domain.ItemCorpse] {
		t.Errorf("loot at death position: %+v", loot)
	}
	if w.GetItem(potion.ID).IsHeld() {
		t.Error("potion still held by a dead orc")
	}
	if xp := w.Player().Progression.XP; xp != 35 {
		t.Errorf("xp = %d, want 35", xp)
	}

	snap := g.Snapshot()
	if len(snap.Items) != 3 {
		t.Errorf("snapshot shows %d ground items", len(snap.Items))
	}
	for _, e := range snap.Entities {
		if e.ID == wireID(orc.ID) {
			t.Error("dead orc in snapshot")
		}
	}
}

func TestPlayRound_InvalidCommandConsumesTurn(t *testing.T) {
	g := createTestGame(t, domain.Position{X: 1, Y: 2})
	orc := addOrc(t, g, domain.Position{X: 6, Y: 2}, domain.Stats{HP: 10, MaxHP: 10, Attack: 4})

	playOne(t, g, domain.Move(domain.DirW))

	if p := g.World().Player(); p.Pos != (domain.Position{X: 1, Y: 2}) {
		t.Errorf("player moved into a wall: %v", p.Pos)
	}
	if g.Round() != 1 {
		t.Errorf("round = %d, want 1", g.Round())
	}
	// Монстры все равно ходят
	if orc.Pos != (domain.Position{X: 5, Y: 2}) {
		t.Errorf("orc at %v, want (5,2)", orc.Pos)
	}
	if !hasLog(g.Snapshot(), domain.MsgError) {
		t.Error("rejection not logged")
	}

	// Неизвестная команда тоже тратит ход
	playOne(t, g, domain.Command{Kind: domain.CommandUnknown})
	if g.Round() != 2 {
		t.Errorf("round = %d, want 2", g.Round())
	}
}

func TestPlayRound_LevelUpVisibleInNextSnapshot(t *testing.T) {
	g := createTestGame(t, domain.Position{X: 2, Y: 2})
	g.World().Player().Progression.XP = 340
	addOrc(t, g, domain.Position{X: 2, Y: 3}, domain.Stats{HP: 3, MaxHP: 3, Attack: 4, Defense: 2})

	playOne(t, g, domain.Attack(domain.DirS))

	snap := g.Snapshot()
	if snap.Player.Progression.Level != 2 {
		t.Fatalf("level = %d, want 2", snap.Player.Progression.Level)
	}
	if snap.Player.Stats.MaxHP != 50 || snap.Player.Stats.HP != 50 {
		t.Errorf("stats after level up: %+v", snap.Player.Stats)
	}
	if snap.Player.Stats.Attack != 6 || snap.Player.Stats.Defense != 3 {
		t.Errorf("attack/defense after level up: %+v", snap.Player.Stats)
	}
	if snap.Player.Progression.NextLevelXP != 850 {
		t.Errorf("next level xp = %d", snap.Player.Progression.NextLevelXP)
	}
	if !hasLog(snap, domain.MsgLevel) {
		t.Error("level up message missing")
	}
}

func TestPlayRound_Descent(t *testing.T) {
	stairs := domain.Position{X: 8, Y: 4}
	g := createTestGame(t, stairs)
	w := g.World()
	player := w.Player()
	player.Stats.HP = 10
	player.Progression = domain.Progression{XP: 120, Level: 1}
	player.Gold = 9
	sword := giveItem(t, w, player, &domain.Item{Name: "Меч", Template: "sword", Kind: domain.ItemWeapon, Bonus: domain.Bonus{Attack: 3}})
	potion := giveItem(t, w, player, &domain.Item{Name: "Зелье лечения", Template: "healing_potion", Kind: domain.ItemPotion, Effect: domain.Effect{Kind: domain.EffectHeal, Amount: 40}})
	player.RemoveFromInventory(sword.ID)
	player.Equipment.Weapon = sword.ID
	orc := addOrc(t, g, domain.Position{X: 2, Y: 2}, domain.Stats{HP: 10, MaxHP: 10, Attack: 4})

	// Не на лестнице спуститься нельзя
	playOne(t, g, domain.Move(domain.DirW))
	playOne(t, g, domain.Descend())
	if g.Depth() != 1 {
		t.Fatal("descended away from the stairs")
	}
	playOne(t, g, domain.Move(domain.DirE))
	hpBefore := player.Stats.HP

	playOne(t, g, domain.Descend())

	if g.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", g.Depth())
	}
	nw := g.World()
	if nw == w {
		t.Fatal("old level kept")
	}
	p := nw.Player()
	if p != player || p.ID != domain.PlayerID {
		t.Fatal("player not carried over")
	}
	if p.Progression.XP != 120 || p.Gold != 9 {
		t.Errorf("progression lost: %+v gold %d", p.Progression, p.Gold)
	}
	if p.Equipment.Weapon != sword.ID || !p.HasInInventory(potion.ID) {
		t.Errorf("items lost: equipment %+v inventory %v", p.Equipment, p.Inventory)
	}
	if nw.GetItem(sword.ID) == nil || nw.GetItem(potion.ID) == nil {
		t.Error("carried items not registered in the new level")
	}
	if nw.GetActor(orc.ID) != nil {
		t.Error("monster from the old level survived")
	}
	if nw.Grid.Kind(p.Pos) != domain.TileStairsUp {
		t.Errorf("arrived on %s", nw.Grid.Kind(p.Pos))
	}
	// Отдых: половина максимума
	if p.Stats.HP != hpBefore+15 {
		t.Errorf("hp after rest = %d, want %d", p.Stats.HP, hpBefore+15)
	}
	if snap := g.Snapshot(); snap.Depth != 2 || !hasLog(snap, domain.MsgLevel) {
		t.Errorf("snapshot after descent: depth %d", snap.Depth)
	}
}

type memorySaver struct {
	saved []*domain.GameState
}

func (s *memorySaver) Save(_ context.Context, state *domain.GameState) error {
	s.saved = append(s.saved, state)
	return nil
}

func TestPlayRound_MetaCommandsDoNotConsumeTurn(t *testing.T) {
	g := createTestGame(t, domain.Position{X: 2, Y: 2})
	saver := &memorySaver{}
	g.Saver = saver

	status, err := g.PlayRound(context.Background(), Script(domain.Save(), domain.Quit()))
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusQuit {
		t.Errorf("status = %s", status)
	}
	if g.Round() != 0 {
		t.Errorf("meta commands consumed a round: %d", g.Round())
	}
	if len(saver.saved) != 1 || saver.saved[0].Round != 0 || saver.saved[0].Seed != 7 {
		t.Fatalf("saved = %+v", saver.saved)
	}
	// Сохраненная копия не связана с живым миром
	if saver.saved[0].World == g.World() {
		t.Error("saver received the live world")
	}
}

func TestRun_GameOver(t *testing.T) {
	g := createTestGame(t, domain.Position{X: 2, Y: 2})
	g.World().Player().Stats.HP = 1
	addOrc(t, g, domain.Position{X: 3, Y: 2}, domain.Stats{HP: 50, MaxHP: 50, Attack: 10})

	var last *api.Snapshot
	err := g.Run(context.Background(), Script(domain.Wait(), domain.Wait()), func(s *api.Snapshot) { last = s })
	if err != nil {
		t.Fatal(err)
	}
	if !g.IsOver() || last == nil || last.Type != "GAME_OVER" || !last.Player.IsDead {
		t.Fatalf("expected game over, last snapshot %+v", last)
	}
	// Мертвый игрок остается на карте
	if g.World().Player() == nil {
		t.Error("dead player removed from the world")
	}
	if status, _ := g.PlayRound(context.Background(), Script(domain.Wait())); status != StatusGameOver {
		t.Errorf("status after death = %s", status)
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	g := createTestGame(t, domain.Position{X: 2, Y: 2})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := &ChannelInput{C: make(chan domain.Command)}
	if err := g.Run(ctx, in, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestChannelInput_ClosedChannelQuits(t *testing.T) {
	g := createTestGame(t, domain.Position{X: 2, Y: 2})
	ch := make(chan domain.Command, 2)
	ch <- domain.Wait()
	close(ch)

	prompts := 0
	in := &ChannelInput{C: ch, OnPrompt: func(*api.Snapshot) { prompts++ }}
	if err := g.Run(context.Background(), in, nil); err != nil {
		t.Fatal(err)
	}
	if g.Round() != 1 || prompts != 2 {
		t.Errorf("round %d, prompts %d", g.Round(), prompts)
	}
}

func TestGame_DeterministicAndRestorable(t *testing.T) {
	gen := newTestGenerator(t)
	cfg := testConfig()
	script := []domain.Command{domain.Wait(), domain.Wait(), domain.Wait(), domain.Wait()}

	a, err := NewGame(cfg, gen)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewGame(cfg, gen)
	if err != nil {
		t.Fatal(err)
	}
	for _, g := range []*Game{a, b} {
		if err := g.Run(context.Background(), Script(script[:2]...), nil); err != nil {
			t.Fatal(err)
		}
	}
	if !reflect.DeepEqual(a.State(), b.State()) {
		t.Fatal("same seed and commands gave different states")
	}

	// Восстановленная партия продолжается так же, как исходная
	c, err := Restore(cfg, gen, a.State())
	if err != nil {
		t.Fatal(err)
	}
	for _, g := range []*Game{a, c} {
		if err := g.Run(context.Background(), Script(script[2:]...), nil); err != nil {
			t.Fatal(err)
		}
	}
	if !reflect.DeepEqual(a.State(), c.State()) {
		t.Fatal("restored game diverged")
	}
	if c.Round() != 4 {
		t.Errorf("round = %d, want 4", c.Round())
	}
}
