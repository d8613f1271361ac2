package dungeon

import (
	"testing"
	"testing/fstest"
)

func TestFromDepth(t *testing.T) {
	table := []Step{{Depth: 3, Value: 15}, {Depth: 5, Value: 30}, {Depth: 7, Value: 60}}
	tests := []struct {
		depth, want int
	}{
		{1, 0}, {3, 15}, {4, 15}, {5, 30}, {6, 30}, {7, 60}, {20, 60},
	}
	for _, tt := range tests {
		if got := FromDepth(table, tt.depth); got != tt.want {
			t.Errorf("FromDepth(%d) = %d, want %d", tt.depth, got, tt.want)
		}
	}
}

func TestWeightedChoice(t *testing.T) {
	weights := map[string][]Step{
		"orc":   {{Depth: 1, Value: 80}},
		"troll": {{Depth: 3, Value: 20}},
	}
	// На глубине 1 тролли недоступны
	for r := 0; r < 80; r++ {
		got, ok := weightedChoice(weights, 1, func(int) int { return r })
		if !ok || got != "orc" {
			t.Fatalf("depth 1 roll %d: %q", r, got)
		}
	}
	// На глубине 3 ключи перебираются по алфавиту: orc [0,80), troll [80,100)
	got, _ := weightedChoice(weights, 3, func(n int) int {
		if n != 100 {
			t.Fatalf("total weight %d, want 100", n)
		}
		return 85
	})
	if got != "troll" {
		t.Errorf("roll 85 = %q, want troll", got)
	}
	if _, ok := weightedChoice(map[string][]Step{}, 1, func(int) int { return 0 }); ok {
		t.Error("empty table must not choose")
	}
}

func TestDefaultContent(t *testing.T) {
	c, err := DefaultContent()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Monsters["orc"]; !ok {
		t.Error("orc template missing")
	}
	if c.Items["healing_potion"].Effect.Amount != 40 {
		t.Error("healing potion amount")
	}
	if c.Progression.LevelUpBase != 200 || c.Progression.LevelUpFactor != 150 {
		t.Errorf("progression curve: %+v", c.Progression)
	}
}

func TestLoadContentFS_RejectsUnknownReferences(t *testing.T) {
	fsys := fstest.MapFS{
		"monsters.yaml": {Data: []byte("monsters:\n  - {id: rat, name: Крыса, hp: 3, behavior: chase}\n")},
		"items.yaml":    {Data: []byte("items: []\n")},
		"player.yaml":   {Data: []byte("player: {name: x, hp: 10}\nprogression: {level_up_base: 10, level_up_factor: 5}\n")},
		"tables.yaml":   {Data: []byte("monster_weights:\n  ghost:\n    - {depth: 1, value: 1}\n")},
	}
	if _, err := LoadContentFS(fsys); err == nil {
		t.Fatal("expected error for unknown monster in weights")
	}
}
