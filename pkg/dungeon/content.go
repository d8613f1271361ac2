package dungeon

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"delve/internal/domain"
)

//go:embed content/*.yaml
var embeddedContent embed.FS

// Step - "значение действует начиная с глубины Depth"
type Step struct {
	Depth int `yaml:"depth"`
	Value int `yaml:"value"`
}

// FromDepth выбирает значение таблицы переходов для глубины. До первой ступени - 0.
func FromDepth(table []Step, depth int) int {
	value := 0
	for _, s := range table {
		if depth >= s.Depth {
			value = s.Value
		}
	}
	return value
}

// Tables - таблицы наполнения уровней
type Tables struct {
	MaxMonsters    []Step            `yaml:"max_monsters_per_room"`
	MaxItems       []Step            `yaml:"max_items_per_room"`
	MonsterWeights map[string][]Step `yaml:"monster_weights"`
	ItemWeights    map[string][]Step `yaml:"item_weights"`
	MonsterScaling MonsterScaling    `yaml:"monster_scaling"`
}

// Content - все балансные таблицы игры
type Content struct {
	Monsters    map[string]MonsterTemplate
	Items       map[string]ItemTemplate
	Tables      Tables
	Player      PlayerTemplate
	Progression ProgressionTable
}

type monsterListFile struct {
	Monsters []MonsterTemplate `yaml:"monsters"`
}

type itemListFile struct {
	Items []ItemTemplate `yaml:"items"`
}

type playerFile struct {
	Player      PlayerTemplate   `yaml:"player"`
	Progression ProgressionTable `yaml:"progression"`
}

// DefaultContent - таблицы, встроенные в бинарник
func DefaultContent() (*Content, error) {
	sub, err := fs.Sub(embeddedContent, "content")
	if err != nil {
		return nil, err
	}
	return LoadContentFS(sub)
}

// LoadContent читает таблицы из каталога. Пустой путь - встроенные таблицы.
func LoadContent(dir string) (*Content, error) {
	if dir == "" {
		return DefaultContent()
	}
	return LoadContentFS(os.DirFS(dir))
}

// LoadContentFS читает monsters.yaml, items.yaml, tables.yaml и player.yaml
func LoadContentFS(fsys fs.FS) (*Content, error) {
	var monsters monsterListFile
	if err := readYAML(fsys, "monsters.yaml", &monsters); err != nil {
		return nil, err
	}
	var items itemListFile
	if err := readYAML(fsys, "items.yaml", &items); err != nil {
		return nil, err
	}
	var player playerFile
	if err := readYAML(fsys, "player.yaml", &player); err != nil {
		return nil, err
	}

	c := &Content{
		Monsters:    make(map[string]MonsterTemplate, len(monsters.Monsters)),
		Items:       make(map[string]ItemTemplate, len(items.Items)),
		Player:      player.Player,
		Progression: player.Progression,
	}
	if err := readYAML(fsys, "tables.yaml", &c.Tables); err != nil {
		return nil, err
	}
	for _, m := range monsters.Monsters {
		c.Monsters[m.ID] = m
	}
	for _, it := range items.Items {
		c.Items[it.ID] = it
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func readYAML(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// Validate проверяет ссылки между таблицами и монотонность по глубине
func (c *Content) Validate() error {
	for id, m := range c.Monsters {
		if m.HP <= 0 {
			return fmt.Errorf("monster %q: hp must be positive", id)
		}
		if _, ok := domain.ParseBehavior(m.Behavior); !ok {
			return fmt.Errorf("monster %q: unknown behavior %q", id, m.Behavior)
		}
		if m.Loot != nil {
			if _, ok := c.Items[m.Loot.Item]; !ok {
				return fmt.Errorf("monster %q: unknown loot item %q", id, m.Loot.Item)
			}
		}
	}
	for id, it := range c.Items {
		if _, ok := domain.ParseItemKind(it.Kind); !ok {
			return fmt.Errorf("item %q: unknown kind %q", id, it.Kind)
		}
		if it.Effect.Kind != "" {
			if _, ok := domain.ParseEffectKind(it.Effect.Kind); !ok {
				return fmt.Errorf("item %q: unknown effect %q", id, it.Effect.Kind)
			}
		}
	}
	for id := range c.Tables.MonsterWeights {
		if _, ok := c.Monsters[id]; !ok {
			return fmt.Errorf("monster_weights: unknown monster %q", id)
		}
	}
	for id := range c.Tables.ItemWeights {
		if _, ok := c.Items[id]; !ok {
			return fmt.Errorf("item_weights: unknown item %q", id)
		}
	}
	for _, k := range c.Player.StartingKit {
		if _, ok := c.Items[k.Item]; !ok {
			return fmt.Errorf("starting_kit: unknown item %q", k.Item)
		}
	}
	if err := monotonic("max_monsters_per_room", c.Tables.MaxMonsters); err != nil {
		return err
	}
	if err := monotonic("max_items_per_room", c.Tables.MaxItems); err != nil {
		return err
	}
	if c.Player.HP <= 0 {
		return fmt.Errorf("player: hp must be positive")
	}
	if c.Progression.LevelUpBase <= 0 || c.Progression.LevelUpFactor < 0 {
		return fmt.Errorf("progression: curve must be increasing")
	}
	return nil
}

// Количество монстров и предметов не должно падать с глубиной
func monotonic(name string, table []Step) error {
	for i := 1; i < len(table); i++ {
		if table[i].Depth <= table[i-1].Depth {
			return fmt.Errorf("%s: depths must increase", name)
		}
		if table[i].Value < table[i-1].Value {
			return fmt.Errorf("%s: values must not decrease", name)
		}
	}
	return nil
}

// weightedChoice выбирает ключ по весам на данной глубине. Ключи перебираются
// в отсортированном порядке, чтобы выбор зависел только от rng.
func weightedChoice(weights map[string][]Step, depth int, roll func(n int) int) (string, bool) {
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	total := 0
	for _, k := range keys {
		total += FromDepth(weights[k], depth)
	}
	if total <= 0 {
		return "", false
	}
	r := roll(total)
	for _, k := range keys {
		w := FromDepth(weights[k], depth)
		if r < w {
			return k, true
		}
		r -= w
	}
	return "", false
}
