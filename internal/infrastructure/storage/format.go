package storage

import (
	"fmt"

	"delve/internal/domain"
)

// FormatName - значение поля format в теле сейва
const FormatName = "delve.save"

// SaveV1 - тело сейва версии 1. Перечисления пишутся строками, ID - десятичными строками.
type SaveV1 struct {
	Format    string    `json:"format"`
	Seed      int64     `json:"seed"`
	Round     int       `json:"round"`
	Depth     int       `json:"depth"`
	NextIndex uint64    `json:"nextIndex"`
	Grid      GridV1    `json:"grid"`
	Actors    []ActorV1 `json:"actors"`
	Items     []ItemV1  `json:"items"`
}

// GridV1 - карта глифами и память исследования ('1' - клетка видена)
type GridV1 struct {
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Rows     []string `json:"rows"`
	Explored []string `json:"explored"`
}

type StatusV1 struct {
	Kind      string `json:"kind"`
	Remaining int    `json:"remaining"`
	Magnitude int    `json:"magnitude"`
}

type ActorV1 struct {
	ID        domain.EntityID   `json:"id"`
	Name      string            `json:"name"`
	Template  string            `json:"template"`
	X         int               `json:"x"`
	Y         int               `json:"y"`
	Faction   string            `json:"faction"`
	HP        int               `json:"hp"`
	MaxHP     int               `json:"maxHp"`
	Attack    int               `json:"attack"`
	Defense   int               `json:"defense"`
	XP        int               `json:"xp"`
	Level     int               `json:"level"`
	XPReward  int               `json:"xpReward"`
	Gold      int               `json:"gold"`
	Inventory []domain.EntityID `json:"inventory"`
	Weapon    domain.EntityID   `json:"weapon,omitempty"`
	Armor     domain.EntityID   `json:"armor,omitempty"`
	Statuses  []StatusV1        `json:"statuses"`
	Behavior  string            `json:"behavior"`
	Vision    int               `json:"vision"`
}

type EffectV1 struct {
	Kind     string `json:"kind"`
	Amount   int    `json:"amount"`
	Range    int    `json:"range"`
	Radius   int    `json:"radius"`
	Duration int    `json:"duration"`
}

type ItemV1 struct {
	ID       domain.EntityID `json:"id"`
	Name     string          `json:"name"`
	Template string          `json:"template"`
	Kind     string          `json:"kind"`
	X        int             `json:"x"`
	Y        int             `json:"y"`
	Owner    domain.EntityID `json:"owner,omitempty"`
	Effect   EffectV1        `json:"effect"`
	Attack   int             `json:"attack"`
	Defense  int             `json:"defense"`
	MaxHP    int             `json:"maxHp"`
	Amount   int             `json:"amount"`
}

// toSaveV1 переводит состояние в документ. Порядок акторов и предметов - по ID.
func toSaveV1(s *domain.GameState) *SaveV1 {
	w := s.World
	doc := &SaveV1{
		Format:    FormatName,
		Seed:      s.Seed,
		Round:     s.Round,
		Depth:     w.Depth,
		NextIndex: w.NextIndex,
		Grid: GridV1{
			Width:    w.Grid.Width,
			Height:   w.Grid.Height,
			Rows:     w.Grid.Rows(),
			Explored: make([]string, 0, w.Grid.Height),
		},
		Actors: make([]ActorV1, 0, len(w.Actors)),
		Items:  make([]ItemV1, 0, len(w.Items)),
	}

	for y := 0; y < w.Grid.Height; y++ {
		row := make([]byte, w.Grid.Width)
		for x := 0; x < w.Grid.Width; x++ {
			row[x] = '0'
			if w.Grid.At(domain.Position{X: x, Y: y}).Explored {
				row[x] = '1'
			}
		}
		doc.Grid.Explored = append(doc.Grid.Explored, string(row))
	}

	for _, id := range w.ActorIDs() {
		a := w.GetActor(id)
		av := ActorV1{
			ID:        a.ID,
			Name:      a.Name,
			Template:  a.Template,
			X:         a.Pos.X,
			Y:         a.Pos.Y,
			Faction:   a.Faction.String(),
			HP:        a.Stats.HP,
			MaxHP:     a.Stats.MaxHP,
			Attack:    a.Stats.Attack,
			Defense:   a.Stats.Defense,
			XP:        a.Progression.XP,
			Level:     a.Progression.Level,
			XPReward:  a.XPReward,
			Gold:      a.Gold,
			Inventory: append([]domain.EntityID{}, a.Inventory...),
			Weapon:    a.Equipment.Weapon,
			Armor:     a.Equipment.Armor,
			Statuses:  make([]StatusV1, 0, len(a.Effects)),
			Behavior:  a.Behavior.String(),
			Vision:    a.VisionRadius,
		}
		for _, e := range a.Effects {
			av.Statuses = append(av.Statuses, StatusV1{Kind: e.Kind.String(), Remaining: e.Remaining, Magnitude: e.Magnitude})
		}
		doc.Actors = append(doc.Actors, av)
	}

	for _, id := range w.ItemIDs() {
		it := w.GetItem(id)
		doc.Items = append(doc.Items, ItemV1{
			ID:       it.ID,
			Name:     it.Name,
			Template: it.Template,
			Kind:     it.Kind.String(),
			X:        it.Pos.X,
			Y:        it.Pos.Y,
			Owner:    it.Owner,
			Effect: EffectV1{
				Kind:     it.Effect.Kind.String(),
				Amount:   it.Effect.Amount,
				Range:    it.Effect.Range,
				Radius:   it.Effect.Radius,
				Duration: it.Effect.Duration,
			},
			Attack:  it.Bonus.Attack,
			Defense: it.Bonus.Defense,
			MaxHP:   it.Bonus.MaxHP,
			Amount:  it.Amount,
		})
	}
	return doc
}

// fromSaveV1 собирает мир из документа. Любое несоответствие - ошибка, частичный мир не возвращается.
func fromSaveV1(doc *SaveV1) (*domain.GameState, error) {
	// 1. Карта
	if len(doc.Grid.Rows) != doc.Grid.Height || len(doc.Grid.Explored) != doc.Grid.Height {
		return nil, fmt.Errorf("grid has %d rows and %d explored rows, height %d", len(doc.Grid.Rows), len(doc.Grid.Explored), doc.Grid.Height)
	}
	grid, err := domain.ParseGrid(doc.Grid.Rows)
	if err != nil {
		return nil, err
	}
	if grid.Width != doc.Grid.Width {
		return nil, fmt.Errorf("grid width %d, declared %d", grid.Width, doc.Grid.Width)
	}
	for y, row := range doc.Grid.Explored {
		if len(row) != grid.Width {
			return nil, fmt.Errorf("explored row %d has length %d", y, len(row))
		}
		for x := 0; x < len(row); x++ {
			switch row[x] {
			case '1':
				grid.At(domain.Position{X: x, Y: y}).Explored = true
			case '0':
			default:
				return nil, fmt.Errorf("explored row %d: bad flag %q", y, row[x])
			}
		}
	}

	w := domain.NewWorld(doc.Depth, grid)
	w.NextIndex = doc.NextIndex

	// 2. Акторы. Индекс занятости строится в конце.
	for _, av := range doc.Actors {
		faction, ok := domain.ParseFaction(av.Faction)
		if !ok {
			return nil, fmt.Errorf("actor %s: unknown faction %q", av.ID, av.Faction)
		}
		behavior, ok := domain.ParseBehavior(av.Behavior)
		if !ok {
			return nil, fmt.Errorf("actor %s: unknown behavior %q", av.ID, av.Behavior)
		}
		if _, dup := w.Actors[av.ID]; dup {
			return nil, fmt.Errorf("duplicate actor %s", av.ID)
		}
		a := &domain.Actor{
			ID:           av.ID,
			Name:         av.Name,
			Template:     av.Template,
			Pos:          domain.Position{X: av.X, Y: av.Y},
			Faction:      faction,
			Stats:        domain.Stats{HP: av.HP, MaxHP: av.MaxHP, Attack: av.Attack, Defense: av.Defense},
			Progression:  domain.Progression{XP: av.XP, Level: av.Level},
			XPReward:     av.XPReward,
			Gold:         av.Gold,
			Equipment:    domain.Equipment{Weapon: av.Weapon, Armor: av.Armor},
			Behavior:     behavior,
			VisionRadius: av.Vision,
		}
		if len(av.Inventory) > 0 {
			a.Inventory = append([]domain.EntityID(nil), av.Inventory...)
		}
		for _, sv := range av.Statuses {
			kind := domain.ParseStatus(sv.Kind)
			if kind == domain.StatusUnknown {
				return nil, fmt.Errorf("actor %s: unknown status %q", av.ID, sv.Kind)
			}
			a.Effects = append(a.Effects, domain.StatusEffect{Kind: kind, Remaining: sv.Remaining, Magnitude: sv.Magnitude})
		}
		if faction == domain.FactionPlayer {
			w.PlayerID = a.ID
		}
		w.Actors[a.ID] = a
	}

	// 3. Предметы
	for _, iv := range doc.Items {
		kind, ok := domain.ParseItemKind(iv.Kind)
		if !ok {
			return nil, fmt.Errorf("item %s: unknown kind %q", iv.ID, iv.Kind)
		}
		effect := domain.EffectNone
		if iv.Effect.Kind != "" && iv.Effect.Kind != domain.EffectNone.String() {
			if effect, ok = domain.ParseEffectKind(iv.Effect.Kind); !ok {
				return nil, fmt.Errorf("item %s: unknown effect %q", iv.ID, iv.Effect.Kind)
			}
		}
		if _, dup := w.Items[iv.ID]; dup {
			return nil, fmt.Errorf("duplicate item %s", iv.ID)
		}
		w.Items[iv.ID] = &domain.Item{
			ID:       iv.ID,
			Name:     iv.Name,
			Template: iv.Template,
			Kind:     kind,
			Pos:      domain.Position{X: iv.X, Y: iv.Y},
			Owner:    iv.Owner,
			Effect: domain.Effect{
				Kind:     effect,
				Amount:   iv.Effect.Amount,
				Range:    iv.Effect.Range,
				Radius:   iv.Effect.Radius,
				Duration: iv.Effect.Duration,
			},
			Bonus:  domain.Bonus{Attack: iv.Attack, Defense: iv.Defense, MaxHP: iv.MaxHP},
			Amount: iv.Amount,
		}
	}

	if err := w.RebuildIndex(); err != nil {
		return nil, err
	}
	return &domain.GameState{Seed: doc.Seed, Round: doc.Round, World: w}, nil
}
