package engine

import (
	"strconv"

	"delve/internal/domain"
	"delve/internal/systems"
	"delve/pkg/api"
)

// BuildSnapshot создает "снимок" мира глазами игрока.
// Все данные копируются: снимок не ссылается на состояние ядра.
func BuildSnapshot(w *domain.World, visible systems.VisibleSet, logs []domain.LogEntry, round int, rules systems.Rules, over bool) *api.Snapshot {
	snap := &api.Snapshot{
		Type:     "UPDATE",
		Round:    round,
		Depth:    w.Depth,
		Grid:     api.GridMeta{Width: w.Grid.Width, Height: w.Grid.Height},
		Map:      make([]api.TileView, 0),
		Entities: make([]api.EntityView, 0),
		Items:    make([]api.ItemView, 0),
		Logs:     make([]api.LogEntry, 0, len(logs)),
	}
	if over {
		snap.Type = "GAME_OVER"
	}

	// 1. Карта: только исследованные тайлы
	for idx, tile := range w.Grid.Tiles {
		if !tile.Explored {
			continue
		}
		p := w.Grid.PositionOf(idx)
		snap.Map = append(snap.Map, api.TileView{
			X: p.X, Y: p.Y,
			Kind:       tile.Kind.String(),
			Symbol:     string(tile.Kind.Glyph()),
			IsVisible:  visible.Contains(p),
			IsExplored: true,
		})
	}

	// 2. Акторы в поле зрения (себя видим всегда)
	for _, id := range w.ActorIDs() {
		a := w.GetActor(id)
		if !a.IsPlayer() && !visible.Contains(a.Pos) {
			continue
		}
		eff := systems.EffectiveStats(w, a)
		snap.Entities = append(snap.Entities, api.EntityView{
			ID:      wireID(a.ID),
			Name:    a.Name,
			Kind:    a.Template,
			Faction: a.Faction.String(),
			Pos:     toPos(a.Pos),
			HP:      a.Stats.HP,
			MaxHP:   eff.MaxHP,
		})
	}

	// 3. Предметы на полу в поле зрения
	for _, id := range w.ItemIDs() {
		it := w.GetItem(id)
		if it.IsHeld() || !visible.Contains(it.Pos) {
			continue
		}
		view := toItemView(it)
		pos := toPos(it.Pos)
		view.Pos = &pos
		snap.Items = append(snap.Items, view)
	}

	// 4. Герой
	if p := w.Player(); p != nil {
		snap.Player = buildPlayerView(w, p, rules)
	}

	// 5. Копия логов
	for _, e := range logs {
		snap.Logs = append(snap.Logs, api.LogEntry{Round: e.Round, Text: e.Text, Type: string(e.Type)})
	}
	return snap
}

func buildPlayerView(w *domain.World, p *domain.Actor, rules systems.Rules) api.PlayerView {
	eff := systems.EffectiveStats(w, p)
	view := api.PlayerView{
		ID:   wireID(p.ID),
		Name: p.Name,
		Pos:  toPos(p.Pos),
		Stats: api.StatsView{
			HP:      p.Stats.HP,
			MaxHP:   eff.MaxHP,
			Attack:  eff.Attack,
			Defense: eff.Defense,
		},
		Progression: api.ProgressionView{
			Level:       p.Progression.Level,
			XP:          p.Progression.XP,
			NextLevelXP: systems.XPToReach(rules, p.Progression.Level),
		},
		Gold:      p.Gold,
		Inventory: make([]api.ItemView, 0, len(p.Inventory)),
		MaxSlots:  domain.InventoryCapacity,
		IsDead:    p.IsDead(),
	}

	for _, id := range p.Inventory {
		if it := w.GetItem(id); it != nil {
			view.Inventory = append(view.Inventory, toItemView(it))
		}
	}
	if it := w.GetItem(p.Equipment.Weapon); it != nil {
		v := toItemView(it)
		view.Equipment.Weapon = &v
	}
	if it := w.GetItem(p.Equipment.Armor); it != nil {
		v := toItemView(it)
		view.Equipment.Armor = &v
	}
	for _, st := range p.Effects {
		view.Statuses = append(view.Statuses, api.StatusView{Kind: st.Kind.String(), Remaining: st.Remaining})
	}
	return view
}

func toItemView(it *domain.Item) api.ItemView {
	return api.ItemView{
		ID:       wireID(it.ID),
		Name:     it.Name,
		Kind:     it.Kind.String(),
		Template: it.Template,
		Attack:   it.Bonus.Attack,
		Defense:  it.Bonus.Defense,
		MaxHP:    it.Bonus.MaxHP,
		Amount:   it.Amount,
		Targeted: it.Effect.Kind.NeedsTarget(),
	}
}

func toPos(p domain.Position) api.Position {
	return api.Position{X: p.X, Y: p.Y}
}

// wireID - десятичная запись, которую клиент присылает обратно в ItemPayload
func wireID(id domain.EntityID) string {
	return strconv.FormatUint(uint64(id), 10)
}
