package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"delve/internal/domain"
	"delve/internal/engine"
)

// DebugView - полное состояние уровня, включая то, чего игрок не видит
type DebugView struct {
	Seed   int64            `json:"seed"`
	Round  int              `json:"round"`
	Depth  int              `json:"depth"`
	Status string           `json:"status"`
	Rows   []string         `json:"rows"`
	Actors []*domain.Actor  `json:"actors"`
	Items  []*domain.Item   `json:"items"`
	Queue  []map[string]any `json:"queue"`
}

// DebugHandler отдает последний снятый с игры DebugView.
// Снимок делается в горутине игры, HTTP-обработчики читают только копию.
type DebugHandler struct {
	mu   sync.RWMutex
	view *DebugView
}

func NewDebugHandler() *DebugHandler {
	return &DebugHandler{}
}

// Capture копирует состояние игры. Вызывать только из игрового цикла.
func (h *DebugHandler) Capture(g *engine.Game) {
	w := g.World()
	view := &DebugView{
		Seed:   g.Seed(),
		Round:  g.Round(),
		Depth:  g.Depth(),
		Status: engine.StatusRunning.String(),
		Rows:   w.Grid.Rows(),
		Queue:  g.Turns().DebugDump(),
	}
	if g.IsOver() {
		view.Status = engine.StatusGameOver.String()
	}

	// Актеры поверх карты, как в консольных рогаликах
	for _, id := range w.ActorIDs() {
		a := w.GetActor(id).Clone()
		view.Actors = append(view.Actors, a)
		row := []byte(view.Rows[a.Pos.Y])
		row[a.Pos.X] = actorGlyph(a)
		view.Rows[a.Pos.Y] = string(row)
	}
	for _, id := range w.ItemIDs() {
		view.Items = append(view.Items, w.GetItem(id).Clone())
	}

	h.mu.Lock()
	h.view = view
	h.mu.Unlock()
}

func actorGlyph(a *domain.Actor) byte {
	if a.Faction == domain.FactionPlayer {
		return '@'
	}
	if a.Name == "" {
		return 'M'
	}
	return a.Name[0]
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/world", h.handleWorld)
}

// /debug/world - карта с монстрами, все сущности и очередь ходов
func (h *DebugHandler) handleWorld(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	view := h.view
	h.mu.RUnlock()

	if view == nil {
		http.Error(w, "game not started", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, view)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}
