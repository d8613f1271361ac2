package engine

import (
	"container/heap"

	"delve/internal/domain"
	"delve/pkg/logger"
)

// TurnManager - очередь ходов одного раунда: сначала игрок, затем монстры по возрастанию ID.
type TurnManager struct {
	queue   TurnQueue
	itemMap map[domain.EntityID]*TurnItem
}

func NewTurnManager() *TurnManager {
	return &TurnManager{
		queue:   make(TurnQueue, 0),
		itemMap: make(map[domain.EntityID]*TurnItem),
	}
}

// turnPriority - игрок всегда первый, остальные по своему ID
func turnPriority(a *domain.Actor) uint64 {
	if a.IsPlayer() {
		return 0
	}
	return uint64(a.ID)
}

// Schedule заполняет очередь живыми акторами мира
func (tm *TurnManager) Schedule(w *domain.World) {
	tm.Clear()
	for _, id := range w.ActorIDs() {
		if a := w.GetActor(id); a != nil && !a.IsDead() {
			tm.Add(a)
		}
	}
	logger.Log.WithField("actors", tm.Len()).Debug("Round scheduled")
}

// Add регистрирует актора в очереди
func (tm *TurnManager) Add(a *domain.Actor) {
	if _, ok := tm.itemMap[a.ID]; ok {
		return
	}
	item := &TurnItem{ID: a.ID, Priority: turnPriority(a)}
	heap.Push(&tm.queue, item)
	tm.itemMap[a.ID] = item
}

// Next снимает с очереди следующего актора
func (tm *TurnManager) Next() (domain.EntityID, bool) {
	if tm.queue.Len() == 0 {
		return domain.NilEntityID, false
	}
	item := heap.Pop(&tm.queue).(*TurnItem)
	delete(tm.itemMap, item.ID)
	return item.ID, true
}

// Remove убирает актора из очереди (например, при смерти).
func (tm *TurnManager) Remove(id domain.EntityID) {
	if item, ok := tm.itemMap[id]; ok {
		heap.Remove(&tm.queue, item.Index)
		delete(tm.itemMap, id)
	}
}

// Prune снимает с очереди тех, кто погиб или исчез с карты, не дождавшись хода
func (tm *TurnManager) Prune(w *domain.World) int {
	var gone []domain.EntityID
	for id := range tm.itemMap {
		if a := w.GetActor(id); a == nil || a.IsDead() {
			gone = append(gone, id)
		}
	}
	for _, id := range gone {
		tm.Remove(id)
	}
	return len(gone)
}

// Clear - раунд закончен или уровень сменился
func (tm *TurnManager) Clear() {
	tm.queue = tm.queue[:0]
	tm.itemMap = make(map[domain.EntityID]*TurnItem)
}

func (tm *TurnManager) Len() int {
	return tm.queue.Len()
}

// DebugDump возвращает снимок очереди для отладки
func (tm *TurnManager) DebugDump() []map[string]any {
	// Инициализируем как пустой слайс, а не nil. Тогда в JSON это будет "[]", а не "null"
	result := make([]map[string]any, 0)

	for _, item := range tm.queue {
		result = append(result, map[string]any{
			"id":       item.ID.String(),
			"priority": item.Priority,
			"index":    item.Index,
		})
	}
	return result
}
