package engine

import "delve/internal/domain"

// TurnItem обертка для элемента очереди приоритетов
type TurnItem struct {
	ID       domain.EntityID // Кто ходит
	Priority uint64          // Чем меньше, тем раньше ход
	Index    int             // Индекс в куче (нужен для Remove)
}

// TurnQueue реализует heap.Interface и хранит TurnItems
type TurnQueue []*TurnItem

func (pq TurnQueue) Len() int { return len(pq) }

func (pq TurnQueue) Less(i, j int) bool {
	// MinHeap, при равенстве приоритетов решает ID
	if pq[i].Priority != pq[j].Priority {
		return pq[i].Priority < pq[j].Priority
	}
	return pq[i].ID < pq[j].ID
}

func (pq TurnQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *TurnQueue) Push(x any) {
	n := len(*pq)
	item := x.(*TurnItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *TurnQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}
