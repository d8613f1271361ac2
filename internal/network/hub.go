package network

import (
	"sync"

	"delve/pkg/api"
)

// Broadcaster рассылает снимки всем подключенным зрителям.
// Последний снимок запоминается и сразу уходит новому подписчику.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ID соединения -> личный канал
	subscribers map[string]chan *api.Snapshot
	last        *api.Snapshot
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan *api.Snapshot),
	}
}

// Register создает личный канал для соединения
func (b *Broadcaster) Register(id string) <-chan *api.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[id]; ok {
		close(old)
	}

	ch := make(chan *api.Snapshot, 16)
	if b.last != nil {
		ch <- b.last
	}
	b.subscribers[id] = ch
	return ch
}

// Unregister удаляет подписчика и закрывает его канал
func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// Broadcast отправляет снимок всем. Медленный зритель пропускает кадр, игру он не тормозит.
func (b *Broadcaster) Broadcast(snap *api.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.last = snap
	for _, ch := range b.subscribers {
		select {
		case ch <- snap:
		default:
		}
	}
}

// Last - последний разосланный снимок (nil до первой рассылки)
func (b *Broadcaster) Last() *api.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.last
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close закрывает все каналы (остановка сервера)
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
