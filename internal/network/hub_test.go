package network

import (
	"testing"

	"delve/pkg/api"
)

func TestBroadcaster(t *testing.T) {
	b := NewBroadcaster()

	early := b.Register("a")
	first := &api.Snapshot{Type: "UPDATE", Round: 1}
	b.Broadcast(first)

	if got := <-early; got != first {
		t.Fatalf("Expected first snapshot, got %+v", got)
	}

	// Поздний подписчик сразу получает последний снимок
	late := b.Register("b")
	if got := <-late; got.Round != 1 {
		t.Fatalf("Expected replay of round 1, got %+v", got)
	}
	if b.SubscriberCount() != 2 {
		t.Fatalf("Expected 2 subscribers, got %d", b.SubscriberCount())
	}

	b.Unregister("a")
	if _, ok := <-early; ok {
		t.Error("Expected channel of unregistered subscriber to be closed")
	}

	// Переполненный канал не блокирует рассылку
	for i := 0; i < 40; i++ {
		b.Broadcast(&api.Snapshot{Round: 2 + i})
	}
	if b.Last().Round != 41 {
		t.Errorf("Expected last round 41, got %d", b.Last().Round)
	}

	b.Close()
	if b.SubscriberCount() != 0 {
		t.Error("Expected no subscribers after Close")
	}
}
