package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstream/storefront-gateway/internal/core/domain"
)

type stubSender struct {
	mu     sync.Mutex
	sent   []domain.Event
	err    error
	notify chan struct{}
}

func (s *stubSender) TrackEvent(_ context.Context, event domain.Event) error {
	s.mu.Lock()
	s.sent = append(s.sent, event)
	s.mu.Unlock()
	if s.notify != nil {
		s.notify <- struct{}{}
	}
	return s.err
}

func (s *stubSender) events() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Event(nil), s.sent...)
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sender := &stubSender{notify: make(chan struct{}, 8)}
	d := NewDispatcher(2, sender, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(domain.Event{EventType: "product_view", SessionID: "s1"})
	d.Enqueue(domain.Event{EventType: "add_to_cart", SessionID: "s1"})

	for i := 0; i < 2; i++ {
		select {
		case <-sender.notify:
		case <-time.After(2 * time.Second):
			t.Fatalf("event not delivered in time")
		}
	}

	got := sender.events()
	if len(got) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(got))
	}
	// Same session, same worker: order preserved.
	if got[0].EventType != "product_view" || got[1].EventType != "add_to_cart" {
		t.Fatalf("per-session order not preserved: %+v", got)
	}
}

func TestDispatcher_DeliveryFailureIsSwallowed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sender := &stubSender{err: errors.New("backend down"), notify: make(chan struct{}, 1)}
	d := NewDispatcher(1, sender, zerolog.Nop())
	d.Start(ctx)

	// Enqueue never blocks or errors, regardless of delivery outcome.
	d.Enqueue(domain.Event{EventType: "search", SessionID: "s2"})

	select {
	case <-sender.notify:
	case <-time.After(2 * time.Second):
		t.Fatalf("event not attempted in time")
	}
}

func TestDispatcher_StopDrainsBufferedEvents(t *testing.T) {
	sender := &stubSender{}
	d := NewDispatcher(1, sender, zerolog.Nop())

	// Enqueue before starting so the events sit in the buffer.
	d.Enqueue(domain.Event{EventType: "view", SessionID: "s1"})
	d.Enqueue(domain.Event{EventType: "search", SessionID: "s1"})

	d.Start(context.Background())
	d.Stop()

	if got := len(sender.events()); got != 2 {
		t.Fatalf("expected buffered events drained on stop, got %d", got)
	}
}

func TestDispatcher_ShardingIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, &stubSender{}, zerolog.Nop())

	first := d.shardIndex("session-abc")
	for i := 0; i < 10; i++ {
		if d.shardIndex("session-abc") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}
