// Package analytics delivers behavioural events to the backend pipeline
// without blocking the shopper path. Events are fire-and-forget: a delivery
// failure is logged and dropped, never surfaced to the caller.
package analytics

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shopstream/storefront-gateway/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// EventSender is the interface the dispatcher delivers through; satisfied by
// the gateway client.
type EventSender interface {
	TrackEvent(ctx context.Context, event domain.Event) error
}

// Dispatcher routes events to a fixed set of workers using consistent
// hashing on the session ID, guaranteeing per-session event ordering.
type Dispatcher struct {
	workers []chan domain.Event
	sender  EventSender
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender EventSender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Event, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Event, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or when Stop closes their channels.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Stop closes the worker channels and waits for buffered events to drain.
// Enqueue must not be called after Stop.
func (d *Dispatcher) Stop() {
	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()
}

// Enqueue hands an event to the worker responsible for its session. When the
// worker's buffer is full the event is dropped: analytics must never apply
// backpressure to the shopper path.
func (d *Dispatcher) Enqueue(event domain.Event) {
	ch := d.workers[d.shardIndex(event.SessionID)]
	select {
	case ch <- event:
	default:
		d.log.Warn().Str("event_type", event.EventType).Msg("analytics buffer full, event dropped")
	}
}

// shardIndex maps a session ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(sessionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Event) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sender.TrackEvent(ctx, event); err != nil {
				d.log.Warn().Err(err).
					Int("worker", id).
					Str("event_type", event.EventType).
					Msg("event delivery failed")
			}
		}
	}
}
