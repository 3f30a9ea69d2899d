package infrastructure

import (
	"context"
	"errors"
	"sync"

	"github.com/sglre6355/cherry/internal/modules/music_player/application/ports"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

// ErrBusClosed is returned when publishing after Close.
var ErrBusClosed = errors.New("event bus is closed")

// Compile-time checks that EventBus implements ports interfaces.
var (
	_ ports.EventPublisher  = (*EventBus)(nil)
	_ ports.EventSubscriber = (*EventBus)(nil)
)

// EventBus delivers node events to subscribers on the event's guild lane.
// Events of one guild are handled in emission order and never interleave with
// commands for that guild. Node-wide events use lane 0.
type EventBus struct {
	executor ports.GuildExecutor

	mu       sync.RWMutex
	handlers map[domain.EventKind][]func(context.Context, domain.Event)
	closed   bool
}

// NewEventBus creates a new EventBus dispatching through executor.
func NewEventBus(executor ports.GuildExecutor) *EventBus {
	return &EventBus{
		executor: executor,
		handlers: make(map[domain.EventKind][]func(context.Context, domain.Event)),
	}
}

// Subscribe registers a handler for events of the given kind.
func (b *EventBus) Subscribe(
	kind domain.EventKind,
	handler func(context.Context, domain.Event),
) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBusClosed
	}
	b.handlers[kind] = append(b.handlers[kind], handler)
	return nil
}

// Publish enqueues the event on its guild lane and returns immediately.
func (b *EventBus) Publish(event domain.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	handlers := b.handlers[event.Kind()]
	if len(handlers) == 0 {
		return nil
	}

	b.executor.Go(event.Guild(), func(ctx context.Context) {
		for _, handler := range handlers {
			handler(ctx, event)
		}
	})
	return nil
}

// Close stops accepting events. Already published events still run.
func (b *EventBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}
