package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/retail-inventory/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BusOption configures an InMemoryEventBus
type BusOption func(*InMemoryEventBus)

// WithAsyncWorkers dispatches events on a pool of workers reading from a
// queue of bufferSize. A full queue makes Publish dispatch inline.
func WithAsyncWorkers(workers, bufferSize int) BusOption {
	return func(b *InMemoryEventBus) {
		if workers < 1 {
			workers = 1
		}
		if bufferSize < 1 {
			bufferSize = 1
		}
		b.workers = workers
		b.queue = make(chan envelope, bufferSize)
	}
}

type envelope struct {
	ctx   context.Context
	event shared.DomainEvent
}

// InMemoryEventBus delivers domain events to the handlers subscribed in this
// process. Handler errors and panics are logged and never reach the publisher.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	workers  int
	queue    chan envelope
	wg       sync.WaitGroup

	// mu guards running and stopped, and is held while enqueueing so Stop
	// never closes the queue under a sender
	mu      sync.RWMutex
	running bool
	stopped bool
}

// NewInMemoryEventBus creates a new in-memory event bus. Without options
// events are dispatched synchronously on the publisher's goroutine.
func NewInMemoryEventBus(logger *zap.Logger, opts ...BusOption) *InMemoryEventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish hands events to their handlers. It always returns nil.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		if event == nil {
			continue
		}
		if b.enqueue(ctx, event) {
			continue
		}
		b.dispatch(ctx, event)
	}
	return nil
}

// enqueue hands the event to the workers. It reports false when the bus is
// synchronous, not running, or the queue is full.
func (b *InMemoryEventBus) enqueue(ctx context.Context, event shared.DomainEvent) bool {
	if b.queue == nil {
		return false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.running {
		return false
	}
	// detach from request cancellation; the request may end first
	select {
	case b.queue <- envelope{ctx: context.WithoutCancel(ctx), event: event}:
		return true
	default:
		b.logger.Warn("event queue full, dispatching inline",
			zap.String("event_type", event.EventType()))
		return false
	}
}

// Subscribe registers a handler. Without explicit event types the handler's
// own EventTypes are used.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed",
		zap.String("handler", fmt.Sprintf("%T", handler)),
		zap.Strings("event_types", eventTypes),
	)
}

// Unsubscribe removes a handler from every event type
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

// Start launches the async workers when configured. A stopped bus stays
// synchronous.
func (b *InMemoryEventBus) Start(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running || b.stopped {
		return nil
	}
	b.running = true
	for i := 0; i < b.workers; i++ {
		b.wg.Add(1)
		go b.work()
	}
	b.logger.Info("event bus started", zap.Int("workers", b.workers))
	return nil
}

// Stop drains queued events and waits for the workers, or gives up when ctx ends
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.mu.Lock()
	if !b.stopped {
		b.stopped = true
		b.running = false
		if b.queue != nil {
			close(b.queue)
		}
	}
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		b.logger.Info("event bus stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("event bus stop: %w", ctx.Err())
	}
}

func (b *InMemoryEventBus) work() {
	defer b.wg.Done()
	for env := range b.queue {
		b.dispatch(env.ctx, env.event)
	}
}

func (b *InMemoryEventBus) dispatch(ctx context.Context, event shared.DomainEvent) {
	for _, handler := range b.registry.GetHandlers(event.EventType()) {
		if err := b.safeHandle(ctx, handler, event); err != nil {
			b.logger.Error("handler failed to process event",
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID().String()),
				zap.String("tenant_id", event.TenantID().String()),
				zap.Error(err),
			)
		}
	}
}

func (b *InMemoryEventBus) safeHandle(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler.Handle(ctx, event)
}

// Ensure InMemoryEventBus implements EventBus
var _ shared.EventBus = (*InMemoryEventBus)(nil)
