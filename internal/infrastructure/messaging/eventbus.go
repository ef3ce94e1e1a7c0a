// Package messaging implements the in-process event bus for Apex Campus Hub.
// Commands publish domain events after their transaction scope commits;
// handlers react asynchronously (cache invalidation and the like) and
// their failures never propagate back to the publishing request.
package messaging

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrEventBusClosed is returned when operations are attempted on a closed bus.
	ErrEventBusClosed = errors.New("event bus is closed")
)

// ══════════════════════════════════════════════════════════════════════════════
// IN-MEMORY EVENT BUS
// ══════════════════════════════════════════════════════════════════════════════

// EventBus is an in-memory publish/subscribe bus. Suitable for the
// hub's single-instance deployment; every handler runs in this process.
type EventBus struct {
	mu         sync.RWMutex
	handlers   map[shared.EventType][]shared.EventHandler
	asyncMode  bool
	workerPool chan struct{}
	logger     *slog.Logger
	closed     bool
	closeCh    chan struct{}
	wg         sync.WaitGroup
}

// Config contains configuration for the EventBus.
type Config struct {
	// AsyncMode runs handlers on the worker pool instead of the
	// publisher's goroutine. Tests use sync mode for determinism.
	AsyncMode bool

	// WorkerPoolSize bounds concurrent async handlers.
	WorkerPoolSize int

	// Logger for structured logging.
	Logger *slog.Logger
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		AsyncMode:      true,
		WorkerPoolSize: 10,
	}
}

// NewEventBus creates a new in-memory event bus.
func NewEventBus(config Config) *EventBus {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = 10
	}

	return &EventBus{
		handlers:   make(map[shared.EventType][]shared.EventHandler),
		asyncMode:  config.AsyncMode,
		workerPool: make(chan struct{}, config.WorkerPoolSize),
		logger:     config.Logger,
		closeCh:    make(chan struct{}),
	}
}

// Subscribe registers a handler for a specific event type.
func (b *EventBus) Subscribe(eventType shared.EventType, handler shared.EventHandler) error {
	if handler == nil {
		return errors.New("handler cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrEventBusClosed
	}

	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.logger.Debug("subscribed handler", "event_type", eventType, "handler", handler.Name())

	return nil
}

// Publish sends an event to all subscribed handlers. Implements
// shared.EventPublisher. Handler errors are logged, never returned:
// the publishing operation has already committed by the time its
// events go out.
func (b *EventBus) Publish(event shared.Event) {
	if event == nil {
		return
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	handlers := make([]shared.EventHandler, len(b.handlers[event.EventType()]))
	copy(handlers, b.handlers[event.EventType()])
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.logger.Debug("no handlers for event", "event_type", event.EventType())
		return
	}

	if b.asyncMode {
		for _, handler := range handlers {
			b.executeAsync(event, handler)
		}
		return
	}

	for _, handler := range handlers {
		b.execute(event, handler)
	}
}

// executeAsync executes a handler on the worker pool.
func (b *EventBus) executeAsync(event shared.Event, handler shared.EventHandler) {
	b.wg.Add(1)

	go func() {
		defer b.wg.Done()

		// Acquire worker slot
		select {
		case b.workerPool <- struct{}{}:
			defer func() { <-b.workerPool }()
		case <-b.closeCh:
			return
		}

		b.execute(event, handler)
	}()
}

// execute runs one handler with panic recovery and logs the outcome.
func (b *EventBus) execute(event shared.Event, handler shared.EventHandler) {
	start := time.Now()

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("handler panic recovered",
					"event_type", event.EventType(),
					"handler", handler.Name(),
					"panic", r,
					"stack", string(debug.Stack()),
				)
				err = fmt.Errorf("handler panic: %v", r)
			}
		}()
		return handler.Handle(event)
	}()

	duration := time.Since(start)

	if err != nil {
		b.logger.Error("handler failed",
			"event_type", event.EventType(),
			"handler", handler.Name(),
			"duration", duration,
			"error", err,
		)
		return
	}

	b.logger.Debug("handler completed",
		"event_type", event.EventType(),
		"handler", handler.Name(),
		"duration", duration,
	)
}

// Close gracefully shuts down the event bus, waiting for in-flight
// handlers to finish.
func (b *EventBus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.closeCh)
	b.mu.Unlock()

	b.wg.Wait()

	b.logger.Info("event bus closed")
	return nil
}
