package messaging

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
)

// countingHandler records the events it receives.
type countingHandler struct {
	mu     sync.Mutex
	name   string
	events []shared.Event
	err    error
	panics bool
}

func (h *countingHandler) Handle(event shared.Event) error {
	if h.panics {
		panic("handler exploded")
	}

	h.mu.Lock()
	h.events = append(h.events, event)
	h.mu.Unlock()
	return h.err
}

func (h *countingHandler) Name() string { return h.name }

func (h *countingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

func newTestBus(async bool) *EventBus {
	return NewEventBus(Config{
		AsyncMode:      async,
		WorkerPoolSize: 4,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestEventBus_DeliversToSubscribers(t *testing.T) {
	bus := newTestBus(false)
	defer bus.Close()

	completed := &countingHandler{name: "completed"}
	recorded := &countingHandler{name: "recorded"}
	require.NoError(t, bus.Subscribe(shared.EventTaskCompleted, completed))
	require.NoError(t, bus.Subscribe(shared.EventSessionRecorded, recorded))

	bus.Publish(shared.NewTaskCompletedEvent("task-1", "user-1", 50))

	assert.Equal(t, 1, completed.count())
	assert.Zero(t, recorded.count(), "handlers only see their subscribed type")
}

func TestEventBus_MultipleHandlersPerType(t *testing.T) {
	bus := newTestBus(false)
	defer bus.Close()

	first := &countingHandler{name: "first"}
	second := &countingHandler{name: "second"}
	require.NoError(t, bus.Subscribe(shared.EventTaskCompleted, first))
	require.NoError(t, bus.Subscribe(shared.EventTaskCompleted, second))

	bus.Publish(shared.NewTaskCompletedEvent("task-1", "user-1", 50))

	assert.Equal(t, 1, first.count())
	assert.Equal(t, 1, second.count())
}

func TestEventBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := newTestBus(false)
	defer bus.Close()

	failing := &countingHandler{name: "failing", err: errors.New("boom")}
	healthy := &countingHandler{name: "healthy"}
	require.NoError(t, bus.Subscribe(shared.EventTaskCompleted, failing))
	require.NoError(t, bus.Subscribe(shared.EventTaskCompleted, healthy))

	bus.Publish(shared.NewTaskCompletedEvent("task-1", "user-1", 50))

	assert.Equal(t, 1, healthy.count())
}

func TestEventBus_PanicRecovered(t *testing.T) {
	bus := newTestBus(false)
	defer bus.Close()

	panicking := &countingHandler{name: "panicking", panics: true}
	after := &countingHandler{name: "after"}
	require.NoError(t, bus.Subscribe(shared.EventTaskCompleted, panicking))
	require.NoError(t, bus.Subscribe(shared.EventTaskCompleted, after))

	assert.NotPanics(t, func() {
		bus.Publish(shared.NewTaskCompletedEvent("task-1", "user-1", 50))
	})
	assert.Equal(t, 1, after.count())
}

func TestEventBus_AsyncDelivery(t *testing.T) {
	bus := newTestBus(true)

	handler := &countingHandler{name: "async"}
	require.NoError(t, bus.Subscribe(shared.EventSessionRecorded, handler))

	for i := 0; i < 20; i++ {
		bus.Publish(shared.NewSessionRecordedEvent("session-1", "user-1", 25, 250))
	}

	assert.Eventually(t, func() bool { return handler.count() == 20 },
		2*time.Second, 5*time.Millisecond)
	require.NoError(t, bus.Close())
}

func TestEventBus_ClosedBusRejectsSubscribe(t *testing.T) {
	bus := newTestBus(false)
	require.NoError(t, bus.Close())

	err := bus.Subscribe(shared.EventTaskCompleted, &countingHandler{name: "late"})
	assert.ErrorIs(t, err, ErrEventBusClosed)

	// Publishing after close is a silent no-op.
	assert.NotPanics(t, func() {
		bus.Publish(shared.NewTaskCompletedEvent("task-1", "user-1", 50))
	})
}

func TestEventBus_NilHandlerRejected(t *testing.T) {
	bus := newTestBus(false)
	defer bus.Close()

	assert.Error(t, bus.Subscribe(shared.EventTaskCompleted, nil))
}
