package events

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"travelnest_backend/platform/logger"
)

type pingEvent struct {
	BaseEvent
}

func (pingEvent) EventName() string { return "test.ping" }

func newTestBus() *InMemoryBus {
	return NewInMemoryBus(logger.New("development", logger.WithOutput(io.Discard)))
}

func TestPublishSyncRunsHandlersInOrder(t *testing.T) {
	bus := newTestBus()
	var order []int
	bus.Subscribe("test.ping", HandlerFunc(func(ctx context.Context, e Event) error {
		order = append(order, 1)
		return nil
	}))
	bus.Subscribe("test.ping", HandlerFunc(func(ctx context.Context, e Event) error {
		order = append(order, 2)
		return nil
	}))

	if err := bus.PublishSync(context.Background(), pingEvent{NewBaseEvent()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestPublishSyncJoinsErrorsAndRecoversPanics(t *testing.T) {
	bus := newTestBus()
	sentinel := errors.New("smtp down")
	bus.Subscribe("test.ping", HandlerFunc(func(ctx context.Context, e Event) error { return sentinel }))
	bus.Subscribe("test.ping", HandlerFunc(func(ctx context.Context, e Event) error { panic("boom") }))

	err := bus.PublishSync(context.Background(), pingEvent{NewBaseEvent()})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected joined sentinel error, got %v", err)
	}
}

func TestPublishIsAsyncAndSurvivesCancelledContext(t *testing.T) {
	bus := newTestBus()
	var calls atomic.Int32
	bus.Subscribe("test.ping", HandlerFunc(func(ctx context.Context, e Event) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		calls.Add(1)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, pingEvent{NewBaseEvent()})
	bus.Wait()

	if calls.Load() != 1 {
		t.Fatalf("expected handler to run once, got %d", calls.Load())
	}
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := newTestBus()
	bus.Publish(context.Background(), pingEvent{NewBaseEvent()})
	bus.Wait()
}

func TestNewBaseEventStampsIDAndUTC(t *testing.T) {
	a, b := NewBaseEvent(), NewBaseEvent()
	if a.EventID() == "" || a.EventID() == b.EventID() {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", a.EventID(), b.EventID())
	}
	if a.OccurredAt().Location() != time.UTC {
		t.Fatalf("expected UTC timestamp")
	}
}
