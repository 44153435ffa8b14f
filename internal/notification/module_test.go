package notification

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"travelnest_backend/internal/email"
	"travelnest_backend/internal/events"
	"travelnest_backend/internal/scheduler"
	"travelnest_backend/platform/logger"
)

type testNotificationConfig struct{}

func (testNotificationConfig) GetAppBaseURL() string { return "https://travelnest.example/" }

type testSender struct {
	email.NoopSender
	bookings []email.BookingDetails
	statuses []email.BookingStatusDetails
	welcomed []string
}

func (s *testSender) SendWelcomeEmail(ctx context.Context, toEmail, name, loginURL string) error {
	s.welcomed = append(s.welcomed, loginURL)
	return nil
}

func (s *testSender) SendBookingReceivedEmail(ctx context.Context, toEmail string, d email.BookingDetails) error {
	s.bookings = append(s.bookings, d)
	return nil
}

func (s *testSender) SendBookingStatusEmail(ctx context.Context, toEmail string, d email.BookingStatusDetails) error {
	s.statuses = append(s.statuses, d)
	return nil
}

type testQueue struct {
	payloads []scheduler.NotificationEmailPayload
	err      error
}

func (q *testQueue) EnqueueEmail(ctx context.Context, p scheduler.NotificationEmailPayload) error {
	if q.err != nil {
		return q.err
	}
	q.payloads = append(q.payloads, p)
	return nil
}

func newTestModule(sender email.Sender) *Module {
	return New(sender, testNotificationConfig{}, logger.New("development", logger.WithOutput(io.Discard)))
}

func TestBookingCreatedSendsInlineWithoutQueue(t *testing.T) {
	sender := &testSender{}
	m := newTestModule(sender)

	err := m.Handle(context.Background(), events.BookingCreated{
		BaseEvent:    events.NewBaseEvent(),
		BookingID:    "b1",
		PackageTitle: "Bali Paradise",
		StartDate:    time.Now().Add(72 * time.Hour),
		Travelers:    2,
		TotalPrice:   2500,
		ContactEmail: "alice@example.com",
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sender.bookings) != 1 {
		t.Fatalf("expected one booking e-mail, got %d", len(sender.bookings))
	}
	if got := sender.bookings[0]; got.TotalPrice != 2500 || got.DashboardURL != "https://travelnest.example/dashboard" {
		t.Fatalf("unexpected details %+v", got)
	}
}

func TestEventsAreQueuedWhenQueueConfigured(t *testing.T) {
	sender := &testSender{}
	queue := &testQueue{}
	m := newTestModule(sender)
	m.SetEmailQueue(queue)

	_ = m.Handle(context.Background(), events.UserRegistered{BaseEvent: events.NewBaseEvent(), Email: "bob@example.com", Name: "Bob"})
	_ = m.Handle(context.Background(), events.CustomRequestSubmitted{ContactEmail: "bob@example.com", Destinations: []string{"Oslo"}, Days: 4, Travelers: 1})

	if len(queue.payloads) != 2 || len(sender.welcomed) != 0 {
		t.Fatalf("expected queued messages only, got %d queued, %d sent", len(queue.payloads), len(sender.welcomed))
	}
	if queue.payloads[0].EventID == "" {
		t.Fatalf("expected event id carried into the payload")
	}
	if queue.payloads[0].Kind != scheduler.EmailWelcome || queue.payloads[0].LoginURL != "https://travelnest.example/login" {
		t.Fatalf("unexpected welcome payload %+v", queue.payloads[0])
	}
	if queue.payloads[1].Request == nil || queue.payloads[1].Request.Days != 4 {
		t.Fatalf("unexpected request payload %+v", queue.payloads[1])
	}
}

func TestQueueFailureFallsBackToInline(t *testing.T) {
	sender := &testSender{}
	m := newTestModule(sender)
	m.SetEmailQueue(&testQueue{err: errors.New("redis down")})

	err := m.Handle(context.Background(), events.BookingStatusChanged{
		BookingID: "b1", ContactEmail: "alice@example.com", PackageTitle: "Kyoto", NewStatus: "confirmed", NewPaymentStatus: "paid",
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sender.statuses) != 1 || sender.statuses[0].Status != "confirmed" {
		t.Fatalf("expected inline status e-mail, got %+v", sender.statuses)
	}
}

func TestMissingRecipientIsSkipped(t *testing.T) {
	sender := &testSender{}
	m := newTestModule(sender)

	if err := m.Handle(context.Background(), events.UserRegistered{Name: "No Mail"}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sender.welcomed) != 0 {
		t.Fatal("nothing may be sent without a recipient")
	}
}

func TestRegisterHandlersSubscribesThroughBus(t *testing.T) {
	log := logger.New("development", logger.WithOutput(io.Discard))
	bus := events.NewInMemoryBus(log)
	sender := &testSender{}
	m := newTestModule(sender)
	m.RegisterHandlers(bus)

	if err := bus.PublishSync(context.Background(), events.UserRegistered{Email: "carol@example.com", Name: "Carol"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(sender.welcomed) != 1 {
		t.Fatalf("expected welcome e-mail via bus, got %d", len(sender.welcomed))
	}
}
