// Package notification provides event handlers for sending notifications
// in response to domain events.
// This module subscribes to events and inverts the dependency: domain modules
// do not know about e-mail providers, templates or the job queue.
package notification

import (
	"context"
	"strings"

	"travelnest_backend/internal/email"
	"travelnest_backend/internal/events"
	"travelnest_backend/internal/scheduler"
	"travelnest_backend/platform/config"
	"travelnest_backend/platform/logger"
)

// Module handles all notification-related event subscriptions.
type Module struct {
	sender email.Sender
	queue  scheduler.EmailQueue
	cfg    config.NotificationConfig
	log    *logger.Logger
}

// New creates the notification module. Without a queue every message is
// sent inline.
func New(sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Module {
	if sender == nil {
		sender = email.NoopSender{}
	}
	return &Module{sender: sender, cfg: cfg, log: log}
}

// SetEmailQueue routes messages through the background worker.
func (m *Module) SetEmailQueue(queue scheduler.EmailQueue) { m.queue = queue }

func (m *Module) Name() string { return "notification" }

// RegisterHandlers subscribes the module to every event it reacts to.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.UserRegistered{}.EventName(), m)
	bus.Subscribe(events.BookingCreated{}.EventName(), m)
	bus.Subscribe(events.BookingStatusChanged{}.EventName(), m)
	bus.Subscribe(events.CustomRequestSubmitted{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle turns an event into one e-mail, tagged with the event ID so a
// redelivered event is not queued twice.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	var payload scheduler.NotificationEmailPayload
	switch e := event.(type) {
	case events.UserRegistered:
		payload = scheduler.NotificationEmailPayload{
			Kind:     scheduler.EmailWelcome,
			To:       e.Email,
			Name:     e.Name,
			LoginURL: m.url("/login"),
		}
	case events.BookingCreated:
		payload = scheduler.NotificationEmailPayload{
			Kind: scheduler.EmailBookingReceived,
			To:   e.ContactEmail,
			Booking: &email.BookingDetails{
				BookingID:    e.BookingID,
				PackageTitle: e.PackageTitle,
				StartDate:    e.StartDate,
				Travelers:    e.Travelers,
				TotalPrice:   e.TotalPrice,
				DashboardURL: m.url("/dashboard"),
			},
		}
	case events.BookingStatusChanged:
		payload = scheduler.NotificationEmailPayload{
			Kind: scheduler.EmailBookingStatus,
			To:   e.ContactEmail,
			Status: &email.BookingStatusDetails{
				BookingID:     e.BookingID,
				PackageTitle:  e.PackageTitle,
				Status:        e.NewStatus,
				PaymentStatus: e.NewPaymentStatus,
				DashboardURL:  m.url("/dashboard"),
			},
		}
	case events.CustomRequestSubmitted:
		payload = scheduler.NotificationEmailPayload{
			Kind: scheduler.EmailCustomRequestReceived,
			To:   e.ContactEmail,
			Request: &email.CustomRequestDetails{
				RequestID:    e.RequestID,
				Destinations: e.Destinations,
				Days:         e.Days,
				Travelers:    e.Travelers,
			},
		}
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}

	payload.EventID = event.EventID()
	return m.dispatch(ctx, payload)
}

// dispatch queues the message, falling back to an inline send when the
// queue is absent or rejects it. Failures are logged and swallowed.
func (m *Module) dispatch(ctx context.Context, payload scheduler.NotificationEmailPayload) error {
	if strings.TrimSpace(payload.To) == "" {
		m.log.Warn("notification skipped: no recipient", "kind", payload.Kind)
		return nil
	}

	if m.queue != nil {
		err := m.queue.EnqueueEmail(ctx, payload)
		if err == nil {
			return nil
		}
		m.log.Warn("notification enqueue failed, sending inline", "kind", payload.Kind, "error", err)
	}

	if err := scheduler.DeliverEmail(ctx, m.sender, payload); err != nil {
		m.log.Error("notification email failed", "kind", payload.Kind, "error", err)
	}
	return nil
}

func (m *Module) url(path string) string {
	if m.cfg == nil {
		return ""
	}
	base := strings.TrimRight(m.cfg.GetAppBaseURL(), "/")
	if base == "" {
		return ""
	}
	return base + path
}

var _ events.Handler = (*Module)(nil)
