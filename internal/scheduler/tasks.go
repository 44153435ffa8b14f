package scheduler

import (
	"context"
	"encoding/json"
	"fmt"

	"travelnest_backend/internal/email"

	"github.com/hibiken/asynq"
)

const TaskNotificationEmail = "notification.email"

// E-mail kinds carried by a notification task.
const (
	EmailWelcome               = "welcome"
	EmailBookingReceived       = "booking_received"
	EmailBookingStatus         = "booking_status"
	EmailCustomRequestReceived = "custom_request_received"
)

type NotificationEmailPayload struct {
	EventID  string                      `json:"eventId,omitempty"`
	Kind     string                      `json:"kind"`
	To       string                      `json:"to"`
	Name     string                      `json:"name,omitempty"`
	LoginURL string                      `json:"loginUrl,omitempty"`
	Booking  *email.BookingDetails       `json:"booking,omitempty"`
	Status   *email.BookingStatusDetails `json:"status,omitempty"`
	Request  *email.CustomRequestDetails `json:"request,omitempty"`
}

func NewNotificationEmailTask(payload NotificationEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotificationEmail, data), nil
}

// taskID derives a stable asynq task ID so the same event enqueues once.
func (p NotificationEmailPayload) taskID() string {
	if p.EventID == "" {
		return ""
	}
	return TaskNotificationEmail + ":" + p.Kind + ":" + p.EventID
}

func ParseNotificationEmailPayload(task *asynq.Task) (NotificationEmailPayload, error) {
	var payload NotificationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return NotificationEmailPayload{}, err
	}
	return payload, nil
}

// DeliverEmail sends the message a payload describes. Malformed payloads
// wrap asynq.SkipRetry so the worker does not retry them.
func DeliverEmail(ctx context.Context, sender email.Sender, p NotificationEmailPayload) error {
	if p.To == "" {
		return fmt.Errorf("notification email: empty recipient: %w", asynq.SkipRetry)
	}

	switch p.Kind {
	case EmailWelcome:
		return sender.SendWelcomeEmail(ctx, p.To, p.Name, p.LoginURL)
	case EmailBookingReceived:
		if p.Booking == nil {
			return fmt.Errorf("notification email: missing booking details: %w", asynq.SkipRetry)
		}
		return sender.SendBookingReceivedEmail(ctx, p.To, *p.Booking)
	case EmailBookingStatus:
		if p.Status == nil {
			return fmt.Errorf("notification email: missing status details: %w", asynq.SkipRetry)
		}
		return sender.SendBookingStatusEmail(ctx, p.To, *p.Status)
	case EmailCustomRequestReceived:
		if p.Request == nil {
			return fmt.Errorf("notification email: missing request details: %w", asynq.SkipRetry)
		}
		return sender.SendCustomRequestReceivedEmail(ctx, p.To, *p.Request)
	default:
		return fmt.Errorf("notification email: unknown kind %q: %w", p.Kind, asynq.SkipRetry)
	}
}
