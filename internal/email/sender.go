package email

import (
	"context"
	"time"
)

// BookingDetails fills the booking confirmation e-mail.
type BookingDetails struct {
	BookingID    string
	TravelerName string
	PackageTitle string
	StartDate    time.Time
	Travelers    int
	TotalPrice   float64
	DashboardURL string
}

// BookingStatusDetails fills the status change e-mail.
type BookingStatusDetails struct {
	BookingID     string
	PackageTitle  string
	Status        string
	PaymentStatus string
	DashboardURL  string
}

// CustomRequestDetails fills the custom request acknowledgement.
type CustomRequestDetails struct {
	RequestID    string
	Destinations []string
	Days         int
	Travelers    int
}

type Sender interface {
	SendWelcomeEmail(ctx context.Context, toEmail, name, loginURL string) error
	SendBookingReceivedEmail(ctx context.Context, toEmail string, details BookingDetails) error
	SendBookingStatusEmail(ctx context.Context, toEmail string, details BookingStatusDetails) error
	SendCustomRequestReceivedEmail(ctx context.Context, toEmail string, details CustomRequestDetails) error
}

// NoopSender drops every message. Used when e-mail is disabled.
type NoopSender struct{}

func (NoopSender) SendWelcomeEmail(ctx context.Context, toEmail, name, loginURL string) error {
	return nil
}

func (NoopSender) SendBookingReceivedEmail(ctx context.Context, toEmail string, details BookingDetails) error {
	return nil
}

func (NoopSender) SendBookingStatusEmail(ctx context.Context, toEmail string, details BookingStatusDetails) error {
	return nil
}

func (NoopSender) SendCustomRequestReceivedEmail(ctx context.Context, toEmail string, details CustomRequestDetails) error {
	return nil
}

var (
	_ Sender = NoopSender{}
	_ Sender = (*SMTPSender)(nil)
)
