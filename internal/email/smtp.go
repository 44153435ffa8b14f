package email

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"travelnest_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender delivers the embedded HTML templates through an SMTP relay via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a sender from the e-mail configuration.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
	}
}

// NewSender returns the SMTP sender when e-mail is enabled, otherwise a NoopSender.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(cfg)
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	opts := []gomail.Option{
		gomail.WithPort(s.port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15 * time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp", addr)
		}),
	}
	if s.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.username),
			gomail.WithPassword(s.password),
		)
	}

	client, err := gomail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (s *SMTPSender) SendWelcomeEmail(ctx context.Context, toEmail, name, loginURL string) error {
	content, err := renderWelcome(name, loginURL)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectWelcome, content)
}

func (s *SMTPSender) SendBookingReceivedEmail(ctx context.Context, toEmail string, details BookingDetails) error {
	content, err := renderBookingReceived(details)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectBookingReceivedFmt, details.PackageTitle), content)
}

func (s *SMTPSender) SendBookingStatusEmail(ctx context.Context, toEmail string, details BookingStatusDetails) error {
	content, err := renderBookingStatus(details)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectBookingStatusFmt, details.PackageTitle), content)
}

func (s *SMTPSender) SendCustomRequestReceivedEmail(ctx context.Context, toEmail string, details CustomRequestDetails) error {
	content, err := renderCustomRequest(details)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectCustomRequestReceived, content)
}

func renderWelcome(name, loginURL string) (string, error) {
	return renderEmailTemplate("welcome.html", welcomeEmailData{
		baseEmailData: baseEmailData{
			Title:    subjectWelcome,
			Heading:  "Welcome aboard",
			CTALabel: "Start exploring",
			CTAURL:   loginURL,
		},
		Name: name,
	})
}

func renderBookingReceived(d BookingDetails) (string, error) {
	return renderEmailTemplate("booking_received.html", bookingReceivedEmailData{
		baseEmailData: baseEmailData{
			Title:      "Booking received",
			Heading:    "Your booking is in",
			Subheading: "We will confirm it shortly.",
			CTALabel:   "View booking",
			CTAURL:     d.DashboardURL,
		},
		TravelerName:   d.TravelerName,
		PackageTitle:   d.PackageTitle,
		StartDate:      d.StartDate.Format("January 2, 2006"),
		Travelers:      d.Travelers,
		TotalFormatted: formatCurrencyUSD(d.TotalPrice),
		Reference:      d.BookingID,
	})
}

func renderBookingStatus(d BookingStatusDetails) (string, error) {
	return renderEmailTemplate("booking_status.html", bookingStatusEmailData{
		baseEmailData: baseEmailData{
			Title:    "Booking updated",
			Heading:  "Your booking was updated",
			CTALabel: "View booking",
			CTAURL:   d.DashboardURL,
		},
		PackageTitle:  d.PackageTitle,
		Status:        humanize(d.Status),
		PaymentStatus: humanize(d.PaymentStatus),
		Reference:     d.BookingID,
	})
}

func renderCustomRequest(d CustomRequestDetails) (string, error) {
	return renderEmailTemplate("custom_request_received.html", customRequestEmailData{
		baseEmailData: baseEmailData{
			Title:      subjectCustomRequestReceived,
			Heading:    "Your trip request is with our planners",
			Subheading: "Expect a tailored proposal soon.",
		},
		Destinations: strings.Join(d.Destinations, ", "),
		Days:         d.Days,
		Travelers:    d.Travelers,
	})
}
