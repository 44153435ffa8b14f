// Package events holds the TravelNest domain events. The bus itself lives in
// platform/events; the aliases below let modules import a single package.
package events

import (
	"time"

	"travelnest_backend/platform/events"
	"travelnest_backend/platform/logger"
)

type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus returns the process-local bus used by cmd/api.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Auth Domain Events
// =============================================================================

// UserRegistered is published after a credentials or Google account is created.
type UserRegistered struct {
	BaseEvent
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Provider string `json:"provider"`
}

func (e UserRegistered) EventName() string { return "auth.user.registered" }

// =============================================================================
// Booking Domain Events
// =============================================================================

// BookingCreated is published when a traveler books a package.
type BookingCreated struct {
	BaseEvent
	BookingID    string    `json:"bookingId"`
	UserID       string    `json:"userId"`
	PackageTitle string    `json:"packageTitle"`
	StartDate    time.Time `json:"startDate"`
	Travelers    int       `json:"travelers"`
	TotalPrice   float64   `json:"totalPrice"`
	ContactEmail string    `json:"contactEmail"`
}

func (e BookingCreated) EventName() string { return "bookings.created" }

// BookingStatusChanged is published when an admin changes status or payment status.
type BookingStatusChanged struct {
	BaseEvent
	BookingID        string `json:"bookingId"`
	UserID           string `json:"userId"`
	ContactEmail     string `json:"contactEmail"`
	PackageTitle     string `json:"packageTitle"`
	OldStatus        string `json:"oldStatus"`
	NewStatus        string `json:"newStatus"`
	OldPaymentStatus string `json:"oldPaymentStatus"`
	NewPaymentStatus string `json:"newPaymentStatus"`
}

func (e BookingStatusChanged) EventName() string { return "bookings.status_changed" }

// =============================================================================
// Custom Request Domain Events
// =============================================================================

// CustomRequestSubmitted is published when a traveler asks for a tailored trip.
type CustomRequestSubmitted struct {
	BaseEvent
	RequestID    string   `json:"requestId"`
	UserID       string   `json:"userId"`
	Destinations []string `json:"destinations"`
	Days         int      `json:"days"`
	Travelers    int      `json:"travelers"`
	ContactEmail string   `json:"contactEmail"`
}

func (e CustomRequestSubmitted) EventName() string { return "customrequests.submitted" }
