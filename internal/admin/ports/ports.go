// Package ports defines what the admin dashboard reads from other domains.
// Implementations live in internal/adapters.
package ports

import (
	"context"
	"time"
)

// RecentBooking is one row of the dashboard's latest-bookings table.
type RecentBooking struct {
	ID            string
	PackageTitle  string
	UserName      string
	UserEmail     string
	StartDate     time.Time
	Travelers     int
	TotalPrice    float64
	Status        string
	PaymentStatus string
	CreatedAt     time.Time
}

// BookingStats exposes booking aggregates.
type BookingStats interface {
	Revenue(ctx context.Context) (float64, error)
	CountBookings(ctx context.Context) (int64, error)
	RecentBookings(ctx context.Context, limit int64) ([]RecentBooking, error)
}

// UserCounter counts registered users.
type UserCounter interface {
	CountUsers(ctx context.Context) (int64, error)
}

// PackageCounter counts catalog packages.
type PackageCounter interface {
	CountPackages(ctx context.Context) (int64, error)
}
