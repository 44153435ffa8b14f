package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Payment statuses.
const (
	PaymentUnpaid      = "unpaid"
	PaymentUnderReview = "under_review"
	PaymentPaid        = "paid"
	PaymentRejected    = "rejected"
)

// Booking is a document in the bookings collection.
type Booking struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	User            primitive.ObjectID `bson:"user"`
	Package         primitive.ObjectID `bson:"package"`
	StartDate       time.Time          `bson:"startDate"`
	Travelers       int                `bson:"travelers"`
	TotalPrice      float64            `bson:"totalPrice"`
	Status          string             `bson:"status"`
	PaymentStatus   string             `bson:"paymentStatus"`
	PaymentID       *string            `bson:"paymentId,omitempty"`
	SpecialRequests *string            `bson:"specialRequests,omitempty"`
	ContactEmail    string             `bson:"contactEmail"`
	ContactPhone    string             `bson:"contactPhone"`
	InvoiceID       *string            `bson:"invoiceId,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

// CreateBookingParams contains data for creating a booking. Status and
// payment status always start as pending and unpaid.
type CreateBookingParams struct {
	UserID          string
	PackageID       string
	StartDate       time.Time
	Travelers       int
	TotalPrice      float64
	SpecialRequests *string
	ContactEmail    string
	ContactPhone    string
}

// UpdateBookingParams carries the administrative fields an update may set.
type UpdateBookingParams struct {
	ID            string
	Status        *string
	PaymentStatus *string
	PaymentID     *string
	InvoiceID     *string
}

// BookingRepository defines booking storage operations.
type BookingRepository interface {
	Create(ctx context.Context, params CreateBookingParams) (Booking, error)
	GetByID(ctx context.Context, id string) (Booking, error)
	ListByUser(ctx context.Context, userID string) ([]Booking, error)
	// ListAll returns bookings newest first; limit <= 0 means no limit.
	ListAll(ctx context.Context, limit int64) ([]Booking, error)
	Update(ctx context.Context, params UpdateBookingParams) (Booking, error)
	Count(ctx context.Context) (int64, error)
	// PaidRevenue sums totalPrice over bookings whose payment status is paid.
	PaidRevenue(ctx context.Context) (float64, error)
}
