package transport

import "time"

// CreateBookingRequest is the booking form. The price is always computed
// from the package, so the request has no total.
type CreateBookingRequest struct {
	PackageID       string  `json:"packageId" validate:"required"`
	StartDate       string  `json:"startDate" validate:"required"`
	Travelers       int     `json:"travelers" validate:"required,min=1"`
	ContactEmail    string  `json:"contactEmail" validate:"required,email"`
	ContactPhone    string  `json:"contactPhone" validate:"required,min=10,max=32"`
	SpecialRequests *string `json:"specialRequests,omitempty" validate:"omitempty,max=2000"`
}

// UpdateBookingRequest is the admin patch. Travelers, price and dates are
// not editable.
type UpdateBookingRequest struct {
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	PaymentStatus *string `json:"paymentStatus,omitempty" validate:"omitempty,oneof=unpaid under_review paid rejected"`
	PaymentID     *string `json:"paymentId,omitempty" validate:"omitempty,max=200"`
	InvoiceID     *string `json:"invoiceId,omitempty" validate:"omitempty,max=100"`
}

type PackageSummary struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Destination string  `json:"destination"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookingResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	PackageID       string          `json:"packageId"`
	Package         *PackageSummary `json:"package,omitempty"`
	User            *UserSummary    `json:"user,omitempty"`
	StartDate       time.Time       `json:"startDate"`
	Travelers       int             `json:"travelers"`
	TotalPrice      float64         `json:"totalPrice"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"paymentStatus"`
	PaymentID       *string         `json:"paymentId,omitempty"`
	SpecialRequests *string         `json:"specialRequests,omitempty"`
	ContactEmail    string          `json:"contactEmail"`
	ContactPhone    string          `json:"contactPhone"`
	InvoiceID       *string         `json:"invoiceId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type CreateBookingResponse struct {
	Message    string  `json:"message"`
	ID         string  `json:"id"`
	TotalPrice float64 `json:"totalPrice"`
}

type InvoiceLine struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

type InvoiceResponse struct {
	InvoiceNumber string        `json:"invoiceNumber"`
	IssuedAt      time.Time     `json:"issuedAt"`
	BookingID     string        `json:"bookingId"`
	BillTo        BillTo        `json:"billTo"`
	TravelDate    time.Time     `json:"travelDate"`
	Lines         []InvoiceLine `json:"lines"`
	Total         float64       `json:"total"`
	PaymentStatus string        `json:"paymentStatus"`
	QRCode        string        `json:"qrCode,omitempty"`
}

type BillTo struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type SummaryResponse struct {
	TotalBookings  int               `json:"totalBookings"`
	ActiveBookings int               `json:"activeBookings"`
	TotalSpent     float64           `json:"totalSpent"`
	Recent         []BookingResponse `json:"recent"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
