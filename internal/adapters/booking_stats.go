package adapters

import (
	"context"

	"travelnest_backend/internal/admin/ports"
	bookingsvc "travelnest_backend/internal/bookings/service"
)

// BookingStatsReader adapts the booking service for the admin dashboard.
type BookingStatsReader struct {
	svc *bookingsvc.Service
}

func NewBookingStatsReader(svc *bookingsvc.Service) *BookingStatsReader {
	return &BookingStatsReader{svc: svc}
}

func (r *BookingStatsReader) Revenue(ctx context.Context) (float64, error) {
	return r.svc.Revenue(ctx)
}

func (r *BookingStatsReader) CountBookings(ctx context.Context) (int64, error) {
	return r.svc.Count(ctx)
}

// RecentBookings returns the newest bookings with package title and user
// filled in where they still exist.
func (r *BookingStatsReader) RecentBookings(ctx context.Context, limit int64) ([]ports.RecentBooking, error) {
	bookings, err := r.svc.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]ports.RecentBooking, 0, len(bookings))
	for _, b := range bookings {
		row := ports.RecentBooking{
			ID:            b.ID,
			StartDate:     b.StartDate,
			Travelers:     b.Travelers,
			TotalPrice:    b.TotalPrice,
			Status:        b.Status,
			PaymentStatus: b.PaymentStatus,
			CreatedAt:     b.CreatedAt,
		}
		if b.Package != nil {
			row.PackageTitle = b.Package.Title
		}
		if b.User != nil {
			row.UserName = b.User.Name
			row.UserEmail = b.User.Email
		}
		out = append(out, row)
	}
	return out, nil
}

var _ ports.BookingStats = (*BookingStatsReader)(nil)
