package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"travelnest_backend/internal/auth"
	"travelnest_backend/internal/bookings/ports"
	"travelnest_backend/internal/bookings/repository"
	"travelnest_backend/internal/bookings/transport"
	"travelnest_backend/internal/events"
	"travelnest_backend/platform/apperr"
	"travelnest_backend/platform/logger"
	"travelnest_backend/platform/phone"
	"travelnest_backend/platform/sanitize"
)

const (
	msgStartDateInvalid = "Start date must be a valid date"
	msgStartDatePast    = "Start date must be in the future"
	msgNotYourBooking   = "Unauthorized"
	recentLimit         = 5
)

// Service implements the booking workflow.
type Service struct {
	repo     repository.BookingRepository
	packages ports.PackageReader
	users    auth.Directory
	phones   phone.Normalizer
	eventBus events.Bus
	log      *logger.Logger
	now      func() time.Time
}

// New creates the booking service.
func New(repo repository.BookingRepository, packages ports.PackageReader, users auth.Directory, phones phone.Normalizer, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		packages: packages,
		users:    users,
		phones:   phones,
		eventBus: eventBus,
		log:      log,
		now:      time.Now,
	}
}

// Create books a package for userID. The total is always price × travelers
// from the stored package.
func (s *Service) Create(ctx context.Context, userID string, req transport.CreateBookingRequest) (transport.CreateBookingResponse, error) {
	start, err := s.parseStartDate(req.StartDate)
	if err != nil {
		return transport.CreateBookingResponse{}, err
	}

	pkg, err := s.packages.GetPackage(ctx, req.PackageID)
	if err != nil {
		return transport.CreateBookingResponse{}, err
	}
	if req.Travelers > pkg.MaxPeople {
		return transport.CreateBookingResponse{}, apperr.Validation(
			fmt.Sprintf("Max travelers allowed for this package is %d", pkg.MaxPeople),
		).WithCode(apperr.CodeCapacityExceeded)
	}

	total := TotalPrice(pkg.Price, req.Travelers)
	booking, err := s.repo.Create(ctx, repository.CreateBookingParams{
		UserID:          userID,
		PackageID:       pkg.ID,
		StartDate:       start,
		Travelers:       req.Travelers,
		TotalPrice:      total,
		SpecialRequests: optionalText(req.SpecialRequests),
		ContactEmail:    strings.TrimSpace(req.ContactEmail),
		ContactPhone:    s.phones.Normalize(req.ContactPhone),
	})
	if err != nil {
		return transport.CreateBookingResponse{}, err
	}

	s.log.BookingEvent("created", booking.ID.Hex(), userID,
		slog.String("package_id", pkg.ID),
		slog.Int("travelers", booking.Travelers),
		slog.Float64("total_price", total),
	)

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.BookingCreated{
			BaseEvent:    events.NewBaseEvent(),
			BookingID:    booking.ID.Hex(),
			UserID:       userID,
			PackageTitle: pkg.Title,
			StartDate:    booking.StartDate,
			Travelers:    booking.Travelers,
			TotalPrice:   total,
			ContactEmail: booking.ContactEmail,
		})
	}

	return transport.CreateBookingResponse{Message: "Booking created", ID: booking.ID.Hex(), TotalPrice: total}, nil
}

// TotalPrice is the server-side booking total.
func TotalPrice(price float64, travelers int) float64 {
	return price * float64(travelers)
}

// AdminUpdate changes status and payment fields only.
func (s *Service) AdminUpdate(ctx context.Context, id string, req transport.UpdateBookingRequest) (transport.BookingResponse, error) {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.BookingResponse{}, err
	}

	after, err := s.repo.Update(ctx, repository.UpdateBookingParams{
		ID:            id,
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		PaymentID:     trimPtr(req.PaymentID),
		InvoiceID:     trimPtr(req.InvoiceID),
	})
	if err != nil {
		return transport.BookingResponse{}, err
	}

	s.log.BookingEvent("updated", id, after.User.Hex(),
		slog.String("status", after.Status),
		slog.String("payment_status", after.PaymentStatus),
	)

	if s.eventBus != nil && (before.Status != after.Status || before.PaymentStatus != after.PaymentStatus) {
		title := ""
		if pkg, err := s.packages.GetPackage(ctx, after.Package.Hex()); err == nil {
			title = pkg.Title
		}
		s.eventBus.Publish(ctx, events.BookingStatusChanged{
			BaseEvent:        events.NewBaseEvent(),
			BookingID:        id,
			UserID:           after.User.Hex(),
			ContactEmail:     after.ContactEmail,
			PackageTitle:     title,
			OldStatus:        before.Status,
			NewStatus:        after.Status,
			OldPaymentStatus: before.PaymentStatus,
			NewPaymentStatus: after.PaymentStatus,
		})
	}

	return toBookingResponse(after), nil
}

// ListMine returns the caller's bookings with their packages.
func (s *Service) ListMine(ctx context.Context, userID string) ([]transport.BookingResponse, error) {
	bookings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, bookings, false)
}

// Get returns one booking to its owner or an admin.
func (s *Service) Get(ctx context.Context, userID string, isAdmin bool, id string) (transport.BookingResponse, error) {
	booking, err := s.visible(ctx, userID, isAdmin, id)
	if err != nil {
		return transport.BookingResponse{}, err
	}
	out, err := s.populate(ctx, []repository.Booking{booking}, isAdmin)
	if err != nil {
		return transport.BookingResponse{}, err
	}
	return out[0], nil
}

// Invoice renders the invoice for a booking. The number falls back to one
// derived from the booking ID when no invoice ID was recorded. Amounts come
// from the stored total only; the current package supplies the description.
func (s *Service) Invoice(ctx context.Context, userID string, isAdmin bool, id string) (transport.InvoiceResponse, error) {
	booking, err := s.visible(ctx, userID, isAdmin, id)
	if err != nil {
		return transport.InvoiceResponse{}, err
	}

	description := "Travel package"
	if pkg, err := s.packages.GetPackage(ctx, booking.Package.Hex()); err == nil {
		description = fmt.Sprintf("%s (%d days)", pkg.Title, pkg.Duration)
	}
	unitPrice := booking.TotalPrice
	if booking.Travelers > 0 {
		unitPrice = booking.TotalPrice / float64(booking.Travelers)
	}

	billName := ""
	if users, err := s.users.LookupUsers(ctx, []string{booking.User.Hex()}); err == nil {
		billName = users[booking.User.Hex()].Name
	}

	number := InvoiceNumber(booking)
	return transport.InvoiceResponse{
		InvoiceNumber: number,
		IssuedAt:      s.now().UTC(),
		BookingID:     booking.ID.Hex(),
		BillTo: transport.BillTo{
			Name:  billName,
			Email: booking.ContactEmail,
			Phone: booking.ContactPhone,
		},
		TravelDate: booking.StartDate,
		Lines: []transport.InvoiceLine{{
			Description: description,
			Quantity:    booking.Travelers,
			UnitPrice:   unitPrice,
			Amount:      booking.TotalPrice,
		}},
		Total:         booking.TotalPrice,
		PaymentStatus: booking.PaymentStatus,
		QRCode:        invoiceQRCode(number, booking.ID.Hex()),
	}, nil
}

// InvoiceNumber returns the recorded invoice ID, or INV- and the last six
// characters of the booking ID.
func InvoiceNumber(b repository.Booking) string {
	if b.InvoiceID != nil && strings.TrimSpace(*b.InvoiceID) != "" {
		return *b.InvoiceID
	}
	hex := b.ID.Hex()
	return "INV-" + strings.ToUpper(hex[len(hex)-6:])
}

// Summary builds the traveler dashboard: spend over paid bookings and the
// number of pending or confirmed trips.
func (s *Service) Summary(ctx context.Context, userID string) (transport.SummaryResponse, error) {
	bookings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return transport.SummaryResponse{}, err
	}

	summary := transport.SummaryResponse{TotalBookings: len(bookings)}
	for _, b := range bookings {
		if b.PaymentStatus == repository.PaymentPaid {
			summary.TotalSpent += b.TotalPrice
		}
		if b.Status == repository.StatusPending || b.Status == repository.StatusConfirmed {
			summary.ActiveBookings++
		}
	}

	recent := bookings
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	summary.Recent, err = s.populate(ctx, recent, false)
	if err != nil {
		return transport.SummaryResponse{}, err
	}
	return summary, nil
}

// ListAll returns every booking for the admin panel, with package titles
// and user names.
func (s *Service) ListAll(ctx context.Context) ([]transport.BookingResponse, error) {
	bookings, err := s.repo.ListAll(ctx, 0)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, bookings, true)
}

// Recent returns the newest bookings, populated, for the admin dashboard.
func (s *Service) Recent(ctx context.Context, limit int64) ([]transport.BookingResponse, error) {
	bookings, err := s.repo.ListAll(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, bookings, true)
}

// Count returns the number of bookings.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Revenue sums paid bookings.
func (s *Service) Revenue(ctx context.Context) (float64, error) {
	return s.repo.PaidRevenue(ctx)
}

func (s *Service) visible(ctx context.Context, userID string, isAdmin bool, id string) (repository.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.Booking{}, err
	}
	if !isAdmin && booking.User.Hex() != userID {
		return repository.Booking{}, apperr.Forbidden(msgNotYourBooking)
	}
	return booking, nil
}

func (s *Service) populate(ctx context.Context, bookings []repository.Booking, withUsers bool) ([]transport.BookingResponse, error) {
	out := make([]transport.BookingResponse, 0, len(bookings))
	if len(bookings) == 0 {
		return out, nil
	}

	packageIDs := make([]string, 0, len(bookings))
	userIDs := make([]string, 0, len(bookings))
	for _, b := range bookings {
		packageIDs = append(packageIDs, b.Package.Hex())
		userIDs = append(userIDs, b.User.Hex())
	}

	packages, err := s.packages.GetPackages(ctx, packageIDs)
	if err != nil {
		return nil, err
	}
	var users map[string]auth.UserSummary
	if withUsers {
		users, err = s.users.LookupUsers(ctx, userIDs)
		if err != nil {
			return nil, err
		}
	}

	for _, b := range bookings {
		resp := toBookingResponse(b)
		if pkg, ok := packages[b.Package.Hex()]; ok {
			resp.Package = &transport.PackageSummary{
				ID:          pkg.ID,
				Title:       pkg.Title,
				Slug:        pkg.Slug,
				Destination: pkg.Destination,
				Image:       pkg.Image,
				Price:       pkg.Price,
				Duration:    pkg.Duration,
			}
		}
		if u, ok := users[b.User.Hex()]; ok {
			resp.User = &transport.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *Service) parseStartDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	start, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		start, err = time.Parse(time.DateOnly, raw)
	}
	if err != nil {
		return time.Time{}, apperr.Validation(msgStartDateInvalid).
			WithDetails(map[string][]string{"startDate": {msgStartDateInvalid}})
	}
	if !start.After(s.now()) {
		return time.Time{}, apperr.Validation(msgStartDatePast).
			WithDetails(map[string][]string{"startDate": {msgStartDatePast}})
	}
	return start, nil
}

func optionalText(s *string) *string {
	cleaned := sanitize.TextPtr(s)
	if cleaned == nil || *cleaned == "" {
		return nil
	}
	return cleaned
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

func toBookingResponse(b repository.Booking) transport.BookingResponse {
	return transport.BookingResponse{
		ID:              b.ID.Hex(),
		UserID:          b.User.Hex(),
		PackageID:       b.Package.Hex(),
		StartDate:       b.StartDate,
		Travelers:       b.Travelers,
		TotalPrice:      b.TotalPrice,
		Status:          b.Status,
		PaymentStatus:   b.PaymentStatus,
		PaymentID:       b.PaymentID,
		SpecialRequests: b.SpecialRequests,
		ContactEmail:    b.ContactEmail,
		ContactPhone:    b.ContactPhone,
		InvoiceID:       b.InvoiceID,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
