package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"travelnest_backend/internal/auth"
	"travelnest_backend/internal/bookings/ports"
	"travelnest_backend/internal/bookings/repository"
	"travelnest_backend/internal/bookings/transport"
	"travelnest_backend/internal/events"
	"travelnest_backend/platform/apperr"
	"travelnest_backend/platform/logger"
	"travelnest_backend/platform/phone"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeBookings struct {
	mu    sync.Mutex
	items []repository.Booking
}

func (f *fakeBookings) Create(ctx context.Context, p repository.CreateBookingParams) (repository.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, _ := primitive.ObjectIDFromHex(p.UserID)
	pkg, _ := primitive.ObjectIDFromHex(p.PackageID)
	b := repository.Booking{
		ID: primitive.NewObjectID(), User: user, Package: pkg, StartDate: p.StartDate,
		Travelers: p.Travelers, TotalPrice: p.TotalPrice, Status: repository.StatusPending,
		PaymentStatus: repository.PaymentUnpaid, SpecialRequests: p.SpecialRequests,
		ContactEmail: p.ContactEmail, ContactPhone: p.ContactPhone, CreatedAt: time.Now(),
	}
	f.items = append([]repository.Booking{b}, f.items...)
	return b, nil
}

func (f *fakeBookings) GetByID(ctx context.Context, id string) (repository.Booking, error) {
	for _, b := range f.items {
		if b.ID.Hex() == id {
			return b, nil
		}
	}
	return repository.Booking{}, apperr.NotFound("Booking not found")
}

func (f *fakeBookings) ListByUser(ctx context.Context, userID string) ([]repository.Booking, error) {
	out := []repository.Booking{}
	for _, b := range f.items {
		if b.User.Hex() == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) ListAll(ctx context.Context, limit int64) ([]repository.Booking, error) {
	if limit > 0 && int(limit) < len(f.items) {
		return f.items[:limit], nil
	}
	return f.items, nil
}

func (f *fakeBookings) Update(ctx context.Context, p repository.UpdateBookingParams) (repository.Booking, error) {
	for i, b := range f.items {
		if b.ID.Hex() != p.ID {
			continue
		}
		if p.Status != nil {
			b.Status = *p.Status
		}
		if p.PaymentStatus != nil {
			b.PaymentStatus = *p.PaymentStatus
		}
		if p.InvoiceID != nil {
			b.InvoiceID = p.InvoiceID
		}
		f.items[i] = b
		return b, nil
	}
	return repository.Booking{}, apperr.NotFound("Booking not found")
}

func (f *fakeBookings) Count(ctx context.Context) (int64, error) { return int64(len(f.items)), nil }

func (f *fakeBookings) PaidRevenue(ctx context.Context) (float64, error) {
	total := 0.0
	for _, b := range f.items {
		if b.PaymentStatus == repository.PaymentPaid {
			total += b.TotalPrice
		}
	}
	return total, nil
}

type fakePackages map[string]ports.PackageSnapshot

func (f fakePackages) GetPackage(ctx context.Context, id string) (ports.PackageSnapshot, error) {
	if p, ok := f[id]; ok {
		return p, nil
	}
	return ports.PackageSnapshot{}, apperr.NotFound("Package not found")
}

func (f fakePackages) GetPackages(ctx context.Context, ids []string) (map[string]ports.PackageSnapshot, error) {
	out := map[string]ports.PackageSnapshot{}
	for _, id := range ids {
		if p, ok := f[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakeDirectory map[string]auth.UserSummary

func (f fakeDirectory) LookupUsers(ctx context.Context, ids []string) (map[string]auth.UserSummary, error) {
	out := map[string]auth.UserSummary{}
	for _, id := range ids {
		if u, ok := f[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (f fakeDirectory) CountUsers(ctx context.Context) (int64, error) { return int64(len(f)), nil }

type fixture struct {
	svc      *Service
	repo     *fakeBookings
	pkgs     fakePackages
	bus      *events.InMemoryBus
	pkgID    string
	userID   string
	captured []events.Event
	mu       sync.Mutex
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.New("development", logger.WithOutput(io.Discard))
	f := &fixture{
		repo:   &fakeBookings{},
		bus:    events.NewInMemoryBus(log),
		pkgID:  primitive.NewObjectID().Hex(),
		userID: primitive.NewObjectID().Hex(),
	}
	f.pkgs = fakePackages{f.pkgID: {ID: f.pkgID, Title: "Bali Paradise", Price: 1250, Duration: 7, MaxPeople: 2}}
	users := fakeDirectory{f.userID: {ID: f.userID, Name: "Alice", Email: "alice@example.com", Role: "traveler"}}
	f.svc = New(f.repo, f.pkgs, users, phone.NewNormalizer("IN"), f.bus, log)

	record := events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.captured = append(f.captured, e)
		return nil
	})
	f.bus.Subscribe(events.BookingCreated{}.EventName(), record)
	f.bus.Subscribe(events.BookingStatusChanged{}.EventName(), record)
	return f
}

func (f *fixture) request(travelers int, start time.Time) transport.CreateBookingRequest {
	return transport.CreateBookingRequest{
		PackageID:    f.pkgID,
		StartDate:    start.Format(time.RFC3339),
		Travelers:    travelers,
		ContactEmail: "alice@example.com",
		ContactPhone: "+1 650-253-0000",
	}
}

func TestCreateComputesTotalFromPackage(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.Create(context.Background(), f.userID, f.request(2, time.Now().Add(72*time.Hour)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.TotalPrice != 2500 {
		t.Fatalf("expected 2500, got %v", res.TotalPrice)
	}

	stored := f.repo.items[0]
	if stored.TotalPrice != 2500 || stored.Status != repository.StatusPending || stored.PaymentStatus != repository.PaymentUnpaid {
		t.Fatalf("unexpected stored booking %+v", stored)
	}
	if stored.ContactPhone != "+16502530000" {
		t.Fatalf("expected E.164 phone, got %q", stored.ContactPhone)
	}

	f.bus.Wait()
	if len(f.captured) != 1 {
		t.Fatalf("expected one BookingCreated event, got %d", len(f.captured))
	}
	created := f.captured[0].(events.BookingCreated)
	if created.PackageTitle != "Bali Paradise" || created.TotalPrice != 2500 {
		t.Fatalf("unexpected event %+v", created)
	}
}

func TestCreateRejectsOverCapacity(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), f.userID, f.request(3, time.Now().Add(72*time.Hour)))
	if !apperr.HasCode(err, apperr.CodeCapacityExceeded) {
		t.Fatalf("expected CapacityExceeded, got %v", err)
	}
	if domainErr, _ := apperr.As(err); domainErr.Message != "Max travelers allowed for this package is 2" {
		t.Fatalf("unexpected message %q", domainErr.Message)
	}
	if len(f.repo.items) != 0 {
		t.Fatal("no booking may be written")
	}
}

func TestCreateRequiresFutureStartDate(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	for _, start := range []string{now.Format(time.RFC3339), "2026-03-10", "2025-12-31", "not-a-date"} {
		req := f.request(1, now)
		req.StartDate = start
		_, err := f.svc.Create(context.Background(), f.userID, req)
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("start %q: expected validation error, got %v", start, err)
		}
	}
	if len(f.repo.items) != 0 {
		t.Fatal("no booking may be written")
	}

	req := f.request(1, now)
	req.StartDate = "2026-03-11"
	if _, err := f.svc.Create(context.Background(), f.userID, req); err != nil {
		t.Fatalf("tomorrow must be accepted: %v", err)
	}
}

func TestCreateUnknownPackage(t *testing.T) {
	f := newFixture(t)
	req := f.request(1, time.Now().Add(time.Hour))
	req.PackageID = primitive.NewObjectID().Hex()
	_, err := f.svc.Create(context.Background(), f.userID, req)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetAndInvoiceAreOwnerOrAdmin(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.Create(context.Background(), f.userID, f.request(2, time.Now().Add(48*time.Hour)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stranger := primitive.NewObjectID().Hex()
	if _, err := f.svc.Get(context.Background(), stranger, false, res.ID); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden for another traveler, got %v", err)
	}

	got, err := f.svc.Get(context.Background(), stranger, true, res.ID)
	if err != nil {
		t.Fatalf("admin get: %v", err)
	}
	if got.Package == nil || got.Package.Title != "Bali Paradise" || got.User == nil || got.User.Name != "Alice" {
		t.Fatalf("expected populated booking, got %+v", got)
	}

	inv, err := f.svc.Invoice(context.Background(), f.userID, false, res.ID)
	if err != nil {
		t.Fatalf("invoice: %v", err)
	}
	wantNumber := "INV-" + strings.ToUpper(res.ID[len(res.ID)-6:])
	if inv.InvoiceNumber != wantNumber || inv.Total != 2500 || inv.BillTo.Name != "Alice" {
		t.Fatalf("unexpected invoice %+v", inv)
	}
	if len(inv.Lines) != 1 || inv.Lines[0].UnitPrice != 1250 || inv.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected lines %+v", inv.Lines)
	}
	if !strings.HasPrefix(inv.QRCode, "data:image/png;base64,") {
		t.Fatalf("expected PNG data URI for the invoice QR code")
	}
}

func TestInvoiceKeepsBookedPriceAfterRepricing(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.Create(context.Background(), f.userID, f.request(2, time.Now().Add(48*time.Hour)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	pkg := f.pkgs[f.pkgID]
	pkg.Price = 2000
	f.pkgs[f.pkgID] = pkg

	inv, err := f.svc.Invoice(context.Background(), f.userID, false, res.ID)
	if err != nil {
		t.Fatalf("invoice: %v", err)
	}
	if len(inv.Lines) != 1 {
		t.Fatalf("expected one line, got %+v", inv.Lines)
	}
	line := inv.Lines[0]
	if line.UnitPrice != 1250 || line.Amount != 2500 || float64(line.Quantity)*line.UnitPrice != line.Amount {
		t.Fatalf("line does not reflect booked price: %+v", line)
	}
	if inv.Total != 2500 || inv.Total != line.Amount {
		t.Fatalf("total %v does not match line amount %v", inv.Total, line.Amount)
	}
}

func TestAdminUpdateChangesStatusOnlyAndPublishes(t *testing.T) {
	f := newFixture(t)
	res, _ := f.svc.Create(context.Background(), f.userID, f.request(2, time.Now().Add(48*time.Hour)))
	f.bus.Wait()

	confirmed, paid := repository.StatusConfirmed, repository.PaymentPaid
	updated, err := f.svc.AdminUpdate(context.Background(), res.ID, transport.UpdateBookingRequest{Status: &confirmed, PaymentStatus: &paid})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != confirmed || updated.PaymentStatus != paid || updated.TotalPrice != 2500 || updated.Travelers != 2 {
		t.Fatalf("unexpected booking %+v", updated)
	}

	f.bus.Wait()
	last := f.captured[len(f.captured)-1].(events.BookingStatusChanged)
	if last.OldStatus != repository.StatusPending || last.NewStatus != confirmed || last.NewPaymentStatus != paid {
		t.Fatalf("unexpected event %+v", last)
	}

	revenue, _ := f.svc.Revenue(context.Background())
	if revenue != 2500 {
		t.Fatalf("expected revenue 2500, got %v", revenue)
	}
}

func TestSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, _ := f.svc.Create(ctx, f.userID, f.request(1, time.Now().Add(24*time.Hour)))
	b, _ := f.svc.Create(ctx, f.userID, f.request(2, time.Now().Add(24*time.Hour)))
	_, _ = f.svc.Create(ctx, primitive.NewObjectID().Hex(), f.request(1, time.Now().Add(24*time.Hour)))

	paid, cancelled := repository.PaymentPaid, repository.StatusCancelled
	_, _ = f.svc.AdminUpdate(ctx, b.ID, transport.UpdateBookingRequest{PaymentStatus: &paid})
	_, _ = f.svc.AdminUpdate(ctx, a.ID, transport.UpdateBookingRequest{Status: &cancelled})

	sum, err := f.svc.Summary(ctx, f.userID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalBookings != 2 || sum.ActiveBookings != 1 || sum.TotalSpent != 2500 || len(sum.Recent) != 2 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}
