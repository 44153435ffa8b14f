package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"travelnest_backend/internal/admin/ports"
	"travelnest_backend/platform/logger"
)

type stubBookings struct {
	revenue float64
	count   int64
	recent  []ports.RecentBooking
	err     error
	limit   int64
}

func (s *stubBookings) Revenue(ctx context.Context) (float64, error) { return s.revenue, s.err }

func (s *stubBookings) CountBookings(ctx context.Context) (int64, error) { return s.count, nil }

func (s *stubBookings) RecentBookings(ctx context.Context, limit int64) ([]ports.RecentBooking, error) {
	s.limit = limit
	return s.recent, nil
}

type counter int64

func (c counter) CountUsers(ctx context.Context) (int64, error)    { return int64(c), nil }
func (c counter) CountPackages(ctx context.Context) (int64, error) { return int64(c), nil }

func quietLogger() *logger.Logger {
	return logger.New("development", logger.WithOutput(io.Discard))
}

func TestStatsCollectsEveryFigure(t *testing.T) {
	bookings := &stubBookings{
		revenue: 9800,
		count:   12,
		recent:  []ports.RecentBooking{{ID: "b1", PackageTitle: "Bali Paradise", UserName: "Alice", TotalPrice: 2500}},
	}
	svc := New(bookings, counter(7), counter(4), quietLogger())

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Revenue != 9800 || stats.TotalBookings != 12 || stats.TotalUsers != 7 || stats.TotalPackages != 4 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if bookings.limit != 5 {
		t.Fatalf("expected 5 recent bookings requested, got %d", bookings.limit)
	}
	if len(stats.RecentBookings) != 1 || stats.RecentBookings[0].PackageTitle != "Bali Paradise" {
		t.Fatalf("unexpected recent bookings %+v", stats.RecentBookings)
	}
}

func TestStatsFailsWhenAnyQueryFails(t *testing.T) {
	boom := errors.New("socket closed")
	svc := New(&stubBookings{err: boom}, counter(1), counter(1), quietLogger())

	if _, err := svc.Stats(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped failure, got %v", err)
	}
}

func TestStatsEmptyRecentIsNotNil(t *testing.T) {
	svc := New(&stubBookings{}, counter(0), counter(0), quietLogger())
	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.RecentBookings == nil {
		t.Fatal("recent bookings must encode as an empty list")
	}
}
