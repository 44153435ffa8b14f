package service

import (
	"context"
	"fmt"

	"travelnest_backend/internal/admin/ports"
	"travelnest_backend/internal/admin/transport"
	"travelnest_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

const recentBookings = 5

type Service struct {
	bookings ports.BookingStats
	users    ports.UserCounter
	packages ports.PackageCounter
	log      *logger.Logger
}

func New(bookings ports.BookingStats, users ports.UserCounter, packages ports.PackageCounter, log *logger.Logger) *Service {
	return &Service{bookings: bookings, users: users, packages: packages, log: log}
}

// Stats gathers the dashboard figures concurrently. Any failing query fails
// the whole request.
func (s *Service) Stats(ctx context.Context) (transport.StatsResponse, error) {
	var (
		out    transport.StatsResponse
		recent []ports.RecentBooking
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Revenue, err = s.bookings.Revenue(gctx)
		return wrap("revenue", err)
	})
	g.Go(func() (err error) {
		out.TotalBookings, err = s.bookings.CountBookings(gctx)
		return wrap("count bookings", err)
	})
	g.Go(func() (err error) {
		out.TotalUsers, err = s.users.CountUsers(gctx)
		return wrap("count users", err)
	})
	g.Go(func() (err error) {
		out.TotalPackages, err = s.packages.CountPackages(gctx)
		return wrap("count packages", err)
	})
	g.Go(func() (err error) {
		recent, err = s.bookings.RecentBookings(gctx, recentBookings)
		return wrap("recent bookings", err)
	})

	if err := g.Wait(); err != nil {
		s.log.Error("admin stats failed", "error", err)
		return transport.StatsResponse{}, err
	}

	out.RecentBookings = make([]transport.RecentBooking, 0, len(recent))
	for _, b := range recent {
		out.RecentBookings = append(out.RecentBookings, transport.RecentBooking(b))
	}
	return out, nil
}

func wrap(step string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("admin stats: %s: %w", step, err)
}
