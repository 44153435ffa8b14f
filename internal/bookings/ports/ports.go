// Package ports defines what the bookings domain needs from other domains.
// Implementations live in internal/adapters.
package ports

import "context"

// PackageSnapshot is the part of a catalog package a booking depends on.
type PackageSnapshot struct {
	ID          string
	Title       string
	Slug        string
	Destination string
	Image       string
	Price       float64
	Duration    int
	MaxPeople   int
}

// PackageReader resolves catalog packages.
type PackageReader interface {
	// GetPackage returns NotFound "Package not found" for unknown IDs.
	GetPackage(ctx context.Context, id string) (PackageSnapshot, error)
	// GetPackages returns snapshots keyed by ID. Unknown IDs are absent.
	GetPackages(ctx context.Context, ids []string) (map[string]PackageSnapshot, error)
}
