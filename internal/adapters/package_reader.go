package adapters

import (
	"context"
	"fmt"

	"travelnest_backend/internal/bookings/ports"
	catrepo "travelnest_backend/internal/catalog/repository"
)

// CatalogPackageReader adapts the catalog repository for the bookings domain.
type CatalogPackageReader struct {
	repo catrepo.Repository
}

// NewCatalogPackageReader creates a new package reader adapter.
func NewCatalogPackageReader(repo catrepo.Repository) *CatalogPackageReader {
	return &CatalogPackageReader{repo: repo}
}

// GetPackage returns the priced snapshot a booking is made against.
// Not-found errors from the catalog pass through unchanged.
func (r *CatalogPackageReader) GetPackage(ctx context.Context, id string) (ports.PackageSnapshot, error) {
	pkg, err := r.repo.GetPackageByID(ctx, id)
	if err != nil {
		return ports.PackageSnapshot{}, err
	}
	return toSnapshot(pkg), nil
}

// GetPackages returns snapshots keyed by package ID. Unknown IDs are omitted.
func (r *CatalogPackageReader) GetPackages(ctx context.Context, ids []string) (map[string]ports.PackageSnapshot, error) {
	result := make(map[string]ports.PackageSnapshot, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	packages, err := r.repo.GetPackagesByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("package reader: get packages: %w", err)
	}
	for _, p := range packages {
		result[p.ID.Hex()] = toSnapshot(p)
	}
	return result, nil
}

func toSnapshot(p catrepo.Package) ports.PackageSnapshot {
	return ports.PackageSnapshot{
		ID:          p.ID.Hex(),
		Title:       p.Title,
		Slug:        p.Slug,
		Destination: p.Destination,
		Image:       p.Image,
		Price:       p.Price,
		Duration:    p.Duration,
		MaxPeople:   p.MaxPeople,
	}
}

var _ ports.PackageReader = (*CatalogPackageReader)(nil)
