package service

import (
	"context"
	"strings"

	"travelnest_backend/internal/catalog/repository"
	"travelnest_backend/internal/catalog/transport"
	"travelnest_backend/platform/apperr"
	"travelnest_backend/platform/logger"
	"travelnest_backend/platform/sanitize"
)

const msgSlugTaken = "Slug already exists"

// Service provides business logic for catalog.
type Service struct {
	repo   repository.Repository
	images ImageStore
	log    *logger.Logger
}

// New creates a new catalog service. images may be nil when object
// storage is not configured.
func New(repo repository.Repository, images ImageStore, log *logger.Logger) *Service {
	return &Service{repo: repo, images: images, log: log}
}

// ListPackages returns packages matching the public filters.
func (s *Service) ListPackages(ctx context.Context, req transport.ListPackagesRequest) ([]transport.PackageResponse, error) {
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return nil, apperr.Validation("minPrice must not exceed maxPrice")
	}

	items, err := s.repo.ListPackages(ctx, repository.ListPackagesParams{
		Destination: strings.TrimSpace(req.Destination),
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		Featured:    req.Featured,
		Limit:       req.Limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]transport.PackageResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPackageResponse(p))
	}
	return out, nil
}

// GetPackageBySlug returns one package for its detail page.
func (s *Service) GetPackageBySlug(ctx context.Context, slug string) (transport.PackageResponse, error) {
	pkg, err := s.repo.GetPackageBySlug(ctx, slug)
	if err != nil {
		return transport.PackageResponse{}, err
	}
	return toPackageResponse(pkg), nil
}

// CreatePackage creates a package after checking its slug is free.
func (s *Service) CreatePackage(ctx context.Context, req transport.CreatePackageRequest) (transport.CreatedResponse, error) {
	fields := repository.PackageFields{
		Title:       sanitize.Text(req.Title),
		Slug:        normalizeSlug(req.Slug),
		Description: sanitize.Text(req.Description),
		Price:       *req.Price,
		Duration:    req.Duration,
		Image:       strings.TrimSpace(req.Image),
		Images:      sanitize.Strings(req.Images),
		Destination: sanitize.Text(req.Destination),
		Country:     sanitize.Text(req.Country),
		Amenities:   sanitize.Strings(req.Amenities),
		MaxPeople:   req.MaxPeople,
		Featured:    req.Featured,
	}
	checks := lengthChecks{}
	checks.min("title", fields.Title, 2)
	checks.min("description", fields.Description, 10)
	checks.min("destination", fields.Destination, 2)
	checks.min("country", fields.Country, 2)
	if err := checks.err(); err != nil {
		return transport.CreatedResponse{}, err
	}
	if err := s.ensureSlugFree(ctx, s.repo.PackageSlugExists, fields.Slug); err != nil {
		return transport.CreatedResponse{}, err
	}

	pkg, err := s.repo.CreatePackage(ctx, fields)
	if err != nil {
		return transport.CreatedResponse{}, err
	}

	s.log.Info("package created", "id", pkg.ID.Hex(), "slug", pkg.Slug)
	return transport.CreatedResponse{Message: "Package created", ID: pkg.ID.Hex()}, nil
}

// UpdatePackage applies a partial update. A changed slug must stay unique.
func (s *Service) UpdatePackage(ctx context.Context, id string, req transport.UpdatePackageRequest) (transport.PackageResponse, error) {
	params := repository.UpdatePackageParams{
		ID:          id,
		Title:       sanitize.TextPtr(req.Title),
		Description: sanitize.TextPtr(req.Description),
		Price:       req.Price,
		Duration:    req.Duration,
		Image:       trimPtr(req.Image),
		Destination: sanitize.TextPtr(req.Destination),
		Country:     sanitize.TextPtr(req.Country),
		MaxPeople:   req.MaxPeople,
		Featured:    req.Featured,
	}
	checks := lengthChecks{}
	checks.minPtr("title", params.Title, 2)
	checks.minPtr("description", params.Description, 10)
	checks.minPtr("destination", params.Destination, 2)
	checks.minPtr("country", params.Country, 2)
	if err := checks.err(); err != nil {
		return transport.PackageResponse{}, err
	}

	current, err := s.repo.GetPackageByID(ctx, id)
	if err != nil {
		return transport.PackageResponse{}, err
	}
	if req.Images != nil {
		images := sanitize.Strings(*req.Images)
		params.Images = &images
	}
	if req.Amenities != nil {
		amenities := sanitize.Strings(*req.Amenities)
		params.Amenities = &amenities
	}
	if req.Slug != nil {
		slug := normalizeSlug(*req.Slug)
		if slug != current.Slug {
			if err := s.ensureSlugFree(ctx, s.repo.PackageSlugExists, slug); err != nil {
				return transport.PackageResponse{}, err
			}
		}
		params.Slug = &slug
	}

	pkg, err := s.repo.UpdatePackage(ctx, params)
	if err != nil {
		return transport.PackageResponse{}, err
	}

	s.log.Info("package updated", "id", id)
	return toPackageResponse(pkg), nil
}

// DeletePackage removes a package.
func (s *Service) DeletePackage(ctx context.Context, id string) error {
	if err := s.repo.DeletePackage(ctx, id); err != nil {
		return err
	}
	s.log.Info("package deleted", "id", id)
	return nil
}

func (s *Service) ensureSlugFree(ctx context.Context, exists func(context.Context, string) (bool, error), slug string) error {
	taken, err := exists(ctx, slug)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict(msgSlugTaken).WithCode(apperr.CodeConflict)
	}
	return nil
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

func toPackageResponse(p repository.Package) transport.PackageResponse {
	return transport.PackageResponse{
		ID:           p.ID.Hex(),
		Title:        p.Title,
		Slug:         p.Slug,
		Description:  p.Description,
		Price:        p.Price,
		Duration:     p.Duration,
		Image:        p.Image,
		Images:       nonNil(p.Images),
		Destination:  p.Destination,
		Country:      p.Country,
		Rating:       p.Rating,
		ReviewsCount: p.ReviewsCount,
		Amenities:    nonNil(p.Amenities),
		MaxPeople:    p.MaxPeople,
		Featured:     p.Featured,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
