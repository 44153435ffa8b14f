package service

import (
	"context"
	"strings"

	"travelnest_backend/internal/catalog/repository"
	"travelnest_backend/internal/catalog/transport"
	"travelnest_backend/platform/sanitize"
)

// ListDestinations returns featured destinations first, then by name.
func (s *Service) ListDestinations(ctx context.Context) ([]transport.DestinationResponse, error) {
	items, err := s.repo.ListDestinations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]transport.DestinationResponse, 0, len(items))
	for _, d := range items {
		out = append(out, toDestinationResponse(d))
	}
	return out, nil
}

// CreateDestination creates a destination after checking its slug is free.
func (s *Service) CreateDestination(ctx context.Context, req transport.CreateDestinationRequest) (transport.CreatedResponse, error) {
	fields := repository.DestinationFields{
		Name:        sanitize.Text(req.Name),
		Slug:        normalizeSlug(req.Slug),
		Country:     sanitize.Text(req.Country),
		Description: sanitize.Text(req.Description),
		Image:       strings.TrimSpace(req.Image),
		Featured:    req.Featured,
	}
	checks := lengthChecks{}
	checks.min("name", fields.Name, 2)
	checks.min("country", fields.Country, 2)
	checks.min("description", fields.Description, 10)
	if err := checks.err(); err != nil {
		return transport.CreatedResponse{}, err
	}
	if err := s.ensureSlugFree(ctx, s.repo.DestinationSlugExists, fields.Slug); err != nil {
		return transport.CreatedResponse{}, err
	}

	dest, err := s.repo.CreateDestination(ctx, fields)
	if err != nil {
		return transport.CreatedResponse{}, err
	}

	s.log.Info("destination created", "id", dest.ID.Hex(), "slug", dest.Slug)
	return transport.CreatedResponse{Message: "Destination created", ID: dest.ID.Hex()}, nil
}

// UpdateDestination applies a partial update.
func (s *Service) UpdateDestination(ctx context.Context, id string, req transport.UpdateDestinationRequest) (transport.DestinationResponse, error) {
	params := repository.UpdateDestinationParams{
		ID:          id,
		Name:        sanitize.TextPtr(req.Name),
		Country:     sanitize.TextPtr(req.Country),
		Description: sanitize.TextPtr(req.Description),
		Image:       trimPtr(req.Image),
		Featured:    req.Featured,
	}
	checks := lengthChecks{}
	checks.minPtr("name", params.Name, 2)
	checks.minPtr("country", params.Country, 2)
	checks.minPtr("description", params.Description, 10)
	if err := checks.err(); err != nil {
		return transport.DestinationResponse{}, err
	}
	if req.Slug != nil {
		slug := normalizeSlug(*req.Slug)
		params.Slug = &slug
	}

	// A slug collision surfaces from the unique index as Conflict.
	dest, err := s.repo.UpdateDestination(ctx, params)
	if err != nil {
		return transport.DestinationResponse{}, err
	}

	s.log.Info("destination updated", "id", id)
	return toDestinationResponse(dest), nil
}

// DeleteDestination removes a destination.
func (s *Service) DeleteDestination(ctx context.Context, id string) error {
	if err := s.repo.DeleteDestination(ctx, id); err != nil {
		return err
	}
	s.log.Info("destination deleted", "id", id)
	return nil
}

func toDestinationResponse(d repository.Destination) transport.DestinationResponse {
	return transport.DestinationResponse{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Slug:        d.Slug,
		Country:     d.Country,
		Description: d.Description,
		Image:       d.Image,
		Featured:    d.Featured,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
