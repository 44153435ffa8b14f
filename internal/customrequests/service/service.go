package service

import (
	"context"
	"log/slog"
	"strings"

	"travelnest_backend/internal/auth"
	"travelnest_backend/internal/customrequests/repository"
	"travelnest_backend/internal/customrequests/transport"
	"travelnest_backend/internal/events"
	"travelnest_backend/platform/apperr"
	"travelnest_backend/platform/logger"
	"travelnest_backend/platform/phone"
	"travelnest_backend/platform/sanitize"
)

const msgDestinationsRequired = "At least one destination is required"

// Service implements the custom trip request workflow.
type Service struct {
	repo     repository.Repository
	users    auth.Directory
	phones   phone.Normalizer
	eventBus events.Bus
	log      *logger.Logger
}

func New(repo repository.Repository, users auth.Directory, phones phone.Normalizer, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, users: users, phones: phones, eventBus: eventBus, log: log}
}

// Create stores a pending request for userID.
func (s *Service) Create(ctx context.Context, userID string, req transport.CreateRequest) (transport.CreatedResponse, error) {
	destinations := sanitize.Strings(req.Destinations)
	if len(destinations) == 0 {
		return transport.CreatedResponse{}, apperr.Validation(msgDestinationsRequired).
			WithDetails(map[string][]string{"destinations": {msgDestinationsRequired}})
	}

	notes := sanitize.TextPtr(req.Notes)
	if notes != nil && *notes == "" {
		notes = nil
	}

	created, err := s.repo.Create(ctx, repository.CreateParams{
		UserID:       userID,
		Destinations: destinations,
		Days:         req.Days,
		Travelers:    req.Travelers,
		Budget:       req.Budget,
		Notes:        notes,
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		ContactPhone: s.phones.Normalize(req.ContactPhone),
	})
	if err != nil {
		return transport.CreatedResponse{}, err
	}

	s.log.Info("custom request submitted",
		slog.String("request_id", created.ID.Hex()),
		slog.String("user_id", userID),
		slog.Int("destinations", len(destinations)),
	)

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.CustomRequestSubmitted{
			BaseEvent:    events.NewBaseEvent(),
			RequestID:    created.ID.Hex(),
			UserID:       userID,
			Destinations: created.Destinations,
			Days:         created.Days,
			Travelers:    created.Travelers,
			ContactEmail: created.ContactEmail,
		})
	}

	return transport.CreatedResponse{Message: "Request submitted", ID: created.ID.Hex()}, nil
}

// Update sets status and admin note. No transition ordering is enforced.
func (s *Service) Update(ctx context.Context, id string, req transport.UpdateRequest) (transport.RequestResponse, error) {
	var note *string
	if req.AdminNote != nil {
		cleaned := sanitize.Text(*req.AdminNote)
		note = &cleaned
	}

	updated, err := s.repo.Update(ctx, repository.UpdateParams{ID: id, Status: req.Status, AdminNote: note})
	if err != nil {
		return transport.RequestResponse{}, err
	}

	s.log.Info("custom request updated",
		slog.String("request_id", id),
		slog.String("status", updated.Status),
	)
	return toResponse(updated), nil
}

// ListAll returns every request newest first, with the author's name and e-mail.
func (s *Service) ListAll(ctx context.Context) ([]transport.RequestResponse, error) {
	requests, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.User.Hex())
	}
	users, err := s.users.LookupUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]transport.RequestResponse, 0, len(requests))
	for _, r := range requests {
		resp := toResponse(r)
		if u, ok := users[r.User.Hex()]; ok {
			resp.User = &transport.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
		}
		out = append(out, resp)
	}
	return out, nil
}

// ListMine returns the caller's own requests.
func (s *Service) ListMine(ctx context.Context, userID string) ([]transport.RequestResponse, error) {
	requests, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.RequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, toResponse(r))
	}
	return out, nil
}

func toResponse(r repository.CustomRequest) transport.RequestResponse {
	return transport.RequestResponse{
		ID:           r.ID.Hex(),
		UserID:       r.User.Hex(),
		Destinations: r.Destinations,
		Days:         r.Days,
		Travelers:    r.Travelers,
		Budget:       r.Budget,
		Notes:        r.Notes,
		Status:       r.Status,
		AdminNote:    r.AdminNote,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
