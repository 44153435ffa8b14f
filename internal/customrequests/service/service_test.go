package service

import (
	"context"
	"io"
	"testing"
	"time"

	"travelnest_backend/internal/auth"
	"travelnest_backend/internal/customrequests/repository"
	"travelnest_backend/internal/customrequests/transport"
	"travelnest_backend/internal/events"
	"travelnest_backend/platform/apperr"
	"travelnest_backend/platform/logger"
	"travelnest_backend/platform/phone"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memRepo struct {
	items []repository.CustomRequest
}

func (m *memRepo) Create(ctx context.Context, p repository.CreateParams) (repository.CustomRequest, error) {
	user, _ := primitive.ObjectIDFromHex(p.UserID)
	r := repository.CustomRequest{
		ID: primitive.NewObjectID(), User: user, Destinations: p.Destinations, Days: p.Days,
		Travelers: p.Travelers, Budget: p.Budget, Notes: p.Notes, Status: repository.StatusPending,
		ContactEmail: p.ContactEmail, ContactPhone: p.ContactPhone, CreatedAt: time.Now(),
	}
	m.items = append([]repository.CustomRequest{r}, m.items...)
	return r, nil
}

func (m *memRepo) Update(ctx context.Context, p repository.UpdateParams) (repository.CustomRequest, error) {
	for i, r := range m.items {
		if r.ID.Hex() != p.ID {
			continue
		}
		if p.Status != nil {
			r.Status = *p.Status
		}
		if p.AdminNote != nil {
			r.AdminNote = p.AdminNote
		}
		m.items[i] = r
		return r, nil
	}
	return repository.CustomRequest{}, apperr.NotFound("Request not found")
}

func (m *memRepo) ListAll(ctx context.Context) ([]repository.CustomRequest, error) {
	return m.items, nil
}

func (m *memRepo) ListByUser(ctx context.Context, userID string) ([]repository.CustomRequest, error) {
	out := []repository.CustomRequest{}
	for _, r := range m.items {
		if r.User.Hex() == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type directory map[string]auth.UserSummary

func (d directory) LookupUsers(ctx context.Context, ids []string) (map[string]auth.UserSummary, error) {
	return d, nil
}

func (d directory) CountUsers(ctx context.Context) (int64, error) { return int64(len(d)), nil }

func newService(repo *memRepo, users directory) (*Service, *events.InMemoryBus) {
	log := logger.New("development", logger.WithOutput(io.Discard))
	bus := events.NewInMemoryBus(log)
	return New(repo, users, phone.NewNormalizer("US"), bus, log), bus
}

func validRequest() transport.CreateRequest {
	return transport.CreateRequest{
		Destinations: []string{" Kyoto ", "Osaka"},
		Days:         9,
		Travelers:    2,
		ContactEmail: "alice@example.com",
		ContactPhone: "+1 650-253-0000",
	}
}

func TestCreateStoresPendingAndPublishes(t *testing.T) {
	repo := &memRepo{}
	svc, bus := newService(repo, directory{})

	var got events.CustomRequestSubmitted
	bus.Subscribe(events.CustomRequestSubmitted{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		got = e.(events.CustomRequestSubmitted)
		return nil
	}))

	userID := primitive.NewObjectID().Hex()
	notes := "<b>Vegetarian</b> meals please"
	req := validRequest()
	req.Notes = &notes

	res, err := svc.Create(context.Background(), userID, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.Message != "Request submitted" || res.ID == "" {
		t.Fatalf("unexpected response %+v", res)
	}

	stored := repo.items[0]
	if stored.Status != repository.StatusPending || len(stored.Destinations) != 2 || stored.Destinations[0] != "Kyoto" {
		t.Fatalf("unexpected stored request %+v", stored)
	}
	if stored.Notes == nil || *stored.Notes != "Vegetarian meals please" {
		t.Fatalf("expected sanitized notes, got %v", stored.Notes)
	}

	bus.Wait()
	if got.RequestID != res.ID || got.UserID != userID || got.Days != 9 {
		t.Fatalf("unexpected event %+v", got)
	}
}

func TestCreateRejectsBlankDestinations(t *testing.T) {
	repo := &memRepo{}
	svc, _ := newService(repo, directory{})

	req := validRequest()
	req.Destinations = []string{"  ", "<i></i>"}
	_, err := svc.Create(context.Background(), primitive.NewObjectID().Hex(), req)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatal("nothing may be stored")
	}
}

func TestUpdateAllowsAnyTransition(t *testing.T) {
	repo := &memRepo{}
	svc, _ := newService(repo, directory{})
	res, _ := svc.Create(context.Background(), primitive.NewObjectID().Hex(), validRequest())

	for _, status := range []string{repository.StatusClosed, repository.StatusPending, repository.StatusQuoted, repository.StatusReviewed} {
		s := status
		updated, err := svc.Update(context.Background(), res.ID, transport.UpdateRequest{Status: &s})
		if err != nil {
			t.Fatalf("update to %s: %v", status, err)
		}
		if updated.Status != status {
			t.Fatalf("expected %s, got %s", status, updated.Status)
		}
	}

	note := "Quote sent by e-mail"
	updated, err := svc.Update(context.Background(), res.ID, transport.UpdateRequest{AdminNote: &note})
	if err != nil || updated.AdminNote == nil || *updated.AdminNote != note || updated.Status != repository.StatusReviewed {
		t.Fatalf("unexpected update %+v %v", updated, err)
	}

	if _, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), transport.UpdateRequest{}); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListAllPopulatesUsers(t *testing.T) {
	repo := &memRepo{}
	alice := primitive.NewObjectID().Hex()
	svc, _ := newService(repo, directory{alice: {ID: alice, Name: "Alice", Email: "alice@example.com"}})

	_, _ = svc.Create(context.Background(), alice, validRequest())
	_, _ = svc.Create(context.Background(), primitive.NewObjectID().Hex(), validRequest())

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(all))
	}
	if all[0].User != nil {
		t.Fatalf("unknown author must stay unpopulated, got %+v", all[0].User)
	}
	if all[1].User == nil || all[1].User.Name != "Alice" {
		t.Fatalf("expected Alice on the older request, got %+v", all[1].User)
	}

	mine, _ := svc.ListMine(context.Background(), alice)
	if len(mine) != 1 {
		t.Fatalf("expected one request for alice, got %d", len(mine))
	}
}
