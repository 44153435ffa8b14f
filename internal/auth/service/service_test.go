package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"travelnest_backend/internal/auth/google"
	"travelnest_backend/internal/auth/password"
	"travelnest_backend/internal/auth/repository"
	"travelnest_backend/internal/auth/transport"
	"travelnest_backend/internal/events"
	"travelnest_backend/platform/apperr"
	"travelnest_backend/platform/logger"
	"travelnest_backend/platform/session"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users []repository.User
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, p repository.CreateUserParams) (repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == p.Email {
			return repository.User{}, apperr.Conflict("User already exists with this email")
		}
	}
	u := repository.User{
		ID: primitive.NewObjectID(), Name: p.Name, Email: p.Email, Password: p.PasswordHash,
		Image: p.Image, Role: p.Role, Provider: p.Provider, CreatedAt: time.Now(),
	}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return repository.User{}, apperr.NotFound("User not found")
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return repository.User{}, apperr.NotFound("User not found")
}

func (f *fakeUserRepo) GetUsersByIDs(ctx context.Context, ids []string) ([]repository.User, error) {
	var out []repository.User
	for _, id := range ids {
		if u, err := f.GetUserByID(ctx, id); err == nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, p repository.UpdateUserParams) (repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, u := range f.users {
		if u.ID.Hex() != p.ID {
			continue
		}
		if p.Name != nil {
			u.Name = *p.Name
		}
		if p.PasswordHash != nil {
			u.Password = p.PasswordHash
		}
		if p.Role != nil {
			u.Role = *p.Role
		}
		f.users[i] = u
		return u, nil
	}
	return repository.User{}, apperr.NotFound("User not found")
}

func (f *fakeUserRepo) ListUsers(ctx context.Context) ([]repository.User, error) {
	return append([]repository.User(nil), f.users...), nil
}

func (f *fakeUserRepo) CountUsers(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeGoogle struct {
	identity google.Identity
	err      error
}

func (f fakeGoogle) Verify(ctx context.Context, idToken string) (google.Identity, error) {
	return f.identity, f.err
}

type sessionCfg struct{}

func (sessionCfg) GetSessionSecret() string            { return "secret" }
func (sessionCfg) GetSessionTTL() time.Duration        { return time.Hour }
func (sessionCfg) GetSessionRenewAfter() time.Duration { return time.Minute }

func newTestService(repo *fakeUserRepo, g GoogleVerifier) (*Service, *events.InMemoryBus) {
	log := logger.New("development", logger.WithOutput(io.Discard))
	bus := events.NewInMemoryBus(log)
	return New(repo, session.NewManager(sessionCfg{}), g, bus, log), bus
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, plain, role string) repository.User {
	t.Helper()
	var hash *string
	if plain != "" {
		h, err := password.Hash(plain)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		hash = &h
	}
	u, err := repo.CreateUser(context.Background(), repository.CreateUserParams{
		Name: "Seed", Email: email, PasswordHash: hash, Role: role, Provider: repository.ProviderCredentials,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return u
}

func TestRegisterThenClaimAdminIsRoleMismatch(t *testing.T) {
	repo := &fakeUserRepo{}
	svc, bus := newTestService(repo, nil)
	ctx := context.Background()

	var registered []events.UserRegistered
	var mu sync.Mutex
	bus.Subscribe(events.UserRegistered{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		registered = append(registered, e.(events.UserRegistered))
		return nil
	}))

	res, err := svc.Register(ctx, transport.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.UserID == "" {
		t.Fatal("expected user id")
	}
	bus.Wait()
	if len(registered) != 1 || registered[0].Email != "alice@example.com" {
		t.Fatalf("expected one UserRegistered event, got %v", registered)
	}
	if repo.users[0].Role != session.RoleTraveler {
		t.Fatalf("self registration must create travelers, got %q", repo.users[0].Role)
	}

	_, err = svc.Authenticate(ctx, "alice@example.com", "secret1", session.RoleAdmin)
	if !apperr.HasCode(err, apperr.CodeRoleMismatch) {
		t.Fatalf("expected RoleMismatch, got %v", err)
	}

	sess, err := svc.Authenticate(ctx, "alice@example.com", "secret1", session.RoleTraveler)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if sess.Token == "" || sess.Claims.Role != session.RoleTraveler || sess.Claims.Subject != res.UserID {
		t.Fatalf("unexpected session %+v", sess.Claims)
	}
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	repo := &fakeUserRepo{}
	svc, _ := newTestService(repo, nil)
	seedUser(t, repo, "bob@example.com", "secret1", session.RoleTraveler)

	_, err := svc.Register(context.Background(), transport.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "another"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if !apperr.HasCode(err, apperr.CodeConflict) {
		t.Fatalf("expected %s code on duplicate email, got %v", apperr.CodeConflict, err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("duplicate user was created")
	}
}

func TestAuthenticateInvalidCredentials(t *testing.T) {
	repo := &fakeUserRepo{}
	svc, _ := newTestService(repo, nil)
	seedUser(t, repo, "carol@example.com", "secret1", session.RoleTraveler)
	seedUser(t, repo, "oauth@example.com", "", session.RoleTraveler)

	cases := []struct{ email, pass string }{
		{"nobody@example.com", "secret1"},
		{"carol@example.com", "wrong-pass"},
		{"oauth@example.com", "anything"},
	}
	for _, tc := range cases {
		_, err := svc.Authenticate(context.Background(), tc.email, tc.pass, "")
		if !apperr.HasCode(err, apperr.CodeInvalidCredentials) {
			t.Fatalf("%s: expected InvalidCredentials, got %v", tc.email, err)
		}
		if apperr.HasCode(err, apperr.CodeRoleMismatch) {
			t.Fatalf("%s: must not report role mismatch", tc.email)
		}
	}
}

func TestAuthenticateAcceptsLegacyUserRole(t *testing.T) {
	repo := &fakeUserRepo{}
	svc, _ := newTestService(repo, nil)
	seedUser(t, repo, "legacy@example.com", "secret1", "user")

	sess, err := svc.Authenticate(context.Background(), "legacy@example.com", "secret1", "traveler")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if sess.Claims.Role != session.RoleTraveler {
		t.Fatalf("expected normalized traveler role, got %q", sess.Claims.Role)
	}
}

func TestSignInGoogleProvisionsOnceAndKeepsExistingRole(t *testing.T) {
	repo := &fakeUserRepo{}
	g := fakeGoogle{identity: google.Identity{Email: "maya@example.com", Name: "Maya", Picture: "https://img/p.png"}}
	svc, _ := newTestService(repo, g)
	ctx := context.Background()

	sess, err := svc.SignInGoogle(ctx, "token")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if len(repo.users) != 1 || repo.users[0].Provider != repository.ProviderGoogle || repo.users[0].Role != session.RoleTraveler {
		t.Fatalf("unexpected provisioned user %+v", repo.users)
	}
	if sess.Claims.Email != "maya@example.com" {
		t.Fatalf("unexpected claims %+v", sess.Claims)
	}

	if _, err := svc.SignInGoogle(ctx, "token"); err != nil {
		t.Fatalf("second sign in: %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("second sign in must not create another user")
	}

	admin := seedUser(t, repo, "boss@example.com", "secret1", session.RoleAdmin)
	svc2, _ := newTestService(repo, fakeGoogle{identity: google.Identity{Email: "boss@example.com", Name: "Other"}})
	sess, err = svc2.SignInGoogle(ctx, "token")
	if err != nil {
		t.Fatalf("sign in existing: %v", err)
	}
	stored, _ := repo.GetUserByID(ctx, admin.ID.Hex())
	if sess.Claims.Role != session.RoleAdmin || stored.Role != session.RoleAdmin || !stored.HasPassword() {
		t.Fatalf("existing account must keep role and password")
	}
}

func TestSignInGoogleRejectsInvalidToken(t *testing.T) {
	svc, _ := newTestService(&fakeUserRepo{}, fakeGoogle{err: google.ErrInvalidToken})
	_, err := svc.SignInGoogle(context.Background(), "bad")
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	svc, _ = newTestService(&fakeUserRepo{}, fakeGoogle{err: errors.New("circuit open")})
	_, err = svc.SignInGoogle(context.Background(), "tok")
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal, got %v", err)
	}

	svc, _ = newTestService(&fakeUserRepo{}, nil)
	if _, err := svc.SignInGoogle(context.Background(), "tok"); !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request when disabled, got %v", err)
	}
}

func TestUpdateProfileIsAdminOnly(t *testing.T) {
	repo := &fakeUserRepo{}
	svc, _ := newTestService(repo, nil)
	traveler := seedUser(t, repo, "t@example.com", "secret1", session.RoleTraveler)
	admin := seedUser(t, repo, "a@example.com", "secret1", session.RoleAdmin)
	name := "Renamed"

	_, err := svc.UpdateProfile(context.Background(), traveler.ID.Hex(), session.RoleTraveler, transport.UpdateProfileRequest{Name: &name})
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	newPass := "brand-new"
	res, err := svc.UpdateProfile(context.Background(), admin.ID.Hex(), session.RoleAdmin, transport.UpdateProfileRequest{Name: &name, Password: &newPass})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Name != "Renamed" {
		t.Fatalf("unexpected name %q", res.Name)
	}
	if _, err := svc.Authenticate(context.Background(), "a@example.com", "brand-new", ""); err != nil {
		t.Fatalf("new password must work: %v", err)
	}
}
