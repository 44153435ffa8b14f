package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"travelnest_backend/internal/auth/google"
	"travelnest_backend/internal/auth/password"
	"travelnest_backend/internal/auth/repository"
	"travelnest_backend/internal/auth/transport"
	"travelnest_backend/internal/events"
	"travelnest_backend/platform/apperr"
	"travelnest_backend/platform/logger"
	"travelnest_backend/platform/session"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgRoleMismatch       = "This account is not registered with the selected role"
	msgGoogleDisabled     = "Google sign-in is not configured"
	msgAdminOnly          = "Unauthorized"
)

// legacyTravelerRole is how older clients and documents spell traveler.
const legacyTravelerRole = "user"

// GoogleVerifier checks a federated ID token.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (google.Identity, error)
}

// Session is a freshly issued session token.
type Session struct {
	Token  string
	Claims *session.Claims
}

// Service implements sign-in, registration and profile management.
type Service struct {
	repo     repository.AuthRepository
	sessions *session.Manager
	google   GoogleVerifier
	eventBus events.Bus
	log      *logger.Logger
}

// New creates the auth service. google may be nil when federated sign-in
// is not configured.
func New(repo repository.AuthRepository, sessions *session.Manager, google GoogleVerifier, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, sessions: sessions, google: google, eventBus: eventBus, log: log}
}

// Authenticate checks credentials and, when claimedRole is set, that it is
// the stored role. The session claims come from the user document.
func (s *Service) Authenticate(ctx context.Context, email, plainPassword, claimedRole string) (Session, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			s.log.AuthEvent("sign_in", email, false, "unknown email")
			return Session{}, invalidCredentials()
		}
		return Session{}, err
	}

	if !user.HasPassword() {
		s.log.AuthEvent("sign_in", email, false, "no password on account")
		return Session{}, invalidCredentials()
	}
	if !password.Matches(*user.Password, plainPassword) {
		s.log.AuthEvent("sign_in", email, false, "password mismatch")
		return Session{}, invalidCredentials()
	}

	stored := NormalizeRole(user.Role)
	if claimedRole != "" && NormalizeRole(claimedRole) != stored {
		s.log.AuthEvent("sign_in", email, false, "role mismatch")
		return Session{}, apperr.Unauthorized(msgRoleMismatch).WithCode(apperr.CodeRoleMismatch)
	}

	sess, err := s.issue(user)
	if err != nil {
		return Session{}, err
	}
	s.log.AuthEvent("sign_in", email, true, "")
	return sess, nil
}

// Register creates a credentials account. Self-service accounts are always
// travelers.
func (s *Service) Register(ctx context.Context, req transport.RegisterRequest) (transport.RegisterResponse, error) {
	email := strings.TrimSpace(req.Email)

	_, err := s.repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return transport.RegisterResponse{}, apperr.Conflict("User already exists with this email")
	case !apperr.Is(err, apperr.KindNotFound):
		return transport.RegisterResponse{}, err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return transport.RegisterResponse{}, apperr.Wrap(apperr.KindInternal, "hash password", err)
	}

	user, err := s.repo.CreateUser(ctx, repository.CreateUserParams{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: &hash,
		Role:         session.RoleTraveler,
		Provider:     repository.ProviderCredentials,
	})
	if err != nil {
		return transport.RegisterResponse{}, err
	}

	s.publishRegistered(ctx, user)
	s.log.Info("user registered", "id", user.ID.Hex(), "provider", user.Provider)
	return transport.RegisterResponse{Message: "User registered successfully", UserID: user.ID.Hex()}, nil
}

// SignInGoogle verifies a Google ID token, provisioning a traveler account
// for an unseen email. Existing accounts keep their role and password.
func (s *Service) SignInGoogle(ctx context.Context, idToken string) (Session, error) {
	if s.google == nil {
		return Session{}, apperr.BadRequest(msgGoogleDisabled)
	}

	identity, err := s.google.Verify(ctx, idToken)
	if err != nil {
		if errors.Is(err, google.ErrInvalidToken) {
			s.log.AuthEvent("google_sign_in", "", false, "invalid token")
			return Session{}, apperr.Unauthorized(msgInvalidCredentials).WithCode(apperr.CodeInvalidCredentials)
		}
		return Session{}, apperr.Wrap(apperr.KindInternal, "google verification failed", err)
	}

	user, err := s.repo.GetUserByEmail(ctx, identity.Email)
	if apperr.Is(err, apperr.KindNotFound) {
		user, err = s.provisionGoogleUser(ctx, identity)
	}
	if err != nil {
		return Session{}, err
	}

	sess, err := s.issue(user)
	if err != nil {
		return Session{}, err
	}
	s.log.AuthEvent("google_sign_in", identity.Email, true, "")
	return sess, nil
}

func (s *Service) provisionGoogleUser(ctx context.Context, identity google.Identity) (repository.User, error) {
	var image *string
	if identity.Picture != "" {
		image = &identity.Picture
	}

	user, err := s.repo.CreateUser(ctx, repository.CreateUserParams{
		Name:     identity.Name,
		Email:    identity.Email,
		Image:    image,
		Role:     session.RoleTraveler,
		Provider: repository.ProviderGoogle,
	})
	if apperr.Is(err, apperr.KindConflict) {
		// A concurrent sign-in created it first.
		return s.repo.GetUserByEmail(ctx, identity.Email)
	}
	if err != nil {
		return repository.User{}, err
	}

	s.publishRegistered(ctx, user)
	s.log.Info("user registered", "id", user.ID.Hex(), "provider", user.Provider)
	return user, nil
}

// UpdateProfile changes the caller's own name and password. Only admins
// may edit their settings.
func (s *Service) UpdateProfile(ctx context.Context, callerID, callerRole string, req transport.UpdateProfileRequest) (transport.UserResponse, error) {
	if callerRole != session.RoleAdmin {
		return transport.UserResponse{}, apperr.Forbidden(msgAdminOnly)
	}

	params := repository.UpdateUserParams{ID: callerID}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		params.Name = &name
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := password.Hash(*req.Password)
		if err != nil {
			return transport.UserResponse{}, apperr.Wrap(apperr.KindInternal, "hash password", err)
		}
		params.PasswordHash = &hash
	}

	user, err := s.repo.UpdateUser(ctx, params)
	if err != nil {
		return transport.UserResponse{}, err
	}

	s.log.Info("profile updated", "id", callerID, "passwordChanged", params.PasswordHash != nil)
	return toUserResponse(user), nil
}

// AdminUpdateUser lets an admin rename a user or change their role.
func (s *Service) AdminUpdateUser(ctx context.Context, id string, req transport.AdminUpdateUserRequest) (transport.UserResponse, error) {
	params := repository.UpdateUserParams{ID: id, Role: req.Role}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		params.Name = &name
	}

	user, err := s.repo.UpdateUser(ctx, params)
	if err != nil {
		return transport.UserResponse{}, err
	}

	s.log.Info("user updated by admin", "id", id, "role", user.Role)
	return toUserResponse(user), nil
}

// ListUsers returns every user for the admin users page.
func (s *Service) ListUsers(ctx context.Context) ([]transport.UserResponse, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]transport.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// NormalizeRole maps legacy role spellings onto the current set.
func NormalizeRole(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == legacyTravelerRole {
		return session.RoleTraveler
	}
	return role
}

// SessionResponse renders claims for the client.
func SessionResponse(token string, claims *session.Claims) transport.SessionResponse {
	if claims == nil {
		return transport.SessionResponse{}
	}
	var expiresAt *time.Time
	if claims.ExpiresAt != nil {
		t := claims.ExpiresAt.Time
		expiresAt = &t
	}
	return transport.SessionResponse{
		User: &transport.SessionUser{
			ID:    claims.Subject,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  claims.Role,
		},
		Token:     token,
		ExpiresAt: expiresAt,
	}
}

func (s *Service) issue(user repository.User) (Session, error) {
	token, claims, err := s.sessions.Issue(session.Principal{
		UserID: user.ID.Hex(),
		Role:   NormalizeRole(user.Role),
		Email:  user.Email,
		Name:   user.Name,
	})
	if err != nil {
		return Session{}, apperr.Wrap(apperr.KindInternal, "issue session", err)
	}
	return Session{Token: token, Claims: claims}, nil
}

func (s *Service) publishRegistered(ctx context.Context, user repository.User) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(ctx, events.UserRegistered{
		BaseEvent: events.NewBaseEvent(),
		UserID:    user.ID.Hex(),
		Name:      user.Name,
		Email:     user.Email,
		Provider:  user.Provider,
	})
}

func invalidCredentials() error {
	return apperr.Unauthorized(msgInvalidCredentials).WithCode(apperr.CodeInvalidCredentials)
}

func toUserResponse(u repository.User) transport.UserResponse {
	return transport.UserResponse{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Image:     u.Image,
		Role:      NormalizeRole(u.Role),
		Provider:  u.Provider,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
