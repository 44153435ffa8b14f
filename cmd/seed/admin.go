package main

import (
	"context"
	"fmt"
	"strings"

	"travelnest_backend/internal/auth/password"
	authrepo "travelnest_backend/internal/auth/repository"
	"travelnest_backend/platform/apperr"
	"travelnest_backend/platform/session"
)

// adminAccount is created when SEED_ADMIN_EMAIL is set.
type adminAccount struct {
	Name     string
	Email    string
	Password string
}

// ensureAdmin creates the account, or promotes an existing one. An existing
// password is never overwritten. It reports whether a new user was created.
func ensureAdmin(ctx context.Context, users authrepo.AuthRepository, account adminAccount) (bool, error) {
	email := strings.TrimSpace(account.Email)
	if email == "" {
		return false, nil
	}

	existing, err := users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == session.RoleAdmin {
			return false, nil
		}
		role := session.RoleAdmin
		if _, err := users.UpdateUser(ctx, authrepo.UpdateUserParams{ID: existing.ID.Hex(), Role: &role}); err != nil {
			return false, fmt.Errorf("promote admin: %w", err)
		}
		return false, nil
	case !apperr.Is(err, apperr.KindNotFound):
		return false, fmt.Errorf("look up admin: %w", err)
	}

	if len(account.Password) < 6 {
		return false, fmt.Errorf("SEED_ADMIN_PASSWORD must be at least 6 characters")
	}
	hash, err := password.Hash(account.Password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	name := strings.TrimSpace(account.Name)
	if name == "" {
		name = "Administrator"
	}
	if _, err := users.CreateUser(ctx, authrepo.CreateUserParams{
		Name:         name,
		Email:        email,
		PasswordHash: &hash,
		Role:         session.RoleAdmin,
		Provider:     authrepo.ProviderCredentials,
	}); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}
