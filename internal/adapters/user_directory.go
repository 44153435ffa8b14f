// Package adapters contains adapters that bridge different bounded contexts.
// These adapters implement interfaces defined by consuming domains while
// wrapping repositories from providing domains.
package adapters

import (
	"context"
	"fmt"
	"strings"

	"travelnest_backend/internal/auth"
	authrepo "travelnest_backend/internal/auth/repository"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UserDirectory adapts the user repository to auth.Directory so bookings,
// custom requests and the admin dashboard can show owners without reaching
// into auth internals.
type UserDirectory struct {
	repo authrepo.AuthRepository
}

// NewUserDirectory creates a new directory adapter.
func NewUserDirectory(repo authrepo.AuthRepository) *UserDirectory {
	return &UserDirectory{repo: repo}
}

// LookupUsers returns summaries keyed by user ID. Unknown or malformed IDs
// are silently omitted.
func (d *UserDirectory) LookupUsers(ctx context.Context, ids []string) (map[string]auth.UserSummary, error) {
	result := make(map[string]auth.UserSummary, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	users, err := d.repo.GetUsersByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("user directory: get users: %w", err)
	}

	for _, u := range users {
		id := u.ID.Hex()
		result[id] = auth.UserSummary{
			ID:    id,
			Name:  displayName(u.Name, u.Email),
			Email: u.Email,
			Role:  u.Role,
		}
	}
	return result, nil
}

// CountUsers returns the number of registered users.
func (d *UserDirectory) CountUsers(ctx context.Context) (int64, error) {
	return d.repo.CountUsers(ctx)
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// displayName falls back to a name derived from the e-mail local part.
func displayName(name, email string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	local, _, _ := strings.Cut(email, "@")
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)
	return cases.Title(language.Und).String(local)
}

var _ auth.Directory = (*UserDirectory)(nil)
