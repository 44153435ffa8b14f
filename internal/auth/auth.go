// Package auth provides authentication and authorization functionality.
// This file defines the public API of the auth bounded context.
// Only types and interfaces defined here should be imported by other domains.
package auth

import "context"

// UserSummary is the slice of a user other domains may show (booking
// owners, request authors, dashboard counts).
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Directory resolves users for other domains without exposing the repository.
type Directory interface {
	// LookupUsers returns summaries keyed by user ID. Unknown IDs are absent.
	LookupUsers(ctx context.Context, ids []string) (map[string]UserSummary, error)
	// CountUsers returns the number of registered users.
	CountUsers(ctx context.Context) (int64, error)
}
