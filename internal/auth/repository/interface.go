package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Provider values.
const (
	ProviderCredentials = "credentials"
	// ProviderGoogle marks accounts created through federated sign-in.
	ProviderGoogle = "google"
)

// User is a document in the users collection.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  *string            `bson:"password,omitempty"`
	Image     *string            `bson:"image,omitempty"`
	Role      string             `bson:"role"`
	Provider  string             `bson:"provider"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// HasPassword reports whether the account can sign in with credentials.
func (u User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}

// CreateUserParams contains data for creating a user.
type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash *string
	Image        *string
	Role         string
	Provider     string
}

// UpdateUserParams contains the fields an update may change.
type UpdateUserParams struct {
	ID           string
	Name         *string
	PasswordHash *string
	Role         *string
}

// AuthRepository defines the interface for user data operations.
type AuthRepository interface {
	CreateUser(ctx context.Context, params CreateUserParams) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id string) (User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]User, error)
	UpdateUser(ctx context.Context, params UpdateUserParams) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	CountUsers(ctx context.Context) (int64, error)
}

// Ensure Repository implements AuthRepository
var _ AuthRepository = (*Repository)(nil)
