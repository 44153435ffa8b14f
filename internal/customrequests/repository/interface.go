package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request statuses. Any status may be set from any other.
const (
	StatusPending  = "pending"
	StatusReviewed = "reviewed"
	StatusQuoted   = "quoted"
	StatusClosed   = "closed"
)

// CustomRequest is a document in the custompackagerequests collection.
type CustomRequest struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	User         primitive.ObjectID `bson:"user"`
	Destinations []string           `bson:"destinations"`
	Days         int                `bson:"days"`
	Travelers    int                `bson:"travelers"`
	Budget       *float64           `bson:"budget,omitempty"`
	Notes        *string            `bson:"notes,omitempty"`
	Status       string             `bson:"status"`
	AdminNote    *string            `bson:"adminNote,omitempty"`
	ContactEmail string             `bson:"contactEmail"`
	ContactPhone string             `bson:"contactPhone"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

type CreateParams struct {
	UserID       string
	Destinations []string
	Days         int
	Travelers    int
	Budget       *float64
	Notes        *string
	ContactEmail string
	ContactPhone string
}

type UpdateParams struct {
	ID        string
	Status    *string
	AdminNote *string
}

// Repository persists custom trip requests.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (CustomRequest, error)
	Update(ctx context.Context, params UpdateParams) (CustomRequest, error)
	ListAll(ctx context.Context) ([]CustomRequest, error)
	ListByUser(ctx context.Context, userID string) ([]CustomRequest, error)
}
