package repository

import (
	"context"
	"time"

	"travelnest_backend/platform/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	msgRequestNotFound = "Request not found"
	msgRequestConflict = "Request already exists"
)

type Repo struct {
	requests *mongo.Collection
	now      func() time.Time
}

func New(database *mongo.Database) *Repo {
	return &Repo{requests: database.Collection(db.CollectionCustomRequests), now: time.Now}
}

var _ Repository = (*Repo)(nil)

func (r *Repo) Create(ctx context.Context, params CreateParams) (CustomRequest, error) {
	userID, err := db.ObjectID(params.UserID, "User not found")
	if err != nil {
		return CustomRequest{}, err
	}

	now := r.now().UTC()
	req := CustomRequest{
		User:         userID,
		Destinations: params.Destinations,
		Days:         params.Days,
		Travelers:    params.Travelers,
		Budget:       params.Budget,
		Notes:        params.Notes,
		Status:       StatusPending,
		ContactEmail: params.ContactEmail,
		ContactPhone: params.ContactPhone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := r.requests.InsertOne(ctx, req)
	if err != nil {
		return CustomRequest{}, db.MapError("customrequests.Create", err, msgRequestNotFound, msgRequestConflict)
	}
	req.ID = res.InsertedID.(primitive.ObjectID)
	return req, nil
}

func (r *Repo) Update(ctx context.Context, params UpdateParams) (CustomRequest, error) {
	oid, err := db.ObjectID(params.ID, msgRequestNotFound)
	if err != nil {
		return CustomRequest{}, err
	}

	set := bson.M{"updatedAt": r.now().UTC()}
	if params.Status != nil {
		set["status"] = *params.Status
	}
	if params.AdminNote != nil {
		set["adminNote"] = *params.AdminNote
	}

	var req CustomRequest
	err = r.requests.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&req)
	if err != nil {
		return CustomRequest{}, db.MapError("customrequests.Update", err, msgRequestNotFound, msgRequestConflict)
	}
	return req, nil
}

// ListAll returns every request, newest first.
func (r *Repo) ListAll(ctx context.Context) ([]CustomRequest, error) {
	return r.find(ctx, "customrequests.ListAll", bson.M{})
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]CustomRequest, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []CustomRequest{}, nil
	}
	return r.find(ctx, "customrequests.ListByUser", bson.M{"user": oid})
}

func (r *Repo) find(ctx context.Context, op string, filter bson.M) ([]CustomRequest, error) {
	cursor, err := r.requests.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, db.MapError(op, err, msgRequestNotFound, msgRequestConflict)
	}
	defer cursor.Close(ctx)

	out := make([]CustomRequest, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, db.MapError(op, err, msgRequestNotFound, msgRequestConflict)
	}
	return out, nil
}
