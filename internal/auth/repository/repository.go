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
	msgUserNotFound = "User not found"
	msgEmailTaken   = "User already exists with this email"
)

// Repository stores users in Mongo.
type Repository struct {
	users *mongo.Collection
	now   func() time.Time
}

// New creates a user repository.
func New(database *mongo.Database) *Repository {
	return &Repository{users: database.Collection(db.CollectionUsers), now: time.Now}
}

// CreateUser inserts a user. The unique email index turns races into Conflict.
func (r *Repository) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	now := r.now().UTC()
	user := User{
		Name:      params.Name,
		Email:     params.Email,
		Password:  params.PasswordHash,
		Image:     params.Image,
		Role:      params.Role,
		Provider:  params.Provider,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := r.users.InsertOne(ctx, user)
	if err != nil {
		return User{}, db.MapError("users.Create", err, msgUserNotFound, msgEmailTaken)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

// GetUserByEmail matches the stored email exactly.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return r.findOne(ctx, "users.GetByEmail", bson.M{"email": email})
}

// GetUserByID loads a user by hex ID.
func (r *Repository) GetUserByID(ctx context.Context, id string) (User, error) {
	oid, err := db.ObjectID(id, msgUserNotFound)
	if err != nil {
		return User{}, err
	}
	return r.findOne(ctx, "users.GetByID", bson.M{"_id": oid})
}

// GetUsersByIDs loads every user whose ID is listed.
func (r *Repository) GetUsersByIDs(ctx context.Context, ids []string) ([]User, error) {
	oids := db.ObjectIDs(ids)
	if len(oids) == 0 {
		return []User{}, nil
	}
	return r.find(ctx, "users.GetByIDs", bson.M{"_id": bson.M{"$in": oids}}, nil)
}

// UpdateUser applies the set fields and returns the updated document.
func (r *Repository) UpdateUser(ctx context.Context, params UpdateUserParams) (User, error) {
	oid, err := db.ObjectID(params.ID, msgUserNotFound)
	if err != nil {
		return User{}, err
	}

	set := bson.M{"updatedAt": r.now().UTC()}
	if params.Name != nil {
		set["name"] = *params.Name
	}
	if params.PasswordHash != nil {
		set["password"] = *params.PasswordHash
	}
	if params.Role != nil {
		set["role"] = *params.Role
	}

	var user User
	err = r.users.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		return User{}, db.MapError("users.Update", err, msgUserNotFound, msgEmailTaken)
	}
	return user, nil
}

// ListUsers returns all users, newest first.
func (r *Repository) ListUsers(ctx context.Context) ([]User, error) {
	return r.find(ctx, "users.List", bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

// CountUsers counts all users.
func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	n, err := r.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, db.MapError("users.Count", err, msgUserNotFound, msgEmailTaken)
	}
	return n, nil
}

func (r *Repository) findOne(ctx context.Context, op string, filter interface{}) (User, error) {
	var user User
	if err := r.users.FindOne(ctx, filter).Decode(&user); err != nil {
		return User{}, db.MapError(op, err, msgUserNotFound, msgEmailTaken)
	}
	return user, nil
}

func (r *Repository) find(ctx context.Context, op string, filter interface{}, opts *options.FindOptions) ([]User, error) {
	var findOpts []*options.FindOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}
	cursor, err := r.users.Find(ctx, filter, findOpts...)
	if err != nil {
		return nil, db.MapError(op, err, msgUserNotFound, msgEmailTaken)
	}
	defer cursor.Close(ctx)

	users := make([]User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, db.MapError(op, err, msgUserNotFound, msgEmailTaken)
	}
	return users, nil
}
