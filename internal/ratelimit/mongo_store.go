package ratelimit

import (
	"context"
	"errors"
	"time"

	"travelnest_backend/platform/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps counters in the ratelimits collection, which carries a
// TTL index on resetAt.
type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoStore creates a store on database.
func NewMongoStore(database *mongo.Database) *MongoStore {
	return &MongoStore{coll: database.Collection(db.CollectionRateLimits), now: time.Now}
}

// Find returns the live window. Expired documents the TTL monitor has not
// swept yet are ignored.
func (s *MongoStore) Find(ctx context.Context, ip, action string) (*Record, error) {
	filter := bson.M{"ip": ip, "action": action, "resetAt": bson.M{"$gt": s.now()}}

	var rec Record
	if err := s.coll.FindOne(ctx, filter).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Create starts a window, replacing any stale document for the key.
func (s *MongoStore) Create(ctx context.Context, ip, action string, resetAt time.Time) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"ip": ip, "action": action},
		bson.M{"$set": bson.M{"count": 1, "resetAt": resetAt}},
		options.Update().SetUpsert(true),
	)
	return err
}

// Increment bumps the counter.
func (s *MongoStore) Increment(ctx context.Context, ip, action string) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"ip": ip, "action": action}, bson.M{"$inc": bson.M{"count": 1}})
	return err
}
