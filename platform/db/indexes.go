package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexSpec declares the indexes one collection needs.
type IndexSpec struct {
	Collection string
	Models     []mongo.IndexModel
}

// Indexes returns every index the application relies on. Unique keys back the
// email and slug invariants; the ratelimits TTL index expires counters at resetAt.
func Indexes() []IndexSpec {
	return []IndexSpec{
		{
			Collection: CollectionUsers,
			Models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_unique")},
			},
		},
		{
			Collection: CollectionPackages,
			Models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetName("slug_unique")},
				{Keys: bson.D{{Key: "featured", Value: -1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("featured_created")},
			},
		},
		{
			Collection: CollectionDestinations,
			Models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetName("slug_unique")},
			},
		},
		{
			Collection: CollectionBlogs,
			Models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetName("slug_unique")},
			},
		},
		{
			Collection: CollectionBookings,
			Models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("user_created")},
				{Keys: bson.D{{Key: "paymentStatus", Value: 1}}, Options: options.Index().SetName("payment_status")},
			},
		},
		{
			Collection: CollectionCustomRequests,
			Models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "createdAt", Value: -1}}, Options: options.Index().SetName("created_desc")},
				{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetName("user")},
			},
		},
		{
			Collection: CollectionRateLimits,
			Models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "ip", Value: 1}, {Key: "action", Value: 1}}, Options: options.Index().SetUnique(true).SetName("ip_action_unique")},
				{Keys: bson.D{{Key: "resetAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0).SetName("reset_at_ttl")},
			},
		},
	}
}

// EnsureIndexes creates any missing index. Existing indexes with the same
// definition are left untouched by the server.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	for _, spec := range Indexes() {
		if _, err := database.Collection(spec.Collection).Indexes().CreateMany(ctx, spec.Models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", spec.Collection, err)
		}
	}
	return nil
}
