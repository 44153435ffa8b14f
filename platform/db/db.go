// Package db provides document store connection infrastructure.
// This is part of the platform layer and contains no business logic.
package db

import (
	"context"
	"errors"

	"travelnest_backend/platform/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names shared by repositories and index setup.
const (
	CollectionUsers          = "users"
	CollectionPackages       = "packages"
	CollectionDestinations   = "destinations"
	CollectionBookings       = "bookings"
	CollectionCustomRequests = "custompackagerequests"
	CollectionBlogs          = "blogs"
	CollectionRateLimits     = "ratelimits"
)

// Connect creates a pooled client and verifies the primary is reachable.
// The client is safe for concurrent use and should be created once per process.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*mongo.Client, error) {
	if cfg.GetMongoURI() == "" {
		return nil, errors.New("mongo uri is empty")
	}

	opts := options.Client().
		ApplyURI(cfg.GetMongoURI()).
		SetMaxPoolSize(cfg.GetMongoMaxPoolSize()).
		SetServerSelectionTimeout(cfg.GetMongoServerSelectionTimeout()).
		SetSocketTimeout(cfg.GetMongoSocketTimeout())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

// Database returns the configured database handle.
func Database(client *mongo.Client, cfg config.DatabaseConfig) *mongo.Database {
	return client.Database(cfg.GetMongoDatabase())
}

// Health adapts a client to the router's readiness check.
type Health struct {
	client *mongo.Client
}

// NewHealth wraps the client for /api/health.
func NewHealth(client *mongo.Client) *Health {
	return &Health{client: client}
}

// Ping checks the primary.
func (h *Health) Ping(ctx context.Context) error {
	return h.client.Ping(ctx, readpref.Primary())
}
