package repository

import (
	"context"

	"travelnest_backend/platform/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateDestination inserts a destination. A duplicate slug is a Conflict.
func (r *Repo) CreateDestination(ctx context.Context, fields DestinationFields) (Destination, error) {
	now := r.now().UTC()
	dest := destinationFromFields(fields)
	dest.CreatedAt = now
	dest.UpdatedAt = now

	res, err := r.destinations.InsertOne(ctx, dest)
	if err != nil {
		return Destination{}, db.MapError("destinations.Create", err, msgDestinationNotFound, msgSlugTaken)
	}
	dest.ID = res.InsertedID.(primitive.ObjectID)
	return dest, nil
}

// UpdateDestination sets the given fields and returns the updated destination.
func (r *Repo) UpdateDestination(ctx context.Context, params UpdateDestinationParams) (Destination, error) {
	oid, err := db.ObjectID(params.ID, msgDestinationNotFound)
	if err != nil {
		return Destination{}, err
	}

	set := bson.M{"updatedAt": r.now().UTC()}
	setIf(set, "name", params.Name)
	setIf(set, "slug", params.Slug)
	setIf(set, "country", params.Country)
	setIf(set, "description", params.Description)
	setIf(set, "image", params.Image)
	setIf(set, "featured", params.Featured)

	var dest Destination
	err = r.destinations.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&dest)
	if err != nil {
		return Destination{}, db.MapError("destinations.Update", err, msgDestinationNotFound, msgSlugTaken)
	}
	return dest, nil
}

// DeleteDestination removes a destination by ID.
func (r *Repo) DeleteDestination(ctx context.Context, id string) error {
	oid, err := db.ObjectID(id, msgDestinationNotFound)
	if err != nil {
		return err
	}
	res, err := r.destinations.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return db.MapError("destinations.Delete", err, msgDestinationNotFound, msgSlugTaken)
	}
	if res.DeletedCount == 0 {
		return db.MapError("destinations.Delete", mongo.ErrNoDocuments, msgDestinationNotFound, msgSlugTaken)
	}
	return nil
}

// ListDestinations returns featured destinations first, then by name.
func (r *Repo) ListDestinations(ctx context.Context) ([]Destination, error) {
	opts := options.Find().SetSort(bson.D{{Key: "featured", Value: -1}, {Key: "name", Value: 1}})
	return findAll[Destination](ctx, r.destinations, "destinations.List", bson.M{}, opts, msgDestinationNotFound)
}

// DestinationSlugExists reports whether any destination uses slug.
func (r *Repo) DestinationSlugExists(ctx context.Context, slug string) (bool, error) {
	return exists(ctx, r.destinations, "destinations.SlugExists", slug)
}

// UpsertDestinationBySlug inserts or replaces the destination carrying fields.Slug.
func (r *Repo) UpsertDestinationBySlug(ctx context.Context, fields DestinationFields) error {
	now := r.now().UTC()
	dest := destinationFromFields(fields)
	dest.UpdatedAt = now

	return upsertBySlug(ctx, r.destinations, "destinations.Upsert", fields.Slug, dest, now)
}

func destinationFromFields(f DestinationFields) Destination {
	return Destination{
		Name:        f.Name,
		Slug:        f.Slug,
		Country:     f.Country,
		Description: f.Description,
		Image:       f.Image,
		Featured:    f.Featured,
	}
}
