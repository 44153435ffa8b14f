package repository

import (
	"context"
	"regexp"
	"time"

	"travelnest_backend/platform/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	msgPackageNotFound     = "Package not found"
	msgDestinationNotFound = "Destination not found"
	msgBlogNotFound        = "Blog post not found"
	msgSlugTaken           = "Slug already exists"
)

// Repo is the Mongo-backed catalog repository.
type Repo struct {
	packages     *mongo.Collection
	destinations *mongo.Collection
	blogs        *mongo.Collection
	now          func() time.Time
}

// New creates a catalog repository.
func New(database *mongo.Database) *Repo {
	return &Repo{
		packages:     database.Collection(db.CollectionPackages),
		destinations: database.Collection(db.CollectionDestinations),
		blogs:        database.Collection(db.CollectionBlogs),
		now:          time.Now,
	}
}

var _ Repository = (*Repo)(nil)

// CreatePackage inserts a package. A duplicate slug is a Conflict.
func (r *Repo) CreatePackage(ctx context.Context, fields PackageFields) (Package, error) {
	now := r.now().UTC()
	pkg := packageFromFields(fields)
	pkg.CreatedAt = now
	pkg.UpdatedAt = now

	res, err := r.packages.InsertOne(ctx, pkg)
	if err != nil {
		return Package{}, db.MapError("packages.Create", err, msgPackageNotFound, msgSlugTaken)
	}
	pkg.ID = res.InsertedID.(primitive.ObjectID)
	return pkg, nil
}

// UpdatePackage sets the given fields and returns the updated package.
func (r *Repo) UpdatePackage(ctx context.Context, params UpdatePackageParams) (Package, error) {
	oid, err := db.ObjectID(params.ID, msgPackageNotFound)
	if err != nil {
		return Package{}, err
	}

	set := bson.M{"updatedAt": r.now().UTC()}
	setIf(set, "title", params.Title)
	setIf(set, "slug", params.Slug)
	setIf(set, "description", params.Description)
	setIf(set, "price", params.Price)
	setIf(set, "duration", params.Duration)
	setIf(set, "image", params.Image)
	setIf(set, "images", params.Images)
	setIf(set, "destination", params.Destination)
	setIf(set, "country", params.Country)
	setIf(set, "amenities", params.Amenities)
	setIf(set, "maxPeople", params.MaxPeople)
	setIf(set, "featured", params.Featured)

	var pkg Package
	err = r.packages.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&pkg)
	if err != nil {
		return Package{}, db.MapError("packages.Update", err, msgPackageNotFound, msgSlugTaken)
	}
	return pkg, nil
}

// DeletePackage removes a package by ID.
func (r *Repo) DeletePackage(ctx context.Context, id string) error {
	oid, err := db.ObjectID(id, msgPackageNotFound)
	if err != nil {
		return err
	}
	res, err := r.packages.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return db.MapError("packages.Delete", err, msgPackageNotFound, msgSlugTaken)
	}
	if res.DeletedCount == 0 {
		return db.MapError("packages.Delete", mongo.ErrNoDocuments, msgPackageNotFound, msgSlugTaken)
	}
	return nil
}

// GetPackageByID loads a package by hex ID.
func (r *Repo) GetPackageByID(ctx context.Context, id string) (Package, error) {
	oid, err := db.ObjectID(id, msgPackageNotFound)
	if err != nil {
		return Package{}, err
	}
	return r.findPackage(ctx, "packages.GetByID", bson.M{"_id": oid})
}

// GetPackageBySlug loads a package by slug.
func (r *Repo) GetPackageBySlug(ctx context.Context, slug string) (Package, error) {
	return r.findPackage(ctx, "packages.GetBySlug", bson.M{"slug": slug})
}

// GetPackagesByIDs loads every listed package. Unknown IDs are skipped.
func (r *Repo) GetPackagesByIDs(ctx context.Context, ids []string) ([]Package, error) {
	oids := db.ObjectIDs(ids)
	if len(oids) == 0 {
		return []Package{}, nil
	}
	return findAll[Package](ctx, r.packages, "packages.GetByIDs", bson.M{"_id": bson.M{"$in": oids}}, nil, msgPackageNotFound)
}

// ListPackages applies the public filters, featured first then newest.
func (r *Repo) ListPackages(ctx context.Context, params ListPackagesParams) ([]Package, error) {
	filter := bson.M{}
	if params.Destination != "" {
		filter["destination"] = primitive.Regex{Pattern: regexp.QuoteMeta(params.Destination), Options: "i"}
	}
	price := bson.M{}
	if params.MinPrice != nil {
		price["$gte"] = *params.MinPrice
	}
	if params.MaxPrice != nil {
		price["$lte"] = *params.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}
	if params.Featured != nil {
		filter["featured"] = *params.Featured
	}

	opts := options.Find().SetSort(bson.D{{Key: "featured", Value: -1}, {Key: "createdAt", Value: -1}})
	if params.Limit > 0 {
		opts.SetLimit(params.Limit)
	}
	return findAll[Package](ctx, r.packages, "packages.List", filter, opts, msgPackageNotFound)
}

// CountPackages counts all packages.
func (r *Repo) CountPackages(ctx context.Context) (int64, error) {
	n, err := r.packages.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, db.MapError("packages.Count", err, msgPackageNotFound, msgSlugTaken)
	}
	return n, nil
}

// PackageSlugExists reports whether any package uses slug.
func (r *Repo) PackageSlugExists(ctx context.Context, slug string) (bool, error) {
	return exists(ctx, r.packages, "packages.SlugExists", slug)
}

// UpsertPackageBySlug inserts or replaces the package carrying fields.Slug.
func (r *Repo) UpsertPackageBySlug(ctx context.Context, fields PackageFields) error {
	now := r.now().UTC()
	pkg := packageFromFields(fields)
	pkg.UpdatedAt = now

	return upsertBySlug(ctx, r.packages, "packages.Upsert", fields.Slug, pkg, now)
}

func (r *Repo) findPackage(ctx context.Context, op string, filter interface{}) (Package, error) {
	var pkg Package
	if err := r.packages.FindOne(ctx, filter).Decode(&pkg); err != nil {
		return Package{}, db.MapError(op, err, msgPackageNotFound, msgSlugTaken)
	}
	return pkg, nil
}

func packageFromFields(f PackageFields) Package {
	return Package{
		Title:        f.Title,
		Slug:         f.Slug,
		Description:  f.Description,
		Price:        f.Price,
		Duration:     f.Duration,
		Image:        f.Image,
		Images:       nonNil(f.Images),
		Destination:  f.Destination,
		Country:      f.Country,
		Rating:       f.Rating,
		ReviewsCount: f.ReviewsCount,
		Amenities:    nonNil(f.Amenities),
		MaxPeople:    f.MaxPeople,
		Featured:     f.Featured,
	}
}

func setIf[T any](set bson.M, key string, value *T) {
	if value != nil {
		set[key] = *value
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func exists(ctx context.Context, coll *mongo.Collection, op, slug string) (bool, error) {
	n, err := coll.CountDocuments(ctx, bson.M{"slug": slug}, options.Count().SetLimit(1))
	if err != nil {
		return false, db.MapError(op, err, "", msgSlugTaken)
	}
	return n > 0, nil
}

// upsertBySlug writes doc under slug, keeping createdAt from the first insert.
func upsertBySlug(ctx context.Context, coll *mongo.Collection, op, slug string, doc interface{}, now time.Time) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return db.MapError(op, err, "", msgSlugTaken)
	}
	var set bson.M
	if err := bson.Unmarshal(raw, &set); err != nil {
		return db.MapError(op, err, "", msgSlugTaken)
	}
	delete(set, "_id")
	delete(set, "createdAt")

	_, err = coll.UpdateOne(ctx,
		bson.M{"slug": slug},
		bson.M{"$set": set, "$setOnInsert": bson.M{"createdAt": now}},
		options.Update().SetUpsert(true),
	)
	return db.MapError(op, err, "", msgSlugTaken)
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, op string, filter interface{}, opts *options.FindOptions, notFound string) ([]T, error) {
	var findOpts []*options.FindOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}
	cursor, err := coll.Find(ctx, filter, findOpts...)
	if err != nil {
		return nil, db.MapError(op, err, notFound, msgSlugTaken)
	}
	defer cursor.Close(ctx)

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, db.MapError(op, err, notFound, msgSlugTaken)
	}
	return out, nil
}
