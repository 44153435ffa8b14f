package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Package is a bookable travel offering.
type Package struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Slug         string             `bson:"slug"`
	Description  string             `bson:"description"`
	Price        float64            `bson:"price"`
	Duration     int                `bson:"duration"`
	Image        string             `bson:"image"`
	Images       []string           `bson:"images"`
	Destination  string             `bson:"destination"`
	Country      string             `bson:"country"`
	Rating       float64            `bson:"rating"`
	ReviewsCount int                `bson:"reviewsCount"`
	Amenities    []string           `bson:"amenities"`
	MaxPeople    int                `bson:"maxPeople"`
	Featured     bool               `bson:"featured"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

// Destination is a place listing.
type Destination struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Slug        string             `bson:"slug"`
	Country     string             `bson:"country"`
	Description string             `bson:"description"`
	Image       string             `bson:"image"`
	Featured    bool               `bson:"featured"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// BlogPost is a travel article.
type BlogPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Slug      string             `bson:"slug"`
	Content   string             `bson:"content"`
	Excerpt   string             `bson:"excerpt"`
	Image     string             `bson:"image"`
	Author    string             `bson:"author"`
	Tags      []string           `bson:"tags"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// PackageFields holds every admin-editable package field.
type PackageFields struct {
	Title        string
	Slug         string
	Description  string
	Price        float64
	Duration     int
	Image        string
	Images       []string
	Destination  string
	Country      string
	Rating       float64
	ReviewsCount int
	Amenities    []string
	MaxPeople    int
	Featured     bool
}

// UpdatePackageParams carries the fields an update sets. Nil means unchanged.
type UpdatePackageParams struct {
	ID          string
	Title       *string
	Slug        *string
	Description *string
	Price       *float64
	Duration    *int
	Image       *string
	Images      *[]string
	Destination *string
	Country     *string
	Amenities   *[]string
	MaxPeople   *int
	Featured    *bool
}

// ListPackagesParams filters the public package listing.
type ListPackagesParams struct {
	Destination string
	MinPrice    *float64
	MaxPrice    *float64
	Featured    *bool
	Limit       int64
}

// DestinationFields holds every admin-editable destination field.
type DestinationFields struct {
	Name        string
	Slug        string
	Country     string
	Description string
	Image       string
	Featured    bool
}

// UpdateDestinationParams carries the fields an update sets.
type UpdateDestinationParams struct {
	ID          string
	Name        *string
	Slug        *string
	Country     *string
	Description *string
	Image       *string
	Featured    *bool
}

// BlogFields holds every blog post field.
type BlogFields struct {
	Title   string
	Slug    string
	Content string
	Excerpt string
	Image   string
	Author  string
	Tags    []string
}

// Repository defines catalog storage operations.
type Repository interface {
	CreatePackage(ctx context.Context, fields PackageFields) (Package, error)
	UpdatePackage(ctx context.Context, params UpdatePackageParams) (Package, error)
	DeletePackage(ctx context.Context, id string) error
	GetPackageByID(ctx context.Context, id string) (Package, error)
	GetPackageBySlug(ctx context.Context, slug string) (Package, error)
	GetPackagesByIDs(ctx context.Context, ids []string) ([]Package, error)
	ListPackages(ctx context.Context, params ListPackagesParams) ([]Package, error)
	CountPackages(ctx context.Context) (int64, error)
	PackageSlugExists(ctx context.Context, slug string) (bool, error)
	UpsertPackageBySlug(ctx context.Context, fields PackageFields) error

	CreateDestination(ctx context.Context, fields DestinationFields) (Destination, error)
	UpdateDestination(ctx context.Context, params UpdateDestinationParams) (Destination, error)
	DeleteDestination(ctx context.Context, id string) error
	ListDestinations(ctx context.Context) ([]Destination, error)
	DestinationSlugExists(ctx context.Context, slug string) (bool, error)
	UpsertDestinationBySlug(ctx context.Context, fields DestinationFields) error

	CreateBlogPost(ctx context.Context, fields BlogFields) (BlogPost, error)
	GetBlogPostBySlug(ctx context.Context, slug string) (BlogPost, error)
	ListBlogPosts(ctx context.Context) ([]BlogPost, error)
	BlogSlugExists(ctx context.Context, slug string) (bool, error)
	UpsertBlogPostBySlug(ctx context.Context, fields BlogFields) error
}
