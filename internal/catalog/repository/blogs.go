package repository

import (
	"context"

	"travelnest_backend/platform/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateBlogPost inserts a post. A duplicate slug is a Conflict.
func (r *Repo) CreateBlogPost(ctx context.Context, fields BlogFields) (BlogPost, error) {
	now := r.now().UTC()
	post := blogFromFields(fields)
	post.CreatedAt = now
	post.UpdatedAt = now

	res, err := r.blogs.InsertOne(ctx, post)
	if err != nil {
		return BlogPost{}, db.MapError("blogs.Create", err, msgBlogNotFound, msgSlugTaken)
	}
	post.ID = res.InsertedID.(primitive.ObjectID)
	return post, nil
}

// GetBlogPostBySlug loads a post by slug.
func (r *Repo) GetBlogPostBySlug(ctx context.Context, slug string) (BlogPost, error) {
	var post BlogPost
	if err := r.blogs.FindOne(ctx, bson.M{"slug": slug}).Decode(&post); err != nil {
		return BlogPost{}, db.MapError("blogs.GetBySlug", err, msgBlogNotFound, msgSlugTaken)
	}
	return post, nil
}

// ListBlogPosts returns posts newest first.
func (r *Repo) ListBlogPosts(ctx context.Context) ([]BlogPost, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[BlogPost](ctx, r.blogs, "blogs.List", bson.M{}, opts, msgBlogNotFound)
}

// BlogSlugExists reports whether any post uses slug.
func (r *Repo) BlogSlugExists(ctx context.Context, slug string) (bool, error) {
	return exists(ctx, r.blogs, "blogs.SlugExists", slug)
}

// UpsertBlogPostBySlug inserts or replaces the post carrying fields.Slug.
func (r *Repo) UpsertBlogPostBySlug(ctx context.Context, fields BlogFields) error {
	now := r.now().UTC()
	post := blogFromFields(fields)
	post.UpdatedAt = now

	return upsertBySlug(ctx, r.blogs, "blogs.Upsert", fields.Slug, post, now)
}

func blogFromFields(f BlogFields) BlogPost {
	return BlogPost{
		Title:   f.Title,
		Slug:    f.Slug,
		Content: f.Content,
		Excerpt: f.Excerpt,
		Image:   f.Image,
		Author:  f.Author,
		Tags:    nonNil(f.Tags),
	}
}
