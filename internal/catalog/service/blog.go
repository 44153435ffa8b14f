package service

import (
	"context"
	"strings"

	"travelnest_backend/internal/catalog/repository"
	"travelnest_backend/internal/catalog/transport"
	"travelnest_backend/platform/sanitize"
)

// ListBlogPosts returns posts newest first.
func (s *Service) ListBlogPosts(ctx context.Context) ([]transport.BlogPostResponse, error) {
	posts, err := s.repo.ListBlogPosts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]transport.BlogPostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toBlogPostResponse(p))
	}
	return out, nil
}

// GetBlogPost returns a post by slug.
func (s *Service) GetBlogPost(ctx context.Context, slug string) (transport.BlogPostResponse, error) {
	post, err := s.repo.GetBlogPostBySlug(ctx, slug)
	if err != nil {
		return transport.BlogPostResponse{}, err
	}
	return toBlogPostResponse(post), nil
}

// CreateBlogPost publishes a post. Content is stored as written; excerpts
// and titles are stripped of markup.
func (s *Service) CreateBlogPost(ctx context.Context, req transport.CreateBlogPostRequest) (transport.CreatedResponse, error) {
	fields := repository.BlogFields{
		Title:   sanitize.Text(req.Title),
		Slug:    normalizeSlug(req.Slug),
		Content: strings.TrimSpace(req.Content),
		Excerpt: sanitize.Text(req.Excerpt),
		Image:   strings.TrimSpace(req.Image),
		Author:  sanitize.Text(req.Author),
		Tags:    sanitize.Strings(req.Tags),
	}
	checks := lengthChecks{}
	checks.min("title", fields.Title, 2)
	checks.min("content", fields.Content, 10)
	checks.min("excerpt", fields.Excerpt, 2)
	checks.min("author", fields.Author, 2)
	if err := checks.err(); err != nil {
		return transport.CreatedResponse{}, err
	}
	if err := s.ensureSlugFree(ctx, s.repo.BlogSlugExists, fields.Slug); err != nil {
		return transport.CreatedResponse{}, err
	}

	post, err := s.repo.CreateBlogPost(ctx, fields)
	if err != nil {
		return transport.CreatedResponse{}, err
	}

	s.log.Info("blog post created", "id", post.ID.Hex(), "slug", post.Slug)
	return transport.CreatedResponse{Message: "Blog post created", ID: post.ID.Hex()}, nil
}

func toBlogPostResponse(p repository.BlogPost) transport.BlogPostResponse {
	return transport.BlogPostResponse{
		ID:        p.ID.Hex(),
		Title:     p.Title,
		Slug:      p.Slug,
		Content:   p.Content,
		Excerpt:   p.Excerpt,
		Image:     p.Image,
		Author:    p.Author,
		Tags:      nonNil(p.Tags),
		CreatedAt: p.CreatedAt,
	}
}
