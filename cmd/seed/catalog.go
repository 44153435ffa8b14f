package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	catalogrepo "travelnest_backend/internal/catalog/repository"
	"travelnest_backend/platform/validator"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Destinations []destinationEntry `yaml:"destinations"`
	Packages     []packageEntry     `yaml:"packages"`
	Blogs        []blogEntry        `yaml:"blogs"`
}

type destinationEntry struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Country     string `yaml:"country"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	Featured    bool   `yaml:"featured"`
}

type packageEntry struct {
	Title        string   `yaml:"title"`
	Slug         string   `yaml:"slug"`
	Description  string   `yaml:"description"`
	Price        float64  `yaml:"price"`
	Duration     int      `yaml:"duration"`
	Image        string   `yaml:"image"`
	Images       []string `yaml:"images"`
	Destination  string   `yaml:"destination"`
	Country      string   `yaml:"country"`
	Rating       float64  `yaml:"rating"`
	ReviewsCount int      `yaml:"reviewsCount"`
	Amenities    []string `yaml:"amenities"`
	MaxPeople    int      `yaml:"maxPeople"`
	Featured     bool     `yaml:"featured"`
}

type blogEntry struct {
	Title   string   `yaml:"title"`
	Slug    string   `yaml:"slug"`
	Excerpt string   `yaml:"excerpt"`
	Content string   `yaml:"content"`
	Image   string   `yaml:"image"`
	Author  string   `yaml:"author"`
	Tags    []string `yaml:"tags"`
}

type seedCounts struct {
	Destinations int
	Packages     int
	Blogs        int
}

// loadCatalog reads path, or the bundled catalog when path is blank.
func loadCatalog(path string) (catalogFile, error) {
	raw := defaultCatalog
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return catalogFile{}, fmt.Errorf("read seed file: %w", err)
		}
		raw = data
	}
	return parseCatalog(raw)
}

func parseCatalog(raw []byte) (catalogFile, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return catalogFile{}, fmt.Errorf("parse seed file: %w", err)
	}
	if err := file.validate(); err != nil {
		return catalogFile{}, err
	}
	return file, nil
}

func (f catalogFile) validate() error {
	seen := map[string]bool{}
	check := func(kind string, i int, slug string) error {
		slug = normalizeSlug(slug)
		if slug == "" {
			return fmt.Errorf("%s #%d: slug is required", kind, i+1)
		}
		if !validator.IsSlug(slug) {
			return fmt.Errorf("%s #%d: slug %q is not URL-safe", kind, i+1, slug)
		}
		key := kind + "/" + slug
		if seen[key] {
			return fmt.Errorf("%s #%d: duplicate slug %q", kind, i+1, slug)
		}
		seen[key] = true
		return nil
	}

	for i, d := range f.Destinations {
		if err := check("destination", i, d.Slug); err != nil {
			return err
		}
	}
	for i, p := range f.Packages {
		if err := check("package", i, p.Slug); err != nil {
			return err
		}
		if p.Price < 0 || p.Duration < 1 || p.MaxPeople < 1 {
			return fmt.Errorf("package %q: price, duration and maxPeople must be positive", p.Slug)
		}
	}
	for i, b := range f.Blogs {
		if err := check("blog", i, b.Slug); err != nil {
			return err
		}
	}
	return nil
}

// seedCatalog upserts every entry by slug; running it twice leaves one
// document per slug.
func seedCatalog(ctx context.Context, repo catalogrepo.Repository, file catalogFile) (seedCounts, error) {
	var counts seedCounts

	for _, d := range file.Destinations {
		if err := repo.UpsertDestinationBySlug(ctx, catalogrepo.DestinationFields{
			Name:        d.Name,
			Slug:        normalizeSlug(d.Slug),
			Country:     d.Country,
			Description: d.Description,
			Image:       d.Image,
			Featured:    d.Featured,
		}); err != nil {
			return counts, fmt.Errorf("destination %q: %w", d.Slug, err)
		}
		counts.Destinations++
	}

	for _, p := range file.Packages {
		if err := repo.UpsertPackageBySlug(ctx, catalogrepo.PackageFields{
			Title:        p.Title,
			Slug:         normalizeSlug(p.Slug),
			Description:  p.Description,
			Price:        p.Price,
			Duration:     p.Duration,
			Image:        p.Image,
			Images:       p.Images,
			Destination:  p.Destination,
			Country:      p.Country,
			Rating:       p.Rating,
			ReviewsCount: p.ReviewsCount,
			Amenities:    p.Amenities,
			MaxPeople:    p.MaxPeople,
			Featured:     p.Featured,
		}); err != nil {
			return counts, fmt.Errorf("package %q: %w", p.Slug, err)
		}
		counts.Packages++
	}

	for _, b := range file.Blogs {
		if err := repo.UpsertBlogPostBySlug(ctx, catalogrepo.BlogFields{
			Title:   b.Title,
			Slug:    normalizeSlug(b.Slug),
			Content: b.Content,
			Excerpt: b.Excerpt,
			Image:   b.Image,
			Author:  b.Author,
			Tags:    b.Tags,
		}); err != nil {
			return counts, fmt.Errorf("blog %q: %w", b.Slug, err)
		}
		counts.Blogs++
	}

	return counts, nil
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
