package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/merchbase/site-api/internal/domain"
)

type seedPost struct {
	Title           string     `yaml:"title"`
	Slug            string     `yaml:"slug"`
	Category        string     `yaml:"category"`
	Content         string     `yaml:"content"`
	Excerpt         string     `yaml:"excerpt"`
	Tags            []string   `yaml:"tags"`
	Keywords        []string   `yaml:"keywords"`
	Status          string     `yaml:"status"`
	Featured        bool       `yaml:"featured"`
	AuthorName      string     `yaml:"author_name"`
	AuthorImageURL  string     `yaml:"author_image_url"`
	MetaTitle       string     `yaml:"meta_title"`
	MetaDescription string     `yaml:"meta_description"`
	PublishedAt     *time.Time `yaml:"published_at"`
}

type seedFile struct {
	Posts []seedPost `yaml:"posts"`
}

// seedBlog loads blog posts from a YAML file at startup. Inserts are
// idempotent on slug, so reseeding an existing database is a no-op.
func seedBlog(ctx context.Context, repo domain.BlogPostRepository, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("op=seedBlog read: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("op=seedBlog parse: %w", err)
	}
	for _, p := range f.Posts {
		if p.Slug == "" || p.Title == "" {
			slog.Warn("skipping seed post without slug or title", slog.String("title", p.Title))
			continue
		}
		_, err := repo.Create(ctx, domain.BlogPost{
			Title:           p.Title,
			Slug:            p.Slug,
			Category:        p.Category,
			Content:         p.Content,
			Excerpt:         p.Excerpt,
			Tags:            p.Tags,
			Keywords:        p.Keywords,
			Status:          p.Status,
			Featured:        p.Featured,
			AuthorName:      p.AuthorName,
			AuthorImageURL:  p.AuthorImageURL,
			MetaTitle:       p.MetaTitle,
			MetaDescription: p.MetaDescription,
			PublishedAt:     p.PublishedAt,
		})
		if err != nil {
			return fmt.Errorf("op=seedBlog create %s: %w", p.Slug, err)
		}
	}
	slog.Info("blog seed complete", slog.Int("posts", len(f.Posts)))
	return nil
}
