package postgres

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/merchbase/site-api/internal/domain"
)

// BlogPostRepo persists and loads blog posts from PostgreSQL. Listing uses
// squirrel to assemble the optional filters.
type BlogPostRepo struct{ Pool PgxPool }

// NewBlogPostRepo constructs a BlogPostRepo with the given pool.
func NewBlogPostRepo(p PgxPool) *BlogPostRepo { return &BlogPostRepo{Pool: p} }

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const blogColumns = `id, title, slug, category, content, COALESCE(excerpt,''), tags, keywords,
	status, featured, COALESCE(author_name,''), COALESCE(author_image_url,''),
	COALESCE(meta_title,''), COALESCE(meta_description,''), view_count, created_at, published_at`

// Create inserts a blog post and returns its id (generates one if empty).
func (r *BlogPostRepo) Create(ctx domain.Context, p domain.BlogPost) (string, error) {
	tracer := otel.Tracer("repo.blogposts")
	ctx, span := tracer.Start(ctx, "blogposts.Create")
	defer span.End()
	id := p.ID
	if id == "" {
		id = uuid.New().String()
	}
	status := p.Status
	if status == "" {
		status = domain.BlogStatusDraft
	}
	q := `INSERT INTO blog_posts (id, title, slug, category, content, excerpt, tags, keywords,
		status, featured, author_name, author_image_url, meta_title, meta_description,
		view_count, created_at, published_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		ON CONFLICT (slug) DO NOTHING`
	_, err := r.Pool.Exec(ctx, q, id, p.Title, p.Slug, p.Category, p.Content, p.Excerpt, p.Tags,
		p.Keywords, status, p.Featured, p.AuthorName, p.AuthorImageURL, p.MetaTitle,
		p.MetaDescription, p.ViewCount, time.Now().UTC(), p.PublishedAt)
	if err != nil {
		return "", fmt.Errorf("op=blogpost.create: %w", err)
	}
	return id, nil
}

// GetBySlug loads a single post by slug.
func (r *BlogPostRepo) GetBySlug(ctx domain.Context, slug string) (domain.BlogPost, error) {
	tracer := otel.Tracer("repo.blogposts")
	ctx, span := tracer.Start(ctx, "blogposts.GetBySlug")
	defer span.End()
	q := `SELECT ` + blogColumns + ` FROM blog_posts WHERE slug=$1`
	row := r.Pool.QueryRow(ctx, q, slug)
	p, err := scanBlogPost(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.BlogPost{}, fmt.Errorf("op=blogpost.get: %w", domain.ErrNotFound)
		}
		return domain.BlogPost{}, fmt.Errorf("op=blogpost.get: %w", err)
	}
	return p, nil
}

// List returns posts matching the filter, newest published first.
func (r *BlogPostRepo) List(ctx domain.Context, f domain.BlogFilter) ([]domain.BlogPost, error) {
	tracer := otel.Tracer("repo.blogposts")
	ctx, span := tracer.Start(ctx, "blogposts.List")
	defer span.End()
	b := psql.Select(blogColumns).From("blog_posts").OrderBy("published_at DESC NULLS LAST, created_at DESC")
	if f.Status != "" {
		b = b.Where(sq.Eq{"status": f.Status})
	}
	if f.Category != "" {
		b = b.Where(sq.Eq{"category": f.Category})
	}
	if f.Tag != "" {
		b = b.Where("? = ANY(tags)", f.Tag)
	}
	if f.Featured != nil {
		b = b.Where(sq.Eq{"featured": *f.Featured})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}
	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("op=blogpost.list: build: %w", err)
	}
	rows, err := r.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("op=blogpost.list: %w", err)
	}
	defer rows.Close()
	var out []domain.BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, fmt.Errorf("op=blogpost.list: scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=blogpost.list: rows: %w", err)
	}
	return out, nil
}

func scanBlogPost(row pgx.Row) (domain.BlogPost, error) {
	var p domain.BlogPost
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Category, &p.Content, &p.Excerpt, &p.Tags,
		&p.Keywords, &p.Status, &p.Featured, &p.AuthorName, &p.AuthorImageURL,
		&p.MetaTitle, &p.MetaDescription, &p.ViewCount, &p.CreatedAt, &p.PublishedAt)
	return p, err
}
