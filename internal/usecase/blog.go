package usecase

import (
	"fmt"

	"log/slog"

	"github.com/merchbase/site-api/internal/domain"
	"github.com/merchbase/site-api/pkg/textx"
)

// BlogService serves the public blog surface. Listings and reads expose
// published posts only; drafts exist solely for seeding and authoring.
type BlogService struct {
	Repo  domain.BlogPostRepository
	Views domain.ViewCounter
}

// NewBlogService constructs a BlogService with its dependencies.
func NewBlogService(r domain.BlogPostRepository, v domain.ViewCounter) BlogService {
	return BlogService{Repo: r, Views: v}
}

const (
	maxListLimit  = 100
	excerptMaxLen = 200
)

// List returns published posts matching the filter. The status filter is
// forced to published regardless of input.
func (s BlogService) List(ctx domain.Context, f domain.BlogFilter) ([]domain.BlogPost, error) {
	f.Status = domain.BlogStatusPublished
	if f.Limit <= 0 || f.Limit > maxListLimit {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	posts, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].ViewCount = s.viewCount(ctx, posts[i].Slug)
		// Authors may omit the excerpt; derive one from the body.
		if posts[i].Excerpt == "" {
			posts[i].Excerpt = textx.Excerpt(posts[i].Content, excerptMaxLen)
		}
	}
	return posts, nil
}

// GetBySlug returns one published post and records the view. Draft posts are
// reported as not found so the slug space leaks nothing.
func (s BlogService) GetBySlug(ctx domain.Context, slug string) (domain.BlogPost, error) {
	if slug == "" {
		return domain.BlogPost{}, fmt.Errorf("%w: empty slug", domain.ErrInvalidArgument)
	}
	p, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return domain.BlogPost{}, err
	}
	if p.Status != domain.BlogStatusPublished {
		return domain.BlogPost{}, fmt.Errorf("%w: post %s", domain.ErrNotFound, slug)
	}
	n, err := s.Views.Increment(ctx, slug)
	if err != nil {
		// View counting is best-effort; never fail a read over it.
		slog.Warn("view increment failed", slog.String("slug", slug), slog.Any("error", err))
		n = p.ViewCount
	}
	p.ViewCount = n
	return p, nil
}

func (s BlogService) viewCount(ctx domain.Context, slug string) int64 {
	n, err := s.Views.Get(ctx, slug)
	if err != nil {
		slog.Warn("view count lookup failed", slog.String("slug", slug), slog.Any("error", err))
		return 0
	}
	return n
}
