package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/merchbase/site-api/internal/domain"
	"github.com/merchbase/site-api/internal/usecase"
)

func publishedPost() domain.BlogPost {
	return domain.BlogPost{ID: "p-1", Title: "SEO Basics", Slug: "seo-basics", Status: domain.BlogStatusPublished}
}

func TestBlogList_ForcesPublishedStatus(t *testing.T) {
	t.Parallel()
	repo := &mockBlogRepo{}
	views := &mockViews{}
	repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.BlogFilter) bool {
		return f.Status == domain.BlogStatusPublished && f.Limit == 20
	})).Return([]domain.BlogPost{publishedPost()}, nil)
	views.On("Get", mock.Anything, "seo-basics").Return(int64(7), nil)

	svc := usecase.NewBlogService(repo, views)
	posts, err := svc.List(context.Background(), domain.BlogFilter{Status: domain.BlogStatusDraft})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(7), posts[0].ViewCount)
}

func TestBlogList_DerivesMissingExcerptFromContent(t *testing.T) {
	t.Parallel()
	repo := &mockBlogRepo{}
	views := &mockViews{}
	long := publishedPost()
	long.Content = "First sentence about titles.\n\n" + strings.Repeat("More detail on metadata. ", 20)
	short := publishedPost()
	short.ID, short.Slug = "p-2", "alt-text"
	short.Excerpt = "Hand-written summary."
	repo.On("List", mock.Anything, mock.Anything).Return([]domain.BlogPost{long, short}, nil)
	views.On("Get", mock.Anything, mock.Anything).Return(int64(0), nil)

	svc := usecase.NewBlogService(repo, views)
	posts, err := svc.List(context.Background(), domain.BlogFilter{})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.True(t, strings.HasPrefix(posts[0].Excerpt, "First sentence about titles. More detail"))
	assert.True(t, strings.HasSuffix(posts[0].Excerpt, "..."))
	assert.LessOrEqual(t, len([]rune(posts[0].Excerpt)), 203)
	assert.Equal(t, "Hand-written summary.", posts[1].Excerpt)
}

func TestBlogGetBySlug_IncrementsViews(t *testing.T) {
	t.Parallel()
	repo := &mockBlogRepo{}
	views := &mockViews{}
	repo.On("GetBySlug", mock.Anything, "seo-basics").Return(publishedPost(), nil)
	views.On("Increment", mock.Anything, "seo-basics").Return(int64(8), nil)

	svc := usecase.NewBlogService(repo, views)
	p, err := svc.GetBySlug(context.Background(), "seo-basics")
	require.NoError(t, err)
	assert.Equal(t, int64(8), p.ViewCount)
}

func TestBlogGetBySlug_DraftHidden(t *testing.T) {
	t.Parallel()
	repo := &mockBlogRepo{}
	draft := publishedPost()
	draft.Status = domain.BlogStatusDraft
	repo.On("GetBySlug", mock.Anything, "seo-basics").Return(draft, nil)

	svc := usecase.NewBlogService(repo, &mockViews{})
	_, err := svc.GetBySlug(context.Background(), "seo-basics")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlogGetBySlug_ViewFailureIsBestEffort(t *testing.T) {
	t.Parallel()
	repo := &mockBlogRepo{}
	views := &mockViews{}
	repo.On("GetBySlug", mock.Anything, "seo-basics").Return(publishedPost(), nil)
	views.On("Increment", mock.Anything, "seo-basics").Return(int64(0), errors.New("redis down"))

	svc := usecase.NewBlogService(repo, views)
	p, err := svc.GetBySlug(context.Background(), "seo-basics")
	require.NoError(t, err)
	assert.Equal(t, "seo-basics", p.Slug)
}

func TestBlogGetBySlug_EmptySlug(t *testing.T) {
	t.Parallel()
	svc := usecase.NewBlogService(&mockBlogRepo{}, &mockViews{})
	_, err := svc.GetBySlug(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
