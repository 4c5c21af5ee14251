package postgres_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchbase/site-api/internal/adapter/repo/postgres"
	"github.com/merchbase/site-api/internal/domain"
)

func TestBlogPostRepo_Create_DefaultsToDraft(t *testing.T) {
	t.Parallel()
	pool := &poolStub{}
	repo := postgres.NewBlogPostRepo(pool)
	id, err := repo.Create(context.Background(), domain.BlogPost{Title: "T", Slug: "t", Category: "Web", Content: "body"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Contains(t, pool.execArgs, domain.BlogStatusDraft)
}

func TestBlogPostRepo_GetBySlug_NotFound(t *testing.T) {
	t.Parallel()
	pool := &poolStub{row: rowStub{scan: func(_ ...any) error { return pgx.ErrNoRows }}}
	repo := postgres.NewBlogPostRepo(pool)
	_, err := repo.GetBySlug(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlogPostRepo_List_BuildsFilters(t *testing.T) {
	t.Parallel()
	pool := &poolStub{rows: &rowsStub{}}
	repo := postgres.NewBlogPostRepo(pool)
	featured := true
	_, err := repo.List(context.Background(), domain.BlogFilter{
		Status:   domain.BlogStatusPublished,
		Category: "SEO",
		Tag:      "design",
		Featured: &featured,
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Contains(t, pool.querySQL, "status = $")
	assert.Contains(t, pool.querySQL, "category = $")
	assert.Contains(t, pool.querySQL, "ANY(tags)")
	assert.Contains(t, pool.querySQL, "LIMIT 10")
}
