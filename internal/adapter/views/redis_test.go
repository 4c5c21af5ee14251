package views_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchbase/site-api/internal/adapter/views"
)

func newCounter(t *testing.T) *views.Counter {
	t.Helper()
	mr := miniredis.RunT(t)
	return views.New(mr.Addr())
}

func TestCounter_IncrementAndGet(t *testing.T) {
	t.Parallel()
	c := newCounter(t)
	ctx := context.Background()

	n, err := c.Increment(ctx, "seo-basics")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = c.Increment(ctx, "seo-basics")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := c.Get(ctx, "seo-basics")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)
}

func TestCounter_Get_NeverViewed(t *testing.T) {
	t.Parallel()
	c := newCounter(t)
	got, err := c.Get(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestCounter_SlugsAreIndependent(t *testing.T) {
	t.Parallel()
	c := newCounter(t)
	ctx := context.Background()

	_, err := c.Increment(ctx, "a")
	require.NoError(t, err)
	got, err := c.Get(ctx, "b")
	require.NoError(t, err)
	assert.Zero(t, got)
}
