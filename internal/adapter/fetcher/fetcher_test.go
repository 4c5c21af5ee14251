package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/merchbase/site-api/internal/adapter/fetcher"
)

func TestFetch_EmptyURL_NoCall(t *testing.T) {
	t.Parallel()
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := fetcher.New(time.Second, "Test Bot/1.0")
	got := c.Fetch(context.Background(), "")
	assert.Empty(t, got)
	assert.False(t, called)
}

func TestFetch_Success_SetsUserAgent(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Test Bot/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("<html>hello</html>"))
	}))
	defer srv.Close()

	c := fetcher.New(time.Second, "Test Bot/1.0")
	got := c.Fetch(context.Background(), srv.URL)
	assert.Equal(t, "<html>hello</html>", got)
}

func TestFetch_Unreachable_ReturnsPlaceholder(t *testing.T) {
	t.Parallel()
	c := fetcher.New(200*time.Millisecond, "Test Bot/1.0")
	got := c.Fetch(context.Background(), "http://127.0.0.1:1")
	assert.Equal(t, fetcher.Placeholder, got)
}

func TestFetch_Non2xx_ReturnsPlaceholder(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := fetcher.New(time.Second, "Test Bot/1.0")
	assert.Equal(t, fetcher.Placeholder, c.Fetch(context.Background(), srv.URL))
}

func TestFetch_LargeBody_TruncatedTo50000(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// 2MB response
		chunk := strings.Repeat("x", 1024)
		for i := 0; i < 2048; i++ {
			_, _ = w.Write([]byte(chunk))
		}
	}))
	defer srv.Close()

	c := fetcher.New(5*time.Second, "Test Bot/1.0")
	got := c.Fetch(context.Background(), srv.URL)
	assert.Len(t, got, fetcher.MaxChars)
}
