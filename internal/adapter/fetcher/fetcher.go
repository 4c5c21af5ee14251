// Package fetcher retrieves raw website markup for the scoring pipeline.
//
// The fetch is strictly best-effort: a missing URL short-circuits without a
// network call and every failure degrades to a fixed placeholder so the
// orchestrator never fails because a prospect's site is down.
package fetcher

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/merchbase/site-api/internal/domain"
	"github.com/merchbase/site-api/internal/observability"
	"github.com/merchbase/site-api/pkg/textx"
)

// MaxChars bounds the markup handed to the scoring prompt.
const MaxChars = 50000

// Placeholder is returned for any transport or non-2xx outcome.
const Placeholder = "Unable to fetch website content"

// Client fetches site markup over plain HTTP(S). It implements domain.SiteFetcher.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// New constructs a Client with the given timeout and request identifier.
func New(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// Fetch returns the first MaxChars characters of the page at url, the
// placeholder on any failure, or an empty string when url is empty.
func (c *Client) Fetch(ctx domain.Context, url string) string {
	if url == "" {
		observability.SiteFetchesTotal.WithLabelValues("skipped").Inc()
		return ""
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.Warn("site fetch: bad url", slog.String("url", url), slog.Any("error", err))
		observability.SiteFetchesTotal.WithLabelValues("error").Inc()
		return Placeholder
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("site fetch failed", slog.String("url", url), slog.Any("error", err))
		observability.SiteFetchesTotal.WithLabelValues("error").Inc()
		return Placeholder
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("site fetch non-2xx", slog.String("url", url), slog.Int("status", resp.StatusCode))
		observability.SiteFetchesTotal.WithLabelValues("error").Inc()
		return Placeholder
	}
	// Read a bounded amount; any bytes are treated as text. The extra byte
	// headroom lets Truncate cut multi-byte runes cleanly.
	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(MaxChars)*4))
	if err != nil {
		slog.Warn("site fetch read failed", slog.String("url", url), slog.Any("error", err))
		observability.SiteFetchesTotal.WithLabelValues("error").Inc()
		return Placeholder
	}
	observability.SiteFetchesTotal.WithLabelValues("ok").Inc()
	return textx.Truncate(string(body), MaxChars)
}
