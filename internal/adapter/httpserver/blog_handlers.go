package httpserver

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/merchbase/site-api/internal/domain"
)

type blogPostResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Category        string     `json:"category"`
	Content         string     `json:"content,omitempty"`
	Excerpt         string     `json:"excerpt"`
	Tags            []string   `json:"tags"`
	Featured        bool       `json:"featured"`
	AuthorName      string     `json:"author_name"`
	AuthorImageURL  string     `json:"author_image_url,omitempty"`
	MetaTitle       string     `json:"meta_title,omitempty"`
	MetaDescription string     `json:"meta_description,omitempty"`
	ViewCount       int64      `json:"view_count"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
}

func toBlogResponse(p domain.BlogPost, includeContent bool) blogPostResponse {
	resp := blogPostResponse{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Category:        p.Category,
		Excerpt:         p.Excerpt,
		Tags:            p.Tags,
		Featured:        p.Featured,
		AuthorName:      p.AuthorName,
		AuthorImageURL:  p.AuthorImageURL,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		ViewCount:       p.ViewCount,
		PublishedAt:     p.PublishedAt,
	}
	if includeContent {
		resp.Content = p.Content
	}
	return resp
}

// BlogListHandler lists published posts. Listings return excerpts only.
func (s *Server) BlogListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := domain.BlogFilter{
			Category: q.Get("category"),
			Tag:      q.Get("tag"),
		}
		if v := q.Get("featured"); v != "" {
			featured, err := strconv.ParseBool(v)
			if err != nil {
				writeError(w, r, fmt.Errorf("%w: featured must be a boolean", domain.ErrInvalidArgument), nil)
				return
			}
			f.Featured = &featured
		}
		if v := q.Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, r, fmt.Errorf("%w: limit must be a non-negative integer", domain.ErrInvalidArgument), nil)
				return
			}
			f.Limit = n
		}
		if v := q.Get("offset"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, r, fmt.Errorf("%w: offset must be a non-negative integer", domain.ErrInvalidArgument), nil)
				return
			}
			f.Offset = n
		}

		posts, err := s.Blog.List(r.Context(), f)
		if err != nil {
			writeError(w, r, fmt.Errorf("blog list: %w", err), nil)
			return
		}
		out := make([]blogPostResponse, 0, len(posts))
		for _, p := range posts {
			out = append(out, toBlogResponse(p, false))
		}
		writeJSON(w, http.StatusOK, map[string]any{"posts": out})
	}
}

// BlogGetHandler returns one published post with full content.
func (s *Server) BlogGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		p, err := s.Blog.GetBySlug(r.Context(), slug)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, toBlogResponse(p, true))
	}
}
