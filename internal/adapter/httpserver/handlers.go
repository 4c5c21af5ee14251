package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/merchbase/site-api/internal/config"
	"github.com/merchbase/site-api/internal/domain"
	"github.com/merchbase/site-api/internal/usecase"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg     config.Config
	Submit  usecase.SubmitService
	Analyze usecase.AnalyzeService
	Notify  usecase.NotifyService
	Results usecase.ResultService
	Blog    usecase.BlogService

	DBCheck    func(ctx context.Context) error
	RedisCheck func(ctx context.Context) error
	KafkaCheck func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, submit usecase.SubmitService, analyze usecase.AnalyzeService, notify usecase.NotifyService, results usecase.ResultService, blog usecase.BlogService, dbCheck, redisCheck, kafkaCheck func(context.Context) error) *Server {
	return &Server{
		Cfg: cfg, Submit: submit, Analyze: analyze, Notify: notify, Results: results, Blog: blog,
		DBCheck: dbCheck, RedisCheck: redisCheck, KafkaCheck: kafkaCheck,
	}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

type submitRequest struct {
	CompanyName       string   `json:"company_name" validate:"required,max=200"`
	Industry          string   `json:"industry" validate:"required,max=100"`
	Email             string   `json:"email" validate:"required,email"`
	WebsiteURL        string   `json:"website_url" validate:"omitempty,url"`
	WebsiteAge        string   `json:"website_age" validate:"max=50"`
	SatisfactionScore *int     `json:"satisfaction_score" validate:"omitempty,min=1,max=5"`
	Frustrations      []string `json:"frustrations" validate:"required,min=1,dive,max=500"`
	PrimaryGoal       string   `json:"primary_goal" validate:"required,max=500"`
	CompetitorsBetter bool     `json:"competitors_better"`
	LostBusiness      bool     `json:"lost_business"`
	BudgetRange       string   `json:"budget_range" validate:"max=50"`
	Timeline          string   `json:"timeline" validate:"max=50"`
}

// SubmitHandler accepts a questionnaire submission and stores it.
func (s *Server) SubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
			return
		}
		if err := getValidator().Struct(req); err != nil {
			verrs := map[string]string{}
			if ve, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range ve {
					verrs[strings.ToLower(fe.Field())] = fe.Tag()
				}
			}
			writeError(w, r, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument), verrs)
			return
		}
		id, err := s.Submit.Submit(r.Context(), domain.Assessment{
			CompanyName:       req.CompanyName,
			Industry:          req.Industry,
			Email:             req.Email,
			WebsiteURL:        req.WebsiteURL,
			WebsiteAge:        req.WebsiteAge,
			SatisfactionScore: req.SatisfactionScore,
			Frustrations:      req.Frustrations,
			PrimaryGoal:       req.PrimaryGoal,
			CompetitorsBetter: req.CompetitorsBetter,
			LostBusiness:      req.LostBusiness,
			BudgetRange:       req.BudgetRange,
			Timeline:          req.Timeline,
		})
		if err != nil {
			writeError(w, r, fmt.Errorf("submit: %w", err), nil)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	}
}

// AnalyzeHandler runs the scoring pipeline for an assessment.
func (s *Server) AnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, r, fmt.Errorf("%w: id missing", domain.ErrInvalidArgument), nil)
			return
		}
		an, err := s.Analyze.Analyze(r.Context(), id)
		if err != nil {
			writeError(w, r, fmt.Errorf("analyze: %w", err), nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "analysis": an})
	}
}

// NotifyHandler triggers the results email for a completed assessment.
func (s *Server) NotifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, r, fmt.Errorf("%w: id missing", domain.ErrInvalidArgument), nil)
			return
		}
		if err := s.Notify.Notify(r.Context(), id); err != nil {
			writeError(w, r, fmt.Errorf("notify: %w", err), nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// ResultHandler returns the assessment state, conditionally on ETag.
func (s *Server) ResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, r, fmt.Errorf("%w: id missing", domain.ErrInvalidArgument), nil)
			return
		}
		status, res, etag, err := s.Results.Fetch(r.Context(), id, r.Header.Get("If-None-Match"))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		w.Header().Set("ETag", etag)
		if status == http.StatusNotModified {
			w.WriteHeader(status)
			return
		}
		writeJSON(w, status, res)
	}
}

// HealthzHandler reports process liveness.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ReadyzHandler probes Postgres, Redis, and the Kafka brokers.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		probes := []struct {
			name string
			fn   func(context.Context) error
		}{
			{"db", s.DBCheck},
			{"redis", s.RedisCheck},
			{"kafka", s.KafkaCheck},
		}
		checks := make([]check, 0, len(probes))
		ok := true
		for _, p := range probes {
			if p.fn == nil {
				continue
			}
			if err := p.fn(ctx); err != nil {
				checks = append(checks, check{Name: p.name, OK: false, Details: err.Error()})
				ok = false
				continue
			}
			checks = append(checks, check{Name: p.name, OK: true})
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}
