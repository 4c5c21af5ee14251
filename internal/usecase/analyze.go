package usecase

import (
	"log/slog"

	"github.com/merchbase/site-api/internal/domain"
	"github.com/merchbase/site-api/internal/observability"
)

// AnalyzeService runs the scoring pipeline for one assessment: fetch the
// website, score it, persist the analysis, and queue the notification email.
type AnalyzeService struct {
	Repo    domain.AssessmentRepository
	Fetcher domain.SiteFetcher
	Scorer  domain.ScoringClient
	Queue   domain.NotifyQueue
}

// NewAnalyzeService constructs an AnalyzeService with its dependencies.
func NewAnalyzeService(r domain.AssessmentRepository, f domain.SiteFetcher, sc domain.ScoringClient, q domain.NotifyQueue) AnalyzeService {
	return AnalyzeService{Repo: r, Fetcher: f, Scorer: sc, Queue: q}
}

// Analyze scores the assessment and stores the result. A completed
// assessment is returned as-is so retried requests stay idempotent.
// The notification enqueue is fire-and-forget; a queue outage never fails a
// finished analysis.
func (s AnalyzeService) Analyze(ctx domain.Context, id string) (domain.Analysis, error) {
	a, err := s.Repo.Get(ctx, id)
	if err != nil {
		return domain.Analysis{}, err
	}
	if a.AnalysisComplete {
		slog.Info("analysis already complete", slog.String("assessment_id", id))
		return domain.Analysis{
			OverallScore:     a.OverallScore,
			PerformanceScore: a.PerformanceScore,
			DesignScore:      a.DesignScore,
			SEOScore:         a.SEOScore,
			MobileScore:      a.MobileScore,
			Summary:          a.AnalysisSummary,
			Recommendations:  a.Recommendations,
		}, nil
	}

	html := s.Fetcher.Fetch(ctx, a.WebsiteURL)

	an, err := s.Scorer.Score(ctx, domain.ScoringInput{
		CompanyName:  a.CompanyName,
		Industry:     a.Industry,
		Frustrations: a.Frustrations,
		PrimaryGoal:  a.PrimaryGoal,
		WebsiteURL:   a.WebsiteURL,
		WebsiteHTML:  html,
	})
	if err != nil {
		return domain.Analysis{}, err
	}

	if err := s.Repo.SaveAnalysis(ctx, id, an); err != nil {
		return domain.Analysis{}, err
	}
	observability.ObserveAnalysis(an.OverallScore)

	if _, err := s.Queue.EnqueueNotify(ctx, domain.NotifyTaskPayload{AssessmentID: id}); err != nil {
		slog.Error("notify enqueue failed", slog.String("assessment_id", id), slog.Any("error", err))
	}
	return an, nil
}
