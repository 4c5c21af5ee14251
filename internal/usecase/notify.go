package usecase

import (
	"fmt"
	"time"

	"log/slog"

	"github.com/merchbase/site-api/internal/domain"
	"github.com/merchbase/site-api/internal/observability"
)

// NotifyService sends the results email for a completed analysis.
//
// The email flag is claimed atomically before sending, so concurrent or
// redelivered tasks for the same assessment produce at most one email.
type NotifyService struct {
	Repo   domain.AssessmentRepository
	Mailer domain.Mailer
	// SiteBaseURL is the public site root used to build the report link.
	SiteBaseURL string
}

// NewNotifyService constructs a NotifyService.
func NewNotifyService(r domain.AssessmentRepository, m domain.Mailer, siteBaseURL string) NotifyService {
	return NotifyService{Repo: r, Mailer: m, SiteBaseURL: siteBaseURL}
}

// Notify sends the results email once. A duplicate call is a successful
// no-op. An assessment without a completed analysis is a conflict; queue
// consumers treat the error as retryable.
func (s NotifyService) Notify(ctx domain.Context, assessmentID string) error {
	a, err := s.Repo.Get(ctx, assessmentID)
	if err != nil {
		return err
	}
	if !a.AnalysisComplete {
		return fmt.Errorf("%w: analysis not complete for %s", domain.ErrConflict, assessmentID)
	}

	claimed, err := s.Repo.MarkEmailSent(ctx, assessmentID, time.Now().UTC())
	if err != nil {
		return err
	}
	if !claimed {
		slog.Info("email already sent", slog.String("assessment_id", assessmentID))
		observability.NotifyTasksTotal.WithLabelValues("duplicate").Inc()
		return nil
	}

	resultsURL := fmt.Sprintf("%s/assessment/results/%s", s.SiteBaseURL, assessmentID)
	if err := s.Mailer.SendAssessmentResult(ctx, a, resultsURL); err != nil {
		return err
	}
	observability.NotifyTasksTotal.WithLabelValues("sent").Inc()
	slog.Info("results email sent",
		slog.String("assessment_id", assessmentID),
		slog.Int("overall_score", a.OverallScore))
	return nil
}
