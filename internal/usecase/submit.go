// Package usecase contains application business logic services.
package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/merchbase/site-api/internal/domain"
	"github.com/merchbase/site-api/pkg/textx"
)

// SubmitService persists new assessment submissions.
type SubmitService struct {
	Repo domain.AssessmentRepository
}

// NewSubmitService constructs a SubmitService with the given repo.
func NewSubmitService(r domain.AssessmentRepository) SubmitService { return SubmitService{Repo: r} }

// Submit validates and stores one questionnaire submission, returning the
// generated assessment id.
func (s SubmitService) Submit(ctx domain.Context, a domain.Assessment) (string, error) {
	a.CompanyName = textx.SanitizeText(a.CompanyName)
	a.Industry = textx.SanitizeText(a.Industry)
	a.Email = strings.TrimSpace(a.Email)
	a.WebsiteURL = strings.TrimSpace(a.WebsiteURL)
	a.PrimaryGoal = textx.SanitizeText(a.PrimaryGoal)

	frustrations := make([]string, 0, len(a.Frustrations))
	for _, f := range a.Frustrations {
		if f = textx.SanitizeText(f); f != "" {
			frustrations = append(frustrations, f)
		}
	}
	a.Frustrations = frustrations

	if a.CompanyName == "" || a.Industry == "" || a.Email == "" {
		return "", fmt.Errorf("%w: company name, industry and email are required", domain.ErrInvalidArgument)
	}
	if len(a.Frustrations) == 0 {
		return "", fmt.Errorf("%w: at least one frustration is required", domain.ErrInvalidArgument)
	}
	if a.SatisfactionScore != nil && (*a.SatisfactionScore < 1 || *a.SatisfactionScore > 5) {
		return "", fmt.Errorf("%w: satisfaction score must be 1-5", domain.ErrInvalidArgument)
	}

	a.CreatedAt = time.Now().UTC()
	return s.Repo.Create(ctx, a)
}
