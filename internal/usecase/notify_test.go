package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/merchbase/site-api/internal/domain"
	"github.com/merchbase/site-api/internal/usecase"
)

func completedAssessment() domain.Assessment {
	a := storedAssessment()
	a.AnalysisComplete = true
	a.OverallScore = 45
	a.AnalysisSummary = "summary"
	a.Recommendations = sampleAnalysis().Recommendations
	return a
}

func TestNotify_SendsOnce(t *testing.T) {
	t.Parallel()
	repo := &mockAssessmentRepo{}
	mailer := &mockMailer{}

	repo.On("Get", mock.Anything, "a-1").Return(completedAssessment(), nil)
	repo.On("MarkEmailSent", mock.Anything, "a-1", mock.Anything).Return(true, nil)
	mailer.On("SendAssessmentResult", mock.Anything,
		mock.MatchedBy(func(a domain.Assessment) bool {
			return a.Email == "owner@acme.example.com" && a.CompanyName == "Acme"
		}),
		"https://www.merchbase.com/assessment/results/a-1").Return(nil)

	svc := usecase.NewNotifyService(repo, mailer, "https://www.merchbase.com")
	require.NoError(t, svc.Notify(context.Background(), "a-1"))
	mailer.AssertExpectations(t)
}

func TestNotify_Duplicate_NoEmail(t *testing.T) {
	t.Parallel()
	repo := &mockAssessmentRepo{}
	mailer := &mockMailer{}

	repo.On("Get", mock.Anything, "a-1").Return(completedAssessment(), nil)
	repo.On("MarkEmailSent", mock.Anything, "a-1", mock.Anything).Return(false, nil)

	svc := usecase.NewNotifyService(repo, mailer, "https://www.merchbase.com")
	require.NoError(t, svc.Notify(context.Background(), "a-1"))
	mailer.AssertNotCalled(t, "SendAssessmentResult", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotify_AnalysisIncomplete_Conflict(t *testing.T) {
	t.Parallel()
	repo := &mockAssessmentRepo{}
	repo.On("Get", mock.Anything, "a-1").Return(storedAssessment(), nil)

	svc := usecase.NewNotifyService(repo, &mockMailer{}, "https://www.merchbase.com")
	err := svc.Notify(context.Background(), "a-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertNotCalled(t, "MarkEmailSent", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotify_SendFailure_Propagates(t *testing.T) {
	t.Parallel()
	repo := &mockAssessmentRepo{}
	mailer := &mockMailer{}

	repo.On("Get", mock.Anything, "a-1").Return(completedAssessment(), nil)
	repo.On("MarkEmailSent", mock.Anything, "a-1", mock.Anything).Return(true, nil)
	mailer.On("SendAssessmentResult", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("resend down"))

	svc := usecase.NewNotifyService(repo, mailer, "https://www.merchbase.com")
	require.Error(t, svc.Notify(context.Background(), "a-1"))
}
