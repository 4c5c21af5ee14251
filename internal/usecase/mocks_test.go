package usecase_test

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/merchbase/site-api/internal/domain"
)

type mockAssessmentRepo struct{ mock.Mock }

func (m *mockAssessmentRepo) Create(ctx domain.Context, a domain.Assessment) (string, error) {
	args := m.Called(ctx, a)
	return args.String(0), args.Error(1)
}

func (m *mockAssessmentRepo) Get(ctx domain.Context, id string) (domain.Assessment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Assessment), args.Error(1)
}

func (m *mockAssessmentRepo) SaveAnalysis(ctx domain.Context, id string, an domain.Analysis) error {
	args := m.Called(ctx, id, an)
	return args.Error(0)
}

func (m *mockAssessmentRepo) MarkEmailSent(ctx domain.Context, id string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

type mockFetcher struct{ mock.Mock }

func (m *mockFetcher) Fetch(ctx domain.Context, url string) string {
	args := m.Called(ctx, url)
	return args.String(0)
}

type mockScorer struct{ mock.Mock }

func (m *mockScorer) Score(ctx domain.Context, in domain.ScoringInput) (domain.Analysis, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.Analysis), args.Error(1)
}

type mockQueue struct{ mock.Mock }

func (m *mockQueue) EnqueueNotify(ctx domain.Context, payload domain.NotifyTaskPayload) (string, error) {
	args := m.Called(ctx, payload)
	return args.String(0), args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendAssessmentResult(ctx domain.Context, a domain.Assessment, resultsURL string) error {
	args := m.Called(ctx, a, resultsURL)
	return args.Error(0)
}

type mockBlogRepo struct{ mock.Mock }

func (m *mockBlogRepo) Create(ctx domain.Context, p domain.BlogPost) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *mockBlogRepo) GetBySlug(ctx domain.Context, slug string) (domain.BlogPost, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(domain.BlogPost), args.Error(1)
}

func (m *mockBlogRepo) List(ctx domain.Context, f domain.BlogFilter) ([]domain.BlogPost, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.BlogPost), args.Error(1)
}

type mockViews struct{ mock.Mock }

func (m *mockViews) Increment(ctx domain.Context, slug string) (int64, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockViews) Get(ctx domain.Context, slug string) (int64, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(int64), args.Error(1)
}
