package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchbase/site-api/internal/adapter/repo/postgres"
	"github.com/merchbase/site-api/internal/domain"
)

func TestAssessmentRepo_Create_GeneratesID(t *testing.T) {
	t.Parallel()
	pool := &poolStub{}
	repo := postgres.NewAssessmentRepo(pool)
	id, err := repo.Create(context.Background(), domain.Assessment{
		CompanyName:  "Acme",
		Industry:     "Accounting Firm",
		Email:        "a@b.com",
		Frustrations: []string{"Looks outdated"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Contains(t, pool.execSQL, "INSERT INTO assessments")
}

func TestAssessmentRepo_Create_ExecError(t *testing.T) {
	t.Parallel()
	pool := &poolStub{execErr: errors.New("boom")}
	repo := postgres.NewAssessmentRepo(pool)
	_, err := repo.Create(context.Background(), domain.Assessment{CompanyName: "Acme"})
	require.Error(t, err)
}

func TestAssessmentRepo_Get_NotFound(t *testing.T) {
	t.Parallel()
	pool := &poolStub{row: rowStub{scan: func(_ ...any) error { return pgx.ErrNoRows }}}
	repo := postgres.NewAssessmentRepo(pool)
	_, err := repo.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// A record between Create and SaveAnalysis holds NULL in every derived
// column; the read must coalesce them so scanning into value types succeeds.
func TestAssessmentRepo_Get_CoalescesUnsetDerivedColumns(t *testing.T) {
	t.Parallel()
	pool := &poolStub{row: rowStub{scan: func(_ ...any) error { return nil }}}
	repo := postgres.NewAssessmentRepo(pool)
	_, err := repo.Get(context.Background(), "a-1")
	require.NoError(t, err)
	for _, col := range []string{
		"COALESCE(analysis_complete,FALSE)",
		"COALESCE(overall_score,0)",
		"COALESCE(performance_score,0)",
		"COALESCE(design_score,0)",
		"COALESCE(seo_score,0)",
		"COALESCE(mobile_score,0)",
		"COALESCE(analysis_summary,'')",
		"COALESCE(email_sent,FALSE)",
	} {
		assert.Contains(t, pool.querySQL, col)
	}
}

func TestAssessmentRepo_SaveAnalysis_NoRow(t *testing.T) {
	t.Parallel()
	pool := &poolStub{execTag: pgconn.NewCommandTag("UPDATE 0")}
	repo := postgres.NewAssessmentRepo(pool)
	err := repo.SaveAnalysis(context.Background(), "missing", domain.Analysis{OverallScore: 50})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssessmentRepo_SaveAnalysis_SingleUpdate(t *testing.T) {
	t.Parallel()
	pool := &poolStub{execTag: pgconn.NewCommandTag("UPDATE 1")}
	repo := postgres.NewAssessmentRepo(pool)
	err := repo.SaveAnalysis(context.Background(), "a-1", domain.Analysis{
		OverallScore: 62, PerformanceScore: 58, DesignScore: 61, SEOScore: 66, MobileScore: 60,
		Summary: "needs work",
		Recommendations: []domain.Recommendation{
			{Category: "SEO", Issue: "no titles", Impact: "invisible", Solution: "add titles"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, pool.execSQL, "analysis_complete=TRUE")
}

func TestAssessmentRepo_MarkEmailSent_Claimed(t *testing.T) {
	t.Parallel()
	pool := &poolStub{execTag: pgconn.NewCommandTag("UPDATE 1")}
	repo := postgres.NewAssessmentRepo(pool)
	ok, err := repo.MarkEmailSent(context.Background(), "a-1", time.Now())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, pool.execSQL, "AND NOT email_sent")
}

func TestAssessmentRepo_MarkEmailSent_AlreadyClaimed(t *testing.T) {
	t.Parallel()
	pool := &poolStub{execTag: pgconn.NewCommandTag("UPDATE 0")}
	repo := postgres.NewAssessmentRepo(pool)
	ok, err := repo.MarkEmailSent(context.Background(), "a-1", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
}
