package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/merchbase/site-api/internal/domain"
)

// AssessmentRepo persists and loads assessments from PostgreSQL.
type AssessmentRepo struct{ Pool PgxPool }

// NewAssessmentRepo constructs an AssessmentRepo with the given pool.
func NewAssessmentRepo(p PgxPool) *AssessmentRepo { return &AssessmentRepo{Pool: p} }

// Analysis and email columns are nullable until their writers run, so every
// non-pointer scan target is coalesced to its zero value.
const assessmentColumns = `id, company_name, industry, email, website_url, website_age,
	satisfaction_score, frustrations, primary_goal, competitors_better, lost_business,
	budget_range, timeline, created_at,
	COALESCE(analysis_complete,FALSE), COALESCE(overall_score,0), COALESCE(performance_score,0),
	COALESCE(design_score,0), COALESCE(seo_score,0), COALESCE(mobile_score,0),
	COALESCE(analysis_summary,''), recommendations,
	COALESCE(email_sent,FALSE), email_sent_at`

// Create inserts a new assessment with all derived fields unset and returns its id.
func (r *AssessmentRepo) Create(ctx domain.Context, a domain.Assessment) (string, error) {
	tracer := otel.Tracer("repo.assessments")
	ctx, span := tracer.Start(ctx, "assessments.Create")
	defer span.End()
	id := a.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO assessments (id, company_name, industry, email, website_url, website_age,
		satisfaction_score, frustrations, primary_goal, competitors_better, lost_business,
		budget_range, timeline, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`
	_, err := r.Pool.Exec(ctx, q, id, a.CompanyName, a.Industry, a.Email, a.WebsiteURL, a.WebsiteAge,
		a.SatisfactionScore, a.Frustrations, a.PrimaryGoal, a.CompetitorsBetter, a.LostBusiness,
		a.BudgetRange, a.Timeline, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("op=assessment.create: %w", err)
	}
	return id, nil
}

// Get loads an assessment by id.
func (r *AssessmentRepo) Get(ctx domain.Context, id string) (domain.Assessment, error) {
	tracer := otel.Tracer("repo.assessments")
	ctx, span := tracer.Start(ctx, "assessments.Get")
	defer span.End()
	q := `SELECT ` + assessmentColumns + ` FROM assessments WHERE id=$1`
	row := r.Pool.QueryRow(ctx, q, id)
	var a domain.Assessment
	var recsJSON []byte
	if err := row.Scan(&a.ID, &a.CompanyName, &a.Industry, &a.Email, &a.WebsiteURL, &a.WebsiteAge,
		&a.SatisfactionScore, &a.Frustrations, &a.PrimaryGoal, &a.CompetitorsBetter, &a.LostBusiness,
		&a.BudgetRange, &a.Timeline, &a.CreatedAt, &a.AnalysisComplete, &a.OverallScore, &a.PerformanceScore,
		&a.DesignScore, &a.SEOScore, &a.MobileScore, &a.AnalysisSummary, &recsJSON,
		&a.EmailSent, &a.EmailSentAt); err != nil {
		if err == pgx.ErrNoRows {
			return domain.Assessment{}, fmt.Errorf("op=assessment.get: %w", domain.ErrNotFound)
		}
		return domain.Assessment{}, fmt.Errorf("op=assessment.get: %w", err)
	}
	if len(recsJSON) > 0 {
		if err := json.Unmarshal(recsJSON, &a.Recommendations); err != nil {
			return domain.Assessment{}, fmt.Errorf("op=assessment.get: recommendations: %w", err)
		}
	}
	return a, nil
}

// SaveAnalysis writes the five scores, the summary, the recommendation list
// and the completion flag as one update. The flag only ever moves to true.
func (r *AssessmentRepo) SaveAnalysis(ctx domain.Context, id string, an domain.Analysis) error {
	tracer := otel.Tracer("repo.assessments")
	ctx, span := tracer.Start(ctx, "assessments.SaveAnalysis")
	defer span.End()
	recsJSON, err := json.Marshal(an.Recommendations)
	if err != nil {
		return fmt.Errorf("op=assessment.save_analysis: marshal: %w", err)
	}
	q := `UPDATE assessments SET analysis_complete=TRUE, overall_score=$2, performance_score=$3,
		design_score=$4, seo_score=$5, mobile_score=$6, analysis_summary=$7, recommendations=$8
		WHERE id=$1`
	tag, err := r.Pool.Exec(ctx, q, id, an.OverallScore, an.PerformanceScore,
		an.DesignScore, an.SEOScore, an.MobileScore, an.Summary, recsJSON)
	if err != nil {
		return fmt.Errorf("op=assessment.save_analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=assessment.save_analysis: %w", domain.ErrNotFound)
	}
	return nil
}

// MarkEmailSent flips email_sent from false to true in a single conditional
// update. Returns false when the flag was already claimed, which makes the
// notification sender idempotent under concurrent triggers and queue
// redelivery.
func (r *AssessmentRepo) MarkEmailSent(ctx domain.Context, id string, at time.Time) (bool, error) {
	tracer := otel.Tracer("repo.assessments")
	ctx, span := tracer.Start(ctx, "assessments.MarkEmailSent")
	defer span.End()
	q := `UPDATE assessments SET email_sent=TRUE, email_sent_at=$2 WHERE id=$1 AND NOT email_sent`
	tag, err := r.Pool.Exec(ctx, q, id, at.UTC())
	if err != nil {
		return false, fmt.Errorf("op=assessment.mark_email_sent: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
