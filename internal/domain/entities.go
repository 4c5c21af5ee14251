// Package domain holds the core entities and ports of the assessment service.
package domain

import (
	"context"
	"errors"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUpstreamStatus  = errors.New("upstream status")
	ErrSchemaInvalid   = errors.New("schema invalid")
	ErrInternal        = errors.New("internal error")
)

// RecommendationCategories is the fixed vocabulary the scoring model must
// draw recommendation categories from.
var RecommendationCategories = []string{"Design", "Performance", "SEO", "Mobile", "Content"}

// Assessment is the submitted questionnaire plus the derived analysis.
// Input fields are set once at creation. Analysis fields are written exactly
// once by the orchestrator; AnalysisComplete never reverts to false. Email
// fields are written at most once by the notification sender, and only after
// AnalysisComplete is true.
type Assessment struct {
	ID                string
	CompanyName       string
	Industry          string
	Email             string
	WebsiteURL        string
	WebsiteAge        string
	SatisfactionScore *int
	Frustrations      []string
	PrimaryGoal       string
	CompetitorsBetter bool
	LostBusiness      bool
	BudgetRange       string
	Timeline          string
	CreatedAt         time.Time

	AnalysisComplete bool
	OverallScore     int
	PerformanceScore int
	DesignScore      int
	SEOScore         int
	MobileScore      int
	AnalysisSummary  string
	Recommendations  []Recommendation

	EmailSent   bool
	EmailSentAt *time.Time
}

// Recommendation is a single actionable finding from the analysis.
type Recommendation struct {
	Category string `json:"category"`
	Issue    string `json:"issue"`
	Impact   string `json:"impact"`
	Solution string `json:"solution"`
}

// Analysis is the validated structured output of the scoring model.
// All scores are integers in [0,100]; Recommendations has 4 to 8 entries.
type Analysis struct {
	OverallScore     int              `json:"overall_score"`
	PerformanceScore int              `json:"performance_score"`
	DesignScore      int              `json:"design_score"`
	SEOScore         int              `json:"seo_score"`
	MobileScore      int              `json:"mobile_score"`
	Summary          string           `json:"analysis_summary"`
	Recommendations  []Recommendation `json:"recommendations"`
}

// ScoringInput carries the assessment answers and fetched markup into the
// scoring client.
type ScoringInput struct {
	CompanyName  string
	Industry     string
	Frustrations []string
	PrimaryGoal  string
	WebsiteURL   string
	WebsiteHTML  string
}

// BlogPost is a published article. It has no lifecycle beyond the
// draft/published status flip.
type BlogPost struct {
	ID              string
	Title           string
	Slug            string
	Category        string
	Content         string
	Excerpt         string
	Tags            []string
	Keywords        []string
	Status          string
	Featured        bool
	AuthorName      string
	AuthorImageURL  string
	MetaTitle       string
	MetaDescription string
	ViewCount       int64
	CreatedAt       time.Time
	PublishedAt     *time.Time
}

// Blog post status values.
const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
)

// BlogFilter narrows blog listings.
type BlogFilter struct {
	Status   string
	Category string
	Tag      string
	Featured *bool
	Limit    int
	Offset   int
}

// Repositories (ports)

type AssessmentRepository interface {
	Create(ctx Context, a Assessment) (string, error)
	Get(ctx Context, id string) (Assessment, error)
	// SaveAnalysis persists the full analysis and sets the completion flag in
	// a single update.
	SaveAnalysis(ctx Context, id string, an Analysis) error
	// MarkEmailSent atomically flips email_sent from false to true. It
	// reports whether this caller won the flag; a false return means another
	// sender already claimed it.
	MarkEmailSent(ctx Context, id string, at time.Time) (bool, error)
}

type BlogPostRepository interface {
	Create(ctx Context, p BlogPost) (string, error)
	GetBySlug(ctx Context, slug string) (BlogPost, error)
	List(ctx Context, f BlogFilter) ([]BlogPost, error)
}

// SiteFetcher retrieves raw markup for a URL. It never fails the caller:
// absent URLs yield an empty string without a network call, and any fetch
// failure yields a fixed placeholder.
type SiteFetcher interface {
	Fetch(ctx Context, url string) string
}

// ScoringClient asks the hosted model for a structured analysis.
type ScoringClient interface {
	Score(ctx Context, in ScoringInput) (Analysis, error)
}

// Email is an outbound transactional message.
type Email struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Mailer delivers the results email for a completed assessment. Rendering
// lives with the adapter so usecases stay free of presentation concerns.
type Mailer interface {
	SendAssessmentResult(ctx Context, a Assessment, resultsURL string) error
}

// NotifyTaskPayload is the queued notification task.
type NotifyTaskPayload struct {
	AssessmentID string `json:"assessment_id"`
}

// NotifyQueue hands the notification task to a durable work queue with
// at-least-once delivery. The assessment id doubles as the idempotency key.
type NotifyQueue interface {
	EnqueueNotify(ctx Context, payload NotifyTaskPayload) (string, error)
}

// ViewCounter tracks blog post views.
type ViewCounter interface {
	Increment(ctx Context, slug string) (int64, error)
	Get(ctx Context, slug string) (int64, error)
}

// Context is an alias so the domain package stays decoupled from call sites;
// adapters and usecases pass context.Context through.
type Context = context.Context
