package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/merchbase/site-api/internal/domain"
)

// ResultService provides read access to assessment results and assembles the
// API response envelope including ETag logic.
type ResultService struct {
	Repo domain.AssessmentRepository
}

// NewResultService constructs a ResultService with the given repository.
func NewResultService(r domain.AssessmentRepository) ResultService { return ResultService{Repo: r} }

// Fetch returns the HTTP status code, response body, and ETag for the given
// assessment id. It implements conditional responses (304 Not Modified)
// based on the If-None-Match ETag so pollers pay nothing while the analysis
// is pending.
func (s ResultService) Fetch(ctx domain.Context, id, ifNoneMatch string) (int, map[string]any, string, error) {
	a, err := s.Repo.Get(ctx, id)
	if err != nil {
		return 0, nil, "", err
	}

	var m map[string]any
	if !a.AnalysisComplete {
		m = map[string]any{
			"id":                a.ID,
			"analysis_complete": false,
		}
	} else {
		m = map[string]any{
			"id":                a.ID,
			"analysis_complete": true,
			"company_name":      a.CompanyName,
			"overall_score":     a.OverallScore,
			"performance_score": a.PerformanceScore,
			"design_score":      a.DesignScore,
			"seo_score":         a.SEOScore,
			"mobile_score":      a.MobileScore,
			"score_label":       domain.BandFor(a.OverallScore).ResultLabel,
			"analysis_summary":  a.AnalysisSummary,
			"recommendations":   a.Recommendations,
			"email_sent":        a.EmailSent,
		}
	}

	etag := makeETag(m)
	if etag == ifNoneMatch {
		return http.StatusNotModified, nil, etag, nil
	}
	return http.StatusOK, m, etag, nil
}

func makeETag(v any) string {
	b, _ := json.Marshal(v)
	s := sha256.Sum256(b)
	return hex.EncodeToString(s[:])
}
