package openai

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/merchbase/site-api/internal/domain"
)

// Recommendation count bounds the model must respect.
const (
	minRecommendations = 4
	maxRecommendations = 8
)

// analysisWire mirrors the tool call arguments. Scores arrive as JSON
// numbers; models occasionally emit "87.0", so they decode as float64 and
// round to ints here.
type analysisWire struct {
	OverallScore     float64              `json:"overall_score"`
	PerformanceScore float64              `json:"performance_score"`
	DesignScore      float64              `json:"design_score"`
	SEOScore         float64              `json:"seo_score"`
	MobileScore      float64              `json:"mobile_score"`
	Summary          string               `json:"analysis_summary"`
	Recommendations  []recommendationWire `json:"recommendations"`
}

type recommendationWire struct {
	Category string `json:"category"`
	Issue    string `json:"issue"`
	Impact   string `json:"impact"`
	Solution string `json:"solution"`
}

// parseAnalysis decodes and validates the tool call arguments. Any violation
// maps to domain.ErrSchemaInvalid so callers treat it as a bad model
// response, not an internal fault.
func parseAnalysis(raw []byte) (domain.Analysis, error) {
	var w analysisWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return domain.Analysis{}, fmt.Errorf("op=ai.parseAnalysis: %w: %v", domain.ErrSchemaInvalid, err)
	}

	scores := map[string]float64{
		"overall_score":     w.OverallScore,
		"performance_score": w.PerformanceScore,
		"design_score":      w.DesignScore,
		"seo_score":         w.SEOScore,
		"mobile_score":      w.MobileScore,
	}
	rounded := make(map[string]int, len(scores))
	for name, v := range scores {
		n := int(math.Round(v))
		if !domain.ScoreInRange(n) {
			return domain.Analysis{}, fmt.Errorf("op=ai.parseAnalysis: %w: %s %v out of range", domain.ErrSchemaInvalid, name, v)
		}
		rounded[name] = n
	}

	if strings.TrimSpace(w.Summary) == "" {
		return domain.Analysis{}, fmt.Errorf("op=ai.parseAnalysis: %w: empty analysis_summary", domain.ErrSchemaInvalid)
	}
	if n := len(w.Recommendations); n < minRecommendations || n > maxRecommendations {
		return domain.Analysis{}, fmt.Errorf("op=ai.parseAnalysis: %w: %d recommendations, want %d-%d", domain.ErrSchemaInvalid, n, minRecommendations, maxRecommendations)
	}

	recs := make([]domain.Recommendation, 0, len(w.Recommendations))
	for i, r := range w.Recommendations {
		if strings.TrimSpace(r.Issue) == "" || strings.TrimSpace(r.Impact) == "" || strings.TrimSpace(r.Solution) == "" {
			return domain.Analysis{}, fmt.Errorf("op=ai.parseAnalysis: %w: recommendation %d has empty fields", domain.ErrSchemaInvalid, i)
		}
		if !validCategory(r.Category) {
			return domain.Analysis{}, fmt.Errorf("op=ai.parseAnalysis: %w: recommendation %d category %q", domain.ErrSchemaInvalid, i, r.Category)
		}
		recs = append(recs, domain.Recommendation{
			Category: r.Category,
			Issue:    r.Issue,
			Impact:   r.Impact,
			Solution: r.Solution,
		})
	}

	return domain.Analysis{
		OverallScore:     rounded["overall_score"],
		PerformanceScore: rounded["performance_score"],
		DesignScore:      rounded["design_score"],
		SEOScore:         rounded["seo_score"],
		MobileScore:      rounded["mobile_score"],
		Summary:          w.Summary,
		Recommendations:  recs,
	}, nil
}

func validCategory(c string) bool {
	for _, v := range domain.RecommendationCategories {
		if c == v {
			return true
		}
	}
	return false
}
