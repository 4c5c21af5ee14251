package openai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchbase/site-api/internal/domain"
)

func wireArgs(t *testing.T, mutate func(m map[string]any)) []byte {
	t.Helper()
	recs := make([]map[string]string, 0, 4)
	for i := 0; i < 4; i++ {
		recs = append(recs, map[string]string{
			"category": "SEO", "issue": "i", "impact": "m", "solution": "s",
		})
	}
	m := map[string]any{
		"overall_score":     70.0,
		"performance_score": 70.0,
		"design_score":      70.0,
		"seo_score":         70.0,
		"mobile_score":      70.0,
		"analysis_summary":  "ok",
		"recommendations":   recs,
	}
	if mutate != nil {
		mutate(m)
	}
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return b
}

func TestParseAnalysis_RoundsFractionalScores(t *testing.T) {
	t.Parallel()
	an, err := parseAnalysis(wireArgs(t, func(m map[string]any) {
		m["overall_score"] = 86.6
	}))
	require.NoError(t, err)
	assert.Equal(t, 87, an.OverallScore)
}

func TestParseAnalysis_ScoreOutOfRange(t *testing.T) {
	t.Parallel()
	_, err := parseAnalysis(wireArgs(t, func(m map[string]any) {
		m["mobile_score"] = 130.0
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaInvalid)
}

func TestParseAnalysis_TooFewRecommendations(t *testing.T) {
	t.Parallel()
	_, err := parseAnalysis(wireArgs(t, func(m map[string]any) {
		m["recommendations"] = []map[string]string{
			{"category": "SEO", "issue": "i", "impact": "m", "solution": "s"},
		}
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaInvalid)
}

func TestParseAnalysis_UnknownCategory(t *testing.T) {
	t.Parallel()
	_, err := parseAnalysis(wireArgs(t, func(m map[string]any) {
		recs := m["recommendations"].([]map[string]string)
		recs[2]["category"] = "Security"
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaInvalid)
}

func TestParseAnalysis_EmptySummary(t *testing.T) {
	t.Parallel()
	_, err := parseAnalysis(wireArgs(t, func(m map[string]any) {
		m["analysis_summary"] = "  "
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaInvalid)
}

func TestParseAnalysis_EmptyRecommendationField(t *testing.T) {
	t.Parallel()
	_, err := parseAnalysis(wireArgs(t, func(m map[string]any) {
		recs := m["recommendations"].([]map[string]string)
		recs[0]["solution"] = ""
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaInvalid)
}
