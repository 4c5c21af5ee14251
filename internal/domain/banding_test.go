package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/merchbase/site-api/internal/domain"
)

func TestBandFor_Thresholds(t *testing.T) {
	t.Parallel()
	cases := []struct {
		score    int
		result   string
		campaign string
	}{
		{0, "Critical - Losing Business", "Bleeding Clients Daily"},
		{40, "Critical - Losing Business", "Bleeding Clients Daily"},
		{41, "Needs Improvement", "Losing Ground to Competitors"},
		{70, "Needs Improvement", "Losing Ground to Competitors"},
		{71, "Good, but...", "Missing Easy Wins"},
		{85, "Good, but...", "Missing Easy Wins"},
		{86, "Excellent", "Strong Foundation"},
		{92, "Excellent", "Strong Foundation"},
		{100, "Excellent", "Strong Foundation"},
	}
	for _, c := range cases {
		b := domain.BandFor(c.score)
		assert.Equal(t, c.result, b.ResultLabel, "score %d", c.score)
		assert.Equal(t, c.campaign, b.CampaignLabel, "score %d", c.score)
	}
}

func TestBandFor_SameThresholdsEverySurface(t *testing.T) {
	t.Parallel()
	// Every surface reads the same table, so a score maps to exactly one band.
	for s := 0; s <= 100; s++ {
		b := domain.BandFor(s)
		assert.GreaterOrEqual(t, s, b.Min)
		assert.LessOrEqual(t, s, b.Max)
	}
}

func TestBandFor_ClampsOutOfRange(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Bleeding Clients Daily", domain.BandFor(-1).CampaignLabel)
	assert.Equal(t, "Strong Foundation", domain.BandFor(101).CampaignLabel)
}

func TestScoreInRange(t *testing.T) {
	t.Parallel()
	assert.True(t, domain.ScoreInRange(0))
	assert.True(t, domain.ScoreInRange(100))
	assert.False(t, domain.ScoreInRange(-1))
	assert.False(t, domain.ScoreInRange(101))
}
