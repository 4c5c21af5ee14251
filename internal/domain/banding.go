package domain

// Band is one row of the scoring rubric. The same thresholds drive the model
// prompt, the results API, and the notification email; only the label text
// differs per surface.
type Band struct {
	Min int
	Max int
	// RubricText is the guidance wording given to the scoring model.
	RubricText string
	// ResultLabel is shown on the results page.
	ResultLabel string
	// CampaignLabel is used in the notification email.
	CampaignLabel string
}

// Bands is ordered highest first.
var Bands = []Band{
	{Min: 86, Max: 100, RubricText: "Excellent (be conservative with high scores)", ResultLabel: "Excellent", CampaignLabel: "Strong Foundation"},
	{Min: 71, Max: 85, RubricText: "Good but room for optimization", ResultLabel: "Good, but...", CampaignLabel: "Missing Easy Wins"},
	{Min: 41, Max: 70, RubricText: "Needs improvement, missing opportunities", ResultLabel: "Needs Improvement", CampaignLabel: "Losing Ground to Competitors"},
	{Min: 0, Max: 40, RubricText: "Critical issues that are losing business", ResultLabel: "Critical - Losing Business", CampaignLabel: "Bleeding Clients Daily"},
}

// BandFor returns the band containing score. Scores outside [0,100] clamp to
// the nearest band.
func BandFor(score int) Band {
	for _, b := range Bands {
		if score >= b.Min {
			return b
		}
	}
	return Bands[len(Bands)-1]
}

// ScoreInRange reports whether a score is a valid rubric value.
func ScoreInRange(score int) bool { return score >= 0 && score <= 100 }
