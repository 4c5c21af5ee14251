package openai

import (
	"fmt"
	"strings"

	"github.com/merchbase/site-api/internal/domain"
)

const systemPrompt = `You are a professional web agency analyst. Analyze websites and provide actionable insights with business impact.`

// buildUserPrompt assembles the analysis request. The rubric lines come from
// the shared banding table so the model is graded on the same thresholds the
// results page and email use.
func buildUserPrompt(in domain.ScoringInput) string {
	var b strings.Builder
	b.WriteString("Analyze this website and provide scores and recommendations.\n\n")
	fmt.Fprintf(&b, "Company: %s\n", in.CompanyName)
	fmt.Fprintf(&b, "Industry: %s\n", in.Industry)
	fmt.Fprintf(&b, "Stated Problems: %s\n", strings.Join(in.Frustrations, ", "))
	fmt.Fprintf(&b, "Primary Goal: %s\n", in.PrimaryGoal)
	url := in.WebsiteURL
	if url == "" {
		url = "No website provided"
	}
	fmt.Fprintf(&b, "Website URL: %s\n\n", url)

	if in.WebsiteHTML != "" {
		fmt.Fprintf(&b, "Website HTML (first 50KB):\n%s\n\n", in.WebsiteHTML)
	} else {
		b.WriteString("No website to analyze - provide general recommendations for their industry.\n\n")
	}

	b.WriteString("Scoring Guidelines:\n")
	// Bands are ordered highest first; present them ascending as a rubric.
	for i := len(domain.Bands) - 1; i >= 0; i-- {
		band := domain.Bands[i]
		fmt.Fprintf(&b, "- %d-%d: %s\n", band.Min, band.Max, band.RubricText)
	}

	b.WriteString("\nProvide 4-8 specific, actionable recommendations. Focus on business impact, not just technical details.")
	return b.String()
}
