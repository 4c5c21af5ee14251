package mail

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/merchbase/site-api/internal/domain"
)

// AssessmentSubject builds the results email subject line.
func AssessmentSubject(companyName string) string {
	return fmt.Sprintf("Your Website Assessment Results Are Ready, %s", companyName)
}

type emailData struct {
	CompanyName string
	Score       int
	ScoreLabel  string
	TopIssues   []domain.Recommendation
	TotalIssues int
	ResultsURL  string
}

// RenderAssessmentEmail renders the results notification for a completed
// analysis. resultsURL is the public report link for this assessment.
func RenderAssessmentEmail(a domain.Assessment, resultsURL string) (string, error) {
	top := a.Recommendations
	if len(top) > 3 {
		top = top[:3]
	}
	data := emailData{
		CompanyName: a.CompanyName,
		Score:       a.OverallScore,
		ScoreLabel:  domain.BandFor(a.OverallScore).CampaignLabel,
		TopIssues:   top,
		TotalIssues: len(a.Recommendations),
		ResultsURL:  resultsURL,
	}
	var sb strings.Builder
	if err := assessmentTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("op=mail.RenderAssessmentEmail: %w", err)
	}
	return sb.String(), nil
}

var assessmentTmpl = template.Must(template.New("assessment").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0; background-color: #f4f4f4; }
    .container { max-width: 600px; margin: 0 auto; background: white; }
    .header { background: linear-gradient(135deg, #1e40af 0%, #3b82f6 100%); color: white; padding: 40px 30px; text-align: center; }
    .header h1 { margin: 0; font-size: 28px; font-weight: bold; }
    .score-badge { background: rgba(255,255,255,0.2); display: inline-block; padding: 15px 30px; border-radius: 50px; margin-top: 20px; font-size: 18px; font-weight: 600; }
    .content { padding: 40px 30px; }
    .pain-statement { background: #fef2f2; border-left: 4px solid #dc2626; padding: 20px; margin: 20px 0; border-radius: 4px; }
    .pain-statement p { margin: 0; color: #991b1b; font-weight: 500; font-size: 16px; }
    .issue { background: #f9fafb; padding: 20px; margin: 15px 0; border-radius: 8px; border: 1px solid #e5e7eb; }
    .issue-title { font-weight: 600; color: #1f2937; margin-bottom: 8px; font-size: 16px; }
    .issue-desc { color: #6b7280; font-size: 14px; margin: 0; }
    .cta-button { display: inline-block; background: #2563eb; color: white; padding: 16px 32px; text-decoration: none; border-radius: 6px; font-weight: 600; margin: 20px 0; }
    .footer { background: #f9fafb; padding: 30px; text-align: center; color: #6b7280; font-size: 14px; }
    .ps { margin-top: 20px; padding-top: 20px; border-top: 2px solid #e5e7eb; font-style: italic; color: #dc2626; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Your Website Assessment Results Are Ready, {{.CompanyName}}</h1>
      <div class="score-badge">Overall Score: {{.Score}}/100 - {{.ScoreLabel}}</div>
    </div>

    <div class="content">
      <div class="pain-statement">
        <p>&#9888;&#65039; Your website is losing you business right now. Here's what we found...</p>
      </div>

      <h2 style="color: #1f2937; margin-top: 30px;">What's Costing You Clients:</h2>
{{range .TopIssues}}
      <div class="issue">
        <div class="issue-title">{{.Issue}}</div>
        <div class="issue-desc">{{.Impact}}</div>
      </div>
{{end}}
      <p style="font-size: 16px; margin: 30px 0;">We've identified {{.TotalIssues}} specific issues that are driving potential clients away from {{.CompanyName}}.</p>

      <div style="text-align: center;">
        <a href="{{.ResultsURL}}" class="cta-button">View Your Full Report</a>
      </div>

      <div class="ps">
        <strong>P.S.</strong> These issues are costing you clients every single day. The sooner you fix them, the sooner you stop losing business to competitors who invested in their online presence.
      </div>
    </div>

    <div class="footer">
      <p><strong>MerchBase</strong></p>
      <p>Building websites that attract clients, build trust, and outshine your competition</p>
      <p style="margin-top: 20px; font-size: 12px;">This email was sent because you requested a free website assessment at MerchBase.com</p>
    </div>
  </div>
</body>
</html>
`))
