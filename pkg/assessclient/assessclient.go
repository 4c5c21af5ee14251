// Package assessclient is a small Go client for the assessment API.
//
// It submits a questionnaire, triggers analysis, and polls the result
// endpoint until the analysis completes. Polling is conditional: the client
// replays the last ETag so unchanged states cost a 304.
package assessclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Status describes where the client is in the submit/poll lifecycle.
type Status string

const (
	StatusSubmitting Status = "submitting"
	StatusPolling    Status = "polling"
	StatusReady      Status = "ready"
	StatusError      Status = "error"
)

// Defaults for the polling loop.
const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollTimeout  = 30 * time.Second
)

// ErrPollTimeout is returned when the analysis does not complete within the
// polling ceiling.
var ErrPollTimeout = fmt.Errorf("assessclient: analysis is taking longer than expected")

// Submission is the questionnaire payload.
type Submission struct {
	CompanyName       string   `json:"company_name"`
	Industry          string   `json:"industry"`
	Email             string   `json:"email"`
	WebsiteURL        string   `json:"website_url,omitempty"`
	WebsiteAge        string   `json:"website_age,omitempty"`
	SatisfactionScore *int     `json:"satisfaction_score,omitempty"`
	Frustrations      []string `json:"frustrations"`
	PrimaryGoal       string   `json:"primary_goal"`
	CompetitorsBetter bool     `json:"competitors_better"`
	LostBusiness      bool     `json:"lost_business"`
	BudgetRange       string   `json:"budget_range,omitempty"`
	Timeline          string   `json:"timeline,omitempty"`
}

// Recommendation mirrors the API recommendation shape.
type Recommendation struct {
	Category string `json:"category"`
	Issue    string `json:"issue"`
	Impact   string `json:"impact"`
	Solution string `json:"solution"`
}

// Result is the assessment state returned by the API.
type Result struct {
	ID               string           `json:"id"`
	AnalysisComplete bool             `json:"analysis_complete"`
	CompanyName      string           `json:"company_name"`
	OverallScore     int              `json:"overall_score"`
	PerformanceScore int              `json:"performance_score"`
	DesignScore      int              `json:"design_score"`
	SEOScore         int              `json:"seo_score"`
	MobileScore      int              `json:"mobile_score"`
	ScoreLabel       string           `json:"score_label"`
	AnalysisSummary  string           `json:"analysis_summary"`
	Recommendations  []Recommendation `json:"recommendations"`
	EmailSent        bool             `json:"email_sent"`
}

// Client talks to one assessment API server.
type Client struct {
	baseURL string
	hc      *http.Client

	// PollInterval and PollTimeout control WaitForResults. Zero values use
	// the package defaults.
	PollInterval time.Duration
	PollTimeout  time.Duration

	// OnStatus, when set, observes lifecycle transitions.
	OnStatus func(Status)
}

// New constructs a Client for the given API base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) setStatus(s Status) {
	if c.OnStatus != nil {
		c.OnStatus(s)
	}
}

// Submit creates an assessment and returns its id.
func (c *Client) Submit(ctx context.Context, sub Submission) (string, error) {
	c.setStatus(StatusSubmitting)
	b, err := json.Marshal(sub)
	if err != nil {
		return "", fmt.Errorf("assessclient: marshal submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/assessments", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		c.setStatus(StatusError)
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusCreated {
		c.setStatus(StatusError)
		return "", apiErr("submit", resp)
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.setStatus(StatusError)
		return "", fmt.Errorf("assessclient: decode submit response: %w", err)
	}
	return out.ID, nil
}

// StartAnalysis triggers the scoring pipeline for an assessment.
func (c *Client) StartAnalysis(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/assessments/"+id+"/analyze", nil)
	if err != nil {
		return err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		c.setStatus(StatusError)
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		c.setStatus(StatusError)
		return apiErr("analyze", resp)
	}
	return nil
}

// GetResult fetches the assessment state once. When etag matches the server
// state it returns ok=false with the same etag and no result.
func (c *Client) GetResult(ctx context.Context, id, etag string) (Result, string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/assessments/"+id, nil)
	if err != nil {
		return Result{}, etag, false, err
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return Result{}, etag, false, err
	}
	defer func() { _ = resp.Body.Close() }()
	switch resp.StatusCode {
	case http.StatusNotModified:
		return Result{}, resp.Header.Get("ETag"), false, nil
	case http.StatusOK:
		var res Result
		if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
			return Result{}, etag, false, fmt.Errorf("assessclient: decode result: %w", err)
		}
		return res, resp.Header.Get("ETag"), true, nil
	default:
		return Result{}, etag, false, apiErr("result", resp)
	}
}

// WaitForResults polls until the analysis completes, the polling ceiling
// passes, or ctx is cancelled. Each tick re-reads the server state, so a
// result that completes between ticks is picked up on the next one.
func (c *Client) WaitForResults(ctx context.Context, id string) (Result, error) {
	interval := c.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	timeout := c.PollTimeout
	if timeout <= 0 {
		timeout = DefaultPollTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c.setStatus(StatusPolling)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var (
		etag string
		last Result
	)
	for {
		res, nextTag, changed, err := c.GetResult(ctx, id, etag)
		if err != nil {
			c.setStatus(StatusError)
			return Result{}, err
		}
		etag = nextTag
		if changed {
			last = res
		}
		if last.AnalysisComplete {
			c.setStatus(StatusReady)
			return last, nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			c.setStatus(StatusError)
			if ctx.Err() == context.DeadlineExceeded {
				return Result{}, ErrPollTimeout
			}
			return Result{}, ctx.Err()
		}
	}
}

// Run submits, starts analysis, and waits for the completed result.
func (c *Client) Run(ctx context.Context, sub Submission) (Result, error) {
	id, err := c.Submit(ctx, sub)
	if err != nil {
		return Result{}, err
	}
	if err := c.StartAnalysis(ctx, id); err != nil {
		return Result{}, err
	}
	return c.WaitForResults(ctx, id)
}

func apiErr(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("assessclient: %s: status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(body)))
}
