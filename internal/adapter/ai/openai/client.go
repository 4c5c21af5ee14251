// Package openai implements the scoring client against an OpenAI-compatible
// chat completions gateway.
//
// The analysis is requested through a forced tool call so the model returns
// structured JSON arguments rather than free text. A scoring request is a
// single attempt; the caller decides whether a failed analysis is retried.
package openai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"log/slog"

	"github.com/merchbase/site-api/internal/adapter/ai/tokencount"
	"github.com/merchbase/site-api/internal/config"
	"github.com/merchbase/site-api/internal/domain"
	"github.com/merchbase/site-api/internal/observability"
)

// analysisToolName is the function the model is forced to call.
const analysisToolName = "provide_website_analysis"

// Client implements domain.ScoringClient.
type Client struct {
	cfg config.Config
	hc  *http.Client
}

// New constructs a Client with the configured request timeout.
func New(cfg config.Config) *Client {
	timeout := cfg.AIHTTPTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{cfg: cfg, hc: &http.Client{Timeout: timeout}}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// analysisToolSchema is the JSON Schema for the forced function call.
func analysisToolSchema() map[string]any {
	score := map[string]any{"type": "number", "minimum": 0, "maximum": 100}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"overall_score":     score,
			"performance_score": score,
			"design_score":      score,
			"seo_score":         score,
			"mobile_score":      score,
			"analysis_summary":  map[string]any{"type": "string"},
			"recommendations": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"category": map[string]any{"type": "string"},
						"issue":    map[string]any{"type": "string"},
						"impact":   map[string]any{"type": "string"},
						"solution": map[string]any{"type": "string"},
					},
					"required": []string{"category", "issue", "impact", "solution"},
				},
			},
		},
		"required": []string{
			"overall_score", "performance_score", "design_score",
			"seo_score", "mobile_score", "analysis_summary", "recommendations",
		},
	}
}

// Score asks the gateway for a structured website analysis.
func (c *Client) Score(ctx domain.Context, in domain.ScoringInput) (domain.Analysis, error) {
	if c.cfg.AIAPIKey == "" {
		return domain.Analysis{}, fmt.Errorf("op=ai.Score: %w: AI_API_KEY missing", domain.ErrInvalidArgument)
	}

	userPrompt := buildUserPrompt(in)
	slog.Info("ai scoring request",
		slog.String("model", c.cfg.AIModel),
		slog.String("company", in.CompanyName),
		slog.Int("prompt_tokens_est", tokencount.EstimateChatTokens(systemPrompt, userPrompt, c.cfg.AIModel)))

	body := map[string]any{
		"model": c.cfg.AIModel,
		"messages": []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		"tools": []map[string]any{{
			"type": "function",
			"function": map[string]any{
				"name":        analysisToolName,
				"description": "Provide structured website analysis with scores and recommendations",
				"parameters":  analysisToolSchema(),
			},
		}},
		"tool_choice": map[string]any{
			"type":     "function",
			"function": map[string]any{"name": analysisToolName},
		},
	}
	if c.cfg.AIMaxTokens > 0 {
		body["max_tokens"] = c.cfg.AIMaxTokens
	}
	b, err := json.Marshal(body)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("op=ai.Score marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AIBaseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("op=ai.Score request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AIAPIKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	observability.AIRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		observability.AIRequestsTotal.WithLabelValues("transport_error").Inc()
		return domain.Analysis{}, fmt.Errorf("op=ai.Score do: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		observability.AIRequestsTotal.WithLabelValues("transport_error").Inc()
		return domain.Analysis{}, fmt.Errorf("op=ai.Score read: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observability.AIRequestsTotal.WithLabelValues("upstream_error").Inc()
		slog.Error("ai gateway error",
			slog.Int("status", resp.StatusCode),
			slog.String("body", snippet(respBody, 512)))
		return domain.Analysis{}, fmt.Errorf("op=ai.Score: %w: status %d", domain.ErrUpstreamStatus, resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				ToolCalls []struct {
					Function struct {
						Name      string `json:"name"`
						Arguments string `json:"arguments"`
					} `json:"function"`
				} `json:"tool_calls"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		observability.AIRequestsTotal.WithLabelValues("schema_error").Inc()
		return domain.Analysis{}, fmt.Errorf("op=ai.Score decode: %w: %v", domain.ErrSchemaInvalid, err)
	}
	if len(out.Choices) == 0 || len(out.Choices[0].Message.ToolCalls) == 0 {
		observability.AIRequestsTotal.WithLabelValues("schema_error").Inc()
		return domain.Analysis{}, fmt.Errorf("op=ai.Score: %w: no tool call in response", domain.ErrSchemaInvalid)
	}

	an, err := parseAnalysis([]byte(out.Choices[0].Message.ToolCalls[0].Function.Arguments))
	if err != nil {
		observability.AIRequestsTotal.WithLabelValues("schema_error").Inc()
		return domain.Analysis{}, err
	}
	observability.AIRequestsTotal.WithLabelValues("ok").Inc()
	slog.Info("ai scoring complete",
		slog.Int("overall_score", an.OverallScore),
		slog.Int("recommendations", len(an.Recommendations)))
	return an, nil
}

func snippet(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
