package translate

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

const (
	claudeDefaultBaseURL = "https://api.anthropic.com"
	claudeModel          = "claude-3-5-sonnet-latest"
	claudeAPIVersion     = "2023-06-01"
	claudeMaxTokens      = 1024
)

// Claude is the formal/strict backend.
type Claude struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClaude constructs the client. baseURL may be empty for the public
// API endpoint.
func NewClaude(apiKey, baseURL string) *Claude {
	if baseURL == "" {
		baseURL = claudeDefaultBaseURL
	}
	return &Claude{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

func (c *Claude) Name() string { return "claude" }

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (c *Claude) Translate(ctx context.Context, text, source, target string) (string, error) {
	return c.message(ctx, translationPrompt(source, target), text)
}

func (c *Claude) Detect(ctx context.Context, text string) (string, error) {
	return c.message(ctx, detectPrompt, text)
}

func (c *Claude) message(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", newError(c.Name(), CodeBackendUnavailable, errors.New("api key not configured"))
	}

	req := claudeRequest{
		Model:     claudeModel,
		MaxTokens: claudeMaxTokens,
		System:    system,
		Messages:  []claudeMessage{{Role: "user", Content: user}},
	}
	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": claudeAPIVersion,
	}

	var resp claudeResponse
	if err := postJSON(ctx, c.http, c.Name(), c.baseURL+"/v1/messages", headers, req, &resp); err != nil {
		return "", err
	}

	for _, block := range resp.Content {
		if block.Type != "text" {
			continue
		}
		if out := strings.TrimSpace(block.Text); out != "" {
			return out, nil
		}
	}
	return "", newError(c.Name(), CodeEmptyResponse, errors.New("no text content in response"))
}
