package translate

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

const (
	openAIDefaultBaseURL = "https://api.openai.com"
	openAIModel          = "gpt-4o-mini"
)

// OpenAI is the general-purpose backend handling casual messages,
// fallbacks, and language detection.
type OpenAI struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewOpenAI constructs the client. baseURL may be empty for the public
// API endpoint.
func NewOpenAI(apiKey, baseURL string) *OpenAI {
	if baseURL == "" {
		baseURL = openAIDefaultBaseURL
	}
	return &OpenAI{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

func (o *OpenAI) Name() string { return "openai" }

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (o *OpenAI) Translate(ctx context.Context, text, source, target string) (string, error) {
	return o.complete(ctx, translationPrompt(source, target), text)
}

func (o *OpenAI) Detect(ctx context.Context, text string) (string, error) {
	return o.complete(ctx, detectPrompt, text)
}

func (o *OpenAI) complete(ctx context.Context, system, user string) (string, error) {
	if o.apiKey == "" {
		return "", newError(o.Name(), CodeBackendUnavailable, errors.New("api key not configured"))
	}

	req := openAIRequest{
		Model: openAIModel,
		Messages: []openAIMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.2,
	}

	var resp openAIResponse
	headers := map[string]string{"Authorization": "Bearer " + o.apiKey}
	if err := postJSON(ctx, o.http, o.Name(), o.baseURL+"/v1/chat/completions", headers, req, &resp); err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", newError(o.Name(), CodeEmptyResponse, errors.New("no choices in response"))
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", newError(o.Name(), CodeEmptyResponse, errors.New("empty completion"))
	}
	return out, nil
}
