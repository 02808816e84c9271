package translate

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

const (
	geminiDefaultBaseURL = "https://generativelanguage.googleapis.com"
	geminiModel          = "gemini-1.5-pro"
)

// Gemini is the document-oriented backend.
type Gemini struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewGemini constructs the client. baseURL may be empty for the public
// API endpoint.
func NewGemini(apiKey, baseURL string) *Gemini {
	if baseURL == "" {
		baseURL = geminiDefaultBaseURL
	}
	return &Gemini{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

func (g *Gemini) Name() string { return "gemini" }

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) Translate(ctx context.Context, text, source, target string) (string, error) {
	return g.generate(ctx, translationPrompt(source, target)+"\n\n"+text)
}

func (g *Gemini) Detect(ctx context.Context, text string) (string, error) {
	return g.generate(ctx, detectPrompt+"\n\n"+text)
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", newError(g.Name(), CodeBackendUnavailable, errors.New("api key not configured"))
	}

	req := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	url := g.baseURL + "/v1beta/models/" + geminiModel + ":generateContent"
	headers := map[string]string{"x-goog-api-key": g.apiKey}

	var resp geminiResponse
	if err := postJSON(ctx, g.http, g.Name(), url, headers, req, &resp); err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", newError(g.Name(), CodeEmptyResponse, errors.New("no candidates in response"))
	}
	out := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	if out == "" {
		return "", newError(g.Name(), CodeEmptyResponse, errors.New("empty candidate text"))
	}
	return out, nil
}
