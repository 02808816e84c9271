package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Backend is one external translation provider.
type Backend interface {
	Name() string
	// Translate returns the translated text. source may be empty when
	// the caller wants the provider to infer it.
	Translate(ctx context.Context, text, source, target string) (string, error)
	// Detect returns the provider's guess at the text's language code.
	Detect(ctx context.Context, text string) (string, error)
}

func translationPrompt(source, target string) string {
	if source != "" {
		return fmt.Sprintf("Translate the user's message from %s to %s. Reply with only the translation, no explanations.", source, target)
	}
	return fmt.Sprintf("Translate the user's message to %s. Reply with only the translation, no explanations.", target)
}

const detectPrompt = "Identify the language of the user's message. Reply with only the ISO 639-1 code."

// postJSON performs an authenticated JSON POST and decodes the reply.
// Transport failures and non-2xx statuses are returned as *Error with
// CodeBackendHTTPError; undecodable bodies as CodeEmptyResponse.
func postJSON(ctx context.Context, client *http.Client, backend, url string, headers map[string]string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return newError(backend, CodeBackendHTTPError, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return newError(backend, CodeBackendHTTPError, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return newError(backend, CodeBackendHTTPError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return newError(backend, CodeBackendHTTPError, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newError(backend, CodeEmptyResponse, err)
	}
	return nil
}
