package translate

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubBackend struct {
	name    string
	reply   string
	detect  string
	err     error
	calls   int
	detects int
}

func (s *stubBackend) Name() string { return s.name }

func (s *stubBackend) Translate(_ context.Context, text, _, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	if s.reply != "" {
		return s.reply, nil
	}
	return "[" + s.name + "] " + text, nil
}

func (s *stubBackend) Detect(_ context.Context, _ string) (string, error) {
	s.detects++
	if s.err != nil {
		return "", s.err
	}
	return s.detect, nil
}

func newTestRouter(casual, document, formal Backend) *Router {
	return NewRouter(casual, document, formal, time.Second, nil)
}

func TestRoutingByClass(t *testing.T) {
	casual := &stubBackend{name: "openai"}
	document := &stubBackend{name: "gemini"}
	formal := &stubBackend{name: "claude"}
	r := newTestRouter(casual, document, formal)

	tests := []struct {
		class Class
		want  string
	}{
		{ClassCasual, "openai"},
		{ClassDocument, "gemini"},
		{ClassFormal, "claude"},
		{"", "openai"}, // default
	}
	for _, tt := range tests {
		res, err := r.Translate(context.Background(), Request{Text: "hola", TargetLang: "en", Class: tt.class})
		if err != nil {
			t.Fatalf("class %q: %v", tt.class, err)
		}
		if res.Backend != tt.want {
			t.Fatalf("class %q routed to %s, want %s", tt.class, res.Backend, tt.want)
		}
		if res.TargetLang != "en" || res.TranslatedText == "" || res.Confidence != 1 {
			t.Fatalf("class %q: malformed result %+v", tt.class, res)
		}
	}
}

func TestFallbackToCasualOnDocumentFailure(t *testing.T) {
	casual := &stubBackend{name: "openai", reply: "translated anyway"}
	document := &stubBackend{name: "gemini", err: newError("gemini", CodeBackendUnavailable, errors.New("no key"))}
	r := newTestRouter(casual, document, &stubBackend{name: "claude"})

	res, err := r.Translate(context.Background(), Request{Text: "doc", TargetLang: "fr", Class: ClassDocument})
	if err != nil {
		t.Fatalf("fallback should succeed, got %v", err)
	}
	if res.Backend != "openai" || res.TranslatedText != "translated anyway" {
		t.Fatalf("unexpected fallback result: %+v", res)
	}
	if document.calls != 1 || casual.calls != 1 {
		t.Fatalf("calls: document=%d casual=%d", document.calls, casual.calls)
	}
}

func TestFallbackFailurePropagatesOriginalError(t *testing.T) {
	primaryErr := newError("claude", CodeBackendHTTPError, errors.New("status 500"))
	casual := &stubBackend{name: "openai", err: newError("openai", CodeEmptyResponse, errors.New("empty"))}
	formal := &stubBackend{name: "claude", err: primaryErr}
	r := newTestRouter(casual, &stubBackend{name: "gemini"}, formal)

	_, err := r.Translate(context.Background(), Request{Text: "x", TargetLang: "de", Class: ClassFormal})
	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if terr.Backend != "claude" || terr.Code != CodeBackendHTTPError {
		t.Fatalf("expected original claude error, got %+v", terr)
	}
}

func TestCasualFailureDoesNotRetry(t *testing.T) {
	casual := &stubBackend{name: "openai", err: newError("openai", CodeBackendHTTPError, errors.New("down"))}
	r := newTestRouter(casual, &stubBackend{name: "gemini"}, &stubBackend{name: "claude"})

	_, err := r.Translate(context.Background(), Request{Text: "x", TargetLang: "en", Class: ClassCasual})
	if err == nil {
		t.Fatal("expected error")
	}
	if casual.calls != 1 {
		t.Fatalf("casual called %d times, want 1", casual.calls)
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name   string
		detect string
		err    error
		want   string
	}{
		{"supported code", "es", nil, "es"},
		{"uppercase normalized", "ES", nil, "es"},
		{"unsupported code", "tlh", nil, ""},
		{"backend failure", "", errors.New("boom"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			casual := &stubBackend{name: "openai", detect: tt.detect, err: tt.err}
			r := newTestRouter(casual, &stubBackend{name: "gemini"}, &stubBackend{name: "claude"})
			if got := r.DetectLanguage(context.Background(), "hola"); got != tt.want {
				t.Fatalf("DetectLanguage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBatchIsolatesItemFailures(t *testing.T) {
	casual := &stubBackend{name: "openai"}
	document := &stubBackend{name: "gemini", err: newError("gemini", CodeBackendHTTPError, errors.New("down"))}
	// Casual fallback also fails for document items in this scenario.
	r := newTestRouter(casual, document, &stubBackend{name: "claude"})
	casualDown := &stubBackend{name: "openai", err: newError("openai", CodeBackendUnavailable, errors.New("no key"))}
	rAllDown := newTestRouter(casualDown, document, &stubBackend{name: "claude"})

	items := []BatchItem{
		{Text: "one", Class: ClassCasual},
		{Text: "two", Class: ClassDocument},
		{Text: "three", Class: ClassCasual},
	}

	out := rAllDown.TranslateBatch(context.Background(), "en", items)
	if len(out) != 3 {
		t.Fatalf("batch length = %d, want 3", len(out))
	}
	for i, res := range out {
		if res.TranslatedText != items[i].Text || res.Confidence != 0 {
			t.Fatalf("item %d should pass through original text: %+v", i, res)
		}
	}

	// With a healthy casual backend only item ordering is preserved and
	// the document item succeeds through the fallback.
	out = r.TranslateBatch(context.Background(), "en", items)
	if len(out) != 3 {
		t.Fatalf("batch length = %d, want 3", len(out))
	}
	if out[1].Backend != "openai" || out[1].Confidence != 1 {
		t.Fatalf("document item should succeed via fallback: %+v", out[1])
	}
}
