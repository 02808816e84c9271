package translate

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Class is the message-type hint steering backend selection.
type Class string

const (
	ClassCasual   Class = "casual"
	ClassDocument Class = "document"
	ClassFormal   Class = "formal"
)

// DefaultTimeout bounds one backend call when no timeout is configured.
const DefaultTimeout = 20 * time.Second

// supportedLanguages is the set of codes DetectLanguage may return.
var supportedLanguages = map[string]struct{}{
	"en": {}, "es": {}, "fr": {}, "de": {}, "it": {}, "pt": {},
	"ru": {}, "ja": {}, "ko": {}, "zh": {}, "ar": {}, "hi": {},
	"nl": {}, "tr": {}, "vi": {}, "th": {}, "pl": {}, "uk": {},
	"sv": {}, "id": {},
}

// SupportedLanguage reports whether code is in the supported set.
func SupportedLanguage(code string) bool {
	_, ok := supportedLanguages[code]
	return ok
}

// Request is one translation call.
type Request struct {
	Text       string
	TargetLang string
	SourceLang string // optional, empty means provider-inferred
	Class      Class  // empty defaults to casual
}

// Result is the normalized response shape shared by all backends.
type Result struct {
	TranslatedText string  `json:"translatedText"`
	SourceLang     string  `json:"sourceLang,omitempty"`
	TargetLang     string  `json:"targetLang"`
	Backend        string  `json:"backend"`
	Confidence     float64 `json:"confidence"`
}

// BatchItem is one entry of a batch translation.
type BatchItem struct {
	Text  string
	Class Class
}

// Router selects a backend per message class and falls back to the
// general-purpose backend when the preferred path fails.
type Router struct {
	casual   Backend
	document Backend
	formal   Backend
	timeout  time.Duration
	log      *zerolog.Logger
}

// NewRouter wires the three backends. timeout <= 0 uses DefaultTimeout.
func NewRouter(casual, document, formal Backend, timeout time.Duration, logger *zerolog.Logger) *Router {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Router{
		casual:   casual,
		document: document,
		formal:   formal,
		timeout:  timeout,
		log:      logger,
	}
}

// Translate routes the request to the backend for its class. When the
// selected backend fails and the class is not already casual, the call
// is retried once through the casual backend; if that also fails, the
// original error propagates so callers see the preferred path's root
// cause.
func (r *Router) Translate(ctx context.Context, req Request) (Result, error) {
	class := req.Class
	if class == "" {
		class = ClassCasual
	}

	backend := r.pick(class)
	res, err := r.call(ctx, backend, req)
	if err == nil {
		return res, nil
	}

	if class != ClassCasual {
		if r.log != nil {
			r.log.Warn().Err(err).Str("backend", backend.Name()).Str("class", string(class)).Msg("backend failed, retrying via casual path")
		}
		if fres, ferr := r.call(ctx, r.casual, req); ferr == nil {
			return fres, nil
		}
	}
	return Result{}, err
}

// DetectLanguage asks the general-purpose backend for the text's
// language. Best effort: any failure, or a code outside the supported
// set, yields "" rather than an error.
func (r *Router) DetectLanguage(ctx context.Context, text string) string {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	code, err := r.casual.Detect(ctx, text)
	if err != nil {
		if r.log != nil {
			r.log.Debug().Err(err).Msg("language detection failed")
		}
		return ""
	}
	code = strings.ToLower(strings.TrimSpace(code))
	if !SupportedLanguage(code) {
		return ""
	}
	return code
}

// TranslateBatch translates each item independently. A failed item
// degrades to its original text with zero confidence instead of
// aborting the batch.
func (r *Router) TranslateBatch(ctx context.Context, targetLang string, items []BatchItem) []Result {
	out := make([]Result, len(items))
	for i, item := range items {
		res, err := r.Translate(ctx, Request{
			Text:       item.Text,
			TargetLang: targetLang,
			Class:      item.Class,
		})
		if err != nil {
			if r.log != nil {
				r.log.Warn().Err(err).Int("item", i).Msg("batch item failed, passing through original text")
			}
			out[i] = Result{
				TranslatedText: item.Text,
				TargetLang:     targetLang,
				Confidence:     0,
			}
			continue
		}
		out[i] = res
	}
	return out
}

func (r *Router) pick(class Class) Backend {
	switch class {
	case ClassDocument:
		return r.document
	case ClassFormal:
		return r.formal
	default:
		return r.casual
	}
}

func (r *Router) call(ctx context.Context, b Backend, req Request) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	text, err := b.Translate(ctx, req.Text, req.SourceLang, req.TargetLang)
	if err != nil {
		return Result{}, err
	}
	return Result{
		TranslatedText: text,
		SourceLang:     req.SourceLang,
		TargetLang:     req.TargetLang,
		Backend:        b.Name(),
		Confidence:     1,
	}, nil
}
