package translate

import "fmt"

// Backend error codes.
const (
	// CodeBackendUnavailable means the provider is not configured
	// (missing API key).
	CodeBackendUnavailable = "BACKEND_UNAVAILABLE"
	// CodeBackendHTTPError covers network failures, timeouts, and
	// non-2xx responses.
	CodeBackendHTTPError = "BACKEND_HTTP_ERROR"
	// CodeEmptyResponse means the provider answered with an
	// unparseable or empty body.
	CodeEmptyResponse = "EMPTY_RESPONSE"
)

// Error is a translation failure attributed to a specific backend.
type Error struct {
	Backend string
	Code    string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Backend, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Backend, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(backend, code string, err error) *Error {
	return &Error{Backend: backend, Code: code, Err: err}
}
