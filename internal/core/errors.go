package core

// Error codes surfaced to clients over the wire protocol.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeNotJoined      = "not_joined"
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeUnauthorized   = "unauthorized"
)
