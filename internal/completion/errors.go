package completion

import (
	"errors"
	"fmt"
)

// Kind classifies a completion failure. The set is closed: every
// transport or provider failure maps to exactly one kind.
type Kind string

const (
	// KindAuthentication means the credential was rejected (HTTP 401).
	KindAuthentication Kind = "authentication"

	// KindRateLimit means the provider throttled the request (HTTP 429).
	// The client does not retry; backoff is the caller's decision.
	KindRateLimit Kind = "rate_limit"

	// KindBadRequest means the payload or configuration was malformed
	// (HTTP 400).
	KindBadRequest Kind = "bad_request"

	// KindNetwork means the request never produced an HTTP response
	// (DNS failure, refused connection, timeout).
	KindNetwork Kind = "network"

	// KindUnknown covers every other failure, including unexpected HTTP
	// statuses and responses with no content.
	KindUnknown Kind = "unknown"
)

// Error is a classified completion failure. It carries a human-readable
// message, an optional short provider code, the kind, and the underlying
// error for diagnostics.
type Error struct {
	Kind    Kind
	Message string
	Code    string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("completion %s (%s): %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("completion %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the classification from err. Errors that are not
// classified completion errors report KindUnknown.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}
